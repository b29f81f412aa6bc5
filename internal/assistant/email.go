package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

const minBodyLength = 30

var (
	subjectMarkerRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:subject|about|regarding|titled)[:\s]\s*"?([^".]+)"?`),
		regexp.MustCompile(`(?i)(?:email|message|send)\s+(?:with\s+subject|about|regarding)\s+"?([^".]+)"?`),
		regexp.MustCompile(`(?i)with\s+(?:subject|title)\s+"?([^".]+)"?`),
	}
	contentPhraseRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)asking (?:him|her|them) about (.*?)(?:$|\.|,)`),
		regexp.MustCompile(`(?i)inquiring about (.*?)(?:$|\.|,)`),
	}
	requestVerbRe = regexp.MustCompile(`(?i)(?:send|write|compose|draft)\s+(?:an|a)?\s*email\s*(?:about|regarding|on|with)?`)
	// templateArtifactRe flags leftover placeholders like "[Name]" in LLM
	// output, which means the model echoed the template instead of filling it.
	templateArtifactRe = regexp.MustCompile(`\[[A-Za-z][^\]]*\]`)
)

// topicRule pairs a topic predicate with its subject and body templates.
// Rules are evaluated top to bottom; the first match wins.
type topicRule struct {
	name    string
	match   func(query string) bool
	subject string
	body    func(contentInfo string) string
}

func keywordPredicate(keywords ...string) func(string) bool {
	return func(query string) bool {
		return containsAny(strings.ToLower(query), keywords)
	}
}

var topicRules = []topicRule{
	{
		name:    "software-access",
		match:   keywordPredicate("access", "software", "license", "account", "login"),
		subject: "Software Access Request",
		body: func(info string) string {
			return "I would like to request access to the software mentioned below.\n\n" +
				info + "\n\nCould you please grant the required permissions or let me know the process to follow?"
		},
	},
	{
		name:    "project-update",
		match:   keywordPredicate("project", "update", "status", "progress"),
		subject: "Project Update",
		body: func(info string) string {
			return "I wanted to share a quick update regarding " + info + ".\n\n" +
				"Things are progressing as planned. I will follow up with more details shortly."
		},
	},
	{
		name:    "meeting-request",
		match:   keywordPredicate("meeting", "discuss", "catch up", "sync"),
		subject: "Meeting Request",
		body: func(info string) string {
			return "I would like to set up a meeting regarding " + info + ".\n\n" +
				"Please let me know a time that works for you."
		},
	},
	{
		name:    "document-request",
		match:   keywordPredicate("document", "report", "file", "attachment"),
		subject: "Document Request",
		body: func(info string) string {
			return "Could you please share the document mentioned below when you get a chance?\n\n" + info
		},
	},
	{
		name:    "benefits-summary",
		match:   keywordPredicate("benefit", "insurance", "leave policy", "payroll"),
		subject: "Employee Benefits Summary",
		body: func(info string) string {
			return "I am writing to ask about " + info + ".\n\n" +
				"Could you please share the relevant benefits information?"
		},
	},
}

// deriveSubject derives the email subject via ordered rules: an explicit
// subject/about marker, a content phrase, a topic template match, an
// LLM-generated line, then a generic fallback.
func (e *Executor) deriveSubject(ctx context.Context, query string) string {
	for _, re := range subjectMarkerRes {
		if m := re.FindStringSubmatch(query); m != nil {
			if subject := strings.TrimSpace(strings.TrimSuffix(m[1], `"`)); subject != "" {
				return subject
			}
		}
	}

	for _, re := range contentPhraseRes {
		if m := re.FindStringSubmatch(query); m != nil {
			if subject := strings.TrimSpace(m[1]); subject != "" {
				return subject
			}
		}
	}

	for _, rule := range topicRules {
		if rule.match(query) {
			return rule.subject
		}
	}

	if e.llm != nil {
		if subject, err := e.llm.Complete(ctx, subjectPrompt(query), false); err == nil {
			subject = strings.Trim(strings.TrimSpace(subject), `"`)
			if subject != "" && len(subject) <= 100 && !strings.Contains(subject, "\n") {
				return subject
			}
		}
	}

	return "No Subject"
}

// composeBody generates the email body. The LLM writes it when available;
// output that is too short or still contains template artifacts is
// discarded in favor of the deterministic topic template. The body always
// ends with the fixed signature closing.
func (e *Executor) composeBody(ctx context.Context, query, recipient, subject string) string {
	contentInfo := extractContentInfo(query, recipient, subject)

	body := ""
	if e.llm != nil {
		generated, err := e.llm.Complete(ctx, bodyPrompt(query, recipient, subject, contentInfo, e.signature), false)
		if err == nil {
			generated = strings.TrimSpace(generated)
			if len(generated) >= minBodyLength && !templateArtifactRe.MatchString(generated) {
				body = generated
			}
		} else {
			fmt.Printf("Email: LLM body generation failed: %v\n", err)
		}
	}

	if body == "" {
		body = e.templateBody(query, contentInfo)
	}

	if !strings.Contains(body, e.signature) {
		body += "\n\nBest regards,\n" + e.signature
	}
	return body
}

// templateBody builds a deterministic body keyed off the detected topic.
func (e *Executor) templateBody(query, contentInfo string) string {
	middle := "I'm reaching out regarding " + contentInfo + ".\n\nPlease let me know if you need any further information."
	for _, rule := range topicRules {
		if rule.match(query) {
			middle = rule.body(contentInfo)
			break
		}
	}
	return "Hello,\n\n" + middle
}

// extractContentInfo strips the recipient, subject marker, and request
// phrasing from the query, leaving the topic the email should cover.
func extractContentInfo(query, recipient, subject string) string {
	info := query
	if recipient != "" {
		if toRe, err := regexp.Compile(`(?i)(?:to|send to|email to)\s+` + regexp.QuoteMeta(recipient)); err == nil {
			info = toRe.ReplaceAllString(info, "")
		}
	}
	if subject != "" && subject != "No Subject" {
		if subjRe, err := regexp.Compile(`(?i)(?:subject|about|regarding|titled)[:\s]\s*"?` + regexp.QuoteMeta(subject) + `"?`); err == nil {
			info = subjRe.ReplaceAllString(info, "")
		}
	}
	info = requestVerbRe.ReplaceAllString(info, "")
	info = strings.Trim(strings.TrimSpace(info), ".,")
	if info == "" {
		info = subject
	}
	return info
}
