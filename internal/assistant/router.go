package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// emailAddressRe matches a syntactically valid address: local part, @,
// domain with a TLD of at least two letters.
var emailAddressRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

var (
	meetingPhraseRe = regexp.MustCompile(`(?i)\b(meeting|appointment|call|interview)\b.*\b(with|on)\s+\w+`)
	whatCalendarRe  = regexp.MustCompile(`(?i)\bwhat\b.*\bcalendar\b`)
	periodEventsRe  = regexp.MustCompile(`(?i)\b(today|tomorrow|this week)\b.*\bevents\b`)
	agentsFieldRe   = regexp.MustCompile(`"agents"\s*:\s*(\[[^\]]*\])`)
	bracketArrayRe  = regexp.MustCompile(`\[[^\]]*\]`)
)

var (
	createKeywords = []string{"schedule", "create event", "add to calendar", "book"}
	listKeywords   = []string{"list", "show", "upcoming events", "my events", "what events"}
	emailKeywords  = []string{"send email", "email to", "write email", "compose email"}
)

// Router maps a raw query to an ordered list of actions using layered
// heuristics, with the LLM collaborator as last resort.
type Router struct {
	llm Completer
}

func NewRouter(llm Completer) *Router {
	return &Router{llm: llm}
}

// Route classifies the query. An explicit email address is unambiguous
// evidence of send-intent and wins over every other cue, including
// scheduling keywords. Keyword rules short-circuit on first match and
// return exactly one action; only the LLM stage can yield several.
func (r *Router) Route(ctx context.Context, query string) []ActionKind {
	if emailAddressRe.MatchString(query) {
		return []ActionKind{ActionSendEmail}
	}

	normalized := strings.ToLower(query)

	if containsAny(normalized, createKeywords) || meetingPhraseRe.MatchString(query) {
		return []ActionKind{ActionCalendarCreate}
	}
	if containsAny(normalized, listKeywords) || whatCalendarRe.MatchString(query) || periodEventsRe.MatchString(query) {
		return []ActionKind{ActionCalendarList}
	}
	if containsAny(normalized, emailKeywords) {
		return []ActionKind{ActionSendEmail}
	}

	if r.llm == nil {
		return keywordGuess(normalized)
	}
	return r.routeWithLLM(ctx, query)
}

// routeWithLLM asks the model for a JSON {"agents": [...]} classification.
// Malformed responses go through regex salvage before falling back to the
// read-only listing action.
func (r *Router) routeWithLLM(ctx context.Context, query string) []ActionKind {
	response, err := r.llm.Complete(ctx, routePrompt(query), true)
	if err != nil {
		fmt.Printf("Router: LLM classification failed: %v\n", err)
		return []ActionKind{ActionCalendarList}
	}

	var parsed struct {
		Agents []string `json:"agents"`
	}
	if jsonErr := json.Unmarshal([]byte(response), &parsed); jsonErr == nil {
		return mapAgents(parsed.Agents)
	}

	if agents, ok := salvageAgents(response); ok {
		return mapAgents(agents)
	}

	fmt.Printf("Router: unable to parse LLM response, defaulting to calendar_list\n")
	return []ActionKind{ActionCalendarList}
}

// salvageAgents attempts to recover an agent array from a malformed JSON
// response: first a `"agents": [...]` fragment, then any bracketed array.
func salvageAgents(response string) ([]string, bool) {
	candidates := make([]string, 0, 2)
	if m := agentsFieldRe.FindStringSubmatch(response); m != nil {
		candidates = append(candidates, m[1])
	}
	if m := bracketArrayRe.FindString(response); m != "" {
		candidates = append(candidates, m)
	}

	for _, candidate := range candidates {
		var agents []string
		if err := json.Unmarshal([]byte(candidate), &agents); err == nil {
			return agents, true
		}
	}
	return nil, false
}

// mapAgents converts agent names to actions, dropping unknown entries.
func mapAgents(agents []string) []ActionKind {
	actions := make([]ActionKind, 0, len(agents))
	for _, agent := range agents {
		switch strings.ToLower(strings.TrimSpace(agent)) {
		case "calendar_create":
			actions = append(actions, ActionCalendarCreate)
		case "calendar_list":
			actions = append(actions, ActionCalendarList)
		case "email":
			actions = append(actions, ActionSendEmail)
		}
	}
	return actions
}

// keywordGuess is the last-resort classification when no LLM collaborator
// is wired at all.
func keywordGuess(normalized string) []ActionKind {
	switch {
	case containsAny(normalized, []string{"schedule", "meeting", "event"}):
		return []ActionKind{ActionCalendarCreate}
	case strings.Contains(normalized, "@") || strings.Contains(normalized, "email"):
		return []ActionKind{ActionSendEmail}
	default:
		return []ActionKind{ActionCalendarList}
	}
}

func containsAny(text string, values []string) bool {
	for _, v := range values {
		if strings.Contains(text, v) {
			return true
		}
	}
	return false
}
