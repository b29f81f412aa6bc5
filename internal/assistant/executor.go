package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mwarade/go-assistant/internal/gcal"
)

const (
	noActionsMessage = "No specific actions were identified from your request. Please try again with a clearer request."

	defaultListCount   = 10
	defaultHorizonDays = 30
	maxLLMListCount    = 50

	listSeparator = "------------------------------"
)

var (
	explicitCountRe = regexp.MustCompile(`(?i)\b(\d+)\s+events?\b`)
	nameAfterToRe   = regexp.MustCompile(`(?i)\bto\s+([A-Za-z]+)\b`)
)

// Executor maps each action to a collaborator call, isolates per-action
// failures, and concatenates the results. A failed handler produces a
// ❌-prefixed line and never aborts the remaining actions.
type Executor struct {
	resolver   *Resolver
	calendar   Calendar
	email      EmailSender
	llm        Completer
	calendarID string
	timezone   string
	loc        *time.Location
	signature  string
}

// ExecutorConfig configures the action executor.
type ExecutorConfig struct {
	Resolver   *Resolver
	Calendar   Calendar
	Email      EmailSender
	LLM        Completer
	CalendarID string
	Timezone   string
	Location   *time.Location
	Signature  string
}

func NewExecutor(cfg ExecutorConfig) *Executor {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}
	signature := cfg.Signature
	if signature == "" {
		signature = "Milind Warade"
	}
	return &Executor{
		resolver:   cfg.Resolver,
		calendar:   cfg.Calendar,
		email:      cfg.Email,
		llm:        cfg.LLM,
		calendarID: calendarID,
		timezone:   cfg.Timezone,
		loc:        loc,
		signature:  signature,
	}
}

// Execute runs each action in order and joins the per-action results with
// a blank line. An empty action list yields a single informative message
// without any collaborator call.
func (e *Executor) Execute(ctx context.Context, actions []ActionKind, query string) string {
	if len(actions) == 0 {
		return noActionsMessage
	}

	responses := make([]string, 0, len(actions))
	for _, action := range actions {
		switch action {
		case ActionCalendarCreate:
			responses = append(responses, e.createCalendarEvent(ctx, query))
		case ActionCalendarList:
			responses = append(responses, e.listCalendarEvents(ctx, query))
		case ActionSendEmail:
			responses = append(responses, e.sendEmail(ctx, query))
		default:
			responses = append(responses, fmt.Sprintf("Unknown action: %s", action))
		}
	}

	return strings.Join(responses, "\n\n")
}

// createCalendarEvent resolves the query into a draft and inserts it.
func (e *Executor) createCalendarEvent(ctx context.Context, query string) string {
	if e.calendar == nil {
		return "❌ Google credentials not available. Unable to create calendar event."
	}

	draft := e.resolver.ResolveEvent(ctx, query, time.Now())

	description := draft.Description
	if len(draft.Attendees) > 0 {
		if description != "" {
			description += "\n\n"
		}
		description += "Attendees: " + strings.Join(draft.Attendees, ", ")
	}

	created, err := e.calendar.Insert(e.calendarID, gcal.EventInput{
		Summary:     draft.Summary,
		Description: description,
		Location:    draft.Location,
		StartTime:   draft.StartAt(),
		EndTime:     draft.EndAt(),
		TimeZone:    e.timezone,
	})
	if err != nil {
		return fmt.Sprintf("❌ Failed to create calendar event: %v", err)
	}

	lines := []string{
		"✅ Event Scheduled Successfully!",
		fmt.Sprintf("Event: %s", draft.Summary),
		fmt.Sprintf("Date: %s", draft.StartAt().Format("Monday, January 2, 2006")),
		fmt.Sprintf("Time: %s to %s", draft.StartAt().Format("03:04 PM"), draft.EndAt().Format("03:04 PM")),
	}
	if draft.Location != "" {
		lines = append(lines, fmt.Sprintf("Location: %s", draft.Location))
	}
	if len(draft.Attendees) > 0 {
		lines = append(lines, fmt.Sprintf("Attendees: %s", strings.Join(draft.Attendees, ", ")))
	}
	lines = append(lines, fmt.Sprintf("View in Calendar: %s", created.HTMLLink))

	return strings.Join(lines, "\n")
}

// listCalendarEvents fetches and formats upcoming events. The header
// reports the requested count, not the number of items returned.
func (e *Executor) listCalendarEvents(ctx context.Context, query string) string {
	if e.calendar == nil {
		return "❌ Google credentials not available. Unable to list calendar events."
	}

	lq := e.parseListQuery(ctx, query)

	items, err := e.calendar.ListUpcoming(e.calendarID, int64(lq.Count), time.Duration(lq.HorizonDays)*24*time.Hour)
	if err != nil {
		return fmt.Sprintf("❌ Failed to list calendar events: %v", err)
	}

	output := []string{fmt.Sprintf("\nUpcoming %d Events:", lq.Count), listSeparator}
	for _, item := range items {
		if item.AllDay {
			output = append(output, fmt.Sprintf("Date: %s (All day)", item.StartTime.Format("Jan 02")))
		} else {
			start := item.StartTime.In(e.loc)
			end := item.EndTime.In(e.loc)
			output = append(output, fmt.Sprintf("Time: %s - %s", start.Format("Jan 02, 03:04 PM"), end.Format("03:04 PM")))
		}

		summary := item.Summary
		if summary == "" {
			summary = "No Title"
		}
		output = append(output, fmt.Sprintf("Event: %s", summary))
		if item.Location != "" {
			output = append(output, fmt.Sprintf("Location: %s", item.Location))
		}
		output = append(output, listSeparator)
	}

	if len(items) == 0 {
		output = append(output, "No upcoming events found.")
	}

	return strings.Join(output, "\n")
}

// parseListQuery derives the requested count and horizon. An explicit
// "<n> events" wins; for vague plurality the LLM may suggest a count,
// accepted only within [1, 50].
func (e *Executor) parseListQuery(ctx context.Context, query string) ListQuery {
	lq := ListQuery{Count: defaultListCount, HorizonDays: defaultHorizonDays}
	normalized := strings.ToLower(query)

	if strings.Contains(normalized, "today") {
		lq.HorizonDays = 1
	} else if strings.Contains(normalized, "this week") {
		lq.HorizonDays = 7
	}

	if m := explicitCountRe.FindStringSubmatch(query); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			lq.Count = n
		}
		return lq
	}

	if e.llm != nil && containsAny(normalized, []string{"upcoming", "next few"}) {
		if response, err := e.llm.Complete(ctx, countPrompt(query), false); err == nil {
			if n, err := strconv.Atoi(strings.TrimSpace(response)); err == nil && n >= 1 && n <= maxLLMListCount {
				lq.Count = n
			}
		}
	}

	return lq
}

// sendEmail extracts the recipient, derives subject and body, and sends.
func (e *Executor) sendEmail(ctx context.Context, query string) string {
	recipient := emailAddressRe.FindString(query)
	if recipient == "" {
		if m := nameAfterToRe.FindStringSubmatch(query); m != nil {
			return fmt.Sprintf("❌ Could not find a valid email address for '%s'. Please include a complete email address.", strings.TrimSpace(m[1]))
		}
		return "❌ No email address found in the query! Please include a valid email address."
	}

	subject := e.deriveSubject(ctx, query)
	body := e.composeBody(ctx, query, recipient, subject)

	if e.email == nil {
		return "❌ Google credentials not available. Unable to send email."
	}

	if _, err := e.email.Send(recipient, subject, body); err != nil {
		return fmt.Sprintf("❌ Email sending failed: %v", err)
	}

	return fmt.Sprintf("✅ Email sent successfully!\nTo: %s\nSubject: %s\nMessage:\n%s", recipient, subject, body)
}
