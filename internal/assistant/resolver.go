package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mwarade/go-assistant/internal/timeutil"
)

const (
	defaultSummary   = "New Event"
	defaultStartHour = 9
)

var (
	// timeRangeRe matches "from <h>[:<m>] [am/pm] to <h>[:<m>] [am/pm]".
	timeRangeRe = regexp.MustCompile(`(?i)from\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\s+to\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
	// atTimeRe matches a single "at <h>[:<mm>] am/pm" start time.
	atTimeRe = regexp.MustCompile(`(?i)\bat\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)`)
	// temporalKeywordRe marks where the event title ends and time info begins.
	temporalKeywordRe = regexp.MustCompile(`(?i)\b(on|tomorrow|next|this|at|from)\b`)
	// onDateRe matches "on <day>[st|nd|rd|th] <month>".
	onDateRe = regexp.MustCompile(`(?i)\bon\s+(\d{1,2})(?:st|nd|rd|th)?\s+(january|february|march|april|may|june|july|august|september|october|november|december)`)
	// trailingAtRe captures a trailing "at <phrase>" location clause.
	trailingAtRe = regexp.MustCompile(`(?i)\bat\s+([^,]+?)\s*$`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// Resolver turns a free-text event description into a well-formed draft
// with a defined start and end. It never fails: parse ambiguity is always
// recovered with defaults, and the draft it returns is best effort.
type Resolver struct {
	llm Completer
	loc *time.Location
}

func NewResolver(llm Completer, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{llm: llm, loc: loc}
}

// llmEvent is the JSON shape the extraction prompt asks for. Attendees is
// kept loose because models return either a string or an array.
type llmEvent struct {
	Summary     string `json:"summary"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Location    string `json:"location"`
	Attendees   any    `json:"attendees"`
	Description string `json:"description"`
}

// ResolveEvent resolves a query into an event draft relative to now.
//
// Stages, in precedence order: LLM structured extraction; direct regex
// override for explicit "from X to Y" ranges (the model has a systematic
// bias of mis-converting PM end times, so the textual match wins for this
// one pattern); heuristic fallback when the LLM is unavailable or its JSON
// is unparsable; and an end-time sanity correction that always runs last.
func (r *Resolver) ResolveEvent(ctx context.Context, query string, now time.Time) EventDraft {
	now = now.In(r.loc)

	draft, ok := r.resolveWithLLM(ctx, query, now)
	if !ok {
		draft = r.resolveHeuristically(query, now)
	}

	if start, end, matched := parseTimeRange(query); matched {
		draft.Start = start
		draft.End = end
		if draft.Outcome != OutcomeHeuristicFallback {
			draft.Outcome = OutcomeRegexOverride
		}
	}

	// End must be strictly after start once the draft is finalized.
	if !draft.Start.Before(draft.End) {
		draft.End = draft.Start.AddHours(1)
		if !draft.Start.Before(draft.End) {
			// The one-hour default wrapped past midnight.
			draft.End = timeutil.ClockTime{Hour: 23, Minute: 59}
		}
	}

	return draft
}

// resolveWithLLM runs the structured extraction stage. Any parse failure
// aborts the stage so the heuristic parser takes over.
func (r *Resolver) resolveWithLLM(ctx context.Context, query string, now time.Time) (EventDraft, bool) {
	if r.llm == nil {
		return EventDraft{}, false
	}

	response, err := r.llm.Complete(ctx, eventPrompt(now, query), true)
	if err != nil {
		fmt.Printf("Resolver: LLM extraction failed: %v\n", err)
		return EventDraft{}, false
	}

	var event llmEvent
	if err := json.Unmarshal([]byte(response), &event); err != nil {
		fmt.Printf("Resolver: unparsable extraction JSON: %v\n", err)
		return EventDraft{}, false
	}

	date, err := timeutil.ParseDate(event.Date, r.loc)
	if err != nil {
		return EventDraft{}, false
	}
	start, err := timeutil.ParseClock(event.StartTime)
	if err != nil {
		return EventDraft{}, false
	}

	draft := EventDraft{
		Summary:     strings.TrimSpace(event.Summary),
		Date:        date,
		Start:       start,
		Location:    strings.TrimSpace(event.Location),
		Attendees:   normalizeAttendees(event.Attendees),
		Description: strings.TrimSpace(event.Description),
		Outcome:     OutcomeLLMStructured,
	}
	if draft.Summary == "" {
		draft.Summary = defaultSummary
	}
	// A bad end time is recoverable: the sanity correction defaults it.
	if end, err := timeutil.ParseClock(event.EndTime); err == nil {
		draft.End = end
	}

	return draft, true
}

// resolveHeuristically derives a draft directly from the query text.
func (r *Resolver) resolveHeuristically(query string, now time.Time) EventDraft {
	draft := EventDraft{
		Summary: heuristicSummary(query),
		Date:    heuristicDate(query, now),
		Outcome: OutcomeHeuristicFallback,
	}

	if start, end, matched := parseTimeRange(query); matched {
		draft.Start = start
		draft.End = end
	} else if start, matched := parseAtTime(query); matched {
		draft.Start = start
		draft.End = start.AddHours(1)
	} else {
		draft.Start = timeutil.ClockTime{Hour: defaultStartHour}
		draft.End = timeutil.ClockTime{Hour: defaultStartHour + 1}
	}

	draft.Location = heuristicLocation(query)
	return draft
}

// heuristicSummary takes the text preceding the first temporal keyword.
func heuristicSummary(query string) string {
	summary := query
	if loc := temporalKeywordRe.FindStringIndex(query); loc != nil {
		summary = query[:loc[0]]
	}
	summary = strings.Trim(strings.TrimSpace(summary), ".,!?")
	if summary == "" {
		return defaultSummary
	}
	return summary
}

// heuristicDate resolves today, tomorrow, or an explicit "on <day> <month>"
// date, rolling to next year when the named date has already passed.
func heuristicDate(query string, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if m := onDateRe.FindStringSubmatch(query); m != nil {
		day := atoiSafe(m[1])
		month := monthsByName[strings.ToLower(m[2])]
		if day >= 1 && day <= 31 {
			date := time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location())
			if date.Before(today) {
				date = date.AddDate(1, 0, 0)
			}
			return date
		}
	}

	if strings.Contains(strings.ToLower(query), "tomorrow") {
		return today.AddDate(0, 0, 1)
	}
	return today
}

// heuristicLocation extracts a trailing "at <phrase>" clause that is not
// itself a time clause.
func heuristicLocation(query string) string {
	m := trailingAtRe.FindStringSubmatch(query)
	if m == nil {
		return ""
	}
	phrase := strings.TrimSpace(m[1])
	if phrase == "" || phrase[0] >= '0' && phrase[0] <= '9' {
		return ""
	}
	return phrase
}

// parseTimeRange extracts a "from X to Y" range, converting 12-hour times
// using the meridiem attached to each endpoint, or any meridiem found in
// the query when an endpoint has none. A range with no meridiem anywhere
// is ambiguous and does not match, so it cannot displace an LLM
// extraction that already resolved it.
func parseTimeRange(query string) (timeutil.ClockTime, timeutil.ClockTime, bool) {
	m := timeRangeRe.FindStringSubmatch(query)
	if m == nil {
		return timeutil.ClockTime{}, timeutil.ClockTime{}, false
	}

	queryMeridiem := ""
	lower := strings.ToLower(query)
	if strings.Contains(lower, "pm") {
		queryMeridiem = "pm"
	} else if strings.Contains(lower, "am") {
		queryMeridiem = "am"
	}
	if m[3] == "" && m[6] == "" && queryMeridiem == "" {
		return timeutil.ClockTime{}, timeutil.ClockTime{}, false
	}

	start := clockFrom(m[1], m[2], firstNonEmpty(strings.ToLower(m[3]), queryMeridiem))
	end := clockFrom(m[4], m[5], firstNonEmpty(strings.ToLower(m[6]), queryMeridiem))
	return start, end, true
}

// parseAtTime extracts a single "at <h>[:<mm>] am/pm" start time.
func parseAtTime(query string) (timeutil.ClockTime, bool) {
	m := atTimeRe.FindStringSubmatch(query)
	if m == nil {
		return timeutil.ClockTime{}, false
	}
	return clockFrom(m[1], m[2], strings.ToLower(m[3])), true
}

// clockFrom builds a 24-hour clock time from matched hour/minute strings
// and a meridiem.
func clockFrom(hourStr, minuteStr, meridiem string) timeutil.ClockTime {
	hour := atoiSafe(hourStr)
	minute := atoiSafe(minuteStr)

	switch meridiem {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 {
		hour = 23
	}
	if minute > 59 {
		minute = 0
	}

	return timeutil.ClockTime{Hour: hour, Minute: minute}
}

// normalizeAttendees accepts either a single string or an array and returns
// an ordered list of non-empty names.
func normalizeAttendees(raw any) []string {
	var values []any
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		values = []any{v}
	case []any:
		values = v
	default:
		return nil
	}

	attendees := make([]string, 0, len(values))
	for _, value := range values {
		if s, ok := value.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				attendees = append(attendees, s)
			}
		}
	}
	return attendees
}

func atoiSafe(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
