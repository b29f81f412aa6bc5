package assistant

import (
	"time"

	"github.com/mwarade/go-assistant/internal/timeutil"
)

// ActionKind identifies a dispatchable unit of work.
type ActionKind string

const (
	ActionCalendarCreate ActionKind = "calendar_create"
	ActionCalendarList   ActionKind = "calendar_list"
	ActionSendEmail      ActionKind = "email"
)

// RequestState carries a single request through the two pipeline stages.
// It is created fresh per request and discarded once the response is built.
type RequestState struct {
	Query         string
	Actions       []ActionKind
	FinalResponse string
}

// ParseOutcome records which stage produced the final event draft fields.
// It decides precedence between stages and is never exposed to the caller.
type ParseOutcome int

const (
	OutcomeLLMStructured ParseOutcome = iota
	OutcomeRegexOverride
	OutcomeHeuristicFallback
)

// EventDraft is the resolved, best-effort structured representation of a
// calendar event before it is sent to the calendar collaborator.
//
// Once finalized, End is strictly after Start; the resolver's sanity
// correction enforces this before the draft is returned.
type EventDraft struct {
	Summary     string
	Date        time.Time // midnight in the assistant's timezone
	Start       timeutil.ClockTime
	End         timeutil.ClockTime
	Location    string
	Attendees   []string
	Description string
	Outcome     ParseOutcome
}

// StartAt returns the draft's absolute start time.
func (d EventDraft) StartAt() time.Time {
	return timeutil.At(d.Date, d.Start)
}

// EndAt returns the draft's absolute end time.
func (d EventDraft) EndAt() time.Time {
	return timeutil.At(d.Date, d.End)
}

// ListQuery is the requested window for the listing action.
type ListQuery struct {
	Count       int
	HorizonDays int
}
