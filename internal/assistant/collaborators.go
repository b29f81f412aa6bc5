package assistant

import (
	"context"
	"time"

	"github.com/mwarade/go-assistant/internal/gcal"
)

// Completer is the LLM completion collaborator. jsonMode requests but does
// not guarantee a syntactically valid JSON object.
type Completer interface {
	Complete(ctx context.Context, prompt string, jsonMode bool) (string, error)
}

// Calendar is the calendar collaborator consumed by the create and list
// actions. Implemented by *gcal.Client.
type Calendar interface {
	Insert(calendarID string, input gcal.EventInput) (gcal.CreatedEvent, error)
	ListUpcoming(calendarID string, maxResults int64, horizon time.Duration) ([]gcal.EventItem, error)
}

// EmailSender is the outbound email collaborator. Implemented by
// *gmail.Client and *notify.ResendSender.
type EmailSender interface {
	Profile() (string, error)
	Send(to, subject, body string) (string, error)
}
