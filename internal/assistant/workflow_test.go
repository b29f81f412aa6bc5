package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwarade/go-assistant/internal/gcal"
)

func TestWorkflow_RunEndToEnd(t *testing.T) {
	cal := &fakeCalendar{
		created: gcal.CreatedEvent{ID: "ev1", HTMLLink: "https://calendar.example/ev1"},
		items: []gcal.EventItem{
			{
				Summary:   "Standup",
				StartTime: time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2026, time.March, 3, 9, 15, 0, 0, time.UTC),
			},
		},
	}
	email := &fakeSender{}
	executor := newTestExecutor(nil, cal, email)
	workflow := NewWorkflow(NewRouter(nil), executor)

	tests := []struct {
		name     string
		query    string
		contains string
	}{
		{
			name:     "create request",
			query:    "Schedule a review tomorrow from 2 pm to 3 pm",
			contains: "✅ Event Scheduled Successfully!",
		},
		{
			name:     "list request",
			query:    "show my next 5 events",
			contains: "Upcoming 5 Events:",
		},
		{
			name:     "email request",
			query:    "send email to john@example.com about budget",
			contains: "✅ Email sent successfully!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := workflow.Run(context.Background(), tt.query)

			require.NotEmpty(t, response)
			assert.Contains(t, response, tt.contains)
		})
	}
}

func TestWorkflow_RecoversFromPanic(t *testing.T) {
	// A nil executor makes the execution stage panic; Run must still
	// return a readable message.
	workflow := NewWorkflow(NewRouter(nil), nil)

	response := workflow.Run(context.Background(), "schedule something")

	assert.Contains(t, response, "Error processing your request:")
}
