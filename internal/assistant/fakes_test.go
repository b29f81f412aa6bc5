package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/mwarade/go-assistant/internal/gcal"
)

// fakeCompleter serves canned responses keyed by a substring of the prompt
// and records every prompt it receives.
type fakeCompleter struct {
	responses map[string]string
	err       error
	prompts   []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string, _ bool) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	for key, response := range f.responses {
		if strings.Contains(prompt, key) {
			return response, nil
		}
	}
	return "", nil
}

func (f *fakeCompleter) called() bool {
	return len(f.prompts) > 0
}

// fakeCalendar records insert and list calls and returns configured values.
type fakeCalendar struct {
	insertedInput gcal.EventInput
	insertCalls   int
	insertErr     error
	created       gcal.CreatedEvent

	listCalls      int
	listMaxResults int64
	listHorizon    time.Duration
	listErr        error
	items          []gcal.EventItem
}

func (f *fakeCalendar) Insert(_ string, input gcal.EventInput) (gcal.CreatedEvent, error) {
	f.insertCalls++
	f.insertedInput = input
	if f.insertErr != nil {
		return gcal.CreatedEvent{}, f.insertErr
	}
	return f.created, nil
}

func (f *fakeCalendar) ListUpcoming(_ string, maxResults int64, horizon time.Duration) ([]gcal.EventItem, error) {
	f.listCalls++
	f.listMaxResults = maxResults
	f.listHorizon = horizon
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

// fakeSender records the last sent email.
type fakeSender struct {
	sendCalls int
	sendErr   error
	to        string
	subject   string
	body      string
}

func (f *fakeSender) Profile() (string, error) {
	return "sender@example.com", nil
}

func (f *fakeSender) Send(to, subject, body string) (string, error) {
	f.sendCalls++
	f.to = to
	f.subject = subject
	f.body = body
	if f.sendErr != nil {
		return "", f.sendErr
	}
	return "msg-1", nil
}
