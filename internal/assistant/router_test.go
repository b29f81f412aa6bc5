package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoute_EmailAddressWins(t *testing.T) {
	llm := &fakeCompleter{}
	router := NewRouter(llm)

	tests := []struct {
		name  string
		query string
	}{
		{
			name:  "plain send request",
			query: "send a note to bob@example.com",
		},
		{
			name:  "address beats scheduling keywords",
			query: "schedule a meeting and email john.doe@company.org about it",
		},
		{
			name:  "address beats list keywords",
			query: "show this to alice@test.io",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := router.Route(context.Background(), tt.query)
			assert.Equal(t, []ActionKind{ActionSendEmail}, actions)
		})
	}

	assert.False(t, llm.called(), "keyword routing should not touch the LLM")
}

func TestRoute_KeywordStages(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []ActionKind
	}{
		{
			name:  "schedule keyword",
			query: "Schedule a dentist appointment tomorrow",
			want:  []ActionKind{ActionCalendarCreate},
		},
		{
			name:  "meeting with phrase",
			query: "Meeting with Sarah on Friday",
			want:  []ActionKind{ActionCalendarCreate},
		},
		{
			name:  "list keyword",
			query: "list my calendar",
			want:  []ActionKind{ActionCalendarList},
		},
		{
			name:  "what is on my calendar",
			query: "what's on my calendar",
			want:  []ActionKind{ActionCalendarList},
		},
		{
			name:  "email keyword without address",
			query: "compose email to the finance team",
			want:  []ActionKind{ActionSendEmail},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &fakeCompleter{}
			router := NewRouter(llm)

			actions := router.Route(context.Background(), tt.query)

			assert.Equal(t, tt.want, actions)
			assert.False(t, llm.called())
		})
	}
}

func TestRoute_LLMFallback(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     []ActionKind
	}{
		{
			name:     "clean JSON with two agents",
			response: `{"agents": ["calendar_create", "email"]}`,
			want:     []ActionKind{ActionCalendarCreate, ActionSendEmail},
		},
		{
			name:     "salvage agents field from chatty response",
			response: `Sure! Here is the classification: {"agents": ["calendar_list"]} hope that helps`,
			want:     []ActionKind{ActionCalendarList},
		},
		{
			name:     "salvage bare array",
			response: `The agents are ["email"]`,
			want:     []ActionKind{ActionSendEmail},
		},
		{
			name:     "unknown agents dropped",
			response: `{"agents": ["calendar_list", "weather"]}`,
			want:     []ActionKind{ActionCalendarList},
		},
		{
			name:     "valid but empty array",
			response: `{"agents": []}`,
			want:     []ActionKind{},
		},
		{
			name:     "unparsable response defaults to list",
			response: `I cannot classify that`,
			want:     []ActionKind{ActionCalendarList},
		},
		{
			name: "llm error defaults to list",
			err:  errors.New("rate limited"),
			want: []ActionKind{ActionCalendarList},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &fakeCompleter{
				responses: map[string]string{"quarterly numbers": tt.response},
				err:       tt.err,
			}
			router := NewRouter(llm)

			actions := router.Route(context.Background(), "handle the quarterly numbers")

			assert.Equal(t, tt.want, actions)
			assert.True(t, llm.called())
		})
	}
}

func TestRoute_NoLLMKeywordGuess(t *testing.T) {
	router := NewRouter(nil)

	tests := []struct {
		name  string
		query string
		want  []ActionKind
	}{
		{
			name:  "event word guesses create",
			query: "put the team event somewhere",
			want:  []ActionKind{ActionCalendarCreate},
		},
		{
			name:  "at sign guesses email",
			query: "ping someone @ work",
			want:  []ActionKind{ActionSendEmail},
		},
		{
			name:  "everything else lists",
			query: "quarterly numbers",
			want:  []ActionKind{ActionCalendarList},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := router.Route(context.Background(), tt.query)
			assert.Equal(t, tt.want, actions)
		})
	}
}
