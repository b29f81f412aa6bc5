package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSubject(t *testing.T) {
	tests := []struct {
		name  string
		query string
		llm   *fakeCompleter
		want  string
	}{
		{
			name:  "explicit subject marker",
			query: `send email to bob@example.com with subject "Q3 Planning"`,
			want:  "Q3 Planning",
		},
		{
			name:  "about marker",
			query: "send email to bob@example.com about budget",
			want:  "budget",
		},
		{
			name:  "asking-about content phrase",
			query: "email bob@example.com asking him about the deployment schedule",
			want:  "the deployment schedule",
		},
		{
			name:  "software access topic",
			query: "email it-desk@example.com requesting software license",
			want:  "Software Access Request",
		},
		{
			name:  "regarding marker",
			query: "email hr@example.com regarding insurance",
			want:  "insurance",
		},
		{
			name:  "llm subject when no rule matches",
			query: "email bob@example.com, he knows what for",
			llm:   &fakeCompleter{responses: map[string]string{"he knows": `"Quick Question"`}},
			want:  "Quick Question",
		},
		{
			name:  "llm subject with newline rejected",
			query: "email bob@example.com, he knows what for",
			llm:   &fakeCompleter{responses: map[string]string{"he knows": "Subject line\nwith extra text"}},
			want:  "No Subject",
		},
		{
			name:  "generic fallback",
			query: "email bob@example.com, he knows what for",
			want:  "No Subject",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var llm Completer
			if tt.llm != nil {
				llm = tt.llm
			}
			executor := NewExecutor(ExecutorConfig{LLM: llm, Signature: "Milind Warade"})

			assert.Equal(t, tt.want, executor.deriveSubject(context.Background(), tt.query))
		})
	}
}

func TestComposeBody(t *testing.T) {
	query := "send email to bob@example.com about project status"

	t.Run("llm body is used when substantial", func(t *testing.T) {
		generated := "Hi Bob,\n\nHere is the latest on the project. Everything remains on track.\n\nBest regards,\nMilind Warade"
		llm := &fakeCompleter{responses: map[string]string{"Generate a professional email": generated}}
		executor := NewExecutor(ExecutorConfig{LLM: llm, Signature: "Milind Warade"})

		body := executor.composeBody(context.Background(), query, "bob@example.com", "project status")

		assert.Equal(t, generated, body)
	})

	t.Run("short llm body falls back to template", func(t *testing.T) {
		llm := &fakeCompleter{responses: map[string]string{"Generate a professional email": "ok"}}
		executor := NewExecutor(ExecutorConfig{LLM: llm, Signature: "Milind Warade"})

		body := executor.composeBody(context.Background(), query, "bob@example.com", "project status")

		assert.True(t, strings.HasPrefix(body, "Hello,"))
		assert.Contains(t, body, "update regarding")
		assert.Contains(t, body, "Best regards,\nMilind Warade")
	})

	t.Run("llm body with template artifacts falls back", func(t *testing.T) {
		generated := "Dear [Name],\n\nI am writing to you about the project status update we discussed."
		llm := &fakeCompleter{responses: map[string]string{"Generate a professional email": generated}}
		executor := NewExecutor(ExecutorConfig{LLM: llm, Signature: "Milind Warade"})

		body := executor.composeBody(context.Background(), query, "bob@example.com", "project status")

		assert.NotContains(t, body, "[Name]")
		assert.True(t, strings.HasPrefix(body, "Hello,"))
	})

	t.Run("llm error falls back to template", func(t *testing.T) {
		llm := &fakeCompleter{err: errors.New("unavailable")}
		executor := NewExecutor(ExecutorConfig{LLM: llm, Signature: "Milind Warade"})

		body := executor.composeBody(context.Background(), query, "bob@example.com", "project status")

		assert.True(t, strings.HasPrefix(body, "Hello,"))
		assert.Contains(t, body, "Best regards,\nMilind Warade")
	})

	t.Run("signature appended exactly once", func(t *testing.T) {
		executor := NewExecutor(ExecutorConfig{Signature: "Milind Warade"})

		body := executor.composeBody(context.Background(), query, "bob@example.com", "project status")

		assert.Equal(t, 1, strings.Count(body, "Milind Warade"))
	})
}

func TestExtractContentInfo(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		recipient string
		subject   string
		want      string
	}{
		{
			name:      "recipient and marker stripped",
			query:     "send email to bob@example.com about budget",
			recipient: "bob@example.com",
			subject:   "budget",
			want:      "budget",
		},
		{
			name:      "remaining topic text kept",
			query:     "send email to bob@example.com about the office move next month",
			recipient: "bob@example.com",
			subject:   "the office move next month",
			want:      "the office move next month",
		},
		{
			name:      "no recipient in query",
			query:     "draft an email regarding the audit",
			recipient: "",
			subject:   "the audit",
			want:      "the audit",
		},
		{
			name:      "regex metacharacters in subject are literal",
			query:     "send email to bob@example.com about costs (Q3)",
			recipient: "bob@example.com",
			subject:   "costs (Q3)",
			want:      "costs (Q3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractContentInfo(tt.query, tt.recipient, tt.subject))
		})
	}
}
