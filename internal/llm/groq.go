package llm

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	groqBaseURL  = "https://api.groq.com/openai/v1"
	defaultModel = "gemma2-9b-it"
)

// Groq is a chat-completion client for the Groq API, which speaks the
// OpenAI chat-completions protocol.
type Groq struct {
	model string
	opts  []option.RequestOption
}

// NewGroq creates a Groq client. Returns an error when no API key is
// configured so callers can run without an LLM collaborator.
func NewGroq(apiKey, model string) (*Groq, error) {
	if apiKey == "" {
		return nil, errors.New("groq api key missing; set GROQ_API_KEY")
	}
	if model == "" {
		model = defaultModel
	}
	return &Groq{
		model: model,
		opts: []option.RequestOption{
			option.WithAPIKey(apiKey),
			option.WithBaseURL(groqBaseURL),
		},
	}, nil
}

// Complete sends a single-turn user prompt and returns the raw completion
// text. jsonMode requests a JSON object response; the model does not
// guarantee syntactic validity, so callers must parse defensively.
func (g *Groq) Complete(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	client := openai.NewClient(g.opts...)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if jsonMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
