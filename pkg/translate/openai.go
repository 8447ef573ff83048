package translate

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when model is not set
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIConfig configures OpenAI-compatible translator
type OpenAIConfig struct {
	APIKey   string
	Endpoint string // base url, e.g. http://localhost:11434/v1 for a local server
	Model    string
	Client   *http.Client // shared client, go-openai default if nil
}

// OpenAI translates with a chat completion model
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI makes LLM translator
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.Client != nil {
		clientConfig.HTTPClient = cfg.Client
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{client: openai.NewClientWithConfig(clientConfig), model: model}
}

const systemPrompt = `You translate short news headlines and posts. Translate the user message to the language with ISO 639-1 code %q.
Keep numbers, tickers, names and links unchanged. Reply with the translation only, no quotes and no comments.
If the text is already in the target language, return it unchanged.`

// Translate translates text to targetLang
func (o *OpenAI) Translate(ctx context.Context, text, targetLang string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(systemPrompt, targetLang)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from llm")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
