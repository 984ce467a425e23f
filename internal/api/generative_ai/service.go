package generativeAI

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// ToolCall is one structured function invocation issued by the model.
type ToolCall struct {
	Name string
	Args map[string]any
}

// GenResult is the model output the planner consumes: free text plus zero or
// more structured tool invocations.
type GenResult struct {
	Text  string
	Calls []ToolCall
}

// Generator is the structured-generation capability the planner consumes.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, userMessage string, tools []*genai.FunctionDeclaration) (*GenResult, error)
}

var _ Generator = (*AIClient)(nil)

type AIClient struct {
	client *genai.Client
	model  string
}

func NewAIClient(ctx context.Context, model string) (*AIClient, error) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_GEMINI_API_KEY environment variable is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &AIClient{
		client: client,
		model:  model,
	}, nil
}

// Generate runs one structured-generation call. Declared functions are
// offered to the model as callable tools; whatever calls it issues come back
// alongside the free text, unordered.
func (ai *AIClient) Generate(ctx context.Context, systemInstruction, userMessage string, tools []*genai.FunctionDeclaration) (*GenResult, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.7),
	}
	if systemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		}
	}
	if len(tools) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: tools}}
	}

	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(userMessage), config)
	if err != nil {
		return nil, fmt.Errorf("generate content failed: %w", err)
	}

	out := &GenResult{Text: result.Text()}
	for _, fc := range result.FunctionCalls() {
		out.Calls = append(out.Calls, ToolCall{Name: fc.Name, Args: fc.Args})
	}
	return out, nil
}
