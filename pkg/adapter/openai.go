package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/madslabs/mads/pkg/artifact"
	"github.com/madslabs/mads/pkg/tool"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// OpenAIAdapter implements the Adapter interface for OpenAI models.
type OpenAIAdapter struct {
	client openai.Client
}

// NewOpenAIAdapter creates a new OpenAI adapter.
func NewOpenAIAdapter(apiKey string) (*OpenAIAdapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIAdapter{client: client}, nil
}

// Name returns the adapter identifier.
func (a *OpenAIAdapter) Name() string {
	return "openai"
}

// Models returns the list of supported OpenAI models.
func (a *OpenAIAdapter) Models() []string {
	return []string{
		"gpt-4o-mini",
		"gpt-4o",
	}
}

// Execute runs the worker request against OpenAI, resolving function calls
// against the request's tools until the model produces a plain reply or the
// iteration cap is reached.
func (a *OpenAIAdapter) Execute(ctx context.Context, req Request) (*Response, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt(req)),
		openai.UserMessage(req.Prompt),
	}

	var toolCalls []ToolCall
	maxIterations := req.maxIterations()

	for iteration := 0; iteration < maxIterations; iteration++ {
		resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:               openai.ChatModel(req.Model),
			Messages:            messages,
			Temperature:         openai.Float(req.Temperature),
			MaxCompletionTokens: openai.Int(4096),
			Tools:               openaiToolParams(req.Tools),
		})
		if err != nil {
			return nil, &Error{Provider: a.Name(), Err: err}
		}
		if len(resp.Choices) == 0 {
			return nil, &Error{Provider: a.Name(), Err: fmt.Errorf("no choices returned")}
		}

		message := resp.Choices[0].Message
		if len(message.ToolCalls) == 0 {
			art := artifact.New(message.Content, req.Worker, a.Name(), req.Model, req.Prompt)
			return &Response{Artifact: art, ToolCalls: toolCalls}, nil
		}

		messages = append(messages, message.ToParam())
		for _, call := range message.ToolCalls {
			result, record := invokeTool(ctx, req.Tools, call.Function.Name, json.RawMessage(call.Function.Arguments))
			toolCalls = append(toolCalls, record)
			messages = append(messages, openai.ToolMessage(result.Content, call.ID))
		}
	}

	return nil, fmt.Errorf("worker %s exhausted %d reasoning iterations", req.Worker, maxIterations)
}

func openaiToolParams(tools []tool.Tool) []openai.ChatCompletionToolUnionParam {
	if len(tools) == 0 {
		return nil
	}
	params := make([]openai.ChatCompletionToolUnionParam, 0, len(tools))
	for _, t := range tools {
		info := t.Info()
		properties := make(map[string]interface{}, len(info.Parameters))
		required := []string{}
		for _, p := range info.Parameters {
			properties[p.Name] = map[string]interface{}{
				"type":        p.Type,
				"description": p.Description,
			}
			if p.Required {
				required = append(required, p.Name)
			}
		}
		params = append(params, openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        info.Name,
			Description: openai.String(info.Description),
			Parameters: openai.FunctionParameters{
				"type":       "object",
				"properties": properties,
				"required":   required,
			},
		}))
	}
	return params
}
