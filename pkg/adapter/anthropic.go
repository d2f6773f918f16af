package adapter

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/madslabs/mads/pkg/artifact"
	"github.com/madslabs/mads/pkg/tool"
)

// AnthropicAdapter implements the Adapter interface for Claude models.
type AnthropicAdapter struct {
	client anthropic.Client
}

// NewAnthropicAdapter creates a new Anthropic adapter.
func NewAnthropicAdapter(apiKey string) (*AnthropicAdapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicAdapter{client: client}, nil
}

// Name returns the adapter identifier.
func (a *AnthropicAdapter) Name() string {
	return "anthropic"
}

// Models returns the list of supported Claude models.
func (a *AnthropicAdapter) Models() []string {
	return []string{
		"claude-sonnet-4-20250514",
		"claude-opus-4-20250514",
	}
}

// Execute runs the worker request against Claude, feeding tool results back
// into the conversation until the model ends its turn or the iteration cap
// is reached.
func (a *AnthropicAdapter) Execute(ctx context.Context, req Request) (*Response, error) {
	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
	}

	var toolCalls []ToolCall
	maxIterations := req.maxIterations()

	for iteration := 0; iteration < maxIterations; iteration++ {
		resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(req.Model),
			MaxTokens:   4096,
			Temperature: anthropic.Float(req.Temperature),
			System: []anthropic.TextBlockParam{
				{Text: systemPrompt(req)},
			},
			Messages: messages,
			Tools:    anthropicToolParams(req.Tools),
		})
		if err != nil {
			return nil, &Error{Provider: a.Name(), Err: err}
		}

		var assistantBlocks []anthropic.ContentBlockParamUnion
		var toolResultBlocks []anthropic.ContentBlockParamUnion
		var text string

		for _, block := range resp.Content {
			switch variant := block.AsAny().(type) {
			case anthropic.TextBlock:
				text += variant.Text
				assistantBlocks = append(assistantBlocks, anthropic.NewTextBlock(variant.Text))

			case anthropic.ToolUseBlock:
				result, call := invokeTool(ctx, req.Tools, variant.Name, variant.Input)
				toolCalls = append(toolCalls, call)

				assistantBlocks = append(assistantBlocks,
					anthropic.NewToolUseBlock(variant.ID, variant.Input, variant.Name))
				toolResultBlocks = append(toolResultBlocks,
					anthropic.NewToolResultBlock(variant.ID, result.Content, result.IsError))
			}
		}

		if resp.StopReason == anthropic.StopReasonEndTurn {
			art := artifact.New(text, req.Worker, a.Name(), req.Model, req.Prompt)
			return &Response{Artifact: art, ToolCalls: toolCalls}, nil
		}

		messages = append(messages, anthropic.NewAssistantMessage(assistantBlocks...))
		if len(toolResultBlocks) > 0 {
			messages = append(messages, anthropic.NewUserMessage(toolResultBlocks...))
		}
	}

	return nil, fmt.Errorf("worker %s exhausted %d reasoning iterations", req.Worker, maxIterations)
}

func anthropicToolParams(tools []tool.Tool) []anthropic.ToolUnionParam {
	if len(tools) == 0 {
		return nil
	}
	params := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		info := t.Info()
		properties := make(map[string]interface{}, len(info.Parameters))
		var required []string
		for _, p := range info.Parameters {
			properties[p.Name] = map[string]interface{}{
				"type":        p.Type,
				"description": p.Description,
			}
			if p.Required {
				required = append(required, p.Name)
			}
		}
		params = append(params, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        info.Name,
				Description: anthropic.String(info.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: properties,
					Required:   required,
				},
			},
		})
	}
	return params
}
