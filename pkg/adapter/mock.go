package adapter

import (
	"context"
	"fmt"

	"github.com/madslabs/mads/pkg/artifact"
)

// MockAdapter returns deterministic responses for local runs and tests. It
// records every request it receives so tests can inspect assembled contexts.
type MockAdapter struct {
	responses       map[string]string
	errors          map[string]error
	defaultResponse string
	Requests        []Request
}

// NewMockAdapter creates a mock adapter with a default response.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{
		responses:       make(map[string]string),
		errors:          make(map[string]error),
		defaultResponse: "mock response:",
	}
}

// NewMockAdapterWithResponses creates a mock adapter that answers by worker
// name.
func NewMockAdapterWithResponses(responses map[string]string, defaultResponse string) *MockAdapter {
	if defaultResponse == "" {
		defaultResponse = "mock response:"
	}
	return &MockAdapter{
		responses:       responses,
		errors:          make(map[string]error),
		defaultResponse: defaultResponse,
	}
}

// FailWorker makes requests for the given worker return err.
func (a *MockAdapter) FailWorker(worker string, err error) {
	a.errors[worker] = err
}

// Name returns the adapter identifier.
func (a *MockAdapter) Name() string {
	return "mock"
}

// Models returns the list of supported mock models.
func (a *MockAdapter) Models() []string {
	return []string{"mock-1"}
}

// Execute records the request and returns the scripted response for its
// worker, or the default response followed by the prompt.
func (a *MockAdapter) Execute(_ context.Context, req Request) (*Response, error) {
	a.Requests = append(a.Requests, req)

	if err, ok := a.errors[req.Worker]; ok {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = "mock-1"
	}

	content, ok := a.responses[req.Worker]
	if !ok {
		content = fmt.Sprintf("%s\n%s", a.defaultResponse, req.Prompt)
	}

	art := artifact.New(content, req.Worker, a.Name(), model, req.Prompt)
	return &Response{Artifact: art}, nil
}
