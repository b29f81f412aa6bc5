package assistant

import (
	"context"
	"fmt"
)

// Workflow ties routing and execution together. Run always returns a
// user-facing string, even when a handler panics.
type Workflow struct {
	router   *Router
	executor *Executor
}

func NewWorkflow(router *Router, executor *Executor) *Workflow {
	return &Workflow{router: router, executor: executor}
}

func (w *Workflow) Run(ctx context.Context, query string) (response string) {
	defer func() {
		if r := recover(); r != nil {
			response = fmt.Sprintf("Error processing your request: %v", r)
		}
	}()

	state := RequestState{Query: query}
	state.Actions = w.router.Route(ctx, state.Query)
	state.FinalResponse = w.executor.Execute(ctx, state.Actions, state.Query)
	if state.FinalResponse == "" {
		state.FinalResponse = "Sorry, I couldn't generate a response for your request."
	}
	return state.FinalResponse
}
