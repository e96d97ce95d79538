package workspace

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/pocketide/internal/types"
	"github.com/user/pocketide/pkg/backend"
)

// Run executes code remotely. A result carrying both output and error is a
// completed run; only a transport failure returns a non-nil error.
func Run(ctx context.Context, client backend.Client, code, language string, inputs []string) (*types.ExecutionResult, error) {
	if inputs == nil {
		inputs = []string{}
	}
	result, err := client.Execute(ctx, &backend.ExecuteRequest{
		Code:     code,
		Language: language,
		Inputs:   inputs,
	})
	if err != nil {
		return nil, fmt.Errorf("execute code: %w", err)
	}
	return result, nil
}

// FormatResult renders an execution result for display: output and error
// sections when present, then the execution time.
func FormatResult(result *types.ExecutionResult) string {
	var b strings.Builder
	if result.Output != "" {
		fmt.Fprintf(&b, "Output:\n%s\n", result.Output)
	}
	if result.Error != "" {
		fmt.Fprintf(&b, "Error:\n%s\n", result.Error)
	}
	fmt.Fprintf(&b, "\nExecution time: %.3fs", result.ExecutionTime)
	return b.String()
}
