package runner

import (
	"context"
	"path/filepath"
)

// Scripted [Runner] for tests.
//
// Results and errors are keyed by the base name of the executable
// (e.g., "make", "dub", "ar"). Commands without a scripted entry
// succeed with exit code 0 and empty output. Every invocation is
// recorded in order.
type Fake struct {
	Calls   []Cmd              // Invocations in execution order.
	Results map[string]*Result // Scripted results by executable base name.
	Errs    map[string]error   // Scripted start failures by executable base name.
}

// Records the invocation and returns the scripted outcome.
func (f *Fake) Run(ctx context.Context, cmd Cmd) (*Result, error) {
	f.Calls = append(f.Calls, cmd)

	name := filepath.Base(cmd.Path)
	if err, ok := f.Errs[name]; ok {
		return nil, err
	}
	if res, ok := f.Results[name]; ok {
		return res, nil
	}
	return &Result{}, nil
}

// Returns the recorded invocations of the named executable.
func (f *Fake) CallsTo(name string) []Cmd {
	var calls []Cmd
	for _, c := range f.Calls {
		if filepath.Base(c.Path) == name {
			calls = append(calls, c)
		}
	}
	return calls
}
