package cmd

import (
	"context"
	"io"

	"github.com/mwantia/traverse/backend"
	"github.com/mwantia/traverse/log"
)

// Env is the environment every command runs against.
type Env struct {
	// Lister reads the directories commands operate on
	Lister backend.Lister

	// Logger receives diagnostics; nil discards them
	Logger *log.Logger
}

// Log returns the logger of env or a logger discarding everything.
func (env *Env) Log() *log.Logger {
	if env == nil || env.Logger == nil {
		return log.NewNop()
	}
	return env.Logger
}

// Command represents an executable command operating on a listing backend.
type Command interface {
	// Name returns the command identifier
	Name() string

	// Description returns human-readable help text
	Description() string

	// Usage returns a usage string for help (e.g. "find [flags] [root]")
	Usage() string

	// Execute runs the command with parsed arguments
	// The writer parameter is where command output should be written
	// Returns exit code (0 = success) and error message
	Execute(ctx context.Context, env *Env, args *CommandArgs, writer io.Writer) (int, error)

	// GetFlags returns the flag set for this command (this is optional)
	GetFlags() *CommandFlagSet
}
