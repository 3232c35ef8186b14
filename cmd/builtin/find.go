package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/traverse"
	"github.com/mwantia/traverse/cmd"
	"github.com/mwantia/traverse/filter"
)

// FindCommand prints the paths below a root, one per line, like find(1).
type FindCommand struct {
}

// Name returns the command identifier
func (*FindCommand) Name() string {
	return "find"
}

// Description returns human-readable help text
func (*FindCommand) Description() string {
	return "Walk a directory tree and print every matching path"
}

// Usage returns a usage string for help
func (*FindCommand) Usage() string {
	return "find [--depth] [--ignore-errors] [-t f|d] [-n glob] [--maxdepth n] [--mindepth n] [-s key] [--prune glob] [root]"
}

// GetFlags returns the flag set for this command
func (*FindCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(
		&cmd.CommandFlag{Name: "depth", Short: "d", Type: cmd.FlagTypeBool, Description: "Print the contents of a directory before the directory itself"},
		&cmd.CommandFlag{Name: "ignore-errors", Short: "i", Type: cmd.FlagTypeBool, Description: "Skip directories that cannot be read"},
		&cmd.CommandFlag{Name: "type", Short: "t", Type: cmd.FlagTypeString, Description: "Only print files (f) or directories (d)"},
		&cmd.CommandFlag{Name: "name", Short: "n", Type: cmd.FlagTypeString, Description: "Only print entries whose name matches the glob"},
		&cmd.CommandFlag{Name: "maxdepth", Type: cmd.FlagTypeInt, Description: "Descend at most n levels below the root"},
		&cmd.CommandFlag{Name: "mindepth", Type: cmd.FlagTypeInt, Description: "Do not print entries above depth n"},
		&cmd.CommandFlag{Name: "sort", Short: "s", Type: cmd.FlagTypeString, Description: "Order entries by name, path, size or mtime; prefix '-' to reverse"},
		&cmd.CommandFlag{Name: "prune", Short: "p", Type: cmd.FlagTypeString, Description: "Print but do not enter directories whose name matches the glob"},
	)
}

// Execute runs the command with parsed arguments
func (fc *FindCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	t, err := NewTraversal(env, args)
	if err != nil {
		return 2, err
	}

	for entry, err := range t.All(ctx) {
		if err != nil {
			return 1, err
		}

		fmt.Fprintln(writer, entry.Path)
	}

	return 0, nil
}

// NewTraversal configures a traversal from the find flags. The root defaults to ".".
func NewTraversal(env *cmd.Env, args *cmd.CommandArgs) (*traverse.Traversal, error) {
	depthPolicy := traverse.DescendLast
	if args.Bool("depth") {
		depthPolicy = traverse.DescendFirst
	}

	t, err := traverse.New(args.Arg(0, "."), depthPolicy,
		traverse.WithLister(env.Lister),
		traverse.WithLogger(env.Log()))
	if err != nil {
		return nil, err
	}

	if args.Bool("ignore-errors") {
		if t, err = t.WithErrorPolicy(traverse.ErrorPolicyIgnore); err != nil {
			return nil, err
		}
	}

	var descend, iterate []traverse.Filter

	switch kind := args.String("type"); kind {
	case "":
	case "f":
		iterate = append(iterate, filter.Files())
	case "d":
		iterate = append(iterate, filter.Directories())
	default:
		return nil, fmt.Errorf("%w: unknown type '%s'", traverse.ErrInvalidArgument, kind)
	}

	if name := args.String("name"); name != "" {
		iterate = append(iterate, filter.Name(name))
	}

	if maxDepth := args.Int("maxdepth", -1); maxDepth >= 0 {
		iterate = append(iterate, filter.MaxDepth(int(maxDepth)))
		descend = append(descend, filter.MaxDepth(int(maxDepth)-1))
	}

	if minDepth := args.Int("mindepth", -1); minDepth > 0 {
		iterate = append(iterate, filter.MinDepth(int(minDepth)))
	}

	if prune := args.String("prune"); prune != "" {
		descend = append(descend, filter.Not(filter.Name(prune)))
	}

	if len(descend) > 0 {
		if t, err = t.WithDescendFilter(filter.And(descend...)); err != nil {
			return nil, err
		}
	}

	if len(iterate) > 0 {
		if t, err = t.WithIterateFilter(filter.And(iterate...)); err != nil {
			return nil, err
		}
	}

	if key := args.String("sort"); key != "" {
		comparator, err := filter.ParseComparator(key)
		if err != nil {
			return nil, err
		}

		if t, err = t.WithDescendComparator(comparator); err != nil {
			return nil, err
		}
		if t, err = t.WithIterateComparator(comparator); err != nil {
			return nil, err
		}
	}

	return t, nil
}
