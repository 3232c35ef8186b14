package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/traverse/backend"
	"github.com/mwantia/traverse/cmd"
	"github.com/mwantia/traverse/data"
	"github.com/mwantia/traverse/filter"
)

type LsCommand struct {
}

// Name returns the command identifier
func (*LsCommand) Name() string {
	return "ls"
}

// Description returns human-readable help text
func (*LsCommand) Description() string {
	return "List the immediate children of a directory"
}

// Usage returns a usage string for help
func (*LsCommand) Usage() string {
	return "ls [-l] [-a] [-s key] [dir]"
}

// GetFlags returns the flag set for this command
func (*LsCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(
		&cmd.CommandFlag{Name: "long", Short: "l", Type: cmd.FlagTypeBool, Description: "Print mode, size and modification time"},
		&cmd.CommandFlag{Name: "all", Short: "a", Type: cmd.FlagTypeBool, Description: "Include entries whose name starts with a dot"},
		&cmd.CommandFlag{Name: "sort", Short: "s", Type: cmd.FlagTypeString, Default: "name", Description: "Order entries by name, path, size or mtime; prefix '-' to reverse"},
	)
}

// Execute runs the command with parsed arguments
func (ls *LsCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	comparator, err := filter.ParseComparator(args.String("sort"))
	if err != nil {
		return 2, err
	}

	listing, err := backend.List(ctx, env.Lister, args.Arg(0, "."))
	if err != nil {
		return 1, err
	}

	if !args.Bool("all") {
		hidden := filter.Hidden()
		listing = listing.Filter(func(entry *data.Entry) bool {
			return !hidden(entry, 1)
		})
	}

	for entry := range listing.Sort(comparator).All() {
		if !args.Bool("long") {
			fmt.Fprintln(writer, entry.Name)
			continue
		}

		modifyTime := "-"
		if !entry.ModifyTime.IsZero() {
			modifyTime = entry.ModifyTime.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(writer, "%s %10d %s %s\n", entry.Mode, entry.Size, modifyTime, entry.Name)
	}

	return 0, nil
}
