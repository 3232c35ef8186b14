package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/traverse/backend/sqlite"
	"github.com/mwantia/traverse/cmd"
)

// IndexCommand walks a tree and stores every entry in a SQLite database
// that can later be used as listing backend.
type IndexCommand struct {
}

func (*IndexCommand) Name() string {
	return "index"
}

func (*IndexCommand) Description() string {
	return "Store every entry below a root in a SQLite index"
}

func (*IndexCommand) Usage() string {
	return "index --db file [--depth] [--ignore-errors] [root]"
}

func (*IndexCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(
		&cmd.CommandFlag{Name: "db", Type: cmd.FlagTypeString, Required: true, Description: "Path of the SQLite database to write"},
		&cmd.CommandFlag{Name: "depth", Short: "d", Type: cmd.FlagTypeBool, Description: "Store the contents of a directory before the directory itself"},
		&cmd.CommandFlag{Name: "ignore-errors", Short: "i", Type: cmd.FlagTypeBool, Description: "Skip directories that cannot be read"},
	)
}

func (ic *IndexCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	dbPath := args.String("db")
	if dbPath == "" {
		return 2, fmt.Errorf("index: flag --db requires a value")
	}

	t, err := NewTraversal(env, args)
	if err != nil {
		return 2, err
	}

	sb, err := sqlite.NewSQLiteBackend(dbPath)
	if err != nil {
		return 1, fmt.Errorf("index: failed to create database '%s': %w", dbPath, err)
	}
	if err := sb.Open(ctx); err != nil {
		sb.Close(ctx)
		return 1, fmt.Errorf("index: failed to open database '%s': %w", dbPath, err)
	}
	defer sb.Close(context.WithoutCancel(ctx))

	count, err := sb.Import(ctx, t)
	fmt.Fprintf(writer, "%d entries indexed in %s\n", count, dbPath)
	if err != nil {
		return 1, err
	}

	env.Log().Info("indexed %d entries from %s", count, t.Settings().RootPath())
	return 0, nil
}
