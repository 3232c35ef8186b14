// Package builtin contains the commands shipped with the traverse cli.
package builtin

import (
	"github.com/mwantia/traverse/cmd"
)

// Commands returns a new instance of every builtin command.
func Commands() []cmd.Command {
	return []cmd.Command{
		&FindCommand{},
		&IndexCommand{},
		&LsCommand{},
	}
}

// Register adds every builtin command to m.
func Register(m *cmd.Manager) error {
	for _, c := range Commands() {
		if err := m.Register(c); err != nil {
			return err
		}
	}
	return nil
}
