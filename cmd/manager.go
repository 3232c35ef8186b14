package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// Manager handles command registration, parsing, and execution
type Manager struct {
	mu   sync.RWMutex
	env  *Env
	cmds map[string]Command
}

func NewManager(env *Env) *Manager {
	return &Manager{
		env:  env,
		cmds: make(map[string]Command),
	}
}

// Env returns the environment commands are executed with.
func (cm *Manager) Env() *Env {
	return cm.env
}

// Register registers a custom command
func (cm *Manager) Register(cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("command cannot be nil")
	}

	name := cmd.Name()
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	if _, exists := cm.cmds[name]; exists {
		return fmt.Errorf("command already registered: %s", name)
	}

	cm.cmds[name] = cmd
	return nil
}

// Unregister removes a registered command
func (cm *Manager) Unregister(name string) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if _, exists := cm.cmds[name]; !exists {
		return fmt.Errorf("command not found: %s", name)
	}

	delete(cm.cmds, name)
	return nil
}

// Get returns a command by name
func (cm *Manager) Get(name string) (Command, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	cmd, exists := cm.cmds[name]
	if !exists {
		return nil, fmt.Errorf("command not found: %s", name)
	}

	return cmd, nil
}

// List returns all registered commands sorted by name
func (cm *Manager) List() []Command {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	commands := make([]Command, 0, len(cm.cmds))
	for _, cmd := range cm.cmds {
		commands = append(commands, cmd)
	}

	slices.SortFunc(commands, func(a, b Command) int {
		return strings.Compare(a.Name(), b.Name())
	})

	return commands
}

// Execute parses and executes a command line such as "find -t f /src".
func (cm *Manager) Execute(ctx context.Context, writer io.Writer, args ...string) (int, error) {
	if len(args) == 0 {
		return 1, fmt.Errorf("no command specified")
	}

	cmd, err := cm.Get(args[0])
	if err != nil {
		return 1, err
	}

	parsedArgs, err := NewParser(cmd.GetFlags()).Parse(args[1:])
	if err != nil {
		return 1, err
	}

	return cm.run(ctx, cmd, parsedArgs, writer)
}

// Run executes the command name with arguments that were already parsed,
// e.g. by a cobra flag set.
func (cm *Manager) Run(ctx context.Context, name string, args *CommandArgs, writer io.Writer) (int, error) {
	cmd, err := cm.Get(name)
	if err != nil {
		return 1, err
	}

	return cm.run(ctx, cmd, args, writer)
}

func (cm *Manager) run(ctx context.Context, cmd Command, args *CommandArgs, writer io.Writer) (int, error) {
	if cm.env == nil || cm.env.Lister == nil {
		return 1, fmt.Errorf("command %s: no listing backend configured", cmd.Name())
	}

	cm.env.Log().Debug("executing '%s' with %v", cmd.Name(), args.Args)
	return cmd.Execute(ctx, cm.env, args, writer)
}
