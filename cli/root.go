package main

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/mwantia/traverse/cmd"
	"github.com/mwantia/traverse/cmd/builtin"
	"github.com/mwantia/traverse/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// ExitError carries the exit code of a command that did not succeed.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

type rootOptions struct {
	configPath string
}

// NewRootCommand creates the root cobra command with one subcommand per builtin command.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "traverse",
		Short: "Walk directory trees on local and remote listing backends",
		Long: `Traverse walks directory trees in descend-first or descend-last order.

Trees are read through a listing backend: the local filesystem, a sqlite or
postgres index, the Consul KV store or an S3 bucket.`,
		Version:      Version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "Path to config file")
	root.PersistentFlags().String("backend", "", "Listing backend (local, memory, sqlite, postgres, consul, s3)")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-file", "", "Also write logs into a rotated file")

	for _, command := range builtin.Commands() {
		root.AddCommand(newCommand(opts, command))
	}

	return root
}

func newCommand(opts *rootOptions, command cmd.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   command.Usage(),
		Short: command.Description(),
		RunE: func(c *cobra.Command, args []string) error {
			values, err := collectFlags(c.Flags(), command.GetFlags())
			if err != nil {
				return err
			}

			return opts.run(c, command.Name(), cmd.NewCommandArgs(args, values))
		},
	}

	bindFlags(c.Flags(), command.GetFlags())
	return c
}

func (opts *rootOptions) loadConfig(c *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	var backendName, logLevel, logFile *string
	if c.Flags().Changed("backend") {
		v, _ := c.Flags().GetString("backend")
		backendName = &v
	}
	if c.Flags().Changed("log-level") {
		v, _ := c.Flags().GetString("log-level")
		logLevel = &v
	}
	if c.Flags().Changed("log-file") {
		v, _ := c.Flags().GetString("log-file")
		logFile = &v
	}

	cfg.MergeWithFlags(backendName, logLevel, logFile)
	return cfg, cfg.Validate()
}

func (opts *rootOptions) run(c *cobra.Command, name string, args *cmd.CommandArgs) error {
	ctx := c.Context()

	cfg, err := opts.loadConfig(c)
	if err != nil {
		return err
	}

	logger, err := cfg.NewLogger(c.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Close()

	lister, err := cfg.OpenLister(ctx)
	if err != nil {
		return err
	}
	defer lister.Close(context.WithoutCancel(ctx))

	m := cmd.NewManager(&cmd.Env{
		Lister: lister,
		Logger: logger,
	})
	if err := builtin.Register(m); err != nil {
		return err
	}

	code, err := m.Run(ctx, name, args, c.OutOrStdout())
	if err == nil && code != 0 {
		err = fmt.Errorf("%s exited with code %d", name, code)
	}
	if err != nil {
		return &ExitError{Code: max(code, 1), Err: err}
	}

	return nil
}

// bindFlags registers the command flags on a pflag set.
func bindFlags(fs *pflag.FlagSet, flags *cmd.CommandFlagSet) {
	for _, name := range slices.Sorted(maps.Keys(flags.Flags)) {
		flag := flags.Flags[name]

		switch flag.Type {
		case cmd.FlagTypeBool:
			def, _ := flag.Default.(bool)
			fs.BoolP(flag.Name, flag.Short, def, flag.Description)
		case cmd.FlagTypeInt:
			fs.Int64P(flag.Name, flag.Short, toInt64(flag.Default), flag.Description)
		default:
			def, _ := flag.Default.(string)
			fs.StringP(flag.Name, flag.Short, def, flag.Description)
		}

		if flag.Required {
			cobra.MarkFlagRequired(fs, flag.Name)
		}
	}
}

// collectFlags returns the values of all flags that were set or carry a default.
// Unset flags without default stay absent so commands can tell them apart.
func collectFlags(fs *pflag.FlagSet, flags *cmd.CommandFlagSet) (map[string]any, error) {
	values := make(map[string]any, len(flags.Flags))

	for name, flag := range flags.Flags {
		if !fs.Changed(name) && flag.Default == nil {
			continue
		}

		var (
			value any
			err   error
		)
		switch flag.Type {
		case cmd.FlagTypeBool:
			value, err = fs.GetBool(name)
		case cmd.FlagTypeInt:
			value, err = fs.GetInt64(name)
		default:
			value, err = fs.GetString(name)
		}
		if err != nil {
			return nil, err
		}

		values[name] = value
	}

	return values, nil
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}
