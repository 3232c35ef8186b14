package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlagSet() *CommandFlagSet {
	return NewFlagSet(
		&CommandFlag{Name: "long", Short: "l", Type: FlagTypeBool},
		&CommandFlag{Name: "all", Short: "a", Type: FlagTypeBool},
		&CommandFlag{Name: "sort", Short: "s", Type: FlagTypeString, Default: "name"},
		&CommandFlag{Name: "maxdepth", Type: FlagTypeInt},
	)
}

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name      string
		raw       []string
		wantArgs  []string
		wantFlags map[string]any
	}{
		{
			name:      "defaults",
			raw:       []string{"/top"},
			wantArgs:  []string{"/top"},
			wantFlags: map[string]any{"sort": "name"},
		},
		{
			name:      "long flags",
			raw:       []string{"--long", "--sort", "size", "--maxdepth=3", "/top"},
			wantArgs:  []string{"/top"},
			wantFlags: map[string]any{"long": true, "sort": "size", "maxdepth": int64(3)},
		},
		{
			name:      "grouped short flags",
			raw:       []string{"-la", "/a", "/b"},
			wantArgs:  []string{"/a", "/b"},
			wantFlags: map[string]any{"long": true, "all": true, "sort": "name"},
		},
		{
			name:      "short flag value",
			raw:       []string{"-s", "-size", "/top"},
			wantArgs:  []string{"/top"},
			wantFlags: map[string]any{"sort": "-size"},
		},
		{
			name:      "attached short flag value",
			raw:       []string{"-lsmtime"},
			wantArgs:  nil,
			wantFlags: map[string]any{"long": true, "sort": "mtime"},
		},
		{
			name:      "bool with value",
			raw:       []string{"--long=false", "--sort=-name"},
			wantArgs:  nil,
			wantFlags: map[string]any{"long": false, "sort": "-name"},
		},
		{
			name:      "terminator",
			raw:       []string{"--all", "--", "--long", "-x"},
			wantArgs:  []string{"--long", "-x"},
			wantFlags: map[string]any{"all": true, "sort": "name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := NewParser(newTestFlagSet()).Parse(tt.raw)
			require.NoError(t, err)

			assert.Equal(t, tt.wantArgs, args.Args)
			assert.Equal(t, tt.wantFlags, args.Flags)
			assert.Equal(t, tt.raw, args.Raw)
		})
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
	}{
		{name: "unknown long", raw: []string{"--owner"}},
		{name: "unknown short", raw: []string{"-x"}},
		{name: "missing value", raw: []string{"--sort"}},
		{name: "value looks like flag", raw: []string{"--sort", "-size"}},
		{name: "missing short value", raw: []string{"-s"}},
		{name: "invalid int", raw: []string{"--maxdepth", "deep"}},
		{name: "invalid bool", raw: []string{"--long=maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(newTestFlagSet()).Parse(tt.raw)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParser_RequiredFlag(t *testing.T) {
	parser := NewParser(NewFlagSet(
		&CommandFlag{Name: "db", Type: FlagTypeString, Required: true},
	))

	_, err := parser.Parse([]string{"/top"})
	require.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "--db")

	args, err := parser.Parse([]string{"--db", "index.db"})
	require.NoError(t, err)
	assert.Equal(t, "index.db", args.String("db"))
}

func TestParser_NilFlagSet(t *testing.T) {
	args, err := NewParser(nil).Parse([]string{"/top"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/top"}, args.Args)
	assert.Empty(t, args.Flags)
}

func TestCommandArgs_Accessors(t *testing.T) {
	args := NewCommandArgs([]string{"/top"}, map[string]any{
		"name":     "*.go",
		"long":     true,
		"maxdepth": int64(2),
		"mindepth": 1,
	})

	assert.Equal(t, "/top", args.Arg(0, "."))
	assert.Equal(t, ".", args.Arg(1, "."))
	assert.Equal(t, "*.go", args.String("name"))
	assert.Equal(t, "", args.String("long"))
	assert.True(t, args.Bool("long"))
	assert.False(t, args.Bool("all"))
	assert.Equal(t, int64(2), args.Int("maxdepth", -1))
	assert.Equal(t, int64(1), args.Int("mindepth", -1))
	assert.Equal(t, int64(-1), args.Int("name", -1))
	assert.True(t, args.Has("name"))
	assert.False(t, args.Has("sort"))
}
