package cmd

// Flag value types understood by the parser.
const (
	FlagTypeString = "string"
	FlagTypeBool   = "bool"
	FlagTypeInt    = "int"
)

// CommandArgs contains parsed command arguments
type CommandArgs struct {
	// Positional arguments (command-specific)
	Args []string

	// Parsed flags
	Flags map[string]any

	// Raw unparsed arguments (for custom parsing)
	Raw []string
}

// NewCommandArgs creates arguments from already parsed values.
func NewCommandArgs(args []string, flags map[string]any) *CommandArgs {
	if flags == nil {
		flags = make(map[string]any)
	}

	return &CommandArgs{
		Args:  args,
		Flags: flags,
	}
}

// Arg returns the positional argument at index i or fallback.
func (ca *CommandArgs) Arg(i int, fallback string) string {
	if i < len(ca.Args) {
		return ca.Args[i]
	}
	return fallback
}

// Has reports whether the flag was set or has a default.
func (ca *CommandArgs) Has(name string) bool {
	_, ok := ca.Flags[name]
	return ok
}

func (ca *CommandArgs) String(name string) string {
	s, _ := ca.Flags[name].(string)
	return s
}

func (ca *CommandArgs) Bool(name string) bool {
	b, _ := ca.Flags[name].(bool)
	return b
}

// Int returns the integer flag name or fallback when it is not set.
func (ca *CommandArgs) Int(name string, fallback int64) int64 {
	switch v := ca.Flags[name].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return fallback
	}
}

// CommandFlagSet defines the expected flags for a command
type CommandFlagSet struct {
	Flags map[string]*CommandFlag
}

// NewFlagSet creates a flag set keyed by the long flag names.
func NewFlagSet(flags ...*CommandFlag) *CommandFlagSet {
	fs := &CommandFlagSet{
		Flags: make(map[string]*CommandFlag, len(flags)),
	}
	for _, flag := range flags {
		fs.Flags[flag.Name] = flag
	}

	return fs
}

// CommandFlag represents a single command-line flag
type CommandFlag struct {
	Name        string `json:"name"`              // e.g., "type"
	Short       string `json:"short"`             // Single-char shorthand (e.g., "t")
	Type        string `json:"type"`              // "string", "bool", "int"
	Default     any    `json:"default,omitempty"` // Default value
	Required    bool   `json:"required"`          // Must be provided
	Description string `json:"description"`       // Help text
}
