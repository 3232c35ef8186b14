package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrParse is wrapped by every argument parsing error.
var ErrParse = errors.New("cmd: parse error")

// Parser parses user-defined arguments into flags
type Parser struct {
	flagSet *CommandFlagSet
}

func NewParser(flagSet *CommandFlagSet) *Parser {
	if flagSet == nil {
		flagSet = NewFlagSet()
	}

	return &Parser{
		flagSet: flagSet,
	}
}

// Parse splits raw into positional arguments and flags. Long flags take
// their value as "--name value" or "--name=value"; values starting with
// '-' must use the second form. Short bool flags may be grouped ("-ab").
func (cp *Parser) Parse(raw []string) (*CommandArgs, error) {
	args := &CommandArgs{
		Flags: make(map[string]any),
		Raw:   raw,
	}

	for flagName, flag := range cp.flagSet.Flags {
		if flag.Default != nil {
			args.Flags[flagName] = flag.Default
		}
	}

	longToName := make(map[string]string)
	shortToName := make(map[string]string)
	for flagName, flag := range cp.flagSet.Flags {
		longToName[flag.Name] = flagName
		if flag.Short != "" {
			shortToName[flag.Short] = flagName
		}
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		if arg == "--" {
			args.Args = append(args.Args, raw[i+1:]...)
			break
		}

		if strings.HasPrefix(arg, "--") {
			key, value, hasValue := parseLongFlag(arg)
			flagName, exists := longToName[key]
			if !exists {
				return nil, fmt.Errorf("%w: unknown flag --%s", ErrParse, key)
			}

			flag := cp.flagSet.Flags[flagName]
			switch {
			case flag.Type == FlagTypeBool && hasValue:
				v, err := coerce(value, flag)
				if err != nil {
					return nil, err
				}
				args.Flags[flagName] = v
			case flag.Type == FlagTypeBool:
				args.Flags[flagName] = true
			case hasValue:
				v, err := coerce(value, flag)
				if err != nil {
					return nil, err
				}
				args.Flags[flagName] = v
			case i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-"):
				v, err := coerce(raw[i+1], flag)
				if err != nil {
					return nil, err
				}
				args.Flags[flagName] = v
				i++
			default:
				return nil, fmt.Errorf("%w: flag --%s requires a value", ErrParse, key)
			}
			continue
		}

		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			shortFlags := arg[1:]

			for j, shortChar := range shortFlags {
				shortStr := string(shortChar)
				flagName, exists := shortToName[shortStr]
				if !exists {
					return nil, fmt.Errorf("%w: unknown flag -%s", ErrParse, shortStr)
				}

				flag := cp.flagSet.Flags[flagName]
				if flag.Type == FlagTypeBool {
					args.Flags[flagName] = true
					continue
				}

				var value string
				if j+1 < len(shortFlags) {
					value = shortFlags[j+1:]
				} else if i+1 < len(raw) {
					value = raw[i+1]
					i++
				} else {
					return nil, fmt.Errorf("%w: flag -%s requires a value", ErrParse, shortStr)
				}

				v, err := coerce(value, flag)
				if err != nil {
					return nil, err
				}
				args.Flags[flagName] = v
				break
			}
			continue
		}

		args.Args = append(args.Args, arg)
	}

	for flagName, flag := range cp.flagSet.Flags {
		if flag.Required {
			if _, ok := args.Flags[flagName]; !ok {
				if flag.Short != "" {
					return nil, fmt.Errorf("%w: required flag -%s / --%s", ErrParse, flag.Short, flag.Name)
				}
				return nil, fmt.Errorf("%w: required flag --%s", ErrParse, flag.Name)
			}
		}
	}

	return args, nil
}

func parseLongFlag(arg string) (key, value string, hasValue bool) {
	arg = strings.TrimPrefix(arg, "--")
	if idx := strings.Index(arg, "="); idx >= 0 {
		return arg[:idx], arg[idx+1:], true
	}
	return arg, "", false
}

func coerce(value string, flag *CommandFlag) (any, error) {
	switch flag.Type {
	case FlagTypeInt:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: flag --%s expects an integer, got '%s'", ErrParse, flag.Name, value)
		}
		return v, nil
	case FlagTypeBool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: flag --%s expects a boolean, got '%s'", ErrParse, flag.Name, value)
		}
		return v, nil
	default:
		return value, nil
	}
}
