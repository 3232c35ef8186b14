package log

import "github.com/fatih/color"

func Color(l LogLevel) *color.Color {
	var c *color.Color
	switch l {
	case Debug:
		c = color.New(color.FgBlue)
	case Info:
		c = color.New(color.FgGreen)
	case Warn:
		c = color.New(color.FgYellow)
	case Error:
		c = color.New(color.FgRed)
	case Fatal:
		c = color.New(color.FgMagenta, color.Bold)
	default:
		c = color.New(color.Reset)
	}

	// Terminal detection happens per logger, not through the global color state
	c.EnableColor()
	return c
}
