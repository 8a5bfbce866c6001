package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/colorstring"
)

// NO_COLOR is a global variable that is used to determine whether or not to enable color output.
var NO_COLOR bool = false

// Output is where Log writes. Tests swap it for a buffer.
var Output io.Writer = os.Stdout

var logColors = map[string]string{
	"red":    "red",
	"green":  "green",
	"yellow": "yellow",
	"purple": "magenta",
	"cyan":   "cyan",
	"blue":   "blue",
	"bold":   "bold",
}

// ColorCode returns the escape sequence of a colorstring color name like "green" or
// "reset", or an empty string when colors are disabled.
func ColorCode(name string) string {
	c := colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: NO_COLOR,
	}
	return c.Color("[" + name + "]")
}

// Log prints the message in the given color. Unknown colors (like "white") print plain text.
// The message itself never goes through colorstring, so brackets in commands survive.
func Log(color, message string) {
	tag, ok := logColors[color]
	if !ok || NO_COLOR {
		fmt.Fprintln(Output, message)
		return
	}
	fmt.Fprintln(Output, ColorCode(tag)+message+ColorCode("reset"))
}
