package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// success prints a confirmation with a green checkmark
func success(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", green("✔"), fmt.Sprintf(format, args...))
}

// warn prints a warning with a yellow marker
func warn(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", yellow("!"), fmt.Sprintf(format, args...))
}

// fail prints an error in red
func fail(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, red(fmt.Sprintf(format, args...)))
}
