// Package prompt asks the user yes/no questions on a line-based console.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// DefaultAttempts is how many indecisive answers Confirm tolerates.
const DefaultAttempts = 3

var warn = color.New(color.FgYellow)

// Confirm writes question to w and reads answers from r until one starts
// with "y" or "n" (case-insensitive, surrounding whitespace ignored). Blank
// or unrecognized answers are asked again. After maxAttempts tries, or when
// r runs out of input, a warning is printed and the answer is no.
func Confirm(r io.Reader, w io.Writer, question string, maxAttempts int) bool {
	reader := bufio.NewReader(r)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(w, "%s [y/n] ", question)

		line, err := reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(answer, "y"):
			return true
		case strings.HasPrefix(answer, "n"):
			return false
		}
		if err != nil {
			// No more input is coming; asking again would spin.
			fmt.Fprintln(w)
			break
		}
	}

	warn.Fprintf(w, "Could not determine what you want after %d attempts. Assuming 'no' is your answer.\n", maxAttempts)
	return false
}
