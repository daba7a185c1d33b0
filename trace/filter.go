package trace

import (
	"bufio"
	"io"
	"strings"
)

// Filter copies r to w line by line. Each line (including its trailing
// newline) passes through keep; returning the empty string drops the line.
// Useful for tailing just one side of a run from a shared trace stream.
func Filter(r io.Reader, w io.Writer, keep func(line string) string) error {
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := keep(s.Text() + "\n")
		if len(line) > 0 {
			if _, err := io.WriteString(w, line); err != nil {
				return err
			}
		}
	}
	return s.Err()
}

// Scope keeps only lines emitted by the named logger. hclog writes the
// logger name between the level and the message, e.g.
// "[TRACE] tester.producer: produced: value=3".
func Scope(name string) func(line string) string {
	marker := " " + name + ": "
	return func(line string) string {
		if strings.Contains(line, marker) {
			return line
		}
		return ""
	}
}
