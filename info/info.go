// Package info provides utility functions for extracting info lines and
// fields from the replies returned by the modem in response to AT commands.
//
// Replies are treated as an unstructured blob of text, as the modem does not
// reliably delimit them.
package info

import (
	"strconv"
	"strings"
)

// HasPrefix returns true if the line begins with the info prefix for the command.
func HasPrefix(line, cmd string) bool {
	return strings.HasPrefix(line, cmd+":")
}

// TrimPrefix removes the command  prefix, if any, and any intervening space
// from the info line.
func TrimPrefix(line, cmd string) string {
	return strings.TrimLeft(strings.TrimPrefix(line, cmd+":"), " ")
}

// Find locates the first info prefix for the command within the reply and
// returns the remainder of the reply following the prefix and any
// intervening space.
//
// Returns false if the reply contains no such prefix.
func Find(reply, cmd string) (string, bool) {
	idx := strings.Index(reply, cmd+":")
	if idx == -1 {
		return "", false
	}
	return TrimPrefix(reply[idx:], cmd), true
}

// FindAll returns the remainder of the reply following each info prefix for
// the command, in order.
//
// At most n are returned, or all if n is negative.
func FindAll(reply, cmd string, n int) []string {
	var infos []string
	prefix := cmd + ": "
	for n < 0 || len(infos) < n {
		idx := strings.Index(reply, prefix)
		if idx == -1 {
			break
		}
		reply = reply[idx+len(prefix):]
		infos = append(infos, reply)
	}
	return infos
}

// Line returns the text up to the first line terminator.
func Line(text string) string {
	if idx := strings.IndexAny(text, "\r\n"); idx != -1 {
		return text[:idx]
	}
	return text
}

// Fields splits an info line into its comma separated fields.
//
// Quoted fields may contain commas, and are returned without their quotes.
// Space preceding a field is dropped.
func Fields(line string) []string {
	fields := []string{}
	var b strings.Builder
	quoted := false
	started := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			quoted = !quoted
			started = true
		case quoted:
			b.WriteByte(c)
		case c == ',':
			fields = append(fields, b.String())
			b.Reset()
			started = false
		case c == ' ' && !started:
		default:
			b.WriteByte(c)
			started = true
		}
	}
	return append(fields, b.String())
}

// Int parses the leading decimal integer of the field, ignoring any
// leading space.
//
// Returns false if the field does not start with a number.
func Int(field string) (int, bool) {
	field = strings.TrimLeft(field, " ")
	end := 0
	for end < len(field) && field[end] >= '0' && field[end] <= '9' {
		end++
	}
	if end > 0 || len(field) == 0 || field[0] != '-' {
		v, err := strconv.Atoi(field[:end])
		return v, err == nil
	}
	v, ok := Int(field[1:])
	return -v, ok
}
