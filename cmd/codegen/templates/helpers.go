package templates

import (
	"strconv"
	"strings"
)

// joinIndexed renders format once per index in [0, count), replacing every
// %d with the index, and joins the results with ", ".
func joinIndexed(format string, count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString(strings.ReplaceAll(format, "%d", strconv.Itoa(i)))
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

func prefixedStrings(prefix string, count int) string {
	return joinIndexed(prefix+"%d", count)
}

// a0 Reader[A0], a1 Reader[A1], ...
func readerParams(count int) string {
	return joinIndexed("a%d Reader[A%d]", count)
}

// a0.Get(), a1.Get(), ...
func getCalls(count int) string {
	return joinIndexed("a%d.Get()", count)
}
