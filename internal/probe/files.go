package probe

import (
	"os"
	"strconv"
	"strings"
)

// Readers for the kernel's small pseudo-files. A missing file, an
// unreadable file and empty content are all ordinary outcomes reported
// through the ok result; none of them is an error.

// readLine returns the first line of the file with surrounding
// whitespace trimmed.
func readLine(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	line := string(data)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	return line, true
}

// readInt64 reads the first line and parses it as a base-10 integer.
// Non-numeric content counts as absent.
func readInt64(path string) (int64, bool) {
	s, ok := readLine(path)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// readAll returns the whole file with surrounding whitespace trimmed.
func readAll(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	s := strings.TrimSpace(string(data))
	if s == "" {
		return "", false
	}
	return s, true
}
