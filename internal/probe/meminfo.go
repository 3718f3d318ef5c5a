package probe

import (
	"math"
	"strconv"
	"strings"
)

// MemoryGiB reads the first line of the memory summary file, expected as
// "MemTotal: <kB> kB", and converts the kilobyte figure to gibibytes
// rounded to two decimals. ok is false when the line is missing, has
// fewer than two fields or carries a non-numeric figure.
func MemoryGiB(path string) (float64, bool) {
	line, ok := readLine(path)
	if !ok {
		return 0, false
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, false
	}
	kb, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return math.Round(float64(kb)/1048576.0*100) / 100, true
}
