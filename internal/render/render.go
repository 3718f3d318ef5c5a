// Package render turns a HardwareReport into its three presentation
// forms: the line-per-field text view, the one-line monitoring view and
// indented JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hostfacts-labs/hostfacts/pkg/models"
)

// Text writes the full line-per-field view.
func Text(w io.Writer, r *models.HardwareReport) {
	fmt.Fprintf(w, "Distribution: %s\n", r.Distribution.Pretty)
	fmt.Fprintf(w, "Kernel: %s\n", r.KernelRelease)
	fmt.Fprintf(w, "CPU Vendor: %s\n", r.CPU.Vendor)
	fmt.Fprintf(w, "CPU Model: %s\n", r.CPU.Model)
	fmt.Fprintf(w, "Logical Cores (threads): %d\n", r.CPU.LogicalCores)
	if r.CPU.PhysicalCores > 0 {
		fmt.Fprintf(w, "Physical Cores: %d\n", r.CPU.PhysicalCores)
	} else {
		fmt.Fprintf(w, "Physical Cores: %s\n", models.Unknown)
	}
	fmt.Fprintf(w, "Cache Size: %s\n", r.CPU.CacheSize)
	if r.CPU.FrequencyMHzCurrent != nil {
		fmt.Fprintf(w, "CPU Frequency Current (MHz): %.1f\n", *r.CPU.FrequencyMHzCurrent)
	} else {
		fmt.Fprintf(w, "CPU Frequency Current (MHz): %s\n", models.Unknown)
	}
	if r.CPU.FrequencyMHzMax != nil {
		fmt.Fprintf(w, "CPU Frequency Max (MHz): %.1f\n", *r.CPU.FrequencyMHzMax)
	} else {
		fmt.Fprintf(w, "CPU Frequency Max (MHz): %s\n", models.Unknown)
	}
	if r.CPU.FrequencySource != models.Unknown {
		fmt.Fprintf(w, "Frequency Source: %s\n", r.CPU.FrequencySource)
	}
	if r.MemoryGiB != nil {
		fmt.Fprintf(w, "Total Memory (GiB): %.2f\n", *r.MemoryGiB)
	} else {
		fmt.Fprintf(w, "Total Memory (GiB): %s\n", models.Unknown)
	}
}

// Short writes the one-line monitoring view:
//
//	<pretty> | CPU:<model> <N>t/<N>c | RAM:<gib> | <freq>
func Short(w io.Writer, r *models.HardwareReport) {
	model := r.CPU.Model
	if model == models.Unknown {
		model = "Unknown CPU"
	}
	if runes := []rune(model); len(runes) > 29 {
		model = string(runes[:28]) + "…"
	}

	cur, max := r.CPU.FrequencyMHzCurrent, r.CPU.FrequencyMHzMax
	freq := "n/a"
	switch {
	case cur != nil && max != nil:
		freq = fmt.Sprintf("%.0f/%.0fMHz", *cur, *max)
	case cur != nil:
		freq = fmt.Sprintf("%.0fMHz", *cur)
	case max != nil:
		freq = fmt.Sprintf("max%.0fMHz", *max)
	}

	mem := "n/a"
	if r.MemoryGiB != nil {
		mem = fmt.Sprintf("%.1fGiB", *r.MemoryGiB)
	}

	physical := "?"
	if r.CPU.PhysicalCores > 0 {
		physical = strconv.Itoa(r.CPU.PhysicalCores)
	}

	fmt.Fprintf(w, "%s | CPU:%s %dt/%sc | RAM:%s | %s\n",
		r.Distribution.Pretty, padRight(model, 30), r.CPU.LogicalCores, physical, padRight(mem, 8), freq)
}

// JSON writes the indented JSON view with a trailing newline.
func JSON(w io.Writer, r *models.HardwareReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// padRight pads by rune count so the ellipsis used in truncated model
// names does not shift the columns.
func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
