package probe

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hostfacts-labs/hostfacts/pkg/models"
)

// ErrCPUInfoUnavailable is the one fatal probe condition: the processor
// descriptor file is missing, unreadable or empty. Without it no report
// is meaningful.
var ErrCPUInfoUnavailable = errors.New("cpuinfo unavailable")

// firstSeen captures the first non-empty value offered to it and ignores
// every later candidate, so which value wins never depends on anything
// but descriptor order.
type firstSeen struct {
	value string
	set   bool
}

func (f *firstSeen) capture(v string) {
	if f.set || v == "" {
		return
	}
	f.value = v
	f.set = true
}

func (f *firstSeen) orUnknown() string {
	if !f.set {
		return models.Unknown
	}
	return f.value
}

// CPUInfo is the outcome of one pass over the processor descriptor file.
type CPUInfo struct {
	Vendor    string
	Model     string
	CacheSize string // raw descriptor string, e.g. "8192 KB"

	// LogicalCores counts processor entries and nothing else.
	LogicalCores int

	// CoresPerPackage maps a physical package id to the core count that
	// package first advertised. Repeat sightings of a package never
	// overwrite the recorded count.
	CoresPerPackage map[int64]int64

	// FirstMHz is the first parseable per-processor "cpu MHz" sample,
	// unrounded. It is only a fallback; the cpufreq policy interface is
	// preferred when present.
	FirstMHz *float64
}

// PhysicalCores sums the per-package core counts. 0 means the package
// layout could not be determined from the descriptor alone and the
// sysfs topology fallback should be consulted.
func (ci *CPUInfo) PhysicalCores() int {
	var total int64
	for _, cores := range ci.CoresPerPackage {
		total += cores
	}
	return int(total)
}

// ParseCPUInfo scans the processor descriptor file once. Identity
// strings adopt the first non-empty value seen; logical cores count
// processor entries; core counts are attributed to the package id most
// recently declared. Malformed numeric values skip their line only.
func ParseCPUInfo(path string) (*CPUInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCPUInfoUnavailable, err)
	}
	defer f.Close()

	info := &CPUInfo{CoresPerPackage: make(map[int64]int64)}
	var vendor, model, cache firstSeen
	var (
		currentPackage int64
		havePackage    bool
		sawContent     bool
	)

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !sawContent && strings.TrimSpace(line) != "" {
			sawContent = true
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "processor":
			info.LogicalCores++
		case "vendor_id":
			vendor.capture(value)
		case "model name":
			model.capture(value)
		case "cache size":
			cache.capture(value)
		case "cpu MHz":
			if info.FirstMHz == nil {
				if mhz, err := strconv.ParseFloat(value, 64); err == nil {
					info.FirstMHz = &mhz
				}
			}
		case "physical id":
			if id, err := strconv.ParseInt(value, 10, 64); err == nil {
				currentPackage, havePackage = id, true
			} else {
				havePackage = false
			}
		case "cpu cores":
			if !havePackage {
				continue
			}
			if _, seen := info.CoresPerPackage[currentPackage]; seen {
				continue
			}
			if cores, err := strconv.ParseInt(value, 10, 64); err == nil {
				info.CoresPerPackage[currentPackage] = cores
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCPUInfoUnavailable, err)
	}
	if !sawContent {
		return nil, fmt.Errorf("%w: %s is empty", ErrCPUInfoUnavailable, path)
	}

	info.Vendor = vendor.orUnknown()
	info.Model = model.orUnknown()
	info.CacheSize = cache.orUnknown()
	return info, nil
}
