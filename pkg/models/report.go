package models

// Unknown is the sentinel reported for any string field whose value could
// not be determined. Presentation layers print it verbatim; an empty
// string or nil never reaches them.
const Unknown = "Unknown"

// Values for CPUIdentity.FrequencySource, named after the kernel
// interface that supplied the frequency.
const (
	// FreqSourceCPUFreq: the sysfs cpufreq policy interface.
	FreqSourceCPUFreq = "cpufreq"
	// FreqSourceCPUInfo: the first per-processor "cpu MHz" sample from
	// the CPU descriptor file.
	FreqSourceCPUInfo = "cpuinfo"
)

// HardwareReport is the single normalized record produced by one
// collection pass. It is built once per invocation and never mutated
// afterwards. Field declaration order keeps the emitted JSON keys
// sorted.
type HardwareReport struct {
	CPU           CPUIdentity  `json:"cpu"`
	Distribution  Distribution `json:"distribution"`
	KernelRelease string       `json:"kernel_release"` // e.g. 6.5.0-14-generic
	MemoryGiB     *float64     `json:"memory_gib"`     // total RAM in GiB, 2 decimals; nil when unreadable
	OSSystem      string       `json:"os_system"`      // uname sysname, e.g. Linux
	OSVersion     string       `json:"os_version"`     // uname version string
}

// CPUIdentity describes the processor as enumerated by the kernel.
type CPUIdentity struct {
	CacheSize           string   `json:"cache_size"`            // raw descriptor string, e.g. "8192 KB"
	FrequencyMHzCurrent *float64 `json:"frequency_mhz_current"` // MHz, 1 decimal; nil when no source available
	FrequencyMHzMax     *float64 `json:"frequency_mhz_max"`     // MHz, 1 decimal; nil without a cpufreq policy
	FrequencySource     string   `json:"frequency_source"`      // FreqSourceCPUFreq, FreqSourceCPUInfo or Unknown
	LogicalCores        int      `json:"logical_cores"`         // count of processor entries seen, never inferred
	Model               string   `json:"model"`
	PhysicalCores       int      `json:"physical_cores"` // 0 means undetermined
	Vendor              string   `json:"vendor"`
}

// Distribution identifies the OS distribution in short and pretty form.
type Distribution struct {
	Name    string `json:"name"`    // e.g. ubuntu
	Pretty  string `json:"pretty"`  // e.g. Ubuntu 22.04.3 LTS
	Version string `json:"version"` // e.g. 22.04
}

// NewHardwareReport returns a report with every field at its documented
// default: Unknown for strings, 0 for counts, nil for optional numerics.
// Resolvers overwrite only what they can actually determine, so no field
// is ever observable in a partially populated state.
func NewHardwareReport() *HardwareReport {
	return &HardwareReport{
		CPU: CPUIdentity{
			CacheSize:       Unknown,
			FrequencySource: Unknown,
			Model:           Unknown,
			Vendor:          Unknown,
		},
		Distribution: Distribution{
			Name:    Unknown,
			Pretty:  Unknown,
			Version: Unknown,
		},
		KernelRelease: Unknown,
		OSSystem:      Unknown,
		OSVersion:     Unknown,
	}
}
