package probe

import (
	"math"
	"os"
	"path/filepath"
	"sort"
)

// PolicyFrequencies carries what the preferred cpufreq policy exposed.
// Either frequency may be absent on its own; a policy with unreadable
// values is still reported by name.
type PolicyFrequencies struct {
	CurrentMHz *float64
	MaxMHz     *float64
	Policy     string // basename of the policy directory used, "" when none exists
}

// ReadPolicyFrequencies reads scaling_cur_freq and cpuinfo_max_freq from
// the preferred policy under the cpufreq directory: policy0 when
// present, otherwise the lexicographically first policy. The kernel
// reports both values in kHz; they are converted to MHz rounded to one
// decimal.
func ReadPolicyFrequencies(cpufreqDir string) PolicyFrequencies {
	var out PolicyFrequencies

	policy := pickPolicy(cpufreqDir)
	if policy == "" {
		return out
	}
	out.Policy = filepath.Base(policy)

	if khz, ok := readInt64(filepath.Join(policy, "scaling_cur_freq")); ok {
		out.CurrentMHz = khzToMHz(khz)
	}
	if khz, ok := readInt64(filepath.Join(policy, "cpuinfo_max_freq")); ok {
		out.MaxMHz = khzToMHz(khz)
	}
	return out
}

func pickPolicy(cpufreqDir string) string {
	policy0 := filepath.Join(cpufreqDir, "policy0")
	if fi, err := os.Stat(policy0); err == nil && fi.IsDir() {
		return policy0
	}
	policies, err := filepath.Glob(filepath.Join(cpufreqDir, "policy*"))
	if err != nil || len(policies) == 0 {
		return ""
	}
	sort.Strings(policies)
	return policies[0]
}

func khzToMHz(khz int64) *float64 {
	mhz := math.Round(float64(khz)/1000.0*10) / 10
	return &mhz
}
