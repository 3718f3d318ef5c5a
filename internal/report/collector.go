package report

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/hostfacts-labs/hostfacts/internal/config"
	"github.com/hostfacts-labs/hostfacts/internal/probe"
	"github.com/hostfacts-labs/hostfacts/pkg/models"
)

// Collector assembles one HardwareReport per invocation from the
// kernel's pseudo-files and the distribution identity sources.
type Collector struct {
	cfg     *config.Config
	sources []probe.IdentitySource
}

// NewCollector creates a collector rooted at the configured proc, sys
// and etc trees. Passing identity sources replaces the default
// host-then-descriptor chain.
func NewCollector(cfg *config.Config, sources ...probe.IdentitySource) *Collector {
	if len(sources) == 0 {
		sources = probe.DefaultIdentitySources(cfg.OSReleasePath())
	}
	return &Collector{cfg: cfg, sources: sources}
}

// Collect runs every probe once, in order, and merges the results into
// a fresh report. The only returned error is the fatal CPU descriptor
// failure; every other source degrades to the field defaults.
func (c *Collector) Collect(ctx context.Context) (*models.HardwareReport, error) {
	r := models.NewHardwareReport()

	info, err := probe.ParseCPUInfo(c.cfg.CPUInfoPath())
	if err != nil {
		return nil, err
	}
	r.CPU.Vendor = info.Vendor
	r.CPU.Model = info.Model
	r.CPU.CacheSize = info.CacheSize
	r.CPU.LogicalCores = info.LogicalCores
	r.CPU.PhysicalCores = info.PhysicalCores()

	// Descriptor exposed no usable package layout; consult sysfs.
	if r.CPU.PhysicalCores == 0 {
		if n := probe.TopologyPhysicalCores(c.cfg.CPUTopologyDir()); n > 0 {
			logrus.WithField("physical_cores", n).Debug("physical core count recovered from sysfs topology")
			r.CPU.PhysicalCores = n
		}
	}

	freq := probe.ReadPolicyFrequencies(c.cfg.CPUFreqDir())
	if freq.Policy != "" {
		logrus.WithField("policy", freq.Policy).Debug("cpufreq policy selected")
	}
	r.CPU.FrequencyMHzMax = freq.MaxMHz
	switch {
	case freq.CurrentMHz != nil:
		r.CPU.FrequencyMHzCurrent = freq.CurrentMHz
		r.CPU.FrequencySource = models.FreqSourceCPUFreq
	case info.FirstMHz != nil:
		logrus.Debug("cpufreq current unavailable, using descriptor sample")
		cur := math.Round(*info.FirstMHz*10) / 10
		r.CPU.FrequencyMHzCurrent = &cur
		r.CPU.FrequencySource = models.FreqSourceCPUInfo
	case freq.MaxMHz != nil:
		r.CPU.FrequencySource = models.FreqSourceCPUFreq
	}

	r.Distribution = probe.ResolveDistribution(ctx, c.sources...)

	if gib, ok := probe.MemoryGiB(c.cfg.MemInfoPath()); ok {
		r.MemoryGiB = &gib
	}

	p := probe.ReadPlatform(c.cfg.KernelVersionPath())
	r.OSSystem = p.System
	r.OSVersion = p.OSVersion
	r.KernelRelease = p.KernelRelease

	return r, nil
}
