package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostfacts-labs/hostfacts/internal/config"
	"github.com/hostfacts-labs/hostfacts/internal/probe"
	"github.com/hostfacts-labs/hostfacts/pkg/models"
)

const cpuinfoTwoCores = `processor	: 0
vendor_id	: GenuineIntel
model name	: Intel(R) Core(TM) i5-6200U CPU @ 2.30GHz
cpu MHz		: 2301.000
cache size	: 3072 KB
physical id	: 0
cpu cores	: 2

processor	: 1
vendor_id	: GenuineIntel
model name	: Intel(R) Core(TM) i5-6200U CPU @ 2.30GHz
cpu MHz		: 2275.421
cache size	: 3072 KB
physical id	: 0
cpu cores	: 2
`

const cpuinfoNoTopology = `processor	: 0
model name	: ARMv8 Processor rev 3 (v8l)

processor	: 1
model name	: ARMv8 Processor rev 3 (v8l)
`

var errIdentity = errors.New("identity unavailable")

type fakeIdentity struct {
	d   models.Distribution
	err error
}

func (f fakeIdentity) Name() string { return "fake" }

func (f fakeIdentity) Identify(context.Context) (models.Distribution, error) {
	return f.d, f.err
}

func fixtureConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.ProcRoot = filepath.Join(root, "proc")
	cfg.SysRoot = filepath.Join(root, "sys")
	cfg.EtcRoot = filepath.Join(root, "etc")
	return cfg
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func writePolicy(t *testing.T, cfg *config.Config, policy, cur, max string) {
	t.Helper()
	dir := filepath.Join(cfg.CPUFreqDir(), policy)
	require.NoError(t, os.MkdirAll(dir, 0755))
	if cur != "" {
		writeFile(t, filepath.Join(dir, "scaling_cur_freq"), cur+"\n")
	}
	if max != "" {
		writeFile(t, filepath.Join(dir, "cpuinfo_max_freq"), max+"\n")
	}
}

func writeTopology(t *testing.T, cfg *config.Config, cpu int, pkg, core string) {
	t.Helper()
	dir := filepath.Join(cfg.CPUTopologyDir(), "cpu"+strconv.Itoa(cpu), "topology")
	writeFile(t, filepath.Join(dir, "physical_package_id"), pkg+"\n")
	writeFile(t, filepath.Join(dir, "core_id"), core+"\n")
}

func TestCollectFullHost(t *testing.T) {
	cfg := fixtureConfig(t)
	writeFile(t, cfg.CPUInfoPath(), cpuinfoTwoCores)
	writeFile(t, cfg.MemInfoPath(), "MemTotal:       16777216 kB\nMemFree:         8135612 kB\n")
	writePolicy(t, cfg, "policy0", "2400000", "4600000")

	ubuntu := models.Distribution{Name: "ubuntu", Version: "22.04", Pretty: "Ubuntu 22.04.3 LTS"}
	c := NewCollector(cfg, fakeIdentity{d: ubuntu})

	r, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "GenuineIntel", r.CPU.Vendor)
	assert.Equal(t, "Intel(R) Core(TM) i5-6200U CPU @ 2.30GHz", r.CPU.Model)
	assert.Equal(t, "3072 KB", r.CPU.CacheSize)
	assert.Equal(t, 2, r.CPU.LogicalCores)
	assert.Equal(t, 2, r.CPU.PhysicalCores)

	require.NotNil(t, r.CPU.FrequencyMHzCurrent)
	assert.Equal(t, 2400.0, *r.CPU.FrequencyMHzCurrent)
	require.NotNil(t, r.CPU.FrequencyMHzMax)
	assert.Equal(t, 4600.0, *r.CPU.FrequencyMHzMax)
	assert.Equal(t, models.FreqSourceCPUFreq, r.CPU.FrequencySource)

	require.NotNil(t, r.MemoryGiB)
	assert.Equal(t, 16.00, *r.MemoryGiB)

	assert.Equal(t, ubuntu, r.Distribution)

	// uname supplies these on the test host.
	assert.NotEqual(t, models.Unknown, r.OSSystem)
	assert.NotEqual(t, models.Unknown, r.KernelRelease)
}

func TestCollectTopologyFallback(t *testing.T) {
	cfg := fixtureConfig(t)
	writeFile(t, cfg.CPUInfoPath(), cpuinfoNoTopology)
	writeTopology(t, cfg, 0, "0", "0")
	writeTopology(t, cfg, 1, "0", "1")
	writeTopology(t, cfg, 2, "1", "0")
	writeTopology(t, cfg, 3, "1", "1")

	c := NewCollector(cfg, fakeIdentity{err: errIdentity})
	r, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, r.CPU.PhysicalCores)
	assert.Equal(t, 2, r.CPU.LogicalCores)
}

func TestCollectTopologyAbsentKeepsZero(t *testing.T) {
	cfg := fixtureConfig(t)
	writeFile(t, cfg.CPUInfoPath(), cpuinfoNoTopology)

	c := NewCollector(cfg, fakeIdentity{err: errIdentity})
	r, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, r.CPU.PhysicalCores)
}

func TestCollectDescriptorLayoutBeatsTopology(t *testing.T) {
	cfg := fixtureConfig(t)
	writeFile(t, cfg.CPUInfoPath(), cpuinfoTwoCores)
	// A contradicting topology tree must not be consulted.
	for cpu := 0; cpu < 8; cpu++ {
		writeTopology(t, cfg, cpu, "0", strconv.Itoa(cpu))
	}

	c := NewCollector(cfg, fakeIdentity{err: errIdentity})
	r, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, r.CPU.PhysicalCores)
}

func TestCollectFrequencyFallsBackToSample(t *testing.T) {
	cfg := fixtureConfig(t)
	writeFile(t, cfg.CPUInfoPath(), cpuinfoTwoCores)

	c := NewCollector(cfg, fakeIdentity{err: errIdentity})
	r, err := c.Collect(context.Background())
	require.NoError(t, err)

	require.NotNil(t, r.CPU.FrequencyMHzCurrent)
	assert.Equal(t, 2301.0, *r.CPU.FrequencyMHzCurrent)
	assert.Nil(t, r.CPU.FrequencyMHzMax)
	assert.Equal(t, models.FreqSourceCPUInfo, r.CPU.FrequencySource)
}

func TestCollectPolicyMaxWithSampleCurrent(t *testing.T) {
	cfg := fixtureConfig(t)
	writeFile(t, cfg.CPUInfoPath(), cpuinfoTwoCores)
	writePolicy(t, cfg, "policy0", "", "3400000")

	c := NewCollector(cfg, fakeIdentity{err: errIdentity})
	r, err := c.Collect(context.Background())
	require.NoError(t, err)

	require.NotNil(t, r.CPU.FrequencyMHzCurrent)
	assert.Equal(t, 2301.0, *r.CPU.FrequencyMHzCurrent)
	require.NotNil(t, r.CPU.FrequencyMHzMax)
	assert.Equal(t, 3400.0, *r.CPU.FrequencyMHzMax)
	assert.Equal(t, models.FreqSourceCPUInfo, r.CPU.FrequencySource)
}

func TestCollectFrequencyUnknown(t *testing.T) {
	cfg := fixtureConfig(t)
	writeFile(t, cfg.CPUInfoPath(), cpuinfoNoTopology)

	c := NewCollector(cfg, fakeIdentity{err: errIdentity})
	r, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Nil(t, r.CPU.FrequencyMHzCurrent)
	assert.Nil(t, r.CPU.FrequencyMHzMax)
	assert.Equal(t, models.Unknown, r.CPU.FrequencySource)
}

func TestCollectMissingCPUInfoFatal(t *testing.T) {
	cfg := fixtureConfig(t)
	writeFile(t, cfg.MemInfoPath(), "MemTotal:       16777216 kB\n")

	c := NewCollector(cfg, fakeIdentity{err: errIdentity})
	_, err := c.Collect(context.Background())
	require.ErrorIs(t, err, probe.ErrCPUInfoUnavailable)
}

func TestCollectMemoryAbsent(t *testing.T) {
	cfg := fixtureConfig(t)
	writeFile(t, cfg.CPUInfoPath(), cpuinfoTwoCores)

	c := NewCollector(cfg, fakeIdentity{err: errIdentity})
	r, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Nil(t, r.MemoryGiB)
}

func TestCollectUnknownDistribution(t *testing.T) {
	cfg := fixtureConfig(t)
	writeFile(t, cfg.CPUInfoPath(), cpuinfoTwoCores)

	c := NewCollector(cfg, fakeIdentity{err: errIdentity})
	r, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.Unknown, r.Distribution.Name)
	assert.Equal(t, models.Unknown, r.Distribution.Version)
	assert.Equal(t, "Unknown Unknown", r.Distribution.Pretty)
}

func TestCollectIdempotent(t *testing.T) {
	cfg := fixtureConfig(t)
	writeFile(t, cfg.CPUInfoPath(), cpuinfoTwoCores)
	writeFile(t, cfg.MemInfoPath(), "MemTotal:       8388608 kB\n")
	writePolicy(t, cfg, "policy0", "1900000", "2800000")

	c := NewCollector(cfg, fakeIdentity{d: models.Distribution{Name: "debian", Version: "12", Pretty: "Debian GNU/Linux 12"}})

	first, err := c.Collect(context.Background())
	require.NoError(t, err)
	second, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
