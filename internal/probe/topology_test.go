package probe

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTopology(t *testing.T, cpuDir string, cpu int, pkg, core string) {
	t.Helper()
	dir := filepath.Join(cpuDir, "cpu"+strconv.Itoa(cpu), "topology")
	if pkg != "" {
		writeFile(t, dir, "physical_package_id", pkg+"\n")
	}
	if core != "" {
		writeFile(t, dir, "core_id", core+"\n")
	}
}

func TestTopologyPhysicalCoresHyperthreaded(t *testing.T) {
	cpuDir := t.TempDir()
	// Two cores, two threads each: pairs must deduplicate.
	writeTopology(t, cpuDir, 0, "0", "0")
	writeTopology(t, cpuDir, 1, "0", "1")
	writeTopology(t, cpuDir, 2, "0", "0")
	writeTopology(t, cpuDir, 3, "0", "1")
	// Sibling non-cpu entries must not disturb the scan.
	writeFile(t, filepath.Join(cpuDir, "cpufreq", "policy0"), "scaling_cur_freq", "2000000\n")
	writeFile(t, cpuDir, "online", "0-3\n")

	assert.Equal(t, 2, TopologyPhysicalCores(cpuDir))
}

func TestTopologyPhysicalCoresDualPackage(t *testing.T) {
	cpuDir := t.TempDir()
	writeTopology(t, cpuDir, 0, "0", "0")
	writeTopology(t, cpuDir, 1, "0", "1")
	writeTopology(t, cpuDir, 2, "1", "0")
	writeTopology(t, cpuDir, 3, "1", "1")

	assert.Equal(t, 4, TopologyPhysicalCores(cpuDir))
}

func TestTopologyPhysicalCoresSkipsIncompleteEntries(t *testing.T) {
	cpuDir := t.TempDir()
	writeTopology(t, cpuDir, 0, "0", "0")
	writeTopology(t, cpuDir, 1, "0", "") // core_id missing
	writeTopology(t, cpuDir, 2, "x", "5") // package id unreadable
	writeTopology(t, cpuDir, 3, "0", "1")

	assert.Equal(t, 2, TopologyPhysicalCores(cpuDir))
}

func TestTopologyPhysicalCoresNegativePackageID(t *testing.T) {
	cpuDir := t.TempDir()
	// Some ARM platforms report package id -1; the pairs still count.
	writeTopology(t, cpuDir, 0, "-1", "0")
	writeTopology(t, cpuDir, 1, "-1", "1")

	assert.Equal(t, 2, TopologyPhysicalCores(cpuDir))
}

func TestTopologyPhysicalCoresAbsentTree(t *testing.T) {
	assert.Equal(t, 0, TopologyPhysicalCores(filepath.Join(t.TempDir(), "cpu")))
}
