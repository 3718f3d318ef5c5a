package probe

import (
	"path/filepath"
)

// coreKey identifies one physical core across all packages.
type coreKey struct {
	pkg  int64
	core int64
}

// TopologyPhysicalCores counts the distinct (package id, core id) pairs
// advertised under the per-cpu topology tree. Entries missing either
// identifier are skipped. 0 means the tree is absent or carried no
// usable pairs, which is not an error.
func TopologyPhysicalCores(cpuDir string) int {
	dirs, err := filepath.Glob(filepath.Join(cpuDir, "cpu[0-9]*", "topology"))
	if err != nil {
		return 0
	}

	seen := make(map[coreKey]struct{})
	for _, dir := range dirs {
		pkg, ok := readInt64(filepath.Join(dir, "physical_package_id"))
		if !ok {
			continue
		}
		core, ok := readInt64(filepath.Join(dir, "core_id"))
		if !ok {
			continue
		}
		seen[coreKey{pkg: pkg, core: core}] = struct{}{}
	}
	return len(seen)
}
