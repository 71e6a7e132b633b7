package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Rough per-worker budget: one square frame buffer plus an ffmpeg
// process with its own buffering.
const bytesPerWorker = 256 << 20

// RecommendedWorkers clamps the requested parallel-segment worker
// count against physical cores and available memory. Zero or negative
// requests mean "pick for me".
func RecommendedWorkers(requested int) int {
	limit := runtime.NumCPU()
	if physical, err := cpu.Counts(false); err == nil && physical > 0 {
		limit = physical
	}

	if vm, err := mem.VirtualMemory(); err == nil && vm.Available > 0 {
		byMem := int(vm.Available / bytesPerWorker)
		if byMem < 1 {
			byMem = 1
		}
		if byMem < limit {
			limit = byMem
		}
	}

	if requested <= 0 || requested > limit {
		return limit
	}
	return requested
}
