package system

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats is a snapshot of the render process and its host
type Stats struct {
	RSS        uint64  // resident memory of this process, bytes
	CPUPercent float64 // process CPU since start, percent of one core
	Cores      int
	HostUsed   float64 // host memory in use, percent
}

// ProcessStats samples the current process through gopsutil
func ProcessStats() (Stats, error) {
	var st Stats
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return st, fmt.Errorf("process lookup: %w", err)
	}
	if info, err := proc.MemoryInfo(); err == nil {
		st.RSS = info.RSS
	}
	if pct, err := proc.CPUPercent(); err == nil {
		st.CPUPercent = pct
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		st.HostUsed = vm.UsedPercent
	}
	st.Cores = DefaultWorkers()
	return st, nil
}

func (s Stats) String() string {
	return fmt.Sprintf("RSS: %.1f MB | CPU: %.1f%% | Cores: %d | Host memory: %.1f%%",
		float64(s.RSS)/(1<<20), s.CPUPercent, s.Cores, s.HostUsed)
}

// DefaultWorkers is the number of logical cores, falling back to the
// runtime's view when gopsutil cannot tell
func DefaultWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
