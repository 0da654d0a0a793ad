package game

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"
)

// Profiler captures a CPU profile and an execution trace of the frame loop
// between Start and Stop
type Profiler struct {
	mu          sync.Mutex
	isProfiling bool
	profilesDir string
	baseName    string

	cpuFile   *os.File
	traceFile *os.File
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string) *Profiler {
	return &Profiler{profilesDir: dir}
}

// Start begins capturing. reason ends up in the file names.
func (p *Profiler) Start(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return errors.New("already profiling")
	}
	if err := os.MkdirAll(p.profilesDir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}

	// Generate timestamped filename
	timestamp := time.Now().Format("20060102-150405")
	base := fmt.Sprintf("%s-%s", reason, timestamp)

	cpuFile, err := os.Create(filepath.Join(p.profilesDir, base+".cpu.prof"))
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		cpuFile.Close()
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}

	traceFile, err := os.Create(filepath.Join(p.profilesDir, base+".trace"))
	if err != nil {
		pprof.StopCPUProfile()
		cpuFile.Close()
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	if err := trace.Start(traceFile); err != nil {
		pprof.StopCPUProfile()
		cpuFile.Close()
		traceFile.Close()
		return fmt.Errorf("failed to start trace: %w", err)
	}

	p.cpuFile = cpuFile
	p.traceFile = traceFile
	p.baseName = base
	p.isProfiling = true
	return nil
}

// Stop ends the capture and returns the CPU profile path
func (p *Profiler) Stop() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isProfiling {
		return "", errors.New("not profiling")
	}

	trace.Stop()
	pprof.StopCPUProfile()
	p.isProfiling = false

	cpuErr := p.cpuFile.Close()
	traceErr := p.traceFile.Close()
	path := p.cpuFile.Name()
	p.cpuFile, p.traceFile = nil, nil

	if err := errors.Join(cpuErr, traceErr); err != nil {
		return path, fmt.Errorf("close profile files: %w", err)
	}
	return path, nil
}

// IsProfiling returns whether a capture is in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

// WriteSummary prints where the last capture went and current memory stats
func (p *Profiler) WriteSummary(w io.Writer) {
	p.mu.Lock()
	base := p.baseName
	p.mu.Unlock()

	if base == "" {
		fmt.Fprintln(w, "no profile captured")
		return
	}
	profilePath := filepath.Join(p.profilesDir, base+".cpu.prof")

	fmt.Fprintf(w, "=== Performance Analysis: %s ===\n", base)
	if info, err := os.Stat(profilePath); err == nil {
		fmt.Fprintf(w, "Profile file: %s (%.2f KB)\n", profilePath, float64(info.Size())/1024)
	}
	fmt.Fprintf(w, "View with: go tool pprof -http=:8080 %s\n", profilePath)

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Fprintf(w, "Alloc: %d KB, Sys: %d KB, NumGC: %d, HeapObjects: %d\n",
		m.Alloc/1024, m.Sys/1024, m.NumGC, m.HeapObjects)
}
