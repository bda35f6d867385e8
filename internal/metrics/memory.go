package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading, shown by the REPL
// status command and exported as a gauge.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes in use by application
	Sys         uint64 // total bytes obtained from OS
	NumGC       uint32 // number of completed GC cycles
	HeapObjects uint64 // number of allocated heap objects
	Goroutines  int
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		HeapObjects: m.HeapObjects,
		Goroutines:  runtime.NumGoroutine(),
	}
}
