package orchestrator

import "time"

// RunSummary describes one Discover call.
type RunSummary struct {
	RunID        string
	Query        string
	Found        int
	Duplicates   int
	Ignored      int
	New          int
	ChunksSent   int
	ChunksFailed int
	StartTime    time.Time
	Duration     time.Duration
}

func (s RunSummary) finish(end time.Time) RunSummary {
	s.Duration = end.Sub(s.StartTime)
	return s
}
