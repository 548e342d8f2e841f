package pipeline

// RunStats tracks aggregate counters and byte totals across a run.
type RunStats struct {
	Batches         int
	Files           int // image files across planned batches
	Manifests       int // manifest-declared brackets
	Brackets        int
	Failed          int // batches that could not be grouped
	Skipped         int // batches never scheduled after an interrupt
	Duplicates      int // files claimed by more than one manifest entry
	TotalInputBytes int64
}

// Planned returns the number of batches that produced a plan.
func (s *RunStats) Planned() int {
	return s.Batches - s.Failed - s.Skipped
}
