package batch

import "fmt"

// Stats counts qualifying files by outcome.
type Stats struct {
	Succeeded int
	Failed    int
}

func (s Stats) Total() int {
	return s.Succeeded + s.Failed
}

// ErrorRate returns the failure percentage (0–100). ok is false when no
// file was processed.
func (s Stats) ErrorRate() (pct float64, ok bool) {
	if s.Total() == 0 {
		return 0, false
	}
	return float64(s.Failed) / float64(s.Total()) * 100, true
}

// Summary is the line printed at the end of a run.
func (s Stats) Summary() string {
	pct, ok := s.ErrorRate()
	if !ok {
		return "no files processed"
	}
	return fmt.Sprintf("error rate: %.1f%% (%d of %d files failed)", pct, s.Failed, s.Total())
}
