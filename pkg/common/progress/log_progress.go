package progress

import (
	"sync"

	"github.com/algovest/staking-deployer/pkg/common/iface"
)

// LogProgressTracker reports each step once, through the logger, when it reaches 100%
type LogProgressTracker struct {
	mu         sync.Mutex
	logger     iface.Logger
	progress   map[string]*iface.ProgressInfo
	order      []string
	maxTracked int
}

func NewLogProgressTracker(max int, logger iface.Logger) *LogProgressTracker {
	return &LogProgressTracker{
		logger:     logger,
		progress:   make(map[string]*iface.ProgressInfo),
		order:      make([]string, 0, max),
		maxTracked: max,
	}
}

// ProgressRows returns all entries in the order they were first seen.
func (s *LogProgressTracker) ProgressRows() []iface.ProgressRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rows(s.order, s.progress)
}

func (s *LogProgressTracker) Set(step string, pct int, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if info, exists := s.progress[step]; exists {
		// progress never moves backwards, and 100% is reported once
		if info.Percentage >= pct {
			return
		}
		info.Percentage = pct
		info.DisplayText = label
	} else {
		if len(s.progress) >= s.maxTracked {
			return
		}
		s.progress[step] = &iface.ProgressInfo{Percentage: pct, DisplayText: label}
		s.order = append(s.order, step)
	}

	if info := s.progress[step]; info.Percentage == 100 {
		s.logger.Info("Progress: %s - %d%%", info.DisplayText, info.Percentage)
	}
}

func (s *LogProgressTracker) Render() {}

func (s *LogProgressTracker) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress = make(map[string]*iface.ProgressInfo)
	s.order = s.order[:0]
}

func rows(order []string, progress map[string]*iface.ProgressInfo) []iface.ProgressRow {
	out := make([]iface.ProgressRow, 0, len(order))
	for _, id := range order {
		info := progress[id]
		out = append(out, iface.ProgressRow{Step: id, Pct: info.Percentage, Label: info.DisplayText})
	}
	return out
}
