package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/algovest/staking-deployer/pkg/common/iface"
)

// TTYProgressTracker redraws a bar per step in place
type TTYProgressTracker struct {
	mu         sync.Mutex
	progress   map[string]*iface.ProgressInfo
	order      []string
	maxTracked int
	linesDrawn int
	target     io.Writer
}

func NewTTYProgressTracker(max int, target io.Writer) *TTYProgressTracker {
	return &TTYProgressTracker{
		progress:   make(map[string]*iface.ProgressInfo),
		order:      make([]string, 0, max),
		maxTracked: max,
		target:     target,
	}
}

func (t *TTYProgressTracker) ProgressRows() []iface.ProgressRow {
	t.mu.Lock()
	defer t.mu.Unlock()
	return rows(t.order, t.progress)
}

func (t *TTYProgressTracker) Set(step string, pct int, label string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ts := time.Now().Format("2006/01/02 15:04:05")

	if info, exists := t.progress[step]; exists {
		if info.Percentage >= pct {
			return
		}
		info.Percentage = pct
		info.DisplayText = label
		info.Timestamp = ts
		return
	}
	if len(t.progress) >= t.maxTracked {
		return
	}
	t.progress[step] = &iface.ProgressInfo{Percentage: pct, DisplayText: label, Timestamp: ts}
	t.order = append(t.order, step)
}

func (t *TTYProgressTracker) Render() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.linesDrawn > 0 {
		fmt.Fprintf(t.target, "\033[%dA", t.linesDrawn)
	}
	t.linesDrawn = 0

	for _, id := range t.order {
		info := t.progress[id]
		fmt.Fprintf(t.target, "\r\033[K%s %s %3d%% %s\n", info.Timestamp, buildBar(info.Percentage), info.Percentage, info.DisplayText)
		t.linesDrawn++
	}
}

func (t *TTYProgressTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.progress = make(map[string]*iface.ProgressInfo)
	t.order = t.order[:0]
	t.linesDrawn = 0
}

func buildBar(pct int) string {
	const total = 20
	pct = max(0, min(pct, 100))
	filled := pct * total / 100
	return fmt.Sprintf("[%s%s]", strings.Repeat("=", filled), strings.Repeat(" ", total-filled))
}
