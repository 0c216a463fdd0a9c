package iface

// ProgressRow is a snapshot of a progress entry.
type ProgressRow struct {
	Step  string
	Pct   int
	Label string
}

type ProgressTracker interface {
	ProgressRows() []ProgressRow
	Set(step string, pct int, label string)
	Render()
	Clear()
}

type ProgressInfo struct {
	Percentage  int
	DisplayText string
	Timestamp   string
}
