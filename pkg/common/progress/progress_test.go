package progress

import (
	"bytes"
	"testing"

	"github.com/algovest/staking-deployer/pkg/common/iface"
	"github.com/algovest/staking-deployer/pkg/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogProgressTracker_ReportsCompletionOnce(t *testing.T) {
	log := logger.NewNoopLogger()
	tracker := NewLogProgressTracker(5, log)

	tracker.Set("deploy", 10, "Resolving artifact")
	tracker.Set("deploy", 100, "AlgoVestStaking deployed")
	tracker.Set("deploy", 100, "AlgoVestStaking deployed")
	tracker.Set("deploy", 50, "ignored")

	assert.Equal(t, []iface.ProgressRow{{Step: "deploy", Pct: 100, Label: "AlgoVestStaking deployed"}}, tracker.ProgressRows())
	assert.Equal(t, []string{"Progress: AlgoVestStaking deployed - 100%"}, log.GetMessagesByLevel("INFO"))
}

func TestLogProgressTracker_MaxTracked(t *testing.T) {
	tracker := NewLogProgressTracker(1, logger.NewNoopLogger())

	tracker.Set("a", 10, "a")
	tracker.Set("b", 10, "b")

	require.Len(t, tracker.ProgressRows(), 1)
	tracker.Clear()
	assert.Empty(t, tracker.ProgressRows())
}

func TestTTYProgressTracker_Render(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewTTYProgressTracker(5, &buf)

	tracker.Set("deploy", 50, "Waiting for receipt")
	tracker.Render()

	assert.Contains(t, buf.String(), "[==========          ]")
	assert.Contains(t, buf.String(), " 50% Waiting for receipt")
}

func TestBuildBar_Clamps(t *testing.T) {
	assert.Equal(t, "[                    ]", buildBar(-5))
	assert.Equal(t, "[====================]", buildBar(150))
}
