package migrations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/algovest/staking-deployer/pkg/artifacts"
	"github.com/algovest/staking-deployer/pkg/common/iface"
)

// ErrAlreadyApplied is returned when the ledger shows the step completed and Reset is off
var ErrAlreadyApplied = errors.New("migration already applied")

// Runner runs a migration once and records it in the ledger
type Runner struct {
	Invoker    *Invoker
	LedgerPath string
	OutputsDir string
	// Reset re-runs a step even when the ledger has it
	Reset bool
	// DryRun skips the ledger and contract outputs
	DryRun   bool
	Logger   iface.Logger
	Progress iface.ProgressTracker
	Now      func() time.Time
}

// Run executes m. Nothing is recorded when the deploy fails.
func (r *Runner) Run(ctx context.Context, m Migration) (*Result, error) {
	var ledger *Ledger
	if !r.DryRun {
		var err error
		ledger, err = LoadLedger(r.LedgerPath)
		if err != nil {
			return nil, err
		}
		if entry, done := ledger.Completed(m.Number); done {
			if !r.Reset {
				r.Logger.Info("Migration %d already applied by %s (%s at %s)", m.Number, entry.Migration, entry.Contract, entry.Address)
				return nil, fmt.Errorf("%s: %w", m.Name, ErrAlreadyApplied)
			}
			r.Logger.Warn("Resetting migration %d, previously %s at %s", m.Number, entry.Contract, entry.Address)
			ledger.Forget(m.Number)
		}
	}

	r.Logger.Title("Running migration: %s", m.Name)
	r.progress(m, 10, fmt.Sprintf("Deploying %s", m.Artifact))

	result, err := r.Invoker.Invoke(ctx, m)
	if err != nil {
		return nil, err
	}
	r.progress(m, 80, fmt.Sprintf("%s deployed", m.Artifact))

	if r.DryRun {
		r.progress(m, 100, fmt.Sprintf("%s dry run complete", m.Name))
		return result, nil
	}

	d := result.Deployment
	r.Logger.Info("%s deployed at %s (tx %s, block %d)", d.ContractName, d.Address.Hex(), d.TxHash.Hex(), d.BlockNumber)

	ledger.Record(LedgerEntry{
		Number:      m.Number,
		Migration:   m.Name,
		Contract:    d.ContractName,
		Address:     d.Address.Hex(),
		TxHash:      d.TxHash.Hex(),
		BlockNumber: d.BlockNumber,
		CompletedAt: r.now().UTC(),
	})
	if err := ledger.Save(); err != nil {
		return result, fmt.Errorf("save ledger: %w", err)
	}

	if r.OutputsDir != "" {
		path, err := artifacts.WriteOutput(r.OutputsDir, d.Address.Hex(), result.Artifact)
		if err != nil {
			return result, fmt.Errorf("failed to write contract output: %w", err)
		}
		r.Logger.Info("Written contract output: %s", path)
	}

	r.progress(m, 100, fmt.Sprintf("%s complete", m.Name))
	return result, nil
}

func (r *Runner) progress(m Migration, pct int, label string) {
	if r.Progress == nil {
		return
	}
	r.Progress.Set(m.Name, pct, label)
	r.Progress.Render()
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
