package migrations

import (
	"errors"
	"fmt"
)

// ErrUnknownMigration is returned by Lookup for names not in the registry
var ErrUnknownMigration = errors.New("unknown migration")

const (
	// StakingArtifact is the contract every migration deploys
	StakingArtifact = "AlgoVestStaking"

	// DefaultMigration is run when none is named
	DefaultMigration = "1_initial_migration"

	// StakingStartTimestamp is the fixed start of staking, 2021-02-20T17:35:02Z
	StakingStartTimestamp = 1613842502

	// StakingDurationSeconds is one day
	StakingDurationSeconds = 86400
)

// Migration is one numbered deployment step. Variants of a step share its Number, so
// running any of them completes the step.
type Migration struct {
	Number      int
	Name        string
	Description string
	Artifact    string
	Token       TokenSource
	Start       TimeSource
	Duration    int64
}

// Params resolves the constructor arguments. Nothing is validated here.
func (m Migration) Params(env Environment) Params {
	return Params{
		TokenAddress:    m.Token.Token(env),
		StartTimestamp:  m.Start.Timestamp(env),
		DurationSeconds: m.Duration,
	}
}

// Registry returns all known migrations in order
func Registry() []Migration {
	return []Migration{
		{
			Number:      1,
			Name:        DefaultMigration,
			Description: "Deploy staking with a hard-coded start date",
			Artifact:    StakingArtifact,
			Token:       FromEnv(EnvAVSAddress),
			Start:       FixedTime(StakingStartTimestamp),
			Duration:    StakingDurationSeconds,
		},
		{
			Number:      1,
			Name:        DefaultMigration + "_dynamic",
			Description: "Deploy staking starting now, for test networks",
			Artifact:    StakingArtifact,
			Token:       FromEnv(EnvTokenRinkebyAddress),
			Start:       DeployTime{},
			Duration:    StakingDurationSeconds,
		},
	}
}

// Lookup finds a migration by name
func Lookup(name string) (Migration, error) {
	for _, m := range Registry() {
		if m.Name == name {
			return m, nil
		}
	}
	return Migration{}, fmt.Errorf("%w: %q", ErrUnknownMigration, name)
}
