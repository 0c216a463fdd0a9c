package migrations

import (
	"os"
	"time"
)

// Environment variables holding the staking token address
const (
	EnvAVSAddress          = "AVS_ADDR"
	EnvTokenRinkebyAddress = "TOKEN_RINKEBY_ADDR"
)

// Params are the staking constructor arguments: token, start timestamp, duration
type Params struct {
	TokenAddress    string
	StartTimestamp  int64
	DurationSeconds int64
}

// Args returns the params in constructor order
func (p Params) Args() []interface{} {
	return []interface{}{p.TokenAddress, p.StartTimestamp, p.DurationSeconds}
}

// Environment is the ambient input a migration reads from
type Environment struct {
	Lookup func(key string) (string, bool)
	Now    func() time.Time
}

// ProcessEnvironment reads the process environment and wall clock
func ProcessEnvironment() Environment {
	return Environment{
		Lookup: os.LookupEnv,
		Now:    time.Now,
	}
}

// TokenSource yields the staking token address
type TokenSource interface {
	Token(env Environment) string
	String() string
}

// FromEnv reads the address from the named variable. An unset variable yields "".
type FromEnv string

func (k FromEnv) Token(env Environment) string {
	v, _ := env.Lookup(string(k))
	return v
}

func (k FromEnv) String() string { return "$" + string(k) }

// TokenLiteral is a hard-coded address
type TokenLiteral string

func (l TokenLiteral) Token(Environment) string { return string(l) }

func (l TokenLiteral) String() string { return string(l) }

// TimeSource yields the staking start timestamp in unix seconds
type TimeSource interface {
	Timestamp(env Environment) int64
	String() string
}

// FixedTime is a hard-coded start timestamp
type FixedTime int64

func (f FixedTime) Timestamp(Environment) int64 { return int64(f) }

func (f FixedTime) String() string {
	return time.Unix(int64(f), 0).UTC().Format(time.RFC3339)
}

// DeployTime starts staking at the moment the migration runs
type DeployTime struct{}

func (DeployTime) Timestamp(env Environment) int64 { return env.Now().Unix() }

func (DeployTime) String() string { return "time of deployment" }
