package migrations

import (
	"context"

	"github.com/algovest/staking-deployer/pkg/artifacts"
	"github.com/algovest/staking-deployer/pkg/deployer"
)

// ArtifactResolver resolves a contract handle by name
type ArtifactResolver interface {
	Require(name string) (*artifacts.Artifact, error)
}

// Invoker turns a migration into exactly one deploy call
type Invoker struct {
	artifacts ArtifactResolver
	deployer  deployer.Deployer
	env       Environment
}

// Result is what a single invocation resolved and produced
type Result struct {
	Artifact   *artifacts.Artifact
	Params     Params
	Deployment *deployer.Deployment
}

func NewInvoker(resolver ArtifactResolver, d deployer.Deployer, env Environment) *Invoker {
	return &Invoker{
		artifacts: resolver,
		deployer:  d,
		env:       env,
	}
}

// Invoke resolves the artifact and params of m and calls Deploy once with
// (artifact, token, start, duration). Errors are returned unmodified.
func (inv *Invoker) Invoke(ctx context.Context, m Migration) (*Result, error) {
	artifact, err := inv.artifacts.Require(m.Artifact)
	if err != nil {
		return nil, err
	}

	params := m.Params(inv.env)
	deployment, err := inv.deployer.Deploy(ctx, artifact, params.Args()...)
	if err != nil {
		return nil, err
	}

	return &Result{
		Artifact:   artifact,
		Params:     params,
		Deployment: deployment,
	}, nil
}
