package deployer

import (
	"context"
	"fmt"

	"github.com/algovest/staking-deployer/pkg/artifacts"
	"github.com/algovest/staking-deployer/pkg/common/iface"
)

// DryRunDeployer coerces and logs the constructor call without touching a chain
type DryRunDeployer struct {
	logger iface.Logger
}

func NewDryRunDeployer(logger iface.Logger) *DryRunDeployer {
	return &DryRunDeployer{logger: logger}
}

func (d *DryRunDeployer) Deploy(_ context.Context, artifact *artifacts.Artifact, args ...interface{}) (*Deployment, error) {
	packed, err := CoerceArgs(artifact.ABI.Constructor.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s constructor: %w", artifact.ContractName, err)
	}

	d.logger.Info("[dry-run] deploy %s", artifact.ContractName)
	for i, input := range artifact.ABI.Constructor.Inputs {
		d.logger.Info("[dry-run]   %s %s = %v", input.Type.String(), input.Name, packed[i])
	}

	return &Deployment{
		ContractName: artifact.ContractName,
		Args:         packed,
	}, nil
}
