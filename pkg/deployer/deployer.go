package deployer

import (
	"context"
	"errors"

	"github.com/algovest/staking-deployer/pkg/artifacts"

	"github.com/ethereum/go-ethereum/common"
)

// ErrDeploymentReverted is returned when the creation transaction is mined with a failed status
var ErrDeploymentReverted = errors.New("deployment reverted")

// Deployer performs the on-chain deployment of an artifact with constructor args
type Deployer interface {
	Deploy(ctx context.Context, artifact *artifacts.Artifact, args ...interface{}) (*Deployment, error)
}

// Deployment describes a contract creation
type Deployment struct {
	ContractName string
	Address      common.Address
	TxHash       common.Hash
	BlockNumber  uint64
	GasUsed      uint64
	// Args are the constructor arguments as packed, after coercion
	Args []interface{}
}
