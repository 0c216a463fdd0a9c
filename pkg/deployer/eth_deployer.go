package deployer

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/algovest/staking-deployer/pkg/artifacts"
	"github.com/algovest/staking-deployer/pkg/common/iface"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is what the deployer needs from a node connection. *ethclient.Client and the
// simulated backend's client both satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// EthDeployer deploys artifacts with a single keyed account
type EthDeployer struct {
	backend    Backend
	privateKey *ecdsa.PrivateKey
	chainID    *big.Int
	logger     iface.Logger
}

// NewEthDeployer creates a deployer signing with privateKeyHex. A nil or zero chainID is
// resolved from the node on first use.
func NewEthDeployer(backend Backend, privateKeyHex string, chainID *big.Int, logger iface.Logger) (*EthDeployer, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	var id *big.Int
	if chainID != nil && chainID.Sign() > 0 {
		id = new(big.Int).Set(chainID)
	}

	return &EthDeployer{
		backend:    backend,
		privateKey: privateKey,
		chainID:    id,
		logger:     logger,
	}, nil
}

// Dial connects to rpcURL and returns a deployer plus a func closing the connection
func Dial(ctx context.Context, rpcURL, privateKeyHex string, chainID int64, logger iface.Logger) (*EthDeployer, func(), error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
	}

	d, err := NewEthDeployer(client, privateKeyHex, big.NewInt(chainID), logger)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return d, client.Close, nil
}

// From returns the deploying account
func (d *EthDeployer) From() common.Address {
	return crypto.PubkeyToAddress(d.privateKey.PublicKey)
}

func (d *EthDeployer) buildTxOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if d.chainID == nil {
		id, err := d.backend.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chain id: %w", err)
		}
		d.chainID = id
	}

	opts, err := bind.NewKeyedTransactorWithChainID(d.privateKey, d.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

// Deploy sends the creation transaction for artifact and waits for it to be mined
func (d *EthDeployer) Deploy(ctx context.Context, artifact *artifacts.Artifact, args ...interface{}) (*Deployment, error) {
	packed, err := CoerceArgs(artifact.ABI.Constructor.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s constructor: %w", artifact.ContractName, err)
	}

	opts, err := d.buildTxOpts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction options: %w", err)
	}

	address, tx, _, err := bind.DeployContract(opts, artifact.ABI, artifact.Bytecode, d.backend, packed...)
	if err != nil {
		d.logger.Error("Deploying %s failed: %v", artifact.ContractName, err)
		return nil, fmt.Errorf("deploy %s: %w", artifact.ContractName, err)
	}
	d.logger.Debug(
		"Transaction hash for %s deployment: %s\n"+
			"from: %s\n"+
			"address: %s\n"+
			"args: %v",
		artifact.ContractName,
		tx.Hash().Hex(),
		opts.From.Hex(),
		address.Hex(),
		packed,
	)

	receipt, err := bind.WaitMined(ctx, d.backend, tx)
	if err != nil {
		d.logger.Error("Waiting for %s deployment (hash: %s) failed: %v", artifact.ContractName, tx.Hash().Hex(), err)
		return nil, fmt.Errorf("waiting for %s deployment (hash: %s): %w", artifact.ContractName, tx.Hash().Hex(), err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		d.logger.Error("%s deployment (hash: %s) reverted", artifact.ContractName, tx.Hash().Hex())
		return nil, fmt.Errorf("%s (hash: %s): %w", artifact.ContractName, tx.Hash().Hex(), ErrDeploymentReverted)
	}

	return &Deployment{
		ContractName: artifact.ContractName,
		Address:      address,
		TxHash:       tx.Hash(),
		BlockNumber:  receipt.BlockNumber.Uint64(),
		GasUsed:      receipt.GasUsed,
		Args:         packed,
	}, nil
}
