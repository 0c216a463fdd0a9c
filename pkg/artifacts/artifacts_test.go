package artifacts_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/algovest/staking-deployer/pkg/artifacts"
	"github.com/algovest/staking-deployer/pkg/testutils"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequire_TruffleArtifact(t *testing.T) {
	dir := testutils.WriteStakingArtifact(t, t.TempDir())

	artifact, err := artifacts.NewRegistry(dir).Require(testutils.StakingContractName)
	require.NoError(t, err)

	assert.Equal(t, "AlgoVestStaking", artifact.ContractName)
	assert.Equal(t, testutils.StakingBytecode, hexutil.Encode(artifact.Bytecode))
	assert.Equal(t, filepath.Join(dir, "AlgoVestStaking.json"), artifact.SourcePath)

	inputs := artifact.ABI.Constructor.Inputs
	require.Len(t, inputs, 3)
	assert.Equal(t, "address", inputs[0].Type.String())
	assert.Equal(t, "uint256", inputs[1].Type.String())
	assert.Equal(t, "uint256", inputs[2].Type.String())
}

func TestRequire_FoundryArtifact(t *testing.T) {
	dir := t.TempDir()
	foundry := `{"abi": ` + testutils.StakingABI + `, "bytecode": {"object": "` + testutils.StakingBytecode + `", "linkReferences": {}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AlgoVestStaking.json"), []byte(foundry), 0o644))

	artifact, err := artifacts.NewRegistry(dir).Require("AlgoVestStaking")
	require.NoError(t, err)

	// no contractName in Foundry output, so the requested name is used
	assert.Equal(t, "AlgoVestStaking", artifact.ContractName)
	assert.Equal(t, testutils.StakingBytecode, hexutil.Encode(artifact.Bytecode))
}

func TestRequire_NotFound(t *testing.T) {
	_, err := artifacts.NewRegistry(t.TempDir()).Require("Missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, artifacts.ErrArtifactNotFound))
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"invalid json", `{`, "unmarshal artifact JSON"},
		{"missing abi", `{"bytecode": "0x00"}`, "has no abi"},
		{"invalid abi", `{"abi": [{"type": "function", "name": "f", "inputs": "not-an-array"}], "bytecode": "0x00"}`, "ABI for Broken is invalid"},
		{"abi not an array", `{"abi": {"type": "constructor"}, "bytecode": "0x00"}`, "ABI for Broken is invalid"},
		{"contract name escapes dir", `{"contractName": "../evil", "abi": [], "bytecode": "0x00"}`, "invalid contractName"},
		{"contract name is parent", `{"contractName": "..", "abi": [], "bytecode": "0x00"}`, "invalid contractName"},
		{"no bytecode", `{"abi": [], "bytecode": "0x"}`, "has no bytecode"},
		{"missing bytecode", `{"abi": []}`, "has no bytecode"},
		{"bad hex", `{"abi": [], "bytecode": "0xzz"}`, "bytecode for Broken"},
		{"unlinked", `{"abi": [], "bytecode": "0x60__$abc$__"}`, "unlinked library"},
		{"numeric bytecode", `{"abi": [], "bytecode": 12}`, "unexpected bytecode encoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := artifacts.Parse("Broken", []byte(tt.raw))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestList(t *testing.T) {
	dir := testutils.WriteStakingArtifact(t, t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Migrations.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte(`x`), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))

	names, err := artifacts.NewRegistry(dir).List()
	require.NoError(t, err)
	assert.Equal(t, []string{"AlgoVestStaking", "Migrations"}, names)

	_, err = artifacts.NewRegistry(filepath.Join(dir, "missing")).List()
	assert.Error(t, err)
}

func TestWriteOutput(t *testing.T) {
	artifact, err := artifacts.Parse("AlgoVestStaking", testutils.StakingArtifactJSON())
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "outputs")
	path, err := artifacts.WriteOutput(dir, "0x00000000000000000000000000000000000000aB", artifact)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "AlgoVestStaking.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out struct {
		Name    string        `json:"name"`
		Address string        `json:"address"`
		ABI     []interface{} `json:"abi"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "AlgoVestStaking", out.Name)
	assert.Equal(t, "0x00000000000000000000000000000000000000aB", out.Address)
	assert.Len(t, out.ABI, 2)
}

func TestWriteOutput_RejectsPathInName(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "outputs")

	for _, name := range []string{"../evil", "..", "nested/Name", ""} {
		_, err := artifacts.WriteOutput(dir, "0x00000000000000000000000000000000000000aB", &artifacts.Artifact{ContractName: name})
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "invalid contract name")
	}

	_, err := os.Stat(filepath.Join(root, "evil.json"))
	assert.True(t, os.IsNotExist(err))
}
