package artifacts

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ErrArtifactNotFound is returned by Require when no artifact file exists for a name
var ErrArtifactNotFound = errors.New("artifact not found")

// Artifact is a compiled contract: its ABI and creation bytecode
type Artifact struct {
	ContractName string
	ABI          abi.ABI
	RawABI       json.RawMessage
	Bytecode     []byte
	SourcePath   string
}

// artifactFile covers the Truffle/Hardhat layout ("bytecode": "0x...") and the Foundry
// layout ("bytecode": {"object": "0x..."})
type artifactFile struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
}

// Registry resolves artifacts by contract name from a build directory
type Registry struct {
	dir string
}

func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir}
}

func (r *Registry) Dir() string {
	return r.dir
}

// Require loads <dir>/<name>.json
func (r *Registry) Require(name string) (*Artifact, error) {
	path := filepath.Join(r.dir, name+".json")
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s (looked in %s)", ErrArtifactNotFound, name, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", name, err)
	}

	artifact, err := Parse(name, raw)
	if err != nil {
		return nil, err
	}
	artifact.SourcePath = path
	return artifact, nil
}

// List returns the contract names of all artifacts in the directory, sorted
func (r *Registry) List() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read artifacts dir %s: %w", r.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Parse decodes an artifact file. name is used when the file carries no contractName.
func Parse(name string, raw []byte) (*Artifact, error) {
	var file artifactFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("unmarshal artifact JSON for %s: %w", name, err)
	}

	if len(file.ABI) == 0 || bytes.Equal(file.ABI, []byte("null")) {
		return nil, fmt.Errorf("artifact %s has no abi", name)
	}
	parsedABI, err := abi.JSON(bytes.NewReader(file.ABI))
	if err != nil {
		return nil, fmt.Errorf("ABI for %s is invalid: %w", name, err)
	}

	bytecode, err := decodeBytecode(file.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("bytecode for %s: %w", name, err)
	}
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("artifact %s has no bytecode (abstract contract or interface?)", name)
	}

	contractName := file.ContractName
	if contractName == "" {
		contractName = name
	}
	if !validName(contractName) {
		return nil, fmt.Errorf("artifact %s has invalid contractName %q", name, contractName)
	}

	return &Artifact{
		ContractName: contractName,
		ABI:          parsedABI,
		RawABI:       file.ABI,
		Bytecode:     bytecode,
	}, nil
}

func decodeBytecode(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var hexStr string
	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &hexStr); err != nil {
			return nil, err
		}
	case '{':
		var obj struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, err
		}
		hexStr = obj.Object
	default:
		return nil, fmt.Errorf("unexpected bytecode encoding %s", string(raw))
	}

	hexStr = strings.TrimPrefix(strings.TrimSpace(hexStr), "0x")
	if strings.Contains(hexStr, "__") {
		return nil, fmt.Errorf("bytecode contains unlinked library placeholders")
	}
	return hex.DecodeString(hexStr)
}

// validName reports whether n can be used as a file name inside an artifacts or outputs dir
func validName(n string) bool {
	return n != "" && n != "." && n != ".." && !strings.ContainsAny(n, `/\`)
}
