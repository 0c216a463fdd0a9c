package artifacts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Output is written to <outputs>/<name>.json after a deployment
type Output struct {
	Name    string          `json:"name"`
	Address string          `json:"address"`
	ABI     json.RawMessage `json:"abi"`
}

// WriteOutput writes the deployed address and ABI of artifact and returns the file path
func WriteOutput(dir, address string, artifact *Artifact) (string, error) {
	if !validName(artifact.ContractName) {
		return "", fmt.Errorf("invalid contract name %q for output", artifact.ContractName)
	}
	if err := os.MkdirAll(dir, fs.ModePerm); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	out := Output{
		Name:    artifact.ContractName,
		Address: address,
		ABI:     artifact.RawABI,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal output for %s (%s): %w", out.Name, address, err)
	}

	outPath := filepath.Join(dir, out.Name+".json")
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write output to %s (%s): %w", outPath, address, err)
	}
	return outPath, nil
}
