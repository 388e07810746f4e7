package topology

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FromFile reads a TopologyRequest from a YAML or JSON file.
func FromFile(path string) (*TopologyRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open topology file %q: %w", path, err)
	}
	defer f.Close()

	req, err := FromReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load topology file %q: %w", path, err)
	}
	return req, nil
}

// FromReader decodes a TopologyRequest from YAML or JSON. JSON is a subset of
// YAML, so one decoder serves both. Unknown fields are rejected.
func FromReader(r io.Reader) (*TopologyRequest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read topology: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("topology document is empty")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var req TopologyRequest
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to decode topology: %w", err)
	}
	return &req, nil
}
