package generator

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/Arunachalam-140897/DevEngine/pkg/errors"
	"github.com/Arunachalam-140897/DevEngine/pkg/manifest"
	"github.com/Arunachalam-140897/DevEngine/pkg/topology"
)

// Kubernetes generates manifests from a JSON TopologyRequest.
type Kubernetes struct{}

// Generate checks the body against the topology schema, decodes it and
// compiles it. Malformed JSON is reported as an invalid request; schema and
// validation failures as *topology.ValidationError. A body that fails the
// schema is still validated as far as it decodes, so both kinds of violation
// come back together.
func (k *Kubernetes) Generate(ctx context.Context, body []byte, opts Options) (*manifest.Bundle, error) {
	if err := topology.CheckShape(body); err != nil {
		if stderrors.Is(err, topology.ErrMalformedJSON) {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "request body is not valid JSON", err)
		}
		return nil, withSemanticViolations(body, err)
	}

	var req topology.TopologyRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to decode topology", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, "generation canceled", err)
	}

	b, err := manifest.New(manifest.WithStrictVolumes(opts.StrictVolumes)).Compile(req)
	if err != nil {
		return nil, fmt.Errorf("failed to compile topology: %w", err)
	}
	return b, nil
}

// withSemanticViolations merges Validate output for the decodable part of body
// into a schema failure. Fields with the wrong JSON type are left zero by
// json.Unmarshal; Merge drops the violations they would cause.
func withSemanticViolations(body []byte, shapeErr error) error {
	var shape *topology.ValidationError
	if !stderrors.As(shapeErr, &shape) {
		return shapeErr
	}

	var req topology.TopologyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !stderrors.As(err, &typeErr) {
			return shape
		}
	}

	var semantic *topology.ValidationError
	if stderrors.As(topology.Validate(req), &semantic) {
		return shape.Merge(semantic)
	}
	return shape
}
