package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/yaml"
)

// encode serializes a typed Kubernetes object to YAML. Server-populated and
// zero-valued fields (status, creationTimestamp, empty structs) are dropped
// so the output only carries what the topology asked for.
func encode(obj any) (string, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("failed to marshal object: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return "", fmt.Errorf("failed to decode object: %w", err)
	}

	u := &unstructured.Unstructured{Object: doc}
	unstructured.RemoveNestedField(u.Object, "status")
	unstructured.RemoveNestedField(u.Object, "metadata", "creationTimestamp")

	out, err := yaml.Marshal(pruneMap(u.Object))
	if err != nil {
		return "", fmt.Errorf("failed to encode %s %q: %w", u.GetKind(), u.GetName(), err)
	}
	return string(out), nil
}

// pruneMap removes nil values, empty maps and empty lists, recursively.
// Empty strings are kept: a ConfigMap value may legitimately be "".
func pruneMap(m map[string]any) map[string]any {
	for k, v := range m {
		pv, keep := pruneValue(v)
		if !keep {
			delete(m, k)
			continue
		}
		m[k] = pv
	}
	return m
}

func pruneValue(v any) (any, bool) {
	switch tv := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		pruned := pruneMap(tv)
		return pruned, len(pruned) > 0
	case []any:
		if len(tv) == 0 {
			return nil, false
		}
		// list entries are pruned but never dropped
		for i, item := range tv {
			if pi, ok := pruneValue(item); ok {
				tv[i] = pi
			}
		}
		return tv, true
	default:
		return v, true
	}
}
