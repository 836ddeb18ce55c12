package manifest

import (
	"bytes"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
)

// ApplyOverlays applies patches to doc in order and returns the result as
// JSON.  A patch holding a mapping is an RFC 7386 merge patch; a patch
// holding a sequence is an RFC 6902 JSON patch.  Both doc and patches may be
// YAML or JSON.
func ApplyOverlays(doc []byte, patches ...[]byte) ([]byte, error) {
	d, err := yaml.YAMLToJSON(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}
	for i, patch := range patches {
		p, err := yaml.YAMLToJSON(patch)
		if err != nil {
			return nil, fmt.Errorf("%w: overlay %d: %w", ErrManifest, i, err)
		}
		if bytes.HasPrefix(bytes.TrimSpace(p), []byte("[")) {
			ops, err := jsonpatch.DecodePatch(p)
			if err != nil {
				return nil, fmt.Errorf("%w: overlay %d: %w", ErrManifest, i, err)
			}
			d, err = ops.Apply(d)
		} else {
			d, err = jsonpatch.MergePatch(d, p)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: applying overlay %d: %w", ErrManifest, i, err)
		}
	}
	return d, nil
}
