package dirbuild

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/signadot/starlark-compiler/debug"
)

const (
	EnvOverlays = "STARC_OVERLAYS"
)

// LoadEnv returns the overlays listed in $STARC_OVERLAYS, separated as in
// $PATH.
func LoadEnv() ([]string, error) {
	v := os.Getenv(EnvOverlays)
	if v == "" {
		return nil, nil
	}
	var res []string
	for _, p := range filepath.SplitList(v) {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("error loading overlays from $%s: %w", EnvOverlays, err)
		}
		res = append(res, p)
	}
	if debug.Manifest() {
		debug.Logf("loaded overlays from env: %v", res)
	}
	return res, nil
}
