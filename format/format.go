package format

import (
	"errors"
	"fmt"
	"path/filepath"
)

type Format int

const (
	BuildFormat Format = iota
	BazelFormat
	BzlFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"build":       BuildFormat,
		"BUILD":       BuildFormat,
		"bazel":       BazelFormat,
		"BUILD.bazel": BazelFormat,
		"bzl":         BzlFormat,
		".bzl":        BzlFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case BuildFormat:
		return []byte("build"), nil
	case BazelFormat:
		return []byte("bazel"), nil
	case BzlFormat:
		return []byte("bzl"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

// IsBuild reports whether f is one of the BUILD file flavors, where
// function definitions are not allowed.
func (f Format) IsBuild() bool { return f == BuildFormat || f == BazelFormat }
func (f Format) IsBzl() bool   { return f == BzlFormat }

// FileName returns the name of a file of this format in a package.  For
// .bzl files, base names the extension file (without suffix).
func (f Format) FileName(base string) string {
	switch f {
	case BuildFormat:
		return "BUILD"
	case BazelFormat:
		return "BUILD.bazel"
	case BzlFormat:
		if base == "" {
			base = "defs"
		}
		return base + ".bzl"
	default:
		return ""
	}
}

// Detect returns the format implied by a file path.
func Detect(path string) (Format, error) {
	base := filepath.Base(path)
	switch {
	case base == "BUILD":
		return BuildFormat, nil
	case base == "BUILD.bazel":
		return BazelFormat, nil
	case filepath.Ext(base) == ".bzl":
		return BzlFormat, nil
	}
	return 0, fmt.Errorf("%w: cannot detect format of %q", ErrBadFormat, path)
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{BazelFormat, BuildFormat, BzlFormat}
}
