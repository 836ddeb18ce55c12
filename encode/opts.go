package encode

import "github.com/signadot/starlark-compiler/format"

type EncodeOption func(*EncState)

// EncodeFormat sets the kind of file being written.  BUILD files may not
// contain function definitions.
func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) {
		es.format = f
		es.checkFormat = true
	}
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

func EncodeArrayPolicy(p ArrayPolicy) EncodeOption {
	return func(es *EncState) { es.arrays = p }
}
// Depth starts encoding n levels in.  Encode indents every statement to
// that level.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
