package encode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/signadot/starlark-compiler/debug"
	"github.com/signadot/starlark-compiler/format"
	"github.com/signadot/starlark-compiler/ir"
	"github.com/signadot/starlark-compiler/token"
)

// ErrUnrenderable is returned when the encoder meets a node it has no
// rendering for.  Trees built with package ir never trigger it.
var ErrUnrenderable = errors.New("unrenderable node")

type EncState struct {
	line          int
	depth, indent int

	format      format.Format
	checkFormat bool
	arrays      ArrayPolicy

	Color func(ir.Type, ColorAttr, string) string
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{
		indent: 4,
	}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes doc to w in canonical BUILD file layout.  An empty document
// produces no output; otherwise the output ends in exactly one newline.
func Encode(doc *ir.Document, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	if err := checkStatements(doc.Statements, es); err != nil {
		return err
	}
	for i, stmt := range doc.Statements {
		if i > 0 {
			if err := writeString(w, "\n"); err != nil {
				return err
			}
			if !(stmt.IsLoad() && doc.Statements[i-1].IsLoad()) {
				if err := writeString(w, "\n"); err != nil {
					return err
				}
			}
		}
		if err := writeIndent(w, es); err != nil {
			return err
		}
		if err := encodeStatement(stmt, w, es); err != nil {
			return err
		}
	}
	if len(doc.Statements) == 0 {
		return nil
	}
	if debug.Encode() {
		debug.Logf("encoded %d statements in %d lines", len(doc.Statements), es.line+1)
	}
	return writeString(w, "\n")
}

// EncodeNode writes a single statement or expression followed by a newline.
// The first line is written at the cursor; with Depth the caller has
// already indented it.
func EncodeNode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	if err := checkStatements([]*ir.Node{node}, es); err != nil {
		return err
	}
	if err := encodeStatement(node, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

func Render(doc *ir.Document, opts ...EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func checkStatements(stmts []*ir.Node, es *EncState) error {
	for i, stmt := range stmts {
		if stmt == nil {
			return fmt.Errorf("%w: nil statement %d", ErrUnrenderable, i)
		}
		if !es.checkFormat || !es.format.IsBuild() {
			continue
		}
		if stmt.Type == ir.DeclarationType {
			return fmt.Errorf("%w: function %s cannot be defined in a %s file",
				format.ErrBadFormat, stmt.Name, es.format.FileName(""))
		}
	}
	return nil
}

func encodeStatement(node *ir.Node, w io.Writer, es *EncState) error {
	if node == nil {
		return fmt.Errorf("%w: nil statement", ErrUnrenderable)
	}
	switch node.Type {
	case ir.AssignmentType:
		if err := writeString(w, applyColor(es, node.Type, NameColor, node.Name)); err != nil {
			return err
		}
		if err := writeSep(w, es, node.Type, " = "); err != nil {
			return err
		}
		return encode(node.Right, w, es)
	case ir.DeclarationType:
		return encodeDef(node, w, es)
	default:
		return encode(node, w, es)
	}
}

func encodeDef(node *ir.Node, w io.Writer, es *EncState) error {
	hdr := applyColor(es, node.Type, KeywordColor, "def") + " " +
		applyColor(es, node.Type, NameColor, node.Name) +
		"(" + strings.Join(node.Params, ", ") + "):"
	if err := writeString(w, hdr); err != nil {
		return err
	}
	es.depth++
	defer func() { es.depth-- }()
	if len(node.Values) == 0 {
		if err := writeNL(w, es); err != nil {
			return err
		}
		return writeString(w, applyColor(es, node.Type, KeywordColor, "pass"))
	}
	for _, stmt := range node.Values {
		if stmt != nil && stmt.Type == ir.DeclarationType {
			return fmt.Errorf("%w: nested function %s in %s", ErrUnrenderable, stmt.Name, node.Name)
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encodeStatement(stmt, w, es); err != nil {
			return err
		}
	}
	return nil
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrUnrenderable)
	}
	switch node.Type {
	case ir.NoneType:
		return writeString(w, applyValueColor(es, node.Type, "None"))
	case ir.BoolType:
		v := "False"
		if node.Bool {
			v = "True"
		}
		return writeString(w, applyValueColor(es, node.Type, v))
	case ir.NumberType:
		v, err := formatNumber(node)
		if err != nil {
			return err
		}
		return writeString(w, applyValueColor(es, node.Type, v))
	case ir.StringType:
		if !utf8.ValidString(node.String) {
			return fmt.Errorf("%w: string %q is not valid UTF-8", ErrUnrenderable, node.String)
		}
		return writeString(w, applyValueColor(es, node.Type, token.Quote(node.String)))
	case ir.ReferenceType:
		if node.Name == "" {
			return fmt.Errorf("%w: variable reference without a name", ErrUnrenderable)
		}
		return writeString(w, applyValueColor(es, node.Type, node.Name))
	case ir.ArrayType:
		return encodeArray(node, w, es)
	case ir.DictionaryType:
		return encodeDictionary(node, w, es)
	case ir.BinaryType:
		return encodeBinary(node, w, es)
	case ir.CallType:
		return encodeCall(node, w, es)
	case ir.AssignmentType, ir.DeclarationType:
		return fmt.Errorf("%w: %s %s used as an expression", ErrUnrenderable, node.Type, node.Name)
	default:
		return fmt.Errorf("%w: unknown node type %d", ErrUnrenderable, int(node.Type))
	}
}

func formatNumber(node *ir.Node) (string, error) {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10), nil
	case node.Float64 != nil:
		f := *node.Float64
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return "", fmt.Errorf("%w: %v has no literal form", ErrUnrenderable, f)
		}
		v := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(v, ".e") {
			v += ".0"
		}
		return v, nil
	default:
		return "", fmt.Errorf("%w: number without a value", ErrUnrenderable)
	}
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	single := SingleLine(node, es.arrays)
	return encodeList(w, es, node.Type, "[", "]", len(node.Values), single, func(i int) error {
		return encode(node.Values[i], w, es)
	})
}

func encodeDictionary(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) != len(node.Values) {
		return fmt.Errorf("%w: dictionary with %d keys and %d values",
			ErrUnrenderable, len(node.Fields), len(node.Values))
	}
	single := SingleLine(node, es.arrays)
	return encodeList(w, es, node.Type, "{", "}", len(node.Fields), single, func(i int) error {
		if err := encode(node.Fields[i], w, es); err != nil {
			return err
		}
		if err := writeSep(w, es, node.Type, ": "); err != nil {
			return err
		}
		return encode(node.Values[i], w, es)
	})
}

func encodeBinary(node *ir.Node, w io.Writer, es *EncState) error {
	if err := encodeOperand(node, node.Left, false, w, es); err != nil {
		return err
	}
	op := " " + node.Operator.String() + " "
	if err := writeString(w, applyColor(es, node.Type, KeywordColor, op)); err != nil {
		return err
	}
	return encodeOperand(node, node.Right, true, w, es)
}

// encodeOperand parenthesizes binary operands that bind more loosely than
// their parent, right operands of equal precedence and nested comparisons.
func encodeOperand(parent, child *ir.Node, right bool, w io.Writer, es *EncState) error {
	if child == nil || child.Type != ir.BinaryType {
		return encode(child, w, es)
	}
	pp, cp := parent.Operator.Precedence(), child.Operator.Precedence()
	if cp > pp || (cp == pp && !right && pp > 1) {
		return encode(child, w, es)
	}
	if err := writeSep(w, es, child.Type, "("); err != nil {
		return err
	}
	if err := encode(child, w, es); err != nil {
		return err
	}
	return writeSep(w, es, child.Type, ")")
}

func encodeCall(node *ir.Node, w io.Writer, es *EncState) error {
	if err := writeString(w, applyColor(es, node.Type, NameColor, node.Name)); err != nil {
		return err
	}
	single := SingleLine(node, es.arrays)
	nArgs := len(node.Values)
	return encodeList(w, es, node.Type, "(", ")", nArgs+len(node.Kwargs), single, func(i int) error {
		if i < nArgs {
			return encode(node.Values[i], w, es)
		}
		kw := node.Kwargs[i-nArgs]
		if err := writeString(w, applyColor(es, node.Type, KeywordColor, kw.Name)); err != nil {
			return err
		}
		if err := writeSep(w, es, node.Type, " = "); err != nil {
			return err
		}
		return encode(kw.Value, w, es)
	})
}

// encodeList writes n items between open and close.  Single line lists are
// joined by ", "; otherwise each item goes on its own line one level deeper
// than the current line, followed by a comma, and close goes on a line of
// its own.
func encodeList(w io.Writer, es *EncState, t ir.Type, open, close string, n int, single bool, item func(int) error) error {
	if err := writeSep(w, es, t, open); err != nil {
		return err
	}
	if single {
		for i := 0; i < n; i++ {
			if i > 0 {
				if err := writeSep(w, es, t, ", "); err != nil {
					return err
				}
			}
			if err := item(i); err != nil {
				return err
			}
		}
		return writeSep(w, es, t, close)
	}
	if err := encodeItems(w, es, t, n, item); err != nil {
		return err
	}
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeSep(w, es, t, close)
}

func encodeItems(w io.Writer, es *EncState, t ir.Type, n int, item func(int) error) error {
	es.depth++
	defer func() { es.depth-- }()
	for i := 0; i < n; i++ {
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := item(i); err != nil {
			return err
		}
		if err := writeSep(w, es, t, ","); err != nil {
			return err
		}
	}
	return nil
}

func writeNL(w io.Writer, es *EncState) error {
	if err := writeString(w, "\n"); err != nil {
		return err
	}
	es.line++
	return writeIndent(w, es)
}

func writeIndent(w io.Writer, es *EncState) error {
	if es.depth == 0 {
		return nil
	}
	return writeString(w, strings.Repeat(" ", es.indent*es.depth))
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func writeSep(w io.Writer, es *EncState, t ir.Type, sep string) error {
	return writeString(w, applyColor(es, t, SepColor, sep))
}

func applyColor(es *EncState, t ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(t, attr, v)
}

func applyValueColor(es *EncState, t ir.Type, v string) string {
	return applyColor(es, t, ValueColor, v)
}
