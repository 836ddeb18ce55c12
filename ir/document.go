package ir

// Document is the ordered list of top level statements of a file.
type Document struct {
	Statements []*Node
}

func NewDocument(stmts ...*Node) *Document {
	return &Document{Statements: stmts}
}

func (d *Document) Append(stmts ...*Node) {
	d.Statements = append(d.Statements, stmts...)
}

func (d *Document) Len() int {
	return len(d.Statements)
}
