// Package csv provides row rendering to text.
//
// Rendering goes through Shape's AST: RowNode turns a decoded row into an
// *ast.ArrayDataNode of string *ast.LiteralNode fields, and Render writes
// that node out.
package csv

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Valuer is a decoded row that lists its fields in order.
// Tuple1 through Tuple4 and Record implement it.
type Valuer interface {
	Values() []interface{}
}

// RowNode converts a decoded row to an AST record node. It is the AST entry
// point Render is layered on. Each field becomes a LiteralNode holding its
// text form; times are formatted as RFC 3339.
func RowNode(row Valuer) *ast.ArrayDataNode {
	pos := ast.Position{}

	values := row.Values()
	fields := make([]ast.SchemaNode, len(values))
	for i, v := range values {
		fields[i] = ast.NewLiteralNode(formatValue(v), pos)
	}
	return ast.NewArrayDataNode(fields, pos)
}

// Render writes the row's fields separated by single spaces, with no
// trailing separator or newline.
//
// Example:
//
//	_ = csv.Render(os.Stdout, csv.Tuple3[int, string, string]{1, "ann", "smith"})
//	// 1 ann smith
func Render(w io.Writer, row Valuer) error {
	var buf bytes.Buffer
	if err := renderRecord(RowNode(row), &buf); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// renderRecord renders a record node's literal fields.
func renderRecord(node *ast.ArrayDataNode, buf *bytes.Buffer) error {
	for i, elem := range node.Elements() {
		if i > 0 {
			buf.WriteByte(' ')
		}
		lit, ok := elem.(*ast.LiteralNode)
		if !ok {
			return fmt.Errorf("unexpected element type in record: %T", elem)
		}
		text, ok := lit.Value().(string)
		if !ok {
			return fmt.Errorf("unexpected literal value in record: %T", lit.Value())
		}
		buf.WriteString(text)
	}
	return nil
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}
