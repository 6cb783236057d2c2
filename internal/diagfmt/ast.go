package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"kaleido/internal/ast"
	"kaleido/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

// formatSpan formats a source.Span into a string.
// If fs is non-nil, it resolves the span to "startLine:startCol-endLine:endCol",
// otherwise it returns "span(start-end)".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		if _, ok := fs.Lookup(span.File); ok {
			start, end := fs.Resolve(span)
			return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		}
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// FormatASTPretty печатает дерево файла с ветками ├─ └─.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file not found")
	}

	header := "File"
	if fs != nil {
		if src, ok := fs.Lookup(file.Span.File); ok {
			header = src.FormatPath("auto", fs.BaseDir())
		}
	}
	fmt.Fprintf(w, "%s (span: %s)\n", header, formatSpan(file.Span, fs))

	for i, itemID := range file.Items {
		node := itemNode(builder, itemID, fs)
		node.label = fmt.Sprintf("Item[%d]: %s", i, node.label)
		writeTree(w, node, "", i == len(file.Items)-1)
	}
	return nil
}

// FormatASTSExpr печатает по одной S-выражению на элемент.
func FormatASTSExpr(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file not found")
	}
	for _, itemID := range file.Items {
		if _, err := fmt.Fprintln(w, builder.ItemSExpr(itemID)); err != nil {
			return err
		}
	}
	return nil
}

type treeNode struct {
	label    string
	children []*treeNode
}

func writeTree(w io.Writer, n *treeNode, prefix string, last bool) {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, branch, n.label)
	for i, c := range n.children {
		writeTree(w, c, prefix+next, i == len(n.children)-1)
	}
}

func itemNode(b *ast.Builder, id ast.ItemID, fs *source.FileSet) *treeNode {
	item := b.Items.Get(id)
	if item == nil {
		return &treeNode{label: "<nil>"}
	}
	node := &treeNode{label: fmt.Sprintf("%s (span: %s)", item.Kind, formatSpan(item.Span, fs))}
	if proto, ok := b.Items.ProtoOf(id); ok && item.Kind != ast.ItemTopLevel {
		node.children = append(node.children, protoNode(b, proto))
	}
	if fn, ok := b.Items.Func(id); ok {
		body := exprNode(b, fn.Body, fs)
		body.label = "Body: " + body.label
		node.children = append(node.children, body)
	}
	return node
}

func protoNode(b *ast.Builder, proto *ast.Prototype) *treeNode {
	n := &treeNode{label: "Prototype: " + b.Name(proto.Name)}
	params := &treeNode{label: fmt.Sprintf("Params (%d)", len(proto.Params))}
	for _, p := range proto.Params {
		params.children = append(params.children, &treeNode{label: b.Name(p)})
	}
	n.children = append(n.children, params)
	return n
}

func exprNode(b *ast.Builder, id ast.ExprID, fs *source.FileSet) *treeNode {
	e := b.Exprs.Get(id)
	if e == nil {
		return &treeNode{label: "<nil>"}
	}
	span := formatSpan(e.Span, fs)
	switch e.Kind {
	case ast.ExprNumber:
		n, _ := b.Exprs.Number(id)
		return &treeNode{label: fmt.Sprintf("Number %s (span: %s)", n.Text, span)}
	case ast.ExprVariable:
		v, _ := b.Exprs.Variable(id)
		return &treeNode{label: fmt.Sprintf("Variable %s (span: %s)", b.Name(v.Name), span)}
	case ast.ExprBinary:
		bin, _ := b.Exprs.Binary(id)
		return &treeNode{
			label:    fmt.Sprintf("Binary '%c' (span: %s)", bin.Op, span),
			children: []*treeNode{exprNode(b, bin.Left, fs), exprNode(b, bin.Right, fs)},
		}
	case ast.ExprCall:
		call, _ := b.Exprs.Call(id)
		n := &treeNode{label: fmt.Sprintf("Call %s (span: %s)", b.Name(call.Callee), span)}
		for _, arg := range call.Args {
			n.children = append(n.children, exprNode(b, arg, fs))
		}
		return n
	}
	return &treeNode{label: e.Kind.String()}
}

func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	out, err := BuildASTJSON(builder, fileID)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// BuildASTJSON builds the JSON tree for a file without encoding it.
func BuildASTJSON(builder *ast.Builder, fileID ast.FileID) (ASTNodeOutput, error) {
	file := builder.Files.Get(fileID)
	if file == nil {
		return ASTNodeOutput{}, fmt.Errorf("file not found")
	}
	root := ASTNodeOutput{Type: "File", Span: file.Span}
	for _, itemID := range file.Items {
		node, err := itemJSON(builder, itemID)
		if err != nil {
			return ASTNodeOutput{}, err
		}
		root.Children = append(root.Children, node)
	}
	return root, nil
}

func itemJSON(b *ast.Builder, id ast.ItemID) (ASTNodeOutput, error) {
	item := b.Items.Get(id)
	if item == nil {
		return ASTNodeOutput{}, fmt.Errorf("item %d not found", id)
	}
	node := ASTNodeOutput{Type: "Item", Kind: item.Kind.String(), Span: item.Span}
	if proto, ok := b.Items.ProtoOf(id); ok {
		params := make([]string, len(proto.Params))
		for i, p := range proto.Params {
			params[i] = b.Name(p)
		}
		node.Fields = map[string]any{"name": b.Name(proto.Name), "params": params}
	}
	if fn, ok := b.Items.Func(id); ok {
		node.Children = append(node.Children, exprJSON(b, fn.Body))
	}
	return node, nil
}

func exprJSON(b *ast.Builder, id ast.ExprID) ASTNodeOutput {
	e := b.Exprs.Get(id)
	if e == nil {
		return ASTNodeOutput{Type: "Expr", Kind: "invalid"}
	}
	node := ASTNodeOutput{Type: "Expr", Kind: e.Kind.String(), Span: e.Span}
	switch e.Kind {
	case ast.ExprNumber:
		n, _ := b.Exprs.Number(id)
		node.Text = n.Text
		node.Fields = map[string]any{"value": strconv.FormatFloat(n.Value, 'g', -1, 64)}
	case ast.ExprVariable:
		v, _ := b.Exprs.Variable(id)
		node.Text = b.Name(v.Name)
	case ast.ExprBinary:
		bin, _ := b.Exprs.Binary(id)
		node.Text = string(rune(bin.Op))
		node.Children = []ASTNodeOutput{exprJSON(b, bin.Left), exprJSON(b, bin.Right)}
	case ast.ExprCall:
		call, _ := b.Exprs.Call(id)
		node.Text = b.Name(call.Callee)
		for _, arg := range call.Args {
			node.Children = append(node.Children, exprJSON(b, arg))
		}
	}
	return node
}
