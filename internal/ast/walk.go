package ast

// WalkExpr visits id and its subtree in pre-order. Returning false from fn
// skips the children of that node.
func (e *Exprs) WalkExpr(id ExprID, fn func(id ExprID, expr *Expr) bool) {
	expr := e.Get(id)
	if expr == nil {
		return
	}
	if !fn(id, expr) {
		return
	}
	for _, child := range e.Children(id) {
		e.WalkExpr(child, fn)
	}
}
