package filter

import (
	"cmp"
	"fmt"

	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// resolver returns the value of a field for the record under evaluation.
type resolver func(name string) (any, bool)

func evaluate(e *expr.Expr, resolve resolver) (bool, error) {
	if e == nil {
		return true, nil
	}
	call, ok := e.ExprKind.(*expr.Expr_CallExpr)
	if !ok {
		return false, fmt.Errorf("unsupported expression type: %T", e.ExprKind)
	}
	args := call.CallExpr.Args
	if len(args) != 2 {
		return false, fmt.Errorf("%s requires 2 arguments", call.CallExpr.Function)
	}
	switch op := operator(call.CallExpr.Function); op {
	case "AND":
		left, err := evaluate(args[0], resolve)
		if err != nil || !left {
			return false, err
		}
		return evaluate(args[1], resolve)
	case "OR":
		left, err := evaluate(args[0], resolve)
		if err != nil {
			return false, err
		}
		if left {
			return true, nil
		}
		return evaluate(args[1], resolve)
	case "=", "!=", "<", "<=", ">", ">=":
		field, value, err := comparison(args)
		if err != nil {
			return false, err
		}
		current, ok := resolve(field)
		if !ok {
			return false, fmt.Errorf("unknown field: %s", field)
		}
		c, err := compare(current, value)
		if err != nil {
			return false, err
		}
		return holds(op, c), nil
	default:
		return false, fmt.Errorf("unsupported function: %s", call.CallExpr.Function)
	}
}

// walk visits every comparison in e.
func walk(e *expr.Expr, visit func(field string, value any) error) error {
	if e == nil {
		return nil
	}
	call, ok := e.ExprKind.(*expr.Expr_CallExpr)
	if !ok {
		return fmt.Errorf("unsupported expression type: %T", e.ExprKind)
	}
	args := call.CallExpr.Args
	if len(args) != 2 {
		return fmt.Errorf("%s requires 2 arguments", call.CallExpr.Function)
	}
	switch operator(call.CallExpr.Function) {
	case "AND", "OR":
		if err := walk(args[0], visit); err != nil {
			return err
		}
		return walk(args[1], visit)
	case "=", "!=", "<", "<=", ">", ">=":
		field, value, err := comparison(args)
		if err != nil {
			return err
		}
		return visit(field, value)
	default:
		return fmt.Errorf("unsupported function: %s", call.CallExpr.Function)
	}
}

func operator(function string) string {
	switch function {
	case "_&&_", "AND":
		return "AND"
	case "_||_", "OR":
		return "OR"
	case "_==_", "=":
		return "="
	case "_!=_", "!=":
		return "!="
	case "_<_", "<":
		return "<"
	case "_<=_", "<=":
		return "<="
	case "_>_", ">":
		return ">"
	case "_>=_", ">=":
		return ">="
	default:
		return function
	}
}

func comparison(args []*expr.Expr) (string, any, error) {
	ident, ok := args[0].GetExprKind().(*expr.Expr_IdentExpr)
	if !ok {
		return "", nil, fmt.Errorf("expected identifier, got %T", args[0].GetExprKind())
	}
	if value, ok := args[1].GetExprKind().(*expr.Expr_IdentExpr); ok {
		switch value.IdentExpr.Name {
		case "true":
			return ident.IdentExpr.Name, true, nil
		case "false":
			return ident.IdentExpr.Name, false, nil
		}
	}
	constant, ok := args[1].GetExprKind().(*expr.Expr_ConstExpr)
	if !ok {
		return "", nil, fmt.Errorf("expected constant, got %T", args[1].GetExprKind())
	}
	switch kind := constant.ConstExpr.GetConstantKind().(type) {
	case *expr.Constant_StringValue:
		return ident.IdentExpr.Name, kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return ident.IdentExpr.Name, kind.Int64Value, nil
	case *expr.Constant_BoolValue:
		return ident.IdentExpr.Name, kind.BoolValue, nil
	default:
		return "", nil, fmt.Errorf("unsupported constant type: %T", kind)
	}
}

func compare(left, right any) (int, error) {
	switch l := left.(type) {
	case string:
		r, ok := right.(string)
		if !ok {
			return 0, fmt.Errorf("type mismatch: string vs %T", right)
		}
		return cmp.Compare(l, r), nil
	case int64:
		r, ok := right.(int64)
		if !ok {
			return 0, fmt.Errorf("type mismatch: int vs %T", right)
		}
		return cmp.Compare(l, r), nil
	case int:
		r, ok := right.(int64)
		if !ok {
			return 0, fmt.Errorf("type mismatch: int vs %T", right)
		}
		return cmp.Compare(int64(l), r), nil
	case bool:
		r, ok := right.(bool)
		if !ok {
			return 0, fmt.Errorf("type mismatch: bool vs %T", right)
		}
		switch {
		case l == r:
			return 0, nil
		case !l:
			return -1, nil
		default:
			return 1, nil
		}
	default:
		return 0, fmt.Errorf("unsupported value type: %T", left)
	}
}

func holds(op string, c int) bool {
	switch op {
	case "=":
		return c == 0
	case "!=":
		return c != 0
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	default:
		return c >= 0
	}
}
