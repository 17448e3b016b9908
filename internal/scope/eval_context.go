package scope

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// functions is the fixed set of functions available to attribute expressions.
var functions = map[string]function.Function{
	"concat":  stdlib.ConcatFunc,
	"format":  stdlib.FormatFunc,
	"join":    stdlib.JoinFunc,
	"length":  stdlib.LengthFunc,
	"lower":   stdlib.LowerFunc,
	"upper":   stdlib.UpperFunc,
	"replace": stdlib.ReplaceFunc,
	"split":   stdlib.SplitFunc,
}

// EvalContext returns an HCL evaluation context exposing every binding
// visible from s. Inner bindings shadow outer ones.
func (s *Scope) EvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	var chain []*Scope
	for cur := s; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for n, b := range chain[i].values {
			vars[n] = b.Value.Value
		}
	}
	return &hcl.EvalContext{Variables: vars, Functions: functions}
}
