// Package expr compiles CEL predicates over tree nodes. A predicate sees one
// node at a time through the `node` variable and must evaluate to a boolean;
// the CLI and TUI use it to pick keys out of a forest snapshot.
package expr

import (
	"fmt"
	"reflect"

	"github.com/google/cel-go/cel"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/treeview/pkg/tree"
)

// Predicate is a compiled node predicate, safe for repeated evaluation.
type Predicate struct {
	prg cel.Program
	src string
}

// Compile parses and type-checks a predicate expression. The expression must
// produce a bool; anything else is rejected at compile time.
//
// Available fields: node.key, node.title, node.style, node.selectable,
// node.opened, node.disabled, node.visible, node.checked, node.leaf,
// node.depth.
func Compile(src string) (*Predicate, error) {
	env, err := cel.NewEnv(
		cel.Variable("node", cel.DynType),
		// String/list/math extensions give predicates the usual helpers
		// (contains, startsWith, lists, min/max).
		celext.Strings(),
		celext.Lists(),
		celext.Math(),
	)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	ast, issues := env.Compile(src)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile predicate: %w", issues.Err())
	}
	// Field access through the dyn `node` variable yields dyn, so only a
	// statically known non-bool output can be rejected here; Match still
	// guards the dyn case at evaluation time.
	if !reflect.DeepEqual(ast.OutputType(), cel.BoolType) && !reflect.DeepEqual(ast.OutputType(), cel.DynType) {
		return nil, fmt.Errorf("predicate must evaluate to bool, got %s", ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build predicate program: %w", err)
	}
	return &Predicate{prg: prg, src: src}, nil
}

// Source returns the original expression text.
func (p *Predicate) Source() string {
	return p.src
}

// Match evaluates the predicate against one node at the given depth.
func (p *Predicate) Match(n tree.Node, depth int) (bool, error) {
	out, _, err := p.prg.Eval(map[string]any{
		"node": nodeVars(n, depth),
	})
	if err != nil {
		return false, fmt.Errorf("evaluate predicate: %w", err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("predicate produced %T, want bool", out.Value())
	}
	return b, nil
}

// MatchingKeys walks the forest in pre-order and returns the keys of every
// node the predicate accepts. Evaluation stops at the first error.
func MatchingKeys(p *Predicate, f tree.Forest) ([]string, error) {
	var keys []string
	var evalErr error
	tree.Walk(f, func(n tree.Node, depth int) bool {
		ok, err := p.Match(n, depth)
		if err != nil {
			evalErr = err
			return false
		}
		if ok {
			keys = append(keys, n.Key)
		}
		return true
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return keys, nil
}

func nodeVars(n tree.Node, depth int) map[string]any {
	return map[string]any{
		"key":        n.Key,
		"title":      n.Title,
		"style":      n.Style,
		"selectable": n.Selectable,
		"opened":     n.Opened,
		"disabled":   n.Disabled,
		"visible":    n.Visible,
		"checked":    n.Checked,
		"leaf":       n.Leaf(),
		"depth":      depth,
	}
}
