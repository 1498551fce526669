// Package codegen lowers a program AST into WebAssembly text.
package codegen

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.creack.net/watc/ast"
)

// intrinsic maps a callee name to the single instruction it lowers to,
// bypassing the call indirection.
type intrinsic struct {
	instruction string
	arity       int
}

var intrinsics = map[string]intrinsic{
	"sqrt":     {"f32.sqrt", 1},
	"abs":      {"f32.abs", 1},
	"floor":    {"f32.floor", 1},
	"ceil":     {"f32.ceil", 1},
	"trunc":    {"f32.trunc", 1},
	"nearest":  {"f32.nearest", 1},
	"min":      {"f32.min", 2},
	"max":      {"f32.max", 2},
	"copysign": {"f32.copysign", 2},
}

// generator walks the AST and accumulates the module text. One emission
// site per expression variant; emitting an expression always leaves
// exactly one f32 on the evaluation stack.
type generator struct {
	out strings.Builder

	params map[string]int // Parameter name -> slot, for the current function.
}

// Generate emits the textual module for prog on w: one function per
// definition in source order, then one export per function. It expects
// an error-free program; generating for a program with outstanding
// diagnostics is a pipeline bug, not a supported input.
func Generate(prog ast.Program, w io.Writer) error {
	seen := make(map[string]struct{}, len(prog.Functions))
	for _, fn := range prog.Functions {
		if _, ok := seen[fn.Proto.Name]; ok {
			return fmt.Errorf("duplicate function %q", fn.Proto.Name)
		}
		seen[fn.Proto.Name] = struct{}{}
	}

	g := &generator{}
	g.line("(module")
	for _, fn := range prog.Functions {
		if err := g.function(fn); err != nil {
			return fmt.Errorf("function %q: %w", fn.Proto.Name, err)
		}
	}
	for _, fn := range prog.Functions {
		g.line("  (export %q (func $%s))", fn.Proto.Name, fn.Proto.Name)
	}
	g.line(")")

	_, err := io.WriteString(w, g.out.String())
	return err
}

func (g *generator) line(format string, args ...any) {
	fmt.Fprintf(&g.out, format+"\n", args...)
}

// instr emits one body instruction.
func (g *generator) instr(format string, args ...any) {
	g.line("    "+format, args...)
}

func (g *generator) function(fn ast.Function) error {
	g.params = make(map[string]int, len(fn.Proto.Params))
	header := fmt.Sprintf("  (func $%s", fn.Proto.Name)
	for i, name := range fn.Proto.Params {
		g.params[name] = i
		header += " (param f32)"
	}
	g.line("%s (result f32)", header)
	if err := g.expr(fn.Body); err != nil {
		return err
	}
	g.line("  )")
	return nil
}

func (g *generator) expr(e ast.Expr) error {
	switch n := e.(type) {
	case *ast.NumberExpr:
		g.instr("f32.const %s", formatNumber(n.Value))
		return nil
	case *ast.VariableExpr:
		slot, ok := g.params[n.Name]
		if !ok {
			return fmt.Errorf("undefined variable %q", n.Name)
		}
		g.instr("local.get %d", slot)
		return nil
	case *ast.UnaryExpr:
		if n.Op != ast.OpSub {
			return fmt.Errorf("unsupported unary operator %q", n.Op)
		}
		if err := g.expr(n.Operand); err != nil {
			return err
		}
		g.instr("f32.neg")
		return nil
	case *ast.BinaryExpr:
		return g.binary(n)
	case *ast.CallExpr:
		return g.call(n)
	case *ast.ConditionalExpr:
		return g.conditional(n)
	default:
		return fmt.Errorf("unknown expression node %T", e)
	}
}

// binary emits left then right, the ordering is significant for the
// non-commutative operators. Comparisons leave an i32 flag and logical
// combinators operate on i32 truthiness, both convert back to f32 so
// every expression uniformly yields one f32.
func (g *generator) binary(n *ast.BinaryExpr) error {
	if err := g.expr(n.Left); err != nil {
		return err
	}
	if n.Op.IsLogical() {
		g.truthiness()
	}
	if err := g.expr(n.Right); err != nil {
		return err
	}
	if n.Op.IsLogical() {
		g.truthiness()
	}
	g.instr("%s", n.Op.Instruction())
	if n.Op.IsComparison() || n.Op.IsLogical() {
		g.instr("f32.convert_i32_u")
	}
	return nil
}

func (g *generator) call(n *ast.CallExpr) error {
	if in, ok := intrinsics[n.Callee]; ok {
		if len(n.Args) != in.arity {
			return fmt.Errorf("intrinsic %q takes %d argument(s), got %d", n.Callee, in.arity, len(n.Args))
		}
		for _, arg := range n.Args {
			if err := g.expr(arg); err != nil {
				return err
			}
		}
		g.instr("%s", in.instruction)
		return nil
	}

	// Arguments left to right, then call by name. Callee resolution is
	// left to the external text-to-binary translator.
	for _, arg := range n.Args {
		if err := g.expr(arg); err != nil {
			return err
		}
	}
	g.instr("call $%s", n.Callee)
	return nil
}

// conditional emits a structured if/else/end block typed as producing
// one f32, valid in expression position.
func (g *generator) conditional(n *ast.ConditionalExpr) error {
	if err := g.expr(n.Cond); err != nil {
		return err
	}
	g.truthiness()
	g.instr("if (result f32)")
	if err := g.expr(n.Then); err != nil {
		return err
	}
	g.instr("else")
	if err := g.expr(n.Else); err != nil {
		return err
	}
	g.instr("end")
	return nil
}

// truthiness collapses the f32 on top of the stack into an i32 flag,
// nonzero becomes 1.
func (g *generator) truthiness() {
	g.instr("f32.const 0")
	g.instr("f32.ne")
}

func formatNumber(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
