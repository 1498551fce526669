// Package ast defines the expression tree built by the parser and
// consumed by the code generator.
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Program represents the top-level program: an ordered sequence of
// function definitions. Source order is preserved, the code generator
// emits definitions in that order.
type Program struct {
	Functions []Function
}

func (p Program) Dump() string {
	result := ""
	for _, fn := range p.Functions {
		result += fmt.Sprintf("%s\n", fn.Dump())
	}
	return result
}

// Prototype is a function's name and its ordered parameter names.
type Prototype struct {
	Name   string
	Params []string
}

func (p Prototype) Dump() string {
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(p.Params, " "))
}

// Function is a prototype plus a single body expression. The function's
// value is the value of its body, there is no return statement.
type Function struct {
	Proto Prototype
	Body  Expr
}

func (f Function) Dump() string {
	return fmt.Sprintf("def %s %s;", f.Proto.Dump(), f.Body.Dump())
}

// Expr is implemented by every expression node. Each node exclusively
// owns its children: the tree is strict, no sharing, no cycles.
type Expr interface {
	exprNode()
	Dump() string
}

// NumberExpr is a floating point literal.
type NumberExpr struct {
	Value float32
}

func (*NumberExpr) exprNode() {}
func (e *NumberExpr) Dump() string {
	return strconv.FormatFloat(float64(e.Value), 'g', -1, 32)
}

// VariableExpr is a reference to a parameter by name.
type VariableExpr struct {
	Name string
}

func (*VariableExpr) exprNode()      {}
func (e *VariableExpr) Dump() string { return e.Name }

// UnaryExpr represents Op Operand, e.g. -x.
type UnaryExpr struct {
	Op      Operator
	Operand Expr
}

func (*UnaryExpr) exprNode() {}
func (e *UnaryExpr) Dump() string {
	return fmt.Sprintf("(%s%s)", e.Op, e.Operand.Dump())
}

// BinaryExpr represents Left Op Right.
type BinaryExpr struct {
	Op    Operator
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}
func (e *BinaryExpr) Dump() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.Dump(), e.Op, e.Right.Dump())
}

// CallExpr represents Callee(Args...).
type CallExpr struct {
	Callee string
	Args   []Expr
}

func (*CallExpr) exprNode() {}
func (e *CallExpr) Dump() string {
	args := make([]string, 0, len(e.Args))
	for _, arg := range e.Args {
		args = append(args, arg.Dump())
	}
	return fmt.Sprintf("%s(%s)", e.Callee, strings.Join(args, ", "))
}

// ConditionalExpr represents if Cond then Then else Else. It is an
// expression, both branches produce a value.
type ConditionalExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (*ConditionalExpr) exprNode() {}
func (e *ConditionalExpr) Dump() string {
	return fmt.Sprintf("(if %s then %s else %s)", e.Cond.Dump(), e.Then.Dump(), e.Else.Dump())
}
