package ast

import "slices"

// Operator is the closed set of operator symbols of the language.
type Operator int

const (
	OpAdd Operator = iota // '+'.
	OpSub                 // '-'.
	OpMul                 // '*'.
	OpDiv                 // '/'.
	OpLess                // '<'.
	OpGreater             // '>'.
	OpNotEqual            // '<>'.
	OpEqual               // '=='.
	OpOr                  // '|'.
	OpAnd                 // '&'.
)

var operatorStrings = map[Operator]string{
	OpAdd:      "+",
	OpSub:      "-",
	OpMul:      "*",
	OpDiv:      "/",
	OpLess:     "<",
	OpGreater:  ">",
	OpNotEqual: "<>",
	OpEqual:    "==",
	OpOr:       "|",
	OpAnd:      "&",
}

// String returns the operator's source symbol.
func (op Operator) String() string {
	return operatorStrings[op]
}

// Map of operators to the target instruction applied once both operands
// are on the evaluation stack. The logical combinators operate on the
// i32 truthiness of their operands, see codegen.
var operatorInstructions = map[Operator]string{
	OpAdd:      "f32.add",
	OpSub:      "f32.sub",
	OpMul:      "f32.mul",
	OpDiv:      "f32.div",
	OpLess:     "f32.lt",
	OpGreater:  "f32.gt",
	OpNotEqual: "f32.ne",
	OpEqual:    "f32.eq",
	OpOr:       "i32.or",
	OpAnd:      "i32.and",
}

// Instruction returns the target mnemonic for the operator.
func (op Operator) Instruction() string {
	return operatorInstructions[op]
}

// IsComparison reports whether the operator's instruction leaves an i32
// flag instead of an f32 value.
func (op Operator) IsComparison() bool {
	return op.IsOneOf(OpLess, OpGreater, OpNotEqual, OpEqual)
}

// IsLogical reports whether the operator combines the truthiness of its
// operands rather than their values.
func (op Operator) IsLogical() bool {
	return op.IsOneOf(OpOr, OpAnd)
}

func (op Operator) IsOneOf(ops ...Operator) bool {
	return slices.Contains(ops, op)
}
