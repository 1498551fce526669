package codegen_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.creack.net/watc/codegen"
	"go.creack.net/watc/diag"
	"go.creack.net/watc/lexer"
	"go.creack.net/watc/parser"
)

// generate parses a valid source and returns the emitted module text.
func generate(t *testing.T, input string) string {
	t.Helper()

	errs := &diag.Log{}
	prog := parser.Parse(lexer.NewString(input), errs)
	require.False(t, errs.HasErrors(), "unexpected errors: %v", errs.Errors())

	var buf bytes.Buffer
	require.NoError(t, codegen.Generate(prog, &buf))
	return buf.String()
}

// generateErr parses a valid source and returns the generation error.
func generateErr(t *testing.T, input string) error {
	t.Helper()

	errs := &diag.Log{}
	prog := parser.Parse(lexer.NewString(input), errs)
	require.False(t, errs.HasErrors(), "unexpected errors: %v", errs.Errors())

	var buf bytes.Buffer
	err := codegen.Generate(prog, &buf)
	require.Error(t, err)
	return err
}

func TestGenerateSimpleFunction(t *testing.T) {
	out := generate(t, "def f(x) x + 1;")
	expected := `(module
  (func $f (param f32) (result f32)
    local.get 0
    f32.const 1
    f32.add
  )
  (export "f" (func $f))
)
`
	assert.Equal(t, expected, out)
}

func TestGenerateOperandOrder(t *testing.T) {
	// 3 - 1 must push 3 first: the emitted program evaluates to 2, not -2.
	out := generate(t, "def f() 3 - 1;")
	expected := `(module
  (func $f (result f32)
    f32.const 3
    f32.const 1
    f32.sub
  )
  (export "f" (func $f))
)
`
	assert.Equal(t, expected, out)
}

func TestGenerateParameterSlots(t *testing.T) {
	out := generate(t, "def f(x y z) z / y - x;")
	expected := `(module
  (func $f (param f32) (param f32) (param f32) (result f32)
    local.get 2
    local.get 1
    f32.div
    local.get 0
    f32.sub
  )
  (export "f" (func $f))
)
`
	assert.Equal(t, expected, out)
}

func TestGenerateIntrinsic(t *testing.T) {
	out := generate(t, "def f(x) sqrt(x);")
	assert.Contains(t, out, "local.get 0\n    f32.sqrt")
	// Intrinsics lower to a single instruction, never a call.
	assert.NotContains(t, out, "call")
}

func TestGenerateBinaryIntrinsic(t *testing.T) {
	out := generate(t, "def f(x y) max(x, y) + min(x, 0);")
	assert.Contains(t, out, "local.get 0\n    local.get 1\n    f32.max")
	assert.Contains(t, out, "local.get 0\n    f32.const 0\n    f32.min")
}

func TestGenerateCallByName(t *testing.T) {
	out := generate(t, "def g(x) f(x, 2);\ndef f(a b) a + b;")
	assert.Contains(t, out, "local.get 0\n    f32.const 2\n    call $f")
}

func TestGenerateUnaryMinus(t *testing.T) {
	out := generate(t, "def f(x) -x;")
	assert.Contains(t, out, "local.get 0\n    f32.neg")
}

func TestGenerateComparisonValue(t *testing.T) {
	// A comparison in value position still yields one f32.
	out := generate(t, "def f(x) x < 1;")
	assert.Contains(t, out, "local.get 0\n    f32.const 1\n    f32.lt\n    f32.convert_i32_u")
}

func TestGenerateLogicalCombinators(t *testing.T) {
	out := generate(t, "def f(x y) (x < 1) & (y > 2);")
	assert.Contains(t, out, "i32.and\n    f32.convert_i32_u")

	out = generate(t, "def f(x y) (x < 1) | (y > 2);")
	assert.Contains(t, out, "i32.or\n    f32.convert_i32_u")
}

func TestGenerateConditional(t *testing.T) {
	out := generate(t, "def f(x) if x == 1 then 1 else f(x-1) + x;")
	expected := `(module
  (func $f (param f32) (result f32)
    local.get 0
    f32.const 1
    f32.eq
    f32.convert_i32_u
    f32.const 0
    f32.ne
    if (result f32)
    f32.const 1
    else
    local.get 0
    f32.const 1
    f32.sub
    call $f
    local.get 0
    f32.add
    end
  )
  (export "f" (func $f))
)
`
	assert.Equal(t, expected, out)
}

func TestGenerateExportsAfterFunctions(t *testing.T) {
	out := generate(t, "def a() 1;\ndef b() 2;")
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Equal(t, "(module", lines[0])
	assert.Equal(t, `  (export "a" (func $a))`, lines[len(lines)-3])
	assert.Equal(t, `  (export "b" (func $b))`, lines[len(lines)-2])
	assert.Equal(t, ")", lines[len(lines)-1])
	// Definitions are emitted in source order.
	assert.Less(t, strings.Index(out, "(func $a"), strings.Index(out, "(func $b"))
}

func TestGenerateIdempotent(t *testing.T) {
	const input = "def f(x) if x < 10 then x * 2 else sqrt(x);"
	assert.Equal(t, generate(t, input), generate(t, input))
}

func TestGenerateNumberFormatting(t *testing.T) {
	out := generate(t, "def f() 2.5 + 0.125;")
	assert.Contains(t, out, "f32.const 2.5")
	assert.Contains(t, out, "f32.const 0.125")
}

func TestGenerateUndefinedVariable(t *testing.T) {
	err := generateErr(t, "def f(x) y;")
	assert.Contains(t, err.Error(), `undefined variable "y"`)
	assert.Contains(t, err.Error(), `function "f"`)
}

func TestGenerateIntrinsicArity(t *testing.T) {
	err := generateErr(t, "def f(x) sqrt(x, x);")
	assert.Contains(t, err.Error(), "intrinsic")

	err = generateErr(t, "def f(x) max(x);")
	assert.Contains(t, err.Error(), "intrinsic")
}

func TestGenerateDuplicateFunction(t *testing.T) {
	err := generateErr(t, "def f() 1;\ndef f() 2;")
	assert.Contains(t, err.Error(), `duplicate function "f"`)
}
