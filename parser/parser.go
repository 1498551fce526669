// Package parser builds the program AST from the lexer's token stream
// and drives the compilation pipeline.
package parser

import (
	"io"

	"go.creack.net/watc/ast"
	"go.creack.net/watc/codegen"
	"go.creack.net/watc/diag"
	"go.creack.net/watc/lexer"
)

type parser struct {
	lex *lexer.Lexer

	prevToken lexer.Token
	curToken  lexer.Token

	peekToken *lexer.Token // Buffer.

	errs *diag.Log
}

func newParser(lex *lexer.Lexer, errs *diag.Log) *parser {
	p := &parser{
		lex:  lex,
		errs: errs,
	}
	p.nextToken() // Prime the cursor.
	return p
}

// Parse consumes the whole token stream and returns the program AST.
// Syntax errors are recorded in errs rather than aborting the pass: the
// parser resynchronizes on the next ';' (or end of input) and resumes
// with the following definition, so one invocation reports every
// independent error.
func Parse(lex *lexer.Lexer, errs *diag.Log) ast.Program {
	p := newParser(lex, errs)

	var funcs []ast.Function
	for p.curToken.Type != lexer.TokEOF {
		fn, err := p.parseDefinition()
		if err != nil {
			p.errs.Report(p.curToken.Line, err)
			p.synchronize()
			continue
		}
		funcs = append(funcs, fn)
	}
	return ast.Program{Functions: funcs}
}

// Compile runs the full pipeline on the source read from r: lex, parse,
// then emit the module text on w. Emission is all-or-nothing: if any
// error was recorded, nothing is written and the aggregate error is
// returned. A failure to read r itself is fatal and returned as-is.
func Compile(r io.Reader, w io.Writer) error {
	lex, err := lexer.New(r)
	if err != nil {
		return err
	}
	return compile(lex, w)
}

// CompileString is Compile for an in-memory source.
func CompileString(src string, w io.Writer) error {
	return compile(lexer.NewString(src), w)
}

func compile(lex *lexer.Lexer, w io.Writer) error {
	errs := &diag.Log{}
	prog := Parse(lex, errs)
	if err := errs.Err(); err != nil {
		return err
	}
	return codegen.Generate(prog, w)
}

func (p *parser) nextToken() lexer.Token {
	p.prevToken = p.curToken
	if p.peekToken != nil {
		p.curToken = *p.peekToken
		p.peekToken = nil
		return p.curToken
	}
	p.curToken = p.lex.NextToken()
	return p.curToken
}

func (p *parser) peek() lexer.Token {
	if p.peekToken != nil {
		return *p.peekToken
	}
	tok := p.lex.NextToken()
	p.peekToken = &tok
	return tok
}

// errorf creates a diagnostic pinned to the given token's line.
func (p *parser) errorf(tok lexer.Token, format string, args ...any) *diag.Error {
	return diag.Errorf(tok.Line, format, args...)
}

// expect consumes the current token if it is of the expected type.
func (p *parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	tok := p.curToken
	if tok.Type == lexer.TokError {
		return tok, p.errorf(tok, "%s", tok.Value)
	}
	if tok.Type != tt {
		return tok, p.errorf(tok, "expected %s, got %s", tt, tok.Type)
	}
	p.nextToken()
	return tok, nil
}

// synchronize discards tokens up to and including the next statement
// terminator, or up to end of input, so parsing can resume at the next
// top-level definition. A 'def' keyword is a resumption point in
// itself and is left in place: a definition missing its terminator
// must not swallow the well-formed definition that follows it.
func (p *parser) synchronize() {
	for {
		switch p.curToken.Type {
		case lexer.TokEOF, lexer.TokDef:
			return
		case lexer.TokSemicolon:
			p.nextToken()
			return
		}
		p.nextToken()
	}
}
