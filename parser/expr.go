package parser

import (
	"slices"

	"go.creack.net/watc/ast"
	"go.creack.net/watc/diag"
	"go.creack.net/watc/lexer"
)

// Binding of operator tokens per precedence tier, tightest to loosest:
// factor (unary minus), term, subexpression, comparison. Each tier is a
// left-associative loop over the next-tighter tier.
var (
	termOps = map[lexer.TokenType]ast.Operator{
		lexer.TokStar:      ast.OpMul,
		lexer.TokSlash:     ast.OpDiv,
		lexer.TokAmpersand: ast.OpAnd,
	}
	subExprOps = map[lexer.TokenType]ast.Operator{
		lexer.TokPlus:  ast.OpAdd,
		lexer.TokMinus: ast.OpSub,
		lexer.TokPipe:  ast.OpOr,
	}
	comparisonOps = map[lexer.TokenType]ast.Operator{
		lexer.TokLess:     ast.OpLess,
		lexer.TokGreater:  ast.OpGreater,
		lexer.TokNotEqual: ast.OpNotEqual,
		lexer.TokEqual:    ast.OpEqual,
	}
)

// parseDefinition handles 'def' prototype expression ';'.
func (p *parser) parseDefinition() (ast.Function, error) {
	if _, err := p.expect(lexer.TokDef); err != nil {
		return ast.Function{}, err
	}
	proto, err := p.parsePrototype()
	if err != nil {
		return ast.Function{}, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return ast.Function{}, err
	}
	if _, err := p.expect(lexer.TokSemicolon); err != nil {
		return ast.Function{}, err
	}
	return ast.Function{Proto: proto, Body: body}, nil
}

// parsePrototype handles name '(' param* ')'. Parameter declarations are
// space-separated identifiers; duplicates are rejected since a later
// positional load would silently shadow the earlier parameter.
func (p *parser) parsePrototype() (ast.Prototype, error) {
	name, err := p.expect(lexer.TokIdentifier)
	if err != nil {
		return ast.Prototype{}, err
	}
	if _, err := p.expect(lexer.TokParenLeft); err != nil {
		return ast.Prototype{}, err
	}
	var params []string
	for p.curToken.Type == lexer.TokIdentifier {
		if slices.Contains(params, p.curToken.Value) {
			return ast.Prototype{}, p.errorf(p.curToken, "duplicate parameter %q in prototype of %q", p.curToken.Value, name.Value)
		}
		params = append(params, p.curToken.Value)
		p.nextToken()
	}
	if _, err := p.expect(lexer.TokParenRight); err != nil {
		return ast.Prototype{}, err
	}
	return ast.Prototype{Name: name.Value, Params: params}, nil
}

// parseExpression is the loosest tier: comparisons over subexpressions,
// and the conditional form.
func (p *parser) parseExpression() (ast.Expr, error) {
	if p.curToken.Type == lexer.TokIf {
		return p.parseConditional()
	}
	expr, err := p.parseSubExpression()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := comparisonOps[p.curToken.Type]
		if !ok {
			break
		}
		p.nextToken()
		right, err := p.parseSubExpression()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseConditional handles 'if' expression 'then' expression 'else' expression.
func (p *parser) parseConditional() (ast.Expr, error) {
	if _, err := p.expect(lexer.TokIf); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokThen); err != nil {
		return nil, err
	}
	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokElse); err != nil {
		return nil, err
	}
	els, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ConditionalExpr{Cond: cond, Then: then, Else: els}, nil
}

// parseSubExpression handles '+', '-' and '|'.
func (p *parser) parseSubExpression() (ast.Expr, error) {
	expr, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := subExprOps[p.curToken.Type]
		if !ok {
			break
		}
		p.nextToken()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseTerm handles '*', '/' and '&'.
func (p *parser) parseTerm() (ast.Expr, error) {
	expr, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := termOps[p.curToken.Type]
		if !ok {
			break
		}
		p.nextToken()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseFactor is the tightest tier: literals, identifiers, calls, unary
// minus and parenthesized expressions.
func (p *parser) parseFactor() (ast.Expr, error) {
	switch tok := p.curToken; tok.Type {
	case lexer.TokNumber:
		p.nextToken()
		return &ast.NumberExpr{Value: tok.Number}, nil
	case lexer.TokIdentifier:
		// One token of lookahead: 'name(' is a call, 'name' alone is
		// a parameter reference.
		if p.peek().Type == lexer.TokParenLeft {
			return p.parseCall()
		}
		p.nextToken()
		return &ast.VariableExpr{Name: tok.Value}, nil
	case lexer.TokMinus:
		p.nextToken()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.OpSub, Operand: operand}, nil
	case lexer.TokParenLeft:
		p.nextToken()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokParenRight); err != nil {
			return nil, err
		}
		return expr, nil
	case lexer.TokError:
		return nil, diag.Errorf(tok.Line, "%s", tok.Value)
	default:
		return nil, p.errorf(tok, "expected expression, got %s", tok.Type)
	}
}

// parseCall handles callee '(' (expression (',' expression)*)? ')'.
// Call-site arguments are comma-separated, unlike prototype parameters.
func (p *parser) parseCall() (ast.Expr, error) {
	callee := p.curToken.Value
	p.nextToken() // Consume the callee.
	p.nextToken() // Consume '('.

	var args []ast.Expr
	if p.curToken.Type != lexer.TokParenRight {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.curToken.Type != lexer.TokComma {
				break
			}
			p.nextToken()
		}
	}
	if _, err := p.expect(lexer.TokParenRight); err != nil {
		return nil, err
	}
	return &ast.CallExpr{Callee: callee, Args: args}, nil
}
