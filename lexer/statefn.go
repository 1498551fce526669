package lexer

import (
	"strconv"
	"strings"
)

type stateFn func(*Lexer) stateFn

func lexText(l *Lexer) stateFn {
	if l.atEOF {
		return l.emit(TokEOF)
	}

	// List of runes that just advance one and emit a token.
	singles := map[rune]TokenType{
		'+': TokPlus,
		'-': TokMinus,
		'*': TokStar,
		'/': TokSlash,
		'>': TokGreater,
		'|': TokPipe,
		'&': TokAmpersand,
		'(': TokParenLeft,
		')': TokParenRight,
		',': TokComma,
		';': TokSemicolon,
	}

	switch r := l.peek(); {
	case r == 0:
		return l.emit(TokEOF)
	case r == ' ' || r == '\t' || r == '\r' || r == '\n':
		l.acceptRun(" \t\r\n")
		l.ignore()
		return lexText
	case r == '#':
		return lexComment
	case r == '<':
		l.next()
		if l.peek() == '>' {
			l.next()
			return l.emit(TokNotEqual)
		}
		return l.emit(TokLess)
	case r == '=':
		l.next()
		if l.peek() == '=' {
			l.next()
			return l.emit(TokEqual)
		}
		// The language has no assignment, a lone '=' is always an error.
		return l.errorf("unexpected character %q, did you mean %q?", "=", "==")
	case strings.ContainsRune(letterChars, r):
		return lexIdentifier
	case strings.ContainsRune(digitChars, r):
		return lexNumber
	default:
		if tok, ok := singles[r]; ok {
			l.next()
			return l.emit(tok)
		}
		l.next()
		return l.errorf("unexpected character %q", r)
	}
}

// lexComment discards everything from '#' to the end of the line.
func lexComment(l *Lexer) stateFn {
	for {
		r := l.next()
		if r == 0 || r == '\n' {
			break
		}
	}
	l.ignore()
	return lexText
}

// lexIdentifier scans a letter-initial run of letters and digits and
// classifies it as a keyword or an identifier.
func lexIdentifier(l *Lexer) stateFn {
	l.acceptRun(identifierChars)
	tok := l.thisToken(TokIdentifier)
	if kw, ok := keywords[tok.Value]; ok {
		tok.Type = kw
	}
	return l.emitToken(tok)
}

// lexNumber scans a digit-initial run of digits with an optional single
// decimal point and parses it into the language's f32 representation.
func lexNumber(l *Lexer) stateFn {
	l.acceptRun(digitChars)
	if l.peek() == '.' {
		l.next()
		l.acceptRun(digitChars)
	}
	tok := l.thisToken(TokNumber)
	// The character-class gate should make this conversion infallible,
	// but stay defensive about it.
	f, err := strconv.ParseFloat(tok.Value, 32)
	if err != nil {
		return l.errorf("invalid number %q", tok.Value)
	}
	tok.Number = float32(f)
	return l.emitToken(tok)
}
