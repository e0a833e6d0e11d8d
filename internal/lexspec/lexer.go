package lexspec

import (
	"strings"
	"unicode"

	"github.com/jihwankim/genpairs/internal/lexspec/token"
)

// lexer turns spec source text into a flat token stream. It has no
// lookahead of its own — the parser drives it one token at a time via
// next() — mirroring the teacher's habit of keeping I/O-adjacent layers
// (pkg/scenario/parser.Parser) free of any buffering beyond "read once,
// then work in memory".
type lexer struct {
	src  []rune
	pos  int // index into src of the next unread rune
	line int
	col  int

	// pending holds a COLON, SEMI or DOT token split off the tail of a
	// word like "col0:" — the IDENT "col0" is returned first, this is
	// returned on the following call to next().
	pending *token.Token
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src), line: 1, col: 1}
}

func (l *lexer) peekRune() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) advance() (rune, bool) {
	r, ok := l.peekRune()
	if !ok {
		return 0, false
	}
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r, true
}

func isBlank(r rune) bool {
	return unicode.IsSpace(r)
}

// skipBlanksAndComments advances past whitespace and "// ..." line
// comments until it reaches the start of the next token or EOF.
func (l *lexer) skipBlanksAndComments() {
	for {
		r, ok := l.peekRune()
		if !ok {
			return
		}
		if isBlank(r) {
			l.advance()
			continue
		}
		if r == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
			for {
				r, ok := l.peekRune()
				if !ok || r == '\n' {
					break
				}
				l.advance()
			}
			continue
		}
		return
	}
}

// next returns the next token in the stream, ending in a permanent
// stream of token.EOF once the source is exhausted.
func (l *lexer) next() token.Token {
	if l.pending != nil {
		t := *l.pending
		l.pending = nil
		return t
	}

	l.skipBlanksAndComments()

	startLine, startCol := l.line, l.col
	if _, ok := l.peekRune(); !ok {
		return token.Token{Kind: token.EOF, Pos: token.Position{Line: startLine, Column: startCol}}
	}

	var sb strings.Builder
	for {
		r, ok := l.peekRune()
		if !ok || isBlank(r) {
			break
		}
		// A "//" sequence ends the current word even with no blank
		// before it, so "a1//comment" lexes as the identifier "a1".
		if r == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
			break
		}
		l.advance()
		sb.WriteRune(r)
	}
	word := sb.String()
	pos := token.Position{Line: startLine, Column: startCol}

	if word == ":" {
		return token.Token{Kind: token.COLON, Literal: ":", Pos: pos}
	}
	if word == ";" {
		return token.Token{Kind: token.SEMI, Literal: ";", Pos: pos}
	}
	if word == "." {
		return token.Token{Kind: token.DOT, Literal: ".", Pos: pos}
	}
	if trailing := lastRune(word); (trailing == ':' || trailing == ';' || trailing == '.') && len([]rune(word)) > 1 {
		// A category header: split the trailing punctuation off so the
		// parser sees IDENT then COLON, per the grammar's literal
		// description ("a token ending in ':' is a category header,
		// splitting the colon from the name"). ';' and '.' get the same
		// treatment so "a2." and "b2;" split into the IDENT plus a
		// separator token instead of swallowing the punctuation.
		runes := []rune(word)
		name := string(runes[:len(runes)-1])
		kind := token.SEMI
		switch trailing {
		case ':':
			kind = token.COLON
		case '.':
			kind = token.DOT
		}
		l.pending = &token.Token{
			Kind:    kind,
			Literal: string(trailing),
			Pos:     token.Position{Line: pos.Line, Column: pos.Column + len(runes) - 1},
		}
		// The base word still needs reserved-word classification: "error;"
		// must lex as ERROR + SEMI, not IDENT("error") + SEMI.
		return token.Token{Kind: token.Lookup(name), Literal: name, Pos: pos}
	}

	return token.Token{Kind: token.Lookup(word), Literal: word, Pos: pos}
}

func lastRune(s string) rune {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0
	}
	return runes[len(runes)-1]
}
