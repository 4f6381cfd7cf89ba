package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/deparse/errors"
	"github.com/wippyai/deparse/internal/keywords"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokKeyword
	tokString
	tokInteger
	tokFloat
	tokParam
	tokOp
	tokPunct
)

type token struct {
	kind tokenKind
	// text is the normalized token text: lower-cased for identifiers and
	// keywords, unescaped for strings.
	text string
	ival int32
	pos  int
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

// opChars are the characters that may form an operator.
const opChars = "~!@#^&|`?+-*/%<>="

// lex splits src into tokens. The last token is always tokEOF.
func lex(src string) ([]token, error) {
	var out []token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			i++
		case c == '-' && i+1 < len(src) && src[i+1] == '-':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end, err := skipBlockComment(src, i)
			if err != nil {
				return nil, err
			}
			i = end
		case (c == 'e' || c == 'E') && i+1 < len(src) && src[i+1] == '\'':
			tok, end, err := lexString(src, i+1, true)
			if err != nil {
				return nil, err
			}
			tok.pos = i
			out = append(out, tok)
			i = end
		case c == '\'':
			tok, end, err := lexString(src, i, false)
			if err != nil {
				return nil, err
			}
			out = append(out, tok)
			i = end
		case c == '"':
			tok, end, err := lexQuoted(src, i)
			if err != nil {
				return nil, err
			}
			out = append(out, tok)
			i = end
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentChar(src[i]) {
				i++
			}
			word := strings.ToLower(src[start:i])
			kind := tokIdent
			if keywords.IsKeyword(word) {
				kind = tokKeyword
			}
			out = append(out, token{kind: kind, text: word, pos: start})
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			tok, end, err := lexNumber(src, i)
			if err != nil {
				return nil, err
			}
			out = append(out, tok)
			i = end
		case c == '$' && i+1 < len(src) && isDigit(src[i+1]):
			start := i
			i++
			for i < len(src) && isDigit(src[i]) {
				i++
			}
			n, err := strconv.ParseInt(src[start+1:i], 10, 32)
			if err != nil {
				return nil, syntaxError(src, start)
			}
			out = append(out, token{kind: tokParam, text: src[start:i], ival: int32(n), pos: start})
		case c == ':' && i+1 < len(src) && src[i+1] == ':':
			out = append(out, token{kind: tokPunct, text: "::", pos: i})
			i += 2
		case strings.IndexByte("(),;.[]", c) >= 0:
			out = append(out, token{kind: tokPunct, text: string(c), pos: i})
			i++
		case strings.IndexByte(opChars, c) >= 0:
			tok, end := lexOperator(src, i)
			out = append(out, tok)
			i = end
		default:
			return nil, syntaxError(src, i)
		}
	}
	out = append(out, token{kind: tokEOF, pos: len(src)})
	return out, nil
}

func skipBlockComment(src string, start int) (int, error) {
	depth := 0
	for i := start; i < len(src)-1; i++ {
		switch {
		case src[i] == '/' && src[i+1] == '*':
			depth++
			i++
		case src[i] == '*' && src[i+1] == '/':
			depth--
			i++
			if depth == 0 {
				return i + 1, nil
			}
		}
	}
	return 0, errors.Syntax(start+1, "unterminated /* comment")
}

// lexString reads a quoted string starting at the opening quote. In the
// escaped form backslash sequences are interpreted.
func lexString(src string, start int, escaped bool) (token, int, error) {
	var sb strings.Builder
	for i := start + 1; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\'':
			if i+1 < len(src) && src[i+1] == '\'' {
				sb.WriteByte('\'')
				i++
				continue
			}
			return token{kind: tokString, text: sb.String(), pos: start}, i + 1, nil
		case c == '\\' && escaped && i+1 < len(src):
			i++
			switch src[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			default:
				sb.WriteByte(src[i])
			}
		default:
			sb.WriteByte(c)
		}
	}
	return token{}, 0, errors.Syntax(start+1, "unterminated quoted string")
}

func lexQuoted(src string, start int) (token, int, error) {
	var sb strings.Builder
	for i := start + 1; i < len(src); i++ {
		if src[i] != '"' {
			sb.WriteByte(src[i])
			continue
		}
		if i+1 < len(src) && src[i+1] == '"' {
			sb.WriteByte('"')
			i++
			continue
		}
		if sb.Len() == 0 {
			return token{}, 0, errors.Syntax(start+1, "zero-length delimited identifier")
		}
		return token{kind: tokIdent, text: sb.String(), pos: start}, i + 1, nil
	}
	return token{}, 0, errors.Syntax(start+1, "unterminated quoted identifier")
}

// lexNumber reads an integer or decimal literal. Integers that do not fit
// in int32 become float tokens carrying their text.
func lexNumber(src string, start int) (token, int, error) {
	i := start
	isFloat := false
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i < len(src) && src[i] == '.' {
		isFloat = true
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(src[j]) {
			isFloat = true
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			i = j
		}
	}
	if i < len(src) && isIdentStart(src[i]) {
		return token{}, 0, errors.Syntax(start+1, fmt.Sprintf("trailing junk after numeric literal at or near %q", src[start:i+1]))
	}
	text := src[start:i]
	if !isFloat {
		if n, err := strconv.ParseInt(text, 10, 32); err == nil {
			return token{kind: tokInteger, text: text, ival: int32(n), pos: start}, i, nil
		}
	}
	return token{kind: tokFloat, text: text, pos: start}, i, nil
}

// lexOperator reads a run of operator characters. A comment start ends the
// run. A trailing + or - is dropped unless the run contains one of
// ~!@#%^&|`? so that "a=-1" reads as "=" followed by "-1".
func lexOperator(src string, start int) (token, int) {
	i := start
	for i < len(src) && strings.IndexByte(opChars, src[i]) >= 0 {
		if i > start && i+1 < len(src) && (src[i:i+2] == "--" || src[i:i+2] == "/*") {
			break
		}
		i++
	}
	op := src[start:i]
	if len(op) > 1 && !strings.ContainsAny(op, "~!@#%^&|`?") {
		for len(op) > 1 && (op[len(op)-1] == '+' || op[len(op)-1] == '-') {
			op = op[:len(op)-1]
		}
	}
	end := start + len(op)
	if op == "!=" {
		op = "<>"
	}
	return token{kind: tokOp, text: op, pos: start}, end
}

func syntaxError(src string, pos int) error {
	if pos >= len(src) {
		return errors.Syntax(len(src)+1, "syntax error at end of input")
	}
	end := pos + 1
	if isIdentChar(src[pos]) {
		for end < len(src) && isIdentChar(src[end]) {
			end++
		}
	}
	return errors.Syntax(pos+1, fmt.Sprintf("syntax error at or near %q", src[pos:end]))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c >= 0x80
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '$'
}
