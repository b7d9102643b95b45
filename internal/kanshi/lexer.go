package kanshi

import "fmt"

type tokenKind int

const (
	tokWord tokenKind = iota
	tokString
	tokLBrace
	tokRBrace
	tokNewline
	tokComment
	tokEOF
)

func (k tokenKind) String() string {
	switch k {
	case tokWord:
		return "word"
	case tokString:
		return "string"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokNewline:
		return "newline"
	case tokComment:
		return "comment"
	default:
		return "end of input"
	}
}

type token struct {
	kind  tokenKind
	text  string // unquoted for strings, including '#' for comments
	line  int
	start int // byte offsets into the source
	end   int
}

// lex splits src into tokens. It never fails: an unterminated quote runs to
// the end of its line.
func lex(src string) []token {
	var toks []token
	line := 1
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\n':
			toks = append(toks, token{kind: tokNewline, line: line, start: i, end: i + 1})
			line++
			i++
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '#':
			j := i
			for j < len(src) && src[j] != '\n' {
				j++
			}
			toks = append(toks, token{kind: tokComment, text: src[i:j], line: line, start: i, end: j})
			i = j
		case c == '{':
			toks = append(toks, token{kind: tokLBrace, text: "{", line: line, start: i, end: i + 1})
			i++
		case c == '}':
			toks = append(toks, token{kind: tokRBrace, text: "}", line: line, start: i, end: i + 1})
			i++
		case c == '"':
			j := i + 1
			for j < len(src) && src[j] != '"' && src[j] != '\n' {
				j++
			}
			end := j
			if j < len(src) && src[j] == '"' {
				end = j + 1
			}
			toks = append(toks, token{kind: tokString, text: src[i+1 : j], line: line, start: i, end: end})
			i = end
		default:
			j := i
			for j < len(src) && !isDelim(src[j]) {
				j++
			}
			toks = append(toks, token{kind: tokWord, text: src[i:j], line: line, start: i, end: j})
			i = j
		}
	}
	toks = append(toks, token{kind: tokEOF, line: line, start: len(src), end: len(src)})
	return toks
}

func isDelim(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '{', '}', '"', '#':
		return true
	}
	return false
}

// ParseError reports a malformed kanshi configuration.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("kanshi: line %d: %s", e.Line, e.Msg)
}
