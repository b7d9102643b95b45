// Package kanshi reads and writes kanshi output-profile configuration files.
//
// Only profile and output directives are interpreted. Everything else is
// carried through verbatim: top-level statements land in
// Configuration.Preamble and unrecognized profile lines in
// Profile.ExtraLines, so a load-edit-save round trip keeps them.
package kanshi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// Parse parses kanshi configuration text.
func Parse(src string) (*models.Configuration, error) {
	p := &parser{src: src, toks: lex(src)}
	cfg := models.DefaultConfiguration()
	var preamble []string

	for {
		tok := p.peek()
		switch {
		case tok.kind == tokEOF:
			if len(preamble) > 0 {
				cfg.Preamble = strings.Join(preamble, "\n") + "\n"
			}
			return &cfg, nil
		case tok.kind == tokNewline:
			p.next()
		case tok.kind == tokWord && tok.text == "profile":
			p.next()
			profile, err := p.parseProfile(tok)
			if err != nil {
				return nil, err
			}
			cfg.Profiles = append(cfg.Profiles, profile)
		default:
			// include, global output defaults, comments
			first, last, err := p.skipStatement(false)
			if err != nil {
				return nil, err
			}
			preamble = append(preamble, p.lines(first, last))
		}
	}
}

type parser struct {
	src  string
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(tok token, format string, args ...any) error {
	return &ParseError{Line: tok.line, Msg: fmt.Sprintf(format, args...)}
}

// lines returns the full source lines spanned by tokens first..last.
func (p *parser) lines(first, last token) string {
	start := strings.LastIndexByte(p.src[:first.start], '\n') + 1
	end := len(p.src)
	if i := strings.IndexByte(p.src[last.end:], '\n'); i >= 0 {
		end = last.end + i
	}
	return strings.TrimRight(p.src[start:end], " \t\r")
}

// skipStatement consumes one statement: tokens up to a newline at brace depth
// zero, including any nested blocks. With inProfile set it stops before a '}'
// that would close the enclosing profile. It returns the first and last
// tokens of the statement.
func (p *parser) skipStatement(inProfile bool) (token, token, error) {
	first := p.peek()
	last := first
	depth := 0
	for {
		tok := p.peek()
		switch tok.kind {
		case tokEOF:
			if depth > 0 {
				return first, last, p.errorf(tok, "unexpected end of input inside block")
			}
			return first, last, nil
		case tokNewline:
			if depth == 0 {
				return first, last, nil
			}
		case tokLBrace:
			depth++
		case tokRBrace:
			if depth == 0 {
				if inProfile {
					return first, last, nil
				}
				return first, last, p.errorf(tok, "unexpected '}'")
			}
			depth--
		}
		last = p.next()
	}
}

func (p *parser) parseProfile(kw token) (models.Profile, error) {
	profile := models.Profile{Outputs: []models.OutputEntry{}}

	tok := p.next()
	if tok.kind == tokWord || tok.kind == tokString {
		profile.Name = tok.text
		tok = p.next()
	}
	for tok.kind == tokNewline {
		tok = p.next()
	}
	if tok.kind != tokLBrace {
		return profile, p.errorf(tok, "expected '{' after profile, got %s", tok.kind)
	}

	for {
		tok := p.peek()
		switch {
		case tok.kind == tokEOF:
			return profile, p.errorf(kw, "profile %q is not terminated", profile.Name)
		case tok.kind == tokNewline:
			p.next()
		case tok.kind == tokRBrace:
			p.next()
			return profile, nil
		case tok.kind == tokComment:
			p.next()
			profile.ExtraLines = append(profile.ExtraLines, tok.text)
		case tok.kind == tokWord && tok.text == "output":
			p.next()
			out, err := p.parseOutput(tok)
			if err != nil {
				return profile, err
			}
			profile.Outputs = append(profile.Outputs, out)
		default:
			first, last, err := p.skipStatement(true)
			if err != nil {
				return profile, err
			}
			text := strings.TrimSpace(p.src[first.start:last.end])
			profile.ExtraLines = append(profile.ExtraLines, text)
		}
	}
}

func (p *parser) parseOutput(kw token) (models.OutputEntry, error) {
	var out models.OutputEntry

	tok := p.next()
	if tok.kind != tokWord && tok.kind != tokString {
		return out, p.errorf(kw, "output is missing its criteria")
	}
	out.Criteria = tok.text

	if p.peek().kind == tokLBrace {
		p.next()
		for {
			tok := p.peek()
			switch tok.kind {
			case tokEOF:
				return out, p.errorf(kw, "output %q block is not terminated", out.Criteria)
			case tokRBrace:
				p.next()
				return out, nil
			case tokNewline, tokComment:
				p.next()
			default:
				if err := p.parseDirective(&out); err != nil {
					return out, err
				}
			}
		}
	}

	// Inline form: directives run to the end of the line.
	for {
		switch p.peek().kind {
		case tokEOF, tokNewline, tokRBrace:
			return out, nil
		case tokComment:
			p.next()
		default:
			if err := p.parseDirective(&out); err != nil {
				return out, err
			}
		}
	}
}

// value consumes the next word or string on the current line.
func (p *parser) value() (token, bool) {
	tok := p.peek()
	if tok.kind != tokWord && tok.kind != tokString {
		return tok, false
	}
	return p.next(), true
}

func (p *parser) parseDirective(out *models.OutputEntry) error {
	tok := p.next()
	if tok.kind != tokWord && tok.kind != tokString {
		return p.errorf(tok, "unexpected %s in output %q", tok.kind, out.Criteria)
	}

	switch tok.text {
	case "enable":
		out.Enabled = models.Bool(true)
	case "disable":
		out.Enabled = models.Bool(false)
	case "mode":
		v, ok := p.value()
		if !ok {
			return p.errorf(tok, "mode needs a value")
		}
		mode := v.text
		if mode == "--custom" {
			v, ok = p.value()
			if !ok {
				return p.errorf(tok, "mode --custom needs a value")
			}
			mode += " " + v.text
		}
		out.Mode = mode
	case "scale":
		v, ok := p.value()
		if !ok {
			return p.errorf(tok, "scale needs a value")
		}
		f, err := strconv.ParseFloat(v.text, 64)
		if err != nil || f <= 0 {
			return p.errorf(v, "invalid scale %q", v.text)
		}
		out.Scale = models.Float(f)
	case "position":
		v, ok := p.value()
		if !ok {
			return p.errorf(tok, "position needs a value")
		}
		pos, err := parsePosition(v.text)
		if err != nil {
			return p.errorf(v, "%v", err)
		}
		out.Position = pos
	case "transform":
		v, ok := p.value()
		if !ok {
			return p.errorf(tok, "transform needs a value")
		}
		out.Transform = v.text
	case "adaptive_sync":
		v, ok := p.value()
		if !ok {
			return p.errorf(tok, "adaptive_sync needs a value")
		}
		out.AdaptiveSync = models.Bool(v.text == "on")
	default:
		// Unknown directive: drop it together with its value, if any.
		p.value()
	}
	return nil
}

func parsePosition(s string) (*models.Position, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("invalid position %q, expected x,y", s)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return nil, fmt.Errorf("invalid position x %q", xs)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return nil, fmt.Errorf("invalid position y %q", ys)
	}
	return &models.Position{X: x, Y: y}, nil
}
