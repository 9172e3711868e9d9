// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsontok

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"go4.org/mem"
)

// lexeme is the type of a lexical token in the JSON grammar. Lexemes are
// internal to the parser; they are assembled into the structural Token
// vocabulary by the grammar layer.
type lexeme byte

const (
	lxInvalid lexeme = iota
	lxLBrace         // left brace "{"
	lxRBrace         // right brace "}"
	lxLSquare        // left square bracket "["
	lxRSquare        // right square bracket "]"
	lxComma          // comma ","
	lxColon          // colon ":"
	lxInt            // number: integer with no fraction or exponent
	lxFloat          // number with fraction and/or exponent
	lxString         // quoted string
	lxTrue           // constant: true
	lxFalse          // constant: false
	lxNull           // constant: null
	lxComment        // line or block comment
)

var lexemeStr = [...]string{
	lxInvalid: "invalid input",
	lxLBrace:  `"{"`,
	lxRBrace:  `"}"`,
	lxLSquare: `"["`,
	lxRSquare: `"]"`,
	lxComma:   `","`,
	lxColon:   `":"`,
	lxInt:     "integer",
	lxFloat:   "number",
	lxString:  "string",
	lxTrue:    "true",
	lxFalse:   "false",
	lxNull:    "null",
	lxComment: "comment",
}

func (x lexeme) String() string {
	v := int(x)
	if v >= len(lexemeStr) {
		return lexemeStr[lxInvalid]
	}
	return lexemeStr[v]
}

// A scanner reads lexical tokens from an input stream.  Each call to next
// advances the scanner to the next lexeme, or reports an error.  At the end
// of the input, next returns io.EOF.
type scanner struct {
	r        *bufio.Reader
	comments bool         // allow comments
	buf      bytes.Buffer // text of current lexeme
	lx       lexeme

	pos, end int // start and end offsets of current lexeme
	last     int // size in bytes of last-read input rune

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

func newScanner(r io.Reader) *scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &scanner{r: br}
}

// next advances s to the next lexeme of the input, or reports an error.
func (s *scanner) next() error {
	s.buf.Reset()
	s.lx = lxInvalid
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol

	for {
		ch, err := s.rune()
		if err != nil {
			return err // includes io.EOF
		}

		// Discard whitespace.
		if isSpace(ch) {
			s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
			if ch == '\n' {
				s.eline++
				s.ecol = 0
			}
			continue
		}

		// Handle punctuation.
		if x, ok := selfDelim(ch); ok {
			s.buf.WriteRune(ch)
			s.lx = x
			return nil
		}

		// Handle numbers.
		if ch == '-' || isDigit(ch) {
			return s.scanNumber(ch)
		}

		// Handle string values.
		if ch == '"' {
			return s.scanString(ch)
		}

		// Handle comments, if enabled.
		if ch == '/' && s.comments {
			return s.scanComment(ch)
		}

		// Handle constants: true, false, null
		var want mem.RO
		switch ch {
		case 't':
			s.lx = lxTrue
			want = mem.S("true")
		case 'f':
			s.lx = lxFalse
			want = mem.S("false")
		case 'n':
			s.lx = lxNull
			want = mem.S("null")
		default:
			return s.failf("unexpected %q", ch)
		}
		if err := s.scanName(ch); err != nil {
			return err
		} else if got := mem.B(s.buf.Bytes()); !got.Equal(want) {
			return s.failf("unknown constant %q", got.StringCopy())
		}
		return nil // OK, lexeme is already set
	}
}

// token returns the type of the current lexeme.
func (s *scanner) token() lexeme { return s.lx }

// text returns the undecoded text of the current lexeme.  The return value is
// only valid until the next call of next.
func (s *scanner) text() []byte { return s.buf.Bytes() }

// span returns the location span of the current lexeme.
func (s *scanner) span() Span { return Span{Pos: s.pos, End: s.end} }

// location returns the complete location of the current lexeme.
func (s *scanner) location() Location {
	return Location{
		Span:  s.span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

func (s *scanner) scanString(open rune) error {
	s.buf.WriteRune(open)
	var esc bool
	for {
		ch, err := s.rune()
		if err != nil {
			return s.fail(err)
		} else if ch == open && !esc {
			s.buf.WriteRune(ch)
			s.lx = lxString
			return nil
		}
		if esc {
			// We are awaiting the completion of a \-escape.
			switch ch {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				s.buf.WriteByte(byte(ch))
			case 'u':
				s.buf.WriteByte(byte(ch))
				if err := s.readHex4(); err != nil {
					return s.failf("invalid Unicode escape: %w", err)
				}
			default:
				return s.failf("invalid %q after escape", ch)
			}
			esc = false
		} else if ch < ' ' {
			return s.failf("unescaped control %q", ch)
		} else if ch > unicode.MaxRune {
			return s.failf("invalid Unicode rune %q", ch)
		} else {
			s.buf.WriteRune(ch)
			esc = ch == '\\'
		}
	}
}

func (s *scanner) scanNumber(start rune) error {
	s.buf.WriteRune(start)

	if start == '-' {
		// If there is a leading sign, we need at least one digit.
		// Otherwise, we already have one in start.
		ch, err := s.require(isDigit, "digit")
		if err != nil {
			return err
		}
		s.buf.WriteRune(ch)
	}

	// Consume the remainder of an integer.
	_, ch, err := s.readWhile(isDigit)
	if err != nil {
		if err == io.EOF {
			s.lx = lxInt
			return nil
		}
		return err
	}

	// Check for extra leading zeroes, which are disallowed by the JSON spec.
	// That is: 0.12 is OK, 01.2 is not.
	if hasExtraLeadingZeroes(s.buf.Bytes()) {
		return s.failf("extra leading zeroes")
	}

	// If a decimal point follows, consume a fractional part.
	var isFloat bool
	if ch == '.' {
		s.buf.WriteRune(ch)
		var nr int
		nr, ch, err = s.readWhile(isDigit)
		if err != nil && err != io.EOF {
			return s.fail(err)
		} else if nr == 0 {
			return s.failf("no digits after decimal point")
		}
		isFloat = true
	}

	// If an exponent follows, consume it.
	if ch != 'E' && ch != 'e' {
		s.unrune()
		if isFloat {
			s.lx = lxFloat
		} else {
			s.lx = lxInt
		}
		return nil
	}

	s.buf.WriteRune(ch)
	ch, err = s.require(isExpStart, "sign or digit")
	if err != nil {
		return err
	}
	s.buf.WriteRune(ch)
	nr, _, err := s.readWhile(isDigit)
	if nr == 0 && (ch == '-' || ch == '+') {
		// It's OK to have no digits if the previous rune was not a sign,
		// otherwise we have to have at least one.
		return s.failf("missing exponent digits")
	} else if err == io.EOF {
		s.lx = lxFloat
		return nil
	} else if err != nil {
		return s.fail(err)
	}
	s.unrune()
	s.lx = lxFloat
	return nil
}

func (s *scanner) scanComment(first rune) error {
	s.buf.WriteRune(first)
	ch, err := s.rune()
	if err != nil {
		return err
	}
	switch ch {
	case '/': // line comment to LF
		s.buf.WriteRune(ch)
		_, end, err := s.readWhile(isNotLF)
		if err == nil {
			s.buf.WriteRune(end)
		} else if err != io.EOF {
			return err
		}
		s.lx = lxComment
		return nil

	case '*': // block comment
		s.buf.WriteRune(ch)
		for {
			_, end, err := s.readWhile(isNotStar)
			if err != nil {
				return err
			}
			s.buf.WriteRune(end) // end == '*'

			// Check whether we have "*/", which would end the comment.
			next, err := s.rune()
			if err != nil {
				return err
			}
			s.buf.WriteRune(next)
			if next == '/' {
				s.lx = lxComment
				return nil
			}

			// We saw "*" but not "/", so keep scanning for the end of the block.
		}

	default:
		s.unrune()
		return s.failf("invalid %q in comment", ch)
	}
}

func (s *scanner) scanName(first rune) error {
	s.buf.WriteRune(first)
	_, _, err := s.readWhile(isNameRune)
	if err == io.EOF {
		return nil
	} else if err != nil {
		return s.fail(err)
	}
	s.unrune()
	return nil
}

func (s *scanner) rune() (rune, error) {
	ch, nb, err := s.r.ReadRune()
	s.last = nb
	s.end += nb
	s.ecol += nb
	return ch, err
}

func (s *scanner) unrune() {
	s.end -= s.last
	s.ecol -= s.last
	s.last = 0
	s.r.UnreadRune()
}

// require reads a single rune matching f from the input, or returns an error
// mentioning the desired label.
func (s *scanner) require(f func(rune) bool, label string) (rune, error) {
	ch, err := s.rune()
	if err != nil {
		return 0, s.failf("want %s, got error: %w", label, err)
	} else if !f(ch) {
		s.unrune()
		return 0, s.failf("got %q, want %s", ch, label)
	}
	return ch, nil
}

// readWhile consumes runes matching f from the input until EOF or until a rune
// not matching f is found. The first non-matching rune (if any) is returned.
// It is the caller's responsibility to unread this rune, if desired.
// The int reports the number of runes consumed.
func (s *scanner) readWhile(f func(rune) bool) (int, rune, error) {
	var nr int
	for {
		ch, err := s.rune()
		if err != nil {
			return nr, 0, err
		} else if !f(ch) {
			return nr, ch, nil
		}
		s.buf.WriteRune(ch)
		nr++
	}
}

// readHex4 reads exactly 4 hexadecimal digits from the input.
func (s *scanner) readHex4() error {
	for i := 0; i < 4; i++ {
		ch, err := s.rune()
		if err != nil {
			return err
		} else if !isHexDigit(ch) {
			return fmt.Errorf("not a hex digit: %q", ch)
		}
		s.buf.WriteRune(ch)
	}
	return nil
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *scanner) fail(err error) error {
	return posError{s.end, err}
}

func (s *scanner) failf(msg string, args ...any) error {
	return posError{s.end, fmt.Errorf(msg, args...)}
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNotStar(ch rune) bool  { return ch != '*' }
func isNotLF(ch rune) bool    { return ch != '\n' }
func isExpStart(ch rune) bool { return ch == '-' || ch == '+' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isNameRune(ch rune) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// hasExtraLeadingZeroes reports whether the representation of an integer in
// buf has redundant leading zeroes, disallowed by the spec.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' {
		buf = buf[1:] // skip leading sign
	}
	if buf[0] == '0' {
		// A leading zero is OK if it's the only digit.
		return len(buf) > 1
	}
	return false
}

var self = [...]lexeme{lxLBrace, lxRBrace, lxLSquare, lxRSquare, lxComma, lxColon}

func selfDelim(ch rune) (lexeme, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return lxInvalid, false
}
