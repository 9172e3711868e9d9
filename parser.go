// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsontok

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/nagillavenkatesh/jsontok/internal/escape"

	"go4.org/mem"
)

var _ Source = (*Parser)(nil)

// A Parser is a pull cursor over the structure of JSON input. Each call to
// Next advances the parser by one structural token. A Parser implements the
// Source interface; it is the engine a reader.Reader is usually bridged over.
//
// The input may comprise multiple concatenated top-level values; Next reports
// EndOfInput only once the input is exhausted.
type Parser struct {
	sc     *scanner
	rc     io.Closer // the input, if it needs closing
	tcomma bool      // allow trailing commas in objects and arrays

	stk  []frame
	tok  Token
	text string
	loc  Location
	err  error // sticky
}

// NewParser constructs a new Parser that consumes input from r. If r is an
// io.Closer, closing the parser closes r as well.
func NewParser(r io.Reader) *Parser {
	p := &Parser{sc: newScanner(r)}
	if c, ok := r.(io.Closer); ok {
		p.rc = c
	}
	return p
}

// AllowComments configures the parser to accept (true) or reject (false)
// C++ style comments in the input. Comments are a non-standard extension of
// the JSON spec. They are not reported as tokens; the parser discards them.
func (p *Parser) AllowComments(ok bool) { p.sc.comments = ok }

// AllowTrailingCommas configures the parser to allow (true) or reject (false)
// trailing commas in objects and arrays.
func (p *Parser) AllowTrailingCommas(ok bool) { p.tcomma = ok }

type frame struct {
	object bool
	phase  byte
}

// Phases of a container frame.
const (
	phaseFirst byte = iota // container just opened, no members yet
	phaseKey               // object key emitted, expecting ":" and a value
	phaseNext              // value emitted, expecting separator or close
)

// Next advances p to the next token of the input and returns it. At the end
// of input Next returns EndOfInput with a nil error, and continues to do so
// on subsequent calls. Any other error is an I/O or syntax error, and is
// fatal to the parse; in case of a syntax error it has concrete type
// [*SyntaxError].
func (p *Parser) Next() (Token, error) {
	if p.err != nil {
		return Invalid, p.err
	} else if p.tok == EndOfInput {
		return EndOfInput, nil
	}

	lx, err := p.nextLexeme()
	if err == io.EOF {
		if len(p.stk) != 0 {
			return p.failf(nil, "unexpected end of input")
		}
		p.set(EndOfInput)
		p.text = ""
		return p.tok, nil
	} else if err != nil {
		return p.failf(err, "%v", err)
	}

	if len(p.stk) == 0 {
		return p.value(lx)
	}
	f := &p.stk[len(p.stk)-1]
	if f.object {
		return p.nextInObject(f, lx)
	}
	return p.nextInArray(f, lx)
}

func (p *Parser) nextInObject(f *frame, lx lexeme) (Token, error) {
	switch f.phase {
	case phaseFirst:
		switch lx {
		case lxRBrace:
			return p.close(EndObject)
		case lxString:
			return p.fieldName(f)
		}
		return p.failf(nil, "expected \"}\" or string, got %v", lx)

	case phaseKey:
		if lx != lxColon {
			return p.failf(nil, "expected \":\", got %v", lx)
		}
		vx, err := p.requireLexeme()
		if err != nil {
			return Invalid, err
		}
		f.phase = phaseNext
		return p.value(vx)

	default: // phaseNext
		switch lx {
		case lxRBrace:
			return p.close(EndObject)
		case lxComma:
			nx, err := p.requireLexeme()
			if err != nil {
				return Invalid, err
			}
			if nx == lxString {
				return p.fieldName(f)
			} else if nx == lxRBrace && p.tcomma {
				// A close bracket after a comma is a valid end of the object
				// when trailing commas are allowed.
				return p.close(EndObject)
			}
			return p.failf(nil, "expected string, got %v", nx)
		}
		return p.failf(nil, "expected \"}\" or \",\", got %v", lx)
	}
}

func (p *Parser) nextInArray(f *frame, lx lexeme) (Token, error) {
	switch f.phase {
	case phaseFirst:
		if lx == lxRSquare {
			return p.close(EndArray)
		}
		f.phase = phaseNext
		return p.value(lx)

	default: // phaseNext
		switch lx {
		case lxRSquare:
			return p.close(EndArray)
		case lxComma:
			nx, err := p.requireLexeme()
			if err != nil {
				return Invalid, err
			}
			if nx == lxRSquare {
				if p.tcomma {
					return p.close(EndArray)
				}
				return p.failf(nil, "unexpected %v", nx)
			}
			return p.value(nx)
		}
		return p.failf(nil, "expected \"]\" or \",\", got %v", lx)
	}
}

// value records the token for a value beginning at lexeme lx.
// The phase of the enclosing frame (if any) is already settled, so that when
// a container pushed here is later closed, the enclosure resumes correctly.
func (p *Parser) value(lx lexeme) (Token, error) {
	switch lx {
	case lxLBrace:
		p.stk = append(p.stk, frame{object: true})
		p.set(StartObject)
	case lxLSquare:
		p.stk = append(p.stk, frame{object: false})
		p.set(StartArray)
	case lxString:
		if err := p.setString(String); err != nil {
			return Invalid, err
		}
	case lxInt:
		p.set(Int)
	case lxFloat:
		p.set(Float)
	case lxTrue:
		p.set(True)
	case lxFalse:
		p.set(False)
	case lxNull:
		p.set(Null)
	default:
		return p.failf(nil, "unexpected %v", lx)
	}
	return p.tok, nil
}

func (p *Parser) fieldName(f *frame) (Token, error) {
	if err := p.setString(FieldName); err != nil {
		return Invalid, err
	}
	f.phase = phaseKey
	return p.tok, nil
}

func (p *Parser) close(tok Token) (Token, error) {
	p.stk = p.stk[:len(p.stk)-1]
	p.set(tok)
	return p.tok, nil
}

// set records tok as the current token, with the text and location of the
// current lexeme.
func (p *Parser) set(tok Token) {
	p.tok = tok
	p.text = p.sc.buf.String()
	p.loc = p.sc.location()
}

// setString records tok with the decoded text of the current string lexeme.
func (p *Parser) setString(tok Token) error {
	raw := p.sc.text()
	dec, err := escape.Unquote(mem.B(raw[1 : len(raw)-1]))
	if err != nil {
		_, ferr := p.failf(err, "invalid string: %v", err)
		return ferr
	}
	p.tok = tok
	p.text = string(dec)
	p.loc = p.sc.location()
	return nil
}

// nextLexeme advances the scanner past comments to the next lexeme.
func (p *Parser) nextLexeme() (lexeme, error) {
	for {
		if err := p.sc.next(); err != nil {
			return lxInvalid, err
		}
		if lx := p.sc.token(); lx != lxComment {
			return lx, nil
		}
	}
}

// requireLexeme is nextLexeme for positions where end of input is not valid.
func (p *Parser) requireLexeme() (lexeme, error) {
	lx, err := p.nextLexeme()
	if err == io.EOF {
		_, ferr := p.failf(nil, "unexpected end of input")
		return lxInvalid, ferr
	} else if err != nil {
		_, ferr := p.failf(err, "%v", err)
		return lxInvalid, ferr
	}
	return lx, nil
}

// Token returns the current token, the one most recently reported by Next.
func (p *Parser) Token() Token { return p.tok }

// Text returns the text of the current token. Field names and strings are
// decoded; other tokens report their literal text.
func (p *Parser) Text() string { return p.text }

// Location returns the location of the current token in the input.
func (p *Parser) Location() Location { return p.loc }

// Int64 returns the value of the current numeric token as an int64.
// A Float token is truncated toward zero.
func (p *Parser) Int64() (int64, error) {
	switch p.tok {
	case Int:
		return strconv.ParseInt(p.text, 10, 64)
	case Float:
		v, err := strconv.ParseFloat(p.text, 64)
		return int64(v), err
	}
	return 0, fmt.Errorf("cannot read %v as integer", p.tok)
}

// Int returns the value of the current numeric token as an int, reporting an
// error if the value is out of range for the type.
func (p *Parser) Int() (int, error) {
	switch p.tok {
	case Int:
		v, err := strconv.ParseInt(p.text, 10, strconv.IntSize)
		return int(v), err
	case Float:
		v, err := p.Int64()
		if err != nil {
			return 0, err
		} else if int64(int(v)) != v {
			return 0, fmt.Errorf("value %d out of range for int", v)
		}
		return int(v), nil
	}
	return 0, fmt.Errorf("cannot read %v as integer", p.tok)
}

// Float64 returns the value of the current numeric token as a float64.
func (p *Parser) Float64() (float64, error) {
	switch p.tok {
	case Int, Float:
		return strconv.ParseFloat(p.text, 64)
	}
	return 0, fmt.Errorf("cannot read %v as number", p.tok)
}

// Bool returns the value of the current True or False token.
func (p *Parser) Bool() (bool, error) {
	switch p.tok {
	case True:
		return true, nil
	case False:
		return false, nil
	}
	return false, fmt.Errorf("cannot read %v as boolean", p.tok)
}

// Blob implements a method of the Source interface. A text parser never
// produces Embedded tokens, so Blob always reports an error.
func (p *Parser) Blob() ([]byte, error) {
	return nil, fmt.Errorf("cannot read %v as embedded value", p.tok)
}

// SkipChildren consumes the remainder of the container whose opening token is
// current, of any nesting depth, leaving the closing token current. It is a
// no-op if the current token is not StartObject or StartArray.
func (p *Parser) SkipChildren() error {
	if p.tok != StartObject && p.tok != StartArray {
		return nil
	}
	for depth := 1; depth > 0; {
		tok, err := p.Next()
		if err != nil {
			return err
		}
		switch tok {
		case StartObject, StartArray:
			depth++
		case EndObject, EndArray:
			depth--
		}
	}
	return nil
}

// Close invalidates the parser and closes the underlying input, if the input
// is an io.Closer.
func (p *Parser) Close() error {
	if p.err == nil {
		p.err = errClosed
	}
	if p.rc != nil {
		return p.rc.Close()
	}
	return nil
}

var errClosed = errors.New("parser is closed")

func (p *Parser) failf(cause error, msg string, args ...any) (Token, error) {
	p.tok = Invalid
	p.err = &SyntaxError{
		Location: p.sc.location().First,
		Message:  fmt.Sprintf(msg, args...),
		err:      cause,
	}
	return Invalid, p.err
}

// SyntaxError is the concrete type of syntax errors reported by the parser.
type SyntaxError struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
