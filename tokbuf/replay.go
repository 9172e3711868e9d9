// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tokbuf

import (
	"fmt"
	"strconv"

	"github.com/nagillavenkatesh/jsontok"
)

var _ jsontok.Source = (*replayer)(nil)

// A replayer is a jsontok.Source over a recorded token sequence.
type replayer struct {
	ents []entry
	i    int // index of current entry; -1 before the first Next
}

func (r *replayer) cur() (entry, bool) {
	if r.i < 0 || r.i >= len(r.ents) {
		return entry{}, false
	}
	return r.ents[r.i], true
}

// Next advances r to the next recorded token and returns it. Once the
// recording is exhausted, Next reports EndOfInput.
func (r *replayer) Next() (jsontok.Token, error) {
	if r.i < len(r.ents) {
		r.i++
	}
	return r.Token(), nil
}

// Token returns the current token without advancing.
func (r *replayer) Token() jsontok.Token {
	e, ok := r.cur()
	if !ok {
		if r.i >= len(r.ents) {
			return jsontok.EndOfInput
		}
		return jsontok.Invalid
	}
	return e.tok
}

// Text returns the recorded text of the current token.
func (r *replayer) Text() string {
	e, _ := r.cur()
	return e.text
}

// Int64 returns the current numeric token as an int64.
// A Float token is truncated toward zero.
func (r *replayer) Int64() (int64, error) {
	e, _ := r.cur()
	switch e.tok {
	case jsontok.Int:
		return strconv.ParseInt(e.text, 10, 64)
	case jsontok.Float:
		v, err := strconv.ParseFloat(e.text, 64)
		return int64(v), err
	}
	return 0, fmt.Errorf("cannot read %v as integer", e.tok)
}

// Int returns the current numeric token as an int, with range checking.
func (r *replayer) Int() (int, error) {
	e, _ := r.cur()
	switch e.tok {
	case jsontok.Int:
		v, err := strconv.ParseInt(e.text, 10, strconv.IntSize)
		return int(v), err
	case jsontok.Float:
		v, err := r.Int64()
		if err != nil {
			return 0, err
		} else if int64(int(v)) != v {
			return 0, fmt.Errorf("value %d out of range for int", v)
		}
		return int(v), nil
	}
	return 0, fmt.Errorf("cannot read %v as integer", e.tok)
}

// Float64 returns the current numeric token as a float64.
func (r *replayer) Float64() (float64, error) {
	e, _ := r.cur()
	switch e.tok {
	case jsontok.Int, jsontok.Float:
		return strconv.ParseFloat(e.text, 64)
	}
	return 0, fmt.Errorf("cannot read %v as number", e.tok)
}

// Bool returns the value of the current True or False token.
func (r *replayer) Bool() (bool, error) {
	e, _ := r.cur()
	switch e.tok {
	case jsontok.True:
		return true, nil
	case jsontok.False:
		return false, nil
	}
	return false, fmt.Errorf("cannot read %v as boolean", e.tok)
}

// Blob returns the payload of the current Embedded token.
func (r *replayer) Blob() ([]byte, error) {
	e, _ := r.cur()
	if e.tok != jsontok.Embedded {
		return nil, fmt.Errorf("cannot read %v as embedded value", e.tok)
	}
	return e.blob, nil
}

// SkipChildren consumes the remainder of the container whose opening token is
// current, leaving the closing token current. It is a no-op if the current
// token is not StartObject or StartArray.
func (r *replayer) SkipChildren() error {
	tok := r.Token()
	if tok != jsontok.StartObject && tok != jsontok.StartArray {
		return nil
	}
	for depth := 1; depth > 0; {
		tok, err := r.Next()
		if err != nil {
			return err
		}
		switch tok {
		case jsontok.StartObject, jsontok.StartArray:
			depth++
		case jsontok.EndObject, jsontok.EndArray:
			depth--
		case jsontok.EndOfInput:
			return fmt.Errorf("unexpected %v", tok)
		}
	}
	return nil
}

// Location implements a method of the Source interface. A recording carries
// no source text, so the location is always zero.
func (r *replayer) Location() jsontok.Location { return jsontok.Location{} }

// Close invalidates the replayer. It never reports an error.
func (r *replayer) Close() error {
	r.i = len(r.ents)
	return nil
}
