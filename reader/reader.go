// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package reader bridges a jsontok.Source to a document-reader interface
// with one-token lookahead.
//
// A Reader exposes the familiar begin/end, peek, and typed next-value
// operations of a streaming document reader, while delegating tokenization
// entirely to the source it wraps. The reader keeps no nesting state of its
// own: its only state is a single-slot lookahead over the source's cursor,
// so container balance and position reporting are whatever the source
// provides.
//
// The reader's Kind vocabulary is coarser than the source's Token
// vocabulary. Source kinds with no equivalent (such as jsontok.Embedded)
// are reported as Null by Peek; consumers that understand the richer
// vocabulary should capture the raw token sequence with NextBuffer, which
// bypasses translation entirely.
package reader

import (
	"errors"
	"fmt"

	"github.com/nagillavenkatesh/jsontok"
	"github.com/nagillavenkatesh/jsontok/tokbuf"
)

// A Reader reads a document from a token source with one token of
// lookahead. The caller supplies an already-positioned source; closing the
// reader closes the source.
//
// A Reader is not safe for concurrent use. After any method reports an
// error, the pending token is still available via Peek, but a scalar
// accessor whose extraction failed has already consumed its token and must
// not be retried.
type Reader struct {
	src     jsontok.Source
	slot    jsontok.Token
	filled  bool
	lenient bool
}

// New constructs a new Reader that consumes tokens from src.
func New(src jsontok.Source) *Reader { return &Reader{src: src} }

// Source returns the underlying token source, for callers that want to
// bypass the bridge. Reading from the source directly invalidates the
// reader's lookahead unless the reader is done with it.
func (r *Reader) Source() jsontok.Source { return r.src }

// SetLenient configures whether the scalar accessors of r tolerate kind
// mismatches (true) or require exact kinds (false). In lenient mode
// NextString reads the text of whatever value is pending, for example
// numeric text via the string accessor.
func (r *Reader) SetLenient(ok bool) { r.lenient = ok }

// Lenient reports whether r is in lenient mode.
func (r *Reader) Lenient() bool { return r.lenient }

// requirePeek fills the lookahead slot from the source if it is empty.
// It is idempotent while the slot remains filled.
func (r *Reader) requirePeek() error {
	if !r.filled {
		tok, err := r.src.Next()
		if err != nil {
			return sourceErr(err)
		}
		r.slot, r.filled = tok, true
	}
	return nil
}

// clearPeek marks the pending token consumed.
func (r *Reader) clearPeek() { r.filled = false }

// expect reports a StateError if the pending token is not want.
// The slot stays filled, so the caller can inspect the actual token.
func (r *Reader) expect(want jsontok.Token) error {
	if r.slot != want {
		return &StateError{Want: want, Got: r.slot, At: r.src.Location().First}
	}
	return nil
}

// consume fills the slot, requires the pending token to be want, and
// consumes it.
func (r *Reader) consume(want jsontok.Token) error {
	if err := r.requirePeek(); err != nil {
		return err
	}
	if err := r.expect(want); err != nil {
		return err
	}
	r.clearPeek()
	return nil
}

// BeginArray consumes the opening token of the array at the current
// position.
func (r *Reader) BeginArray() error { return r.consume(jsontok.StartArray) }

// EndArray consumes the closing token of the current array.
func (r *Reader) EndArray() error { return r.consume(jsontok.EndArray) }

// BeginObject consumes the opening token of the object at the current
// position.
func (r *Reader) BeginObject() error { return r.consume(jsontok.StartObject) }

// EndObject consumes the closing token of the current object.
func (r *Reader) EndObject() error { return r.consume(jsontok.EndObject) }

// HasNext reports whether the current container has another member or
// element, that is, whether the pending token is anything other than a
// container close or the end of input.
func (r *Reader) HasNext() (bool, error) {
	if err := r.requirePeek(); err != nil {
		return false, err
	}
	switch r.slot {
	case jsontok.EndObject, jsontok.EndArray, jsontok.EndOfInput:
		return false, nil
	}
	return true, nil
}

// Peek reports the kind of the next value without consuming it.
func (r *Reader) Peek() (Kind, error) {
	if err := r.requirePeek(); err != nil {
		return EndDocument, err
	}
	return kindOf(r.slot), nil
}

// NextName consumes and returns the next object member name.
func (r *Reader) NextName() (string, error) {
	if err := r.requirePeek(); err != nil {
		return "", err
	}
	if err := r.expect(jsontok.FieldName); err != nil {
		return "", err
	}
	name := r.src.Text()
	r.clearPeek()
	return name, nil
}

// NextString consumes the next value and returns it as a string. Unless the
// reader is lenient, the pending token must be a string.
func (r *Reader) NextString() (string, error) {
	if err := r.requirePeek(); err != nil {
		return "", err
	}
	if !r.lenient {
		if err := r.expect(jsontok.String); err != nil {
			return "", err
		}
	}
	value := r.src.Text()
	r.clearPeek()
	return value, nil
}

// NextBool consumes the next value and returns it as a bool.
//
// The token is consumed even if the source cannot extract a boolean from it;
// a failed read must not be retried.
func (r *Reader) NextBool() (bool, error) {
	if err := r.requirePeek(); err != nil {
		return false, err
	}
	value, err := r.src.Bool()
	r.clearPeek()
	return value, sourceErr(err)
}

// NextNull consumes the next value, which must be a null.
func (r *Reader) NextNull() error { return r.consume(jsontok.Null) }

// NextFloat64 consumes the next value and returns it as a float64.
// The token is consumed even if the extraction fails.
func (r *Reader) NextFloat64() (float64, error) {
	if err := r.requirePeek(); err != nil {
		return 0, err
	}
	value, err := r.src.Float64()
	r.clearPeek()
	return value, sourceErr(err)
}

// NextInt64 consumes the next value and returns it as an int64.
// The token is consumed even if the extraction fails.
func (r *Reader) NextInt64() (int64, error) {
	if err := r.requirePeek(); err != nil {
		return 0, err
	}
	value, err := r.src.Int64()
	r.clearPeek()
	return value, sourceErr(err)
}

// NextInt consumes the next value and returns it as an int.
// The token is consumed even if the extraction fails.
func (r *Reader) NextInt() (int, error) {
	if err := r.requirePeek(); err != nil {
		return 0, err
	}
	value, err := r.src.Int()
	r.clearPeek()
	return value, sourceErr(err)
}

// SkipValue consumes the entire value at the current position, of any
// nesting depth, leaving the reader positioned before the following sibling
// token.
func (r *Reader) SkipValue() error {
	if err := r.requirePeek(); err != nil {
		return err
	}
	err := r.src.SkipChildren()
	r.clearPeek()
	return sourceErr(err)
}

// NextBuffer captures the entire value at the current position as a raw,
// replayable token sequence, bypassing kind translation. This is the only
// read path that preserves source kinds with no reader equivalent. The
// reader is left positioned before the following sibling token.
func (r *Reader) NextBuffer() (*tokbuf.Buffer, error) {
	// If a pending token was peeked but not consumed, the source is still
	// sitting on it, and the capture anchors there.
	if err := r.requirePeek(); err != nil {
		return nil, err
	}
	if !r.slot.IsValue() {
		// A positioning mistake by the caller, not a source failure. The
		// pending token stays in the slot so it can still be consumed.
		return nil, fmt.Errorf("cannot capture %v", r.slot)
	}
	buf := tokbuf.New()
	if err := buf.Capture(r.src); err != nil {
		return nil, sourceErr(err)
	}
	r.clearPeek()
	return buf, nil
}

// PromoteNameToValue would reinterpret the most recently read member name as
// a scalar value. The bridge keeps no state that would make that
// reinterpretation well-defined, so it always reports an error satisfying
// errors.Is(err, errors.ErrUnsupported).
func (r *Reader) PromoteNameToValue() error {
	return fmt.Errorf("promote name to value: %w", errors.ErrUnsupported)
}

// Close discards any pending token and closes the underlying source.
func (r *Reader) Close() error {
	r.clearPeek()
	return r.src.Close()
}
