// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package tokbuf implements a replayable buffer of structural tokens.
//
// A Buffer records the raw token sequence of exactly one complete value: a
// scalar, or a container from its opening token to its matching close. The
// recorded sequence preserves the full source vocabulary, including the
// distinction between integer and floating-point literals and any Embedded
// payloads, so a captured value can later be replayed losslessly through the
// jsontok.Source contract.
package tokbuf

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/nagillavenkatesh/jsontok"
)

type entry struct {
	tok  jsontok.Token
	text string
	blob []byte
}

// A Buffer is an ordered, replayable sequence of structural tokens.
// The zero value is ready for use.
type Buffer struct {
	ents []entry
}

// New constructs a new empty Buffer.
func New() *Buffer { return new(Buffer) }

// Len reports the number of tokens recorded in b.
func (b *Buffer) Len() int { return len(b.ents) }

// Tokens returns the kinds of the recorded tokens, in order.
func (b *Buffer) Tokens() []jsontok.Token {
	out := make([]jsontok.Token, len(b.ents))
	for i, e := range b.ents {
		out[i] = e.tok
	}
	return out
}

// Write appends a token with the given text to b. Write panics if tok is not
// part of a value sequence (Invalid or EndOfInput), since a buffer records
// exactly the span of one value. Embedded payloads are appended with
// WriteBlob.
func (b *Buffer) Write(tok jsontok.Token, text string) {
	if !tok.IsValue() && tok != jsontok.EndObject && tok != jsontok.EndArray && tok != jsontok.FieldName {
		panic(fmt.Sprintf("cannot record %v", tok))
	}
	b.ents = append(b.ents, entry{tok: tok, text: text})
}

// WriteBlob appends an Embedded token carrying data to b.
// The buffer keeps a reference to data; the caller must not modify it.
func (b *Buffer) WriteBlob(data []byte) {
	b.ents = append(b.ents, entry{tok: jsontok.Embedded, blob: data})
}

// WriteName appends a FieldName token to b.
func (b *Buffer) WriteName(name string) { b.Write(jsontok.FieldName, name) }

// WriteString appends a String token to b.
func (b *Buffer) WriteString(s string) { b.Write(jsontok.String, s) }

// WriteInt appends an Int token to b.
func (b *Buffer) WriteInt(z int64) { b.Write(jsontok.Int, strconv.FormatInt(z, 10)) }

// WriteFloat appends a Float token to b.
func (b *Buffer) WriteFloat(f float64) {
	b.Write(jsontok.Float, strconv.FormatFloat(f, 'g', -1, 64))
}

// WriteBool appends a True or False token to b.
func (b *Buffer) WriteBool(v bool) {
	if v {
		b.Write(jsontok.True, "true")
	} else {
		b.Write(jsontok.False, "false")
	}
}

// WriteNull appends a Null token to b.
func (b *Buffer) WriteNull() { b.Write(jsontok.Null, "null") }

// Capture appends the complete value at the current position of src: the
// current token and, if that token opens a container, every token through the
// matching close. Capture leaves the final token of the value current on src,
// so the next call to src.Next reports the following sibling.
//
// It is an error if src is not positioned on the start of a value.
func (b *Buffer) Capture(src jsontok.Source) error {
	tok := src.Token()
	if !tok.IsValue() {
		return fmt.Errorf("cannot capture %v", tok)
	}
	if err := b.record(tok, src); err != nil {
		return err
	}
	if tok != jsontok.StartObject && tok != jsontok.StartArray {
		return nil
	}
	for depth := 1; depth > 0; {
		tok, err := src.Next()
		if err != nil {
			return err
		}
		switch tok {
		case jsontok.StartObject, jsontok.StartArray:
			depth++
		case jsontok.EndObject, jsontok.EndArray:
			depth--
		case jsontok.EndOfInput:
			return fmt.Errorf("unexpected %v during capture", tok)
		}
		if err := b.record(tok, src); err != nil {
			return err
		}
	}
	return nil
}

func (b *Buffer) record(tok jsontok.Token, src jsontok.Source) error {
	if tok == jsontok.Embedded {
		data, err := src.Blob()
		if err != nil {
			return err
		}
		b.WriteBlob(data)
		return nil
	}
	b.ents = append(b.ents, entry{tok: tok, text: src.Text()})
	return nil
}

// Replay returns a new source that replays the recorded token sequence from
// the beginning. Multiple replays of the same buffer are independent.
func (b *Buffer) Replay() jsontok.Source { return &replayer{ents: b.ents, i: -1} }

// String renders the recorded sequence as compact JSON-shaped text, for
// diagnostic use. Embedded payloads are rendered in base64.
func (b *Buffer) String() string {
	var sb strings.Builder
	var n int // values emitted in the current container

	sep := func() {
		if n > 0 {
			sb.WriteByte(',')
		}
	}
	for _, e := range b.ents {
		switch e.tok {
		case jsontok.StartObject, jsontok.StartArray:
			sep()
			if e.tok == jsontok.StartObject {
				sb.WriteByte('{')
			} else {
				sb.WriteByte('[')
			}
			n = 0
		case jsontok.EndObject, jsontok.EndArray:
			if e.tok == jsontok.EndObject {
				sb.WriteByte('}')
			} else {
				sb.WriteByte(']')
			}
			n = 1
		case jsontok.FieldName:
			sep()
			sb.WriteString(jsontok.Quote(e.text))
			sb.WriteByte(':')
			n = 0
		case jsontok.String:
			sep()
			sb.WriteString(jsontok.Quote(e.text))
			n++
		case jsontok.Embedded:
			sep()
			sb.WriteString("<<")
			sb.WriteString(base64.StdEncoding.EncodeToString(e.blob))
			sb.WriteString(">>")
			n++
		default:
			sep()
			sb.WriteString(e.text)
			n++
		}
	}
	return sb.String()
}
