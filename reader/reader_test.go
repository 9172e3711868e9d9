// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package reader_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nagillavenkatesh/jsontok"
	"github.com/nagillavenkatesh/jsontok/reader"
	"github.com/nagillavenkatesh/jsontok/tokbuf"
)

func newReader(input string) *reader.Reader {
	return reader.New(jsontok.NewParser(strings.NewReader(input)))
}

// TestWalk exercises the full read cycle over a small document.
func TestWalk(t *testing.T) {
	r := newReader(`{"a": 1}`)

	if err := r.BeginObject(); err != nil {
		t.Fatalf("BeginObject failed: %v", err)
	}
	if name, err := r.NextName(); name != "a" || err != nil {
		t.Fatalf("NextName: got %q, %v; want %q, nil", name, err, "a")
	}
	if kind, err := r.Peek(); kind != reader.Number || err != nil {
		t.Fatalf("Peek: got %v, %v; want %v, nil", kind, err, reader.Number)
	}
	if v, err := r.NextInt(); v != 1 || err != nil {
		t.Fatalf("NextInt: got %v, %v; want 1, nil", v, err)
	}
	if err := r.EndObject(); err != nil {
		t.Fatalf("EndObject failed: %v", err)
	}
	if ok, err := r.HasNext(); ok || err != nil {
		t.Fatalf("HasNext at end: got %v, %v; want false, nil", ok, err)
	}
	if kind, err := r.Peek(); kind != reader.EndDocument || err != nil {
		t.Fatalf("Peek at end: got %v, %v; want %v, nil", kind, err, reader.EndDocument)
	}
}

func TestRoundTrip(t *testing.T) {
	r := newReader(`{"nums": [1, 2.5], "flag": true, "none": null, "s": "hi"}`)

	var got []any
	if err := r.BeginObject(); err != nil {
		t.Fatalf("BeginObject failed: %v", err)
	}
	for {
		ok, err := r.HasNext()
		if err != nil {
			t.Fatalf("HasNext failed: %v", err)
		} else if !ok {
			break
		}
		name, err := r.NextName()
		if err != nil {
			t.Fatalf("NextName failed: %v", err)
		}
		got = append(got, name)

		kind, err := r.Peek()
		if err != nil {
			t.Fatalf("Peek failed: %v", err)
		}
		switch kind {
		case reader.BeginArray:
			r.BeginArray()
			for {
				if ok, _ := r.HasNext(); !ok {
					break
				}
				v, err := r.NextFloat64()
				if err != nil {
					t.Fatalf("NextFloat64 failed: %v", err)
				}
				got = append(got, v)
			}
			if err := r.EndArray(); err != nil {
				t.Fatalf("EndArray failed: %v", err)
			}
		case reader.Boolean:
			v, err := r.NextBool()
			if err != nil {
				t.Fatalf("NextBool failed: %v", err)
			}
			got = append(got, v)
		case reader.Null:
			if err := r.NextNull(); err != nil {
				t.Fatalf("NextNull failed: %v", err)
			}
			got = append(got, nil)
		case reader.String:
			v, err := r.NextString()
			if err != nil {
				t.Fatalf("NextString failed: %v", err)
			}
			got = append(got, v)
		default:
			t.Fatalf("Unexpected kind %v", kind)
		}
	}
	if err := r.EndObject(); err != nil {
		t.Fatalf("EndObject failed: %v", err)
	}

	want := []any{"nums", 1.0, 2.5, "flag", true, "none", nil, "s", "hi"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Values: (-want, +got)\n%s", diff)
	}
}

func TestHasNextBeforeClose(t *testing.T) {
	r := newReader(`{"a": [true]}`)
	r.BeginObject()
	r.NextName()
	r.BeginArray()
	r.NextBool()

	if ok, err := r.HasNext(); ok || err != nil {
		t.Errorf("HasNext before \"]\": got %v, %v; want false, nil", ok, err)
	}
	if err := r.EndArray(); err != nil {
		t.Errorf("EndArray failed: %v", err)
	}
	if ok, err := r.HasNext(); ok || err != nil {
		t.Errorf("HasNext before \"}\": got %v, %v; want false, nil", ok, err)
	}
	if err := r.EndObject(); err != nil {
		t.Errorf("EndObject failed: %v", err)
	}
}

func TestStateMismatch(t *testing.T) {
	r := newReader(`{"a": 1}`)
	r.BeginObject()

	// The pending token is a name, not an array.
	err := r.BeginArray()
	var serr *reader.StateError
	if !errors.As(err, &serr) {
		t.Fatalf("BeginArray: got error %v, want *StateError", err)
	}
	if serr.Want != jsontok.StartArray || serr.Got != jsontok.FieldName {
		t.Errorf("StateError: got %v/%v, want %v/%v",
			serr.Want, serr.Got, jsontok.StartArray, jsontok.FieldName)
	}

	// The mismatched token is not consumed; Peek still reports it, and the
	// read can continue from it.
	if kind, err := r.Peek(); kind != reader.Name || err != nil {
		t.Errorf("Peek after mismatch: got %v, %v; want %v, nil", kind, err, reader.Name)
	}
	if name, err := r.NextName(); name != "a" || err != nil {
		t.Errorf("NextName after mismatch: got %q, %v; want %q, nil", name, err, "a")
	}

	// NextName against a value reports the converse mismatch.
	if _, err := r.NextName(); !errors.As(err, &serr) {
		t.Errorf("NextName: got error %v, want *StateError", err)
	} else if serr.Got != jsontok.Int {
		t.Errorf("StateError.Got: got %v, want %v", serr.Got, jsontok.Int)
	}
	if kind, err := r.Peek(); kind != reader.Number || err != nil {
		t.Errorf("Peek after mismatch: got %v, %v; want %v, nil", kind, err, reader.Number)
	}
}

func TestLenientString(t *testing.T) {
	r := newReader(`[15, "x"]`)
	r.BeginArray()
	if _, err := r.NextString(); err == nil {
		t.Error("Strict NextString on a number did not report an error")
	}

	r = newReader(`[15, "x"]`)
	r.SetLenient(true)
	if !r.Lenient() {
		t.Error("Lenient: got false, want true")
	}
	r.BeginArray()
	if v, err := r.NextString(); v != "15" || err != nil {
		t.Errorf("Lenient NextString: got %q, %v; want %q, nil", v, err, "15")
	}
	if v, err := r.NextString(); v != "x" || err != nil {
		t.Errorf("NextString: got %q, %v; want %q, nil", v, err, "x")
	}
}

// A failed scalar extraction still consumes its token: the cursor moves on
// rather than allowing a retry of the same token.
func TestFailedScalarConsumes(t *testing.T) {
	r := newReader(`["nope", 42]`)
	r.BeginArray()

	if _, err := r.NextBool(); err == nil {
		t.Fatal("NextBool on a string did not report an error")
	}
	if v, err := r.NextInt(); v != 42 || err != nil {
		t.Errorf("NextInt: got %v, %v; want 42, nil", v, err)
	}
	if err := r.EndArray(); err != nil {
		t.Errorf("EndArray failed: %v", err)
	}
}

func TestSkipValue(t *testing.T) {
	r := newReader(`{"skip": {"a": [1, 2, {"b": []}]}, "keep": "yes"}`)
	r.BeginObject()
	r.NextName()
	if err := r.SkipValue(); err != nil {
		t.Fatalf("SkipValue failed: %v", err)
	}
	if name, err := r.NextName(); name != "keep" || err != nil {
		t.Fatalf("NextName after skip: got %q, %v; want %q, nil", name, err, "keep")
	}
	if v, err := r.NextString(); v != "yes" || err != nil {
		t.Errorf("NextString: got %q, %v", v, err)
	}
	if err := r.EndObject(); err != nil {
		t.Errorf("EndObject failed: %v", err)
	}
}

func TestSkipValueDeep(t *testing.T) {
	const depth = 500

	input := strings.Repeat("[", depth) + strings.Repeat("]", depth) + `["sib"]`
	r := reader.New(jsontok.NewParser(strings.NewReader(input)))
	if err := r.SkipValue(); err != nil {
		t.Fatalf("SkipValue failed: %v", err)
	}

	// The skip consumed exactly the nested value; the sibling follows.
	if err := r.BeginArray(); err != nil {
		t.Fatalf("BeginArray failed: %v", err)
	}
	if v, err := r.NextString(); v != "sib" || err != nil {
		t.Fatalf("NextString: got %q, %v; want %q, nil", v, err, "sib")
	}
	if err := r.EndArray(); err != nil {
		t.Fatalf("EndArray failed: %v", err)
	}
}

func TestSkipScalar(t *testing.T) {
	r := newReader(`[1, 2]`)
	r.BeginArray()
	if err := r.SkipValue(); err != nil {
		t.Fatalf("SkipValue failed: %v", err)
	}
	if v, err := r.NextInt(); v != 2 || err != nil {
		t.Errorf("NextInt after skip: got %v, %v; want 2, nil", v, err)
	}
}

func TestNextBuffer(t *testing.T) {
	r := newReader(`{"keep": {"a": [1, true]}, "next": 2}`)
	r.BeginObject()
	r.NextName()

	// Peeking first must not disturb the capture anchor.
	if kind, err := r.Peek(); kind != reader.BeginObject || err != nil {
		t.Fatalf("Peek: got %v, %v", kind, err)
	}

	buf, err := r.NextBuffer()
	if err != nil {
		t.Fatalf("NextBuffer failed: %v", err)
	}
	want := []jsontok.Token{
		jsontok.StartObject, jsontok.FieldName,
		jsontok.StartArray, jsontok.Int, jsontok.True, jsontok.EndArray,
		jsontok.EndObject,
	}
	if diff := cmp.Diff(want, buf.Tokens()); diff != "" {
		t.Errorf("Captured tokens: (-want, +got)\n%s", diff)
	}

	// The reader resumes at the sibling member.
	if name, err := r.NextName(); name != "next" || err != nil {
		t.Fatalf("NextName after capture: got %q, %v; want %q, nil", name, err, "next")
	}
	if v, err := r.NextInt(); v != 2 || err != nil {
		t.Errorf("NextInt: got %v, %v; want 2, nil", v, err)
	}
	if err := r.EndObject(); err != nil {
		t.Errorf("EndObject failed: %v", err)
	}

	// A captured value can be read again through a new bridge.
	rr := reader.New(buf.Replay())
	if err := rr.BeginObject(); err != nil {
		t.Fatalf("BeginObject on replay failed: %v", err)
	}
	if name, err := rr.NextName(); name != "a" || err != nil {
		t.Fatalf("NextName on replay: got %q, %v", name, err)
	}
}

// Calling NextBuffer where no value is pending is a positioning mistake, not
// a source failure. The error must not carry the source tag, and the pending
// token must remain consumable.
func TestNextBufferNonValue(t *testing.T) {
	r := newReader(`{}`)
	if err := r.BeginObject(); err != nil {
		t.Fatalf("BeginObject failed: %v", err)
	}

	_, err := r.NextBuffer()
	if err == nil {
		t.Fatal("NextBuffer at end of object: got nil, want error")
	}
	var serr *reader.SourceError
	if errors.As(err, &serr) {
		t.Errorf("NextBuffer error %v is a SourceError, want plain error", err)
	}

	if kind, perr := r.Peek(); kind != reader.EndObject || perr != nil {
		t.Errorf("Peek after failure: got %v, %v; want %v, nil", kind, perr, reader.EndObject)
	}
	if err := r.EndObject(); err != nil {
		t.Errorf("EndObject after failure: %v", err)
	}
}

// Capture is the one read path that preserves source kinds the translator
// collapses: an Embedded token survives capture and replay verbatim, while
// Peek reports it as Null.
func TestNextBufferEmbedded(t *testing.T) {
	payload := []byte("\x01\x02\x03")

	src := tokbuf.New()
	src.Write(jsontok.StartObject, "{")
	src.WriteName("blob")
	src.WriteBlob(payload)
	src.Write(jsontok.EndObject, "}")

	// Translated access: the extension kind degrades to Null.
	r := reader.New(src.Replay())
	r.BeginObject()
	r.NextName()
	if kind, err := r.Peek(); kind != reader.Null || err != nil {
		t.Errorf("Peek at embedded: got %v, %v; want %v, nil", kind, err, reader.Null)
	}

	// Captured access: the extension kind is preserved.
	buf, err := r.NextBuffer()
	if err != nil {
		t.Fatalf("NextBuffer failed: %v", err)
	}
	if diff := cmp.Diff([]jsontok.Token{jsontok.Embedded}, buf.Tokens()); diff != "" {
		t.Errorf("Captured tokens: (-want, +got)\n%s", diff)
	}
	rep := buf.Replay()
	rep.Next()
	if got, err := rep.Blob(); err != nil {
		t.Errorf("Blob failed: %v", err)
	} else if diff := cmp.Diff(payload, got); diff != "" {
		t.Errorf("Blob: (-want, +got)\n%s", diff)
	}

	if err := r.EndObject(); err != nil {
		t.Errorf("EndObject after capture failed: %v", err)
	}
}

func TestPromoteNameToValue(t *testing.T) {
	r := newReader(`{"a": 1}`)
	err := r.PromoteNameToValue()
	if !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("PromoteNameToValue: got %v, want errors.ErrUnsupported", err)
	}
}

func TestSourceError(t *testing.T) {
	r := newReader(`[1, !?]`)
	r.BeginArray()
	r.NextInt()

	_, err := r.Peek()
	var serr *reader.SourceError
	if !errors.As(err, &serr) {
		t.Fatalf("Peek: got error %v, want *SourceError", err)
	}

	// The original engine error is carried as the cause.
	var synerr *jsontok.SyntaxError
	if !errors.As(err, &synerr) {
		t.Errorf("Peek: error %v does not wrap *jsontok.SyntaxError", err)
	}
}

func TestClose(t *testing.T) {
	rc := &closeReader{Reader: strings.NewReader(`[1]`)}
	r := reader.New(jsontok.NewParser(rc))
	if err := r.BeginArray(); err != nil {
		t.Fatalf("BeginArray failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if !rc.closed {
		t.Error("Close did not propagate to the input stream")
	}
	if _, err := r.Peek(); err == nil {
		t.Error("Peek after Close did not report an error")
	}
}

func TestSourceHandle(t *testing.T) {
	p := jsontok.NewParser(strings.NewReader(`[1]`))
	r := reader.New(p)
	if src := r.Source(); src != jsontok.Source(p) {
		t.Errorf("Source: got %v, want the wrapped parser", src)
	}
}

type closeReader struct {
	io.Reader
	closed bool
}

func (c *closeReader) Close() error { c.closed = true; return nil }
