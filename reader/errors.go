// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package reader

import (
	"fmt"

	"github.com/nagillavenkatesh/jsontok"
)

// StateError is the concrete type of errors reported when a reader method is
// invoked against a token kind it does not expect.  The offending token is
// left unconsumed, so the caller can still inspect it with Peek.
type StateError struct {
	Want jsontok.Token // the token kind the method requires
	Got  jsontok.Token // the pending token kind actually present
	At   jsontok.LineCol
}

// Error satisfies the error interface.
func (e *StateError) Error() string {
	if e.At == (jsontok.LineCol{}) {
		return fmt.Sprintf("expected %v, got %v", e.Want, e.Got)
	}
	return fmt.Sprintf("at %s: expected %v, got %v", e.At, e.Want, e.Got)
}

// A SourceError tags an error reported by the underlying token source as it
// crosses the bridge. The original error is carried as the cause, so
// errors.Is and errors.As observe it unchanged.
type SourceError struct {
	err error
}

// Error satisfies the error interface.
func (e *SourceError) Error() string { return "token source: " + e.err.Error() }

// Unwrap supports error wrapping.
func (e *SourceError) Unwrap() error { return e.err }

func sourceErr(err error) error {
	if err == nil {
		return nil
	}
	return &SourceError{err: err}
}
