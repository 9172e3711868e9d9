// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsontok

// Token is the type of a structural token reported by a Source.  The
// vocabulary is deliberately richer than plain JSON structure: integer and
// floating-point literals are distinct kinds, and Embedded marks opaque
// binary payloads that only buffered or format-specific sources can produce.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid     Token = iota // invalid token
	StartObject              // open of an object "{"
	EndObject                // close of an object "}"
	StartArray               // open of an array "["
	EndArray                 // close of an array "]"
	FieldName                // object member key
	String                   // string value
	Int                      // number: integer with no fraction or exponent
	Float                    // number with fraction and/or exponent
	True                     // constant: true
	False                    // constant: false
	Null                     // constant: null
	Embedded                 // embedded binary payload (extension kind)
	EndOfInput               // end of the token stream
)

var tokenStr = [...]string{
	Invalid:     "invalid token",
	StartObject: `"{"`,
	EndObject:   `"}"`,
	StartArray:  `"["`,
	EndArray:    `"]"`,
	FieldName:   "field name",
	String:      "string",
	Int:         "integer",
	Float:       "number",
	True:        "true",
	False:       "false",
	Null:        "null",
	Embedded:    "embedded value",
	EndOfInput:  "end of input",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// IsValue reports whether t begins a value, that is, a scalar or the opening
// token of a container.
func (t Token) IsValue() bool {
	switch t {
	case StartObject, StartArray, String, Int, Float, True, False, Null, Embedded:
		return true
	}
	return false
}

// A Source is a pull cursor over a stream of structural tokens.  Each call to
// Next advances the cursor by exactly one token and returns it; at the end of
// the stream Next reports EndOfInput, and keeps reporting it on subsequent
// calls.  The accessor methods refer to the token most recently returned by
// Next.
//
// The *Parser type implements Source over JSON text, and a tokbuf.Buffer
// replays a recorded token sequence through the same contract.
type Source interface {
	// Next advances to the next token of the stream and returns it.
	Next() (Token, error)

	// Token returns the current token, the one most recently returned by
	// Next, without advancing.
	Token() Token

	// Text returns the text of the current token. Field names and strings are
	// returned in decoded (unescaped) form; other tokens report their literal
	// text.
	Text() string

	// Int64 returns the current token as an int64.  A Float token is
	// truncated toward zero.
	Int64() (int64, error)

	// Int returns the current token as an int, with range checking.
	Int() (int, error)

	// Float64 returns the current numeric token as a float64.
	Float64() (float64, error)

	// Bool returns the value of the current True or False token.
	Bool() (bool, error)

	// Blob returns the payload of the current Embedded token.
	Blob() ([]byte, error)

	// SkipChildren consumes the remainder of the container whose opening
	// token is current, leaving the closing token current.  It is a no-op if
	// the current token is not StartObject or StartArray.
	SkipChildren() error

	// Location returns the location of the current token in the input.
	Location() Location

	// Close releases any resources held by the source. The source is invalid
	// after Close.
	Close() error
}
