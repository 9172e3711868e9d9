// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package reader

import "github.com/nagillavenkatesh/jsontok"

// Kind is the coarse classification of the next value reported by Peek.
// It is the closed vocabulary of the document-reader contract, collapsing
// the richer source vocabulary: both integer and floating-point literals
// report Number, and both boolean literals report Boolean.
type Kind byte

// Constants defining the valid Kind values.
const (
	BeginArray  Kind = iota // start of an array
	EndArray                // end of an array
	BeginObject             // start of an object
	EndObject               // end of an object
	Name                    // object member name
	String                  // string value
	Number                  // numeric value
	Boolean                 // boolean value
	Null                    // null value
	EndDocument             // end of the document
)

var kindStr = [...]string{
	BeginArray:  "BeginArray",
	EndArray:    "EndArray",
	BeginObject: "BeginObject",
	EndObject:   "EndObject",
	Name:        "Name",
	String:      "String",
	Number:      "Number",
	Boolean:     "Boolean",
	Null:        "Null",
	EndDocument: "EndDocument",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid"
	}
	return kindStr[k]
}

// kindOf maps a source token onto the reader vocabulary. Source kinds with no
// reader equivalent (such as Embedded) report Null; readers that must not
// lose such tokens should capture them with NextBuffer instead.
func kindOf(tok jsontok.Token) Kind {
	switch tok {
	case jsontok.StartArray:
		return BeginArray
	case jsontok.EndArray:
		return EndArray
	case jsontok.StartObject:
		return BeginObject
	case jsontok.EndObject:
		return EndObject
	case jsontok.FieldName:
		return Name
	case jsontok.String:
		return String
	case jsontok.Int, jsontok.Float:
		return Number
	case jsontok.True, jsontok.False:
		return Boolean
	case jsontok.Null:
		return Null
	case jsontok.EndOfInput:
		return EndDocument
	default: // not semantically equivalent
		return Null
	}
}
