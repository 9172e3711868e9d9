// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsontok_test

import (
	"testing"

	"github.com/nagillavenkatesh/jsontok"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"a b c", `"a b c"`},
		{"a\tb\nc", `"a\tb\nc"`},
		{`say "cheese"`, `"say \"cheese\""`},

		// Runes that are valid JSON but unsafe to embed raw in JS source
		// are escaped, along with the replacement rune.
		{"�", `"\ufffd"`},
		{"a b", `"a\u2028b"`},
		{"a b", `"a\u2029b"`},
	}
	for _, test := range tests {
		if got := jsontok.Quote(test.input); got != test.want {
			t.Errorf("Quote %#q: got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`""`, ""},
		{`"a b c"`, "a b c"},
		{`"a\tb"`, "a\tb"},
		{`"a b"`, "a b"},
		{`" "`, " "},
	}
	for _, test := range tests {
		got, err := jsontok.Unquote(test.input)
		if err != nil {
			t.Errorf("Unquote %#q: unexpected error: %v", test.input, err)
		} else if string(got) != test.want {
			t.Errorf("Unquote %#q: got %#q, want %#q", test.input, got, test.want)
		}
	}

	// Inputs without quotation marks are rejected.
	if got, err := jsontok.Unquote(`plain`); err == nil {
		t.Errorf("Unquote: got %#q, want error", got)
	}
}
