// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsontok implements a pull tokenizer for JSON and the token
// contract it satisfies.
//
// # Parsing
//
// The Parser type implements a pull cursor over the structure of JSON input.
// Construct a parser from an io.Reader and call its Next method to iterate
// over the stream. Next advances to the next structural token and returns it:
//
//	p := jsontok.NewParser(input)
//	for {
//	   tok, err := p.Next()
//	   if err != nil {
//	      log.Fatalf("Parse failed: %v", err)
//	   } else if tok == jsontok.EndOfInput {
//	      break
//	   }
//	   log.Printf("Next token: %v %q", tok, p.Text())
//	}
//
// Unlike a plain lexer, the parser reports structure: object keys arrive as
// FieldName tokens, punctuation is consumed internally, and containers are
// checked for balance. A syntax error has concrete type *jsontok.SyntaxError.
//
// The accessor methods of a parser report the value of the current token.
// Numeric and boolean coercion rules live here: Int64, Int, Float64, and Bool
// convert the token text, and consumers layered above the parser inherit
// those rules rather than reimplementing them.
//
// # Sources
//
// The Source interface captures the pull-cursor contract implemented by
// *Parser. The tokbuf package records a token sequence into a replayable
// buffer that implements the same contract, and the reader package bridges
// any Source to a coarser document-reader interface with one-token
// lookahead.
//
// The Token vocabulary is richer than what most consumers need: integer and
// floating-point literals are distinct kinds, and the Embedded kind carries
// opaque payloads that only buffered or format-specific sources produce.
// Consumers that must not lose that information should capture raw token
// sequences (see tokbuf) instead of reading through a translating bridge.
package jsontok
