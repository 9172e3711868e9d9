// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package reader_test

import (
	"fmt"
	"log"
	"strings"

	"github.com/nagillavenkatesh/jsontok"
	"github.com/nagillavenkatesh/jsontok/reader"
)

func Example() {
	input := strings.NewReader(`{"name": "Aloysius", "age": 43, "tags": ["a", "b"]}`)

	r := reader.New(jsontok.NewParser(input))
	defer r.Close()

	check := func(err error) {
		if err != nil {
			log.Fatal(err)
		}
	}

	check(r.BeginObject())
	for {
		ok, err := r.HasNext()
		check(err)
		if !ok {
			break
		}
		name, err := r.NextName()
		check(err)

		kind, err := r.Peek()
		check(err)
		switch kind {
		case reader.String:
			s, err := r.NextString()
			check(err)
			fmt.Printf("%s: %q\n", name, s)
		case reader.Number:
			z, err := r.NextInt64()
			check(err)
			fmt.Printf("%s: %d\n", name, z)
		default:
			fmt.Printf("%s: (skipped %v)\n", name, kind)
			check(r.SkipValue())
		}
	}
	check(r.EndObject())
	// Output:
	// name: "Aloysius"
	// age: 43
	// tags: (skipped BeginArray)
}

func ExampleReader_NextBuffer() {
	input := strings.NewReader(`{"meta": {"v": [1, 2]}, "id": 5}`)

	r := reader.New(jsontok.NewParser(input))
	defer r.Close()

	r.BeginObject()
	r.NextName() // "meta"

	// Capture the whole "meta" value as raw tokens for later replay.
	buf, err := r.NextBuffer()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("captured:", buf)

	// The reader resumes after the captured value.
	name, _ := r.NextName()
	id, _ := r.NextInt()
	fmt.Printf("%s: %d\n", name, id)
	// Output:
	// captured: {"v":[1,2]}
	// id: 5
}
