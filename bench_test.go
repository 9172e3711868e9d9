package jsontok_test

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/nagillavenkatesh/jsontok"
	"github.com/nagillavenkatesh/jsontok/reader"
)

// benchInput builds a document of n records exercising all the token kinds.
func benchInput(n int) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, `{"id": %d, "score": %g, "tag": "item %d", "ok": %v, "ref": null}`,
			i, float64(i)/3, i, i%2 == 0)
	}
	sb.WriteByte(']')
	return sb.String()
}

func BenchmarkParser(b *testing.B) {
	input := benchInput(1000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			dec := json.NewDecoder(strings.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Parser", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			p := jsontok.NewParser(strings.NewReader(input))
			for {
				tok, err := p.Next()
				if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				} else if tok == jsontok.EndOfInput {
					break
				}

				// The standard library Decoder converts tokens to values.
				// For a fair comparison, do the same for numbers.
				switch tok {
				case jsontok.Int:
					p.Int64()
				case jsontok.Float:
					p.Float64()
				}
			}
		}
	})

	b.Run("Reader", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			r := reader.New(jsontok.NewParser(strings.NewReader(input)))
			if err := r.BeginArray(); err != nil {
				b.Fatalf("BeginArray failed: %v", err)
			}
			for {
				ok, err := r.HasNext()
				if err != nil {
					b.Fatalf("HasNext failed: %v", err)
				} else if !ok {
					break
				}
				if err := r.SkipValue(); err != nil {
					b.Fatalf("SkipValue failed: %v", err)
				}
			}
			if err := r.EndArray(); err != nil {
				b.Fatalf("EndArray failed: %v", err)
			}
		}
	})
}
