package csv_test

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"

	tcsv "github.com/shapestone/shape-tcsv/pkg/csv"
)

// benchmarkData builds rows of id, quoted name, score.
func benchmarkData(rows int) string {
	var sb strings.Builder
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&sb, "%d,\"name %d, the %dth\",%d.5\n", i, i, i, i)
	}
	return sb.String()
}

func BenchmarkParser_All(b *testing.B) {
	for _, rows := range []int{100, 10000} {
		data := benchmarkData(rows)
		dec := tcsv.Of3(tcsv.Int, tcsv.String, tcsv.Float)

		b.Run(strconv.Itoa(rows), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				p, err := tcsv.New(strings.NewReader(data), dec, tcsv.DefaultOptions())
				if err != nil {
					b.Fatal(err)
				}
				for _, err := range p.All() {
					if err != nil {
						b.Fatal(err)
					}
				}
			}
		})
	}
}

// BenchmarkEncodingCSV is the standard library baseline, reading raw fields only.
func BenchmarkEncodingCSV(b *testing.B) {
	data := benchmarkData(10000)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r := csv.NewReader(strings.NewReader(data))
		for {
			if _, err := r.Read(); err == io.EOF {
				break
			} else if err != nil {
				b.Fatal(err)
			}
		}
	}
}
