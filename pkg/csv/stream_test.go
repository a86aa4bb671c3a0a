package csv_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shapestone/shape-tcsv/pkg/csv"
)

func TestScanner(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		offset  int
		want    []string
		wantErr error
	}{
		{
			name:  "all rows",
			input: people,
			want:  []string{"ann", "bob"},
		},
		{
			name:   "from offset",
			input:  people,
			offset: 1,
			want:   []string{"bob"},
		},
		{
			name:    "stops at bad row",
			input:   "1,ann,smith\n2,bob\n3,cy,roe\n",
			want:    []string{"ann"},
			wantErr: csv.ErrFieldCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := csv.New(strings.NewReader(tt.input), personDecoder, withOffset(tt.offset))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			scanner := csv.NewScanner(p)
			if scanner.Line() != 0 {
				t.Errorf("Line() before Scan = %d, want 0", scanner.Line())
			}

			var got []string
			for scanner.Scan() {
				got = append(got, scanner.Row().V1)
				if scanner.Line() != tt.offset+len(got) {
					t.Errorf("Line() = %d, want %d", scanner.Line(), tt.offset+len(got))
				}
			}

			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("scanned %q, want %q", got, tt.want)
			}
			if tt.wantErr == nil && scanner.Err() != nil {
				t.Errorf("Err() = %v, want nil", scanner.Err())
			}
			if tt.wantErr != nil && !errors.Is(scanner.Err(), tt.wantErr) {
				t.Errorf("Err() = %v, want %v", scanner.Err(), tt.wantErr)
			}
			if scanner.Scan() {
				t.Error("Scan() after the end should return false")
			}
		})
	}
}
