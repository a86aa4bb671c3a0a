package tokenizer

import (
	"reflect"
	"strings"
	"testing"
)

// TestTokenTypes tests that all token constants are defined and non-empty.
func TestTokenTypes(t *testing.T) {
	tests := []struct {
		name      string
		tokenType string
	}{
		{"delimiter token", TokenDelimiter},
		{"escape token", TokenEscape},
		{"field token", TokenField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tokenType == "" {
				t.Errorf("%s is empty", tt.name)
			}
		})
	}
}

type tokenWant struct {
	kind  string
	value string
}

func TestNewTokenizer_BasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     Options
		expected []tokenWant
	}{
		{
			name:     "single delimiter",
			input:    ",",
			opts:     DefaultOptions(),
			expected: []tokenWant{{TokenDelimiter, ","}},
		},
		{
			name:     "single field",
			input:    "abc",
			opts:     DefaultOptions(),
			expected: []tokenWant{{TokenField, "abc"}},
		},
		{
			name:  "simple row",
			input: "a,b",
			opts:  DefaultOptions(),
			expected: []tokenWant{
				{TokenField, "a"},
				{TokenDelimiter, ","},
				{TokenField, "b"},
			},
		},
		{
			name:  "escaped span",
			input: `"a,b"`,
			opts:  DefaultOptions(),
			expected: []tokenWant{
				{TokenEscape, `"`},
				{TokenField, "a"},
				{TokenDelimiter, ","},
				{TokenField, "b"},
				{TokenEscape, `"`},
			},
		},
		{
			name:     "newline is field content",
			input:    "line1\nline2",
			opts:     DefaultOptions(),
			expected: []tokenWant{{TokenField, "line1\nline2"}},
		},
		{
			name:  "custom delimiter and escape",
			input: "x;'y;z'",
			opts:  Options{Comma: ';', Escape: '\''},
			expected: []tokenWant{
				{TokenField, "x"},
				{TokenDelimiter, ";"},
				{TokenEscape, "'"},
				{TokenField, "y"},
				{TokenDelimiter, ";"},
				{TokenField, "z"},
				{TokenEscape, "'"},
			},
		},
		{
			name:     "escaping disabled",
			input:    `"a"`,
			opts:     Options{Comma: ','},
			expected: []tokenWant{{TokenField, `"a"`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewTokenizerWithOptions(tt.opts)
			tok.Initialize(tt.input)

			for i, exp := range tt.expected {
				token, ok := tok.NextToken()
				if !ok {
					t.Fatalf("token %d: expected token, got none (expected %s: %q)", i, exp.kind, exp.value)
				}
				if token.Kind() != exp.kind {
					t.Errorf("token %d: expected kind %s, got %s (value: %q)", i, exp.kind, token.Kind(), token.ValueString())
				}
				if token.ValueString() != exp.value {
					t.Errorf("token %d: expected value %q, got %q (kind: %s)", i, exp.value, token.ValueString(), token.Kind())
				}
			}

			token, ok := tok.NextToken()
			if ok {
				t.Errorf("expected no more tokens, got %s: %q", token.Kind(), token.ValueString())
			}
		})
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  []string
	}{
		{"empty line", "", DefaultOptions(), []string{""}},
		{"single field", "abc", DefaultOptions(), []string{"abc"}},
		{"empty field in middle", "a,b,,d", DefaultOptions(), []string{"a", "b", "", "d"}},
		{"trailing empty field", "a,b,", DefaultOptions(), []string{"a", "b", ""}},
		{"only delimiters", ",,", DefaultOptions(), []string{"", "", ""}},
		{"escaped delimiter", `a,"b,c",d`, DefaultOptions(), []string{"a", "b,c", "d"}},
		{"escape dropped", `1,"ann","smith"`, DefaultOptions(), []string{"1", "ann", "smith"}},
		{"escape mid field", `ab"c,d"e`, DefaultOptions(), []string{"abc,de"}},
		{"doubled escape is not unescaped", `"say ""hi"""`, DefaultOptions(), []string{"say hi"}},
		{"unterminated escape", `a,"b,c`, DefaultOptions(), []string{"a", "b,c"}},
		{"escaped newline kept", "\"x\ny\",z", DefaultOptions(), []string{"x\ny", "z"}},
		{"spaces kept", " a , b ", DefaultOptions(), []string{" a ", " b "}},
		{"tab delimiter", "a\tb\tc", Options{Comma: '\t', Escape: '"'}, []string{"a", "b", "c"}},
		{"single quote escape", "'a;b';c", Options{Comma: ';', Escape: '\''}, []string{"a;b", "c"}},
		{"no escape", `"a,b"`, Options{Comma: ','}, []string{`"a`, `b"`}},
		{"multibyte content", "héllo,wörld", DefaultOptions(), []string{"héllo", "wörld"}},
		{"latin-1 bytes kept", "caf\xe9,\"x,\xff\"", DefaultOptions(), []string{"caf\xe9", "x,\xff"}},
		{"invalid bytes without escape", "\x80\x81;\xfe", Options{Comma: ';'}, []string{"\x80\x81", "\xfe"}},
		{"invalid bytes with multibyte delimiter", "a\xff§\"§\"", Options{Comma: '§', Escape: '"'}, []string{"a\xff", "§"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitFields(tt.input, tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitFields(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitFields_FieldCount(t *testing.T) {
	// N unescaped delimiters always yield N+1 fields.
	for n := 0; n < 20; n++ {
		line := strings.Repeat("x,", n) + "x"
		got := SplitFields(line, DefaultOptions())
		if len(got) != n+1 {
			t.Errorf("SplitFields(%q) returned %d fields, want %d", line, len(got), n+1)
		}
	}
}
