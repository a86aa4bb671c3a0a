package tokenizer

import (
	"strings"
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Options configures the tokenizer behavior.
//
// Field text is kept byte for byte. Lines that are not valid UTF-8 are split
// without the rune-based tokenizer, which would replace invalid bytes.
type Options struct {
	// Comma is the column delimiter. Default: ','
	Comma rune
	// Escape toggles literal spans in which Comma is not a separator.
	// 0 disables escaping. Default: '"'
	Escape rune
}

// DefaultOptions returns default tokenizer options.
func DefaultOptions() Options {
	return Options{
		Comma:  ',',
		Escape: '"',
	}
}

// NewTokenizer creates a tokenizer with the default delimiter and escape.
func NewTokenizer() tokenizer.Tokenizer {
	return NewTokenizerWithOptions(DefaultOptions())
}

// NewTokenizerWithOptions creates a tokenizer with custom options.
//
// Matchers, in order:
// 1. Column delimiter
// 2. Escape character (when enabled)
// 3. Field content (any other character, including CR and LF)
func NewTokenizerWithOptions(opts Options) tokenizer.Tokenizer {
	matchers := []tokenizer.Matcher{
		tokenizer.StringMatcherFunc(TokenDelimiter, string(opts.Comma)),
	}
	if opts.Escape != 0 {
		matchers = append(matchers, tokenizer.StringMatcherFunc(TokenEscape, string(opts.Escape)))
	}
	matchers = append(matchers, FieldContentMatcher(opts))

	return tokenizer.NewTokenizerWithoutWhitespace(matchers...)
}

// FieldContentMatcher creates a matcher for field content.
// Matches runs of characters that are not the delimiter or the escape.
//
// Grammar:
//
//	Field = Character+ ;
//	Character = <any character except delimiter, escape> ;
//
// Record delimiters are not special here: lines reach the tokenizer already
// split, and a record delimiter inside an escaped span is field content.
func FieldContentMatcher(opts Options) tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if opts.Comma < 128 && opts.Escape < 128 {
			if byteStream, ok := stream.(tokenizer.ByteStream); ok {
				return fieldContentMatcherByte(byteStream, byte(opts.Comma), byte(opts.Escape), opts.Escape != 0)
			}
		}
		return fieldContentMatcherRune(stream, opts)
	}
}

// fieldContentMatcherByte uses ByteStream for ASCII delimiters.
func fieldContentMatcherByte(stream tokenizer.ByteStream, delim, escape byte, escaping bool) *tokenizer.Token {
	startPos := stream.BytePosition()

	for {
		b, ok := stream.PeekByte()
		if !ok {
			break
		}
		if b == delim || (escaping && b == escape) {
			break
		}
		stream.NextByte()
	}

	if stream.BytePosition() == startPos {
		return nil
	}

	value := stream.SliceFrom(startPos)
	return tokenizer.NewToken(TokenField, []rune(string(value)))
}

// fieldContentMatcherRune is the fallback rune-based implementation.
func fieldContentMatcherRune(stream tokenizer.Stream, opts Options) *tokenizer.Token {
	var value []rune

	for {
		r, ok := stream.PeekChar()
		if !ok {
			break
		}
		if r == opts.Comma || (opts.Escape != 0 && r == opts.Escape) {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}

	if len(value) == 0 {
		return nil
	}

	return tokenizer.NewToken(TokenField, value)
}

// SplitFields splits a single record into raw fields.
//
// The escape character toggles an "escaped" state and is dropped from the
// output; while escaped, the column delimiter is kept as content. The final
// field is always closed, so a line with N unescaped delimiters yields N+1
// fields. An unterminated escaped span is accepted as is. Field bytes are
// returned unchanged, valid UTF-8 or not.
func SplitFields(line string, opts Options) []string {
	if !utf8.ValidString(line) {
		return splitBytes(line, opts)
	}
	return splitTokens(line, opts)
}

// splitTokens splits a valid UTF-8 line with the matcher tokenizer.
func splitTokens(line string, opts Options) []string {
	fields := make([]string, 0, 8)
	var field strings.Builder
	escaped := false

	tok := NewTokenizerWithOptions(opts)
	tok.Initialize(line)

	for {
		token, ok := tok.NextToken()
		if !ok {
			break
		}

		switch token.Kind() {
		case TokenEscape:
			escaped = !escaped
		case TokenDelimiter:
			if escaped {
				field.WriteString(token.ValueString())
				continue
			}
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteString(token.ValueString())
		}
	}

	return append(fields, field.String())
}

// splitBytes applies the same rules as splitTokens directly to the bytes
// of line.
func splitBytes(line string, opts Options) []string {
	comma := string(opts.Comma)
	escape := ""
	if opts.Escape != 0 {
		escape = string(opts.Escape)
	}

	fields := make([]string, 0, 8)
	var field strings.Builder
	escaped := false

	for i := 0; i < len(line); {
		switch rest := line[i:]; {
		case strings.HasPrefix(rest, comma):
			if escaped {
				field.WriteString(comma)
			} else {
				fields = append(fields, field.String())
				field.Reset()
			}
			i += len(comma)
		case escape != "" && strings.HasPrefix(rest, escape):
			escaped = !escaped
			i += len(escape)
		default:
			field.WriteByte(line[i])
			i++
		}
	}

	return append(fields, field.String())
}
