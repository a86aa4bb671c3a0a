// Package tokenizer provides escape-aware field tokenization using Shape's
// tokenizer framework, and a logical line reader over seekable streams.
package tokenizer

// Token type constants for delimited rows.
//
// Note: The tokenizer emits character-level tokens only. Whether a delimiter
// separates fields or is literal content depends on the escape state, which
// is tracked by SplitFields.
const (
	// Structural tokens
	TokenDelimiter = "Delimiter" // column delimiter
	TokenEscape    = "Escape"    // escape character (toggles literal spans)

	// Field content token
	TokenField = "Field" // run of characters that are neither delimiter nor escape
)
