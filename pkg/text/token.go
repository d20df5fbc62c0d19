package text

import (
	"strings"

	"github.com/matzehuels/multiplex/pkg/style"
)

// Token is one word or punctuation mark of annotated text.
//
// Style is layered over the block style for this token only. Label, when
// set, names the category the token belongs to and is used for legend
// entries.
type Token struct {
	Text  string         `json:"text" toml:"text" yaml:"text"`
	Style style.Override `json:"style,omitzero" toml:"style" yaml:"style"`
	Label string         `json:"label,omitempty" toml:"label" yaml:"label"`
}

// Plain wraps bare strings as unstyled tokens.
func Plain(words ...string) []Token {
	tokens := make([]Token, len(words))
	for i, w := range words {
		tokens[i] = Token{Text: w}
	}
	return tokens
}

// Split breaks s on whitespace into unstyled tokens.
func Split(s string) []Token {
	return Plain(strings.Fields(s)...)
}

// punctuation marks attach to the preceding word: no word spacing is
// inserted before them and justified lines do not stretch them.
var punctuation = map[string]bool{
	",": true, ".": true, "?": true, "!": true,
	"'": true, `"`: true, ")": true,
}

// IsPunctuation reports whether t is a punctuation token.
func IsPunctuation(t string) bool {
	return punctuation[t]
}
