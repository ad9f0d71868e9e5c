package deeplinks

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/tidwall/sjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Decoder turns raw query parameters into a typed value. v is always a
// non-nil pointer to the deeplink's parameter type.
type Decoder interface {
	Decode(raw map[string]string, v any) error
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(raw map[string]string, v any) error

func (f DecoderFunc) Decode(raw map[string]string, v any) error {
	return f(raw, v)
}

// Validator is implemented by parameter types that have required fields or
// other constraints. JSONDecoder calls Validate after filling the value.
type Validator interface {
	Validate() error
}

// JSONDecoder is the default Decoder. Keys are converted from snake_case to
// camelCase, every value is a JSON string, and the resulting document is
// unmarshalled with encoding/json, so fields match keys case-insensitively
// and may use json tags:
//
//	type ItemParameters struct {
//	    ItemID string `json:"itemId"` // ?item_id=42
//	}
type JSONDecoder struct{}

func (JSONDecoder) Decode(raw map[string]string, v any) error {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		if key != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	doc := "{}"
	for _, key := range keys {
		var err error
		doc, err = sjson.Set(doc, escapeDocumentKey(SnakeToCamel(key)), raw[key])
		if err != nil {
			return fmt.Errorf("deeplinks: set parameter %q: %w", key, err)
		}
	}

	if err := json.Unmarshal([]byte(doc), v); err != nil {
		return fmt.Errorf("deeplinks: decode parameters: %w", err)
	}

	if validator, ok := v.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("deeplinks: validate parameters: %w", err)
		}
	}
	return nil
}

// SnakeToCamel converts "sample_parameter" into "sampleParameter". The first
// word is lower-cased, following words are title-cased, and leading or
// trailing underscores are kept. Keys without underscores are unchanged.
func SnakeToCamel(key string) string {
	if !strings.Contains(key, "_") {
		return key
	}

	start := 0
	for start < len(key) && key[start] == '_' {
		start++
	}
	end := len(key)
	for end > start && key[end-1] == '_' {
		end--
	}
	if start == end {
		return key
	}

	words := strings.Split(key[start:end], "_")

	var b strings.Builder
	b.WriteString(key[:start])
	b.WriteString(cases.Lower(language.Und).String(words[0]))
	for _, word := range words[1:] {
		if word == "" {
			continue
		}
		b.WriteString(cases.Title(language.Und).String(word))
	}
	b.WriteString(key[end:])
	return b.String()
}

// escapeDocumentKey protects characters that sjson reads as path syntax.
func escapeDocumentKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
