// Package source loads raw token documents from disk and merges them into a
// single token stream for the engine.
package source

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gnana997/tokenspec/pkg/token"
	"github.com/gnana997/tokenspec/pkg/util"
)

// Document is the on-disk JSON format for a batch of raw tokens. A
// document-level source fills in any token that does not carry its own.
type Document struct {
	Name    string           `json:"name,omitempty"`
	Version string           `json:"version,omitempty"`
	Source  string           `json:"source,omitempty"`
	Tokens  []token.RawToken `json:"tokens"`
}

// Validate checks the document for internal consistency.
// Returns a slice of validation errors (empty slice if valid).
func (d *Document) Validate() []error {
	var errs []error

	if len(d.Tokens) == 0 {
		errs = append(errs, fmt.Errorf("document has no tokens"))
	}

	for i, t := range d.Tokens {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("tokens[%d]: name is required", i))
		}
		if t.Value == nil {
			errs = append(errs, fmt.Errorf("tokens[%d] (%q): value is required", i, t.Name))
		}
		if t.Source == "" && d.Source == "" {
			errs = append(errs, fmt.Errorf("tokens[%d] (%q): source is required when the document has none", i, t.Name))
		}
	}

	return errs
}

// RawTokens returns the document's tokens with the document-level source
// applied to any token missing its own.
func (d *Document) RawTokens() []token.RawToken {
	out := make([]token.RawToken, len(d.Tokens))
	copy(out, d.Tokens)
	for i := range out {
		if out[i].Source == "" {
			out[i].Source = d.Source
		}
	}
	return out
}

// LoadFromBytes parses a document from raw JSON and validates it.
func LoadFromBytes(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse token document: %w", err)
	}

	if errs := doc.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("token document validation failed: %w", errors.Join(errs...))
	}

	return &doc, nil
}

// LoadFromFile reads and parses a token document. The reader maps the file
// into memory; parsing copies everything it keeps, so the mapping is released
// before returning.
func LoadFromFile(path string, reader *util.FileReader) (*Document, error) {
	data, release, err := reader.ReadFile(path)
	if err != nil {
		return nil, err
	}
	defer release()

	doc, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
