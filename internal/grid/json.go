package grid

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// documentVersion is bumped when the on-disk format changes shape.
const documentVersion = 1

// document is the on-disk envelope around a calculator.
type document struct {
	Version    int         `json:"version"`
	Calculator *Calculator `json:"calculator"`
}

// ToJSON serializes the calculator into w as a self-contained document.
func (c *Calculator) ToJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Version: documentVersion, Calculator: c}); err != nil {
		return fmt.Errorf("failed to serialize grid document: %w", err)
	}
	return nil
}

// FromJSON deserializes a calculator from r. The returned calculator has
// all map invariants re-established regardless of what the document
// contained.
func FromJSON(r io.Reader) (*Calculator, error) {
	var doc document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse grid document: %w", err)
	}
	if doc.Calculator == nil {
		return nil, fmt.Errorf("grid document has no calculator")
	}
	if doc.Version <= 0 || doc.Version > documentVersion {
		return nil, fmt.Errorf("unsupported grid document version %d", doc.Version)
	}
	c := doc.Calculator
	if c.ID == "" {
		c.ID = uuid.New().String()[:8]
	}
	c.Normalize()
	return c, nil
}
