package document

import (
	"encoding/json"
	"fmt"

	"github.com/figofit/itfit-mvp-lite/internal/model"
)

// Encode serializes the document in the compact form stored under the canonical key.
func Encode(doc model.Document) ([]byte, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}

// EncodePretty serializes the document as the two-space indented backup format.
func EncodePretty(doc model.Document) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}
