// Package catalog defines the typed model of the catalog document (one
// product, its seller, the reviews left on it) and the fixed-shape schema
// check for that document.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

//go:embed testdata/sample.json
var sampleJSON []byte

// Dimensions are the physical dimensions of a product.
type Dimensions struct {
	Height decimal.Decimal `json:"height"`
	Width  decimal.Decimal `json:"width"`
	Depth  decimal.Decimal `json:"depth"`
}

// Product is the item the document describes.
type Product struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	InStock    bool            `json:"inStock"`
	Dimensions Dimensions      `json:"dimensions"`
	Tags       []string        `json:"tags"`
}

// Seller is the party offering the product.
type Seller struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Rating   decimal.Decimal `json:"rating"`
	Verified bool            `json:"verified"`
}

// Review is a single customer review. Reviews keep document order.
type Review struct {
	ID      int64  `json:"id"`
	User    string `json:"user"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Document is one catalog document: an immutable snapshot of a product, its
// seller and its reviews. RelatedProducts is nullable; both null and an
// absent member decode to nil.
type Document struct {
	Product         Product  `json:"product"`
	Seller          Seller   `json:"seller"`
	Reviews         []Review `json:"reviews"`
	AvailableColors []string `json:"availableColors"`
	RelatedProducts []int64  `json:"relatedProducts"`
}

// topLevelFields are the only members a document may carry at the top level.
var topLevelFields = map[string]bool{
	"product":         true,
	"seller":          true,
	"reviews":         true,
	"availableColors": true,
	"relatedProducts": true,
}

// Decode unmarshals a catalog document. Unknown members are rejected at the
// top level only; deeper unknowns are the checker's concern, not a decode
// failure.
func Decode(data []byte) (*Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	for key := range raw {
		if !topLevelFields[key] {
			return nil, fmt.Errorf("unknown top-level field %q", key)
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &doc, nil
}

// Sample returns a copy of the canonical sample document.
func Sample() []byte {
	out := make([]byte, len(sampleJSON))
	copy(out, sampleJSON)
	return out
}

// SampleDocument returns the decoded canonical sample document.
func SampleDocument() *Document {
	doc, err := Decode(sampleJSON)
	if err != nil {
		// The sample is embedded at build time and covered by tests.
		panic(fmt.Sprintf("embedded sample document is invalid: %v", err))
	}
	return doc
}
