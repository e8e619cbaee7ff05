package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"jsonlens/internal/ast"
	"jsonlens/internal/parser"
)

// Finding is one schema violation: a member that is missing, has the wrong
// JSON type, or is not part of the document shape.
type Finding struct {
	Path string `json:"path"`
	Want string `json:"want"`
	Got  string `json:"got"`
	Msg  string `json:"msg"`
}

// Report is the outcome of a schema check.
type Report struct {
	ID       uuid.UUID `json:"id"`
	Valid    bool      `json:"valid"`
	Findings []Finding `json:"findings"`
}

// Check verifies that data is a well-formed document matching the catalog
// shape. Lexical and syntax errors are returned as errors; shape violations
// are reported as findings. The shape is fixed: this is not a configurable
// validation engine.
func Check(data []byte) (*Report, error) {
	result, err := parser.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("document is not well formed: %w", err)
	}

	return CheckAST(result.AST), nil
}

// CheckAST runs the shape check over an already-parsed document.
func CheckAST(root ast.Node) *Report {
	c := &checker{}
	c.checkDocument(root)

	return &Report{
		ID:       uuid.New(),
		Valid:    len(c.findings) == 0,
		Findings: c.findings,
	}
}

type checker struct {
	findings []Finding
}

func (c *checker) add(path, want, got, msg string) {
	c.findings = append(c.findings, Finding{Path: path, Want: want, Got: got, Msg: msg})
}

func (c *checker) missing(path, want string) {
	c.add(path, want, "absent", fmt.Sprintf("required member %q is missing", path))
}

func (c *checker) wrongType(path, want string, got ast.Node) {
	c.add(path, want, kindOf(got), fmt.Sprintf("member %q must be of type %s", path, want))
}

func (c *checker) unexpected(path string, got ast.Node) {
	c.add(path, "absent", kindOf(got), fmt.Sprintf("member %q is not part of the document", path))
}

// kindOf names the JSON type of a node the way findings report it.
func kindOf(n ast.Node) string {
	switch n.(type) {
	case *ast.Object:
		return "object"
	case *ast.Array:
		return "array"
	case *ast.String:
		return "string"
	case *ast.Number:
		return "number"
	case *ast.Bool:
		return "boolean"
	case ast.Null:
		return "null"
	default:
		return "unknown"
	}
}

// isInteger reports whether a number was written as an integer literal.
func isInteger(n *ast.Number) bool {
	return !strings.ContainsAny(n.Raw, ".eE")
}

func (c *checker) checkDocument(root ast.Node) {
	doc, ok := root.(*ast.Object)
	if !ok {
		c.wrongType("document", "object", root)
		return
	}

	for _, m := range doc.Members {
		if !topLevelFields[m.Key] {
			c.unexpected(m.Key, m.Value)
		}
	}

	if product := c.member(doc, "", "product", "object"); product != nil {
		c.checkProduct(product)
	}
	if seller := c.member(doc, "", "seller", "object"); seller != nil {
		c.checkSeller(seller)
	}
	c.checkReviews(doc)
	c.checkStringArray(doc, "availableColors")
	c.checkRelatedProducts(doc)
}

// member fetches a required object-valued member, recording a finding and
// returning nil when it is missing or not an object.
func (c *checker) member(obj *ast.Object, prefix, key, want string) *ast.Object {
	path := joinPath(prefix, key)
	node := obj.Lookup(key)
	if node == nil {
		c.missing(path, want)
		return nil
	}
	inner, ok := node.(*ast.Object)
	if !ok {
		c.wrongType(path, want, node)
		return nil
	}
	return inner
}

func (c *checker) checkProduct(product *ast.Object) {
	c.checkFields(product, "product", []fieldSpec{
		{"id", "integer"},
		{"name", "string"},
		{"price", "number"},
		{"inStock", "boolean"},
		{"dimensions", "object"},
		{"tags", "array"},
	})

	if dims := product.Lookup("dimensions"); dims != nil {
		if obj, ok := dims.(*ast.Object); ok {
			c.checkFields(obj, "product.dimensions", []fieldSpec{
				{"height", "number"},
				{"width", "number"},
				{"depth", "number"},
			})
		}
	}

	if tags := product.Lookup("tags"); tags != nil {
		if arr, ok := tags.(*ast.Array); ok {
			c.checkElements(arr, "product.tags", "string")
		}
	}
}

func (c *checker) checkSeller(seller *ast.Object) {
	c.checkFields(seller, "seller", []fieldSpec{
		{"id", "integer"},
		{"name", "string"},
		{"rating", "number"},
		{"verified", "boolean"},
	})
}

func (c *checker) checkReviews(doc *ast.Object) {
	node := doc.Lookup("reviews")
	if node == nil {
		c.missing("reviews", "array")
		return
	}
	arr, ok := node.(*ast.Array)
	if !ok {
		c.wrongType("reviews", "array", node)
		return
	}

	for i, elem := range arr.Elements {
		path := fmt.Sprintf("reviews[%d]", i)
		review, ok := elem.(*ast.Object)
		if !ok {
			c.wrongType(path, "object", elem)
			continue
		}
		c.checkFields(review, path, []fieldSpec{
			{"id", "integer"},
			{"user", "string"},
			{"rating", "integer"},
			{"comment", "string"},
		})
	}
}

func (c *checker) checkStringArray(doc *ast.Object, key string) {
	node := doc.Lookup(key)
	if node == nil {
		c.missing(key, "array")
		return
	}
	arr, ok := node.(*ast.Array)
	if !ok {
		c.wrongType(key, "array", node)
		return
	}
	c.checkElements(arr, key, "string")
}

// checkRelatedProducts accepts null, an absent member, or an array of
// integer product IDs.
func (c *checker) checkRelatedProducts(doc *ast.Object) {
	node := doc.Lookup("relatedProducts")
	if node == nil {
		return
	}
	if _, ok := node.(ast.Null); ok {
		return
	}
	arr, ok := node.(*ast.Array)
	if !ok {
		c.wrongType("relatedProducts", "null or array", node)
		return
	}
	c.checkElements(arr, "relatedProducts", "integer")
}

// fieldSpec names one required member and its JSON type.
type fieldSpec struct {
	key  string
	kind string
}

// checkFields verifies presence and type of every wanted member of obj, and
// flags members outside the wanted set. Findings keep the declared field
// order so reports are deterministic.
func (c *checker) checkFields(obj *ast.Object, prefix string, want []fieldSpec) {
	known := make(map[string]bool, len(want))
	for _, f := range want {
		known[f.key] = true
		path := joinPath(prefix, f.key)
		node := obj.Lookup(f.key)
		if node == nil {
			c.missing(path, f.kind)
			continue
		}
		c.checkKind(path, f.kind, node)
	}
	for _, m := range obj.Members {
		if !known[m.Key] {
			c.unexpected(joinPath(prefix, m.Key), m.Value)
		}
	}
}

func (c *checker) checkElements(arr *ast.Array, prefix, kind string) {
	for i, elem := range arr.Elements {
		c.checkKind(fmt.Sprintf("%s[%d]", prefix, i), kind, elem)
	}
}

func (c *checker) checkKind(path, want string, node ast.Node) {
	switch want {
	case "integer":
		num, ok := node.(*ast.Number)
		if !ok || !isInteger(num) {
			c.wrongType(path, want, node)
		}
	case "number":
		if _, ok := node.(*ast.Number); !ok {
			c.wrongType(path, want, node)
		}
	case "string":
		if _, ok := node.(*ast.String); !ok {
			c.wrongType(path, want, node)
		}
	case "boolean":
		if _, ok := node.(*ast.Bool); !ok {
			c.wrongType(path, want, node)
		}
	case "object":
		if _, ok := node.(*ast.Object); !ok {
			c.wrongType(path, want, node)
		}
	case "array":
		if _, ok := node.(*ast.Array); !ok {
			c.wrongType(path, want, node)
		}
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
