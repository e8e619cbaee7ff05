package catalog

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleIsValid(t *testing.T) {
	report, err := Check(Sample())
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Findings)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", report.ID.String())
}

func TestDecodeSampleRoundTrip(t *testing.T) {
	doc, err := Decode(Sample())
	require.NoError(t, err)

	assert.Equal(t, int64(1001), doc.Product.ID)
	assert.Equal(t, "Wireless Ergonomic Keyboard", doc.Product.Name)
	assert.True(t, doc.Product.Price.Equal(decimal.RequireFromString("74.99")))
	assert.True(t, doc.Product.InStock)
	assert.True(t, doc.Product.Dimensions.Height.Equal(decimal.RequireFromString("3.2")))
	assert.True(t, doc.Product.Dimensions.Width.Equal(decimal.RequireFromString("44.5")))
	assert.True(t, doc.Product.Dimensions.Depth.Equal(decimal.RequireFromString("13.8")))
	assert.Equal(t, []string{"electronics", "accessories", "ergonomic"}, doc.Product.Tags)

	assert.Equal(t, int64(501), doc.Seller.ID)
	assert.Equal(t, "Keystone Peripherals", doc.Seller.Name)
	assert.True(t, doc.Seller.Rating.Equal(decimal.RequireFromString("4.7")))
	assert.True(t, doc.Seller.Verified)

	require.Len(t, doc.Reviews, 2)
	assert.Equal(t, "Priya", doc.Reviews[0].User)
	assert.Equal(t, 5, doc.Reviews[0].Rating)
	assert.Equal(t, "Marcus", doc.Reviews[1].User)
	assert.Equal(t, 4, doc.Reviews[1].Rating)

	assert.Equal(t, []string{"black", "white", "graphite"}, doc.AvailableColors)
	assert.Nil(t, doc.RelatedProducts)
}

func TestSampleDocument(t *testing.T) {
	doc := SampleDocument()
	require.NotNil(t, doc)
	assert.Equal(t, int64(1001), doc.Product.ID)
}

func TestSampleReturnsCopy(t *testing.T) {
	a := Sample()
	a[0] = 'X'
	b := Sample()
	assert.Equal(t, byte('{'), b[0])
}

func TestDecodeRejectsUnknownTopLevelField(t *testing.T) {
	_, err := Decode([]byte(`{"product": {}, "seller": {}, "reviews": [], "availableColors": [], "extra": 1}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown top-level field "extra"`)
}

func TestDecodeRelatedProducts(t *testing.T) {
	doc := mutateSample(t, func(m map[string]any) {
		m["relatedProducts"] = []any{float64(2002), float64(2003)}
	})
	decoded, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, []int64{2002, 2003}, decoded.RelatedProducts)
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{"product":`))
	require.Error(t, err)
}

// mutateSample decodes the sample to a generic map, applies fn, and encodes
// it back.
func mutateSample(t *testing.T, fn func(map[string]any)) []byte {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(Sample(), &m))
	fn(m)
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return out
}

func findingPaths(report *Report) []string {
	paths := make([]string, len(report.Findings))
	for i, f := range report.Findings {
		paths[i] = f.Path
	}
	return paths
}

func TestCheckMissingFields(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(map[string]any)
		wantPath string
		wantWant string
	}{
		{
			"missing product price",
			func(m map[string]any) { delete(m["product"].(map[string]any), "price") },
			"product.price", "number",
		},
		{
			"missing product name",
			func(m map[string]any) { delete(m["product"].(map[string]any), "name") },
			"product.name", "string",
		},
		{
			"missing dimensions height",
			func(m map[string]any) {
				delete(m["product"].(map[string]any)["dimensions"].(map[string]any), "height")
			},
			"product.dimensions.height", "number",
		},
		{
			"missing seller verified",
			func(m map[string]any) { delete(m["seller"].(map[string]any), "verified") },
			"seller.verified", "boolean",
		},
		{
			"missing review comment",
			func(m map[string]any) {
				delete(m["reviews"].([]any)[1].(map[string]any), "comment")
			},
			"reviews[1].comment", "string",
		},
		{
			"missing seller entirely",
			func(m map[string]any) { delete(m, "seller") },
			"seller", "object",
		},
		{
			"missing reviews",
			func(m map[string]any) { delete(m, "reviews") },
			"reviews", "array",
		},
		{
			"missing available colors",
			func(m map[string]any) { delete(m, "availableColors") },
			"availableColors", "array",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Check(mutateSample(t, tt.mutate))
			require.NoError(t, err)
			assert.False(t, report.Valid)
			require.Len(t, report.Findings, 1, "findings: %v", findingPaths(report))

			f := report.Findings[0]
			assert.Equal(t, tt.wantPath, f.Path)
			assert.Equal(t, tt.wantWant, f.Want)
			assert.Equal(t, "absent", f.Got)
		})
	}
}

func TestCheckWrongTypes(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(map[string]any)
		wantPath string
		wantGot  string
	}{
		{
			"price as string",
			func(m map[string]any) { m["product"].(map[string]any)["price"] = "74.99" },
			"product.price", "string",
		},
		{
			"inStock as number",
			func(m map[string]any) { m["product"].(map[string]any)["inStock"] = float64(1) },
			"product.inStock", "number",
		},
		{
			"product id with fraction",
			func(m map[string]any) { m["product"].(map[string]any)["id"] = 10.5 },
			"product.id", "number",
		},
		{
			"tag as number",
			func(m map[string]any) {
				m["product"].(map[string]any)["tags"] = []any{"a", float64(2)}
			},
			"product.tags[1]", "number",
		},
		{
			"review rating as string",
			func(m map[string]any) {
				m["reviews"].([]any)[0].(map[string]any)["rating"] = "five"
			},
			"reviews[0].rating", "string",
		},
		{
			"review as scalar",
			func(m map[string]any) { m["reviews"] = []any{"great"} },
			"reviews[0]", "string",
		},
		{
			"seller as array",
			func(m map[string]any) { m["seller"] = []any{} },
			"seller", "array",
		},
		{
			"related products as string",
			func(m map[string]any) { m["relatedProducts"] = "none" },
			"relatedProducts", "string",
		},
		{
			"related products with fraction",
			func(m map[string]any) { m["relatedProducts"] = []any{1.5} },
			"relatedProducts[0]", "number",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Check(mutateSample(t, tt.mutate))
			require.NoError(t, err)
			assert.False(t, report.Valid)
			require.Len(t, report.Findings, 1, "findings: %v", findingPaths(report))

			f := report.Findings[0]
			assert.Equal(t, tt.wantPath, f.Path)
			assert.Equal(t, tt.wantGot, f.Got)
		})
	}
}

func TestCheckUnknownMembersAreFindings(t *testing.T) {
	report, err := Check(mutateSample(t, func(m map[string]any) {
		m["product"].(map[string]any)["weight"] = 1.2
	}))
	require.NoError(t, err)
	assert.False(t, report.Valid)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, "product.weight", report.Findings[0].Path)
	assert.Equal(t, "absent", report.Findings[0].Want)
}

func TestCheckNullAndAbsentRelatedProducts(t *testing.T) {
	report, err := Check(mutateSample(t, func(m map[string]any) {
		delete(m, "relatedProducts")
	}))
	require.NoError(t, err)
	assert.True(t, report.Valid)

	report, err = Check(mutateSample(t, func(m map[string]any) {
		m["relatedProducts"] = []any{float64(1), float64(2)}
	}))
	require.NoError(t, err)
	assert.True(t, report.Valid)
}

func TestCheckNonObjectDocument(t *testing.T) {
	report, err := Check([]byte(`[1, 2, 3]`))
	require.NoError(t, err)
	assert.False(t, report.Valid)
	require.NotEmpty(t, report.Findings)
	assert.Equal(t, "document", report.Findings[0].Path)
	assert.Equal(t, "array", report.Findings[0].Got)
}

func TestCheckMalformedDocument(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"truncated", `{"product":`},
		{"trailing comma", `{"a": 1,}`},
		{"bad number", `{"a": 1.2.3}`},
		{"unterminated string", `{"a": "x`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Check([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), "not well formed"))
		})
	}
}
