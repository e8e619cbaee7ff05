package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"jsonlens/internal/ast"
)

func TestParseBytesValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty object", `{}`},
		{"empty array", `[]`},
		{"flat object", `{"a": 1, "b": "x"}`},
		{"flat array", `[1, 2, 3]`},
		{"nested containers", `{"a": {"b": [1, {"c": null}]}}`},
		{"all scalar kinds", `{"s": "v", "n": 1.5, "t": true, "f": false, "z": null}`},
		{"array of arrays", `[[], [1], [[2]]]`},
		{"surrounding whitespace", "  \n {\"a\": 1} \n "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseBytes([]byte(tt.input))
			if err != nil {
				t.Fatalf("ParseBytes(%q) failed: %v", tt.input, err)
			}
			if result.Tree == nil || result.AST == nil {
				t.Fatal("result missing tree or AST")
			}
			if result.Tree.Label != "StartOfParseTree" {
				t.Errorf("root label = %q", result.Tree.Label)
			}
		})
	}
}

func TestParseBytesErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantMsg   string
		wantIndex int
	}{
		{"scalar document", `1`, "illegal start of document", 0},
		{"string document", `"hello"`, "illegal start of document", 0},
		{"empty input", ``, "unexpected end of input", 0},
		{"truncated object", `{"a": 1`, "unexpected end of input", 4},
		{"truncated after brace", `{`, "unexpected end of input", 1},
		{"truncated array", `[1, 2`, "unexpected end of input", 4},
		{"number key", `{1: 2}`, "object key must be a string", 1},
		{"missing colon", `{"a" 1}`, "expected ':' after object key", 2},
		{"colon replaced by comma", `{"a", 1}`, "expected ':' after object key", 2},
		{"trailing comma in object", `{"a": 1,}`, "trailing comma before end of object", 5},
		{"trailing comma in array", `[1,]`, "trailing comma before end of array", 3},
		{"missing comma in object", `{"a": 1 "b": 2}`, "expected ',' or '}' after object member", 4},
		{"missing comma in array", `[1 2]`, "expected ',' or ']' after array element", 2},
		{"close mismatch", `{"a": 1]`, "expected ',' or '}' after object member", 4},
		{"value is a colon", `{"a": :}`, "expected a value", 3},
		{"trailing tokens", `{"a": 1} 2`, "unexpected trailing tokens", 5},
		{"two documents", `[] []`, "unexpected trailing tokens", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.input))
			if err == nil {
				t.Fatalf("ParseBytes(%q) succeeded, want error", tt.input)
			}
			var parseErr *Error
			if !errors.As(err, &parseErr) {
				t.Fatalf("error is %T, want *Error: %v", err, err)
			}
			if !strings.Contains(parseErr.Msg, tt.wantMsg) {
				t.Errorf("error msg = %q, want it to contain %q", parseErr.Msg, tt.wantMsg)
			}
			if parseErr.Index != tt.wantIndex {
				t.Errorf("error index = %d, want %d", parseErr.Index, tt.wantIndex)
			}
		})
	}
}

func TestLexicalErrorsPropagate(t *testing.T) {
	_, err := ParseBytes([]byte(`{"a": tru}`))
	if err == nil {
		t.Fatal("want lexical error")
	}
	if !strings.Contains(err.Error(), "invalid keyword") {
		t.Errorf("error = %q, want invalid keyword", err)
	}
}

func TestParseTreeShape(t *testing.T) {
	result, err := ParseBytes([]byte(`{"a": [1, true]}`))
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}

	want := strings.Join([]string{
		"- Node: StartOfParseTree",
		"  - Node: dict",
		"    - Leaf: {",
		"    - Leaf: STRING",
		"    - Leaf: :",
		"    - Node: list",
		"      - Leaf: [",
		"      - Leaf: NUMBER",
		"      - Leaf: ,",
		"      - Leaf: KEYWORD",
		"      - Leaf: ]",
		"    - Leaf: }",
		"",
	}, "\n")
	if got := result.Tree.String(); got != want {
		t.Errorf("tree mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestEmptyContainerTreeShape(t *testing.T) {
	result, err := ParseBytes([]byte(`{}`))
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	want := strings.Join([]string{
		"- Node: StartOfParseTree",
		"  - Node: dict",
		"    - Leaf: {",
		"    - Leaf: }",
		"",
	}, "\n")
	if got := result.Tree.String(); got != want {
		t.Errorf("tree mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}

	obj, ok := result.AST.(*ast.Object)
	if !ok || len(obj.Members) != 0 {
		t.Errorf("AST = %#v, want empty object", result.AST)
	}
}

func TestASTStructure(t *testing.T) {
	result, err := ParseBytes([]byte(`{"name": "lamp", "price": 12.5, "ok": true, "ref": null, "tags": ["a", "b"]}`))
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}

	got := result.AST.Interface()
	want := map[string]any{
		"name":  "lamp",
		"price": 12.5,
		"ok":    true,
		"ref":   nil,
		"tags":  []any{"a", "b"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Interface() = %#v, want %#v", got, want)
	}

	obj := result.AST.(*ast.Object)
	keys := make([]string, len(obj.Members))
	for i, m := range obj.Members {
		keys[i] = m.Key
	}
	wantKeys := []string{"name", "price", "ok", "ref", "tags"}
	if !reflect.DeepEqual(keys, wantKeys) {
		t.Errorf("member order = %v, want %v", keys, wantKeys)
	}
}

func TestNumberKeepsRawLexeme(t *testing.T) {
	result, err := ParseBytes([]byte(`[1e3]`))
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	arr := result.AST.(*ast.Array)
	num := arr.Elements[0].(*ast.Number)
	if num.Raw != "1e3" || num.Value != 1000 {
		t.Errorf("number = {Raw: %q, Value: %v}, want {1e3, 1000}", num.Raw, num.Value)
	}
}
