package client

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func TestDecodeBody_Object(t *testing.T) {
	v, err := decodeBody([]byte(`{"beta": 2, "alpha": 1}`))
	if err != nil {
		t.Fatalf("decodeBody returned error: %v", err)
	}
	obj, ok := v.(*orderedmap.OrderedMap[string, any])
	if !ok {
		t.Fatalf("decoded %T, want ordered map", v)
	}
	var keys []string
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	if !reflect.DeepEqual(keys, []string{"beta", "alpha"}) {
		t.Errorf("keys = %v, want document order [beta alpha]", keys)
	}
	if got, _ := obj.Get("beta"); got != json.Number("2") {
		t.Errorf("beta = %v (%T), want json.Number 2", got, got)
	}
}

func TestDecodeBody_Scalars(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{"number", `3`, json.Number("3")},
		{"float", `2.5`, json.Number("2.5")},
		{"string", `"up"`, "up"},
		{"bool", `true`, true},
		{"null", `null`, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := decodeBody([]byte(tc.body))
			if err != nil {
				t.Fatalf("decodeBody(%s) returned error: %v", tc.body, err)
			}
			if v != tc.want {
				t.Errorf("decodeBody(%s) = %v (%T), want %v", tc.body, v, v, tc.want)
			}
		})
	}
}

func TestDecodeBody_Nested(t *testing.T) {
	v, err := decodeBody([]byte(`{"nodes": [{"name": "n1"}, {"name": "n2"}], "count": 2}`))
	if err != nil {
		t.Fatalf("decodeBody returned error: %v", err)
	}
	obj := v.(*orderedmap.OrderedMap[string, any])
	nodes, ok := obj.Get("nodes")
	if !ok {
		t.Fatal("nodes field missing")
	}
	arr, ok := nodes.([]any)
	if !ok || len(arr) != 2 {
		t.Fatalf("nodes = %v, want array of 2", nodes)
	}
	first, ok := arr[0].(*orderedmap.OrderedMap[string, any])
	if !ok {
		t.Fatalf("nodes[0] = %T, want ordered map", arr[0])
	}
	if name, _ := first.Get("name"); name != "n1" {
		t.Errorf("nodes[0].name = %v, want n1", name)
	}
}

func TestDecodeBody_FragmentFallback(t *testing.T) {
	// A few endpoints emit bare comma-separated fragments; the wrapped
	// re-parse keeps the first value, the way the master reads them.
	v, err := decodeBody([]byte(`"up", "down"`))
	if err != nil {
		t.Fatalf("decodeBody returned error: %v", err)
	}
	if v != "up" {
		t.Errorf("decoded %v, want up", v)
	}
}

func TestDecodeBody_Undecodable(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"garbage", `not json at all {`},
		{"two values", `{"a": 1} {"b": 2}`},
		{"empty", ``},
		{"whitespace", `   `},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeBody([]byte(tc.body))
			var decErr *DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("decodeBody(%q) error = %v, want DecodeError", tc.body, err)
			}
		})
	}
}
