package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func TestNormalizeField(t *testing.T) {
	tests := []struct{ in, want string }{
		{"disk.size", "disk_size"},
		{"disk_size", "disk_size"},
		{"beparams.auto_balance", "beparams_auto_balance"},
		{"a.b.c", "a_b_c"},
		{"plain", "plain"},
	}
	for _, tc := range tests {
		got := normalizeField(tc.in)
		if got != tc.want {
			t.Errorf("normalizeField(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if again := normalizeField(got); again != got {
			t.Errorf("normalizeField(%q) not idempotent, got %q", got, again)
		}
	}
}

func TestMaterialize_NormalizesFieldNames(t *testing.T) {
	doc := orderedmap.New[string, any]()
	doc.Set("name", "vm1.example.com")
	doc.Set("disk.size", json.Number("20480"))
	doc.Set("beparams.memory", json.Number("512"))

	r, err := Materialize(KindInstance, doc)
	if err != nil {
		t.Fatalf("Materialize returned error: %v", err)
	}
	if got := r.GetString("disk_size"); got != "20480" {
		t.Errorf("disk_size = %q, want 20480", got)
	}
	// The wire spelling resolves to the same field.
	if got := r.GetString("disk.size"); got != "20480" {
		t.Errorf("disk.size lookup = %q, want 20480", got)
	}
	if !r.Has("beparams_memory") {
		t.Error("beparams_memory missing after normalization")
	}
	if got := r.GetString("name"); got != "vm1.example.com" {
		t.Errorf("name = %q, want vm1.example.com", got)
	}
}

func TestMaterialize_FieldOrder(t *testing.T) {
	doc := orderedmap.New[string, any]()
	doc.Set("zeta", json.Number("1"))
	doc.Set("alpha", json.Number("2"))
	doc.Set("mid.dle", json.Number("3"))

	r, err := Materialize(KindNode, doc)
	if err != nil {
		t.Fatalf("Materialize returned error: %v", err)
	}
	want := []string{"zeta", "alpha", "mid_dle"}
	if got := r.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
}

func TestMaterialize_CollisionLastWins(t *testing.T) {
	doc := orderedmap.New[string, any]()
	doc.Set("disk.size", json.Number("100"))
	doc.Set("disk_size", json.Number("200"))

	r, err := Materialize(KindInstance, doc)
	if err != nil {
		t.Fatalf("Materialize returned error: %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after collision", r.Len())
	}
	if n, ok := r.GetInt("disk_size"); !ok || n != 200 {
		t.Errorf("disk_size = %d (ok=%v), want 200", n, ok)
	}
}

func TestMaterialize_PlainMap(t *testing.T) {
	r, err := Materialize(KindInfo, map[string]any{
		"cluster.name": "herd1",
		"master":       "node1.example.com",
	})
	if err != nil {
		t.Fatalf("Materialize returned error: %v", err)
	}
	if got := r.GetString("cluster_name"); got != "herd1" {
		t.Errorf("cluster_name = %q, want herd1", got)
	}
	if got := r.GetString("master"); got != "node1.example.com" {
		t.Errorf("master = %q, want node1.example.com", got)
	}
}

func TestMaterialize_RejectsNonObject(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"string", "vm1"},
		{"number", json.Number("3")},
		{"array", []any{}},
		{"null", nil},
		{"bool", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Materialize(KindInstance, tc.in)
			var shape *ShapeError
			if !errors.As(err, &shape) {
				t.Fatalf("error = %v, want ShapeError", err)
			}
		})
	}
}

func TestMaterializeList_PreservesOrder(t *testing.T) {
	var arr []any
	for i := 0; i < 5; i++ {
		doc := orderedmap.New[string, any]()
		doc.Set("id", fmt.Sprintf("node%d", i))
		arr = append(arr, doc)
	}
	rs, err := MaterializeList(KindNode, arr)
	if err != nil {
		t.Fatalf("MaterializeList returned error: %v", err)
	}
	if len(rs) != 5 {
		t.Fatalf("materialized %d resources, want 5", len(rs))
	}
	for i, r := range rs {
		if got, want := r.GetString("id"), fmt.Sprintf("node%d", i); got != want {
			t.Errorf("element %d id = %q, want %q", i, got, want)
		}
	}
}

func TestMaterializeList_RejectsNonObjectElement(t *testing.T) {
	doc := orderedmap.New[string, any]()
	doc.Set("id", "node0")
	_, err := MaterializeList(KindNode, []any{doc, "node1"})
	var shape *ShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("error = %v, want ShapeError", err)
	}
}

func TestResource_TypedGetters(t *testing.T) {
	doc := orderedmap.New[string, any]()
	doc.Set("mfree", json.Number("2048"))
	doc.Set("cload", json.Number("0.85"))
	doc.Set("offline", false)
	doc.Set("tags", []any{"prod", "web"})
	doc.Set("master", nil)

	r, err := Materialize(KindNode, doc)
	if err != nil {
		t.Fatalf("Materialize returned error: %v", err)
	}
	if n, ok := r.GetInt("mfree"); !ok || n != 2048 {
		t.Errorf("GetInt(mfree) = %d, %v, want 2048, true", n, ok)
	}
	if f, ok := r.GetFloat("cload"); !ok || f != 0.85 {
		t.Errorf("GetFloat(cload) = %v, %v, want 0.85, true", f, ok)
	}
	if b, ok := r.GetBool("offline"); !ok || b {
		t.Errorf("GetBool(offline) = %v, %v, want false, true", b, ok)
	}
	if got := r.GetStrings("tags"); !reflect.DeepEqual(got, []string{"prod", "web"}) {
		t.Errorf("GetStrings(tags) = %v, want [prod web]", got)
	}
	if got := r.GetString("master"); got != "" {
		t.Errorf("GetString(master) = %q, want empty for null", got)
	}
	if _, ok := r.GetInt("cload"); ok {
		t.Error("GetInt on a fractional number should report false")
	}
	if _, ok := r.Get("mtotal"); ok {
		t.Error("Get on a missing field should report false")
	}
}

func TestResource_MarshalJSON_KeepsOrder(t *testing.T) {
	doc := orderedmap.New[string, any]()
	doc.Set("zeta", json.Number("1"))
	doc.Set("alpha", "x")

	r, err := Materialize(KindInfo, doc)
	if err != nil {
		t.Fatalf("Materialize returned error: %v", err)
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(b) != `{"zeta":1,"alpha":"x"}` {
		t.Errorf("Marshal = %s, want fields in document order", b)
	}
}

func TestRegisterKind_ConcurrentIdempotent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc := orderedmap.New[string, any]()
			doc.Set("name", "vm")
			if _, err := Materialize(KindInstance, doc); err != nil {
				t.Errorf("Materialize returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	seen := 0
	for _, k := range RegisteredKinds() {
		if k == KindInstance {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("kind registered %d times, want exactly once", seen)
	}
}
