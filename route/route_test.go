package route

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValues_Clone(t *testing.T) {
	tests := []struct {
		name string
		v    Values
		want Values
	}{
		{"nil", nil, Values{}},
		{"empty", Values{}, Values{}},
		{"populated", Values{"x": "1", KeyApp: "a"}, Values{"x": "1", KeyApp: "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Clone()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Values.Clone() mismatch (-want +got):\n%s", diff)
			}
			got["mutated"] = "yes"
			if _, found := tt.v["mutated"]; found {
				t.Error("clone shares storage with original")
			}
		})
	}
}

func TestValues_Merge(t *testing.T) {
	var v = Values{KeyApp: "app1", KeyID: ""}
	v.Merge(Values{KeyApp: "other", KeyID: "7", "lang": "en"})
	var want = Values{KeyApp: "app1", KeyID: "", "lang": "en"}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("Values.Merge() mismatch (-want +got):\n%s", diff)
	}
}

func TestValues_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Values
		want bool
	}{
		{"nil and empty", nil, Values{}, true},
		{"same", Values{"x": "1"}, Values{"x": "1"}, true},
		{"different value", Values{"x": "1"}, Values{"x": "2"}, false},
		{"extra key", Values{"x": "1"}, Values{"x": "1", "y": ""}, false},
		{"different key", Values{"x": ""}, Values{"y": ""}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Values.Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewValues(t *testing.T) {
	got := NewValues("a", "c", "x", "")
	if len(got) != 4 || got.Get(KeyController) != "c" || got.Get(KeyID) != "" {
		t.Errorf("NewValues() = %v", got)
	}
}

func TestContext_Items(t *testing.T) {
	var (
		req = httptest.NewRequest("GET", "/app1/ctrl1/act1", nil)
		rec = httptest.NewRecorder()
		c   = NewContext(rec, req, nil)
	)
	if c.Path() != "/app1/ctrl1/act1" {
		t.Errorf("Context.Path() = %v", c.Path())
	}
	if c.Values == nil {
		t.Fatal("expected initialized values")
	}

	c.Items[ItemViewName] = "~/apps/app1/template/ctrl1_act1"
	c.Items[ItemController] = "ctrl1"
	r := c.RequestWithItems(context.Background())

	if got := ViewName(r.Context()); got != "~/apps/app1/template/ctrl1_act1" {
		t.Errorf("ViewName() = %v", got)
	}
	if got := Controller(r.Context()); got != "ctrl1" {
		t.Errorf("Controller() = %v", got)
	}

	// later edits must not leak into the already-built request
	c.Items[ItemViewName] = "changed"
	if got := ViewName(r.Context()); got == "changed" {
		t.Error("items were not copied")
	}

	if got := ViewName(context.Background()); got != "" {
		t.Errorf("ViewName() on bare context = %v, want empty", got)
	}
}
