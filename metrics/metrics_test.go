package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/RTradeLtd/Dispatch/action"
	"github.com/RTradeLtd/Dispatch/resolver"
	"github.com/RTradeLtd/Dispatch/route"
)

func TestCollector_Record(t *testing.T) {
	var c = New()
	c.Record(resolver.Result{Outcome: resolver.Matched, Dynamic: true}, time.Millisecond)
	c.Record(resolver.Result{Outcome: resolver.Matched, Dynamic: true}, time.Millisecond)
	c.Record(resolver.Result{Outcome: resolver.Unmatched}, time.Millisecond)

	tests := []struct {
		name    string
		outcome string
		dynamic string
		want    float64
	}{
		{"dynamic matches", "matched", "true", 2},
		{"conventional misses", "unmatched", "false", 1},
		{"no fatal", "fatal", "false", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(c.outcomes.WithLabelValues(tt.outcome, tt.dynamic)); got != tt.want {
				t.Errorf("outcomes = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollector_Diagnostics(t *testing.T) {
	var (
		c   = New()
		d   = &action.Descriptor{App: "demo01", Controller: "test", Action: "dynamic"}
		req = httptest.NewRequest("GET", "/", nil)
	)
	c.BeforeAction(d, req, route.Values{})
	if got := testutil.ToFloat64(c.inFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
	c.AfterAction(d, req, route.Values{})
	if got := testutil.ToFloat64(c.inFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
	if got := testutil.ToFloat64(c.actions.WithLabelValues("demo01", "test")); got != 1 {
		t.Errorf("actions = %v, want 1", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	var c = New()
	c.Record(resolver.Result{Outcome: resolver.Fatal}, time.Second)
	var rec = httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "dispatch_route_outcomes_total") {
		t.Errorf("expected outcome metrics in output, found:\n%s", rec.Body.String())
	}
}
