package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestWritePrometheusExposesWriteOutcomes(t *testing.T) {
	m := newMetrics(time.Second, 250*time.Millisecond)
	m.ObserveWrite("CommentService.Create", "success", 3*time.Millisecond)
	m.ObserveWrite("EnrollmentService.MakeEnroll", "conflict", time.Millisecond)
	m.IncWriteConflict("EnrollmentService.MakeEnroll")
	m.ObserveAPI("POST", "/api/courses/:id/comments", "201", 10*time.Millisecond)
	m.ObserveAPI("GET", "/api/courses", "500", time.Second)
	m.IncSSEEvent("CommentCreated")

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`edu_write_operations_total{op="CommentService.Create",status="success"} 1.000000`,
		`edu_write_conflicts_total{op="EnrollmentService.MakeEnroll"} 1.000000`,
		`edu_api_requests_error_total 1.000000`,
		`edu_api_requests_good_latency_total 1.000000`,
		`edu_sse_events_total{event="CommentCreated"} 1.000000`,
		"# TYPE edu_write_duration_seconds histogram",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("exposition missing %q\n%s", want, out)
		}
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ObserveWrite("op", "success", time.Millisecond)
	m.IncWriteConflict("op")
	m.SSEClientConnected()
	m.ApiInflightInc()
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("nil WritePrometheus: %v", err)
	}
}

func TestParseHeaders(t *testing.T) {
	h := parseHeaders("a=1, b = 2 ,broken,=x")
	if len(h) != 2 || h["a"] != "1" || h["b"] != "2" {
		t.Fatalf("unexpected headers: %v", h)
	}
	if parseHeaders("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}
