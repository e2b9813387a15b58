package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestIncrementCoachRequest(t *testing.T) {
	before := testutil.ToFloat64(CoachRequests.WithLabelValues("fallback"))
	IncrementCoachRequest("fallback")
	after := testutil.ToFloat64(CoachRequests.WithLabelValues("fallback"))
	if after-before != 1 {
		t.Errorf("fallback counter moved by %v, want 1", after-before)
	}
}

func TestIncrementCravingLogged(t *testing.T) {
	before := testutil.ToFloat64(CravingsLogged.WithLabelValues("social", "true"))
	IncrementCravingLogged("social", true)
	after := testutil.ToFloat64(CravingsLogged.WithLabelValues("social", "true"))
	if after-before != 1 {
		t.Errorf("craving counter moved by %v, want 1", after-before)
	}
}

func TestRecordHTTPRequestDuration(t *testing.T) {
	RecordHTTPRequestDuration("GET", "/api/dashboard", "200", 5*time.Millisecond)
	if n := testutil.CollectAndCount(HTTPRequestDuration); n == 0 {
		t.Error("expected at least one histogram series")
	}
}
