package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics_IsolatedRegistries(t *testing.T) {
	// Two registries must not collide on metric names
	m1 := NewMetrics(prometheus.NewRegistry())
	m2 := NewMetrics(prometheus.NewRegistry())

	m1.TasksTotal.WithLabelValues("done").Inc()
	m1.TasksTotal.WithLabelValues("done").Inc()
	m2.TasksTotal.WithLabelValues("done").Inc()

	if got := testutil.ToFloat64(m1.TasksTotal.WithLabelValues("done")); got != 2 {
		t.Errorf("Expected 2 done tasks, got %v", got)
	}
	if got := testutil.ToFloat64(m2.TasksTotal.WithLabelValues("done")); got != 1 {
		t.Errorf("Expected 1 done task, got %v", got)
	}
}

func TestNewMetrics_Registered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.GroupFallbacks.Inc()
	m.UploadsTotal.WithLabelValues("photo", "ok").Add(3)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}

	for _, want := range []string{"relay_group_fallbacks_total", "relay_uploads_total"} {
		if !names[want] {
			t.Errorf("Metric %s not registered", want)
		}
	}
}

func TestGetDefaultMetrics_Singleton(t *testing.T) {
	if GetDefaultMetrics() != GetDefaultMetrics() {
		t.Error("GetDefaultMetrics should return the same instance")
	}
}
