package observe

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/talkdeck/talkdeck/pkg/talks"
	"github.com/talkdeck/talkdeck/pkg/ui"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	return m.GetCounter().GetValue()
}

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestMeteredSource(t *testing.T) {
	t.Run("SuccessCounted", func(t *testing.T) {
		m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
		src := NewMeteredSource(talks.StaticSource([]talks.Talk{{ID: "t1"}}), m)

		got, err := src.FetchTalks(context.Background())
		if err != nil || len(got) != 1 {
			t.Fatalf("fetch: %v %v", got, err)
		}
		if v := counterValue(t, m.loadsTotal.WithLabelValues("success")); v != 1 {
			t.Errorf("loads_total(success)=%v, want 1", v)
		}
		if v := counterValue(t, m.loadsTotal.WithLabelValues("error")); v != 0 {
			t.Errorf("loads_total(error)=%v, want 0", v)
		}
		if n := histogramCount(t, m.loadDuration); n != 1 {
			t.Errorf("load_duration samples=%v, want 1", n)
		}
	})

	t.Run("ErrorCounted", func(t *testing.T) {
		m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
		src := NewMeteredSource(talks.SourceFunc(func(ctx context.Context) ([]talks.Talk, error) {
			return nil, errors.New("boom")
		}), m)

		if _, err := src.FetchTalks(context.Background()); err == nil {
			t.Fatal("expected error to pass through")
		}
		if v := counterValue(t, m.loadsTotal.WithLabelValues("error")); v != 1 {
			t.Errorf("loads_total(error)=%v, want 1", v)
		}
	})
}

func TestNotificationObserver(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))

	store := ui.NewStore(ui.WithNotifyObserver(m.ObserveNotification))
	defer store.Close()

	store.ShowError("boom")
	store.ShowError("boom again")
	store.ShowInfo("hello")

	if v := counterValue(t, m.notifications.WithLabelValues("error")); v != 2 {
		t.Errorf("notifications_total(error)=%v, want 2", v)
	}
	if v := counterValue(t, m.notifications.WithLabelValues("info")); v != 1 {
		t.Errorf("notifications_total(info)=%v, want 1", v)
	}
}

func TestPersistErrorObserver(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))

	m.ObservePersistError(errors.New("disk full"))
	m.ObservePersistError(errors.New("disk full"))

	if v := counterValue(t, m.persistFailures); v != 2 {
		t.Errorf("persist_failures_total=%v, want 2", v)
	}
}

func TestTracedSourcePassThrough(t *testing.T) {
	// No tracer provider is installed, so spans are no-ops; the wrapper
	// must still forward results and errors unchanged.
	t.Run("Success", func(t *testing.T) {
		src := NewTracedSource(talks.StaticSource([]talks.Talk{{ID: "t1"}}), "")
		got, err := src.FetchTalks(context.Background())
		if err != nil || len(got) != 1 || got[0].ID != "t1" {
			t.Fatalf("fetch: %v %v", got, err)
		}
	})

	t.Run("Error", func(t *testing.T) {
		want := errors.New("boom")
		src := NewTracedSource(talks.SourceFunc(func(ctx context.Context) ([]talks.Talk, error) {
			return nil, want
		}), "test")
		if _, err := src.FetchTalks(context.Background()); !errors.Is(err, want) {
			t.Fatalf("expected boom, got %v", err)
		}
	})
}
