package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/locus/pkg/domain"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	h := m.Hooks()
	ctx := context.Background()

	h.OnStage(ctx, &domain.StageEvent{Stage: domain.StageBuild, Type: "block", Duration: time.Millisecond, States: 3})
	h.OnStage(ctx, &domain.StageEvent{Stage: domain.StageTest, Type: "block", Duration: time.Millisecond, States: 3, Hypotheses: 2})
	h.OnUnify(ctx, &domain.UnifyEvent{Type: "block", Kept: 0, Merged: 1, States: 3})
	h.OnUnify(ctx, &domain.UnifyEvent{Type: "block", Kept: 0, Merged: 2, States: 2})
	h.OnFalsify(ctx, &domain.FalsifyEvent{Type: "block"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StagesTotal.WithLabelValues("build", "block")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.States.WithLabelValues("block")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Hypotheses.WithLabelValues("block")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.UnificationsTotal.WithLabelValues("block")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FalsificationsTotal.WithLabelValues("block")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.StageDurationSeconds))
}

func TestMetrics_UntypedStage(t *testing.T) {
	m := NewMetrics(nil)
	m.Hooks().OnStage(context.Background(), &domain.StageEvent{Stage: domain.StageSynthesize, States: 7})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StagesTotal.WithLabelValues("synthesize", "")))
	assert.Equal(t, 0, testutil.CollectAndCount(m.States))
}

func TestMetrics_Registration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)

	assert.Panics(t, func() { NewMetrics(reg) }, "registering twice should panic")
}
