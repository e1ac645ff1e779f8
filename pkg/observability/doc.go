/*
Package observability provides tools for monitoring learning runs.

It translates the lifecycle hooks emitted by the learner (stage completion,
state unification, hypothesis falsification) into Prometheus metrics. The
learner itself never depends on this package; wire it in through
locus.WithHooks:

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	eng := locus.New(locus.WithHooks(m.Hooks()))
*/
package observability
