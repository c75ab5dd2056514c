/*
Package observability turns engine lifecycle hooks into logs and Prometheus
metrics.

Hooks from several sources are merged with Combine and handed to the engine:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	eng := automata.New(automata.WithLifecycleHooks(observability.Combine(
		metrics.Hooks(),
		observability.LogHooks(logger),
	)))
*/
package observability
