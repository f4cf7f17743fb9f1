// Package metrics turns roll events into Prometheus metrics
package metrics

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KirkDiggler/dice-roller/internal/engine"
	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/orchestrators/dice"
)

const namespace = "dice_roller"

// Config holds the dependencies for the collector
type Config struct {
	EventBus events.EventBus
	// Registry defaults to a new registry with Go and process collectors
	Registry *prometheus.Registry
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	return vb.Build()
}

// Collector counts simulations and rejected requests
type Collector struct {
	registry *prometheus.Registry
	bus      events.EventBus
	subs     []string

	simulations   prometheus.Counter
	rolls         prometheus.Counter
	invalidInputs *prometheus.CounterVec
	rollCount     prometheus.Histogram
}

// New registers the metrics and subscribes to the event bus
func New(cfg *Config) (*Collector, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	c := &Collector{
		registry: registry,
		bus:      cfg.EventBus,
		simulations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulations_total",
			Help:      "Total number of completed simulations",
		}),
		rolls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rolls_total",
			Help:      "Total number of trials across all simulations",
		}),
		invalidInputs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_inputs_total",
			Help:      "Rejected roll requests by offending field",
		}, []string{"field"}),
		rollCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "roll_count",
			Help:      "Number of trials requested per simulation",
			Buckets:   prometheus.ExponentialBuckets(1, 10, 7),
		}),
	}

	if err := c.register(); err != nil {
		return nil, err
	}

	c.subs = append(c.subs,
		c.bus.SubscribeFunc(engine.EventSimulationCompleted, 0, c.onSimulationCompleted),
		c.bus.SubscribeFunc(dice.EventInputRejected, 0, c.onInputRejected),
	)

	return c, nil
}

func (c *Collector) register() error {
	for _, col := range []prometheus.Collector{c.simulations, c.rolls, c.invalidInputs, c.rollCount} {
		if err := c.registry.Register(col); err != nil {
			return errors.Wrap(err, "failed to register metric")
		}
	}
	return nil
}

// Handler serves the registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry exposes the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Close unsubscribes from the event bus
func (c *Collector) Close() error {
	for _, id := range c.subs {
		if err := c.bus.Unsubscribe(id); err != nil {
			return errors.Wrapf(err, "failed to unsubscribe %s", id)
		}
	}
	c.subs = nil
	return nil
}

func (c *Collector) onSimulationCompleted(_ context.Context, e events.Event) error {
	c.simulations.Inc()

	raw, ok := e.Context().Get(engine.EventKeyNumRolls)
	if !ok {
		return nil
	}
	numRolls, ok := raw.(int)
	if !ok {
		slog.Warn("Unexpected num_rolls on simulation event", "value", raw)
		return nil
	}

	c.rolls.Add(float64(numRolls))
	c.rollCount.Observe(float64(numRolls))
	return nil
}

func (c *Collector) onInputRejected(_ context.Context, e events.Event) error {
	raw, _ := e.Context().Get(dice.EventKeyFields)
	fields, _ := raw.([]string)
	if len(fields) == 0 {
		c.invalidInputs.WithLabelValues("unknown").Inc()
		return nil
	}

	for _, f := range fields {
		c.invalidInputs.WithLabelValues(f).Inc()
	}
	return nil
}
