// Package metric provides a thin registry wrapper around Prometheus for
// component-scoped metric registration.
//
// Components register counters and gauges under a "component.metric" key so
// duplicate registrations are caught with a classified error instead of a
// Prometheus panic. The registry owns a dedicated prometheus.Registry, which
// keeps test runs isolated from the default global registry.
package metric
