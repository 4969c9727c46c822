package metrics

import (
	"time"
)

// Population labels for EventsGeneratedTotal.
const (
	PopulationCommunity = "community"
	PopulationOther     = "other"
)

// RecordRun records a finished run. status is a run status or an error kind.
func (r *Registry) RecordRun(status string) {
	r.RunsTotal.WithLabelValues(status).Inc()
}

// RecordStage records how long a pipeline stage took.
func (r *Registry) RecordStage(stage string, d time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordEvents adds generated event counts for both populations.
func (r *Registry) RecordEvents(community, other int) {
	r.EventsGeneratedTotal.WithLabelValues(PopulationCommunity).Add(float64(community))
	r.EventsGeneratedTotal.WithLabelValues(PopulationOther).Add(float64(other))
}

// SetLastGraph records the size of the most recent graph.
func (r *Registry) SetLastGraph(nodes, edges int) {
	r.LastGraphNodes.Set(float64(nodes))
	r.LastGraphEdges.Set(float64(edges))
}

// RecordRenderFailure counts a failed artifact render.
func (r *Registry) RecordRenderFailure() {
	r.RenderFailuresTotal.Inc()
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
