/*
Package observability provides Prometheus instrumentation for the assistant.

Metrics cover the three seams that matter operationally: model completions
(success vs failure), parse fallbacks (how often model output was
unrecoverable), and workflow node durations. The workflow hooks returned by
Metrics.Hooks plug directly into pkg/workflow graphs.
*/
package observability
