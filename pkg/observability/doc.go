/*
Package observability provides tools for monitoring the glyphgrid editor.

It exposes Prometheus collectors fed from two places: a reducer middleware that
counts every action by kind and class, and lifecycle hooks that record dispatch
latency, history changes and session churn. Hooks can be merged so logging and
metrics observe the same events.
*/
package observability
