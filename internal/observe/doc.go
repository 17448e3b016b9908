// Package observe provides builder.Observer implementations: a structured
// log observer, an OpenTelemetry tracing observer, and Multi to combine them.
package observe
