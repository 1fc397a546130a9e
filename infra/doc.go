// Package infra contains technical adapters such as the chart renderer,
// viewers, loggers and metrics exporters. These packages should depend only
// on the types defined in the core packages.
package infra
