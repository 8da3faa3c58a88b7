// Package observability provides structured logging and Prometheus metrics
// for the prompt router.
//
// This package implements:
//   - Zap logger construction from level/format settings
//   - Prometheus collectors for generations, provider calls and refinements
package observability
