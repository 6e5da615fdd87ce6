// Package probe turns HTTP health endpoints into subjects and transforms
// that can be polled.
//
// This package backs the eventually CLI. A [Target] is the subject of a
// check, [Request] fetches it, and an [Extractor] interprets the response
// as an [Observation]. All transforms are described, so a timed-out wait
// reports what was fetched and how it was read:
//
//	https://api.example.com/health
//	Expected: (json field status of response) status up
//	     but: timed out, polling every 1s for 30s
//	   final: (json field status of response) was down (503)
package probe
