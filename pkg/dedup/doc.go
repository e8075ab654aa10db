// Package dedup suppresses duplicate events inside a sliding time window.
//
// Memory is bounded and process-local. Redis lets several worker processes
// share the same window through SET NX with an expiry.
package dedup
