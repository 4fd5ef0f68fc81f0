// Package fetch centralizes outbound HTTP for venue handlers: one client
// with a shared timeout and User-Agent, returning raw bytes, decoded JSON,
// or a parsed HTML document. A non-2xx response is an error surfaced to the
// calling handler; there is no retry, backoff, or caching, so one slow or
// broken venue cannot block the rest of a run beyond its own timeout.
package fetch
