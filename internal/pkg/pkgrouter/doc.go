// Package pkgrouter wraps HTTP routing and common middleware used by the API.
//
// It provides a small router abstraction over httprouter plus shared concerns
// like JSON encoding, error mapping, logging, panic recovery (the top-level
// error boundary for the dashboard API), and correlation ID propagation.
package pkgrouter
