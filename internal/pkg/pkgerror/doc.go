// Package pkgerror defines shared error types and sentinel errors used across
// the application.
//
// It helps keep error handling consistent by:
//   - Providing sentinel errors that can be checked with errors.Is.
//   - Providing a structured Error type that carries a message, type, and code,
//     which can be mapped to HTTP status codes at the edge (handlers).
//   - Classifying scoring-backend failures (unreachable, non-2xx, malformed)
//     so views can decide between a retry affordance and fallback data.
package pkgerror
