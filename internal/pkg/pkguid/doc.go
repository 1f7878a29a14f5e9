// Package pkguid provides helpers for generating unique identifiers.
//
// The codebase uses these interfaces to avoid hard-coding a specific UID
// strategy. Depending on the use case you can generate:
//   - String IDs (UUIDv7, optionally prefixed, for alerts and correlation IDs).
//   - Numeric IDs (Snowflake, for time-ordered case timeline entries). Give
//     each instance its own node when several share one store.
package pkguid
