// Package pkgconfig provides a small abstraction for reading configuration values.
//
// The application expects config values to come from a concrete implementation
// (for example Viper). Business code should depend on the Config interface so it
// stays easy to test and does not care where values come from (file, .env, env).
//
// Environment variables prefixed with FRAUDBOARD_ override file values, with
// dots in keys replaced by underscores (backend.base_url becomes
// FRAUDBOARD_BACKEND_BASE_URL).
package pkgconfig
