// Package errors provides structured, coded errors for configuration
// and startup failures.
//
// Each registered code carries a category, a short message, and a fix
// suggestion so the CLI can print an actionable diagnostic instead of a
// bare string. Errors wrap an underlying cause and work with the
// standard errors.Is/As machinery.
package errors
