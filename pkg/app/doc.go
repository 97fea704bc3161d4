// Package app assembles the talk, UI, and preferences stores into a
// single application context with a shared logger, persistence backend,
// and platform capabilities. There are no package-level singletons; a
// process builds one App and passes it where needed.
package app
