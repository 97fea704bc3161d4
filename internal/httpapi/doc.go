// Package httpapi exposes the application over HTTP: a chi-routed JSON
// API over the stores, a Prometheus metrics endpoint, and a WebSocket
// event stream that pushes notifications and refresh events to
// connected clients.
package httpapi
