// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//   - Auth: Validates JWT bearer tokens and exposes the authenticated
//     principal to handlers, plus a per-route role gate.
//   - SyncToken: Validates the shared inventory sync secret for the
//     machine-to-machine sync endpoint, which is not session authenticated.
//
// These middleware components are designed to be registered globally or per-route group
// in the main application setup.
package middleware
