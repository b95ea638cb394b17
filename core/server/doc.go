// Package server holds the HTTP server configuration.
//
// It groups the listen port, the JWT session settings, the shared inventory
// sync token and the CORS origin whitelist, plus the role constants used to
// gate admin and importer endpoints.
package server
