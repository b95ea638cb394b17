// Package users implements authentication and user administration.
//
// Login verifies bcrypt password hashes and issues signed JWT session
// tokens consumed by the auth middleware. User management (list, create,
// partial update) is admin-only and enforces the role whitelist.
package users
