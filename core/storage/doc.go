// Package storage provides the object storage client used for part images.
//
// It wraps the MinIO SDK behind a small Client interface so services and
// tests can depend on the interface rather than the concrete client. The
// mocks subpackage provides a testify mock of the interface.
//
// EnsureBucket is called once at startup; RemoveObjectKeys batches object
// deletion for image replacement and the admin data reset.
package storage
