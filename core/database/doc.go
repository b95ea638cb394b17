// Package database provides connectivity to the relational store.
//
// It wraps GORM with the MySQL driver, builds a DSN with encoded credentials
// and explicit connection/read/write timeouts, applies pool limits and
// verifies the connection with a context-bound ping.
//
// Migrate runs GORM AutoMigrate for the models this service owns: parts,
// cross references, inventory snapshot rows, users, part images and
// activity logs.
package database
