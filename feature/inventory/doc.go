// Package inventory implements the stock snapshot subsystem.
//
// An external system with access to the warehouse database periodically
// pushes raw inventory batches. NormalizeBatch canonicalizes them
// (alias-tolerant field resolution, part number folding, best-effort
// numeric and timestamp parsing, in-batch bucket deduplication) and
// ApplySnapshot merges the result into the inventory_availability table
// under one of two modes:
//
//   - replace: the table ends up mirroring the batch exactly
//   - upsert:  buckets in the batch are inserted or overwritten, the rest
//     are untouched
//
// Both modes run in a single transaction and roll back completely on
// failure. The Reader answers summary and detail queries for search
// enrichment and the part detail view; its failures degrade to typed
// "connection error" results because enrichment must never break a search.
package inventory
