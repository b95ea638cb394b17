// Package catalog implements the parts equivalence catalog.
//
// It answers "what is equivalent to X" over a cross-reference graph of
// canonical parts and directed equivalence edges.
//
// # Resolution
//
// A search computes a seed set by case-insensitive substring match over
// part numbers, compatible part numbers and equipment models, then expands
// it through the reverse cross-reference relation in synchronous
// generations. The expansion is capped at two generations past the seeds;
// set membership makes the traversal cycle-safe. Rows owned by any
// reachable part form the result, optionally enriched with live stock from
// the inventory reader (best effort, never fails the search).
//
// # Components
//
//   - Service: Search, Suggest, GetPart, ImportBatch, EnrichStock.
//   - Handler: HTTP endpoints for search, autocomplete, part detail and
//     compatibility import.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET  /search?q=                 : equivalence rows for a query
//   - GET  /suggestions?q=            : ranked autocomplete (min 3 chars)
//   - GET  /parts/:partNumber         : part detail card
//   - POST /compatibilities/import    : admin/importer batch import
package catalog
