// Package images stores and serves part photos.
//
// Objects live in S3-compatible storage while the metadata row and the
// denormalized parts.image_url column are kept in the database. A part has at
// most one primary image; uploading a replacement soft-deletes the previous
// record and removes its object best-effort.
package images
