// Package images stores item image bytes in blob storage (S3/MinIO).
//
// Images are device-local: the sync path transmits only per-item image
// counts, never bytes. The import path materializes base64 payloads through
// this store when the caller opts in.
package images
