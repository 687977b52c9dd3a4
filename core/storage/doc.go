// Package storage provides the blob storage client for item images.
//
// Image bytes never travel through the sync path; they are device-local and
// live in an object store (S3/MinIO) keyed by image id. The Client interface
// abstracts the Minio SDK so feature code and tests can substitute mocks
// (see the mocks subpackage).
package storage
