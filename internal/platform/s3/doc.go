// Package s3 uploads exported topology documents to S3-compatible object
// storage.
//
// Credentials are static when an access key is configured and otherwise come
// from the default AWS chain (environment, shared config, instance role).
package s3
