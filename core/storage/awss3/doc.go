// Package awss3 adapts Amazon S3 (and endpoints speaking the same API) to the
// gateway through aws-sdk-go-v2.
//
// Each tenant gets its own *s3.Client built from static credentials and the
// tenant URL as BaseEndpoint. Tags travel as the x-amz-tagging header on upload
// and are read back with GetObjectTagging. Listings page through
// ListObjectVersions by key and version markers; delete markers are not reported.
//
// The API and Presigner interfaces cover only the calls the driver makes, so
// tests substitute the testify mocks in awss3/mocks.
package awss3
