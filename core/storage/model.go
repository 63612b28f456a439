package storage

import (
	"strings"
	"time"
)

// PresignExpiry is the lifetime of every presigned URL issued by the gateway.
const PresignExpiry = 2 * time.Hour

// FileStorage describes one object version as reported by a backend.
type FileStorage struct {
	ObjectName     string    `json:"object_name"`
	Size           int64     `json:"size"`
	ETag           string    `json:"etag"`
	LastModified   time.Time `json:"last_modified"`
	VersionID      string    `json:"version_id,omitempty"`
	CurrentVersion bool      `json:"current_version"`
	// Tags is only populated by tag queries and holds the matched tag values.
	Tags []string `json:"tags,omitempty"`
}

// Bucket is a top-level container reported by a backend.
type Bucket struct {
	Name         string    `json:"name"`
	CreationDate time.Time `json:"creation_date"`
}

// MatchMode selects how requested tags are compared against an object's tags.
type MatchMode string

const (
	// MatchAll requires every requested key/value pair to be present.
	MatchAll MatchMode = "and"
	// MatchAny requires at least one requested value among the object's values.
	// Keys are ignored.
	MatchAny MatchMode = "or"
)

// ParseMatchMode accepts "and"/"or" in any case. Empty defaults to MatchAll.
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "and", "all":
		return MatchAll, nil
	case "or", "any":
		return MatchAny, nil
	default:
		return "", Validation("parse match mode", s, "mode must be and|or")
	}
}

// ObjectKey joins path and objectName with a slash when path is not blank.
func ObjectKey(path, objectName string) string {
	if isBlank(path) {
		return objectName
	}
	return path + "/" + objectName
}
