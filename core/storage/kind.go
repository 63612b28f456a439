package storage

import "fmt"

// Kind identifies a backend adapter.
type Kind string

const (
	// KindS3Compatible is any S3 dialect reachable through the MinIO SDK.
	KindS3Compatible Kind = "s3"
	// KindAWS is Amazon S3 through aws-sdk-go-v2.
	KindAWS Kind = "aws"
	// KindNamespaceREST is the namespace/container REST store.
	KindNamespaceREST Kind = "namespace"
	// KindGenericREST is the generic REST object store.
	KindGenericREST Kind = "rest"
)

// Kinds lists every supported backend kind.
var Kinds = []Kind{KindS3Compatible, KindAWS, KindNamespaceREST, KindGenericREST}

// RequiresNamespace reports whether configs for this kind must carry a namespace.
func (k Kind) RequiresNamespace() bool {
	return k == KindNamespaceREST
}

// IsValid checks if k is one of the supported kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindS3Compatible, KindAWS, KindNamespaceREST, KindGenericREST:
		return true
	default:
		return false
	}
}

// ParseKind converts a configuration value into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("unknown backend kind: %q", s)
	}
	return k, nil
}
