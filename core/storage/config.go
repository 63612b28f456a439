package storage

import "strings"

// Config holds the connection parameters of a single tenant.
// A Config is treated as immutable once it has passed Validate.
type Config struct {
	// Tenant identifies the customer whose connection is cached.
	Tenant string `mapstructure:"tenant" json:"tenant"`
	// URL is the base endpoint of the backend.
	URL string `mapstructure:"url" json:"url"`
	// UserName is the access key, user or account name.
	UserName string `mapstructure:"user_name" json:"user_name"`
	// Password is the secret key, password or pre-issued token.
	Password string `mapstructure:"password" json:"-"`
	// Namespace is required by namespace/container backends only.
	Namespace string `mapstructure:"namespace" json:"namespace,omitempty"`
	// Region is passed to SDK backends (e.g., us-east-1).
	Region string `mapstructure:"region" json:"region,omitempty"`
}

// Validate checks that every field required by the given backend kind is present.
// It never touches the network.
func (c Config) Validate(kind Kind) error {
	var missing []string
	if isBlank(c.Tenant) {
		missing = append(missing, "tenant")
	}
	if isBlank(c.URL) {
		missing = append(missing, "url")
	}
	if isBlank(c.UserName) {
		missing = append(missing, "user_name")
	}
	if isBlank(c.Password) {
		missing = append(missing, "password")
	}
	if kind.RequiresNamespace() && isBlank(c.Namespace) {
		missing = append(missing, "namespace")
	}
	if len(missing) > 0 {
		return Validation("validate config", c.Tenant, "missing required fields: "+strings.Join(missing, ", "))
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
