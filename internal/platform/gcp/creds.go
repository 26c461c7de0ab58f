package gcp

import (
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// credentialOptions accepts either an inline service-account JSON document
// or a path to one. Empty means application default credentials.
func credentialOptions(creds string) []option.ClientOption {
	creds = strings.TrimSpace(creds)
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	switch {
	case creds == "":
		return opts
	case strings.HasPrefix(creds, "{"):
		return append(opts, option.WithCredentialsJSON([]byte(creds)))
	default:
		return append(opts, option.WithCredentialsFile(creds))
	}
}
