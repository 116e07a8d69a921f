package services

import (
	"os"
	"strings"

	"google.golang.org/api/option"
)

// GCPClientOptionsFromEnv reads service account credentials from
// GOOGLE_APPLICATION_CREDENTIALS_JSON (inline JSON) or
// GOOGLE_APPLICATION_CREDENTIALS (inline JSON or a file path).
// No options means application default credentials.
func GCPClientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}
