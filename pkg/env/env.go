package env

import "os"

const prefix = "CAMPUSBOARD_"

// Get returns the value of the given environment variable or a fallback.
// The CAMPUSBOARD-prefixed name wins over the bare one so deployments can
// scope overrides to this service.
func Get(key, fallback string) string {
	if val := os.Getenv(prefix + key); val != "" {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
