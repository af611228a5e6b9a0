// Package storage provides the two client-side storage tiers the session lives in:
// a durable tier that survives restarts and a transient tier that ends with the process.
package storage

// Store is a string key/value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
}
