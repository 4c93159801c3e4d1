package cache

import "time"

// TokenCache stores short-lived string values by key. The auth
// middleware uses it to cache resolved identities; tests inject the
// in-memory implementation so they control time and concurrency.
type TokenCache interface {
	Set(key string, value string, expiration time.Duration)
	Get(key string) (string, bool)
	Delete(key string)
}
