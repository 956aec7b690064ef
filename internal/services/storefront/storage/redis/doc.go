// Package redis persists the latest read-model snapshot under a Redis key.
package redis
