// Package parse reads exported register documents, JSON or YAML, into
// ordered ir trees. Object key order is kept.
package parse
