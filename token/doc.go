// Package token quotes strings for the JSON encoder.
package token
