// Package schema validates documents against CUE schemas.
//
// The schema named Default describes exported register maps and is always
// registered.
package schema
