// Package id generates time-sortable identifiers for journaled runs.
package id

import "github.com/oklog/ulid/v2"

// New returns a ULID string. ULIDs sort lexicographically by creation time,
// which keeps journal listings in chronological run order and indexes cheap.
func New() string {
	return ulid.Make().String()
}
