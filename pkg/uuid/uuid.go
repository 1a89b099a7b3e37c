// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered identifiers for locally created records.

Identifiers are UUIDv7, so drafts created in sequence sort by creation time.
They only stand in until the upstream catalogue assigns the authoritative id.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Prefixed returns a UUIDv7 tagged with a record-kind prefix, e.g. "ent_0190…".
func Prefixed(prefix string) string {
	return prefix + "_" + New()
}
