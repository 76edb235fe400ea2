// Copyright (c) 2026 TrendHive. All rights reserved.

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Why UUIDv7?
//
// It is the primary key type across all TrendHive tables. Because it is
// time-sortable, it keeps B-tree inserts append-mostly in PostgreSQL,
// preventing the index fragmentation common with random UUIDv4.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// # Safety
//
// It panics only if the OS random source is unavailable (extremely rare).
// This is acceptable as OS entropy failure is an unrecoverable system-level error.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// IsValid reports whether s parses as any RFC 4122 UUID.
//
// Handlers use it to reject malformed path IDs before touching the database.
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
