package store

import (
	"database/sql"
	"errors"
)

var (
	// ErrSongNotFound signals a missing song record.
	ErrSongNotFound = errors.New("song not found")
	// ErrShowNotFound signals a missing show record.
	ErrShowNotFound = errors.New("show not found")
	// ErrLocationNotFound signals a missing location term.
	ErrLocationNotFound = errors.New("location not found")
	// ErrTourNotFound signals a missing tour term.
	ErrTourNotFound = errors.New("tour not found")
)

// Store provides read access to the archive backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func nullInt64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func nullIntPtr(n sql.NullInt32) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int32)
	return &v
}
