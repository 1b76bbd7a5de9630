package config

import (
	"context"
	"errors"
)

var (
	ErrConfigNotFound = errors.New("exchange config not found")
)

type Store interface {
	// Put inserts a new config version.
	Put(ctx context.Context, record *Record) error

	// Get returns the latest config version.
	Get(ctx context.Context) (*Record, error)
}
