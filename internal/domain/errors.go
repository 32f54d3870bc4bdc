package domain

import "errors"

var (
	// ErrMissingParameter indicates that no usable pool address was supplied.
	ErrMissingParameter = errors.New("missing address parameter")

	// ErrPoolNotFound indicates that the indexer has no pool with the requested ID.
	ErrPoolNotFound = errors.New("pool not found")

	// ErrUpstreamUnavailable indicates a transport or indexer failure.
	ErrUpstreamUnavailable = errors.New("indexer unavailable")
)
