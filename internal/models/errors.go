package models

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
	// ErrUpstreamAuth marks a rejected credential from an external identity provider.
	ErrUpstreamAuth = errors.New("upstream authentication failed")
)

// ParseObjectID parses a hex identifier, reporting ErrInvalidInput on malformed input.
func ParseObjectID(field, hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s must be an object id", ErrInvalidInput, field)
	}
	return id, nil
}
