package scope

import "errors"

// Domain errors for scope validation.
var (
	// ErrEmptyType is returned when a scope has no type.
	ErrEmptyType = errors.New("scope.empty_type")

	// ErrEmptyObjectID is returned when a scope has no object id.
	ErrEmptyObjectID = errors.New("scope.empty_object_id")

	// ErrWildcardRequest is returned when a wildcard object id appears in a
	// requested scope. Wildcards are only valid in stored grants.
	ErrWildcardRequest = errors.New("scope.wildcard_request")
)
