package scope

const (
	// Wildcard is the object id sentinel matching every object of a scope
	// type. Valid in stored grants only.
	Wildcard = "*"

	// GlobalType is the conventional scope type for application-wide grants.
	GlobalType = "global"

	// GlobalObjectID is the conventional object id for global-type scopes.
	GlobalObjectID = "global"
)

// Scope identifies where a grant applies: a scope type partitioning the
// grant space and an object id selecting an instance within that type.
type Scope struct {
	Type     string
	ObjectID string
}

// New creates a scope for a concrete object of the given type.
func New(scopeType, objectID string) Scope {
	return Scope{Type: scopeType, ObjectID: objectID}
}

// NewWildcard creates a stored-grant scope covering every object of the
// given type.
func NewWildcard(scopeType string) Scope {
	return Scope{Type: scopeType, ObjectID: Wildcard}
}

// Global returns the conventional application-wide scope.
func Global() Scope {
	return Scope{Type: GlobalType, ObjectID: GlobalObjectID}
}

// IsWildcard reports whether the scope carries the wildcard object id.
func (s Scope) IsWildcard() bool {
	return s.ObjectID == Wildcard
}

// Matches reports whether this scope, read as a stored grant, covers the
// requested scope. Types must be equal and the object ids must be equal
// exactly, or the grant must be a wildcard. Comparison is exact-string:
// no case folding, no numeric coercion.
func (s Scope) Matches(requested Scope) bool {
	if s.Type != requested.Type {
		return false
	}
	return s.ObjectID == requested.ObjectID || s.ObjectID == Wildcard
}

// ObjectIDCandidates returns the object ids a grant store should match a
// requested scope against: the concrete id and the wildcard.
func (s Scope) ObjectIDCandidates() []string {
	return []string{s.ObjectID, Wildcard}
}

// Validate checks that the scope is a well-formed request shape: both
// fields present and no wildcard object id.
func (s Scope) Validate() error {
	if s.Type == "" {
		return ErrEmptyType
	}
	if s.ObjectID == "" {
		return ErrEmptyObjectID
	}
	if s.ObjectID == Wildcard {
		return ErrWildcardRequest
	}
	return nil
}

// ValidateGrant checks that the scope is a well-formed stored-grant shape:
// both fields present, wildcard allowed.
func (s Scope) ValidateGrant() error {
	if s.Type == "" {
		return ErrEmptyType
	}
	if s.ObjectID == "" {
		return ErrEmptyObjectID
	}
	return nil
}

// String returns the scope in "type:objectID" form.
func (s Scope) String() string {
	return s.Type + ":" + s.ObjectID
}
