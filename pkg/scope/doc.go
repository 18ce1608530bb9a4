// Package scope provides the scope value type used by grant resolution.
// A scope pairs a type (e.g. "global", "world") with an object id and
// partitions where a grant applies.
//
// Stored grants may carry the wildcard object id "*", which matches every
// concrete object of the same scope type. The wildcard is one-directional:
// it is valid in stored grants only, never in a requested scope.
//
// Basic usage:
//
//	requested := scope.New("world", "42")
//	grant := scope.NewWildcard("world")
//
//	grant.Matches(requested) // true: wildcard covers any world
//	requested.Matches(grant) // false: a request never matches a wildcard
//
//	global := scope.Global() // {Type: "global", ObjectID: "global"}
package scope
