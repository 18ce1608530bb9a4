// Package routeguard maps incoming HTTP requests to required permissions
// via a declarative rule table and enforces them as middleware.
//
// A rule binds (method, path pattern) to (permission, scope type) and
// optionally names the path parameter supplying the scope object id:
//
//	rules := []routeguard.Rule{
//	    {Method: "POST", Path: "/api/worlds/:id", Permission: "world.edit", ScopeType: "world", ScopeParam: "id"},
//	    {Method: "GET", Path: "/api/admin", Permission: "admin.view", ScopeType: "global"},
//	}
//
//	guard, err := routeguard.NewGuard(ctx, routeguard.NewMemorySource(rules))
//	r.Use(routeguard.Middleware(guard, resolver,
//	    routeguard.WithTokenVerifier(verifier)))
//
// Path parameters (":id") capture exactly one segment. The conventional
// "/api" prefix is normalized away on both sides, so rules authored with or
// without it match the same requests. The first matching rule wins; author
// rule tables most-specific first.
//
// The rule table is an opt-in protection layer: a request no rule covers
// passes through untouched and relies on per-route authorization. Keeping
// the table complete for sensitive routes is the application's
// responsibility.
//
// Rule sources: NewMemorySource (static), NewYAMLSource (file), and
// NewPGSource (page_permission_rules table).
package routeguard
