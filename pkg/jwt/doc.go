// Package jwt issues and verifies the HS256 access tokens the route
// guard authenticates requests with.
//
//	svc, _ := jwt.New([]byte(signingKey))
//
//	token, _ := svc.Generate(jwt.AccessClaims{
//	    StandardClaims: jwt.StandardClaims{
//	        Subject:   user.ID.String(),
//	        ExpiresAt: time.Now().Add(time.Hour).Unix(),
//	    },
//	    Username: user.Username,
//	})
//
//	mw := routeguard.Middleware(guard, resolver,
//	    routeguard.WithTokenVerifier(svc.Verifier()))
package jwt
