// Package jwt signs and verifies the session token carried in the visitor's
// cookie.
//
// The token only names a server-side session; everything else about the
// visitor lives in the session store. Context helpers carry the verified
// session ID from the HTTP middleware to the handlers.
package jwt
