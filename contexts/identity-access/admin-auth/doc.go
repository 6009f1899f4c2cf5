// Package adminauth implements admin authentication inside the
// identity-access context.
//
// A single shared admin password is exchanged for a short-lived HS256 token.
// The token gates the admin surface of the HTTP API.
package adminauth
