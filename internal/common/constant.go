// Package common contains shared constants and sentinel errors used across
// the lending service components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access
// token on authenticated requests.
const AuthorizationHeaderName = "Authorization"
