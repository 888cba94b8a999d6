// Package common contains shared constants and sentinel errors used across
// breachwatch components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access token.
const AuthorizationHeaderName = "Authorization"
