// Package common contains shared constants and sentinel errors used across
// BazaarBuddy server components.
package common

// AuthTokenHeaderName is the HTTP request header carrying the signed access
// token on protected routes.
const AuthTokenHeaderName = "x-auth-token"
