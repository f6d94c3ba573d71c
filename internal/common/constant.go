// Package common contains header names and small helpers shared by the
// WealthWise client packages.
package common

const (
	// AuthorizationHeaderName carries the bearer access token.
	AuthorizationHeaderName = "Authorization"
	// BearerPrefix precedes the access token in AuthorizationHeaderName.
	BearerPrefix = "Bearer "
	// RequestIDHeaderName tags each outgoing request for log correlation.
	RequestIDHeaderName = "X-Request-ID"
)
