package api

import "regexp"

// LoginPath is where a terminal auth failure sends the user.
const LoginPath = "/login"

var publicPath = regexp.MustCompile(`^/(login|signup|forgot-password|reset-password)?$`)

// Navigator is the front end's router as seen by the HTTP pipeline.
type Navigator interface {
	CurrentPath() string
	Navigate(path string)
}

// IsPublicPath reports whether path is one of the unauthenticated routes
// ("/", "/login", "/signup", "/forgot-password", "/reset-password").
func IsPublicPath(path string) bool {
	return publicPath.MatchString(path)
}
