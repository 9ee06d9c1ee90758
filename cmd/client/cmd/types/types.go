// Package types holds the context keys shared between the command tree
// and its subpackages.
package types

type ctxKey string

// AppKey locates the wired client application in the command context.
const AppKey ctxKey = "app"
