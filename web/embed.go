// Package web ships the polling chat client inside the server binary.
package web

import _ "embed"

// Index is the single-page polling client served at the root route.
//
//go:embed index.html
var Index []byte
