// Package server is the HTTP boundary: Echo routes, handlers, and the
// request middleware chain (panic recovery, correlation IDs, request
// logging, structured error mapping).
package server
