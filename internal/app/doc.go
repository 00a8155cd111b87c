// Package app is the application layer. It is the only package that wires
// multiple domain components together: the review source, the sentiment
// scorer, the forecaster, and the product cache. The HTTP server talks to
// this package and nothing below it.
package app
