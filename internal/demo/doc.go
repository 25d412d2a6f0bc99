// Package demo holds the Go code generated for demo.json, a schema
// that uses every feature of the bottle format. Its tests check the
// generated codecs against the wire format.
package demo

//go:generate go run github.com/danderson/bottle/cmd/bottle generate -lang go demo.json
