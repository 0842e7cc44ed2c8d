// Package stockroom exposes release metadata for the stockroom project.
package stockroom

// Version is the semantic version of the stockroom CLI and library.
const Version = "0.1.0"
