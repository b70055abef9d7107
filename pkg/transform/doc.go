// Package transform holds the pure string-to-string conversions behind the
// unixtime commands, plus the clock used to produce the current timestamp.
package transform
