// Package delimiters models the begin/end token pairs that mark an
// interpolation expression and resolves the effective set handed to a
// renderer.
//
// A pair is written either as a single token ("@", meaning begin and end
// are both "@") or as begin and end joined by the first "*" ("${*}").
// Sets keep insertion order and hold each pair once.
package delimiters
