// Package render turns a template source tree into a staging tree.
//
// Renderer is the contract the materialization pipeline depends on.
// Interpolator is the implementation shipped with templating: it replaces
// expressions such as ${project.version} or @name@ with property values
// and copies everything else unchanged.
//
// Interpolation makes one left-to-right pass. At each position the first
// delimiter pair, in set order, whose begin token matches opens an
// expression, and the nearest end token on the same line closes it.
// Expressions naming an unknown property are written out as they are. An
// escape string directly before a begin token keeps the expression
// literal and is itself dropped.
package render
