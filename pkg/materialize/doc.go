// Package materialize runs the template pipeline for one source set:
// render the templates into a staging tree, merge that tree into the
// output directory, remove the staging tree and register the output
// directory as a source root of the project.
//
// Rendering always starts from an empty staging tree; the output
// directory only ever receives files whose content changed, so
// timestamps of unchanged generated sources are preserved between runs.
//
// Callers must not run two materializations against the same output
// directory at the same time.
package materialize
