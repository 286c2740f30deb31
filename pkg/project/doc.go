// Package project describes the build project templates are materialized
// for and records the source roots they produce.
//
// A Project is assembled from an optional pom.xml and the templating
// configuration. Materialized output directories are registered on it as
// compile or test-compile source roots, and SaveManifest persists those
// roots under the build directory for the compiler step to pick up.
package project
