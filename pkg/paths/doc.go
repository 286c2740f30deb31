// Package paths resolves the locations templating reads from and writes to.
//
// User-supplied paths may start with ~ and may be relative to the project
// basedir. Staging trees live under the build directory, one per scope:
//
//	<build>/templates-tmp        main scope
//	<build>/test-templates-tmp   test scope
package paths
