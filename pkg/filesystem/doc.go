// Package filesystem provides the afero filesystems templating runs on.
//
// Every core package takes an afero.Fs so that tests can substitute an
// in-memory filesystem for the operating system one.
package filesystem
