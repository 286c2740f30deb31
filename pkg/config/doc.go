// Package config loads templating settings.
//
// Layers are applied in order, each overriding the previous one:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. values found in the project's pom.xml
//  3. templating.toml in the project basedir, or the file given with --config
//  4. TEMPLATING_* environment variables
//  5. command-line flags the user set
//
// Directory settings may reference ${project.basedir} and
// ${project.build.directory}; they are expanded when a scope is resolved.
package config
