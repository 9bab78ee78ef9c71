// Package cli implements the viewdb demo command line.
//
// Each command builds stores from integer lists given on the command line,
// runs views over them and prints the outcome as text or YAML.
package cli
