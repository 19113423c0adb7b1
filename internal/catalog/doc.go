// Package catalog holds the static catalog of predefined practice projects
// and the display labels of the engineering fields. The catalog ships
// embedded in the binary as YAML and may be replaced by a file on disk.
package catalog
