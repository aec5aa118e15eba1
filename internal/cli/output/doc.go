// Package output renders command results as a table, JSON or YAML.
//
// Values that know how to lay themselves out implement Tabular. In table
// mode anything else falls back to YAML, which is also what the yaml
// format prints. JSON output follows the backend's field names.
package output
