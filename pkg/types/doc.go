// Package types defines the Catalog and NameRepository interfaces, the table
// registry, row records, configuration and the sentinel errors shared by the
// foodblog storage layer and its callers.
package types
