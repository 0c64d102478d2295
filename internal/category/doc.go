// Package category defines the fixed classification buckets used to organize
// downloaded files, along with the extension table that maps file types into
// them. The table is static program data and is never persisted; configuration
// only records which categories are enabled.
package category
