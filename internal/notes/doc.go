// Package notes implements the in-memory note store.
//
// Notes are named free-text entries that live only for the process
// lifetime. Each note is addressable as an MCP resource under a
// deterministic note:// URI derived from its name. The store preserves
// insertion order for listing and has no delete operation.
package notes
