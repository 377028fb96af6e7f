// Package analysis is the query facade over finished dependency graphs.
//
// A Registry wraps the graphs one analysis run produced, together with the
// component metadata side table, and exposes snapshots, cycle detection and
// coupling metrics to renderers and the MCP tools without re-exposing
// mutation. Queries are read-only; Report fans them out concurrently since
// the graphs are frozen once the registry exists.
//
// A Store keeps runs addressable by id for the lifetime of the serve
// process, and marks runs stale when the filesystem watcher sees their
// sources change.
package analysis
