// Package mcpserver exposes wirelens over the Model Context Protocol.
//
// The server speaks MCP over stdio and offers a tool catalog covering the
// full analysis surface: run an analysis, list recorded runs, and query a
// run's graphs, cycles, coupling metrics, components and rendered views.
// Runs are kept in memory for the lifetime of the process; a filesystem
// watcher marks runs stale when sources under their root change.
package mcpserver
