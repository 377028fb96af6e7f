// Package logging provides structured logging for wirelens on top of the
// standard slog package.
//
// Every log entry carries a subsystem tag so output from the scanner, the
// graph builders and the MCP server can be told apart and filtered:
//
//	logging.Init(logging.LevelInfo, os.Stderr)
//	logging.Info("Scanner", "scanned %d files under %s", n, root)
//	logging.Error("Extractor", err, "failed to parse %s", path)
//
// The MCP serve mode owns stdout for the protocol transport, so Init is
// always pointed at stderr there.
package logging
