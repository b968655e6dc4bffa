// Package logging configures slog for wordrank.
//
// Normal runs log warnings and errors as text on stderr, leaving stdout for
// reports. With --debug, JSON records at debug level go to a size-rotated
// file under ~/.wordrank/logs/ and are mirrored to stderr. The MCP server
// logs to the file only, because stdout carries the JSON-RPC stream.
package logging
