// Package server implements the MCP (Model Context Protocol) server for the
// synthetic icon namespace.
//
// This package provides a JSON-RPC 2.0 server that exposes the icon atlas
// browser to MCP-compatible host clients: path recognition, entry lookup,
// child enumeration, display metrics and thumbnail extraction.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - icon_recognize: Claim a path for the icon namespace
//   - icon_resolve: Resolve a synthetic path to its entry
//   - icon_children: Enumerate children of a directory entry
//   - icon_metrics: Build display metrics for an entry
//   - icon_thumbnail: Extract an icon's crop as base64 PNG
//   - icon_ideal_size: Preferred thumbnail size for an entry
//   - atlas_stats: Namespace summary
//
// # Request Model
//
// The namespace tree is built once before the server starts and is never
// mutated, so every tool call is a pure read: no locking, no timeouts, no
// retries. Each call completes synchronously and any failure is final for
// that single request only.
//
// # Error Handling
//
// Tool failures map to JSON-RPC error codes by kind:
//   - -32002: expected namespace miss (path not in the namespace)
//   - -32001: unserveable request (unsupported format, box out of bounds,
//     missing sprite sheet)
//   - -32000: any other tool failure
package server
