// Package utils provides shared low-level helpers used by the Perplexity
// provider and the MCP bridge. It covers the synchronous JSON POST helper used
// for every outbound API call, generic pointer helpers for optional tool
// parameters, and string helpers for log-safe truncation.
//
// Key entry points: [DoPostSync] for synchronous JSON round-trips,
// [HTTPStatusError] for classifying non-2xx responses, [Ptr] and [Deref] for
// optional values, and [TruncateString] for bounded log output.
package utils
