// Package mapping turns parsed OpenAPI operations into normalized gateway
// route entries.
//
// The flow is one-way: ResolveDefaults reads the document-level hints once
// (base path from the first server, the root x-ambassador block), then
// Transform walks the operations in document order, drops suppressed ones,
// rewrites paths and merges per-operation x-ambassador blocks with caller
// configuration. Nothing here performs I/O or returns errors; anomalies are
// reported as Diagnostics next to the result so callers decide how to log
// them.
//
// Precedence for service, namespace and prefix, highest first:
//
//  1. the operation's own x-ambassador value, unless OverrideExtensions is set
//  2. the caller's GatewayConfig value, when explicitly set
//  3. the document root x-ambassador value, unless the caller supplied a
//     target service together with OverrideExtensions
//  4. DefaultNamespace for namespace, empty for prefix
package mapping
