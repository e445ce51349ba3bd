// Package patch renders deletion-only unified diffs that remove stale entries
// from an ownership manifest.
package patch
