// Package manifest parses CODEOWNERS-style ownership manifests and determines
// which entries no longer resolve to anything on disk.
package manifest
