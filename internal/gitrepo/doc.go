// Package gitrepo resolves repository-level metadata by invoking the git
// executable through the execshell abstractions.
package gitrepo
