// Package stale reports remote branches and open pull requests that have not
// seen activity for a configurable number of days, grouped per repository and
// author in either a hierarchical summary or a detailed YAML listing.
package stale
