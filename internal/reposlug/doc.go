// Package reposlug prints the owner/name slug derived from a repository's
// origin remote URL.
package reposlug
