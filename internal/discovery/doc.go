// Package discovery locates Git repositories beneath candidate paths.
//
// RepoLocator performs a fixed two-level bounded scan (path, children,
// grandchildren of non-repository children) so that both flat checkouts and
// org/repo layouts are found without walking arbitrarily deep trees. Each
// discovered root is resolved to an owner/name slug by reading its origin
// remote; entries that cannot be resolved are logged and dropped without
// failing the overall discovery call.
package discovery
