// Package clone clones repositories over SSH with an HTTPS fallback,
// optionally borrowing objects from a local mirror and pinning checkouts
// under revision-named directories.
package clone
