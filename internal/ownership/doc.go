// Package ownership implements CODEOWNERS coverage analysis across a fleet of
// locally cloned repositories.
//
// The parser classifies each repository's CODEOWNERS file as missing, empty,
// or present; the coverage engine enumerates code files and computes uncovered
// first-level directory buckets; the mapping builder merges owned and unowned
// paths into one deterministically ordered table. The owners command fans the
// analysis out across discovered repositories and exits non-zero when any
// repository is not fully owned.
package ownership
