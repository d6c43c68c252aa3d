// Package sync mirrors framework agent directories into their distribution
// targets.
//
// Every mapping entry is processed in table order. A target directory is
// owned entirely by the engine: after a run it contains exactly the document
// files found directly in the entry's source directory, byte for byte, and
// nothing else. Entries whose source directory does not exist are skipped
// without error.
//
// # Modes
//
//   - ModeReplace empties the target and copies every document (default)
//   - ModeIncremental compares SHA-256 digests, rewrites only changed files
//     and removes stale entries; the end state is the same as ModeReplace
//
// Filesystem failures abort the run immediately. Entries processed before
// the failure keep their new contents.
//
// # Verification
//
// VerifyTargets re-scans each target and reports how many documents it
// holds. It never modifies anything and never fails.
package sync
