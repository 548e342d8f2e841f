// Package ranges collapses a naturally sorted file list into a short display
// summary.
//
// Files named <prefix>_<digits>.<ext> with consecutive numbers collapse into
// a single "first:last" token; everything else is listed on its own. If the
// summary is still longer than the caller's limit, every Nth token is kept.
// The result is for display only and must not be used to decide which files
// exist.
package ranges
