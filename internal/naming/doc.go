// Package naming orders exposure filenames and names the merged outputs.
//
// Natural order compares embedded digit runs as numbers and everything else
// case-insensitively, so IMG_2.cr2 sorts before IMG_10.cr2. Output naming
// derives one HDR path per bracket and resolves in-run duplicates with a
// [CollisionResolver].
package naming
