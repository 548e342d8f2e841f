// Package bracket partitions exposure files into HDR bracket sequences.
//
// Manifests (.txt files holding one comma-separated list of exposures) are
// honoured first; whatever they do not claim is chunked into fixed-size
// brackets. Every failure is returned as a typed error and no call leaves
// partial results behind.
package bracket
