// Package skymap reads and writes RING-ordered HEALPix maps and masks.
//
// Two on-disk layouts are supported and selected by file extension:
//
//   - ".bin", ".f64", ".raw": raw little-endian float64 values
//   - anything else: whitespace-delimited text, '#' starts a comment
//
// The number of values must be 12*nside^2 for a positive integer nside.
//
// [Summarize] computes pixel statistics of a map in one pass and
// [SkyFraction] the effective observed fraction of a mask.
package skymap
