// Package catalog defines the star record model and the CSV reader that turns
// a catalog export into validated records. The expected layout is:
//   - line 1: discarded (byte-order mark and/or a "#Table1" style comment)
//   - line 2: header naming the columns (obj_id, ra, dec, u, g, r, i, z)
//   - remaining lines: one comma-delimited star per line
//
// Loading is all-or-nothing: the first malformed row aborts the whole load.
// Load also accepts gzip, zstd and lz4 compressed files.
package catalog
