// Package fasta reads and writes FASTA records and alignments.
//
// Parsing is structural only: a header line starts with '>', and every
// following non-blank line up to the next header is concatenated into the
// record's residues. Residue symbols are never validated or translated, so
// whatever alphabet the external aligner emits (gaps included) round-trips
// unchanged.
package fasta
