// Package digest computes content-addressed identities for alignments.
//
// Digests are SHA-256 with domain separation:
//
//	SHA256(domain + 0x00 + canonical bytes)
//
// The canonical form lists records in alignment order as
// NFC(identifier) 0x00 residues 0x0A, so two alignments share a digest
// exactly when they hold the same records in the same order, regardless of
// how their FASTA files were wrapped or how identifiers were Unicode
// composed.
package digest

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/rotalign/internal/fasta"
)

// DomainAlignment prefixes alignment digests. The version suffix allows the
// canonical form to change without colliding with stored digests.
const DomainAlignment = "rotalign/alignment/v1"

// Alignment returns the hex digest of aln.
func Alignment(aln fasta.Alignment) string {
	h := sha256.New()
	h.Write([]byte(DomainAlignment))
	h.Write([]byte{0x00})
	for _, rec := range aln {
		h.Write([]byte(norm.NFC.String(rec.ID)))
		h.Write([]byte{0x00})
		h.Write([]byte(rec.Residues))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Short returns the first 12 hex characters of a digest for display.
func Short(d string) string {
	if len(d) <= 12 {
		return d
	}
	return d[:12]
}
