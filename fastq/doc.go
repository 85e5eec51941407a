// Package fastq is a library for reading FASTQ files line by line and
// record by record, and for converting between quality characters and
// numeric quality scores.
//
// A FASTQ record always consists of exactly four lines: an identifier
// line, a base sequence line, a secondary identifier line, and a
// quality line with one quality character per base. Multi-line FASTQ
// records are not supported. Quality characters use the Phred+33
// convention: the score of a character is its code minus 33.
//
// Input files can be plain text, gzip or BGZF compressed. The
// compression is detected by looking at the first byte of the file.
//
// The error values declared in this package are shared by the columns
// and metrics packages, so that callers can distinguish open failures,
// malformed input and length mismatches with errors.Is.
package fastq
