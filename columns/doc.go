// Package columns converts FASTQ files into four separate column
// streams, and converts such column streams back into FASTQ files.
//
// The identifier, base sequence and secondary identifier lines of the
// records are stored in three text streams with one line per record.
// The quality lines are converted to numeric scores and stored as a
// flat sequence of float32 values in native byte order, without header
// or delimiters. The number of scores of a record is implicit: it is
// the length of the record's base sequence line.
//
// The column streams are meant to be compressed by general-purpose or
// lossy float compressors. Reconstruction rounds scores to the nearest
// integer and clamps them to fastq.MinScore, so scores below 2 do not
// survive a round trip.
package columns
