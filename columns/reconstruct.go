// elFastq: a tool for transcoding FASTQ files into column streams.
// Copyright (c) 2024 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elfastq/blob/master/LICENSE.txt>.

package columns

import (
	"fmt"
	"io"
	"log"

	"github.com/exascience/elfastq/fastq"
)

// Options control a reconstruction.
type Options struct {
	// Strict turns text streams with different line counts, and
	// unused scores at the end of the quality stream, into errors
	// wrapping fastq.ErrMalformedInput. Otherwise, the reconstruction
	// stops at the shortest text stream, and only logs a warning.
	Strict bool

	// BufferSize is the size of the I/O buffers. If it is <= 0,
	// fastq.DefaultBufferSize is used.
	BufferSize int
}

// Reconstruct rebuilds FASTQ records from the four column streams and
// writes them to out.
//
// The three text streams are read in lockstep, one line each per
// record. For each record, exactly as many scores are read from the
// quality stream as the base sequence line is long. If the quality
// stream ends early, the error wraps fastq.ErrMalformedInput.
func Reconstruct(ids, seqs, ids2, quals io.Reader, out io.Writer, options Options) (stats Stats, err error) {
	idScanner, seqScanner, id2Scanner := fastq.NewScanner(ids), fastq.NewScanner(seqs), fastq.NewScanner(ids2)
	var (
		encoded []byte
		scores  []float32
		buf     []byte
	)
	for {
		hasID := idScanner.Scan()
		hasSeq := hasID && seqScanner.Scan()
		hasID2 := hasSeq && id2Scanner.Scan()
		if !hasID2 {
			stats.Truncated = hasID || seqScanner.Scan() || id2Scanner.Scan()
			break
		}
		seq := seqScanner.Bytes()
		if n := len(seq) * ScoreSize; cap(encoded) < n {
			encoded = make([]byte, n)
		} else {
			encoded = encoded[:n]
		}
		if _, err = io.ReadFull(quals, encoded); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				err = fmt.Errorf("%w: quality stream ends in record %v", fastq.ErrMalformedInput, stats.Records+1)
			}
			return stats, err
		}
		scores = DecodeScores(scores[:0], encoded)
		buf = append(buf[:0], idScanner.Bytes()...)
		buf = append(buf, '\n')
		buf = append(buf, seq...)
		buf = append(buf, '\n')
		buf = append(buf, id2Scanner.Bytes()...)
		buf = append(buf, '\n')
		buf = fastq.AppendQualityChars(buf, scores)
		buf = append(buf, '\n')
		if _, err = out.Write(buf); err != nil {
			return stats, err
		}
		stats.Records++
		stats.Scores += len(scores)
	}
	for _, sc := range []interface{ Err() error }{idScanner, seqScanner, id2Scanner} {
		if err = sc.Err(); err != nil {
			return stats, err
		}
	}
	trailing, err := io.Copy(io.Discard, quals)
	if err != nil {
		return stats, err
	}
	stats.TrailingScores = int(trailing / ScoreSize)
	if stats.Truncated {
		if options.Strict {
			return stats, fmt.Errorf("%w: text streams have different line counts after %v records", fastq.ErrMalformedInput, stats.Records)
		}
		log.Printf("Warning: text streams have different line counts, reconstruction truncated after %v records.\n", stats.Records)
	}
	if trailing > 0 {
		if options.Strict {
			return stats, fmt.Errorf("%w: %v unused bytes at the end of the quality stream", fastq.ErrMalformedInput, trailing)
		}
		log.Printf("Warning: %v unused bytes at the end of the quality stream.\n", trailing)
	}
	return stats, nil
}

// ReconstructFile rebuilds a FASTQ file from the column streams named
// by in, creating or truncating the output file.
//
// All inputs and the output are opened before anything is written. If
// one of them cannot be opened, the error wraps fastq.ErrOpenStream.
func ReconstructFile(in Paths, output string, options Options) (stats Stats, err error) {
	inputs, closers, err := openAll(options.BufferSize, in)
	if err != nil {
		return stats, err
	}
	defer func() { closeAll(closers, &err) }()
	out, err := fastq.Create(output, options.BufferSize)
	if err != nil {
		return stats, err
	}
	closers = append(closers, out)
	return Reconstruct(inputs[0], inputs[1], inputs[2], inputs[3], out, options)
}
