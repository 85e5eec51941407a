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

	"github.com/exascience/elfastq/fastq"
	"github.com/exascience/elfastq/internal"
)

// RecordsPerFlush is the number of records that are buffered in
// memory before they are written to the column streams.
const RecordsPerFlush = 125000

type splitBuffers struct {
	ids, seqs, ids2 []byte
	scores          []float32
	records         int
}

func (b *splitBuffers) add(record *fastq.Record) {
	b.ids = append(append(b.ids, record.ID...), '\n')
	b.seqs = append(append(b.seqs, record.Seq...), '\n')
	b.ids2 = append(append(b.ids2, record.ID2...), '\n')
	b.scores = fastq.AppendScores(b.scores, record.Qual)
	b.records++
}

func (b *splitBuffers) flush(ids, seqs, ids2, quals io.Writer) error {
	if b.records == 0 {
		return nil
	}
	if _, err := ids.Write(b.ids); err != nil {
		return err
	}
	if _, err := seqs.Write(b.seqs); err != nil {
		return err
	}
	if _, err := ids2.Write(b.ids2); err != nil {
		return err
	}
	buf := AppendEncodedScores(internal.ReserveByteBuffer(), b.scores)
	_, err := quals.Write(buf)
	internal.ReleaseByteBuffer(buf)
	if err != nil {
		return err
	}
	b.ids, b.seqs, b.ids2, b.scores = b.ids[:0], b.seqs[:0], b.ids2[:0], b.scores[:0]
	b.records = 0
	return nil
}

// Split reads FASTQ records from r and distributes them over the four
// column streams.
//
// Records are buffered and written every RecordsPerFlush records, and
// at the end of the input. If the input ends in the middle of a
// record, or if a quality line is not as long as its base sequence
// line, the error wraps fastq.ErrMalformedInput, and the records
// buffered since the last flush are not written.
func Split(r io.Reader, ids, seqs, ids2, quals io.Writer) (stats Stats, err error) {
	rs := fastq.NewRecordScanner(r)
	var buffers splitBuffers
	for rs.Scan() {
		record := rs.Record()
		if len(record.Qual) != len(record.Seq) {
			return stats, fmt.Errorf("%w: record %v has %v bases and %v quality characters",
				fastq.ErrMalformedInput, rs.Records(), len(record.Seq), len(record.Qual))
		}
		buffers.add(record)
		stats.Records++
		stats.Scores += len(record.Qual)
		if buffers.records == RecordsPerFlush {
			if err = buffers.flush(ids, seqs, ids2, quals); err != nil {
				return stats, err
			}
		}
	}
	if err = rs.Err(); err != nil {
		return stats, err
	}
	return stats, buffers.flush(ids, seqs, ids2, quals)
}

// SplitFile splits a FASTQ file into the four column streams named by
// out, creating or truncating them.
//
// The input and all outputs are opened before anything is written. If
// one of them cannot be opened, the error wraps fastq.ErrOpenStream.
// bufferSize is the size of the I/O buffers; if it is <= 0,
// fastq.DefaultBufferSize is used.
func SplitFile(input string, out Paths, bufferSize int) (stats Stats, err error) {
	in, err := fastq.Open(input, bufferSize)
	if err != nil {
		return stats, err
	}
	closers := []io.Closer{in}
	defer func() { closeAll(closers, &err) }()
	outputs, outClosers, err := createAll(bufferSize, out.Identifiers, out.Bases, out.SecondaryIdentifiers, out.Qualities)
	if err != nil {
		return stats, err
	}
	closers = append(closers, outClosers...)
	return Split(in, outputs[0], outputs[1], outputs[2], outputs[3])
}
