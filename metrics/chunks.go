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

package metrics

import (
	"fmt"
	"io"
	"math"

	"github.com/exascience/elfastq/fastq"
)

// Chunk is a range of lines of a FASTQ file. Start and End are 1-based
// and inclusive. A chunk with End < Start is empty.
type Chunk struct {
	Start, End int
}

// Empty returns true if the chunk contains no lines.
func (c Chunk) Empty() bool {
	return c.End < c.Start
}

// wholeFile is the chunk used for streaming over complete files.
var wholeFile = Chunk{Start: 1, End: math.MaxInt}

// Chunks divides totalLines lines into one chunk per worker. All
// workers get the same number of records, except the last worker,
// which also gets the remaining records. Chunk boundaries always fall
// on record boundaries if totalLines is a multiple of 4. A worker
// count smaller than 1 is treated as 1.
func Chunks(totalLines, workers int) []Chunk {
	if workers < 1 {
		workers = 1
	}
	linesPerWorker := totalLines / 4 / workers * 4
	chunks := make([]Chunk, workers)
	for i := range chunks {
		chunks[i].Start = i*linesPerWorker + 1
		if i == workers-1 {
			chunks[i].End = totalLines
		} else {
			chunks[i].End = (i + 1) * linesPerWorker
		}
	}
	return chunks
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// scanChunk reads both inputs in lockstep from their first line, skips
// all lines before the chunk, and accumulates the squared differences
// of the quality lines inside the chunk. If last is set, the inputs
// must not have any lines after the chunk.
func scanChunk(original, candidate io.Reader, chunk Chunk, last bool) (partial Partial, err error) {
	origScanner, candScanner := fastq.NewScanner(original), fastq.NewScanner(candidate)
	for line := 1; line <= chunk.End; line++ {
		hasOrig, hasCand := origScanner.Scan(), candScanner.Scan()
		if !hasOrig || !hasCand {
			if err = firstErr(origScanner.Err(), candScanner.Err()); err != nil {
				return partial, err
			}
			if hasOrig != hasCand {
				return partial, fmt.Errorf("%w: files have different line counts, one ends before line %v", fastq.ErrLengthMismatch, line)
			}
			return partial, nil
		}
		if line < chunk.Start || line%4 != 0 {
			continue
		}
		if err = partial.addLine(origScanner.Bytes(), candScanner.Bytes(), line); err != nil {
			return partial, err
		}
	}
	if last {
		hasOrig, hasCand := origScanner.Scan(), candScanner.Scan()
		if err = firstErr(origScanner.Err(), candScanner.Err()); err != nil {
			return partial, err
		}
		if hasOrig || hasCand {
			return partial, fmt.Errorf("%w: files have different line counts, one continues after line %v", fastq.ErrLengthMismatch, chunk.End)
		}
	}
	return partial, nil
}

// computeChunk opens its own handles to both files and scans one chunk.
func computeChunk(original, candidate string, chunk Chunk, last bool) (partial Partial, err error) {
	orig, err := fastq.Open(original, 0)
	if err != nil {
		return partial, err
	}
	defer func() {
		if nerr := orig.Close(); err == nil {
			err = nerr
		}
	}()
	cand, err := fastq.Open(candidate, 0)
	if err != nil {
		return partial, err
	}
	defer func() {
		if nerr := cand.Close(); err == nil {
			err = nerr
		}
	}()
	return scanChunk(orig, cand, chunk, last)
}
