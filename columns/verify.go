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
	"os"

	"github.com/exascience/elfastq/fastq"
)

// Verify checks that the column streams named by in are consistent
// with each other without reconstructing the FASTQ file: the three
// text streams must have the same number of lines, and the quality
// stream must contain exactly one score per base.
func Verify(in Paths) (stats Stats, err error) {
	inputs, closers, err := openAll(0, in)
	if err != nil {
		return stats, err
	}
	defer func() { closeAll(closers, &err) }()
	idScanner, seqScanner, id2Scanner := fastq.NewScanner(inputs[0]), fastq.NewScanner(inputs[1]), fastq.NewScanner(inputs[2])
	for {
		hasID, hasSeq, hasID2 := idScanner.Scan(), seqScanner.Scan(), id2Scanner.Scan()
		if hasID != hasSeq || hasID != hasID2 {
			return stats, fmt.Errorf("%w: text streams have different line counts after %v records", fastq.ErrMalformedInput, stats.Records)
		}
		if !hasID {
			break
		}
		stats.Records++
		stats.Scores += len(seqScanner.Bytes())
	}
	for _, sc := range []interface{ Err() error }{idScanner, seqScanner, id2Scanner} {
		if err = sc.Err(); err != nil {
			return stats, err
		}
	}
	info, err := os.Stat(in.Qualities)
	if err != nil {
		return stats, err
	}
	if expected := int64(stats.Scores) * ScoreSize; info.Size() != expected {
		return stats, fmt.Errorf("%w: quality stream %v has %v bytes, %v bytes expected for %v bases",
			fastq.ErrLengthMismatch, in.Qualities, info.Size(), expected, stats.Scores)
	}
	return stats, nil
}
