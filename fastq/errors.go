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

package fastq

import (
	"errors"
	"fmt"
)

var (
	// ErrOpenStream is returned when an input or output stream cannot
	// be opened or created.
	ErrOpenStream = errors.New("cannot open stream")

	// ErrMalformedInput is returned when a FASTQ file ends in the
	// middle of a record, or when paired column streams disagree.
	ErrMalformedInput = errors.New("malformed input")

	// ErrLengthMismatch is returned when two compared quality lines or
	// quality score sequences differ in length.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrLineCount is returned when the number of lines of a FASTQ file
	// is not a multiple of 4. It is a kind of length mismatch.
	ErrLineCount = fmt.Errorf("%w: line count not a multiple of 4", ErrLengthMismatch)

	// ErrNoScores is returned when a distortion is requested for inputs
	// without any quality scores.
	ErrNoScores = errors.New("no quality scores")

	// ErrInvalidWorkerCount is returned for worker counts smaller than 1.
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)
