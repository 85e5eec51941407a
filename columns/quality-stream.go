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
	"encoding/binary"
	"math"
)

// ScoreSize is the number of bytes of one score in a quality stream.
const ScoreSize = 4

// AppendEncodedScores appends the native byte order encoding of the
// given scores to buf.
func AppendEncodedScores(buf []byte, scores []float32) []byte {
	for _, s := range scores {
		buf = binary.NativeEndian.AppendUint32(buf, math.Float32bits(s))
	}
	return buf
}

// DecodeScores appends the scores encoded in buf to scores.
// len(buf) must be a multiple of ScoreSize.
func DecodeScores(scores []float32, buf []byte) []float32 {
	for i := 0; i+ScoreSize <= len(buf); i += ScoreSize {
		scores = append(scores, math.Float32frombits(binary.NativeEndian.Uint32(buf[i:])))
	}
	return scores
}
