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

import "math"

const (
	// ScoreOffset is subtracted from a quality character to obtain its score.
	ScoreOffset = 33

	// MinScore is the smallest score a reconstructed quality character encodes.
	MinScore = 2

	// MaxScore is the peak value used for PSNR computations.
	MaxScore = 40
)

// Score returns the quality score of a quality character as a float32,
// the representation used in quality score streams.
func Score(c byte) float32 {
	return float32(int(c) - ScoreOffset)
}

// IntScore returns the quality score of a quality character.
func IntScore(c byte) int {
	return int(c) - ScoreOffset
}

// QualityChar converts a quality score back to a quality character.
//
// The score is rounded half away from zero and clamped to MinScore
// from below, so that characters encoding scores 0 and 1 do not
// survive a round trip. NaN is treated as MinScore. There is no upper
// clamp other than the range of a byte.
func QualityChar(score float32) byte {
	s := math.Round(float64(score))
	switch {
	case math.IsNaN(s), s < MinScore:
		return MinScore + ScoreOffset
	case s > math.MaxUint8-ScoreOffset:
		return math.MaxUint8
	default:
		return byte(int(s) + ScoreOffset)
	}
}

// AppendScores appends the float32 scores of a quality line to scores.
func AppendScores(scores []float32, qual []byte) []float32 {
	for _, c := range qual {
		scores = append(scores, Score(c))
	}
	return scores
}

// AppendQualityChars appends the quality characters for the given
// scores to qual.
func AppendQualityChars(qual []byte, scores []float32) []byte {
	for _, s := range scores {
		qual = append(qual, QualityChar(s))
	}
	return qual
}
