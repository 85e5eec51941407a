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

// ComputeFromFiles computes the distortion between the quality scores
// of two FASTQ files without loading them into memory. Both files are
// read line by line in lockstep. Corresponding quality lines must have
// the same length, and both files must have the same number of lines.
func ComputeFromFiles(original, candidate string) (Result, error) {
	partial, err := computeChunk(original, candidate, wholeFile, false)
	if err != nil {
		return Result{}, err
	}
	return partial.Result()
}
