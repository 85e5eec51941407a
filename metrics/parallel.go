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
	"errors"
	"fmt"

	"github.com/exascience/elfastq/fastq"
	"github.com/exascience/pargo/parallel"
)

type workerResult struct {
	partial Partial
	err     error
}

// ComputeParallel computes the distortion between the quality scores
// of two FASTQ files with the given number of workers.
//
// The original file is scanned once to count its lines, which must be
// a multiple of 4. The lines are then divided into record-aligned
// chunks, one per worker. Each worker opens its own handles to both
// files, scans them from the start up to the end of its chunk, and
// returns its partial sums. The partial sums are combined after all
// workers are done. If any worker fails, a single error joining all
// worker errors is returned.
func ComputeParallel(original, candidate string, workers int) (Result, error) {
	if workers < 1 {
		return Result{}, fmt.Errorf("%w: %v", fastq.ErrInvalidWorkerCount, workers)
	}
	lines, err := fastq.CountLines(original)
	if err != nil {
		return Result{}, err
	}
	if lines%4 != 0 {
		return Result{}, fmt.Errorf("%w: %v has %v lines", fastq.ErrLineCount, original, lines)
	}
	chunks := Chunks(lines, workers)
	results := make([]workerResult, workers)
	parallel.Range(0, workers, workers, func(low, high int) {
		for i := low; i < high; i++ {
			if chunks[i].Empty() {
				continue
			}
			results[i].partial, results[i].err = computeChunk(original, candidate, chunks[i], i == workers-1)
		}
	})
	var (
		total Partial
		errs  []error
	)
	for i, result := range results {
		if result.err != nil {
			errs = append(errs, fmt.Errorf("worker %v (lines %v-%v): %w", i, chunks[i].Start, chunks[i].End, result.err))
			continue
		}
		total.Add(result.partial)
	}
	if len(errs) > 0 {
		return Result{}, errors.Join(errs...)
	}
	return total.Result()
}
