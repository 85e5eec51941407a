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
	"math"

	"github.com/exascience/elfastq/fastq"
)

// Result is the distortion between two sequences of quality scores.
type Result struct {
	MSE    float64
	PSNR   float64
	Scores int
}

// PSNR returns the peak signal-to-noise ratio for the given mean
// squared error, using fastq.MaxScore as peak value. An MSE of 0
// yields +Inf.
func PSNR(mse float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(fastq.MaxScore*fastq.MaxScore/mse)
}

// Partial is a sum of squared score differences, together with the
// number of scores that contributed to the sum.
type Partial struct {
	SumOfSquares float64
	Count        int
}

// Add adds the sums and counts of q to p.
func (p *Partial) Add(q Partial) {
	p.SumOfSquares += q.SumOfSquares
	p.Count += q.Count
}

func (p *Partial) addScore(original, candidate int) {
	d := float64(original - candidate)
	p.SumOfSquares += d * d
	p.Count++
}

// addLine adds the differences between two quality lines at the given
// line number.
func (p *Partial) addLine(original, candidate []byte, line int) error {
	if len(original) != len(candidate) {
		return fmt.Errorf("%w: quality lines at line %v have %v and %v characters",
			fastq.ErrLengthMismatch, line, len(original), len(candidate))
	}
	for i, c := range original {
		p.addScore(fastq.IntScore(c), fastq.IntScore(candidate[i]))
	}
	return nil
}

// Result computes MSE and PSNR from p. The MSE is the sum of squares
// divided by the number of scores.
func (p Partial) Result() (Result, error) {
	if p.Count == 0 {
		return Result{}, fastq.ErrNoScores
	}
	mse := p.SumOfSquares / float64(p.Count)
	return Result{MSE: mse, PSNR: PSNR(mse), Scores: p.Count}, nil
}

// Compute computes the distortion between two score sequences, which
// must have the same length.
func Compute(original, candidate []int) (Result, error) {
	if len(original) != len(candidate) {
		return Result{}, fmt.Errorf("%w: %v and %v quality scores",
			fastq.ErrLengthMismatch, len(original), len(candidate))
	}
	var p Partial
	for i, s := range original {
		p.addScore(s, candidate[i])
	}
	return p.Result()
}
