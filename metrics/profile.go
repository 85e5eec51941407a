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
	"github.com/exascience/elfastq/fastq"
	"github.com/willf/bitset"
	"gonum.org/v1/gonum/stat"
)

// QualityProfile summarizes the quality lines of a FASTQ file.
type QualityProfile struct {
	Records int
	Scores  int

	// Alphabet contains the quality characters that occur in the file.
	Alphabet *bitset.BitSet

	// Histogram counts the occurrences of each quality character.
	Histogram [256]int

	Min, Max     int
	Mean, StdDev float64
}

// Distinct returns the distinct quality characters in ascending order.
func (profile *QualityProfile) Distinct() []byte {
	var chars []byte
	for i, ok := profile.Alphabet.NextSet(0); ok; i, ok = profile.Alphabet.NextSet(i + 1) {
		chars = append(chars, byte(i))
	}
	return chars
}

// Profile reads the quality lines of a FASTQ file and computes the
// distribution of its quality scores.
func Profile(filename string) (profile *QualityProfile, err error) {
	in, err := fastq.Open(filename, 0)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := in.Close(); err == nil {
			err = nerr
		}
	}()
	profile = &QualityProfile{Alphabet: bitset.New(256)}
	rs := fastq.NewRecordScanner(in)
	for rs.Scan() {
		for _, c := range rs.Record().Qual {
			profile.Histogram[c]++
		}
	}
	if err = rs.Err(); err != nil {
		return nil, err
	}
	profile.Records = rs.Records()
	var scores, weights []float64
	for c, n := range profile.Histogram {
		if n == 0 {
			continue
		}
		profile.Alphabet.Set(uint(c))
		profile.Scores += n
		scores = append(scores, float64(fastq.IntScore(byte(c))))
		weights = append(weights, float64(n))
	}
	if profile.Scores == 0 {
		return profile, nil
	}
	profile.Min, profile.Max = int(scores[0]), int(scores[len(scores)-1])
	if profile.Scores == 1 {
		profile.Mean = scores[0]
		return profile, nil
	}
	profile.Mean, profile.StdDev = stat.MeanStdDev(scores, weights)
	return profile, nil
}
