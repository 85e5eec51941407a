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
	"github.com/exascience/elfastq/internal"
	"github.com/exascience/pargo/pipeline"
)

// ReadQualityScores returns the quality scores of all quality lines of
// a FASTQ file, that is every fourth line, in file order.
func ReadQualityScores(filename string) (scores []int, err error) {
	in, err := fastq.Open(filename, 0)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := in.Close(); err == nil {
			err = nerr
		}
	}()
	source := pipeline.NewScanner(in)
	source.Buffer(make([]byte, 0, 64*1024), fastq.MaxLineLength)
	var p pipeline.Pipeline
	p.Source(source)
	line := 0
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		for _, str := range data.([]string) {
			if line++; line%4 != 0 {
				continue
			}
			for i := 0; i < len(str); i++ {
				scores = append(scores, fastq.IntScore(str[i]))
			}
		}
		return data
	})))
	if err = internal.RunPipeline(&p); err != nil {
		return nil, err
	}
	return scores, nil
}
