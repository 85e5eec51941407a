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
	"io"

	"github.com/exascience/elfastq/fastq"
)

// Column stream file extensions.
const (
	IdentifiersExt          = ".ids"
	BasesExt                = ".bases"
	SecondaryIdentifiersExt = ".ids2"
	QualitiesExt            = ".quals"
)

// Paths names the four column streams of a FASTQ file.
type Paths struct {
	Identifiers          string
	Bases                string
	SecondaryIdentifiers string
	Qualities            string
}

// PathsFromPrefix returns the column stream paths that share the given
// prefix, using the standard column stream file extensions.
func PathsFromPrefix(prefix string) Paths {
	return Paths{
		Identifiers:          prefix + IdentifiersExt,
		Bases:                prefix + BasesExt,
		SecondaryIdentifiers: prefix + SecondaryIdentifiersExt,
		Qualities:            prefix + QualitiesExt,
	}
}

// Stats summarizes a split, reconstruction or verification.
type Stats struct {
	// Records is the number of records processed.
	Records int

	// Scores is the number of quality scores processed.
	Scores int

	// Truncated is set when the text streams of a reconstruction
	// had different line counts.
	Truncated bool

	// TrailingScores is the number of unused scores at the end of
	// the quality stream after a reconstruction.
	TrailingScores int
}

func closeAll(closers []io.Closer, err *error) {
	for _, c := range closers {
		if nerr := c.Close(); *err == nil {
			*err = nerr
		}
	}
}

// createAll creates all named outputs, or none: if one of them cannot
// be created, the outputs created so far are closed again.
func createAll(bufferSize int, names ...string) (outputs []*fastq.OutputFile, closers []io.Closer, err error) {
	for _, name := range names {
		out, err := fastq.Create(name, bufferSize)
		if err != nil {
			closeAll(closers, new(error))
			return nil, nil, err
		}
		outputs = append(outputs, out)
		closers = append(closers, out)
	}
	return outputs, closers, nil
}

// openAll opens the three text streams and the quality stream of the
// given paths, or none of them.
func openAll(bufferSize int, in Paths) (inputs []*fastq.InputFile, closers []io.Closer, err error) {
	for i, name := range []string{in.Identifiers, in.Bases, in.SecondaryIdentifiers, in.Qualities} {
		var input *fastq.InputFile
		if i < 3 {
			input, err = fastq.Open(name, bufferSize)
		} else {
			input, err = fastq.OpenRaw(name, bufferSize)
		}
		if err != nil {
			closeAll(closers, new(error))
			return nil, nil, err
		}
		inputs = append(inputs, input)
		closers = append(closers, input)
	}
	return inputs, closers, nil
}
