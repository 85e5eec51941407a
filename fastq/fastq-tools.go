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
	"fmt"
	"io"
)

// CountLines counts the lines of a FASTQ file.
func CountLines(name string) (lines int, err error) {
	in, err := Open(name, 0)
	if err != nil {
		return 0, err
	}
	defer func() {
		if nerr := in.Close(); err == nil {
			err = nerr
		}
	}()
	return countLines(in)
}

func countLines(r io.Reader) (lines int, err error) {
	sc := NewScanner(r)
	for sc.Scan() {
		lines++
	}
	return lines, sc.Err()
}

// CountRecords counts the records of a FASTQ file. The error wraps
// ErrLineCount if the file does not consist of complete records.
func CountRecords(name string) (int, error) {
	lines, err := CountLines(name)
	if err != nil {
		return 0, err
	}
	if lines%4 != 0 {
		return lines / 4, fmt.Errorf("%w: %v has %v lines", ErrLineCount, name, lines)
	}
	return lines / 4, nil
}

// Head copies the first n records of a FASTQ file into a new FASTQ
// file, and returns the number of records copied. Fewer than n
// records are copied if the input is shorter.
func Head(input, output string, n int) (records int, err error) {
	in, err := Open(input, 0)
	if err != nil {
		return 0, err
	}
	defer func() {
		if nerr := in.Close(); err == nil {
			err = nerr
		}
	}()
	out, err := Create(output, 0)
	if err != nil {
		return 0, err
	}
	defer func() {
		if nerr := out.Close(); err == nil {
			err = nerr
		}
	}()
	return head(in, out, n)
}

func head(r io.Reader, w io.Writer, n int) (int, error) {
	rs := NewRecordScanner(r)
	var buf []byte
	for rs.Records() < n && rs.Scan() {
		buf = AppendRecord(buf[:0], rs.Record())
		if _, err := w.Write(buf); err != nil {
			return rs.Records(), err
		}
	}
	return rs.Records(), rs.Err()
}
