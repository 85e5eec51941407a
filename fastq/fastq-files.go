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
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/exascience/elfastq/utils"
)

// DefaultBufferSize is the size of the I/O buffers used when no
// explicit buffer size is requested.
const DefaultBufferSize = 4 << 20

// MaxLineLength is the longest line a Scanner accepts. Long-read
// sequencers produce single-line reads of several megabases.
const MaxLineLength = 256 << 20

func bufferSize(size int) int {
	if size <= 0 {
		return DefaultBufferSize
	}
	return size
}

// InputFile represents a FASTQ file or a column stream for input.
type InputFile struct {
	file   *os.File
	reader io.Reader
}

// Open a FASTQ file or column stream for input.
//
// Gzip and BGZF compressed files are decompressed transparently.
// If the name is "/dev/stdin", then the input is read from os.Stdin.
// A bufferSize <= 0 selects DefaultBufferSize.
func Open(name string, bufferSize int) (*InputFile, error) {
	return open(name, bufferSize, true)
}

// OpenRaw opens a file for input without checking for compression.
// It is used for the binary quality score stream.
func OpenRaw(name string, size int) (*InputFile, error) {
	return open(name, size, false)
}

func open(name string, size int, decompress bool) (*InputFile, error) {
	var file *os.File
	if name == "/dev/stdin" {
		file = os.Stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOpenStream, err)
		}
		file = f
	}
	buf := bufio.NewReaderSize(file, bufferSize(size))
	if !decompress {
		return &InputFile{file: file, reader: buf}, nil
	}
	reader, err := utils.HandleGzip(buf)
	if err != nil {
		if file != os.Stdin {
			_ = file.Close()
		}
		return nil, fmt.Errorf("%w: %v in %v", ErrOpenStream, err, name)
	}
	return &InputFile{file: file, reader: reader}, nil
}

// Read implements io.Reader.
func (f *InputFile) Read(p []byte) (int, error) {
	return f.reader.Read(p)
}

// Close closes the input file. os.Stdin is never closed.
func (f *InputFile) Close() error {
	if f.file == os.Stdin {
		return nil
	}
	return f.file.Close()
}

// OutputFile represents a FASTQ file or a column stream for output.
type OutputFile struct {
	file   *os.File
	writer *bufio.Writer
}

// Create a FASTQ file or column stream for output, truncating any
// existing file.
//
// If the name is "/dev/stdout", then the output is written to
// os.Stdout. A bufferSize <= 0 selects DefaultBufferSize.
func Create(name string, size int) (*OutputFile, error) {
	var file *os.File
	if name == "/dev/stdout" {
		file = os.Stdout
	} else {
		f, err := os.Create(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOpenStream, err)
		}
		file = f
	}
	return &OutputFile{file: file, writer: bufio.NewWriterSize(file, bufferSize(size))}, nil
}

// Write implements io.Writer.
func (f *OutputFile) Write(p []byte) (int, error) {
	return f.writer.Write(p)
}

// Close flushes and closes the output file. os.Stdout is flushed,
// but not closed.
func (f *OutputFile) Close() error {
	err := f.writer.Flush()
	if f.file == os.Stdout {
		return err
	}
	if nerr := f.file.Close(); err == nil {
		err = nerr
	}
	return err
}

// NewScanner returns a line scanner that accepts lines of up to
// MaxLineLength bytes. Line terminators, including a carriage return
// before the newline, are not part of the scanned lines.
func NewScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	return sc
}

// Record is one FASTQ record. The slices are only valid until the
// next call of RecordScanner.Scan.
type Record struct {
	ID, Seq, ID2, Qual []byte
}

// AppendRecord appends the four newline-terminated lines of a
// record to buf.
func AppendRecord(buf []byte, record *Record) []byte {
	buf = append(buf, record.ID...)
	buf = append(buf, '\n')
	buf = append(buf, record.Seq...)
	buf = append(buf, '\n')
	buf = append(buf, record.ID2...)
	buf = append(buf, '\n')
	buf = append(buf, record.Qual...)
	return append(buf, '\n')
}

// RecordScanner reads FASTQ records, four lines at a time.
type RecordScanner struct {
	sc      *bufio.Scanner
	lines   [4][]byte
	record  Record
	records int
	err     error
}

// NewRecordScanner returns a RecordScanner that reads from r.
func NewRecordScanner(r io.Reader) *RecordScanner {
	return &RecordScanner{sc: NewScanner(r)}
}

// Scan advances to the next record. It returns false at the end of
// the input, or when an error occurred. If the input ends after the
// first, second or third line of a record, Err returns an error
// wrapping ErrMalformedInput.
func (rs *RecordScanner) Scan() bool {
	if rs.err != nil {
		return false
	}
	for i := range rs.lines {
		if !rs.sc.Scan() {
			if err := rs.sc.Err(); err != nil {
				rs.err = err
			} else if i > 0 {
				rs.err = fmt.Errorf("%w: record %v ends after %v of 4 lines", ErrMalformedInput, rs.records+1, i)
			}
			return false
		}
		rs.lines[i] = append(rs.lines[i][:0], rs.sc.Bytes()...)
	}
	rs.records++
	rs.record = Record{ID: rs.lines[0], Seq: rs.lines[1], ID2: rs.lines[2], Qual: rs.lines[3]}
	return true
}

// Record returns the most recently scanned record.
func (rs *RecordScanner) Record() *Record {
	return &rs.record
}

// Records returns the number of complete records scanned so far.
func (rs *RecordScanner) Records() int {
	return rs.records
}

// Err returns the first error that occurred during scanning.
func (rs *RecordScanner) Err() error {
	return rs.err
}
