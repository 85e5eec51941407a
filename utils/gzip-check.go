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

package utils

import (
	"bufio"
	"io"

	"github.com/klauspost/compress/gzip"
)

// IsGzip determines if the given byte scanner produces a gzip (or
// BGZF) file. It uses ReadByte and UnreadByte to check only the
// initial byte from the input. An empty input is not a gzip file.
func IsGzip(scanner io.ByteScanner) (bool, error) {
	b, err := scanner.ReadByte()
	if err == io.EOF {
		return false, nil
	} else if err != nil {
		return false, err
	}
	if err := scanner.UnreadByte(); err != nil {
		return false, err
	}
	return b == 0x1f, nil
}

// HandleGzip checks if the given reader produces a gzip file
// by looking at the initial byte. It then either returns
// a gzip.Reader, or returns the given reader unchanged.
// BGZF files are read as multistream gzip files.
// HandleGzip uses ReadByte und UnreadByte.
func HandleGzip(buf *bufio.Reader) (io.Reader, error) {
	if ok, err := IsGzip(buf); err != nil {
		return nil, err
	} else if !ok {
		return buf, nil
	}
	r, err := gzip.NewReader(buf)
	if err != nil {
		return nil, err
	}
	return r, nil
}
