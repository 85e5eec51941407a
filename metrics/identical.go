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
	"encoding/hex"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Digest returns the hex encoded BLAKE3 hash of a file's contents.
func Digest(filename string) (digest string, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()
	h := blake3.New()
	if _, err = io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Identical determines whether two files have byte-identical contents
// by comparing their BLAKE3 digests. The digests are returned as well.
func Identical(filename1, filename2 string) (identical bool, digest1, digest2 string, err error) {
	if digest1, err = Digest(filename1); err != nil {
		return false, "", "", err
	}
	if digest2, err = Digest(filename2); err != nil {
		return false, "", "", err
	}
	return digest1 == digest2, digest1, digest2, nil
}
