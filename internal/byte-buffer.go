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

package internal

import "sync"

// maxPooledBuffer is the largest capacity a released buffer may have
// to be kept for reuse. A flush of 125000 long reads can produce
// buffers of several hundred megabytes that should not stay alive.
const maxPooledBuffer = 64 << 20

var bufPool = sync.Pool{New: func() interface{} {
	return new([]byte)
}}

// ReserveByteBuffer returns a slice of bytes of length 0, reusing the
// storage of a previously released buffer if one is available.
//
// Use ReleaseByteBuffer to return slices of bytes to the internal pool.
func ReserveByteBuffer() []byte {
	return (*bufPool.Get().(*[]byte))[:0]
}

// ReleaseByteBuffer makes the storage of buf available to subsequent
// calls of ReserveByteBuffer. Buffers that grew beyond 64 MiB are
// dropped.
func ReleaseByteBuffer(buf []byte) {
	if cap(buf) > maxPooledBuffer {
		return
	}
	bufPool.Put(&buf)
}
