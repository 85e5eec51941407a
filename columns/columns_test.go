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
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/exascience/elfastq/fastq"
	"github.com/exascience/elfastq/metrics"
	"github.com/google/go-cmp/cmp"
)

func makeFastq(records int, seed int64) string {
	rnd := rand.New(rand.NewSource(seed))
	var buf strings.Builder
	for i := 0; i < records; i++ {
		n := 1 + rnd.Intn(60)
		seq := make([]byte, n)
		qual := make([]byte, n)
		for j := range seq {
			seq[j] = "ACGTN"[rnd.Intn(5)]
			qual[j] = byte(33 + 2 + rnd.Intn(40))
		}
		fmt.Fprintf(&buf, "@read%v length=%v\n%s\n+read%v\n%s\n", i, n, seq, i, qual)
	}
	return buf.String()
}

func split(t *testing.T, input string) (ids, seqs, ids2, quals *bytes.Buffer, stats Stats) {
	t.Helper()
	ids, seqs, ids2, quals = new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)
	stats, err := Split(strings.NewReader(input), ids, seqs, ids2, quals)
	if err != nil {
		t.Fatal(err)
	}
	return
}

func TestSplit(t *testing.T) {
	ids, seqs, ids2, quals, stats := split(t, "@r1\nACGT\n+\nII#!\n@r2\nAC\n+r2\n$%\n")
	if ids.String() != "@r1\n@r2\n" {
		t.Errorf("identifier stream %q", ids)
	}
	if seqs.String() != "ACGT\nAC\n" {
		t.Errorf("base stream %q", seqs)
	}
	if ids2.String() != "+\n+r2\n" {
		t.Errorf("secondary identifier stream %q", ids2)
	}
	scores := DecodeScores(nil, quals.Bytes())
	if diff := cmp.Diff([]float32{40, 40, 2, 0, 3, 4}, scores); diff != "" {
		t.Errorf("quality stream mismatch (-want +got):\n%s", diff)
	}
	if stats.Records != 2 || stats.Scores != 6 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestSplitReconstruct(t *testing.T) {
	input := makeFastq(500, 42)
	ids, seqs, ids2, quals, stats := split(t, input)
	if quals.Len() != stats.Scores*ScoreSize {
		t.Errorf("quality stream has %v bytes for %v scores", quals.Len(), stats.Scores)
	}
	var out bytes.Buffer
	rstats, err := Reconstruct(ids, seqs, ids2, quals, &out, Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	if rstats.Records != 500 || rstats.Scores != stats.Scores || rstats.Truncated || rstats.TrailingScores != 0 {
		t.Errorf("unexpected stats %+v", rstats)
	}
	if out.String() != input {
		t.Error("round trip did not reproduce the input")
	}
}

func TestReconstructClampsLowScores(t *testing.T) {
	ids, seqs, ids2, quals, _ := split(t, "@r1\nACGTA\n+\n!\"#$I\n")
	var out bytes.Buffer
	if _, err := Reconstruct(ids, seqs, ids2, quals, &out, Options{}); err != nil {
		t.Fatal(err)
	}
	if expected := "@r1\nACGTA\n+\n###$I\n"; out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}
}

func TestReconstructRoundsScores(t *testing.T) {
	quals := AppendEncodedScores(nil, []float32{2.4, 2.5, 39.6, 1.9})
	var out bytes.Buffer
	_, err := Reconstruct(strings.NewReader("@r\n"), strings.NewReader("ACGT\n"), strings.NewReader("+\n"), bytes.NewReader(quals), &out, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if expected := "@r\nACGT\n+\n#$I#\n"; out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}
}

func TestSplitFlushes(t *testing.T) {
	input := strings.Repeat("@r\nA\n+\nI\n", RecordsPerFlush+3)
	ids, seqs, ids2, quals, stats := split(t, input)
	if stats.Records != RecordsPerFlush+3 {
		t.Errorf("expected %v records, got %v", RecordsPerFlush+3, stats.Records)
	}
	for _, stream := range []*bytes.Buffer{ids, seqs, ids2} {
		if lines := bytes.Count(stream.Bytes(), []byte("\n")); lines != stats.Records {
			t.Errorf("text stream has %v lines", lines)
		}
	}
	if quals.Len() != stats.Records*ScoreSize {
		t.Errorf("quality stream has %v bytes", quals.Len())
	}
}

func TestSplitMalformed(t *testing.T) {
	var ids, seqs, ids2, quals bytes.Buffer
	_, err := Split(strings.NewReader("@r1\nACGT\n+\nIIII\n@r2\n"), &ids, &seqs, &ids2, &quals)
	if !errors.Is(err, fastq.ErrMalformedInput) {
		t.Errorf("expected malformed input error, got %v", err)
	}
	if ids.Len()+seqs.Len()+ids2.Len()+quals.Len() != 0 {
		t.Error("unflushed records were written")
	}
}

func TestSplitQualityLengthMismatch(t *testing.T) {
	for _, input := range []string{
		"@r1\nACGT\n+\nIII\n@r2\nAC\n+\nII\n",
		"@r1\nAC\n+\nII\n@r2\nAC\n+\nIII\n",
		"@r1\n\n+\nI\n",
	} {
		var ids, seqs, ids2, quals bytes.Buffer
		_, err := Split(strings.NewReader(input), &ids, &seqs, &ids2, &quals)
		if !errors.Is(err, fastq.ErrMalformedInput) {
			t.Errorf("Split(%q): expected malformed input error, got %v", input, err)
		}
		if ids.Len()+seqs.Len()+ids2.Len()+quals.Len() != 0 {
			t.Errorf("Split(%q) wrote records with mismatched quality lines", input)
		}
	}
}

func TestSplitFileQualityLengthMismatch(t *testing.T) {
	dir := t.TempDir()
	fastqFile := filepath.Join(dir, "reads.fastq")
	if err := os.WriteFile(fastqFile, []byte(makeFastq(10, 3)+"@bad\nACGT\n+\nIII\n"), 0666); err != nil {
		t.Fatal(err)
	}
	paths := PathsFromPrefix(filepath.Join(dir, "reads"))
	if _, err := SplitFile(fastqFile, paths, 0); !errors.Is(err, fastq.ErrMalformedInput) {
		t.Errorf("expected malformed input error, got %v", err)
	}
	info, err := os.Stat(paths.Qualities)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Errorf("quality stream has %v bytes after a failed split", info.Size())
	}
}

func TestSplitCRLF(t *testing.T) {
	ids, seqs, ids2, quals, stats := split(t, "@r1\r\nACGT\r\n+\r\nIIII\r\n")
	if stats.Scores != 4 || quals.Len() != 4*ScoreSize {
		t.Errorf("carriage returns scored: %+v", stats)
	}
	var out bytes.Buffer
	if _, err := Reconstruct(ids, seqs, ids2, quals, &out, Options{Strict: true}); err != nil {
		t.Fatal(err)
	}
	if expected := "@r1\nACGT\n+\nIIII\n"; out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}
}

func TestReconstructTruncation(t *testing.T) {
	ids := "@r1\n@r2\n@r3\n"
	seqs := "AC\nGT\n"
	ids2 := "+\n+\n+\n"
	quals := AppendEncodedScores(nil, []float32{30, 30, 30, 30})
	var out bytes.Buffer
	stats, err := Reconstruct(strings.NewReader(ids), strings.NewReader(seqs), strings.NewReader(ids2), bytes.NewReader(quals), &out, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !stats.Truncated || stats.Records != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if expected := "@r1\nAC\n+\n??\n@r2\nGT\n+\n??\n"; out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}
	out.Reset()
	_, err = Reconstruct(strings.NewReader(ids), strings.NewReader(seqs), strings.NewReader(ids2), bytes.NewReader(quals), &out, Options{Strict: true})
	if !errors.Is(err, fastq.ErrMalformedInput) {
		t.Errorf("expected malformed input error in strict mode, got %v", err)
	}
}

func TestReconstructShortQualityStream(t *testing.T) {
	quals := AppendEncodedScores(nil, []float32{30, 30, 30})
	var out bytes.Buffer
	_, err := Reconstruct(strings.NewReader("@r1\n"), strings.NewReader("ACGT\n"), strings.NewReader("+\n"), bytes.NewReader(quals), &out, Options{})
	if !errors.Is(err, fastq.ErrMalformedInput) {
		t.Errorf("expected malformed input error, got %v", err)
	}
}

func TestReconstructTrailingScores(t *testing.T) {
	quals := AppendEncodedScores(nil, []float32{30, 30, 30})
	var out bytes.Buffer
	stats, err := Reconstruct(strings.NewReader("@r1\n"), strings.NewReader("A\n"), strings.NewReader("+\n"), bytes.NewReader(quals), &out, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if stats.TrailingScores != 2 {
		t.Errorf("expected 2 trailing scores, got %v", stats.TrailingScores)
	}
}

func TestSplitFileReconstructFile(t *testing.T) {
	dir := t.TempDir()
	input := makeFastq(100, 7)
	fastqFile := filepath.Join(dir, "reads.fastq")
	if err := os.WriteFile(fastqFile, []byte(input), 0666); err != nil {
		t.Fatal(err)
	}
	paths := PathsFromPrefix(filepath.Join(dir, "reads"))
	if _, err := SplitFile(fastqFile, paths, 0); err != nil {
		t.Fatal(err)
	}
	stats, err := Verify(paths)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Records != 100 {
		t.Errorf("Verify counted %v records", stats.Records)
	}
	output := filepath.Join(dir, "rebuilt.fastq")
	if _, err := ReconstructFile(paths, output, Options{Strict: true, BufferSize: 4096}); err != nil {
		t.Fatal(err)
	}
	rebuilt, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(rebuilt) != input {
		t.Error("file round trip did not reproduce the input")
	}
	if identical, _, _, err := metrics.Identical(fastqFile, output); err != nil || !identical {
		t.Errorf("reconstructed file differs from the input: %v", err)
	}
}

func TestSplitFileOpenErrors(t *testing.T) {
	dir := t.TempDir()
	paths := PathsFromPrefix(filepath.Join(dir, "reads"))
	if _, err := SplitFile(filepath.Join(dir, "missing.fastq"), paths, 0); !errors.Is(err, fastq.ErrOpenStream) {
		t.Errorf("expected open error, got %v", err)
	}
	if _, err := os.Stat(paths.Identifiers); !os.IsNotExist(err) {
		t.Error("outputs created for a missing input")
	}
	fastqFile := filepath.Join(dir, "reads.fastq")
	if err := os.WriteFile(fastqFile, []byte(makeFastq(3, 1)), 0666); err != nil {
		t.Fatal(err)
	}
	paths.Qualities = filepath.Join(dir, "missing", "reads.quals")
	if _, err := SplitFile(fastqFile, paths, 0); !errors.Is(err, fastq.ErrOpenStream) {
		t.Errorf("expected open error, got %v", err)
	}
	if _, err := ReconstructFile(paths, filepath.Join(dir, "out.fastq"), Options{}); !errors.Is(err, fastq.ErrOpenStream) {
		t.Errorf("expected open error, got %v", err)
	}
}

func TestVerifyMismatch(t *testing.T) {
	dir := t.TempDir()
	paths := PathsFromPrefix(filepath.Join(dir, "reads"))
	for name, content := range map[string]string{
		paths.Identifiers:          "@r1\n@r2\n",
		paths.Bases:                "ACGT\nAC\n",
		paths.SecondaryIdentifiers: "+\n+\n",
		paths.Qualities:            string(AppendEncodedScores(nil, make([]float32, 5))),
	} {
		if err := os.WriteFile(name, []byte(content), 0666); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := Verify(paths); !errors.Is(err, fastq.ErrLengthMismatch) {
		t.Errorf("expected length mismatch, got %v", err)
	}
	if err := os.WriteFile(paths.SecondaryIdentifiers, []byte("+\n"), 0666); err != nil {
		t.Fatal(err)
	}
	if _, err := Verify(paths); !errors.Is(err, fastq.ErrMalformedInput) {
		t.Errorf("expected malformed input, got %v", err)
	}
}
