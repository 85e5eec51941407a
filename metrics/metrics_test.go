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
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/exascience/elfastq/fastq"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return filename
}

// makePair returns an original FASTQ file and a candidate with the
// same structure, but with perturbed quality scores.
func makePair(records int, seed int64) (original, candidate string) {
	rnd := rand.New(rand.NewSource(seed))
	var orig, cand strings.Builder
	for i := 0; i < records; i++ {
		n := 1 + rnd.Intn(50)
		seq := strings.Repeat("A", n)
		q1, q2 := make([]byte, n), make([]byte, n)
		for j := range q1 {
			q1[j] = byte(33 + rnd.Intn(42))
			q2[j] = byte(33 + rnd.Intn(42))
		}
		fmt.Fprintf(&orig, "@r%v\n%s\n+\n%s\n", i, seq, q1)
		fmt.Fprintf(&cand, "@r%v\n%s\n+\n%s\n", i, seq, q2)
	}
	return orig.String(), cand.String()
}

func closeTo(x, y float64) bool {
	return math.Abs(x-y) <= 1e-6
}

func TestCompute(t *testing.T) {
	result, err := Compute([]int{0, 0, 0, 0}, []int{2, 2, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if result.MSE != 2.5 || result.Scores != 4 {
		t.Errorf("unexpected result %+v", result)
	}
	if !closeTo(result.PSNR, 10*math.Log10(640)) {
		t.Errorf("unexpected PSNR %v", result.PSNR)
	}
	result, err = Compute([]int{3, 40, 17}, []int{3, 40, 17})
	if err != nil {
		t.Fatal(err)
	}
	if result.MSE != 0 || !math.IsInf(result.PSNR, 1) {
		t.Errorf("identical scores give %+v", result)
	}
	if _, err = Compute([]int{1, 2}, []int{1}); !errors.Is(err, fastq.ErrLengthMismatch) {
		t.Errorf("expected length mismatch, got %v", err)
	}
	if _, err = Compute(nil, nil); !errors.Is(err, fastq.ErrNoScores) {
		t.Errorf("expected no scores error, got %v", err)
	}
}

func TestPartialAdd(t *testing.T) {
	p := Partial{SumOfSquares: 10, Count: 4}
	p.Add(Partial{SumOfSquares: 6, Count: 4})
	result, err := p.Result()
	if err != nil {
		t.Fatal(err)
	}
	if result.MSE != 2 || result.Scores != 8 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestChunks(t *testing.T) {
	for _, test := range []struct {
		lines, workers int
	}{
		{80, 1}, {80, 2}, {80, 5}, {84, 5}, {8, 5}, {0, 3}, {400, 7},
	} {
		chunks := Chunks(test.lines, test.workers)
		if len(chunks) != test.workers {
			t.Fatalf("Chunks(%v, %v) returned %v chunks", test.lines, test.workers, len(chunks))
		}
		next := 1
		for i, chunk := range chunks {
			if chunk.Empty() {
				continue
			}
			if chunk.Start != next {
				t.Errorf("Chunks(%v, %v): chunk %v starts at %v, expected %v", test.lines, test.workers, i, chunk.Start, next)
			}
			if (chunk.Start-1)%4 != 0 || chunk.End%4 != 0 {
				t.Errorf("Chunks(%v, %v): chunk %v is not record aligned: %+v", test.lines, test.workers, i, chunk)
			}
			next = chunk.End + 1
		}
		if next != test.lines+1 {
			t.Errorf("Chunks(%v, %v) covers %v lines", test.lines, test.workers, next-1)
		}
	}
	for _, workers := range []int{0, -3} {
		if diff := cmp.Diff([]Chunk{{1, 80}}, Chunks(80, workers)); diff != "" {
			t.Errorf("Chunks(80, %v) mismatch (-want +got):\n%s", workers, diff)
		}
	}
	expected := []Chunk{{1, 16}, {17, 32}, {33, 48}, {49, 64}, {65, 84}}
	if diff := cmp.Diff(expected, Chunks(84, 5)); diff != "" {
		t.Errorf("Chunks(84, 5) mismatch (-want +got):\n%s", diff)
	}
}

func TestVariantsAgree(t *testing.T) {
	dir := t.TempDir()
	orig, cand := makePair(20, 1)
	original := writeFile(t, dir, "original.fastq", orig)
	candidate := writeFile(t, dir, "candidate.fastq", cand)

	originalScores, err := ReadQualityScores(original)
	if err != nil {
		t.Fatal(err)
	}
	candidateScores, err := ReadQualityScores(candidate)
	if err != nil {
		t.Fatal(err)
	}
	full, err := Compute(originalScores, candidateScores)
	if err != nil {
		t.Fatal(err)
	}
	streaming, err := ComputeFromFiles(original, candidate)
	if err != nil {
		t.Fatal(err)
	}
	if !closeTo(full.MSE, streaming.MSE) || !closeTo(full.PSNR, streaming.PSNR) || full.Scores != streaming.Scores {
		t.Errorf("streaming result %+v differs from full result %+v", streaming, full)
	}
	for _, workers := range []int{1, 2, 3, 5, 7, 32} {
		result, err := ComputeParallel(original, candidate, workers)
		if err != nil {
			t.Fatalf("%v workers: %v", workers, err)
		}
		if !closeTo(full.MSE, result.MSE) || !closeTo(full.PSNR, result.PSNR) || full.Scores != result.Scores {
			t.Errorf("%v workers: result %+v differs from full result %+v", workers, result, full)
		}
	}
}

func TestIdenticalFiles(t *testing.T) {
	dir := t.TempDir()
	orig, _ := makePair(10, 2)
	original := writeFile(t, dir, "original.fastq", orig)
	copied := writeFile(t, dir, "copy.fastq", orig)
	result, err := ComputeFromFiles(original, copied)
	if err != nil {
		t.Fatal(err)
	}
	if result.MSE != 0 || !math.IsInf(result.PSNR, 1) {
		t.Errorf("unexpected result %+v", result)
	}
	identical, d1, d2, err := Identical(original, copied)
	if err != nil {
		t.Fatal(err)
	}
	if !identical || d1 != d2 || len(d1) != 64 {
		t.Errorf("unexpected digests %v and %v", d1, d2)
	}
	other := writeFile(t, dir, "other.fastq", orig+"@x\nA\n+\nI\n")
	if identical, _, _, err = Identical(original, other); err != nil || identical {
		t.Errorf("different files reported identical: %v", err)
	}
}

func TestLengthMismatch(t *testing.T) {
	dir := t.TempDir()
	original := writeFile(t, dir, "original.fastq", "@r\n"+strings.Repeat("A", 40)+"\n+\n"+strings.Repeat("I", 40)+"\n")
	candidate := writeFile(t, dir, "candidate.fastq", "@r\n"+strings.Repeat("A", 40)+"\n+\n"+strings.Repeat("I", 39)+"\n")
	if _, err := ComputeFromFiles(original, candidate); !errors.Is(err, fastq.ErrLengthMismatch) {
		t.Errorf("streaming: expected length mismatch, got %v", err)
	}
	if _, err := ComputeParallel(original, candidate, 2); !errors.Is(err, fastq.ErrLengthMismatch) {
		t.Errorf("parallel: expected length mismatch, got %v", err)
	}
}

func TestLineCountMismatch(t *testing.T) {
	dir := t.TempDir()
	orig, _ := makePair(4, 3)
	original := writeFile(t, dir, "original.fastq", orig)
	longer := writeFile(t, dir, "longer.fastq", orig+"@x\nA\n+\nI\n")
	if _, err := ComputeFromFiles(original, longer); !errors.Is(err, fastq.ErrLengthMismatch) {
		t.Errorf("streaming: expected length mismatch, got %v", err)
	}
	for _, workers := range []int{1, 2, 3} {
		if _, err := ComputeParallel(original, longer, workers); !errors.Is(err, fastq.ErrLengthMismatch) {
			t.Errorf("%v workers: expected length mismatch, got %v", workers, err)
		}
		if _, err := ComputeParallel(longer, original, workers); !errors.Is(err, fastq.ErrLengthMismatch) {
			t.Errorf("%v workers, swapped: expected length mismatch, got %v", workers, err)
		}
	}
}

func TestComputeParallelErrors(t *testing.T) {
	dir := t.TempDir()
	orig, _ := makePair(2, 4)
	original := writeFile(t, dir, "original.fastq", orig)
	if _, err := ComputeParallel(original, original, 0); !errors.Is(err, fastq.ErrInvalidWorkerCount) {
		t.Errorf("expected invalid worker count, got %v", err)
	}
	fiveLines := writeFile(t, dir, "five.fastq", orig+"@x\n")
	if _, err := ComputeParallel(fiveLines, fiveLines, 2); !errors.Is(err, fastq.ErrLineCount) {
		t.Errorf("expected line count error, got %v", err)
	}
	if _, err := ComputeParallel(original, filepath.Join(dir, "missing.fastq"), 2); !errors.Is(err, fastq.ErrOpenStream) {
		t.Errorf("expected open error, got %v", err)
	}
}

func TestNoScores(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.fastq", "")
	if _, err := ComputeFromFiles(empty, empty); !errors.Is(err, fastq.ErrNoScores) {
		t.Errorf("streaming: expected no scores error, got %v", err)
	}
	if _, err := ComputeParallel(empty, empty, 4); !errors.Is(err, fastq.ErrNoScores) {
		t.Errorf("parallel: expected no scores error, got %v", err)
	}
	scores, err := ReadQualityScores(empty)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = Compute(scores, scores); !errors.Is(err, fastq.ErrNoScores) {
		t.Errorf("full: expected no scores error, got %v", err)
	}
}

func TestReadQualityScores(t *testing.T) {
	dir := t.TempDir()
	filename := writeFile(t, dir, "reads.fastq", "@r1\nACG\n+\n!#I\n@r2\nA\n+\n5\n")
	scores, err := ReadQualityScores(filename)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{0, 2, 40, 20}, scores); diff != "" {
		t.Errorf("scores mismatch (-want +got):\n%s", diff)
	}
}

func TestProfile(t *testing.T) {
	dir := t.TempDir()
	filename := writeFile(t, dir, "reads.fastq", "@r1\nACG\n+\nII#\n@r2\nAC\n+\n#5\n")
	profile, err := Profile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if profile.Records != 2 || profile.Scores != 5 {
		t.Errorf("unexpected counts %v and %v", profile.Records, profile.Scores)
	}
	if diff := cmp.Diff([]byte("#5I"), profile.Distinct()); diff != "" {
		t.Errorf("alphabet mismatch (-want +got):\n%s", diff)
	}
	if profile.Min != 2 || profile.Max != 40 {
		t.Errorf("unexpected range %v-%v", profile.Min, profile.Max)
	}
	if !closeTo(profile.Mean, 20.8) {
		t.Errorf("unexpected mean %v", profile.Mean)
	}
	if profile.Histogram['I'] != 2 || profile.Histogram['#'] != 2 || profile.Histogram['5'] != 1 {
		t.Error("unexpected histogram")
	}
}

func TestAppendReport(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "report.csv")
	first := NewReportEntry("lossy", "parallel", "a.fastq", "b.fastq", Result{MSE: 2.5, PSNR: 28.5, Scores: 4}, time.Second)
	second := NewReportEntry("lossless", "full", "a.fastq", "a.fastq", Result{MSE: 0, PSNR: math.Inf(1), Scores: 4}, 0)
	if first.RunID == second.RunID {
		t.Error("report entries share a run id")
	}
	for _, entry := range []ReportEntry{first, second} {
		if err := AppendReport(filename, entry); err != nil {
			t.Fatal(err)
		}
	}
	f, err := os.Open(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	expected := [][]string{ReportHeader, first.Record(), second.Record()}
	if diff := cmp.Diff(expected, rows); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	if rows[1][6] != "2.5" || rows[2][7] != "+Inf" {
		t.Errorf("unexpected formatting %v %v", rows[1][6], rows[2][7])
	}
}
