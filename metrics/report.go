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
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ReportHeader is the first row of every metrics report file.
var ReportHeader = []string{"run_id", "name", "variant", "original", "candidate", "scores", "mse", "psnr", "elapsed_seconds"}

// ReportEntry is one row of a metrics report.
type ReportEntry struct {
	RunID     uuid.UUID
	Name      string
	Variant   string
	Original  string
	Candidate string
	Result    Result
	Elapsed   time.Duration
}

// NewReportEntry returns a report entry with a fresh random run id.
func NewReportEntry(name, variant, original, candidate string, result Result, elapsed time.Duration) ReportEntry {
	return ReportEntry{
		RunID:     uuid.New(),
		Name:      name,
		Variant:   variant,
		Original:  original,
		Candidate: candidate,
		Result:    result,
		Elapsed:   elapsed,
	}
}

// Record returns the CSV fields of the entry, in ReportHeader order.
func (entry ReportEntry) Record() []string {
	return []string{
		entry.RunID.String(),
		entry.Name,
		entry.Variant,
		entry.Original,
		entry.Candidate,
		strconv.Itoa(entry.Result.Scores),
		strconv.FormatFloat(entry.Result.MSE, 'g', -1, 64),
		strconv.FormatFloat(entry.Result.PSNR, 'g', -1, 64),
		strconv.FormatFloat(entry.Elapsed.Seconds(), 'f', 6, 64),
	}
}

// AppendReport appends an entry to a CSV metrics report. A new report
// file starts with ReportHeader.
func AppendReport(filename string, entry ReportEntry) (err error) {
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err = w.Write(ReportHeader); err != nil {
			return err
		}
	}
	if err = w.Write(entry.Record()); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
