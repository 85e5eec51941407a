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

package cmd

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/exascience/elfastq/internal"
	"github.com/exascience/elfastq/metrics"
)

// MetricsHelp is the help string for this command.
const MetricsHelp = "metrics parameters:\n" +
	"elfastq metrics original-fastq-file candidate-fastq-file\n" +
	"[--variant [full | streaming | parallel]]\n" +
	"[--nr-of-threads nr]\n" +
	"[--report csv-file]\n" +
	"[--name label]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// Distortion computation variants.
const (
	FullVariant      = "full"
	StreamingVariant = "streaming"
	ParallelVariant  = "parallel"
)

func computeDistortion(variant, original, candidate string, nrOfThreads int) (metrics.Result, error) {
	switch variant {
	case FullVariant:
		originalScores, err := metrics.ReadQualityScores(original)
		if err != nil {
			return metrics.Result{}, err
		}
		candidateScores, err := metrics.ReadQualityScores(candidate)
		if err != nil {
			return metrics.Result{}, err
		}
		return metrics.Compute(originalScores, candidateScores)
	case StreamingVariant:
		return metrics.ComputeFromFiles(original, candidate)
	default:
		return metrics.ComputeParallel(original, candidate, nrOfThreads)
	}
}

// Metrics implements the elfastq metrics command.
func Metrics() error {
	var (
		variant, report, name, profile, logPath string
		nrOfThreads                             int
		timed                                   bool
	)

	flags := flag.NewFlagSet("metrics", flag.ContinueOnError)

	flags.StringVar(&variant, "variant", ParallelVariant, "how to compute the distortion: full, streaming or parallel")
	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.StringVar(&report, "report", "", "append the result to the specified CSV file")
	flags.StringVar(&name, "name", "", "label for the result in the report, for example the compressor name")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(flags, 4, MetricsHelp)

	original := getFilename(os.Args[2], MetricsHelp)
	candidate := getFilename(os.Args[3], MetricsHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", original) {
		sanityChecksFailed = true
	}

	if !checkExist("", candidate) {
		sanityChecksFailed = true
	}

	switch variant {
	case FullVariant, StreamingVariant, ParallelVariant:
	default:
		sanityChecksFailed = true
		log.Printf("Error: Invalid variant %v.\n", variant)
	}

	if report != "" && !checkCreate("--report", report) {
		sanityChecksFailed = true
	}

	if profile != "" && !checkCreate("--profile", profile) {
		sanityChecksFailed = true
	}

	if !checkNrOfThreads(nrOfThreads) {
		sanityChecksFailed = true
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, MetricsHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " metrics ", original, " ", candidate)
	fmt.Fprint(&command, " --variant ", variant)
	if nrOfThreads > 0 {
		runtime.GOMAXPROCS(nrOfThreads)
		fmt.Fprint(&command, " --nr-of-threads ", nrOfThreads)
	} else {
		nrOfThreads = runtime.GOMAXPROCS(0)
	}
	if report != "" {
		fmt.Fprint(&command, " --report ", report)
	}
	if name != "" {
		fmt.Fprint(&command, " --name ", name)
	}
	if timed {
		fmt.Fprint(&command, " --timed")
	}
	if profile != "" {
		fmt.Fprint(&command, " --profile ", profile)
	}
	if logPath != "" {
		fmt.Fprint(&command, " --log-path ", logPath)
	}

	// executing command

	log.Println("Executing command:\n", command.String())

	fullOriginal, err := internal.FullPathname(original)
	if err != nil {
		return err
	}
	fullCandidate, err := internal.FullPathname(candidate)
	if err != nil {
		return err
	}

	var result metrics.Result
	start := time.Now()
	err = timedRun(timed, profile, "Computing quality score distortion.", 1, func() (err error) {
		result, err = computeDistortion(variant, fullOriginal, fullCandidate, nrOfThreads)
		return err
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("MSE: %v\nPSNR: %v\n", result.MSE, result.PSNR)
	log.Printf("Compared %v quality scores: MSE %v, PSNR %v.\n", result.Scores, result.MSE, result.PSNR)

	if report != "" {
		entry := metrics.NewReportEntry(name, variant, fullOriginal, fullCandidate, result, elapsed)
		if err := metrics.AppendReport(report, entry); err != nil {
			return err
		}
		log.Println("Appended result to report", report, "with run id", entry.RunID)
	}
	return nil
}
