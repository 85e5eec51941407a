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

	"github.com/exascience/elfastq/columns"
	"github.com/exascience/elfastq/internal"
)

// ReconstructHelp is the help string for this command.
const ReconstructHelp = "reconstruct parameters:\n" +
	"elfastq reconstruct /path/to/input/prefix fastq-file\n" +
	"[--ids file]\n" +
	"[--bases file]\n" +
	"[--ids2 file]\n" +
	"[--quals file]\n" +
	"[--strict]\n" +
	"[--buffer-size bytes]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// Reconstruct implements the elfastq reconstruct command.
func Reconstruct() error {
	var (
		profile, logPath string
		bufferSize       int
		timed, strict    bool
		paths            columns.Paths
	)

	flags := flag.NewFlagSet("reconstruct", flag.ContinueOnError)

	columnFlags(flags, &paths)
	flags.BoolVar(&strict, "strict", false, "fail instead of truncating when the column streams disagree")
	flags.IntVar(&bufferSize, "buffer-size", 0, "size of the I/O buffers in bytes")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(flags, 4, ReconstructHelp)

	prefix := getFilename(os.Args[2], ReconstructHelp)
	output := getFilename(os.Args[3], ReconstructHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	paths, err := resolveColumnPaths(prefix, paths)
	if err != nil {
		return err
	}

	for _, p := range []struct{ parameter, filename string }{
		{"--ids", paths.Identifiers},
		{"--bases", paths.Bases},
		{"--ids2", paths.SecondaryIdentifiers},
		{"--quals", paths.Qualities},
	} {
		if !checkExist(p.parameter, p.filename) {
			sanityChecksFailed = true
		}
	}

	if !checkCreate("", output) {
		sanityChecksFailed = true
	}

	if profile != "" && !checkCreate("--profile", profile) {
		sanityChecksFailed = true
	}

	if bufferSize < 0 {
		sanityChecksFailed = true
		log.Println("Error: Invalid buffer-size: ", bufferSize)
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, ReconstructHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " reconstruct ", prefix, " ", output)
	fprintColumnPaths(&command, paths)
	if strict {
		fmt.Fprint(&command, " --strict")
	}
	if bufferSize > 0 {
		fmt.Fprint(&command, " --buffer-size ", bufferSize)
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

	fullOutput, err := internal.FullPathname(output)
	if err != nil {
		return err
	}

	return timedRun(timed, profile, "Reconstructing FASTQ file from column streams.", 1, func() error {
		stats, err := columns.ReconstructFile(paths, fullOutput, columns.Options{Strict: strict, BufferSize: bufferSize})
		if err != nil {
			return err
		}
		log.Printf("Reconstructed %v records with %v quality scores.\n", stats.Records, stats.Scores)
		return nil
	})
}
