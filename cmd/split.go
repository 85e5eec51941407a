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

// SplitHelp is the help string for this command.
const SplitHelp = "split parameters:\n" +
	"elfastq split fastq-file /path/to/output/prefix\n" +
	"[--ids file]\n" +
	"[--bases file]\n" +
	"[--ids2 file]\n" +
	"[--quals file]\n" +
	"[--buffer-size bytes]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// columnFlags declares the flags that override individual column
// stream paths.
func columnFlags(flags *flag.FlagSet, paths *columns.Paths) {
	flags.StringVar(&paths.Identifiers, "ids", "", "identifier stream (default prefix"+columns.IdentifiersExt+")")
	flags.StringVar(&paths.Bases, "bases", "", "base sequence stream (default prefix"+columns.BasesExt+")")
	flags.StringVar(&paths.SecondaryIdentifiers, "ids2", "", "secondary identifier stream (default prefix"+columns.SecondaryIdentifiersExt+")")
	flags.StringVar(&paths.Qualities, "quals", "", "quality score stream (default prefix"+columns.QualitiesExt+")")
}

// resolveColumnPaths fills in the paths that were not given explicitly.
func resolveColumnPaths(prefix string, paths columns.Paths) (columns.Paths, error) {
	full, err := internal.FullPathname(prefix)
	if err != nil {
		return paths, err
	}
	defaults := columns.PathsFromPrefix(full)
	if paths.Identifiers == "" {
		paths.Identifiers = defaults.Identifiers
	}
	if paths.Bases == "" {
		paths.Bases = defaults.Bases
	}
	if paths.SecondaryIdentifiers == "" {
		paths.SecondaryIdentifiers = defaults.SecondaryIdentifiers
	}
	if paths.Qualities == "" {
		paths.Qualities = defaults.Qualities
	}
	return paths, nil
}

func fprintColumnPaths(command *bytes.Buffer, paths columns.Paths) {
	fmt.Fprint(command, " --ids ", paths.Identifiers)
	fmt.Fprint(command, " --bases ", paths.Bases)
	fmt.Fprint(command, " --ids2 ", paths.SecondaryIdentifiers)
	fmt.Fprint(command, " --quals ", paths.Qualities)
}

// Split implements the elfastq split command.
func Split() error {
	var (
		profile, logPath string
		bufferSize       int
		timed            bool
		paths            columns.Paths
	)

	flags := flag.NewFlagSet("split", flag.ContinueOnError)

	columnFlags(flags, &paths)
	flags.IntVar(&bufferSize, "buffer-size", 0, "size of the I/O buffers in bytes")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(flags, 4, SplitHelp)

	input := getFilename(os.Args[2], SplitHelp)
	prefix := getFilename(os.Args[3], SplitHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}

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
		if !checkCreate(p.parameter, p.filename) {
			sanityChecksFailed = true
		}
	}

	if profile != "" && !checkCreate("--profile", profile) {
		sanityChecksFailed = true
	}

	if bufferSize < 0 {
		sanityChecksFailed = true
		log.Println("Error: Invalid buffer-size: ", bufferSize)
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, SplitHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " split ", input, " ", prefix)
	fprintColumnPaths(&command, paths)
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

	fullInput, err := internal.FullPathname(input)
	if err != nil {
		return err
	}

	return timedRun(timed, profile, "Splitting FASTQ file into column streams.", 1, func() error {
		stats, err := columns.SplitFile(fullInput, paths, bufferSize)
		if err != nil {
			return err
		}
		log.Printf("Split %v records with %v quality scores.\n", stats.Records, stats.Scores)
		return nil
	})
}
