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
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/exascience/elfastq/columns"
	"github.com/exascience/elfastq/fastq"
	"github.com/exascience/elfastq/metrics"
)

// VerifyHelp is the help string for this command.
const VerifyHelp = "verify parameters:\n" +
	"elfastq verify /path/to/input/prefix\n" +
	"[--ids file]\n" +
	"[--bases file]\n" +
	"[--ids2 file]\n" +
	"[--quals file]\n" +
	"[--log-path path]\n"

// Verify implements the elfastq verify command.
func Verify() error {
	var (
		logPath string
		paths   columns.Paths
	)

	flags := flag.NewFlagSet("verify", flag.ContinueOnError)
	columnFlags(flags, &paths)
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	parseFlags(flags, 3, VerifyHelp)

	prefix := getFilename(os.Args[2], VerifyHelp)

	setLogOutput(logPath)

	paths, err := resolveColumnPaths(prefix, paths)
	if err != nil {
		return err
	}
	stats, err := columns.Verify(paths)
	if err != nil {
		return err
	}
	fmt.Printf("records: %v\nscores: %v\n", stats.Records, stats.Scores)
	return nil
}

// CountHelp is the help string for this command.
const CountHelp = "count parameters:\n" +
	"elfastq count fastq-file\n" +
	"[--log-path path]\n"

// Count implements the elfastq count command.
func Count() error {
	var logPath string

	flags := flag.NewFlagSet("count", flag.ContinueOnError)
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	parseFlags(flags, 3, CountHelp)

	input := getFilename(os.Args[2], CountHelp)

	setLogOutput(logPath)

	records, err := fastq.CountRecords(input)
	if err != nil {
		return err
	}
	fmt.Println(records)
	return nil
}

// HeadHelp is the help string for this command.
const HeadHelp = "head parameters:\n" +
	"elfastq head nr-of-records fastq-input-file fastq-output-file\n" +
	"[--log-path path]\n"

// Head implements the elfastq head command.
func Head() error {
	var logPath string

	flags := flag.NewFlagSet("head", flag.ContinueOnError)
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	parseFlags(flags, 5, HeadHelp)

	n, err := strconv.Atoi(os.Args[2])
	if err != nil || n < 0 {
		log.Println("Error: Invalid nr-of-records: ", os.Args[2])
		fmt.Fprint(os.Stderr, HeadHelp)
		os.Exit(1)
	}
	input := getFilename(os.Args[3], HeadHelp)
	output := getFilename(os.Args[4], HeadHelp)

	setLogOutput(logPath)

	records, err := fastq.Head(input, output, n)
	if err != nil {
		return err
	}
	log.Printf("Copied the first %v records of %v to %v.\n", records, input, output)
	return nil
}

// ProfileHelp is the help string for this command.
const ProfileHelp = "profile parameters:\n" +
	"elfastq profile fastq-file\n" +
	"[--log-path path]\n"

// Profile implements the elfastq profile command.
func Profile() error {
	var logPath string

	flags := flag.NewFlagSet("profile", flag.ContinueOnError)
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	parseFlags(flags, 3, ProfileHelp)

	input := getFilename(os.Args[2], ProfileHelp)

	setLogOutput(logPath)

	profile, err := metrics.Profile(input)
	if err != nil {
		return err
	}
	fmt.Printf("records: %v\nscores: %v\n", profile.Records, profile.Scores)
	fmt.Printf("distinct quality scores: %v\n", len(profile.Distinct()))
	fmt.Printf("min: %v\nmax: %v\nmean: %.4f\nstddev: %.4f\n", profile.Min, profile.Max, profile.Mean, profile.StdDev)
	for _, c := range profile.Distinct() {
		fmt.Printf("%c\t%v\t%v\n", c, fastq.IntScore(c), profile.Histogram[c])
	}
	return nil
}

// IdenticalHelp is the help string for this command.
const IdenticalHelp = "identical parameters:\n" +
	"elfastq identical file1 file2\n" +
	"[--log-path path]\n"

// Identical implements the elfastq identical command.
func Identical() error {
	var logPath string

	flags := flag.NewFlagSet("identical", flag.ContinueOnError)
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	parseFlags(flags, 4, IdenticalHelp)

	file1 := getFilename(os.Args[2], IdenticalHelp)
	file2 := getFilename(os.Args[3], IdenticalHelp)

	setLogOutput(logPath)

	identical, digest1, digest2, err := metrics.Identical(file1, file2)
	if err != nil {
		return err
	}
	fmt.Println(digest1, file1)
	fmt.Println(digest2, file2)
	if identical {
		fmt.Println("The files are identical.")
	} else {
		fmt.Println("The files are different.")
	}
	return nil
}
