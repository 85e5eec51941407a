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

// elfastq transcodes FASTQ files into separate column streams for
// identifiers, base sequences, secondary identifiers and quality
// scores, reconstructs FASTQ files from such column streams, and
// measures the distortion of the quality scores of a reconstructed
// FASTQ file.
//
// Please see https://github.com/exascience/elfastq for a documentation
// of the tool.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/exascience/elfastq/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: split, reconstruct, metrics, verify, count, head, profile, identical")
	fmt.Fprint(os.Stderr, "\n", cmd.SplitHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.ReconstructHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.MetricsHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.VerifyHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.CountHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.HeadHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.ProfileHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.IdenticalHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "split":
		err = cmd.Split()
	case "reconstruct":
		err = cmd.Reconstruct()
	case "metrics":
		err = cmd.Metrics()
	case "verify":
		err = cmd.Verify()
	case "count":
		err = cmd.Count()
	case "head":
		err = cmd.Head()
	case "profile":
		err = cmd.Profile()
	case "identical":
		err = cmd.Identical()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Println("Unknown command:", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
