// Package metrics measures the distortion between the quality scores
// of an original FASTQ file and a reconstructed (candidate) FASTQ
// file, as mean squared error (MSE) and peak signal-to-noise ratio
// (PSNR), with a peak value of fastq.MaxScore.
//
// There are three ways to compute the distortion, which all produce
// the same results: Compute operates on score sequences that were
// loaded into memory with ReadQualityScores, ComputeFromFiles streams
// over both files in lockstep, and ComputeParallel divides the files
// into record-aligned chunks that are processed by separate workers.
//
// The package also provides a few tools for analyzing FASTQ files and
// comparing results: Profile, Identical and AppendReport.
package metrics
