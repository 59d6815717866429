// geotrace: spatio-temporal trajectory pattern mining
// Adapted from PTRA: Patient Trajectory Analysis Library
// Copyright (c) 2022 imec vzw.

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
// <https://github.com/ExaScience/ptra/blob/master/LICENSE.txt>.

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"

	"geotrace/artifact"
	"geotrace/config"
	"geotrace/gendata"
	"geotrace/geom"
	"geotrace/ingest"
	"geotrace/pipeline"
	"geotrace/viz"
)

/*
Geotrace mines recurring spatio-temporal movement patterns out of raw GPS
traces.

Usage:
	geotrace mine inputFile outputPrefix [flags]
	geotrace gen inputFile outputDir [flags]
	geotrace plot clusterFile stpFile outputImage [flags]

mine simplifies, segments, clusters, and mines a set of raw traces, writing
six on-disk artifacts (.tins, .t2ot, .cluster, .s2c, .tinc, .stp) under
outputPrefix. The .seg segment artifact is not written.

Example:
	geotrace mine traces.txt ./run1 --dotsTh 15 --thresh 40 --memoryLim 1000000 --continuityRadius 75 --minSup 3

The flags are:

--segStep nr
	Additive simplification-threshold step used when --useSEST is set.
--useTemporal
	Whether the simplification distance includes the time axis.
--minLength nr
	Minimum segment length; shorter segments are dropped after extraction.
--useSEST
	Run the threshold-sweep simplification family instead of a single pass.
--dotsTh nr
	Simplification threshold.
--weights w1,w2,w3,w4,w5,w6
	Per-dimension CF-tree feature weights.
--thresh nr
	CF-tree leaf radius threshold.
--memoryLim nr
	Byte ceiling that triggers a CF-tree rebuild.
--bLeaf nr, --bNonLeaf nr, --gamma nr
	CF-tree branching factors and the threshold growth factor on rebuild.
--continuityRadius nr
	Radius used to connect nearby clusters in the continuity graph.
--minSup nr
	Minimum distinct-origin support for a mined pattern.
--minLen nr
	Minimum length of a pattern kept after canonicalization.

gen resamples a base trace at a different interval, optionally jittering
each fix, and writes each generated variant as its own plain-text file of
"x y unixSeconds" lines.

Example:
	geotrace gen base.txt ./variants --specs 1.0:0,0.5:0.2,2.0:0.4

--specs scale:noise,...
	Comma-separated intervalScale:noiseLevel pairs, one per variant.
--originBase nr
	Origin index assigned to the first generated variant.

plot renders a prior mining run's cluster catalog and mined pattern paths
to an image file; the format is selected by outputImage's extension.

Example:
	geotrace plot run1.cluster run1.stp run1.png --width 8 --height 6
*/

const (
	programVersion = 0.1
	programName    = "geotrace"
)

func programMessage() string {
	return fmt.Sprint(programName, " version ", programVersion, " compiled with ", runtime.Version())
}

const mineHelp = "\ngeotrace mine parameters:\n" +
	"geotrace mine inputFile outputPrefix\n" +
	"[--segStep nr] [--useTemporal] [--minLength nr] [--useSEST]\n" +
	"[--dotsTh nr] [--weights w1,w2,w3,w4,w5,w6]\n" +
	"[--thresh nr] [--memoryLim nr] [--bLeaf nr] [--bNonLeaf nr] [--gamma nr]\n" +
	"[--continuityRadius nr] [--minSup nr] [--minLen nr]\n"

const genHelp = "\ngeotrace gen parameters:\n" +
	"geotrace gen inputFile outputDir\n" +
	"[--specs scale:noise,...] [--originBase nr]\n"

const plotHelp = "\ngeotrace plot parameters:\n" +
	"geotrace plot clusterFile stpFile outputImage\n" +
	"[--width nr] [--height nr]\n"

func topHelp() string {
	return "\nusage: geotrace <mine|gen|plot> ...\n" + mineHelp + genHelp + plotHelp
}

func parseFlags(flags flag.FlagSet, requiredArgs int, help string) {
	if len(os.Args) < requiredArgs {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, help)
		os.Exit(1)
	}
	flags.SetOutput(ioutil.Discard)
	if err := flags.Parse(os.Args[requiredArgs:]); err != nil {
		x := 0
		if err != flag.ErrHelp {
			fmt.Fprint(os.Stderr, err)
			x = 1
		}
		fmt.Fprint(os.Stderr, help)
		os.Exit(x)
	}
}

func getFileName(s, help string) string {
	switch s {
	case "-h", "--h", "-help", "--help":
		fmt.Fprint(os.Stderr, help)
		os.Exit(1)
	}
	return s
}

func parseWeights(s string) ([6]float64, error) {
	var w [6]float64
	fields := strings.Split(s, ",")
	if len(fields) != len(w) {
		return w, fmt.Errorf("expected %d comma-separated weights, got %d", len(w), len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return w, fmt.Errorf("weight %d: %w", i, err)
		}
		w[i] = v
	}
	return w, nil
}

func main() {
	log.Println(programMessage())
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, topHelp())
		os.Exit(1)
	}
	switch os.Args[1] {
	case "mine":
		runMine()
	case "gen":
		runGen()
	case "plot":
		runPlot()
	case "-h", "--h", "-help", "--help":
		fmt.Fprint(os.Stderr, topHelp())
	default:
		fmt.Fprintln(os.Stderr, "Unknown subcommand:", os.Args[1])
		fmt.Fprint(os.Stderr, topHelp())
		os.Exit(1)
	}
}

func runMine() {
	var (
		segStep          float64
		useTemporal      bool
		minLength        float64
		useSEST          bool
		dotsTh           float64
		weights          string
		thresh           float64
		memoryLim        int64
		bLeaf            int
		bNonLeaf         int
		gamma            float64
		continuityRadius float64
		minSup           int
		minLen           int
	)
	var flags flag.FlagSet
	flags.Float64Var(&segStep, "segStep", 0, "additive threshold step used by the SEST family")
	flags.BoolVar(&useTemporal, "useTemporal", true, "include the time axis in the simplification distance")
	flags.Float64Var(&minLength, "minLength", 0, "drop extracted segments shorter than this length")
	flags.BoolVar(&useSEST, "useSEST", false, "run the threshold-sweep simplification family")
	flags.Float64Var(&dotsTh, "dotsTh", 0, "simplification threshold")
	flags.StringVar(&weights, "weights", "1,1,1,1,1,1", "comma-separated per-dimension CF-tree feature weights")
	flags.Float64Var(&thresh, "thresh", 0, "CF-tree leaf radius threshold")
	flags.Int64Var(&memoryLim, "memoryLim", 0, "byte ceiling that triggers a CF-tree rebuild")
	def := config.Default()
	flags.IntVar(&bLeaf, "bLeaf", def.BLeaf, "CF-tree leaf branching factor")
	flags.IntVar(&bNonLeaf, "bNonLeaf", def.BNonLeaf, "CF-tree internal-node branching factor")
	flags.Float64Var(&gamma, "gamma", def.Gamma, "threshold growth factor on rebuild")
	flags.Float64Var(&continuityRadius, "continuityRadius", 0, "radius connecting nearby clusters in the continuity graph")
	flags.IntVar(&minSup, "minSup", 1, "minimum distinct-origin support for a mined pattern")
	flags.IntVar(&minLen, "minLen", 1, "minimum length of a pattern kept after canonicalization")
	parseFlags(flags, 4, mineHelp)

	inputFile := getFileName(os.Args[2], mineHelp)
	outputPrefix := getFileName(os.Args[3], mineHelp)

	w, err := parseWeights(weights)
	if err != nil {
		panic(err)
	}
	cfg := config.Config{
		DotsTh:           dotsTh,
		UseTemporal:      useTemporal,
		UseSEST:          useSEST,
		SegStep:          segStep,
		MinLength:        minLength,
		Weights:          w,
		Thresh:           thresh,
		MemoryLim:        memoryLim,
		BLeaf:            bLeaf,
		BNonLeaf:         bNonLeaf,
		Gamma:            gamma,
		ContinuityRadius: continuityRadius,
		MinSup:           minSup,
		MinLen:           minLen,
	}

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " mine ", inputFile, " ", outputPrefix)
	fmt.Fprint(&command, " --dotsTh ", dotsTh, " --thresh ", thresh, " --memoryLim ", memoryLim,
		" --continuityRadius ", continuityRadius, " --minSup ", minSup, " --minLen ", minLen)
	log.Println("Executing command:\n", command.String())

	trajectories, err := ingest.LoadFile(inputFile)
	if err != nil {
		panic(err)
	}
	fmt.Println("Loaded", len(trajectories), "trajectories from", inputFile)

	result, err := pipeline.Run(context.Background(), cfg, trajectories)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPrefix), 0700); err != nil {
		panic(err)
	}
	if err := writeArtifacts(outputPrefix, result); err != nil {
		panic(err)
	}
	fmt.Println("Wrote artifacts to", outputPrefix+".*")
}

func writeArtifacts(prefix string, result pipeline.Result) error {
	if err := writeOne(prefix+".tins", func(w *os.File) error { return artifact.WriteTins(w, result.Tins) }); err != nil {
		return err
	}
	if err := writeOne(prefix+".t2ot", func(w *os.File) error { return artifact.WriteT2OT(w, result.T2OT) }); err != nil {
		return err
	}
	if err := writeOne(prefix+".cluster", func(w *os.File) error { return artifact.WriteCluster(w, result.Catalog) }); err != nil {
		return err
	}
	if err := writeOne(prefix+".s2c", func(w *os.File) error { return artifact.WriteS2C(w, result.S2C) }); err != nil {
		return err
	}
	if err := writeOne(prefix+".tinc", func(w *os.File) error { return artifact.WriteTinC(w, result.TinC) }); err != nil {
		return err
	}
	paths := make([][]geom.Segment, len(result.Patterns))
	for i, p := range result.Patterns {
		segs, err := pipeline.ResolvePattern(p, result.Catalog)
		if err != nil {
			return err
		}
		paths[i] = segs
	}
	return writeOne(prefix+".stp", func(w *os.File) error { return artifact.WriteStp(w, paths) })
}

func writeOne(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Printf("warning: closing %s: %v\n", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func runGen() {
	var (
		specs      string
		originBase int
	)
	var flags flag.FlagSet
	flags.StringVar(&specs, "specs", "1.0:0", "comma-separated intervalScale:noiseLevel pairs, one per variant")
	flags.IntVar(&originBase, "originBase", 0, "origin index assigned to the first generated variant")
	parseFlags(flags, 4, genHelp)

	inputFile := getFileName(os.Args[2], genHelp)
	outputDir := getFileName(os.Args[3], genHelp)

	trajectories, err := ingest.LoadFile(inputFile)
	if err != nil {
		panic(err)
	}
	if len(trajectories) == 0 {
		panic(fmt.Errorf("%s contains no trajectories", inputFile))
	}
	base := trajectories[0]

	parsedSpecs, err := parseSpecs(specs)
	if err != nil {
		panic(err)
	}

	variants, err := gendata.Generate(base, parsedSpecs, originBase)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(outputDir, 0700); err != nil {
		panic(err)
	}
	for i, v := range variants {
		path := filepath.Join(outputDir, fmt.Sprintf("variant_%d.txt", i))
		if err := writeSyntheticTrace(path, v.Points); err != nil {
			panic(err)
		}
	}
	fmt.Println("Wrote", len(variants), "variants to", outputDir)
}

func parseSpecs(s string) ([]gendata.Spec, error) {
	fields := strings.Split(s, ",")
	out := make([]gendata.Spec, len(fields))
	for i, f := range fields {
		parts := strings.SplitN(strings.TrimSpace(f), ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("spec %d: expected scale:noise, got %q", i, f)
		}
		scale, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("spec %d: %w", i, err)
		}
		noise, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("spec %d: %w", i, err)
		}
		out[i] = gendata.Spec{IntervalScale: scale, NoiseLevel: noise}
	}
	return out, nil
}

// writeSyntheticTrace writes one trajectory's points as "x y unixSeconds"
// lines. This is a simplified planar format; nothing in this program reads
// it back, and it does not round-trip through ingest's lat/lon trace format.
func writeSyntheticTrace(path string, points []geom.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Printf("warning: closing %s: %v\n", path, cerr)
		}
	}()
	for _, p := range points {
		if _, err := fmt.Fprintf(f, "%v %v %v\n", p.X, p.Y, p.T); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

func runPlot() {
	var width, height float64
	var flags flag.FlagSet
	flags.Float64Var(&width, "width", 8, "image width in inches")
	flags.Float64Var(&height, "height", 6, "image height in inches")
	parseFlags(flags, 5, plotHelp)

	clusterFile := getFileName(os.Args[2], plotHelp)
	stpFile := getFileName(os.Args[3], plotHelp)
	outputImage := getFileName(os.Args[4], plotHelp)

	catalog, err := readOne(clusterFile, artifact.ReadCluster)
	if err != nil {
		panic(err)
	}
	paths, err := readOne(stpFile, artifact.ReadStp)
	if err != nil {
		panic(err)
	}

	if err := viz.PlotPaths(catalog, paths, outputImage, vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch); err != nil {
		panic(err)
	}
	fmt.Println("Wrote plot to", outputImage)
}

func readOne[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Printf("warning: closing %s: %v\n", path, cerr)
		}
	}()
	v, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("reading %s: %w", path, err)
	}
	return v, nil
}
