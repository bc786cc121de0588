// Command strel parses a structuring element specification and prints or
// saves the resulting pattern.
//
// Usage:
//
//	strel [-type uint8] [-format points|bitmap|png] [-o file] [-scale n] [-v] SPEC
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/strel"
	"github.com/gogpu/strel/bitmap"
	"github.com/gogpu/strel/pattern"
)

func main() {
	var (
		typeName = flag.String("type", "uint8", "element type: bit, uint8, uint16, int32, int64, float32, float64")
		format   = flag.String("format", "bitmap", "output format: points, bitmap or png")
		output   = flag.String("o", "", "output file (required for png, stdout otherwise)")
		scale    = flag.Int("scale", 1, "pixels per lattice point in png output")
		optimize = flag.Bool("optimize-circles", false, "approximate large circles by Minkowski sums")
		verbose  = flag.Bool("v", false, "log parsing details to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] SPEC\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	spec := strings.Join(flag.Args(), " ")

	et, err := strel.ParseElementType(*typeName)
	if err != nil {
		log.Fatal(err)
	}
	if *verbose {
		strel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	r := strel.NewRegistry(strel.WithCircleOptimization(*optimize))
	defer r.Close()

	p, err := r.Parse(spec, et)
	if err != nil {
		log.Fatal(err)
	}

	if err := write(p, *format, *output, *scale); err != nil {
		log.Fatal(err)
	}
}

func write(p pattern.Pattern, format, output string, scale int) error {
	if format == "png" {
		if output == "" {
			return errors.New("png output requires -o")
		}
		img, err := bitmap.Render(p)
		if err != nil {
			return err
		}
		if err := bitmap.SavePNG(output, bitmap.Upscale(img, scale)); err != nil {
			return err
		}
		log.Printf("%v saved to %s", p, output)
		return nil
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output) //nolint:gosec // path is user-provided intentionally
		if err != nil {
			return err
		}
		defer func() {
			_ = f.Close()
		}()
		w = f
	}

	switch format {
	case "bitmap":
		s, err := bitmap.Format(p)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
		return err
	case "points":
		fmt.Fprintln(w, p)
		for _, q := range p.Points() {
			if _, err := fmt.Fprintln(w, q); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}
