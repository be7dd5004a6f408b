// seehuhn.de/go/pcell - parametric mask cells for superconducting circuits
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command pcellgen generates parametric mask cells.
//
// Usage:
//
//	pcellgen run [-v] job.json
//	pcellgen list [family]
//	pcellgen params <generator>
//	pcellgen stored -db cells.db
//	pcellgen plot -db cells.db -id <id> -o out.pdf
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"seehuhn.de/go/pcell"
	"seehuhn.de/go/pcell/config"
	"seehuhn.de/go/pcell/element"
	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/library"
	"seehuhn.de/go/pcell/maskplot"
	"seehuhn.de/go/pcell/store"
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	command := flag.Arg(0)
	args := flag.Args()[1:]

	var err error
	switch command {
	case "run":
		err = handleRun(ctx, args)
	case "list":
		err = handleList(args)
	case "params":
		err = handleParams(args)
	case "stored":
		err = handleStored(ctx, args)
	case "plot":
		err = handlePlot(ctx, args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "pcellgen %s: %v\n", command, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pcellgen - parametric mask cells for superconducting circuits

Usage: pcellgen <command> [options]

Commands:
  run <job.json>        Generate the cells listed in a job file
  list [family]         List generator families, or the members of a family
  params <generator>    Show the parameters of a generator
  stored -db <file>     List the cells in a cell library
  plot -db <file> -id <id> -o <file.pdf>
                        Plot a cell from a cell library
  help                  Show this help message

Flags of run:
  -v                    Verbose logging`)
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	pcell.SetLogger(slog.New(h))
}

func handleRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("expected exactly one job file")
	}
	setupLogging(*verbose)

	job, err := config.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	return runJob(ctx, job, library.New())
}

func runJob(ctx context.Context, job *config.Job, lib *library.Library) error {
	outDir := job.GetOutputDir()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	var db *store.Store
	if job.Library != "" {
		var err error
		db, err = store.Open(ctx, job.Library)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	log := pcell.Logger()
	for _, jc := range job.Cells {
		if err := ctx.Err(); err != nil {
			return err
		}

		g, err := resolve(lib, jc)
		if err != nil {
			return fmt.Errorf("cell %q: %w", jc.Name, err)
		}
		p, err := g.Schema().Bind(jc.Params)
		if err != nil {
			return fmt.Errorf("cell %q: %w", jc.Name, err)
		}
		l := layout.New(job.GetDBU())
		c, err := element.Produce(l, g, p)
		if err != nil {
			return fmt.Errorf("cell %q: %w", jc.Name, err)
		}
		log.Info("cell generated", "name", jc.Name, "generator", g.Name())

		base := filepath.Join(outDir, jc.Name)
		if err := writePlots(job, c, base); err != nil {
			return fmt.Errorf("cell %q: %w", jc.Name, err)
		}

		if db != nil {
			id, err := db.SaveAs(ctx, jc.Name, c, g.Name(), p.Values())
			if err != nil {
				return fmt.Errorf("cell %q: %w", jc.Name, err)
			}
			log.Info("cell stored", "name", jc.Name, "id", id)
		}
	}
	return nil
}

// resolve finds the generator for a job cell.  Cells with a family fall
// back to the family default.
func resolve(lib *library.Library, jc config.Cell) (element.Generator, error) {
	if jc.Family != "" {
		return lib.Resolve(jc.Family, jc.Type)
	}
	return lib.Generator(jc.Type)
}

func writePlots(job *config.Job, c *layout.Cell, base string) error {
	opts := &maskplot.Options{Margin: 20}
	if job.GetPDF() {
		if err := maskplot.WritePDF(base+".pdf", c, opts); err != nil {
			return err
		}
		pcell.Logger().Info("file written", "file", base+".pdf")
	}
	if job.GetPNG() {
		pngOpts := *opts
		pngOpts.Size = float64(job.GetPNGSize())
		f, err := os.Create(base + ".png")
		if err != nil {
			return err
		}
		if err := maskplot.WritePNG(f, c, &pngOpts); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		pcell.Logger().Info("file written", "file", base+".png")
	}
	return nil
}

func handleList(args []string) error {
	lib := library.New()
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	if len(args) == 0 {
		fmt.Fprintln(w, "FAMILY\tDEFAULT\tMEMBERS")
		for _, fam := range lib.Families() {
			fmt.Fprintf(w, "%s\t%s\t%d\n", fam, lib.Default(fam), len(lib.Members(fam)))
		}
		return w.Flush()
	}

	fam := strings.Join(args, " ")
	members := lib.Members(fam)
	if members == nil {
		return fmt.Errorf("%w %q", library.ErrUnknownFamily, fam)
	}
	fmt.Fprintln(w, "NAME\tLIBRARY NAME")
	for _, name := range members {
		mark := ""
		if name == lib.Default(fam) {
			mark = " (default)"
		}
		fmt.Fprintf(w, "%s%s\t%s\n", name, mark, element.LibraryName(name))
	}
	return w.Flush()
}

func handleParams(args []string) error {
	if len(args) == 0 {
		return errors.New("expected a generator name")
	}
	g, err := library.New().Generator(strings.Join(args, " "))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tDEFAULT\tUNIT\tDESCRIPTION")
	for _, d := range g.Schema().Decls() {
		if d.Hidden {
			continue
		}
		desc := d.Description
		if len(d.Choices) > 0 {
			desc += fmt.Sprintf(" %v", d.Choices)
		}
		fmt.Fprintf(w, "%s\t%s\t%v\t%s\t%s\n", d.Name, d.Kind, d.Default, d.Unit, desc)
	}
	return w.Flush()
}

func handleStored(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stored", flag.ExitOnError)
	dbPath := fs.String("db", "", "cell library database")
	fs.Parse(args)
	if *dbPath == "" {
		return errors.New("missing -db")
	}

	db, err := store.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.List(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tGENERATOR\tCREATED")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Name, e.Generator, e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func handlePlot(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	dbPath := fs.String("db", "", "cell library database")
	id := fs.String("id", "", "cell id")
	out := fs.String("o", "", "output PDF file")
	paths := fs.Bool("paths", false, "draw waveguide centre lines")
	fs.Parse(args)
	if *dbPath == "" || *id == "" || *out == "" {
		return errors.New("-db, -id and -o are required")
	}

	db, err := store.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	l := layout.New(layout.DefaultDBU)
	c, err := db.Load(ctx, *id, l)
	if err != nil {
		return err
	}
	return maskplot.WritePDF(*out, c, &maskplot.Options{Margin: 20, Paths: *paths})
}
