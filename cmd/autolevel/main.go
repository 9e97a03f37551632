package main

import (
	"bufio"
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/mastercactapus/autolevel/config"
	"github.com/mastercactapus/autolevel/gcode"
	"github.com/mastercactapus/autolevel/gridlevel"
)

func main() {
	log.SetFlags(log.Lshortfile)

	jobFile := flag.String("job", "job.hcl", "Job configuration file.")
	inFile := flag.String("in", "", "Input G-code file (default stdin).")
	outFile := flag.String("out", "", "Output G-code file (default stdout).")
	flag.Parse()

	job, err := config.Load(*jobFile)
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := job.Leveler()
	if err != nil {
		log.Fatal(err)
	}
	lvl, err := gridlevel.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	var in io.Reader = os.Stdin
	if *inFile != "" {
		f, err := os.Open(*inFile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	paths, err := gcode.ExtractPaths(in)
	if err != nil {
		log.Fatal(err)
	}

	err = lvl.PrepareWorkarea(paths)
	if errors.Is(err, gridlevel.ErrGridTooLarge) {
		log.Fatal("auto-leveling is not possible for this job: ", err)
	}
	if err != nil {
		log.Fatal(err)
	}

	var out io.Writer = os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)

	err = lvl.WriteHeader(w)
	if err != nil {
		log.Fatal(err)
	}

	for _, p := range paths {
		io.WriteString(w, lvl.RapidTo(p[0]))
		io.WriteString(w, lvl.G1Corrected(p[0]))
		for _, pt := range p[1:] {
			io.WriteString(w, lvl.AddChainPoint(pt))
		}
	}
	io.WriteString(w, "M2\n")

	// Mach dialects define subroutines after the program end
	if cfg.Dialect == gridlevel.Mach3 || cfg.Dialect == gridlevel.Mach4 {
		err = lvl.WriteSubroutines(w)
		if err != nil {
			log.Fatal(err)
		}
	}

	err = w.Flush()
	if err != nil {
		log.Fatal(err)
	}
}
