package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tescande/maze-server/internal/maze"
)

var log = logrus.New()

func main() {
	var (
		rows      = flag.Int("rows", 21, "maze rows (forced odd, clamped)")
		cols      = flag.Int("cols", 21, "maze columns (forced odd, clamped)")
		difficult = flag.Bool("difficult", false, "open extra walls to add cycles")
		seed      = flag.Uint64("seed", 0, "random seed, 0 uses ambient entropy")
		strategy  = flag.String("strategy", "astar", "solver strategy: astar or label")
		solve     = flag.Bool("solve", false, "solve the maze and overlay the path")
		delayMs   = flag.Int("delay", 0, "per-step solver delay in milliseconds")
		pngPath   = flag.String("png", "", "write a PNG rendering to this file")
		quiet     = flag.Bool("quiet", false, "suppress the ASCII rendering")
	)
	flag.Parse()

	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	engine, err := maze.NewEngine(maze.Config{
		Rows:      *rows,
		Cols:      *cols,
		Difficult: *difficult,
		Strategy:  maze.Strategy(*strategy),
	})
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		engine.Reseed(*seed)
	}

	snap, err := engine.Regenerate(*rows, *cols, *difficult)
	if err != nil {
		log.Fatal(err)
	}
	if snap.Rows != *rows || snap.Cols != *cols {
		log.Infof("dimensions corrected to %dx%d", snap.Rows, snap.Cols)
	}

	if *solve {
		result, err := engine.Solve(time.Duration(*delayMs) * time.Millisecond)
		if err != nil {
			log.Fatal(err)
		}
		if snap, err = engine.Snapshot(); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("solved %dx%d in %s, path length %d\n",
			snap.Rows, snap.Cols, result.Elapsed, result.Length)
	}

	if !*quiet {
		for _, row := range snap.Cells {
			fmt.Println(row)
		}
	}

	if *pngPath != "" {
		f, err := os.Create(*pngPath)
		if err != nil {
			log.Fatal(err)
		}
		if err := png.Encode(f, snap.Image()); err != nil {
			f.Close()
			log.Fatal(err)
		}
		if err := f.Close(); err != nil {
			log.Fatal(err)
		}
		log.Info("maze image written to ", *pngPath)
	}
}
