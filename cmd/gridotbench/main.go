// Command gridotbench benchmarks the multi-scale solver over a DOTmark-style
// image dataset: it is not part of the core solver, just the CLI surface
// that exercises it end to end.
//
// Usage:
//
//	gridotbench <data-dir> [runs] [resolution]
//
// <data-dir>'s subdirectories are class names, each holding CSV files named
// data<R>_1<NNNN>.csv (a row-major integer-pixel image at resolution R).
// GRIDOT_DATA_DIR, when set, overrides <data-dir> and shifts the remaining
// positional arguments.
//
// Exit codes: 0 on success, 1 if no data directory is available or it
// cannot be read.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/katalvlaran/gridot/cmd/gridotbench/internal/config"
	"github.com/katalvlaran/gridot/cmd/gridotbench/internal/dotmark"
	"github.com/katalvlaran/gridot/cmd/gridotbench/internal/logger"
	"github.com/katalvlaran/gridot/cmd/gridotbench/internal/metrics"
	"github.com/katalvlaran/gridot/gridgraph"
	"github.com/katalvlaran/gridot/gridutil"
	"github.com/katalvlaran/gridot/multiscale"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log := logger.New(cfg.LogLevel)
	rec := metrics.New(cfg.MetricsNamespace)

	ds, err := dotmark.Load(cfg.DataDir)
	if err != nil {
		log.Error("failed to load dataset", "data_dir", cfg.DataDir, "error", err)
		return 1
	}

	log.Info("starting benchmark", "data_dir", cfg.DataDir, "runs", cfg.Runs, "resolution", cfg.Resolution)

	fmt.Printf("%7s%15s%5s%5s%4s %12s%12s\n", "dim", "class", "i", "j", "opt", "obj", "time [ms]")

	_, err = ds.Run(cfg.Runs, cfg.Resolution, solve, func(res dotmark.Result) {
		status := "0"
		if res.Optimal {
			status = "1"
		}
		rec.Observe(res.Class, res.Resolution, res.Status, res.Millis/1000)
		if res.Objective < 0 {
			log.Warn("integer overflow in objective", "class", res.Class, "resolution", res.Resolution, "i", res.I, "j", res.J)
		}
		fmt.Printf("%7d%15s%5d%5d%4s %12d%12.1f\n", res.Resolution, res.Class, res.I, res.J, status, res.Objective, res.Millis)
	})
	if err != nil {
		log.Error("benchmark run failed", "error", err)
		return 1
	}

	fmt.Println()
	fmt.Print(rec.Summary())
	return 0
}

// solve constructs a fresh leaf GridGraph and runs it through the default
// multi-scale driver (merge factor 2).
func solve(xDim, yDim gridutil.Pos, supply []int64) (string, int64, float64, error) {
	leaf, err := gridgraph.New(xDim, yDim, supply, false)
	if err != nil {
		return "", 0, 0, err
	}
	driver, err := multiscale.New(leaf)
	if err != nil {
		return "", 0, 0, err
	}

	start := time.Now()
	status := driver.Run()
	elapsed := time.Since(start)

	return status.String(), driver.TotalCost(), float64(elapsed.Microseconds()) / 1000, nil
}
