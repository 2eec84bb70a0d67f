// Command dtnsim runs one or more batches of the discrete-event DTN
// simulator against a settings file, printing a delivery/latency report
// per run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/apex/log"

	"github.com/bassosimone/dtnsim"
	"github.com/bassosimone/dtnsim/cmd/internal/settingsfile"
)

func main() {
	batch := flag.String("b", "", "batch mode: a run count, or a comma-separated list of run indices and a:b ranges")
	flag.Parse()

	args := flag.Args()

	runs, configPaths, err := parseArgs(*batch, args)
	if err != nil {
		log.WithError(err).Fatal("dtnsim: invalid arguments")
	}

	base, err := loadConfig(configPaths)
	if err != nil {
		log.WithError(err).Fatal("dtnsim: loading settings")
	}

	exitCode := 0
	for _, runIndex := range runs {
		if err := runOnce(runIndex, base); err != nil {
			log.WithError(err).Errorf("dtnsim: run %d failed", runIndex)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

// parseArgs separates the batch flag's run-index spec from the
// remaining positional configuration-file arguments, per the CLI
// surface's "-b batch-spec, remaining args are configuration paths"
// contract. Without -b, the first numeric positional argument (if any)
// is taken as a single run index.
func parseArgs(batchSpec string, args []string) (runs []int, configPaths []string, err error) {
	if batchSpec != "" {
		runs, err = parseRunSpec(batchSpec)
		if err != nil {
			return nil, nil, err
		}
		return runs, args, nil
	}

	if len(args) > 0 {
		if idx, convErr := strconv.Atoi(args[0]); convErr == nil {
			return []int{idx}, args[1:], nil
		}
	}
	return []int{0}, args, nil
}

// parseRunSpec parses a batch-mode run specification: either a bare
// count N (meaning runs 0..N-1), or a comma-separated list mixing single
// values ("3") and inclusive ranges ("5:8").
func parseRunSpec(spec string) ([]int, error) {
	if !strings.Contains(spec, ",") && !strings.Contains(spec, ":") {
		count, err := strconv.Atoi(spec)
		if err != nil {
			return nil, fmt.Errorf("dtnsim: invalid run count %q: %w", spec, err)
		}
		runs := make([]int, count)
		for i := range runs {
			runs[i] = i
		}
		return runs, nil
	}

	var runs []int
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if a, b, ok := strings.Cut(tok, ":"); ok {
			lo, err := strconv.Atoi(strings.TrimSpace(a))
			if err != nil {
				return nil, fmt.Errorf("dtnsim: invalid range %q: %w", tok, err)
			}
			hi, err := strconv.Atoi(strings.TrimSpace(b))
			if err != nil {
				return nil, fmt.Errorf("dtnsim: invalid range %q: %w", tok, err)
			}
			for i := lo; i <= hi; i++ {
				runs = append(runs, i)
			}
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("dtnsim: invalid run index %q: %w", tok, err)
		}
		runs = append(runs, v)
	}
	return runs, nil
}

// loadConfig merges every configuration file's key/value pairs into a
// single map, later files overriding earlier ones.
func loadConfig(paths []string) (map[string]any, error) {
	merged := make(map[string]any)
	for _, path := range paths {
		values, err := settingsfile.LoadKeyValueFile(path)
		if err != nil {
			return nil, err
		}
		for k, v := range values {
			merged[k] = v
		}
	}
	return merged, nil
}

// runOnce builds a fresh SimContext and World for runIndex and drives
// the simulation to completion, printing a summary report. A fresh
// SimContext per run is this driver's "reset" mechanism (SPEC_FULL.md
// §9): there is no process-wide state left over from the previous run
// to reset by hand.
func runOnce(runIndex int, base map[string]any) error {
	settings, err := dtnsim.NewSettings(base)
	if err != nil {
		return err
	}

	seed := settings.FloatOr("Optimization.randomizeUpdateOrderSeed", 1)
	sc := dtnsim.NewSimContext(runIndex, int64(seed)+int64(runIndex))

	world, stats, err := dtnsim.BuildScenario(settings, sc, log.Log)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := world.Run(ctx); err != nil {
		return err
	}

	snap := stats.Snapshot()
	fmt.Printf("run %d: delivered=%d dropped=%d aborted=%d interfered=%d latencyMean=%.3f latencyMedian=%.3f hopMean=%.3f\n",
		runIndex, snap.Delivered, snap.Dropped, snap.Aborted, snap.Interfered,
		snap.LatencyMean, snap.LatencyMedian, snap.HopCountMean)
	return nil
}
