package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Amr-9/bitkeygen/pkg/curve"
	"github.com/Amr-9/bitkeygen/pkg/generator"
	"github.com/Amr-9/bitkeygen/pkg/generator/bitcoin"
	"github.com/Amr-9/bitkeygen/pkg/generator/cpu"
)

const updateRate = 100 * time.Millisecond

// runGenerate produces the configured batch of keys and prints each one as
// it arrives. Every result is destroyed once printed.
func (a *app) runGenerate(ctx context.Context) (err error) {
	gc, err := a.cfg.GeneratorConfig()
	if err != nil {
		return err
	}

	if path := a.cfg.Output.File; path != "" {
		f, ferr := openOutput(path)
		if ferr != nil {
			return ferr
		}
		stdout := a.console.Out
		a.console.Out = f
		defer func() {
			a.console.Out = stdout
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		a.log.Debug().Str("file", path).Msg("writing keys to file")
	}

	engine, err := curve.New()
	if err != nil {
		return err
	}
	defer engine.Close()

	// Handle interrupt signals
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gen := cpu.NewCPUGenerator(engine, gc.Workers, a.log)
	results, err := gen.Start(ctx, gc)
	if err != nil {
		return err
	}

	matcher := bitcoin.NewMatcher(gc.Prefix, gc.Suffix)
	difficulty := matcher.Difficulty()
	progress := !matcher.Empty() && !a.cfg.Output.Quiet && a.console.Color
	// A vanity key is useless without the address it was searched for.
	withAddress := a.cfg.Keygen.WithAddress || !matcher.Empty()

	var tick <-chan time.Time
	if progress {
		a.console.PrintSearchInfo(gc, difficulty)
		ticker := time.NewTicker(updateRate)
		defer ticker.Stop()
		tick = ticker.C
	}

	var printErr error
	frame := 0
	for results != nil {
		select {
		case r, ok := <-results:
			if !ok {
				results = nil
				continue
			}
			if progress {
				a.console.ClearLine()
			}
			if printErr == nil {
				printErr = a.printResult(&r, withAddress)
				if printErr != nil {
					cancel()
				}
			}
			r.Destroy()

		case <-tick:
			a.console.PrintProgress(gen.Stats(), difficulty, frame)
			frame++
		}
	}

	err = gen.Wait()
	stats := gen.Stats()
	if progress {
		a.console.ClearLine()
		a.console.PrintSummary(stats, errors.Is(err, context.Canceled))
	}

	a.log.Debug().
		Uint64("attempts", stats.Attempts).
		Uint64("found", stats.Found).
		Float64("rate", stats.HashRate).
		Msg("generation finished")

	switch {
	case printErr != nil:
		return fmt.Errorf("writing output: %w", printErr)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("interrupted after %d of %d keys", stats.Found, gc.Count)
	default:
		return err
	}
}

func (a *app) printResult(r *generator.Result, withAddress bool) error {
	if a.cfg.Output.Verbose {
		return a.console.PrintVerbose(r, withAddress)
	}
	return a.console.PrintKey(r, a.cfg.Keygen.Format, withAddress)
}
