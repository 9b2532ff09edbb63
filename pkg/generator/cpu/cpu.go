// Package cpu generates Bitcoin key pairs on a pool of goroutines.
package cpu

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Amr-9/bitkeygen/pkg/curve"
	"github.com/Amr-9/bitkeygen/pkg/generator"
	"github.com/Amr-9/bitkeygen/pkg/generator/bitcoin"
	"github.com/Amr-9/bitkeygen/pkg/keyerr"
)

// CPUGenerator implements the Generator interface using CPU-based goroutines.
// Every worker shares one curve.Engine, which must outlive the run.
type CPUGenerator struct {
	engine *curve.Engine
	log    zerolog.Logger

	attempts  uint64    // Atomic counter for total attempts
	delivered uint64    // Atomic counter for results handed to the caller
	startTime time.Time // When generation started
	workers   int       // Number of concurrent workers

	done chan struct{}
	err  error
}

// NewCPUGenerator creates a new CPU-based generator.
// If workers is 0, it defaults to the number of CPU cores.
func NewCPUGenerator(engine *curve.Engine, workers int, log zerolog.Logger) *CPUGenerator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPUGenerator{
		engine:  engine,
		log:     log,
		workers: workers,
	}
}

// Name returns the implementation name.
func (g *CPUGenerator) Name() string {
	return "CPU"
}

// Stats returns the current performance statistics.
func (g *CPUGenerator) Stats() generator.Stats {
	attempts := atomic.LoadUint64(&g.attempts)
	elapsed := time.Since(g.startTime).Seconds()

	var hashRate float64
	if elapsed > 0 {
		hashRate = float64(attempts) / elapsed
	}

	return generator.Stats{
		Attempts:    attempts,
		Found:       atomic.LoadUint64(&g.delivered),
		HashRate:    hashRate,
		ElapsedSecs: elapsed,
	}
}

// Start begins generating key pairs with the given configuration.
//
// The caller must drain the returned channel or cancel ctx; workers block
// until each claimed result is received. Received results must be released
// with Result.Destroy.
func (g *CPUGenerator) Start(ctx context.Context, config *generator.Config) (<-chan generator.Result, error) {
	if err := validate(config); err != nil {
		return nil, err
	}
	if g.done != nil {
		select {
		case <-g.done:
		default:
			return nil, keyerr.New("cpu.Start", keyerr.ErrInvalidInput, "generator already running")
		}
	}

	resultChan := make(chan generator.Result)
	g.startTime = time.Now()
	atomic.StoreUint64(&g.attempts, 0)
	atomic.StoreUint64(&g.delivered, 0)
	g.done = make(chan struct{})
	g.err = nil

	workers := g.workers
	if config.Workers > 0 {
		workers = config.Workers
	}

	// Workers claim result slots by decrementing remaining.
	remaining := int64(config.Count)
	matcher := bitcoin.NewMatcher(config.Prefix, config.Suffix)

	g.log.Debug().
		Int("workers", workers).
		Int("count", config.Count).
		Str("network", config.Network.String()).
		Str("type", config.AddressType.String()).
		Bool("compressed", config.Compressed).
		Msg("starting key generation")

	eg, egCtx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		id := i
		eg.Go(func() error {
			return g.worker(egCtx, id, config, matcher, &remaining, resultChan)
		})
	}

	go func() {
		g.err = eg.Wait()
		close(resultChan)
		close(g.done)
	}()

	return resultChan, nil
}

// Wait blocks until the current run has finished and returns its error.
// A run stopped by cancelling ctx returns the context error.
func (g *CPUGenerator) Wait() error {
	if g.done == nil {
		return nil
	}
	<-g.done
	return g.err
}

func validate(config *generator.Config) error {
	const op = "cpu.Start"

	if config == nil {
		return keyerr.New(op, keyerr.ErrInvalidInput, "nil config")
	}
	if config.Count < 1 {
		return keyerr.New(op, keyerr.ErrInvalidInput, "count must be at least 1, got %d", config.Count)
	}
	if _, err := bitcoin.VersionByte(config.AddressType, config.Network); err != nil {
		return err
	}
	for _, pattern := range []string{config.Prefix, config.Suffix} {
		if invalid := bitcoin.InvalidChars(pattern); len(invalid) > 0 {
			return keyerr.New(op, keyerr.ErrInvalidInput,
				"pattern %q contains non-Base58 characters %q", pattern, string(invalid))
		}
	}
	return nil
}

// worker generates key pairs until the batch is complete, ctx is cancelled
// or key generation fails.
func (g *CPUGenerator) worker(ctx context.Context, id int, config *generator.Config,
	matcher *bitcoin.Matcher, remaining *int64, resultChan chan<- generator.Result) error {

	log := g.log.With().Int("worker", id).Logger()
	log.Debug().Msg("worker started")
	defer func() {
		log.Debug().Msg("worker stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if atomic.LoadInt64(remaining) <= 0 {
			return nil
		}

		result, ok, err := g.attempt(config, matcher)
		if err != nil {
			log.Error().Err(err).Msg("key generation failed")
			return err
		}
		if !ok {
			continue
		}

		if atomic.AddInt64(remaining, -1) < 0 {
			// Another worker filled the last slot.
			result.Destroy()
			return nil
		}

		select {
		case resultChan <- result:
			atomic.AddUint64(&g.delivered, 1)
		case <-ctx.Done():
			result.Destroy()
			return ctx.Err()
		}
	}
}

// attempt generates one key pair. It returns ok=false when the address does
// not match the configured pattern; the key is zeroed in that case.
func (g *CPUGenerator) attempt(config *generator.Config, matcher *bitcoin.Matcher) (generator.Result, bool, error) {
	k, err := g.engine.GeneratePrivateKey()
	if err != nil {
		return generator.Result{}, false, err
	}
	atomic.AddUint64(&g.attempts, 1)

	pub, err := g.engine.DerivePublicKey(k, config.Compressed)
	if err != nil {
		k.Zero()
		return generator.Result{}, false, err
	}

	addr, err := bitcoin.BuildAddress(pub, config.AddressType, config.Network)
	if err != nil {
		k.Zero()
		return generator.Result{}, false, err
	}

	address := addr.String()
	if !matcher.Matches(address) {
		k.Zero()
		return generator.Result{}, false, nil
	}

	wif, err := bitcoin.EncodeWIF(k, config.Compressed)
	if err != nil {
		k.Zero()
		return generator.Result{}, false, err
	}

	return generator.Result{
		PrivateKey: k,
		PublicKey:  pub,
		Address:    address,
		WIF:        wif,
		Compressed: config.Compressed,
	}, true, nil
}
