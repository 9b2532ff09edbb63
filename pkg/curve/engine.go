// Package curve generates and validates secp256k1 private keys and derives
// their public points.
//
// An Engine is an explicit context: create it once with New before starting
// any workers, share it by pointer, and Close it after they have stopped.
// Between New and Close all methods are safe for concurrent use.
package curve

import (
	"crypto/rand"
	"io"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/Amr-9/bitkeygen/pkg/keyerr"
	"github.com/Amr-9/bitkeygen/pkg/secmem"
)

// Engine holds the secp256k1 group parameters and the entropy source used
// for key generation.
type Engine struct {
	once    sync.Once
	initErr error
	params  *secp256k1.CurveParams
	rand    io.Reader
	closed  atomic.Bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand replaces crypto/rand as the entropy source. Intended for tests.
func WithRand(r io.Reader) Option {
	return func(e *Engine) {
		e.rand = r
	}
}

// New creates and initializes an Engine.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{rand: rand.Reader}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.Init(); err != nil {
		return nil, err
	}
	return e, nil
}

// Init loads the curve parameters. Repeated calls return the first result
// without reloading.
func (e *Engine) Init() error {
	e.once.Do(func() {
		p := secp256k1.Params()
		if p == nil || p.N == nil || p.Gx == nil || p.Gy == nil {
			e.initErr = keyerr.New("curve.Init", keyerr.ErrCryptoFailure,
				"secp256k1 parameters unavailable")
			return
		}
		e.params = p
	})
	return e.initErr
}

// Close releases the engine. Every later call fails with
// keyerr.ErrCryptoFailure. Close must not race with other calls.
func (e *Engine) Close() {
	if e.closed.Swap(true) {
		return
	}
	e.params = nil
}

func (e *Engine) ready(op string) error {
	if e == nil || e.closed.Load() {
		return keyerr.New(op, keyerr.ErrCryptoFailure, "engine is closed")
	}
	if e.params == nil {
		return keyerr.New(op, keyerr.ErrCryptoFailure, "engine not initialized")
	}
	return nil
}

// Order returns a copy of the group order n.
func (e *Engine) Order() (*big.Int, error) {
	if err := e.ready("curve.Order"); err != nil {
		return nil, err
	}
	return new(big.Int).Set(e.params.N), nil
}

// GeneratePrivateKey samples a private key uniformly from [1, n-1].
func (e *Engine) GeneratePrivateKey() (*PrivateKey, error) {
	if err := e.ready("curve.GeneratePrivateKey"); err != nil {
		return nil, err
	}

	buf := secmem.New(PrivateKeySize)
	if err := SampleScalar(e.rand, buf.Bytes()); err != nil {
		buf.Destroy()
		return nil, err
	}
	return &PrivateKey{buf: buf}, nil
}

// DerivePublicKey computes d·G for the private key and encodes the point in
// compressed or uncompressed form.
func (e *Engine) DerivePublicKey(k *PrivateKey, compressed bool) (*PublicKey, error) {
	const op = "curve.DerivePublicKey"

	if err := e.ready(op); err != nil {
		return nil, err
	}
	if k.Destroyed() {
		return nil, keyerr.New(op, keyerr.ErrInvalidInput, "private key has been zeroed")
	}
	if !k.Valid() {
		return nil, keyerr.New(op, keyerr.ErrRange, "scalar not in [1, n-1]")
	}

	priv, pub := btcec.PrivKeyFromBytes(k.Bytes())
	priv.Zero()

	if pub == nil || !pub.IsOnCurve() {
		return nil, keyerr.New(op, keyerr.ErrCryptoFailure, "scalar multiplication produced an invalid point")
	}
	return newPublicKey(pub, compressed), nil
}
