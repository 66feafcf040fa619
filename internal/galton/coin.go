package galton

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
)

// ErrCoinUnavailable is returned by a Coin that cannot produce a flip.
var ErrCoinUnavailable = errors.New("galton: random source unavailable")

// Coin yields one step of a ball's walk: -1 (left) or +1 (right).
type Coin interface {
	Flip() (int, error)
}

// SeededCoin is a deterministic coin backed by a PCG generator.
type SeededCoin struct {
	r *rand.Rand
}

func NewSeededCoin(seed int64) *SeededCoin {
	return &SeededCoin{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

func (c *SeededCoin) Flip() (int, error) {
	if c.r.IntN(2) == 0 {
		return -1, nil
	}
	return 1, nil
}

// CryptoCoin draws bits from a cryptographic source, 64 at a time.
type CryptoCoin struct {
	src  io.Reader
	bits uint64
	left int
}

// NewCryptoCoin reads from src, or crypto/rand when src is nil.
func NewCryptoCoin(src io.Reader) *CryptoCoin {
	if src == nil {
		src = crand.Reader
	}
	return &CryptoCoin{src: src}
}

func (c *CryptoCoin) Flip() (int, error) {
	if c.left == 0 {
		var buf [8]byte
		if _, err := io.ReadFull(c.src, buf[:]); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrCoinUnavailable, err)
		}
		c.bits = binary.LittleEndian.Uint64(buf[:])
		c.left = 64
	}
	bit := c.bits & 1
	c.bits >>= 1
	c.left--
	if bit == 0 {
		return -1, nil
	}
	return 1, nil
}

// FailingCoin never produces a flip.
type FailingCoin struct{}

func (FailingCoin) Flip() (int, error) { return 0, ErrCoinUnavailable }
