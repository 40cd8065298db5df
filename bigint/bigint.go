// Package bigint provides the unsigned arbitrary-precision integers used by the RSA primitives.
//
// A Nat is immutable: every operation allocates its result, so values can be shared freely between
// goroutines. Misuse that can only come from a programming error (negative results, division by
// zero, a value that does not fit a requested width) panics instead of returning an error.
package bigint

import (
	"fmt"
	"math/big"
)

// Nat is a non-negative integer of arbitrary size. The zero value is 0.
type Nat struct {
	v *big.Int
}

var bigOne = big.NewInt(1)

func (x Nat) get() *big.Int {
	if x.v == nil {
		return new(big.Int)
	}
	return x.v
}

// FromBytes interprets b as a big-endian unsigned integer.
func FromBytes(b []byte) Nat {
	return Nat{new(big.Int).SetBytes(b)}
}

// FromBig copies x. It panics if x is negative.
func FromBig(x *big.Int) Nat {
	if x == nil {
		return Nat{}
	}
	if x.Sign() < 0 {
		panic("bigint: negative value")
	}
	return Nat{new(big.Int).Set(x)}
}

func FromUint64(u uint64) Nat {
	return Nat{new(big.Int).SetUint64(u)}
}

// Big returns a copy of x as a *big.Int.
func (x Nat) Big() *big.Int {
	return new(big.Int).Set(x.get())
}

// Bytes returns the minimal big-endian encoding of x. Zero encodes as an empty slice.
func (x Nat) Bytes() []byte {
	return x.get().Bytes()
}

// FillBytes returns x as a big-endian slice of exactly size bytes, left-padded with zeros.
func (x Nat) FillBytes(size int) []byte {
	if (x.BitLen()+7)/8 > size {
		panic(fmt.Sprintf("bigint: value needs %d bytes, only %d available", (x.BitLen()+7)/8, size))
	}
	return x.get().FillBytes(make([]byte, size))
}

func (x Nat) BitLen() int {
	return x.get().BitLen()
}

// ByteLen is the number of bytes needed to hold x.
func (x Nat) ByteLen() int {
	return (x.BitLen() + 7) / 8
}

func (x Nat) Bit(i int) uint {
	return x.get().Bit(i)
}

func (x Nat) Cmp(y Nat) int {
	return x.get().Cmp(y.get())
}

func (x Nat) Equal(y Nat) bool {
	return x.Cmp(y) == 0
}

func (x Nat) IsZero() bool {
	return x.get().Sign() == 0
}

func (x Nat) IsOdd() bool {
	return x.get().Bit(0) == 1
}

func (x Nat) String() string {
	return x.get().String()
}

func (x Nat) Add(y Nat) Nat {
	return Nat{new(big.Int).Add(x.get(), y.get())}
}

// Sub returns x - y. It panics if y > x.
func (x Nat) Sub(y Nat) Nat {
	if x.Cmp(y) < 0 {
		panic("bigint: subtraction result would be negative")
	}
	return Nat{new(big.Int).Sub(x.get(), y.get())}
}

func (x Nat) Mul(y Nat) Nat {
	return Nat{new(big.Int).Mul(x.get(), y.get())}
}

// DivMod returns the quotient and remainder of x / y. It panics if y is zero.
func (x Nat) DivMod(y Nat) (Nat, Nat) {
	if y.IsZero() {
		panic("bigint: division by zero")
	}
	q, r := new(big.Int).QuoRem(x.get(), y.get(), new(big.Int))
	return Nat{q}, Nat{r}
}

// Mod returns x mod m. It panics if m is zero.
func (x Nat) Mod(m Nat) Nat {
	_, r := x.DivMod(m)
	return r
}

// ModInverse returns the inverse of x modulo m, and false if it does not exist.
func (x Nat) ModInverse(m Nat) (Nat, bool) {
	if m.IsZero() {
		panic("bigint: division by zero")
	}
	inv := new(big.Int).ModInverse(x.get(), m.get())
	if inv == nil {
		return Nat{}, false
	}
	return Nat{inv}, true
}
