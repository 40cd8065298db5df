package bigint

import (
	"math/big"
)

// Exp returns x^e mod m using a Montgomery ladder.
//
// Every iteration performs one multiplication and one squaring followed by two reductions, whatever
// the value of the exponent bit, and the loop always runs over max(bitlen(e), bitlen(m)) bits so the
// iteration count does not reveal the length of a short secret exponent.
// math/big is not constant-time, so callers handling secret exponents also blind their inputs.
func (x Nat) Exp(e, m Nat) Nat {
	mod := m.get()
	if mod.Sign() == 0 {
		panic("bigint: division by zero")
	}
	r0 := new(big.Int).Mod(bigOne, mod)
	r1 := new(big.Int).Mod(x.get(), mod)
	exp := e.get()

	n := exp.BitLen()
	if mod.BitLen() > n {
		n = mod.BitLen()
	}
	for i := n - 1; i >= 0; i-- {
		swap := exp.Bit(i) == 1
		if swap {
			r0, r1 = r1, r0
		}
		r1.Mul(r0, r1)
		r1.Mod(r1, mod)
		r0.Mul(r0, r0)
		r0.Mod(r0, mod)
		if swap {
			r0, r1 = r1, r0
		}
	}
	return Nat{r0}
}

// ExpVarTime returns x^e mod m. Its running time depends on e, so it must only be used with public
// exponents.
func (x Nat) ExpVarTime(e, m Nat) Nat {
	if m.IsZero() {
		panic("bigint: division by zero")
	}
	return Nat{new(big.Int).Exp(x.get(), e.get(), m.get())}
}

// CRTParams are the precomputed values of an RSA private key that allow exponentiation modulo its
// two prime factors.
type CRTParams struct {
	P, Q   Nat
	Dp, Dq Nat
	Qinv   Nat
}

// ExpCRT returns x^d mod p*q, where d is the private exponent Dp and Dq were derived from.
// It performs two half-size ladders and recombines them with Garner's formula.
func (x Nat) ExpCRT(params CRTParams) Nat {
	m1 := x.Mod(params.P).Exp(params.Dp, params.P)
	m2 := x.Mod(params.Q).Exp(params.Dq, params.Q)

	// h = qInv * (m1 - m2) mod p, kept non-negative
	diff := m1.Add(params.P).Sub(m2.Mod(params.P))
	h := params.Qinv.Mul(diff).Mod(params.P)

	return m2.Add(h.Mul(params.Q))
}
