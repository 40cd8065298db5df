// Package rsa_engine implements RSA encryption and signatures with PKCS#1 v1.5 padding.
//
// Every function is a pure function of its inputs: keys are never modified, and they can be shared
// between goroutines.
package rsa_engine

import (
	"crypto/rand"
	"fmt"
	"github.com/rsakit/go-rsakit/asymkey"
	"github.com/rsakit/go-rsakit/bigint"
	"github.com/rsakit/go-rsakit/digest"
	"github.com/rsakit/go-rsakit/padding"
	"github.com/rsakit/go-rsakit/utils"
	"github.com/ztrue/tracerr"
	"io"
)

var (
	// ErrorInvalidCiphertextLength is returned when a ciphertext is not exactly as long as the modulus
	ErrorInvalidCiphertextLength = utils.NewKitError("RSA_INVALID_CIPHERTEXT_LENGTH", "ciphertext length does not match key size")
	// ErrorInvalidCiphertext is returned when a ciphertext, read as an integer, is not smaller than the modulus
	ErrorInvalidCiphertext = utils.NewKitError("RSA_INVALID_CIPHERTEXT", "ciphertext out of range")
	// ErrorSignatureFault is returned when a freshly computed signature does not verify, which means the private computation went wrong
	ErrorSignatureFault = utils.NewKitError("RSA_SIGNATURE_FAULT", "computed signature does not verify")
	// ErrorBlinding is returned when no blinding factor could be drawn
	ErrorBlinding = utils.NewKitError("RSA_BLINDING", "cannot draw a blinding factor")
)

const maxBlindingAttempts = 10

// MaxMessageLength returns the longest message Encrypt accepts for key.
func MaxMessageLength(key *asymkey.PublicKey) int {
	return padding.MaxMessageLength(key.Size())
}

// Encrypt encrypts message for key, with padding drawn from crypto/rand.
func Encrypt(message []byte, key *asymkey.PublicKey) ([]byte, error) {
	return EncryptWithRandom(rand.Reader, message, key)
}

// EncryptWithRandom encrypts message for key, reading the padding bytes from random.
func EncryptWithRandom(random io.Reader, message []byte, key *asymkey.PublicKey) ([]byte, error) {
	k := key.Size()
	em, err := padding.EncryptionPad(random, message, k)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	c := bigint.FromBytes(em).ExpVarTime(key.E(), key.N())
	return c.FillBytes(k), nil
}

// Decrypt decrypts ciphertext with key, blinding the private computation with crypto/rand.
func Decrypt(ciphertext []byte, key *asymkey.PrivateKey) ([]byte, error) {
	return DecryptWithRandom(rand.Reader, ciphertext, key)
}

// DecryptWithRandom decrypts ciphertext with key, reading the blinding factor from random.
func DecryptWithRandom(random io.Reader, ciphertext []byte, key *asymkey.PrivateKey) ([]byte, error) {
	k := key.Size()
	if len(ciphertext) != k {
		return nil, tracerr.Wrap(ErrorInvalidCiphertextLength.AddDetails(fmt.Sprintf("expected %d bytes, got %d", k, len(ciphertext))))
	}
	c := bigint.FromBytes(ciphertext)
	if c.Cmp(key.Public().N()) >= 0 {
		return nil, tracerr.Wrap(ErrorInvalidCiphertext)
	}
	m, err := privateOperation(random, c, key)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	message, err := padding.EncryptionUnpad(m.FillBytes(k))
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return message, nil
}

// Sign signs a digest computed with alg. The signature is checked with the public exponent before
// being returned.
func Sign(d []byte, alg digest.Algorithm, key *asymkey.PrivateKey) ([]byte, error) {
	return SignWithRandom(rand.Reader, d, alg, key)
}

// SignWithRandom is Sign, reading the blinding factor from random. The signature itself is
// deterministic.
func SignWithRandom(random io.Reader, d []byte, alg digest.Algorithm, key *asymkey.PrivateKey) ([]byte, error) {
	em, err := padding.SignaturePad(d, alg, key.Size())
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return signBlock(random, em, key, privateOperation)
}

type privateOperationFunc func(random io.Reader, c bigint.Nat, key *asymkey.PrivateKey) (bigint.Nat, error)

func signBlock(random io.Reader, em []byte, key *asymkey.PrivateKey, operation privateOperationFunc) ([]byte, error) {
	public := key.Public()
	m := bigint.FromBytes(em)
	s, err := operation(random, m, key)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	if !s.ExpVarTime(public.E(), public.N()).Equal(m) {
		return nil, tracerr.Wrap(ErrorSignatureFault)
	}
	return s.FillBytes(key.Size()), nil
}

// Verify reports whether signature is a valid signature of the digest d computed with alg.
// It never returns an error: signatures of the wrong length or out of range simply do not verify.
func Verify(d []byte, signature []byte, alg digest.Algorithm, key *asymkey.PublicKey) bool {
	k := key.Size()
	if len(signature) != k {
		return false
	}
	s := bigint.FromBytes(signature)
	if s.Cmp(key.N()) >= 0 {
		return false
	}
	em := s.ExpVarTime(key.E(), key.N()).FillBytes(k)
	return padding.SignatureMatches(em, d, alg)
}

// privateOperation computes c^d mod N on a blinded input: c is multiplied by r^e for a random r,
// and the result by r^-1, so the exponentiation never runs on a value chosen by the caller.
func privateOperation(random io.Reader, c bigint.Nat, key *asymkey.PrivateKey) (bigint.Nat, error) {
	public := key.Public()
	n := public.N()
	r, rInv, err := blindingFactor(random, n)
	if err != nil {
		return bigint.Nat{}, tracerr.Wrap(err)
	}
	blinded := c.Mul(r.ExpVarTime(public.E(), n)).Mod(n)

	var m bigint.Nat
	if params, ok := key.CRT(); ok {
		m = blinded.ExpCRT(params)
	} else {
		m = blinded.Exp(key.D(), n)
	}
	return m.Mul(rInv).Mod(n), nil
}

func blindingFactor(random io.Reader, n bigint.Nat) (bigint.Nat, bigint.Nat, error) {
	buf := make([]byte, n.ByteLen())
	for i := 0; i < maxBlindingAttempts; i++ {
		_, err := io.ReadFull(random, buf)
		if err != nil {
			return bigint.Nat{}, bigint.Nat{}, tracerr.Wrap(padding.ErrorRandomSource.AddDetails(err.Error()))
		}
		r := bigint.FromBytes(buf).Mod(n)
		if r.IsZero() {
			continue
		}
		rInv, ok := r.ModInverse(n)
		if ok {
			return r, rInv, nil
		}
	}
	return bigint.Nat{}, bigint.Nat{}, tracerr.Wrap(ErrorBlinding)
}
