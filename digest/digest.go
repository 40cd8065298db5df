// Package digest enumerates the hash algorithms usable in PKCS#1 v1.5 signatures and builds their
// DigestInfo encodings.
package digest

import (
	"crypto"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/asn1"
	"fmt"
	"github.com/rsakit/go-rsakit/der"
	"github.com/rsakit/go-rsakit/utils"
	"github.com/ztrue/tracerr"
	"strings"
)

var (
	// ErrorUnsupportedAlgorithm is returned when using a digest algorithm which is not one of SHA1, SHA224, SHA256, SHA384, SHA512
	ErrorUnsupportedAlgorithm = utils.NewKitError("DIGEST_UNSUPPORTED_ALGORITHM", "unsupported digest algorithm")
	// ErrorDigestLengthMismatch is returned when a digest does not have the output length of its algorithm
	ErrorDigestLengthMismatch = utils.NewKitError("DIGEST_LENGTH_MISMATCH", "digest length does not match algorithm")
)

type Algorithm int

const (
	SHA1 Algorithm = iota + 1
	SHA224
	SHA256
	SHA384
	SHA512
)

// All lists every supported algorithm.
var All = []Algorithm{SHA1, SHA224, SHA256, SHA384, SHA512}

type algorithmInfo struct {
	name string
	size int
	oid  asn1.ObjectIdentifier
	hash crypto.Hash
}

var algorithms = map[Algorithm]algorithmInfo{
	SHA1:   {"SHA1", sha1.Size, der.OIDSHA1, crypto.SHA1},
	SHA224: {"SHA224", sha256.Size224, der.OIDSHA224, crypto.SHA224},
	SHA256: {"SHA256", sha256.Size, der.OIDSHA256, crypto.SHA256},
	SHA384: {"SHA384", sha512.Size384, der.OIDSHA384, crypto.SHA384},
	SHA512: {"SHA512", sha512.Size, der.OIDSHA512, crypto.SHA512},
}

func (a Algorithm) info() (algorithmInfo, error) {
	info, ok := algorithms[a]
	if !ok {
		return algorithmInfo{}, tracerr.Wrap(ErrorUnsupportedAlgorithm.AddDetails(fmt.Sprintf("%d", int(a))))
	}
	return info, nil
}

func (a Algorithm) Valid() bool {
	_, ok := algorithms[a]
	return ok
}

func (a Algorithm) String() string {
	if info, ok := algorithms[a]; ok {
		return info.name
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Size is the output length in bytes, or 0 for an unsupported algorithm.
func (a Algorithm) Size() int {
	return algorithms[a].size
}

// CryptoHash returns the matching crypto.Hash, or 0 for an unsupported algorithm.
func (a Algorithm) CryptoHash() crypto.Hash {
	return algorithms[a].hash
}

// CheckDigest verifies that d has the output length of a.
func (a Algorithm) CheckDigest(d []byte) error {
	info, err := a.info()
	if err != nil {
		return tracerr.Wrap(err)
	}
	if len(d) != info.size {
		return tracerr.Wrap(ErrorDigestLengthMismatch.AddDetails(fmt.Sprintf("%s expects %d bytes, got %d", info.name, info.size, len(d))))
	}
	return nil
}

// DigestInfo returns the DER encoding of SEQUENCE { SEQUENCE { oid, NULL }, OCTET STRING d }.
func (a Algorithm) DigestInfo(d []byte) ([]byte, error) {
	err := a.CheckDigest(d)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return der.Encode(der.Sequence(
		der.Sequence(der.ObjectIdentifier(algorithms[a].oid), der.Null()),
		der.OctetString(d),
	))
}

// Sum hashes message with a.
func Sum(a Algorithm, message []byte) ([]byte, error) {
	switch a {
	case SHA1:
		h := sha1.Sum(message)
		return h[:], nil
	case SHA224:
		h := sha256.Sum224(message)
		return h[:], nil
	case SHA256:
		h := sha256.Sum256(message)
		return h[:], nil
	case SHA384:
		h := sha512.Sum384(message)
		return h[:], nil
	case SHA512:
		h := sha512.Sum512(message)
		return h[:], nil
	}
	return nil, tracerr.Wrap(ErrorUnsupportedAlgorithm.AddDetails(fmt.Sprintf("%d", int(a))))
}

// Parse accepts names such as "SHA256", "sha-256" or "SHA_256".
func Parse(name string) (Algorithm, error) {
	normalized := strings.ToUpper(strings.NewReplacer("-", "", "_", "").Replace(name))
	for _, a := range All {
		if algorithms[a].name == normalized {
			return a, nil
		}
	}
	return 0, tracerr.Wrap(ErrorUnsupportedAlgorithm.AddDetails(name))
}

func (a Algorithm) MarshalText() ([]byte, error) {
	info, err := a.info()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return []byte(info.name), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return tracerr.Wrap(err)
	}
	*a = parsed
	return nil
}
