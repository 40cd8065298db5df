// Package padding implements the PKCS#1 v1.5 block formats of RFC 8017: type 2 for encryption and
// type 1 for signatures.
package padding

import (
	"crypto/subtle"
	"fmt"
	"github.com/rsakit/go-rsakit/digest"
	"github.com/rsakit/go-rsakit/utils"
	"github.com/ztrue/tracerr"
	"io"
)

var (
	// ErrorMessageTooLong is returned when a message (or DigestInfo) does not fit in a block of the key size
	ErrorMessageTooLong = utils.NewKitError("PADDING_MESSAGE_TOO_LONG", "message too long for RSA key size")
	// ErrorInvalidPadding is returned when a decrypted block is not a valid PKCS#1 v1.5 encryption block
	ErrorInvalidPadding = utils.NewKitError("PADDING_INVALID", "invalid PKCS#1 v1.5 padding")
	// ErrorRandomSource is returned when the random source fails, or only yields zeros
	ErrorRandomSource = utils.NewKitError("PADDING_RANDOM_SOURCE", "cannot read from random source")
)

const (
	// Overhead is the minimal number of bytes taken by PKCS#1 v1.5 padding in a block.
	Overhead = 11
	// MinPaddingLength is the minimal number of padding bytes between the block type and the separator.
	MinPaddingLength = 8
	// maxZeroRetries bounds how many times a single padding byte is redrawn when the source yields 0.
	maxZeroRetries = 256
)

// MaxMessageLength returns the largest message that fits in a block of k bytes.
func MaxMessageLength(k int) int {
	return k - Overhead
}

// EncryptionPad builds 00 || 02 || PS || 00 || message, where PS is k-3-len(message) non-zero bytes
// read from random.
func EncryptionPad(random io.Reader, message []byte, k int) ([]byte, error) {
	if len(message) > MaxMessageLength(k) {
		return nil, tracerr.Wrap(ErrorMessageTooLong.AddDetails(fmt.Sprintf("%d bytes, at most %d allowed", len(message), utils.Max(MaxMessageLength(k), 0))))
	}
	em := make([]byte, k)
	em[1] = 2
	ps := em[2 : k-len(message)-1]
	err := nonZeroRandomBytes(ps, random)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	copy(em[k-len(message):], message)
	return em, nil
}

func nonZeroRandomBytes(s []byte, random io.Reader) error {
	_, err := io.ReadFull(random, s)
	if err != nil {
		return tracerr.Wrap(ErrorRandomSource.AddDetails(err.Error()))
	}
	for i := range s {
		for tries := 0; s[i] == 0; tries++ {
			if tries == maxZeroRetries {
				return tracerr.Wrap(ErrorRandomSource.AddDetails("source only yields zeros"))
			}
			_, err = io.ReadFull(random, s[i:i+1])
			if err != nil {
				return tracerr.Wrap(ErrorRandomSource.AddDetails(err.Error()))
			}
		}
	}
	return nil
}

// EncryptionUnpad extracts the message from a type 2 block.
// Every byte of the block is inspected and the checks are folded together before the only branch,
// so the time taken does not depend on where the block is invalid.
func EncryptionUnpad(em []byte) ([]byte, error) {
	if len(em) < Overhead {
		return nil, tracerr.Wrap(ErrorInvalidPadding)
	}
	firstByteIsZero := subtle.ConstantTimeByteEq(em[0], 0)
	secondByteIsTwo := subtle.ConstantTimeByteEq(em[1], 2)

	// index of the first zero after the block type, found without early exit
	lookingForIndex := 1
	index := 0
	for i := 2; i < len(em); i++ {
		equals0 := subtle.ConstantTimeByteEq(em[i], 0)
		index = subtle.ConstantTimeSelect(lookingForIndex&equals0, i, index)
		lookingForIndex = subtle.ConstantTimeSelect(equals0, 0, lookingForIndex)
	}
	validPS := subtle.ConstantTimeLessOrEq(2+MinPaddingLength, index)

	valid := firstByteIsZero & secondByteIsTwo & (^lookingForIndex & 1) & validPS
	if valid != 1 {
		return nil, tracerr.Wrap(ErrorInvalidPadding)
	}
	return append([]byte{}, em[index+1:]...), nil
}

// SignaturePad builds 00 || 01 || FF.. || 00 || DigestInfo for a block of k bytes.
func SignaturePad(d []byte, alg digest.Algorithm, k int) ([]byte, error) {
	info, err := alg.DigestInfo(d)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	if k < len(info)+Overhead {
		return nil, tracerr.Wrap(ErrorMessageTooLong.AddDetails(fmt.Sprintf("key of %d bytes too short for %s", k, alg)))
	}
	em := make([]byte, k)
	em[1] = 1
	for i := 2; i < k-len(info)-1; i++ {
		em[i] = 0xff
	}
	copy(em[k-len(info):], info)
	return em, nil
}

// SignatureMatches rebuilds the expected type 1 block for d and compares it with em in constant time.
// em is never parsed, so no leniency in its structure can be exploited.
func SignatureMatches(em []byte, d []byte, alg digest.Algorithm) bool {
	expected, err := SignaturePad(d, alg, len(em))
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(em, expected) == 1
}
