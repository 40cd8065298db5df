package utils

import (
	"crypto/rand"
	"encoding/base64"
	"github.com/ztrue/tracerr"
	"golang.org/x/exp/constraints"
	"golang.org/x/text/unicode/norm"
	"strings"
	"unicode"
)

func GenerateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	// Note that err == nil only if we read len(b) bytes.
	if err != nil {
		return nil, tracerr.Wrap(err)
	}

	return b, nil
}

// Set implements three methods: Add, Remove & Has.
// It needs to be defined with a comparable generic type such as int or string.
// The len operator can be used on Set.
type Set[T comparable] map[T]struct{}

// Add adds the given element to the Set.
func (s Set[T]) Add(element T) {
	s[element] = struct{}{}
}

// Remove removes given element from Set. If element is not in Set, Remove is a no-op.
func (s Set[T]) Remove(element T) {
	delete(s, element)
}

// Has checks if element is in Set, and returns true or false.
func (s Set[T]) Has(element T) bool {
	_, ok := s[element]
	return ok
}

func ChunkSlice[T any](slice []T, chunkSize int) [][]T {
	var chunks [][]T
	for i := 0; i < len(slice); i += chunkSize {
		end := Min(i+chunkSize, len(slice))
		chunks = append(chunks, slice[i:end])
	}

	return chunks
}

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// StripWhitespace removes every Unicode white space rune from s.
func StripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Base64DecodeString decodes a Base64-encoded string, handling both
// padded and non-padded input, as well as new-lines.
func Base64DecodeString(s string) ([]byte, error) {
	s = StripWhitespace(s)
	if strings.Contains(s, "=") {
		return base64.StdEncoding.DecodeString(s)
	} else {
		return base64.RawStdEncoding.DecodeString(s)
	}
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func NormalizeString(s string) []byte {
	return norm.NFKC.Bytes([]byte(s))
}
