// Package jwt_rsa signs and verifies JSON Web Tokens with rsakit keys.
//
// Importing it replaces the RS256, RS384 and RS512 methods of github.com/golang-jwt/jwt/v5 by
// methods that accept *asymkey.PrivateKey and *asymkey.PublicKey. Keys of any other type are handed
// to the original jwt implementation, so *rsa.PrivateKey and *rsa.PublicKey keep working.
package jwt_rsa

import (
	"crypto/rand"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rsakit/go-rsakit/asymkey"
	"github.com/rsakit/go-rsakit/digest"
	"github.com/rsakit/go-rsakit/rsa_engine"
	"github.com/ztrue/tracerr"
)

// SigningMethodRSA implements jwt.SigningMethod with PKCS#1 v1.5 signatures.
type SigningMethodRSA struct {
	Name   string
	Digest digest.Algorithm
	// fallback handles keys that are not rsakit keys.
	fallback jwt.SigningMethod
}

var (
	SigningMethodRS256 = &SigningMethodRSA{Name: "RS256", Digest: digest.SHA256, fallback: jwt.SigningMethodRS256}
	SigningMethodRS384 = &SigningMethodRSA{Name: "RS384", Digest: digest.SHA384, fallback: jwt.SigningMethodRS384}
	SigningMethodRS512 = &SigningMethodRSA{Name: "RS512", Digest: digest.SHA512, fallback: jwt.SigningMethodRS512}
)

func init() {
	for _, method := range []*SigningMethodRSA{SigningMethodRS256, SigningMethodRS384, SigningMethodRS512} {
		m := method
		jwt.RegisterSigningMethod(m.Alg(), func() jwt.SigningMethod {
			return m
		})
	}
}

func (m *SigningMethodRSA) Alg() string {
	return m.Name
}

// Sign signs signingString with key, which must be an *asymkey.PrivateKey or a key accepted by the
// original jwt method.
func (m *SigningMethodRSA) Sign(signingString string, key interface{}) ([]byte, error) {
	privateKey, ok := key.(*asymkey.PrivateKey)
	if !ok {
		return m.fallback.Sign(signingString, key)
	}
	d, err := digest.Sum(m.Digest, []byte(signingString))
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	signature, err := rsa_engine.SignWithRandom(rand.Reader, d, m.Digest, privateKey)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return signature, nil
}

// Verify returns jwt.ErrSignatureInvalid when sig is not a signature of signingString by key.
func (m *SigningMethodRSA) Verify(signingString string, sig []byte, key interface{}) error {
	publicKey, ok := key.(*asymkey.PublicKey)
	if !ok {
		if privateKey, isPrivate := key.(*asymkey.PrivateKey); isPrivate {
			publicKey = privateKey.Public()
		} else {
			return m.fallback.Verify(signingString, sig, key)
		}
	}
	d, err := digest.Sum(m.Digest, []byte(signingString))
	if err != nil {
		return tracerr.Wrap(err)
	}
	if !rsa_engine.Verify(d, sig, m.Digest, publicKey) {
		return jwt.ErrSignatureInvalid
	}
	return nil
}

// SignedString returns the compact serialization of a token carrying claims, signed by key.
func SignedString(claims jwt.Claims, key *asymkey.PrivateKey, method *SigningMethodRSA) (string, error) {
	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return signed, nil
}

// ParseWithClaims parses tokenString into claims, checks that it is signed by key with method, and
// validates the registered claims (exp, nbf, iat and whatever opts require).
func ParseWithClaims(tokenString string, claims jwt.Claims, key *asymkey.PublicKey, method *SigningMethodRSA, opts ...jwt.ParserOption) (*jwt.Token, error) {
	opts = append([]jwt.ParserOption{jwt.WithValidMethods([]string{method.Alg()})}, opts...)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	}, opts...)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return token, nil
}
