package rsa_sdk

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"github.com/rsakit/go-rsakit/asymkey"
	"github.com/rsakit/go-rsakit/digest"
	"github.com/rsakit/go-rsakit/envelope"
	"github.com/rsakit/go-rsakit/rsa_engine"
	"github.com/rsakit/go-rsakit/utils"
	"github.com/ztrue/tracerr"
	"unicode/utf8"
)

var (
	// ErrorInvalidBase64 is returned when a ciphertext given as a string is not valid base64
	ErrorInvalidBase64 = utils.NewKitError("RSASDK_INVALID_BASE64", "invalid base64 input")
	// ErrorInvalidText is returned when a decrypted message cannot be represented as text
	ErrorInvalidText = utils.NewKitError("RSASDK_INVALID_TEXT", "decrypted message is not valid text")
)

// DefaultDigest is the digest algorithm used when none is specified.
const DefaultDigest = digest.SHA1

func orDefault(alg digest.Algorithm) digest.Algorithm {
	if alg == 0 {
		return DefaultDigest
	}
	return alg
}

// EncryptData encrypts message for the public key given as PEM. Messages longer than one block
// are split in chunks, and the ciphertext is the concatenation of one block per chunk.
func EncryptData(message []byte, publicKeyPEM string) ([]byte, error) {
	key, err := asymkey.ParsePublicKeyPEM(publicKeyPEM)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return encryptData(message, key)
}

// EncryptDataWithDER is EncryptData, for a public key given as DER.
func EncryptDataWithDER(message []byte, publicKeyDER []byte) ([]byte, error) {
	key, err := asymkey.ParsePublicKeyDER(publicKeyDER)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return encryptData(message, key)
}

func encryptData(message []byte, key *asymkey.PublicKey) ([]byte, error) {
	ciphertext, err := envelope.EncryptChunks(rand.Reader, message, key)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return ciphertext, nil
}

// EncryptString encrypts the UTF-8 bytes of message, and returns the ciphertext as base64.
func EncryptString(message string, publicKeyPEM string) (string, error) {
	ciphertext, err := EncryptData([]byte(message), publicKeyPEM)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// EncryptStringWithDER is EncryptString, for a public key given as DER.
func EncryptStringWithDER(message string, publicKeyDER []byte) (string, error) {
	ciphertext, err := EncryptDataWithDER([]byte(message), publicKeyDER)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptData decrypts a ciphertext produced by EncryptData with the private key given as PEM.
func DecryptData(ciphertext []byte, privateKeyPEM string) ([]byte, error) {
	key, err := asymkey.ParsePrivateKeyPEM(privateKeyPEM)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return decryptData(ciphertext, key)
}

// DecryptDataWithDER is DecryptData, for a private key given as DER.
func DecryptDataWithDER(ciphertext []byte, privateKeyDER []byte) ([]byte, error) {
	key, err := asymkey.ParsePrivateKeyDER(privateKeyDER)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return decryptData(ciphertext, key)
}

func decryptData(ciphertext []byte, key *asymkey.PrivateKey) ([]byte, error) {
	k := key.Size()
	if len(ciphertext) == 0 || len(ciphertext)%k != 0 {
		return nil, tracerr.Wrap(rsa_engine.ErrorInvalidCiphertextLength.AddDetails(fmt.Sprintf("%d bytes is not a multiple of %d", len(ciphertext), k)))
	}
	message, err := envelope.DecryptChunks(rand.Reader, ciphertext, key)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return message, nil
}

// DecryptString decrypts a base64 ciphertext produced by EncryptString, and returns the message as text.
func DecryptString(b64Ciphertext string, privateKeyPEM string) (string, error) {
	ciphertext, err := decodeBase64(b64Ciphertext)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	message, err := DecryptData(ciphertext, privateKeyPEM)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return utf8String(message)
}

// DecryptStringWithDER is DecryptString, for a private key given as DER.
func DecryptStringWithDER(b64Ciphertext string, privateKeyDER []byte) (string, error) {
	ciphertext, err := decodeBase64(b64Ciphertext)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	message, err := DecryptDataWithDER(ciphertext, privateKeyDER)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return utf8String(message)
}

func decodeBase64(s string) ([]byte, error) {
	b, err := utils.Base64DecodeString(s)
	if err != nil {
		return nil, tracerr.Wrap(ErrorInvalidBase64.AddDetails(err.Error()))
	}
	return b, nil
}

func utf8String(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", tracerr.Wrap(ErrorInvalidText)
	}
	return string(b), nil
}

// SignData hashes message with alg, or DefaultDigest if alg is zero, and signs it with the private key given as PEM.
func SignData(message []byte, alg digest.Algorithm, privateKeyPEM string) ([]byte, error) {
	d, err := digest.Sum(orDefault(alg), message)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return SignDigest(d, orDefault(alg), privateKeyPEM)
}

// SignString is SignData over the UTF-8 bytes of message, returning the signature as base64.
func SignString(message string, alg digest.Algorithm, privateKeyPEM string) (string, error) {
	signature, err := SignData([]byte(message), alg, privateKeyPEM)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return base64.StdEncoding.EncodeToString(signature), nil
}

// SignDigest signs a digest already computed with alg.
func SignDigest(d []byte, alg digest.Algorithm, privateKeyPEM string) ([]byte, error) {
	key, err := asymkey.ParsePrivateKeyPEM(privateKeyPEM)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	signature, err := rsa_engine.Sign(d, alg, key)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return signature, nil
}

// VerifySignatureData reports whether signature is a signature of message hashed with alg, or
// DefaultDigest if alg is zero. The error is only set when the public key cannot be parsed.
func VerifySignatureData(message []byte, signature []byte, alg digest.Algorithm, publicKeyPEM string) (bool, error) {
	d, err := digest.Sum(orDefault(alg), message)
	if err != nil {
		return false, tracerr.Wrap(err)
	}
	return VerifyDigest(d, signature, orDefault(alg), publicKeyPEM)
}

// VerifySignatureString is VerifySignatureData over the UTF-8 bytes of message, for a base64 signature.
// A signature that is not valid base64 does not verify.
func VerifySignatureString(message string, b64Signature string, alg digest.Algorithm, publicKeyPEM string) (bool, error) {
	signature, err := utils.Base64DecodeString(b64Signature)
	if err != nil {
		signature = nil
	}
	return VerifySignatureData([]byte(message), signature, alg, publicKeyPEM)
}

// VerifyDigest reports whether signature is a signature of the digest d computed with alg.
func VerifyDigest(d []byte, signature []byte, alg digest.Algorithm, publicKeyPEM string) (bool, error) {
	key, err := asymkey.ParsePublicKeyPEM(publicKeyPEM)
	if err != nil {
		return false, tracerr.Wrap(err)
	}
	return rsa_engine.Verify(d, signature, alg, key), nil
}
