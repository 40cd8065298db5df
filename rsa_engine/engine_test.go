package rsa_engine

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"github.com/rsakit/go-rsakit/asymkey"
	"github.com/rsakit/go-rsakit/bigint"
	"github.com/rsakit/go-rsakit/digest"
	"github.com/rsakit/go-rsakit/padding"
	"github.com/rsakit/go-rsakit/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"sync"
	"testing"
)

func loadPrivateKey(t *testing.T, name string) *asymkey.PrivateKey {
	key, err := asymkey.ParsePrivateKeyPEM(string(test_utils.MustReadTestData(name)))
	require.NoError(t, err)
	return key
}

func toStd(t *testing.T, key *asymkey.PrivateKey) *rsa.PrivateKey {
	std, err := x509.ParsePKCS1PrivateKey(key.EncodePKCS1())
	require.NoError(t, err)
	return std
}

func withoutCRT(t *testing.T, key *asymkey.PrivateKey) *asymkey.PrivateKey {
	v := key.Values()
	stripped, err := asymkey.NewPrivateKey(asymkey.PrivateKeyValues{N: v.N, E: v.E, D: v.D})
	require.NoError(t, err)
	require.False(t, stripped.HasCRT())
	return stripped
}

// rawEncrypt computes block^e mod N, without padding.
func rawEncrypt(key *asymkey.PublicKey, block []byte) []byte {
	return bigint.FromBytes(block).ExpVarTime(key.E(), key.N()).FillBytes(key.Size())
}

func TestEncryptDecrypt(t *testing.T) {
	privateKey := loadPrivateKey(t, "private_pkcs1.pem")
	publicKey := privateKey.Public()
	k := publicKey.Size()
	require.Equal(t, 256, k)

	t.Parallel()
	t.Run("Round trip", func(t *testing.T) {
		t.Parallel()
		for _, size := range []int{0, 1, 16, 100, k - 12, k - 11} {
			message := test_utils.GetRandomBytes(size)
			if size == 0 {
				message = []byte{}
			}
			ciphertext, err := Encrypt(message, publicKey)
			require.NoError(t, err)
			assert.Len(t, ciphertext, k)
			decrypted, err := Decrypt(ciphertext, privateKey)
			require.NoError(t, err)
			assert.Equal(t, message, decrypted)
		}
	})
	t.Run("Ciphertexts are randomized", func(t *testing.T) {
		t.Parallel()
		c1, err := Encrypt([]byte("message"), publicKey)
		require.NoError(t, err)
		c2, err := Encrypt([]byte("message"), publicKey)
		require.NoError(t, err)
		assert.NotEqual(t, c1, c2)
	})
	t.Run("Message too long", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, k-11, MaxMessageLength(publicKey))
		_, err := Encrypt(make([]byte, k-10), publicKey)
		assert.ErrorIs(t, err, padding.ErrorMessageTooLong)
		_, err = Encrypt(make([]byte, k), publicKey)
		assert.ErrorIs(t, err, padding.ErrorMessageTooLong)
	})
	t.Run("Invalid ciphertext length", func(t *testing.T) {
		t.Parallel()
		ciphertext, err := Encrypt([]byte("message"), publicKey)
		require.NoError(t, err)
		_, err = Decrypt(ciphertext[1:], privateKey)
		assert.ErrorIs(t, err, ErrorInvalidCiphertextLength)
		_, err = Decrypt(append(ciphertext, 0), privateKey)
		assert.ErrorIs(t, err, ErrorInvalidCiphertextLength)
		_, err = Decrypt(append([]byte{0}, ciphertext...), privateKey)
		assert.ErrorIs(t, err, ErrorInvalidCiphertextLength)
		_, err = Decrypt(nil, privateKey)
		assert.ErrorIs(t, err, ErrorInvalidCiphertextLength)
	})
	t.Run("Ciphertext out of range", func(t *testing.T) {
		t.Parallel()
		_, err := Decrypt(publicKey.N().FillBytes(k), privateKey)
		assert.ErrorIs(t, err, ErrorInvalidCiphertext)
		_, err = Decrypt(bytes.Repeat([]byte{0xff}, k), privateKey)
		assert.ErrorIs(t, err, ErrorInvalidCiphertext)
	})
	t.Run("Invalid padding", func(t *testing.T) {
		t.Parallel()
		signatureBlock, err := padding.SignaturePad(make([]byte, 32), digest.SHA256, k)
		require.NoError(t, err)
		_, err = Decrypt(rawEncrypt(publicKey, signatureBlock), privateKey)
		assert.ErrorIs(t, err, padding.ErrorInvalidPadding)

		shortPadding := make([]byte, k)
		shortPadding[1] = 2
		for i := 2; i < 9; i++ {
			shortPadding[i] = 0x42
		}
		_, err = Decrypt(rawEncrypt(publicKey, shortPadding), privateKey)
		assert.ErrorIs(t, err, padding.ErrorInvalidPadding)

		_, err = Decrypt(make([]byte, k), privateKey)
		assert.ErrorIs(t, err, padding.ErrorInvalidPadding)
	})
	t.Run("Without CRT values", func(t *testing.T) {
		t.Parallel()
		plainKey := withoutCRT(t, privateKey)
		ciphertext, err := Encrypt([]byte("no CRT"), publicKey)
		require.NoError(t, err)
		decrypted, err := Decrypt(ciphertext, plainKey)
		require.NoError(t, err)
		assert.Equal(t, []byte("no CRT"), decrypted)
	})
	t.Run("Random source failure", func(t *testing.T) {
		t.Parallel()
		_, err := EncryptWithRandom(test_utils.FailingReader{}, []byte("message"), publicKey)
		assert.ErrorIs(t, err, padding.ErrorRandomSource)

		ciphertext, err := Encrypt([]byte("message"), publicKey)
		require.NoError(t, err)
		_, err = DecryptWithRandom(test_utils.FailingReader{}, ciphertext, privateKey)
		assert.ErrorIs(t, err, padding.ErrorRandomSource)
	})
	t.Run("Blinding source yielding only zeros", func(t *testing.T) {
		t.Parallel()
		ciphertext, err := Encrypt([]byte("message"), publicKey)
		require.NoError(t, err)
		_, err = DecryptWithRandom(bytes.NewReader(make([]byte, k*maxBlindingAttempts)), ciphertext, privateKey)
		assert.ErrorIs(t, err, ErrorBlinding)
	})
	t.Run("Interoperability with crypto/rsa", func(t *testing.T) {
		t.Parallel()
		std := toStd(t, privateKey)
		message := []byte("interoperability")

		stdCiphertext, err := rsa.EncryptPKCS1v15(rand.Reader, &std.PublicKey, message)
		require.NoError(t, err)
		decrypted, err := Decrypt(stdCiphertext, privateKey)
		require.NoError(t, err)
		assert.Equal(t, message, decrypted)

		ciphertext, err := Encrypt(message, publicKey)
		require.NoError(t, err)
		stdDecrypted, err := rsa.DecryptPKCS1v15(rand.Reader, std, ciphertext)
		require.NoError(t, err)
		assert.Equal(t, message, stdDecrypted)
	})
	t.Run("Known answers", func(t *testing.T) {
		t.Parallel()
		smallKey := loadPrivateKey(t, "small_private_pkcs1.pem")
		for _, vector := range test_utils.SmallKeyDecryptVectors {
			ciphertext, err := base64.StdEncoding.DecodeString(vector[0])
			require.NoError(t, err)
			decrypted, err := Decrypt(ciphertext, smallKey)
			require.NoError(t, err)
			assert.Equal(t, []byte(vector[1]), decrypted)

			decrypted, err = Decrypt(ciphertext, withoutCRT(t, smallKey))
			require.NoError(t, err)
			assert.Equal(t, []byte(vector[1]), decrypted)
		}

		overlong, err := base64.StdEncoding.DecodeString(test_utils.SmallKeyOverlongCiphertext)
		require.NoError(t, err)
		_, err = Decrypt(overlong, smallKey)
		assert.ErrorIs(t, err, padding.ErrorInvalidPadding)
	})
}

func TestSignVerify(t *testing.T) {
	privateKey := loadPrivateKey(t, "private.pem")
	publicKey := privateKey.Public()
	k := publicKey.Size()

	t.Parallel()
	t.Run("Known answers", func(t *testing.T) {
		t.Parallel()
		for _, alg := range digest.All {
			d, err := digest.Sum(alg, []byte(test_utils.KnownAnswerMessage))
			require.NoError(t, err)
			expected, err := hex.DecodeString(test_utils.KnownAnswerSignatures[alg.String()])
			require.NoError(t, err)

			signature, err := Sign(d, alg, privateKey)
			require.NoError(t, err)
			assert.Equal(t, expected, signature, alg.String())
			assert.True(t, Verify(d, expected, alg, publicKey), alg.String())
		}
	})
	t.Run("Round trip", func(t *testing.T) {
		t.Parallel()
		for _, alg := range digest.All {
			d := test_utils.GetRandomBytes(alg.Size())
			signature, err := Sign(d, alg, privateKey)
			require.NoError(t, err)
			assert.Len(t, signature, k)
			assert.True(t, Verify(d, signature, alg, publicKey), alg.String())
		}
	})
	t.Run("Without CRT values", func(t *testing.T) {
		t.Parallel()
		d, err := digest.Sum(digest.SHA256, []byte("CRT"))
		require.NoError(t, err)
		withCRT, err := Sign(d, digest.SHA256, privateKey)
		require.NoError(t, err)
		plain, err := Sign(d, digest.SHA256, withoutCRT(t, privateKey))
		require.NoError(t, err)
		assert.Equal(t, withCRT, plain)
	})
	t.Run("Interoperability with crypto/rsa", func(t *testing.T) {
		t.Parallel()
		std := toStd(t, privateKey)
		for _, alg := range digest.All {
			d := test_utils.GetRandomBytes(alg.Size())
			stdSignature, err := rsa.SignPKCS1v15(nil, std, alg.CryptoHash(), d)
			require.NoError(t, err)
			signature, err := Sign(d, alg, privateKey)
			require.NoError(t, err)
			assert.Equal(t, stdSignature, signature, alg.String())
			assert.NoError(t, rsa.VerifyPKCS1v15(&std.PublicKey, alg.CryptoHash(), d, signature), alg.String())
		}
	})
	t.Run("Every single byte mutation is rejected", func(t *testing.T) {
		t.Parallel()
		d := test_utils.GetRandomBytes(32)
		signature, err := Sign(d, digest.SHA256, privateKey)
		require.NoError(t, err)
		for i := range signature {
			mutated := append([]byte{}, signature...)
			mutated[i] ^= 0x80
			assert.False(t, Verify(d, mutated, digest.SHA256, publicKey), "byte %d", i)
		}
	})
	t.Run("Verify rejections", func(t *testing.T) {
		t.Parallel()
		d := test_utils.GetRandomBytes(20)
		signature, err := Sign(d, digest.SHA1, privateKey)
		require.NoError(t, err)

		assert.False(t, Verify(d, signature[1:], digest.SHA1, publicKey))
		assert.False(t, Verify(d, append([]byte{0}, signature...), digest.SHA1, publicKey))
		assert.False(t, Verify(d, nil, digest.SHA1, publicKey))
		assert.False(t, Verify(d, publicKey.N().FillBytes(k), digest.SHA1, publicKey))
		assert.False(t, Verify(d, bytes.Repeat([]byte{0xff}, k), digest.SHA1, publicKey))
		assert.False(t, Verify(test_utils.GetRandomBytes(20), signature, digest.SHA1, publicKey))
		assert.False(t, Verify(d[:19], signature, digest.SHA1, publicKey))
		assert.False(t, Verify(d, signature, digest.Algorithm(0), publicKey))

		otherKey, err := asymkey.PublicKeyFromB64(test_utils.B64PublicKey)
		require.NoError(t, err)
		assert.False(t, Verify(d, signature, digest.SHA1, otherKey))
	})
	t.Run("Algorithm is bound to the signature", func(t *testing.T) {
		t.Parallel()
		d := test_utils.GetRandomBytes(32)
		signature, err := Sign(d, digest.SHA256, privateKey)
		require.NoError(t, err)
		for _, alg := range digest.All {
			if alg != digest.SHA256 {
				assert.False(t, Verify(d, signature, alg, publicKey), alg.String())
			}
		}
	})
	t.Run("Sign errors", func(t *testing.T) {
		t.Parallel()
		_, err := Sign(make([]byte, 31), digest.SHA256, privateKey)
		assert.ErrorIs(t, err, digest.ErrorDigestLengthMismatch)
		_, err = Sign(make([]byte, 32), digest.Algorithm(9), privateKey)
		assert.ErrorIs(t, err, digest.ErrorUnsupportedAlgorithm)

		smallKey := loadPrivateKey(t, "small_private_pkcs1.pem")
		_, err = Sign(make([]byte, 64), digest.SHA512, smallKey)
		assert.ErrorIs(t, err, padding.ErrorMessageTooLong)
		_, err = Sign(make([]byte, 32), digest.SHA256, smallKey)
		assert.NoError(t, err)

		_, err = SignWithRandom(test_utils.FailingReader{}, make([]byte, 32), digest.SHA256, privateKey)
		assert.ErrorIs(t, err, padding.ErrorRandomSource)
	})
	t.Run("Fault guard", func(t *testing.T) {
		t.Parallel()
		em, err := padding.SignaturePad(make([]byte, 32), digest.SHA256, k)
		require.NoError(t, err)
		faulty := func(random io.Reader, c bigint.Nat, key *asymkey.PrivateKey) (bigint.Nat, error) {
			s, err := privateOperation(random, c, key)
			if err != nil {
				return bigint.Nat{}, err
			}
			return s.Add(bigint.FromUint64(1)), nil
		}
		_, err = signBlock(rand.Reader, em, privateKey, faulty)
		assert.ErrorIs(t, err, ErrorSignatureFault)

		signature, err := signBlock(rand.Reader, em, privateKey, privateOperation)
		require.NoError(t, err)
		assert.True(t, Verify(make([]byte, 32), signature, digest.SHA256, publicKey))
	})
}

func TestConcurrentUse(t *testing.T) {
	t.Parallel()
	privateKey := loadPrivateKey(t, "private_pkcs1.pem")
	publicKey := privateKey.Public()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			message := []byte(test_utils.GetRandomString(32))
			ciphertext, err := Encrypt(message, publicKey)
			if err != nil {
				errs <- err
				return
			}
			decrypted, err := Decrypt(ciphertext, privateKey)
			if err != nil {
				errs <- err
				return
			}
			if !bytes.Equal(message, decrypted) {
				errs <- assert.AnError
				return
			}
			d, _ := digest.Sum(digest.SHA384, message)
			signature, err := Sign(d, digest.SHA384, privateKey)
			if err != nil {
				errs <- err
				return
			}
			if !Verify(d, signature, digest.SHA384, publicKey) {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}
