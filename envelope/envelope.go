// Package envelope carries messages of any length encrypted with an RSA public key, by splitting
// them into chunks that each fit in one PKCS#1 v1.5 block.
package envelope

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"github.com/rsakit/go-rsakit/asymkey"
	"github.com/rsakit/go-rsakit/rsa_engine"
	"github.com/rsakit/go-rsakit/utils"
	"github.com/ztrue/tracerr"
	"go.mongodb.org/mongo-driver/bson"
	"io"
)

var (
	// ErrorInvalidEnvelope is returned when data does not have the structure of an envelope
	ErrorInvalidEnvelope = utils.NewKitError("ENVELOPE_INVALID", "invalid envelope")
	// ErrorEnvelopeKeyMismatch is returned when an envelope was sealed for another key than the one used to open it
	ErrorEnvelopeKeyMismatch = utils.NewKitError("ENVELOPE_KEY_MISMATCH", "envelope was sealed for another key")
	// ErrorUnsupportedVersion is returned when the envelope header announces an unknown version
	ErrorUnsupportedVersion = utils.NewKitError("ENVELOPE_UNSUPPORTED_VERSION", "unsupported envelope version")
)

const (
	magic = "RSAKIT.IO_"
	// Version is the envelope format written by Seal.
	Version = "1"
	// maxHeaderLength bounds the header allocation when reading untrusted data.
	maxHeaderLength = 1 << 16
)

// Header is the BSON document that follows the magic string.
type Header struct {
	Version string `bson:"v"`
	// BlockSize is the size in bytes of each encrypted block, which is the modulus size of the key.
	BlockSize int `bson:"k"`
	// Blocks is the number of encrypted blocks following the header.
	Blocks int `bson:"n"`
	// KeyHash is the GetHash of the public key the envelope was sealed for.
	KeyHash string `bson:"kh"`
}

// EncryptChunks splits message into chunks of at most MaxMessageLength bytes, encrypts each of
// them independently, and concatenates the ciphertexts. An empty message still produces one block.
func EncryptChunks(random io.Reader, message []byte, key *asymkey.PublicKey) ([]byte, error) {
	chunks := utils.ChunkSlice(message, rsa_engine.MaxMessageLength(key))
	if len(chunks) == 0 {
		chunks = [][]byte{{}}
	}
	output := make([]byte, 0, len(chunks)*key.Size())
	for _, chunk := range chunks {
		c, err := rsa_engine.EncryptWithRandom(random, chunk, key)
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		output = append(output, c...)
	}
	return output, nil
}

// DecryptChunks reverses EncryptChunks. data must be a non-empty multiple of the key size.
func DecryptChunks(random io.Reader, data []byte, key *asymkey.PrivateKey) ([]byte, error) {
	k := key.Size()
	if len(data) == 0 || len(data)%k != 0 {
		return nil, tracerr.Wrap(ErrorInvalidEnvelope.AddDetails(fmt.Sprintf("body of %d bytes is not a multiple of %d", len(data), k)))
	}
	var output []byte
	for _, chunk := range utils.ChunkSlice(data, k) {
		m, err := rsa_engine.DecryptWithRandom(random, chunk, key)
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		output = append(output, m...)
	}
	if output == nil {
		output = []byte{}
	}
	return output, nil
}

// Seal encrypts message for key with a header identifying the key, using crypto/rand.
func Seal(message []byte, key *asymkey.PublicKey) ([]byte, error) {
	return SealWithRandom(rand.Reader, message, key)
}

// SealWithRandom is Seal, reading the padding bytes from random.
func SealWithRandom(random io.Reader, message []byte, key *asymkey.PublicKey) ([]byte, error) {
	body, err := EncryptChunks(random, message, key)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	header := Header{
		Version:   Version,
		BlockSize: key.Size(),
		Blocks:    len(body) / key.Size(),
		KeyHash:   key.GetHash(),
	}
	bsonHeader, err := bson.Marshal(header)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}

	bsonLength := make([]byte, 4)
	binary.LittleEndian.PutUint32(bsonLength, uint32(len(bsonHeader)))

	output := bytes.Buffer{}
	output.WriteString(magic)
	output.Write(bsonLength)
	output.Write(bsonHeader)
	output.Write(body)
	return output.Bytes(), nil
}

// ParseHeader reads the magic string and the header from reader, leaving it positioned on the first block.
func ParseHeader(reader io.Reader) (*Header, error) {
	initString := make([]byte, len(magic))
	_, err := io.ReadFull(reader, initString)
	if err != nil || !bytes.Equal(initString, []byte(magic)) {
		return nil, tracerr.Wrap(ErrorInvalidEnvelope.AddDetails("missing magic string"))
	}

	bsonLength := make([]byte, 4)
	_, err = io.ReadFull(reader, bsonLength)
	if err != nil {
		return nil, tracerr.Wrap(ErrorInvalidEnvelope.AddDetails("truncated header length"))
	}
	headerLength := binary.LittleEndian.Uint32(bsonLength)
	if headerLength > maxHeaderLength {
		return nil, tracerr.Wrap(ErrorInvalidEnvelope.AddDetails(fmt.Sprintf("header of %d bytes", headerLength)))
	}

	headerBuff := make([]byte, headerLength)
	_, err = io.ReadFull(reader, headerBuff)
	if err != nil {
		return nil, tracerr.Wrap(ErrorInvalidEnvelope.AddDetails("truncated header"))
	}

	var header Header
	err = bson.Unmarshal(headerBuff, &header)
	if err != nil {
		return nil, tracerr.Wrap(ErrorInvalidEnvelope.AddDetails(err.Error()))
	}
	if header.Version != Version {
		return nil, tracerr.Wrap(ErrorUnsupportedVersion.AddDetails(header.Version))
	}
	if header.BlockSize <= 0 || header.Blocks <= 0 {
		return nil, tracerr.Wrap(ErrorInvalidEnvelope.AddDetails("empty body"))
	}
	return &header, nil
}

// Open decrypts an envelope produced by Seal, using crypto/rand for blinding.
func Open(data []byte, key *asymkey.PrivateKey) ([]byte, error) {
	return OpenWithRandom(rand.Reader, data, key)
}

// OpenWithRandom is Open, reading the blinding factors from random.
func OpenWithRandom(random io.Reader, data []byte, key *asymkey.PrivateKey) ([]byte, error) {
	reader := bytes.NewReader(data)
	header, err := ParseHeader(reader)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	if header.BlockSize != key.Size() || header.KeyHash != key.Public().GetHash() {
		return nil, tracerr.Wrap(ErrorEnvelopeKeyMismatch)
	}
	if reader.Len() != header.Blocks*header.BlockSize {
		return nil, tracerr.Wrap(ErrorInvalidEnvelope.AddDetails(fmt.Sprintf("expected %d blocks of %d bytes, got %d bytes", header.Blocks, header.BlockSize, reader.Len())))
	}
	body := data[len(data)-reader.Len():]
	message, err := DecryptChunks(random, body, key)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return message, nil
}
