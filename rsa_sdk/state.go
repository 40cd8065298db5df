// Package rsa_sdk is the convenience layer over the RSA core: one-shot helpers that parse a key
// then call the engine, and a State holding options and a logger for repeated use of parsed keys.
package rsa_sdk

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"github.com/gibson042/canonicaljson-go"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rsakit/go-rsakit/asymkey"
	"github.com/rsakit/go-rsakit/digest"
	"github.com/rsakit/go-rsakit/envelope"
	"github.com/rsakit/go-rsakit/rsa_engine"
	"github.com/rsakit/go-rsakit/utils"
	"github.com/ztrue/tracerr"
	"golang.org/x/text/encoding"
	"io"
	"os"
	"reflect"
	"time"
)

var (
	// ErrorInvalidOptions is returned when the InitializeOptions given to Initialize do not validate
	ErrorInvalidOptions = utils.NewKitError("RSASDK_INVALID_OPTIONS", "invalid initialize options")
	// ErrorInvalidObject is returned when an object given to SignObject or VerifyObject cannot be serialized
	ErrorInvalidObject = utils.NewKitError("RSASDK_INVALID_OBJECT", "object cannot be serialized")
)

// InitializeOptions is the options object for creating a State.
type InitializeOptions struct {
	// DefaultDigest is the digest algorithm used by Sign, Verify, SignObject and VerifyObject. Defaults to SHA1.
	DefaultDigest digest.Algorithm `validate:"digest"`
	// LogLevel is the minimum level of logs you want. All logs of this level or above will be displayed. Use one of the zerolog level constants.
	LogLevel zerolog.Level `validate:"gte=-1,lte=7"`
	// LogNoColor should be set to true if you want to disable colors in the log output.
	LogNoColor bool
	// InstanceName is an arbitrary name to give to this instance. It is added to logs.
	InstanceName string `validate:"max=64"`
	// LogWriter is the io.Writer to which to write the logs. Defaults to os.Stdout.
	LogWriter io.Writer
	// Random is the randomness source for padding and blinding. Defaults to crypto/rand.Reader.
	Random io.Reader
	// TextEncoding converts the strings given to EncryptString and SignString to bytes, and the bytes
	// returned by DecryptString back. Defaults to UTF-8, with invalid sequences rejected.
	TextEncoding encoding.Encoding
	// NormalizeText applies NFKC normalization to strings before they are encoded, so that
	// equivalent spellings of the same text encrypt and sign alike.
	NormalizeText bool
}

// State holds validated options and a logger. It is read-only once created, so it can be shared
// between goroutines. You must never create a State yourself. Instead, always use Initialize.
type State struct {
	options        InitializeOptions
	logger         zerolog.Logger
	engineLogger   zerolog.Logger
	envelopeLogger zerolog.Logger
}

func validateDigest(fl validator.FieldLevel) bool {
	return digest.Algorithm(fl.Field().Int()).Valid()
}

func validateOptions(options *InitializeOptions) error {
	validate := validator.New()
	err := validate.RegisterValidation("digest", validateDigest)
	if err != nil {
		return tracerr.Wrap(err)
	}

	err = validate.Struct(options)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return tracerr.Wrap(ErrorInvalidOptions.AddDetails(fmt.Sprintf("%v", messages)))
		}
		return tracerr.Wrap(ErrorInvalidOptions.AddDetails(err.Error()))
	}
	return nil
}

// Initialize validates options, fills in their defaults, and returns a State using them.
// A nil options is the same as an empty one.
func Initialize(options *InitializeOptions) (*State, error) {
	opts := InitializeOptions{}
	if options != nil {
		opts = *options
	}
	if opts.DefaultDigest == 0 {
		opts.DefaultDigest = DefaultDigest
	}
	err := validateOptions(&opts)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}

	if opts.LogWriter == nil {
		opts.LogWriter = os.Stdout
	}
	customRandom := opts.Random != nil
	if !customRandom {
		opts.Random = rand.Reader
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	instanceLogger := zerolog.New(zerolog.ConsoleWriter{Out: opts.LogWriter, TimeFormat: time.StampMilli, NoColor: opts.LogNoColor}).With().Timestamp().Logger()
	instanceLogger = instanceLogger.Level(opts.LogLevel)
	if opts.InstanceName != "" {
		instanceLogger = instanceLogger.With().Str("instance", opts.InstanceName).Logger()
	}

	instanceLogger.Debug().Msg("Initialize new instance...")
	instanceLogger.Trace().Stringer("digest", opts.DefaultDigest).Bool("customRandom", customRandom).Bool("customEncoding", opts.TextEncoding != nil).Msg("Init options")

	return &State{
		options:        opts,
		logger:         instanceLogger,
		engineLogger:   instanceLogger.With().Str("component", "engine").Logger(),
		envelopeLogger: instanceLogger.With().Str("component", "envelope").Logger(),
	}, nil
}

// DefaultDigest is the digest algorithm this State signs with.
func (state *State) DefaultDigest() digest.Algorithm {
	return state.options.DefaultDigest
}

func (state *State) textToBytes(s string) ([]byte, error) {
	if state.options.NormalizeText {
		s = string(utils.NormalizeString(s))
	}
	if state.options.TextEncoding == nil {
		return []byte(s), nil
	}
	b, err := state.options.TextEncoding.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, tracerr.Wrap(ErrorInvalidText.AddDetails(err.Error()))
	}
	return b, nil
}

func (state *State) bytesToText(b []byte) (string, error) {
	if state.options.TextEncoding == nil {
		return utf8String(b)
	}
	s, err := state.options.TextEncoding.NewDecoder().Bytes(b)
	if err != nil {
		return "", tracerr.Wrap(ErrorInvalidText.AddDetails(err.Error()))
	}
	return string(s), nil
}

// Encrypt encrypts message, which must fit in one block, for key.
func (state *State) Encrypt(message []byte, key *asymkey.PublicKey) ([]byte, error) {
	state.engineLogger.Trace().Int("size", len(message)).Int("keySize", key.BitLen()).Msg("Encrypt")
	ciphertext, err := rsa_engine.EncryptWithRandom(state.options.Random, message, key)
	if err != nil {
		state.engineLogger.Debug().Err(err).Msg("Encrypt failed")
		return nil, tracerr.Wrap(err)
	}
	return ciphertext, nil
}

// Decrypt decrypts a single block produced by Encrypt.
func (state *State) Decrypt(ciphertext []byte, key *asymkey.PrivateKey) ([]byte, error) {
	state.engineLogger.Trace().Int("size", len(ciphertext)).Int("keySize", key.BitLen()).Msg("Decrypt")
	message, err := rsa_engine.DecryptWithRandom(state.options.Random, ciphertext, key)
	if err != nil {
		state.engineLogger.Debug().Err(err).Msg("Decrypt failed")
		return nil, tracerr.Wrap(err)
	}
	return message, nil
}

// EncryptData encrypts a message of any length for key: it is split in chunks, and the ciphertext is
// the concatenation of one block per chunk, like the free EncryptData.
func (state *State) EncryptData(message []byte, key *asymkey.PublicKey) ([]byte, error) {
	state.engineLogger.Trace().Int("size", len(message)).Int("keySize", key.BitLen()).Msg("EncryptData")
	ciphertext, err := envelope.EncryptChunks(state.options.Random, message, key)
	if err != nil {
		state.engineLogger.Debug().Err(err).Msg("EncryptData failed")
		return nil, tracerr.Wrap(err)
	}
	return ciphertext, nil
}

// DecryptData reverses EncryptData.
func (state *State) DecryptData(ciphertext []byte, key *asymkey.PrivateKey) ([]byte, error) {
	state.engineLogger.Trace().Int("size", len(ciphertext)).Int("keySize", key.BitLen()).Msg("DecryptData")
	k := key.Size()
	if len(ciphertext) == 0 || len(ciphertext)%k != 0 {
		return nil, tracerr.Wrap(rsa_engine.ErrorInvalidCiphertextLength.AddDetails(fmt.Sprintf("%d bytes is not a multiple of %d", len(ciphertext), k)))
	}
	message, err := envelope.DecryptChunks(state.options.Random, ciphertext, key)
	if err != nil {
		state.engineLogger.Debug().Err(err).Msg("DecryptData failed")
		return nil, tracerr.Wrap(err)
	}
	return message, nil
}

// EncryptString encodes message with the configured TextEncoding, encrypts it with EncryptData, and
// returns the ciphertext as base64.
func (state *State) EncryptString(message string, key *asymkey.PublicKey) (string, error) {
	b, err := state.textToBytes(message)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	ciphertext, err := state.EncryptData(b, key)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptString reverses EncryptString.
func (state *State) DecryptString(b64Ciphertext string, key *asymkey.PrivateKey) (string, error) {
	ciphertext, err := decodeBase64(b64Ciphertext)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	message, err := state.DecryptData(ciphertext, key)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return state.bytesToText(message)
}

// SignDigest signs a digest already computed with alg.
func (state *State) SignDigest(d []byte, alg digest.Algorithm, key *asymkey.PrivateKey) ([]byte, error) {
	state.engineLogger.Trace().Stringer("digest", alg).Int("keySize", key.BitLen()).Msg("Sign")
	signature, err := rsa_engine.SignWithRandom(state.options.Random, d, alg, key)
	if err != nil {
		state.engineLogger.Debug().Err(err).Msg("Sign failed")
		return nil, tracerr.Wrap(err)
	}
	return signature, nil
}

// VerifyDigest reports whether signature is a signature of the digest d computed with alg.
func (state *State) VerifyDigest(d []byte, signature []byte, alg digest.Algorithm, key *asymkey.PublicKey) bool {
	valid := rsa_engine.Verify(d, signature, alg, key)
	state.engineLogger.Trace().Stringer("digest", alg).Bool("valid", valid).Msg("Verify")
	return valid
}

// Sign hashes message with the default digest and signs it.
func (state *State) Sign(message []byte, key *asymkey.PrivateKey) ([]byte, error) {
	d, err := digest.Sum(state.options.DefaultDigest, message)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return state.SignDigest(d, state.options.DefaultDigest, key)
}

// Verify reports whether signature is a signature of message hashed with the default digest.
func (state *State) Verify(message []byte, signature []byte, key *asymkey.PublicKey) bool {
	d, err := digest.Sum(state.options.DefaultDigest, message)
	if err != nil {
		return false
	}
	return state.VerifyDigest(d, signature, state.options.DefaultDigest, key)
}

// SignString encodes message with the configured TextEncoding, signs it with Sign, and returns the
// signature as base64.
func (state *State) SignString(message string, key *asymkey.PrivateKey) (string, error) {
	b, err := state.textToBytes(message)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	signature, err := state.Sign(b, key)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return base64.StdEncoding.EncodeToString(signature), nil
}

// VerifyString reverses SignString. Text that the TextEncoding cannot represent, or a signature that
// is not valid base64, does not verify.
func (state *State) VerifyString(message string, b64Signature string, key *asymkey.PublicKey) bool {
	b, err := state.textToBytes(message)
	if err != nil {
		return false
	}
	signature, err := utils.Base64DecodeString(b64Signature)
	if err != nil {
		return false
	}
	return state.Verify(b, signature, key)
}

func canonicalObject(object any) ([]byte, error) {
	if object == nil || (reflect.ValueOf(object).Kind() == reflect.Pointer && reflect.ValueOf(object).IsNil()) {
		return nil, tracerr.Wrap(ErrorInvalidObject.AddDetails("nil object"))
	}
	serialized, err := canonicaljson.Marshal(object)
	if err != nil {
		return nil, tracerr.Wrap(ErrorInvalidObject.AddDetails(err.Error()))
	}
	return serialized, nil
}

// SignObject signs the canonical JSON serialization of object, so that the signature does not depend
// on field order or whitespace.
func (state *State) SignObject(object any, key *asymkey.PrivateKey) ([]byte, error) {
	serialized, err := canonicalObject(object)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return state.Sign(serialized, key)
}

// VerifyObject reports whether signature was made by SignObject on an object with the same canonical
// JSON serialization. The error is only set when object cannot be serialized.
func (state *State) VerifyObject(object any, signature []byte, key *asymkey.PublicKey) (bool, error) {
	serialized, err := canonicalObject(object)
	if err != nil {
		return false, tracerr.Wrap(err)
	}
	return state.Verify(serialized, signature, key), nil
}

// Seal encrypts a message of any length for key in an envelope.
func (state *State) Seal(message []byte, key *asymkey.PublicKey) ([]byte, error) {
	state.envelopeLogger.Trace().Int("size", len(message)).Str("keyHash", key.GetHash()).Msg("Seal")
	sealed, err := envelope.SealWithRandom(state.options.Random, message, key)
	if err != nil {
		state.envelopeLogger.Debug().Err(err).Msg("Seal failed")
		return nil, tracerr.Wrap(err)
	}
	return sealed, nil
}

// Open decrypts an envelope produced by Seal.
func (state *State) Open(data []byte, key *asymkey.PrivateKey) ([]byte, error) {
	state.envelopeLogger.Trace().Int("size", len(data)).Str("keyHash", key.Public().GetHash()).Msg("Open")
	message, err := envelope.OpenWithRandom(state.options.Random, data, key)
	if err != nil {
		state.envelopeLogger.Debug().Err(err).Msg("Open failed")
		return nil, tracerr.Wrap(err)
	}
	return message, nil
}
