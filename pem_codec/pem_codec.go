package pem_codec

import (
	"encoding/pem"
	"fmt"
	"github.com/rsakit/go-rsakit/utils"
	"github.com/ztrue/tracerr"
	"strings"
)

var (
	// ErrorInvalidPEM is returned when the given text is neither a PEM block nor headerless base64
	ErrorInvalidPEM = utils.NewKitError("PEM_INVALID", "invalid PEM data")
	// ErrorEncryptedPEM is returned when the PEM block is password protected
	ErrorEncryptedPEM = utils.NewKitError("PEM_ENCRYPTED", "encrypted PEM blocks are not supported")
)

const (
	TypePublicKey     = "PUBLIC KEY"
	TypeRSAPublicKey  = "RSA PUBLIC KEY"
	TypePrivateKey    = "PRIVATE KEY"
	TypeRSAPrivateKey = "RSA PRIVATE KEY"
)

const beginMarker = "-----BEGIN "

// Decode returns the DER bytes carried by text and the PEM block type.
// Text without a BEGIN line is treated as a headerless base64 blob, and its type is empty.
func Decode(text string) (string, []byte, error) {
	if strings.Contains(text, beginMarker) {
		block, _ := pem.Decode([]byte(text))
		if block == nil {
			return "", nil, tracerr.Wrap(ErrorInvalidPEM.AddDetails("cannot find a complete PEM block"))
		}
		if strings.Contains(block.Headers["Proc-Type"], "ENCRYPTED") {
			return "", nil, tracerr.Wrap(ErrorEncryptedPEM.AddDetails(block.Type))
		}
		if len(block.Bytes) == 0 {
			return "", nil, tracerr.Wrap(ErrorInvalidPEM.AddDetails("empty PEM block"))
		}
		return block.Type, block.Bytes, nil
	}

	der, err := utils.Base64DecodeString(text)
	if err != nil {
		return "", nil, tracerr.Wrap(ErrorInvalidPEM.AddDetails(err.Error()))
	}
	if len(der) == 0 {
		return "", nil, tracerr.Wrap(ErrorInvalidPEM.AddDetails("empty input"))
	}
	return "", der, nil
}

// Encode frames der in a PEM block of the given type.
func Encode(blockType string, der []byte) string {
	return string(pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der}))
}

// StripHeaders returns the base64 body of a PEM block, without BEGIN/END lines or new-lines.
func StripHeaders(text string) (string, error) {
	_, der, err := Decode(text)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	body := Encode("X", der)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) < 2 { // cannot cover
		return "", tracerr.Wrap(ErrorInvalidPEM.AddDetails(fmt.Sprintf("unexpected PEM layout: %d lines", len(lines))))
	}
	return strings.Join(lines[1:len(lines)-1], ""), nil
}
