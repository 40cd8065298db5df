package asymkey

import (
	"encoding/base64"
	"fmt"
	"github.com/rsakit/go-rsakit/der"
	"github.com/rsakit/go-rsakit/pem_codec"
	"github.com/rsakit/go-rsakit/utils"
	"github.com/ztrue/tracerr"
	"math/big"
)

// ParsePublicKeyDER reads a bare PKCS#1 RSAPublicKey, or a SubjectPublicKeyInfo wrapping one.
// The bare form is tried first, and the wrapper is only unwrapped when the structure does not match.
func ParsePublicKeyDER(b []byte) (*PublicKey, error) {
	node, err := der.Decode(b)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	n, e, ok := pkcs1PublicKeyValues(node)
	if !ok {
		inner, err := spkiPayload(node)
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		n, e, ok = pkcs1PublicKeyValues(inner)
		if !ok {
			return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("SubjectPublicKeyInfo does not hold an RSAPublicKey"))
		}
	}
	key, err := NewPublicKey(n, e)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return key, nil
}

// RSAPublicKey ::= SEQUENCE { modulus INTEGER, publicExponent INTEGER }
func pkcs1PublicKeyValues(node *der.Node) (*big.Int, *big.Int, bool) {
	if !node.IsSequence() || len(node.Children) != 2 {
		return nil, nil, false
	}
	n, err := node.Children[0].Uint()
	if err != nil {
		return nil, nil, false
	}
	e, err := node.Children[1].Uint()
	if err != nil {
		return nil, nil, false
	}
	return n, e, true
}

// SubjectPublicKeyInfo ::= SEQUENCE { algorithm AlgorithmIdentifier, subjectPublicKey BIT STRING }
func spkiPayload(node *der.Node) (*der.Node, error) {
	if !node.IsSequence() || len(node.Children) != 2 {
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("neither RSAPublicKey nor SubjectPublicKeyInfo"))
	}
	err := checkRSAAlgorithm(node.Children[0])
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	payload, err := node.Children[1].BitStringBytes()
	if err != nil {
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails(err.Error()))
	}
	inner, err := der.Decode(payload)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return inner, nil
}

// AlgorithmIdentifier ::= SEQUENCE { algorithm OBJECT IDENTIFIER, parameters ANY OPTIONAL }
// The parameters of rsaEncryption are NULL; some encoders omit them.
func checkRSAAlgorithm(node *der.Node) error {
	if !node.IsSequence() || len(node.Children) < 1 || len(node.Children) > 2 {
		return tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("invalid AlgorithmIdentifier"))
	}
	oid, err := node.Children[0].OID()
	if err != nil {
		return tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails(err.Error()))
	}
	if !oid.Equal(der.OIDRSAEncryption) {
		return tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails(fmt.Sprintf("unsupported key algorithm %s", oid)))
	}
	if len(node.Children) == 2 && !node.Children[1].IsNull() {
		return tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("rsaEncryption parameters must be NULL"))
	}
	return nil
}

// ParsePrivateKeyDER reads a PKCS#1 RSAPrivateKey, or a PKCS#8 PrivateKeyInfo wrapping one.
// Missing or zero CRT values are accepted.
func ParsePrivateKeyDER(b []byte) (*PrivateKey, error) {
	node, err := der.Decode(b)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	values, ok, err := pkcs1PrivateKeyValues(node)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	if !ok {
		inner, err := pkcs8Payload(node)
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		values, ok, err = pkcs1PrivateKeyValues(inner)
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		if !ok {
			return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("PrivateKeyInfo does not hold an RSAPrivateKey"))
		}
	}
	key, err := NewPrivateKey(values)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return key, nil
}

//	RSAPrivateKey ::= SEQUENCE {
//		version Version, modulus INTEGER, publicExponent INTEGER, privateExponent INTEGER,
//		prime1 INTEGER, prime2 INTEGER, exponent1 INTEGER, exponent2 INTEGER, coefficient INTEGER,
//		otherPrimeInfos OtherPrimeInfos OPTIONAL }
//
// ok is false when node does not have this shape. Trailing CRT values may be missing.
func pkcs1PrivateKeyValues(node *der.Node) (PrivateKeyValues, bool, error) {
	if !node.IsSequence() || len(node.Children) < 4 || len(node.Children) > 10 {
		return PrivateKeyValues{}, false, nil
	}
	fields := node.Children
	if len(fields) == 10 {
		fields = fields[:9]
	}
	for _, field := range fields {
		if !field.Is(der.TagInteger, false) {
			return PrivateKeyValues{}, false, nil
		}
	}
	version, err := fields[0].Uint()
	if err != nil {
		return PrivateKeyValues{}, true, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails(err.Error()))
	}
	if version.Sign() != 0 || len(node.Children) == 10 {
		return PrivateKeyValues{}, true, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails(fmt.Sprintf("unsupported RSAPrivateKey version %s, multi-prime keys are not supported", version)))
	}
	ints := make([]*big.Int, 8)
	for i, field := range fields[1:] {
		ints[i], err = field.Uint()
		if err != nil {
			return PrivateKeyValues{}, true, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails(err.Error()))
		}
	}
	return PrivateKeyValues{
		N: ints[0], E: ints[1], D: ints[2],
		P: ints[3], Q: ints[4],
		Dp: ints[5], Dq: ints[6], Qinv: ints[7],
	}, true, nil
}

//	PrivateKeyInfo ::= SEQUENCE {
//		version Version, privateKeyAlgorithm AlgorithmIdentifier, privateKey OCTET STRING,
//		attributes [0] IMPLICIT Attributes OPTIONAL }
func pkcs8Payload(node *der.Node) (*der.Node, error) {
	if !node.IsSequence() || len(node.Children) < 3 || len(node.Children) > 4 {
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("neither RSAPrivateKey nor PrivateKeyInfo"))
	}
	version, err := node.Children[0].Uint()
	if err != nil {
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails(err.Error()))
	}
	// version 1 is the OneAsymmetricKey form of RFC 5958, which only adds optional fields
	if version.Cmp(big.NewInt(1)) > 0 {
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails(fmt.Sprintf("unsupported PrivateKeyInfo version %s", version)))
	}
	err = checkRSAAlgorithm(node.Children[1])
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	payload, err := node.Children[2].OctetStringBytes()
	if err != nil {
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails(err.Error()))
	}
	inner, err := der.Decode(payload)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return inner, nil
}

// ParsePublicKeyPEM reads a public key from PEM text, framed or headerless.
// A private key block is accepted too, and its public half is returned.
func ParsePublicKeyPEM(text string) (*PublicKey, error) {
	blockType, b, err := pem_codec.Decode(text)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	switch blockType {
	case pem_codec.TypePublicKey, pem_codec.TypeRSAPublicKey:
		return ParsePublicKeyDER(b)
	case pem_codec.TypePrivateKey, pem_codec.TypeRSAPrivateKey:
		privateKey, err := ParsePrivateKeyDER(b)
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		return privateKey.Public(), nil
	case "":
		publicKey, err := ParsePublicKeyDER(b)
		if err == nil {
			return publicKey, nil
		}
		privateKey, privateErr := ParsePrivateKeyDER(b)
		if privateErr != nil {
			return nil, tracerr.Wrap(err)
		}
		return privateKey.Public(), nil
	default:
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails(fmt.Sprintf("unexpected PEM block type %q", blockType)))
	}
}

// ParsePrivateKeyPEM reads a private key from PEM text, framed or headerless.
func ParsePrivateKeyPEM(text string) (*PrivateKey, error) {
	blockType, b, err := pem_codec.Decode(text)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	switch blockType {
	case pem_codec.TypePrivateKey, pem_codec.TypeRSAPrivateKey, "":
		return ParsePrivateKeyDER(b)
	default:
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails(fmt.Sprintf("expected a private key, got PEM block type %q", blockType)))
	}
}

func PublicKeyFromB64(b64 string) (*PublicKey, error) {
	b, err := utils.Base64DecodeString(b64)
	if err != nil {
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails(err.Error()))
	}
	return ParsePublicKeyDER(b)
}

func PrivateKeyFromB64(b64 string) (*PrivateKey, error) {
	b, err := utils.Base64DecodeString(b64)
	if err != nil {
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails(err.Error()))
	}
	return ParsePrivateKeyDER(b)
}

func mustEncode(n *der.Node) []byte {
	b, err := der.Encode(n)
	if err != nil {
		// An error cannot happen: the nodes are built here from valid integers, and are shallow.
		panic(err)
	}
	return b
}

func rsaAlgorithmIdentifier() *der.Node {
	return der.Sequence(der.ObjectIdentifier(der.OIDRSAEncryption), der.Null())
}

// EncodePKCS1 returns the DER of the bare RSAPublicKey.
func (k *PublicKey) EncodePKCS1() []byte {
	return mustEncode(der.Sequence(der.Integer(k.n.Big()), der.Integer(k.e.Big())))
}

// Encode returns the DER of the SubjectPublicKeyInfo.
func (k *PublicKey) Encode() []byte {
	return mustEncode(der.Sequence(rsaAlgorithmIdentifier(), der.BitString(k.EncodePKCS1())))
}

func (k *PublicKey) ToB64() string {
	return base64.StdEncoding.EncodeToString(k.Encode())
}

func (k *PublicKey) ToPEM() string {
	return pem_codec.Encode(pem_codec.TypePublicKey, k.Encode())
}

func (k *PublicKey) ToPKCS1PEM() string {
	return pem_codec.Encode(pem_codec.TypeRSAPublicKey, k.EncodePKCS1())
}

// EncodePKCS1 returns the DER of the RSAPrivateKey. CRT values are written as zeros when the key has none.
func (k *PrivateKey) EncodePKCS1() []byte {
	v := k.Values()
	zero := new(big.Int)
	children := []*der.Node{der.SmallInteger(0), der.Integer(v.N), der.Integer(v.E), der.Integer(v.D)}
	for _, x := range []*big.Int{v.P, v.Q, v.Dp, v.Dq, v.Qinv} {
		if x == nil {
			x = zero
		}
		children = append(children, der.Integer(x))
	}
	return mustEncode(der.Sequence(children...))
}

// Encode returns the DER of the PKCS#8 PrivateKeyInfo.
func (k *PrivateKey) Encode() []byte {
	return mustEncode(der.Sequence(der.SmallInteger(0), rsaAlgorithmIdentifier(), der.OctetString(k.EncodePKCS1())))
}

func (k *PrivateKey) ToB64() string {
	return base64.StdEncoding.EncodeToString(k.Encode())
}

func (k *PrivateKey) ToPEM() string {
	return pem_codec.Encode(pem_codec.TypePrivateKey, k.Encode())
}

func (k *PrivateKey) ToPKCS1PEM() string {
	return pem_codec.Encode(pem_codec.TypeRSAPrivateKey, k.EncodePKCS1())
}
