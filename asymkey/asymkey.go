package asymkey

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"github.com/rsakit/go-rsakit/bigint"
	"github.com/rsakit/go-rsakit/utils"
	"github.com/ztrue/tracerr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
	"golang.org/x/text/encoding/charmap"
	"math/big"
)

// MinModulusBits is the smallest modulus accepted when building a key.
const MinModulusBits = 512

var (
	// ErrorInvalidKeyFormat is returned when the given data is not an RSA key in a supported container, or when the key values are inconsistent
	ErrorInvalidKeyFormat = utils.NewKitError("ASYMKEY_INVALID_KEY_FORMAT", "invalid RSA key format")
	// ErrorKeyTooSmall is returned when the modulus of a key is shorter than MinModulusBits
	ErrorKeyTooSmall = utils.NewKitError("ASYMKEY_KEY_TOO_SMALL", fmt.Sprintf("RSA modulus must be at least %d bits long", MinModulusBits))
	// ErrorUnmarshalBSONValueTooShort is returned when trying to unmarshal a bson that is too short
	ErrorUnmarshalBSONValueTooShort = utils.NewKitError("ASYMKEY_UNMARSHALL_BSON_VALUE_TOO_SHORT", "Cannot unmarshal, not enough bytes")
	// ErrorUnmarshalBSONValueInvalidType is returned when trying to unmarshal a bson that is not a string
	ErrorUnmarshalBSONValueInvalidType = utils.NewKitError("ASYMKEY_UNMARSHALL_BSON_VALUE_INVALID_TYPE", "Cannot unmarshal, type is not String")
)

var one = bigint.FromUint64(1)

// PublicKey is an RSA public key. It is immutable once built.
type PublicKey struct {
	n bigint.Nat
	e bigint.Nat
}

// PrivateKey is an RSA private key, with its CRT values when they are known. It is immutable once built.
type PrivateKey struct {
	public PublicKey
	d      bigint.Nat
	crt    *bigint.CRTParams
}

// PrivateKeyValues are the integers of an RSAPrivateKey.
// P, Q, Dp, Dq and Qinv may be nil or zero when the CRT values are not known.
type PrivateKeyValues struct {
	N, E, D      *big.Int
	P, Q         *big.Int
	Dp, Dq, Qinv *big.Int
}

func natOrZero(x *big.Int) (bigint.Nat, error) {
	if x == nil {
		return bigint.Nat{}, nil
	}
	if x.Sign() < 0 {
		return bigint.Nat{}, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("negative integer"))
	}
	return bigint.FromBig(x), nil
}

// NewPublicKey checks that n and e form a usable RSA public key.
func NewPublicKey(n, e *big.Int) (*PublicKey, error) {
	nNat, err := natOrZero(n)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	eNat, err := natOrZero(e)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	key := &PublicKey{n: nNat, e: eNat}
	err = key.validate()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return key, nil
}

func (k *PublicKey) validate() error {
	if k.n.IsZero() {
		return tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("missing modulus"))
	}
	if k.n.BitLen() < MinModulusBits {
		return tracerr.Wrap(ErrorKeyTooSmall.AddDetails(fmt.Sprintf("modulus is %d bits long", k.n.BitLen())))
	}
	if !k.n.IsOdd() {
		return tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("modulus is even"))
	}
	if k.e.Cmp(one) <= 0 || !k.e.IsOdd() {
		return tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("public exponent must be odd and greater than 1"))
	}
	if k.e.Cmp(k.n) >= 0 {
		return tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("public exponent must be smaller than the modulus"))
	}
	return nil
}

// NewPrivateKey checks the consistency of v and builds the matching key.
// When the primes are given, missing Dp, Dq and Qinv are computed from them, and given ones must match.
func NewPrivateKey(v PrivateKeyValues) (*PrivateKey, error) {
	public, err := NewPublicKey(v.N, v.E)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	var ints [6]bigint.Nat
	for i, x := range []*big.Int{v.D, v.P, v.Q, v.Dp, v.Dq, v.Qinv} {
		ints[i], err = natOrZero(x)
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
	}
	d := ints[0]
	if d.IsZero() || d.Cmp(public.n) >= 0 {
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("private exponent out of range"))
	}
	key := &PrivateKey{public: *public, d: d}

	key.crt, err = crtParams(key, ints[1], ints[2], ints[3], ints[4], ints[5])
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	if key.crt == nil {
		// without the primes, check that d inverts e on a fixed element
		two := bigint.FromUint64(2)
		if !two.ExpVarTime(public.e, public.n).Exp(d, public.n).Equal(two) {
			return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("private exponent does not match public exponent"))
		}
	}
	return key, nil
}

func crtParams(key *PrivateKey, p, q, dp, dq, qinv bigint.Nat) (*bigint.CRTParams, error) {
	if p.IsZero() && q.IsZero() {
		if !dp.IsZero() || !dq.IsZero() || !qinv.IsZero() {
			return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("CRT exponents given without primes"))
		}
		return nil, nil
	}
	var err error
	// a key that stops after one prime still determines the other one
	if q.IsZero() {
		q, err = cofactor(key.public.n, p)
	} else if p.IsZero() {
		p, err = cofactor(key.public.n, q)
	}
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	if p.Cmp(one) <= 0 || q.Cmp(one) <= 0 {
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("invalid prime"))
	}
	if !p.Mul(q).Equal(key.public.n) {
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("primes do not match modulus"))
	}
	pMinus1 := p.Sub(one)
	qMinus1 := q.Sub(one)
	expected := bigint.CRTParams{
		P:  p,
		Q:  q,
		Dp: key.d.Mod(pMinus1),
		Dq: key.d.Mod(qMinus1),
	}
	var ok bool
	expected.Qinv, ok = q.ModInverse(p)
	if !ok {
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("primes are not coprime"))
	}

	if !dp.IsZero() && !dp.Equal(expected.Dp) {
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("exponent1 is not d mod (p-1)"))
	}
	if !dq.IsZero() && !dq.Equal(expected.Dq) {
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("exponent2 is not d mod (q-1)"))
	}
	if !qinv.IsZero() && !qinv.Equal(expected.Qinv) {
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("coefficient is not q^-1 mod p"))
	}
	if !key.public.e.Mul(expected.Dp).Mod(pMinus1).Equal(one) || !key.public.e.Mul(expected.Dq).Mod(qMinus1).Equal(one) {
		return nil, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("private exponent does not match public exponent"))
	}
	return &expected, nil
}

func cofactor(n, prime bigint.Nat) (bigint.Nat, error) {
	if prime.Cmp(one) <= 0 {
		return bigint.Nat{}, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("invalid prime"))
	}
	quotient, remainder := n.DivMod(prime)
	if !remainder.IsZero() {
		return bigint.Nat{}, tracerr.Wrap(ErrorInvalidKeyFormat.AddDetails("prime does not divide modulus"))
	}
	return quotient, nil
}

// N is the modulus.
func (k *PublicKey) N() bigint.Nat {
	return k.n
}

// E is the public exponent.
func (k *PublicKey) E() bigint.Nat {
	return k.e
}

// Size is the length in bytes of the modulus, which is also the length of ciphertexts and signatures.
func (k *PublicKey) Size() int {
	return k.n.ByteLen()
}

func (k *PublicKey) BitLen() int {
	return k.n.BitLen()
}

func (k *PublicKey) Equal(other *PublicKey) bool {
	if other == nil {
		return false
	}
	return k.n.Equal(other.n) && k.e.Equal(other.e)
}

func (k *PublicKey) GetHash() string {
	rawKey := k.Encode()
	h := sha256.Sum256(rawKey)
	return base64.StdEncoding.EncodeToString(h[:])
}

func (k *PrivateKey) Public() *PublicKey {
	public := k.public
	return &public
}

// D is the private exponent.
func (k *PrivateKey) D() bigint.Nat {
	return k.d
}

// CRT returns the CRT values of the key, if it has them.
func (k *PrivateKey) CRT() (bigint.CRTParams, bool) {
	if k.crt == nil {
		return bigint.CRTParams{}, false
	}
	return *k.crt, true
}

func (k *PrivateKey) HasCRT() bool {
	return k.crt != nil
}

func (k *PrivateKey) Size() int {
	return k.public.Size()
}

func (k *PrivateKey) BitLen() int {
	return k.public.BitLen()
}

// Values returns copies of the integers of the key. CRT values are nil when the key has none.
func (k *PrivateKey) Values() PrivateKeyValues {
	v := PrivateKeyValues{N: k.public.n.Big(), E: k.public.e.Big(), D: k.d.Big()}
	if k.crt != nil {
		v.P = k.crt.P.Big()
		v.Q = k.crt.Q.Big()
		v.Dp = k.crt.Dp.Big()
		v.Dq = k.crt.Dq.Big()
		v.Qinv = k.crt.Qinv.Big()
	}
	return v
}

func (k *PrivateKey) Equal(other *PrivateKey) bool {
	if other == nil || !k.public.Equal(&other.public) || !k.d.Equal(other.d) {
		return false
	}
	if k.crt == nil || other.crt == nil {
		return k.crt == nil && other.crt == nil
	}
	return k.crt.P.Equal(other.crt.P) && k.crt.Q.Equal(other.crt.Q)
}

func (k *PrivateKey) MarshalJSON() ([]byte, error) {
	str := k.ToB64()
	return json.Marshal(str)
}

func (k *PrivateKey) UnmarshalJSON(b []byte) error {
	var data string
	err := json.Unmarshal(b, &data)
	if err != nil {
		return tracerr.Wrap(err)
	}
	privateKey, err := PrivateKeyFromB64(data)
	if err != nil {
		return tracerr.Wrap(err)
	}
	*k = *privateKey
	return nil
}

func (k *PrivateKey) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return marshalLatin1BSONValue(k.Encode())
}

func (k *PrivateKey) UnmarshalBSONValue(t bsontype.Type, bu []byte) error {
	b, err := unmarshalLatin1BSONValue(t, bu)
	if err != nil {
		return tracerr.Wrap(err)
	}
	privateKey, err := ParsePrivateKeyDER(b)
	if err != nil {
		return tracerr.Wrap(err)
	}
	*k = *privateKey
	return nil
}

func (k *PublicKey) MarshalJSON() ([]byte, error) {
	b64 := k.ToB64()
	return json.Marshal(b64)
}

func (k *PublicKey) UnmarshalJSON(b []byte) error {
	var data string
	err := json.Unmarshal(b, &data)
	if err != nil {
		return tracerr.Wrap(err)
	}
	key, err := PublicKeyFromB64(data)
	if err != nil {
		return tracerr.Wrap(err)
	}
	*k = *key
	return nil
}

func (k *PublicKey) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return marshalLatin1BSONValue(k.Encode())
}

func (k *PublicKey) UnmarshalBSONValue(t bsontype.Type, bu []byte) error {
	b, err := unmarshalLatin1BSONValue(t, bu)
	if err != nil {
		return tracerr.Wrap(err)
	}
	key, err := ParsePublicKeyDER(b)
	if err != nil {
		return tracerr.Wrap(err)
	}
	*k = *key
	return nil
}

// Keys are stored in BSON as a string whose runes are the DER bytes read as ISO-8859-1.
func marshalLatin1BSONValue(b []byte) (bsontype.Type, []byte, error) {
	bu, e := charmap.ISO8859_1.NewDecoder().Bytes(b)

	if e != nil { // cannot cover
		return bsontype.String, nil, tracerr.Wrap(e)
	}

	t, bm, e := bson.MarshalValue(string(bu))
	return t, bm, e
}

func unmarshalLatin1BSONValue(t bsontype.Type, bu []byte) ([]byte, error) {
	if t != bsontype.String {
		return nil, tracerr.Wrap(ErrorUnmarshalBSONValueInvalidType)
	}
	str, _, ok := bsoncore.ReadString(bu)
	if !ok {
		return nil, tracerr.Wrap(ErrorUnmarshalBSONValueTooShort)
	}
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(str))

	if err != nil { // cannot cover
		return nil, tracerr.Wrap(err)
	}
	return b, nil
}
