package der

import (
	"bytes"
	"encoding/asn1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/big"
	"testing"
)

func mustEncode(t *testing.T, n *Node) []byte {
	b, err := Encode(n)
	require.NoError(t, err)
	return b
}

func TestDER(t *testing.T) {
	t.Parallel()
	t.Run("Round trip", func(t *testing.T) {
		long := bytes.Repeat([]byte{0xab}, 300)
		huge := bytes.Repeat([]byte{0xcd}, 70000)
		trees := []*Node{
			Null(),
			SmallInteger(0),
			SmallInteger(127),
			SmallInteger(128),
			Integer(new(big.Int).SetBytes(bytes.Repeat([]byte{0xff}, 256))),
			OctetString(nil),
			OctetString(long),
			BitString(huge),
			ObjectIdentifier(OIDRSAEncryption),
			Sequence(),
			Sequence(
				Sequence(ObjectIdentifier(OIDSHA256), Null()),
				OctetString([]byte{1, 2, 3}),
			),
			Sequence(SmallInteger(0), Sequence(Sequence(Sequence(OctetString(long)))), BitString(nil)),
			{Class: ClassContextSpecific, Tag: 0, Constructed: true, Children: []*Node{SmallInteger(2)}},
			{Class: ClassApplication, Tag: 30, Content: []byte{9}},
			{Class: ClassPrivate, Tag: TagSet, Constructed: true},
		}
		for _, tree := range trees {
			encoded := mustEncode(t, tree)
			decoded, err := Decode(encoded)
			require.NoError(t, err, tree.String())
			assert.Equal(t, tree, decoded)
			assert.Equal(t, encoded, mustEncode(t, decoded))
		}
	})

	t.Run("Multi-byte lengths", func(t *testing.T) {
		encoded := mustEncode(t, OctetString(bytes.Repeat([]byte{0}, 300)))
		assert.Equal(t, []byte{0x04, 0x82, 0x01, 0x2c}, encoded[:4])
		assert.Len(t, encoded, 304)

		encoded = mustEncode(t, OctetString(bytes.Repeat([]byte{0}, 200)))
		assert.Equal(t, []byte{0x04, 0x81, 0xc8}, encoded[:3])

		encoded = mustEncode(t, OctetString(bytes.Repeat([]byte{0}, 127)))
		assert.Equal(t, []byte{0x04, 0x7f}, encoded[:2])
	})

	t.Run("Matches encoding/asn1", func(t *testing.T) {
		n, ok := new(big.Int).SetString("c7a3f1d5e9b1aa00ff00ff00ff00ff00ff00ff00ff00ff0102030405060708090a", 16)
		require.True(t, ok)
		type rsaPublicKey struct {
			N *big.Int
			E int
		}
		reference, err := asn1.Marshal(rsaPublicKey{N: n, E: 65537})
		require.NoError(t, err)
		assert.Equal(t, reference, mustEncode(t, Sequence(Integer(n), SmallInteger(65537))))

		for _, oid := range []asn1.ObjectIdentifier{OIDRSAEncryption, OIDSHA1, OIDSHA224, OIDSHA256, OIDSHA384, OIDSHA512, {2, 999, 3}} {
			reference, err := asn1.Marshal(oid)
			require.NoError(t, err)
			assert.Equal(t, reference, mustEncode(t, ObjectIdentifier(oid)))
		}

		reference, err = asn1.Marshal(asn1.NullRawValue)
		require.NoError(t, err)
		assert.Equal(t, reference, mustEncode(t, Null()))
	})

	t.Run("Decode errors", func(t *testing.T) {
		cases := map[string][]byte{
			"empty":                    {},
			"truncated length":         {0x30},
			"length overrun":           {0x04, 0x05, 0x01, 0x02},
			"truncated long length":    {0x04, 0x82, 0x01},
			"indefinite length":        {0x30, 0x80, 0x00, 0x00},
			"non-minimal length":       {0x04, 0x81, 0x01, 0x00},
			"high tag number":          {0x1f, 0x81, 0x00, 0x00},
			"trailing bytes":           {0x05, 0x00, 0x00},
			"child overruns parent":    {0x30, 0x03, 0x04, 0x05, 0x00},
			"garbage inside sequence":  {0x30, 0x02, 0x04},
			"constructed octet string": {0x24, 0x00},
			"constructed bit string":   {0x23, 0x02, 0x03, 0x00},
			"constructed integer":      {0x22, 0x03, 0x02, 0x01, 0x01},
			"constructed null":         {0x25, 0x00},
			"primitive sequence":       {0x10, 0x00},
			"primitive set":            {0x11, 0x02, 0x05, 0x00},
			"nested wrong form":        {0x30, 0x02, 0x24, 0x00},
		}
		for name, input := range cases {
			_, err := Decode(input)
			assert.ErrorIs(t, err, ErrorMalformedDER, name)
		}

		deep := []byte{0x05, 0x00}
		for i := 0; i < maxDepth+2; i++ {
			deep = append([]byte{0x30, byte(len(deep))}, deep...)
		}
		_, err := Decode(deep)
		assert.ErrorIs(t, err, ErrorMalformedDER)
	})

	t.Run("DecodePrefix", func(t *testing.T) {
		node, rest, err := DecodePrefix([]byte{0x05, 0x00, 0xaa, 0xbb})
		require.NoError(t, err)
		assert.True(t, node.IsNull())
		assert.Equal(t, []byte{0xaa, 0xbb}, rest)
	})

	t.Run("Decode does not alias input", func(t *testing.T) {
		input := mustEncode(t, OctetString([]byte{1, 2, 3}))
		node, err := Decode(input)
		require.NoError(t, err)
		input[2] = 0xff
		assert.Equal(t, []byte{1, 2, 3}, node.Content)
	})

	t.Run("Encode errors", func(t *testing.T) {
		invalid := []*Node{
			nil,
			{Tag: 31},
			{Class: 4, Tag: 1},
			{Tag: TagSequence, Constructed: true, Content: []byte{1}},
			{Tag: TagOctetString, Children: []*Node{Null()}},
			{Tag: TagOctetString, Constructed: true},
			{Tag: TagSequence},
			Sequence(&Node{Tag: TagNull, Constructed: true}),
			Sequence(Null(), nil),
		}
		for _, n := range invalid {
			_, err := Encode(n)
			assert.ErrorIs(t, err, ErrorInvalidNode)
		}
	})
}

func TestValues(t *testing.T) {
	t.Parallel()
	t.Run("Integer", func(t *testing.T) {
		assert.Equal(t, []byte{0x02, 0x01, 0x00}, mustEncode(t, SmallInteger(0)))
		assert.Equal(t, []byte{0x02, 0x01, 0x7f}, mustEncode(t, SmallInteger(127)))
		assert.Equal(t, []byte{0x02, 0x02, 0x00, 0x80}, mustEncode(t, SmallInteger(128)))
		assert.Equal(t, []byte{0x02, 0x03, 0x01, 0x00, 0x01}, mustEncode(t, SmallInteger(65537)))
		assert.Panics(t, func() { SmallInteger(-1) })

		for _, v := range []int64{0, 1, 127, 128, 255, 256, 65537} {
			x, err := SmallInteger(v).Uint()
			require.NoError(t, err)
			assert.Equal(t, v, x.Int64())
		}

		invalid := map[string]*Node{
			"negative":    {Tag: TagInteger, Content: []byte{0x80}},
			"non-minimal": {Tag: TagInteger, Content: []byte{0x00, 0x7f}},
			"two zeros":   {Tag: TagInteger, Content: []byte{0x00, 0x00, 0x80}},
			"empty":       {Tag: TagInteger},
			"not integer": OctetString([]byte{1}),
		}
		for name, n := range invalid {
			_, err := n.Uint()
			assert.ErrorIs(t, err, ErrorMalformedDER, name)
		}
	})

	t.Run("BitString", func(t *testing.T) {
		b, err := BitString([]byte{1, 2}).BitStringBytes()
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2}, b)

		_, err = (&Node{Tag: TagBitString, Content: []byte{0x01, 0xfe}}).BitStringBytes()
		assert.ErrorIs(t, err, ErrorMalformedDER)
		_, err = (&Node{Tag: TagBitString}).BitStringBytes()
		assert.ErrorIs(t, err, ErrorMalformedDER)
		_, err = Null().BitStringBytes()
		assert.ErrorIs(t, err, ErrorMalformedDER)
	})

	t.Run("OctetString", func(t *testing.T) {
		b, err := OctetString([]byte{7}).OctetStringBytes()
		require.NoError(t, err)
		assert.Equal(t, []byte{7}, b)
		_, err = Null().OctetStringBytes()
		assert.ErrorIs(t, err, ErrorMalformedDER)
	})

	t.Run("ObjectIdentifier", func(t *testing.T) {
		for _, oid := range []asn1.ObjectIdentifier{OIDRSAEncryption, OIDSHA512, {0, 39}, {1, 0, 5}, {2, 100, 3}} {
			decoded, err := ObjectIdentifier(oid).OID()
			require.NoError(t, err)
			assert.True(t, oid.Equal(decoded), oid.String())
		}
		assert.Panics(t, func() { ObjectIdentifier(asn1.ObjectIdentifier{1}) })
		assert.Panics(t, func() { ObjectIdentifier(asn1.ObjectIdentifier{1, 40}) })

		invalid := []*Node{
			{Tag: TagObjectIdentifier},
			{Tag: TagObjectIdentifier, Content: []byte{0x2a, 0x86}},
			{Tag: TagObjectIdentifier, Content: []byte{0x2a, 0x80, 0x01}},
			Null(),
		}
		for _, n := range invalid {
			_, err := n.OID()
			assert.ErrorIs(t, err, ErrorMalformedDER)
		}
	})

	t.Run("Predicates", func(t *testing.T) {
		assert.True(t, Sequence().IsSequence())
		assert.False(t, OctetString(nil).IsSequence())
		assert.True(t, Null().IsNull())
		assert.False(t, (&Node{Tag: TagNull, Content: []byte{0}}).IsNull())
		var nilNode *Node
		assert.False(t, nilNode.IsSequence())
	})
}
