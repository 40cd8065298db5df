package der

import (
	"encoding/asn1"
	"fmt"
	"github.com/ztrue/tracerr"
	"math/big"
)

var (
	OIDRSAEncryption = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}
	OIDSHA1          = asn1.ObjectIdentifier{1, 3, 14, 3, 2, 26}
	OIDSHA224        = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 4}
	OIDSHA256        = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1}
	OIDSHA384        = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 2}
	OIDSHA512        = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 3}
)

func Sequence(children ...*Node) *Node {
	return &Node{Class: ClassUniversal, Tag: TagSequence, Constructed: true, Children: children}
}

// Integer encodes a non-negative integer with the minimal two's-complement content: a leading zero
// byte is added when the most significant bit of the magnitude is set.
func Integer(x *big.Int) *Node {
	if x.Sign() < 0 {
		panic("der: negative integers are not supported")
	}
	content := x.Bytes()
	if len(content) == 0 || content[0]&0x80 != 0 {
		content = append([]byte{0x00}, content...)
	}
	return &Node{Class: ClassUniversal, Tag: TagInteger, Content: content}
}

func SmallInteger(x int64) *Node {
	return Integer(big.NewInt(x))
}

func OctetString(b []byte) *Node {
	return &Node{Class: ClassUniversal, Tag: TagOctetString, Content: cloneBytes(b)}
}

// BitString wraps b in a BIT STRING with no unused bits.
func BitString(b []byte) *Node {
	return &Node{Class: ClassUniversal, Tag: TagBitString, Content: append([]byte{0x00}, b...)}
}

func Null() *Node {
	return &Node{Class: ClassUniversal, Tag: TagNull}
}

func ObjectIdentifier(oid asn1.ObjectIdentifier) *Node {
	if len(oid) < 2 || oid[0] > 2 || (oid[0] < 2 && oid[1] >= 40) {
		panic(fmt.Sprintf("der: invalid object identifier %s", oid))
	}
	content := appendBase128(nil, oid[0]*40+oid[1])
	for _, arc := range oid[2:] {
		content = appendBase128(content, arc)
	}
	return &Node{Class: ClassUniversal, Tag: TagObjectIdentifier, Content: content}
}

func appendBase128(dst []byte, v int) []byte {
	if v < 0 {
		panic("der: negative object identifier arc")
	}
	var tmp [10]byte
	i := len(tmp) - 1
	tmp[i] = byte(v & 0x7f)
	for v >>= 7; v > 0; v >>= 7 {
		i--
		tmp[i] = byte(v&0x7f) | 0x80
	}
	return append(dst, tmp[i:]...)
}

// Uint returns the value of an INTEGER node as an unsigned magnitude. Negative values and
// non-minimal encodings are rejected; at most one leading zero byte is accepted.
func (n *Node) Uint() (*big.Int, error) {
	if !n.Is(TagInteger, false) {
		return nil, tracerr.Wrap(ErrorMalformedDER.AddDetails("expected INTEGER"))
	}
	c := n.Content
	if len(c) == 0 {
		return nil, tracerr.Wrap(ErrorMalformedDER.AddDetails("empty INTEGER"))
	}
	if c[0]&0x80 != 0 {
		return nil, tracerr.Wrap(ErrorMalformedDER.AddDetails("negative INTEGER"))
	}
	if len(c) > 1 && c[0] == 0x00 && c[1]&0x80 == 0 {
		return nil, tracerr.Wrap(ErrorMalformedDER.AddDetails("non-minimal INTEGER"))
	}
	return new(big.Int).SetBytes(c), nil
}

// BitStringBytes returns the payload of a BIT STRING node, which must have no unused bits.
func (n *Node) BitStringBytes() ([]byte, error) {
	if !n.Is(TagBitString, false) {
		return nil, tracerr.Wrap(ErrorMalformedDER.AddDetails("expected BIT STRING"))
	}
	if len(n.Content) == 0 || n.Content[0] != 0 {
		return nil, tracerr.Wrap(ErrorMalformedDER.AddDetails("BIT STRING with unused bits"))
	}
	return cloneBytes(n.Content[1:]), nil
}

func (n *Node) OctetStringBytes() ([]byte, error) {
	if !n.Is(TagOctetString, false) {
		return nil, tracerr.Wrap(ErrorMalformedDER.AddDetails("expected OCTET STRING"))
	}
	return cloneBytes(n.Content), nil
}

func (n *Node) IsNull() bool {
	return n.Is(TagNull, false) && len(n.Content) == 0
}

func (n *Node) OID() (asn1.ObjectIdentifier, error) {
	if !n.Is(TagObjectIdentifier, false) {
		return nil, tracerr.Wrap(ErrorMalformedDER.AddDetails("expected OBJECT IDENTIFIER"))
	}
	var arcs []int
	v := 0
	for i, b := range n.Content {
		if v == 0 && b == 0x80 {
			return nil, tracerr.Wrap(ErrorMalformedDER.AddDetails("non-minimal OBJECT IDENTIFIER arc"))
		}
		if v > (1<<31)>>7 {
			return nil, tracerr.Wrap(ErrorMalformedDER.AddDetails("OBJECT IDENTIFIER arc too large"))
		}
		v = v<<7 | int(b&0x7f)
		if b&0x80 != 0 {
			if i == len(n.Content)-1 {
				return nil, tracerr.Wrap(ErrorMalformedDER.AddDetails("truncated OBJECT IDENTIFIER"))
			}
			continue
		}
		if arcs == nil {
			switch {
			case v < 40:
				arcs = append(arcs, 0, v)
			case v < 80:
				arcs = append(arcs, 1, v-40)
			default:
				arcs = append(arcs, 2, v-80)
			}
		} else {
			arcs = append(arcs, v)
		}
		v = 0
	}
	if arcs == nil {
		return nil, tracerr.Wrap(ErrorMalformedDER.AddDetails("empty OBJECT IDENTIFIER"))
	}
	return asn1.ObjectIdentifier(arcs), nil
}
