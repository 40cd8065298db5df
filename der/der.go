// Package der decodes and encodes the subset of ASN.1 DER needed for RSA key containers.
//
// Values are represented as a tree of Node. TLV scanning relies on cryptobyte, which enforces
// definite, minimal length encodings.
package der

import (
	"fmt"
	"github.com/rsakit/go-rsakit/utils"
	"github.com/ztrue/tracerr"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

var (
	// ErrorMalformedDER is returned when the input is not a well-formed DER encoding, or does not hold the expected type
	ErrorMalformedDER = utils.NewKitError("DER_MALFORMED", "malformed DER")
	// ErrorInvalidNode is returned when trying to encode a Node which cannot be represented in DER
	ErrorInvalidNode = utils.NewKitError("DER_INVALID_NODE", "node cannot be encoded")
)

// Class is the ASN.1 tag class.
type Class uint8

const (
	ClassUniversal       Class = 0
	ClassApplication     Class = 1
	ClassContextSpecific Class = 2
	ClassPrivate         Class = 3
)

// Universal tag numbers.
const (
	TagInteger          uint8 = 0x02
	TagBitString        uint8 = 0x03
	TagOctetString      uint8 = 0x04
	TagNull             uint8 = 0x05
	TagObjectIdentifier uint8 = 0x06
	TagSequence         uint8 = 0x10
	TagSet              uint8 = 0x11
)

const (
	maxTagNumber = 30
	maxDepth     = 32
)

// Node is one decoded TLV. Primitive nodes carry Content, constructed nodes carry Children.
type Node struct {
	Class       Class
	Tag         uint8
	Constructed bool
	Content     []byte
	Children    []*Node
}

func (n *Node) identifier() cbasn1.Tag {
	id := cbasn1.Tag(n.Class<<6) | cbasn1.Tag(n.Tag)
	if n.Constructed {
		id = id.Constructed()
	}
	return id
}

// Is reports whether n is a universal node with the given tag number and form.
func (n *Node) Is(tag uint8, constructed bool) bool {
	return n != nil && n.Class == ClassUniversal && n.Tag == tag && n.Constructed == constructed
}

func (n *Node) IsSequence() bool {
	return n.Is(TagSequence, true)
}

func (n *Node) String() string {
	if n.Constructed {
		return fmt.Sprintf("[class %d tag %d constructed, %d children]", n.Class, n.Tag, len(n.Children))
	}
	return fmt.Sprintf("[class %d tag %d, %d bytes]", n.Class, n.Tag, len(n.Content))
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}

// Decode parses b, which must hold exactly one DER value.
func Decode(b []byte) (*Node, error) {
	node, rest, err := DecodePrefix(b)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	if len(rest) != 0 {
		return nil, tracerr.Wrap(ErrorMalformedDER.AddDetails(fmt.Sprintf("%d trailing bytes", len(rest))))
	}
	return node, nil
}

// DecodePrefix parses the first DER value of b and returns the remaining bytes.
// The returned Node does not alias b.
func DecodePrefix(b []byte) (*Node, []byte, error) {
	node, rest, err := decodeNode(cryptobyte.String(b), 0)
	if err != nil {
		return nil, nil, tracerr.Wrap(err)
	}
	return node, rest, nil
}

func decodeNode(input cryptobyte.String, depth int) (*Node, cryptobyte.String, error) {
	if depth > maxDepth {
		return nil, nil, tracerr.Wrap(ErrorMalformedDER.AddDetails("nesting too deep"))
	}
	if len(input) == 0 {
		return nil, nil, tracerr.Wrap(ErrorMalformedDER.AddDetails("truncated tag"))
	}
	if input[0]&0x1f == 0x1f {
		return nil, nil, tracerr.Wrap(ErrorMalformedDER.AddDetails("high tag number form is not supported"))
	}

	var content cryptobyte.String
	var id cbasn1.Tag
	if !input.ReadAnyASN1(&content, &id) {
		return nil, nil, tracerr.Wrap(ErrorMalformedDER.AddDetails("invalid length or truncated value"))
	}

	node := &Node{
		Class:       Class(id >> 6),
		Tag:         uint8(id & 0x1f),
		Constructed: id&0x20 != 0,
	}
	if !node.hasValidForm() {
		return nil, nil, tracerr.Wrap(ErrorMalformedDER.AddDetails(fmt.Sprintf("universal tag %d with wrong form", node.Tag)))
	}
	if !node.Constructed {
		node.Content = cloneBytes(content)
		return node, input, nil
	}
	for !content.Empty() {
		child, rest, err := decodeNode(content, depth+1)
		if err != nil {
			return nil, nil, tracerr.Wrap(err)
		}
		node.Children = append(node.Children, child)
		content = rest
	}
	return node, input, nil
}

// Encode serializes n and its children.
func Encode(n *Node) ([]byte, error) {
	if err := checkNode(n, 0); err != nil {
		return nil, tracerr.Wrap(err)
	}
	b := cryptobyte.NewBuilder(nil)
	addNode(b, n)
	out, err := b.Bytes()
	if err != nil { // cannot cover, nodes are checked beforehand
		return nil, tracerr.Wrap(ErrorInvalidNode.AddDetails(err.Error()))
	}
	return out, nil
}

func checkNode(n *Node, depth int) error {
	if n == nil {
		return tracerr.Wrap(ErrorInvalidNode.AddDetails("nil node"))
	}
	if depth > maxDepth {
		return tracerr.Wrap(ErrorInvalidNode.AddDetails("nesting too deep"))
	}
	if n.Tag > maxTagNumber || n.Class > ClassPrivate {
		return tracerr.Wrap(ErrorInvalidNode.AddDetails(fmt.Sprintf("unsupported identifier: class %d tag %d", n.Class, n.Tag)))
	}
	if !n.hasValidForm() {
		return tracerr.Wrap(ErrorInvalidNode.AddDetails(fmt.Sprintf("universal tag %d with wrong form", n.Tag)))
	}
	if n.Constructed && len(n.Content) != 0 {
		return tracerr.Wrap(ErrorInvalidNode.AddDetails("constructed node with primitive content"))
	}
	if !n.Constructed && len(n.Children) != 0 {
		return tracerr.Wrap(ErrorInvalidNode.AddDetails("primitive node with children"))
	}
	for _, child := range n.Children {
		if err := checkNode(child, depth+1); err != nil {
			return tracerr.Wrap(err)
		}
	}
	return nil
}

// hasValidForm reports whether a universal node of a known type uses the only form DER allows for it.
func (n *Node) hasValidForm() bool {
	if n.Class != ClassUniversal {
		return true
	}
	switch n.Tag {
	case TagInteger, TagBitString, TagOctetString, TagNull, TagObjectIdentifier:
		return !n.Constructed
	case TagSequence, TagSet:
		return n.Constructed
	}
	return true
}

func addNode(b *cryptobyte.Builder, n *Node) {
	b.AddASN1(n.identifier(), func(child *cryptobyte.Builder) {
		if n.Constructed {
			for _, c := range n.Children {
				addNode(child, c)
			}
		} else {
			child.AddBytes(n.Content)
		}
	})
}
