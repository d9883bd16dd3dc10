package secp256k1

import (
	"fmt"
	"math/big"
)

// SerializeDER encodes sig as an ASN.1 DER SEQUENCE of two INTEGERs (r, s):
//
//	0x30 <total-len> 0x02 <r-len> <r-bytes> 0x02 <s-len> <s-bytes>
//
// Each integer is encoded with the minimal number of bytes, with a leading
// 0x00 inserted whenever the most significant bit of the value would
// otherwise be set (so the two's-complement-style encoding can't be mistaken
// for a negative number).
func (sig *Signature) SerializeDER() []byte {
	rBytes := derTrim(sig.R.Big())
	sBytes := derTrim(sig.S.Big())

	body := make([]byte, 0, len(rBytes)+len(sBytes)+8)
	body = append(body, derInt(rBytes)...)
	body = append(body, derInt(sBytes)...)

	out := make([]byte, 0, len(body)+2)
	out = append(out, 0x30)
	out = append(out, derLen(len(body))...)
	out = append(out, body...)
	return out
}

// derTrim returns the minimal big-endian byte encoding of x (at least one
// byte, even for x == 0).
func derTrim(x *big.Int) []byte {
	b := x.Bytes()
	if len(b) == 0 {
		return []byte{0x00}
	}
	return b
}

func derInt(v []byte) []byte {
	if v[0]&0x80 != 0 {
		v = append([]byte{0x00}, v...)
	}
	out := []byte{0x02}
	out = append(out, derLen(len(v))...)
	out = append(out, v...)
	return out
}

func derLen(n int) []byte {
	if n < 0x80 {
		return []byte{byte(n)}
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte(n & 0xff)}, b...)
		n >>= 8
	}
	return append([]byte{byte(0x80 | len(b))}, b...)
}

// ParseDERSignature parses a strict minimal-encoding DER signature (the form
// SerializeDER produces), rejecting non-minimal lengths, non-minimal
// integers, wrong tags, and trailing garbage.
func ParseDERSignature(der []byte) (*Signature, error) {
	p := &derParser{buf: der}

	if err := p.expectTag(0x30); err != nil {
		return nil, err
	}
	seqLen, err := p.readLen()
	if err != nil {
		return nil, err
	}
	if seqLen != len(p.buf)-p.pos {
		return nil, fmt.Errorf("%w: sequence length mismatch", ErrInvalidDER)
	}

	rBytes, err := p.readInt()
	if err != nil {
		return nil, err
	}
	sBytes, err := p.readInt()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.buf) {
		return nil, fmt.Errorf("%w: trailing bytes", ErrInvalidDER)
	}

	r := new(big.Int).SetBytes(rBytes)
	s := new(big.Int).SetBytes(sBytes)
	if r.Sign() == 0 || r.Cmp(curveOrder) >= 0 {
		return nil, fmt.Errorf("%w: r out of range", ErrInvalidDER)
	}
	if s.Sign() == 0 || s.Cmp(curveOrder) >= 0 {
		return nil, fmt.Errorf("%w: s out of range", ErrInvalidDER)
	}

	return &Signature{R: FnFromBig(r), S: FnFromBig(s)}, nil
}

type derParser struct {
	buf []byte
	pos int
}

func (p *derParser) expectTag(tag byte) error {
	if p.pos >= len(p.buf) {
		return fmt.Errorf("%w: truncated", ErrInvalidDER)
	}
	if p.buf[p.pos] != tag {
		return fmt.Errorf("%w: unexpected tag 0x%02x", ErrInvalidDER, p.buf[p.pos])
	}
	p.pos++
	return nil
}

func (p *derParser) readLen() (int, error) {
	if p.pos >= len(p.buf) {
		return 0, fmt.Errorf("%w: truncated length", ErrInvalidDER)
	}
	first := p.buf[p.pos]
	p.pos++
	if first&0x80 == 0 {
		return int(first), nil
	}
	n := int(first &^ 0x80)
	if n == 0 || n > 4 {
		return 0, fmt.Errorf("%w: unsupported length encoding", ErrInvalidDER)
	}
	if p.pos+n > len(p.buf) {
		return 0, fmt.Errorf("%w: truncated length bytes", ErrInvalidDER)
	}
	if p.buf[p.pos] == 0 {
		return 0, fmt.Errorf("%w: non-minimal length encoding", ErrInvalidDER)
	}
	v := 0
	for i := 0; i < n; i++ {
		v = v<<8 | int(p.buf[p.pos])
		p.pos++
	}
	if v < 0x80 {
		return 0, fmt.Errorf("%w: non-minimal length encoding", ErrInvalidDER)
	}
	return v, nil
}

func (p *derParser) readInt() ([]byte, error) {
	if err := p.expectTag(0x02); err != nil {
		return nil, err
	}
	n, err := p.readLen()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: zero-length integer", ErrInvalidDER)
	}
	if p.pos+n > len(p.buf) {
		return nil, fmt.Errorf("%w: truncated integer", ErrInvalidDER)
	}
	v := p.buf[p.pos : p.pos+n]
	p.pos += n

	if len(v) > 1 && v[0] == 0x00 && v[1]&0x80 == 0 {
		return nil, fmt.Errorf("%w: non-minimal integer encoding", ErrInvalidDER)
	}
	if v[0]&0x80 != 0 {
		return nil, fmt.Errorf("%w: negative integer", ErrInvalidDER)
	}
	return v, nil
}
