package analysis

import (
	"fmt"
	"math/big"
	mbits "math/bits"
	"strconv"
)

// Product is the exact product of two 64-bit readings. Readings of a report
// up to 64 bits wide always fit, so the figures never overflow.
type Product struct {
	Hi uint64 `msgpack:"hi"`
	Lo uint64 `msgpack:"lo"`
}

// Multiply returns a × b without wrapping.
func Multiply(a, b uint64) Product {
	hi, lo := mbits.Mul64(a, b)
	return Product{Hi: hi, Lo: lo}
}

// Uint64 returns the product and whether it fits in 64 bits.
func (p Product) Uint64() (uint64, bool) {
	return p.Lo, p.Hi == 0
}

// Big returns the product as a new big.Int.
func (p Product) Big() *big.Int {
	n := new(big.Int).SetUint64(p.Hi)
	n.Lsh(n, 64)
	return n.Or(n, new(big.Int).SetUint64(p.Lo))
}

func (p Product) String() string {
	if p.Hi == 0 {
		return strconv.FormatUint(p.Lo, 10)
	}
	return p.Big().String()
}

// MarshalJSON writes the product as a plain JSON number.
func (p Product) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON accepts a non-negative JSON integer below 2^128.
func (p *Product) UnmarshalJSON(data []byte) error {
	n, ok := new(big.Int).SetString(string(data), 10)
	if !ok || n.Sign() < 0 || n.BitLen() > 128 {
		return fmt.Errorf("analysis: invalid product %s", data)
	}
	lo := new(big.Int).And(n, new(big.Int).SetUint64(^uint64(0)))
	p.Hi = new(big.Int).Rsh(n, 64).Uint64()
	p.Lo = lo.Uint64()
	return nil
}
