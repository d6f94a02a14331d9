package lazyhlo

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/lazyhlo/types/shapes"
	"github.com/pkg/errors"
)

// DefaultHashSeed is the hash seed of nodes created without WithHashSeed.
const DefaultHashSeed uint64 = 0x6c617a79686c6f01

// hasher accumulates a canonical little-endian encoding of values into an xxhash64 digest.
type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newHasher() *hasher {
	return &hasher{d: xxhash.New()}
}

func (h *hasher) writeUint64(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])
}

func (h *hasher) writeByte(b byte) {
	h.buf[0] = b
	_, _ = h.d.Write(h.buf[:1])
}

// writeString is length-prefixed, so consecutive strings can't be confused.
func (h *hasher) writeString(s string) {
	h.writeUint64(uint64(len(s)))
	_, _ = h.d.WriteString(s)
}

func (h *hasher) writeShape(shape shapes.Shape, bakeInSizes bool) {
	if shape.IsTuple() {
		h.writeByte('t')
		h.writeUint64(uint64(shape.TupleSize()))
		for _, element := range shape.TupleShapes {
			h.writeShape(element, bakeInSizes)
		}
		return
	}
	h.writeByte('s')
	h.writeUint64(uint64(shape.DType))
	h.writeUint64(uint64(shape.Rank()))
	if bakeInSizes {
		for _, dim := range shape.Dimensions {
			h.writeUint64(uint64(dim))
		}
	}
}

// GetOpHash returns the structural hash of an operation with the given output shape and seed.
//
// If bakeInSizes is false, only the dtype and rank of the shape contribute to the hash, so shapes that differ
// only by their dimensions hash the same. The hash is deterministic: it doesn't depend on memory addresses.
func GetOpHash(op OpKind, shape shapes.Shape, seed uint64, bakeInSizes bool) uint64 {
	h := newHasher()
	h.writeString(op.Namespace)
	h.writeString(op.Name)
	h.writeShape(shape, bakeInSizes)
	h.writeUint64(seed)
	return h.d.Sum64()
}

// HashCombine returns a hash of the ordered pair (a, b).
func HashCombine(a, b uint64) uint64 {
	h := newHasher()
	h.writeUint64(a)
	h.writeUint64(b)
	return h.d.Sum64()
}

// HashValues returns a hash of seed and the values, used to derive the hash seed of a node from
// the attributes of its operation.
//
// Supported values are booleans, numbers, strings, dtypes.DType, slices of ints or of numbers, and
// fmt.Stringer. Other types are hashed by their "%T:%v" rendering.
func HashValues(seed uint64, values ...any) uint64 {
	h := newHasher()
	h.writeUint64(seed)
	for _, value := range values {
		h.writeValue(value)
	}
	return h.d.Sum64()
}

func (h *hasher) writeValue(value any) {
	switch v := value.(type) {
	case nil:
		h.writeByte(0)
	case bool:
		h.writeByte(1)
		if v {
			h.writeByte(1)
		} else {
			h.writeByte(0)
		}
	case int:
		h.writeByte(2)
		h.writeUint64(uint64(v))
	case int8, int16, int32, int64:
		h.writeByte(2)
		h.writeUint64(uint64(toInt64(v)))
	case uint8, uint16, uint32, uint64, uint:
		h.writeByte(3)
		h.writeUint64(toUint64(v))
	case float32:
		h.writeByte(4)
		h.writeUint64(uint64(math.Float32bits(v)))
	case float64:
		h.writeByte(5)
		h.writeUint64(math.Float64bits(v))
	case string:
		h.writeByte(6)
		h.writeString(v)
	case dtypes.DType:
		h.writeByte(7)
		h.writeUint64(uint64(v))
	case []int:
		h.writeByte(8)
		h.writeUint64(uint64(len(v)))
		for _, x := range v {
			h.writeUint64(uint64(x))
		}
	case shapes.Shape:
		h.writeByte(9)
		h.writeShape(v, true)
	case fmt.Stringer:
		h.writeByte(10)
		h.writeString(fmt.Sprintf("%T:%s", v, v))
	default:
		h.writeByte(11)
		h.writeString(fmt.Sprintf("%T:%v", v, v))
	}
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	}
	return 0
}

func toUint64(v any) uint64 {
	switch x := v.(type) {
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	case uint:
		return uint64(x)
	}
	return 0
}

// Hash returns the structural hash of the node, computed from its hash seed, the hashes of its operands
// (and which of their outputs are consumed) and its output shapes, under the node's SizesInHash policy.
//
// It resolves the shapes of the node (and of its operands). Once computed, it is cached.
// Structurally identical graphs have the same hash, regardless of when or where they were built.
func (n *Node) Hash() (uint64, error) {
	if n.hashed.Load() {
		return n.hash.Load(), nil
	}
	outputShapes, err := n.Shapes()
	if err != nil {
		return 0, err
	}
	h := n.hashSeed
	for i, operand := range n.operandOutputs {
		operandHash, err := n.operands[i].Hash()
		if err != nil {
			return 0, errors.WithMessagef(err, "hash of operand #%d of %s", i, n)
		}
		h = HashCombine(h, HashCombine(operandHash, uint64(operand.index)))
	}
	for _, shape := range outputShapes {
		h = GetOpHash(n.op, shape, h, n.sizesInHash)
	}
	// Concurrent computations store the same value.
	n.hash.Store(h)
	n.hashed.Store(true)
	return h, nil
}
