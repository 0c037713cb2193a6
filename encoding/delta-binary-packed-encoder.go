package encoding

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"math/bits"

	"github.com/hexbee-net/errors"
)

// Int32 ///////////////////////////////////////////////////////////////////////

type DeltaBinaryPackEncoder32 struct {
	deltaBinaryPackEncoder

	deltas []int32

	minDelta      int32
	previousValue int32
}

func NewDeltaBinaryPackEncoder32(blockSize, miniBlockCount int) *DeltaBinaryPackEncoder32 {
	return &DeltaBinaryPackEncoder32{
		deltaBinaryPackEncoder: deltaBinaryPackEncoder{
			blockSize:      blockSize,
			miniBlockCount: miniBlockCount,
		},
	}
}

func (e *DeltaBinaryPackEncoder32) Init(writer io.Writer) error {
	e.checkDeltasLength = func() error {
		if len(e.deltas) > 0 {
			return e.flush()
		}

		return nil
	}

	if err := e.deltaBinaryPackEncoder.init(writer); err != nil {
		return err
	}

	e.minDelta = math.MaxInt32
	e.deltas = make([]int32, 0, e.blockSize)
	e.previousValue = 0

	return nil
}

func (e *DeltaBinaryPackEncoder32) Close() error {
	return e.write()
}

func (e *DeltaBinaryPackEncoder32) AddInt32(n int32) error {
	e.valuesCount++
	if e.valuesCount == 1 {
		e.firstValue = int64(n)
		e.previousValue = n

		return nil
	}

	delta := n - e.previousValue
	e.previousValue = n
	e.deltas = append(e.deltas, delta)

	if delta < e.minDelta {
		e.minDelta = delta
	}

	if len(e.deltas) == e.blockSize {
		return e.flush()
	}

	return nil
}

func (e *DeltaBinaryPackEncoder32) flush() error {
	// Technically, based on the spec after this step all values are positive,
	// but NO, it's not. when the min delta is small enough (lets say MinInt)
	// and one of the deltas is MaxInt, the result of MaxInt-MinInt overflows
	// to a negative value.
	for i := range e.deltas {
		e.deltas[i] -= e.minDelta
	}

	if err := writeVariant(e.buffer, int64(e.minDelta)); err != nil {
		return err
	}

	e.bitWidth = e.bitWidth[:0]
	e.packed = e.packed[:0]

	for i := 0; i < len(e.deltas); i += e.miniBlockValueCount {
		const bufSize = 8

		end := i + e.miniBlockValueCount
		if end >= len(e.deltas) {
			end = len(e.deltas)
		}

		max := uint32(e.deltas[i])
		buf := make([][bufSize]int32, e.miniBlockValueCount/bufSize)

		for j := i; j < end; j++ {
			if max < uint32(e.deltas[j]) {
				max = uint32(e.deltas[j])
			}

			t := j - i
			buf[t/bufSize][t%bufSize] = e.deltas[j]
		}

		bw := bits.Len32(max)
		e.bitWidth = append(e.bitWidth, uint8(bw))

		data := make([]byte, 0, bw*len(buf))
		packer := pack8Int32FuncByWidth[bw]

		for j := range buf {
			data = append(data, packer(buf[j])...)
		}

		e.packed = append(e.packed, data)
	}

	for len(e.bitWidth) < e.miniBlockCount {
		e.bitWidth = append(e.bitWidth, 0)
	}

	if err := binary.Write(e.buffer, binary.LittleEndian, e.bitWidth); err != nil {
		return err
	}

	for i := range e.packed {
		if err := writeFull(e.buffer, e.packed[i]); err != nil {
			return err
		}
	}

	e.minDelta = math.MaxInt32
	e.deltas = e.deltas[:0]

	return nil
}

// Int64 ///////////////////////////////////////////////////////////////////////

type DeltaBinaryPackEncoder64 struct {
	deltaBinaryPackEncoder

	deltas []int64

	minDelta      int64
	previousValue int64
}

func NewDeltaBinaryPackEncoder64(blockSize, miniBlockCount int) *DeltaBinaryPackEncoder64 {
	return &DeltaBinaryPackEncoder64{
		deltaBinaryPackEncoder: deltaBinaryPackEncoder{
			blockSize:      blockSize,
			miniBlockCount: miniBlockCount,
		},
	}
}

func (e *DeltaBinaryPackEncoder64) Init(writer io.Writer) error {
	e.checkDeltasLength = func() error {
		if len(e.deltas) > 0 {
			return e.flush()
		}

		return nil
	}

	if err := e.deltaBinaryPackEncoder.init(writer); err != nil {
		return err
	}

	e.minDelta = math.MaxInt64
	e.deltas = make([]int64, 0, e.blockSize)
	e.previousValue = 0

	return nil
}

func (e *DeltaBinaryPackEncoder64) Close() error {
	return e.write()
}

func (e *DeltaBinaryPackEncoder64) AddInt64(n int64) error {
	e.valuesCount++
	if e.valuesCount == 1 {
		e.firstValue = n
		e.previousValue = n

		return nil
	}

	delta := n - e.previousValue
	e.previousValue = n
	e.deltas = append(e.deltas, delta)

	if delta < e.minDelta {
		e.minDelta = delta
	}

	if len(e.deltas) == e.blockSize {
		return e.flush()
	}

	return nil
}

func (e *DeltaBinaryPackEncoder64) flush() error {
	// See the int32 flush note about overflow.
	for i := range e.deltas {
		e.deltas[i] -= e.minDelta
	}

	if err := writeVariant(e.buffer, e.minDelta); err != nil {
		return err
	}

	e.bitWidth = e.bitWidth[:0]
	e.packed = e.packed[:0]

	for i := 0; i < len(e.deltas); i += e.miniBlockValueCount {
		const bufSize = 8

		end := i + e.miniBlockValueCount
		if end >= len(e.deltas) {
			end = len(e.deltas)
		}

		max := uint64(e.deltas[i])
		buf := make([][bufSize]int64, e.miniBlockValueCount/bufSize)

		for j := i; j < end; j++ {
			if max < uint64(e.deltas[j]) {
				max = uint64(e.deltas[j])
			}

			t := j - i
			buf[t/bufSize][t%bufSize] = e.deltas[j]
		}

		bw := bits.Len64(max)
		e.bitWidth = append(e.bitWidth, uint8(bw))

		data := make([]byte, 0, bw*len(buf))
		packer := pack8Int64FuncByWidth[bw]

		for j := range buf {
			data = append(data, packer(buf[j])...)
		}

		e.packed = append(e.packed, data)
	}

	for len(e.bitWidth) < e.miniBlockCount {
		e.bitWidth = append(e.bitWidth, 0)
	}

	if err := binary.Write(e.buffer, binary.LittleEndian, e.bitWidth); err != nil {
		return err
	}

	for i := range e.packed {
		if err := writeFull(e.buffer, e.packed[i]); err != nil {
			return err
		}
	}

	e.minDelta = math.MaxInt64
	e.deltas = e.deltas[:0]

	return nil
}

// Generic encoder /////////////////////////////////////////////////////////////

type deltaBinaryPackEncoder struct {
	bitWidth []uint8
	packed   [][]byte
	w        io.Writer

	// these values should be there before the init
	blockSize      int // Must be multiply of 128
	miniBlockCount int // blockSize % miniBlockCount should be 0

	miniBlockValueCount int

	valuesCount int
	buffer      *bytes.Buffer

	firstValue int64 // the first value to write

	checkDeltasLength func() error
}

func (e *deltaBinaryPackEncoder) init(writer io.Writer) error {
	if writer == nil {
		return errors.WithStack(errNilWriter)
	}

	e.w = writer

	if e.blockSize%128 != 0 || e.blockSize <= 0 {
		return errors.WithFields(
			errors.WithStack(errInvalidBlockSize),
			errors.Fields{
				"block-size": e.blockSize,
			})
	}

	if e.miniBlockCount <= 0 || e.blockSize%e.miniBlockCount != 0 {
		return errors.WithFields(
			errors.WithStack(errInvalidMiniblockCount),
			errors.Fields{
				"block-count": e.miniBlockCount,
			})
	}

	e.miniBlockValueCount = e.blockSize / e.miniBlockCount
	if e.miniBlockValueCount%8 != 0 {
		return errors.WithFields(
			errors.WithStack(errInvalidMiniblockCount),
			errors.Fields{
				"block-count": e.miniBlockCount,
			})
	}

	e.firstValue = 0
	e.valuesCount = 0
	e.buffer = &bytes.Buffer{}
	e.bitWidth = make([]uint8, 0, e.miniBlockCount)

	return nil
}

func (e *deltaBinaryPackEncoder) write() error {
	if err := e.checkDeltasLength(); err != nil {
		return err
	}

	if err := writeUVariant(e.w, uint64(e.blockSize)); err != nil {
		return err
	}

	if err := writeUVariant(e.w, uint64(e.miniBlockCount)); err != nil {
		return err
	}

	if err := writeUVariant(e.w, uint64(e.valuesCount)); err != nil {
		return err
	}

	if err := writeVariant(e.w, e.firstValue); err != nil {
		return err
	}

	return writeFull(e.w, e.buffer.Bytes())
}
