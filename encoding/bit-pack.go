package encoding

// Bit-packing primitives for the hybrid RLE/bit-packed encoding and the
// delta binary packed encoding. Values are packed in groups of eight,
// LSB-first within each byte, value i occupying bits [i*width, (i+1)*width)
// of the group.

type pack8int32Func func(data [8]int32) []byte

type pack8int64Func func(data [8]int64) []byte

type unpack8int32Func func(data []byte) [8]int32

type unpack8int64Func func(data []byte) [8]int64

var (
	pack8Int32FuncByWidth   [33]pack8int32Func
	pack8Int64FuncByWidth   [65]pack8int64Func
	unpack8Int32FuncByWidth [33]unpack8int32Func
	unpack8Int64FuncByWidth [65]unpack8int64Func
)

func init() {
	for w := 0; w <= 32; w++ {
		pack8Int32FuncByWidth[w] = pack8Int32ByWidth(w)
		unpack8Int32FuncByWidth[w] = unpack8Int32ByWidth(w)
	}

	for w := 0; w <= 64; w++ {
		pack8Int64FuncByWidth[w] = pack8Int64ByWidth(w)
		unpack8Int64FuncByWidth[w] = unpack8Int64ByWidth(w)
	}
}

func pack8Int32ByWidth(width int) pack8int32Func {
	return func(data [8]int32) []byte {
		out := make([]byte, width)

		for i := 0; i < 8; i++ {
			for b := 0; b < width; b++ {
				if data[i]>>uint(b)&1 == 1 {
					pos := i*width + b
					out[pos/8] |= 1 << uint(pos%8)
				}
			}
		}

		return out
	}
}

func pack8Int64ByWidth(width int) pack8int64Func {
	return func(data [8]int64) []byte {
		out := make([]byte, width)

		for i := 0; i < 8; i++ {
			for b := 0; b < width; b++ {
				if data[i]>>uint(b)&1 == 1 {
					pos := i*width + b
					out[pos/8] |= 1 << uint(pos%8)
				}
			}
		}

		return out
	}
}

func unpack8Int32ByWidth(width int) unpack8int32Func {
	return func(data []byte) (a [8]int32) {
		for i := 0; i < 8; i++ {
			for b := 0; b < width; b++ {
				pos := i*width + b
				if data[pos/8]>>uint(pos%8)&1 == 1 {
					a[i] |= 1 << uint(b)
				}
			}
		}

		return a
	}
}

func unpack8Int64ByWidth(width int) unpack8int64Func {
	return func(data []byte) (a [8]int64) {
		for i := 0; i < 8; i++ {
			for b := 0; b < width; b++ {
				pos := i*width + b
				if data[pos/8]>>uint(pos%8)&1 == 1 {
					a[i] |= 1 << uint(b)
				}
			}
		}

		return a
	}
}
