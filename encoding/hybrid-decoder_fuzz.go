// +build gofuzz

package encoding

import "bytes"

func FuzzHybridDecoder(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	w := int(data[0] % 33)

	d := NewHybridDecoder(w, false)
	if err := d.Init(bytes.NewReader(data[1:])); err != nil {
		return 0
	}

	for i := 0; i < len(data); i++ {
		if _, err := d.Next(); err != nil {
			return 0
		}
	}

	return 1
}

func FuzzHybridDecoderSkip(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	w := int(data[0] % 33)

	d := NewHybridDecoder(w, false)
	if err := d.Init(bytes.NewReader(data[1:])); err != nil {
		return 0
	}

	if _, err := d.Skip(len(data)); err != nil {
		return 0
	}

	return 1
}
