package memory

/*
 * Cyber - Byte access to 64 bit memory
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Bytes are numbered from the most significant end of each 64 bit word.

func byteShift(addr uint64) uint {
	return uint(7-(addr&7)) * 8
}

// ReadBytes returns n bytes starting at byte address addr.
func (m *Memory) ReadBytes(addr uint64, n int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, n)
	for i := range n {
		a := addr + uint64(i)
		w, ok := m.index(a >> 3)
		if !ok {
			return nil, m.rangeError(a >> 3)
		}
		out[i] = byte(m.mem[w] >> byteShift(a))
	}
	return out, nil
}

// WriteBytes stores data starting at byte address addr. Nothing is
// stored if any byte is out of range.
func (m *Memory) WriteBytes(addr uint64, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	last := addr + uint64(len(data))
	if len(data) != 0 {
		if _, ok := m.index((last - 1) >> 3); !ok {
			return m.rangeError((last - 1) >> 3)
		}
	}
	for i, b := range data {
		a := addr + uint64(i)
		w, ok := m.index(a >> 3)
		if !ok {
			return m.rangeError(a >> 3)
		}
		s := byteShift(a)
		m.mem[w] = (m.mem[w] &^ (uint64(0xff) << s)) | uint64(b)<<s
	}
	return nil
}

// ReadUint returns n big endian bytes as a value.
func (m *Memory) ReadUint(addr uint64, n int) (uint64, error) {
	b, err := m.ReadBytes(addr, n)
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}

// WriteUint stores the low n bytes of v big endian.
func (m *Memory) WriteUint(addr uint64, n int, v uint64) error {
	b := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return m.WriteBytes(addr, b)
}
