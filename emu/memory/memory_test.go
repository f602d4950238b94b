package memory

/*
 * Cyber - Low level memory tests
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

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rcornwell/cyber/emu/fault"
	"github.com/rcornwell/cyber/emu/word"
)

func TestNewSize(t *testing.T) {
	m := New(PP170Size, word.W12)
	if m.Size() != 4096 {
		t.Errorf("Memory size not correct got: %d expected: %d", m.Size(), 4096)
	}
	for i := range uint64(4096) {
		if v := m.Fetch(i); v != 0 {
			t.Errorf("New memory not zero at %o got: %o", i, v)
		}
	}
}

func TestReadWrite(t *testing.T) {
	m := New(256, word.W12)
	for i := range uint64(256) {
		if err := m.Write(i, i*3); err != nil {
			t.Errorf("Write %o failed: %v", i, err)
		}
	}
	for i := range uint64(256) {
		v, err := m.Read(i)
		if err != nil {
			t.Errorf("Read %o failed: %v", i, err)
		}
		if v != i*3 {
			t.Errorf("Read not correct got: %o expected: %o", v, i*3)
		}
	}
}

func TestBounds(t *testing.T) {
	m := New(256, word.W60)
	_, err := m.Read(256)
	if !errors.Is(err, fault.ErrAddress) {
		t.Errorf("Read past end got: %v expected ErrAddress", err)
	}
	if err := m.Write(1000, 1); !errors.Is(err, fault.ErrAddress) {
		t.Errorf("Write past end got: %v expected ErrAddress", err)
	}
	if v := m.Fetch(1000); v != 0 {
		t.Errorf("Fetch past end got: %o expected: 0", v)
	}
}

func TestWidthCheck(t *testing.T) {
	m := New(16, word.W12)
	if err := m.Write(1, 0o10000); !errors.Is(err, fault.ErrWidth) {
		t.Errorf("Oversize write got: %v expected ErrWidth", err)
	}
	if v := m.Fetch(1); v != 0 {
		t.Errorf("Rejected write stored got: %o", v)
	}
	if err := m.Store(1, 0o17777); err != nil {
		t.Errorf("Store failed: %v", err)
	}
	if v := m.Fetch(1); v != 0o7777 {
		t.Errorf("Store not masked got: %o expected: %o", v, 0o7777)
	}
}

func TestCyclic(t *testing.T) {
	m := New(PP170Size, word.W12, Cyclic())
	if err := m.Write(0o10005, 0o1234); err != nil {
		t.Errorf("Cyclic write failed: %v", err)
	}
	v, err := m.Read(5)
	if err != nil || v != 0o1234 {
		t.Errorf("Cyclic wrap got: %o (%v) expected: %o", v, err, 0o1234)
	}
	if v := m.Fetch(0o7777 + 6); v != 0o1234 {
		t.Errorf("Cyclic fetch got: %o expected: %o", v, 0o1234)
	}
}

func TestReset(t *testing.T) {
	m := New(64, word.W16)
	_ = m.Write(3, 0xffff)
	before := &m.mem[0]
	m.Reset()
	if m.Fetch(3) != 0 {
		t.Error("Reset did not clear memory")
	}
	if &m.mem[0] != before {
		t.Error("Reset reallocated storage")
	}
}

func TestUpdate(t *testing.T) {
	m := New(8, word.W60)
	_ = m.Write(2, 0o17)
	old, err := m.Update(2, func(v uint64) uint64 { return v | 0o60 })
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if old != 0o17 {
		t.Errorf("Update old got: %o expected: %o", old, 0o17)
	}
	if v := m.Fetch(2); v != 0o77 {
		t.Errorf("Update new got: %o expected: %o", v, 0o77)
	}
}

func TestBytes(t *testing.T) {
	m := New(4, word.W64)
	_ = m.Write(0, 0x0123456789abcdef)
	b, err := m.ReadBytes(2, 4)
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if diff := cmp.Diff([]byte{0x45, 0x67, 0x89, 0xab}, b); diff != "" {
		t.Errorf("ReadBytes mismatch (-want +got):\n%s", diff)
	}

	// Crosses a word boundary.
	if err := m.WriteUint(6, 4, 0xdeadbeef); err != nil {
		t.Fatalf("WriteUint failed: %v", err)
	}
	if v := m.Fetch(0); v != 0x0123456789abdead {
		t.Errorf("Word 0 got: %x expected: %x", v, uint64(0x0123456789abdead))
	}
	if v := m.Fetch(1); v != 0xbeef000000000000 {
		t.Errorf("Word 1 got: %x expected: %x", v, uint64(0xbeef000000000000))
	}
	v, _ := m.ReadUint(6, 4)
	if v != 0xdeadbeef {
		t.Errorf("ReadUint got: %x expected: %x", v, 0xdeadbeef)
	}

	if err := m.WriteBytes(31, []byte{1, 2}); !errors.Is(err, fault.ErrAddress) {
		t.Errorf("WriteBytes past end got: %v expected ErrAddress", err)
	}
	if m.Fetch(3)&0xff != 0 {
		t.Error("Failed WriteBytes stored data")
	}
}

func TestLoad(t *testing.T) {
	m := New(8, word.W12)
	if err := m.Load(2, []uint64{1, 2, 0o17777}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Fetch(4) != 0o7777 {
		t.Errorf("Load not masked got: %o", m.Fetch(4))
	}
}
