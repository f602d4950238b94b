/*
 * Cyber - Fixed width word tests
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

package word

import (
	"errors"
	"testing"

	"github.com/rcornwell/cyber/emu/fault"
)

var widths = []Width{W3, W4, W6, W12, W15, W16, W18, W21, W48, W60, W64}

func TestMask(t *testing.T) {
	for _, w := range widths {
		m := w.Mask()
		if w < 64 && m != (uint64(1)<<w)-1 {
			t.Errorf("Mask %d got: %x", w, m)
		}
		if w == 64 && m != ^uint64(0) {
			t.Errorf("Mask 64 got: %x", m)
		}
	}
}

// Writing any value stores it modulo the width.
func TestRegisterMasking(t *testing.T) {
	values := []uint64{0, 1, 0o7, 0o10, 0o7777, 0o10000, 0o777777, 0x0FFFFFFFFFFFFFFF, ^uint64(0)}
	for _, w := range widths {
		r := NewRegister(w)
		for _, v := range values {
			r.Set(v)
			expect := v
			if w < 64 {
				expect = v % (uint64(1) << w)
			}
			if r.Get() != expect {
				t.Errorf("Register %d set %o got: %o expected: %o", w, v, r.Get(), expect)
			}
			if !w.Valid(r.Get()) {
				t.Errorf("Register %d holds %o", w, r.Get())
			}
		}
	}
}

func TestRegisterLoad(t *testing.T) {
	r := NewRegister(W12)
	if err := r.Load(0o7777); err != nil {
		t.Errorf("Load 7777 failed: %v", err)
	}
	err := r.Load(0o10000)
	if !errors.Is(err, fault.ErrWidth) {
		t.Errorf("Load 10000 got: %v expected ErrWidth", err)
	}
	if r.Get() != 0o7777 {
		t.Errorf("Rejected load changed register got: %o expected: %o", r.Get(), 0o7777)
	}
}

func TestSignExtend(t *testing.T) {
	tests := []struct {
		v    uint64
		w    Width
		want int64
	}{
		{0x7FFF, W16, 0x7FFF},
		{0x8000, W16, -0x8000},
		{0xFFFF, W16, -1},
		{0xFFF, W12, -1},
		{0x800, W12, -2048},
		{5, W4, 5},
		{0xF, W4, -1},
		{^uint64(0), W64, -1},
	}
	for _, tt := range tests {
		if got := SignExtend(tt.v, tt.w); got != tt.want {
			t.Errorf("SignExtend %x/%d got: %d expected: %d", tt.v, tt.w, got, tt.want)
		}
	}
}

func TestOnesComplement(t *testing.T) {
	if v := OnesExtend(0o777776, W18); v != -1 {
		t.Errorf("OnesExtend 777776 got: %d expected: -1", v)
	}
	if v := OnesExtend(0o777777, W18); v != 0 {
		t.Errorf("OnesExtend negative zero got: %d expected: 0", v)
	}
	if v := OnesNeg(1, W18); v != 0o777776 {
		t.Errorf("OnesNeg 1 got: %o expected: 777776", v)
	}
	// 1 + -1 is positive zero.
	if v := OnesAdd(1, 0o777776, W18); v != 0 {
		t.Errorf("OnesAdd 1-1 got: %o expected: 0", v)
	}
	// -1 + -1 = -2 via end around carry.
	if v := OnesAdd(0o777776, 0o777776, W18); v != 0o777775 {
		t.Errorf("OnesAdd -1-1 got: %o expected: 777775", v)
	}
	if v := OnesSub(5, 7, W60); OnesExtend(v, W60) != -2 {
		t.Errorf("OnesSub 5-7 got: %d expected: -2", OnesExtend(v, W60))
	}
	if v := OnesAdd(0o377777, 1, W18); v != 0o400000 {
		t.Errorf("OnesAdd overflow got: %o expected: 400000", v)
	}
}
