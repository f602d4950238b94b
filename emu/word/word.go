/*
 * Cyber - Fixed width word primitives
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

// Package word provides unsigned values of a declared bit width.
//
// All machine state is held in uint64 and masked to its width on every
// store. One's complement helpers support the 60 bit central processor
// and the 18 bit peripheral accumulator.
package word

import (
	"fmt"

	"github.com/rcornwell/cyber/emu/fault"
)

// Width is the number of significant bits in a value.
type Width uint

const (
	W1  Width = 1
	W3  Width = 3
	W4  Width = 4
	W5  Width = 5
	W6  Width = 6
	W8  Width = 8
	W9  Width = 9
	W12 Width = 12
	W15 Width = 15
	W16 Width = 16
	W18 Width = 18
	W21 Width = 21
	W24 Width = 24
	W28 Width = 28
	W30 Width = 30
	W32 Width = 32
	W48 Width = 48
	W60 Width = 60
	W64 Width = 64
)

// Mask returns all ones in the low w bits.
func (w Width) Mask() uint64 {
	if w >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << w) - 1
}

// Trunc returns v modulo 2^w.
func (w Width) Trunc(v uint64) uint64 {
	return v & w.Mask()
}

// Valid reports whether v fits in w bits.
func (w Width) Valid(v uint64) bool {
	return v&^w.Mask() == 0
}

// Check returns ErrWidth if v does not fit.
func (w Width) Check(v uint64) error {
	if !w.Valid(v) {
		return fmt.Errorf("%o in %d bits: %w", v, w, fault.ErrWidth)
	}
	return nil
}

// Sign returns the sign bit of a w bit value.
func (w Width) Sign() uint64 {
	return uint64(1) << (w - 1)
}

// SignExtend treats v as a two's complement value of width w.
func SignExtend(v uint64, w Width) int64 {
	v &= w.Mask()
	if w < 64 && v&w.Sign() != 0 {
		v |= ^w.Mask()
	}
	return int64(v)
}

// OnesExtend treats v as a one's complement value of width w.
// Negative zero returns 0.
func OnesExtend(v uint64, w Width) int64 {
	v &= w.Mask()
	if v&w.Sign() == 0 {
		return int64(v)
	}
	return -int64(^v & w.Mask())
}

// OnesNeg complements v within w bits.
func OnesNeg(v uint64, w Width) uint64 {
	return ^v & w.Mask()
}

// OnesAdd returns a+b in w bit one's complement with end around carry.
func OnesAdd(a, b uint64, w Width) uint64 {
	m := w.Mask()
	s := (a & m) + (b & m)
	if s > m {
		s = (s & m) + 1
	}
	s &= m
	// Subtractive adder never produces negative zero from operands of
	// unlike sign.
	if s == m && (a&m) != m && (b&m) != m {
		return 0
	}
	return s
}

// OnesSub returns a-b in w bit one's complement.
func OnesSub(a, b uint64, w Width) uint64 {
	return OnesAdd(a, OnesNeg(b, w), w)
}

// Register holds a value that never exceeds its width.
type Register struct {
	width Width
	value uint64
}

// NewRegister returns a zeroed register of width w.
func NewRegister(w Width) Register {
	return Register{width: w}
}

func (r *Register) Width() Width {
	return r.width
}

func (r *Register) Get() uint64 {
	return r.value
}

// Set stores v modulo 2^width.
func (r *Register) Set(v uint64) {
	r.value = v & r.width.Mask()
}

// Load stores v, rejecting it if it does not fit.
func (r *Register) Load(v uint64) error {
	if err := r.width.Check(v); err != nil {
		return err
	}
	r.value = v
	return nil
}
