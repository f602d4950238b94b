/*
 * Cyber - Instruction field layouts
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

// Package parcel slices instruction words into fields.
//
// A Layout names the shift and width of each field. Extract and Insert
// are pure and mask every field, so they never fail.
package parcel

import "github.com/rcornwell/cyber/emu/word"

// Field is one bit range of an instruction.
type Field struct {
	Name  string
	Shift uint
	Bits  word.Width
}

// Get extracts the field from raw.
func (f Field) Get(raw uint64) uint64 {
	return (raw >> f.Shift) & f.Bits.Mask()
}

// Put returns the field value positioned in a word.
func (f Field) Put(v uint64) uint64 {
	return (v & f.Bits.Mask()) << f.Shift
}

// Layout is an ordered set of fields covering an instruction.
type Layout struct {
	Name   string
	Bits   word.Width
	Fields []Field
}

// Extract returns the value of each field in order.
func (l Layout) Extract(raw uint64) []uint64 {
	raw &= l.Bits.Mask()
	out := make([]uint64, len(l.Fields))
	for i, f := range l.Fields {
		out[i] = f.Get(raw)
	}
	return out
}

// Insert builds a word from field values in order. Missing values
// are zero and extra values are ignored.
func (l Layout) Insert(values ...uint64) uint64 {
	var raw uint64
	for i, f := range l.Fields {
		if i >= len(values) {
			break
		}
		raw |= f.Put(values[i])
	}
	return raw & l.Bits.Mask()
}

// Cyber 170 central processor layouts.
var (
	P15 = Layout{Name: "15", Bits: word.W15, Fields: []Field{
		{"op", 9, word.W6}, {"i", 6, word.W3}, {"j", 3, word.W3}, {"k", 0, word.W3},
	}}
	P30 = Layout{Name: "30", Bits: word.W30, Fields: []Field{
		{"op", 24, word.W6}, {"i", 21, word.W3}, {"j", 18, word.W3}, {"K", 0, word.W18},
	}}
	P60 = Layout{Name: "60", Bits: word.W60, Fields: []Field{
		{"op", 54, word.W6}, {"i", 51, word.W3}, {"j", 48, word.W3},
		{"K", 30, word.W18}, {"rest", 0, word.W30},
	}}
	MoveDescriptor = Layout{Name: "move", Bits: word.W60, Fields: []Field{
		{"LU", 48, word.W9}, {"K1", 30, word.W18}, {"LL", 26, word.W4},
		{"C1", 22, word.W4}, {"C2", 18, word.W4}, {"K2", 0, word.W18},
	}}
)

// Peripheral processor layouts. The 16 bit word adds the g bit above f.
var (
	PP12 = Layout{Name: "d", Bits: word.W12, Fields: []Field{
		{"f", 6, word.W6}, {"d", 0, word.W6},
	}}
	PP16 = Layout{Name: "d", Bits: word.W16, Fields: []Field{
		{"g", 15, word.W1}, {"f", 6, word.W6}, {"d", 0, word.W6},
	}}
	PP16SC = Layout{Name: "sc", Bits: word.W16, Fields: []Field{
		{"g", 15, word.W1}, {"f", 6, word.W6}, {"s", 5, word.W1}, {"c", 0, word.W5},
	}}
)

// Cyber 180 central processor layouts, the opcode is the top byte.
var (
	JK = Layout{Name: "jk", Bits: word.W16, Fields: []Field{
		{"op", 8, word.W8}, {"j", 4, word.W4}, {"k", 0, word.W4},
	}}
	JKID = Layout{Name: "jkiD", Bits: word.W32, Fields: []Field{
		{"op", 24, word.W8}, {"j", 20, word.W4}, {"k", 16, word.W4},
		{"i", 12, word.W4}, {"D", 0, word.W12},
	}}
	JKQ = Layout{Name: "jkQ", Bits: word.W32, Fields: []Field{
		{"op", 24, word.W8}, {"j", 20, word.W4}, {"k", 16, word.W4}, {"Q", 0, word.W16},
	}}
	SJKID = Layout{Name: "SjkiD", Bits: word.W32, Fields: []Field{
		{"op", 28, word.W4}, {"S", 24, word.W4}, {"j", 20, word.W4},
		{"k", 16, word.W4}, {"i", 12, word.W4}, {"D", 0, word.W12},
	}}
)

// Parcel positions of a 60 bit word, in bits still to be decoded.

// At15 returns the shift of a 15 bit parcel.
func At15(bitsLeft uint) (uint, bool) {
	if bitsLeft < 15 || bitsLeft > 60 || bitsLeft%15 != 0 {
		return 0, false
	}
	return bitsLeft - 15, true
}

// At30 returns the shift of a 30 bit parcel, which can not cross
// the end of the word.
func At30(bitsLeft uint) (uint, bool) {
	if bitsLeft < 30 || bitsLeft > 60 || bitsLeft%15 != 0 {
		return 0, false
	}
	return bitsLeft - 30, true
}

// At60 only fits an empty word.
func At60(bitsLeft uint) (uint, bool) {
	if bitsLeft != 60 {
		return 0, false
	}
	return 0, true
}

// Slice returns the width bit parcel starting with bitsLeft bits
// remaining in a 60 bit word.
func Slice(raw uint64, bitsLeft uint, width word.Width) (uint64, bool) {
	var shift uint
	var ok bool
	switch width {
	case word.W15:
		shift, ok = At15(bitsLeft)
	case word.W30:
		shift, ok = At30(bitsLeft)
	case word.W60:
		shift, ok = At60(bitsLeft)
	}
	if !ok {
		return 0, false
	}
	return (raw >> shift) & width.Mask(), true
}
