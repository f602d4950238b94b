/*
 * Cyber - Peripheral processor address modes
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

// Package address resolves peripheral processor operand modes.
//
// Which mode an instruction uses is fixed by its opcode. Resolution
// never fails; modes with no address report false.
package address

import "fmt"

// Memory is what resolution reads from.
type Memory interface {
	Fetch(addr uint64) uint64
	AddressMask() uint64
}

// Mode is one of the operand address modes.
type Mode interface {
	fmt.Stringer
	isMode()
}

// Immediate is the 6 bit "no address" operand d.
type Immediate struct {
	D uint8
}

// Constant is the 18 bit operand d:m.
type Constant struct {
	D uint8
	M uint16
}

// Direct addresses word d.
type Direct struct {
	D uint8
}

// Indirect addresses the word that d points at.
type Indirect struct {
	D uint8
}

// Indexed is memory mode, m plus the contents of d unless d is zero.
type Indexed struct {
	D uint8
	M uint16
}

// Channel names a channel with no address.
type Channel struct {
	D uint8
}

// ChannelJump names a channel and a target or buffer address m.
type ChannelJump struct {
	D uint8
	M uint16
}

func (Immediate) isMode()   {}
func (Constant) isMode()    {}
func (Direct) isMode()      {}
func (Indirect) isMode()    {}
func (Indexed) isMode()     {}
func (Channel) isMode()     {}
func (ChannelJump) isMode() {}

// Value is the 18 bit constant.
func (c Constant) Value() uint32 {
	return uint32(c.D&0o77)<<12 | uint32(c.M&0o7777)
}

// C returns channel number.
func (c Channel) C() uint8 { return c.D & 0o37 }

// S returns the skip bit of the channel field.
func (c Channel) S() bool { return c.D&0o40 != 0 }

func (c ChannelJump) C() uint8 { return c.D & 0o37 }
func (c ChannelJump) S() bool  { return c.D&0o40 != 0 }

// EffectiveAddress resolves mode against mem.
func EffectiveAddress(mode Mode, mem Memory) (uint32, bool) {
	mask := mem.AddressMask()
	switch m := mode.(type) {
	case Direct:
		return uint32(uint64(m.D) & mask), true
	case Indirect:
		return uint32(mem.Fetch(uint64(m.D)) & mask), true
	case Indexed:
		if m.D == 0 {
			return uint32(uint64(m.M) & mask), true
		}
		return uint32((uint64(m.M) + mem.Fetch(uint64(m.D))) & mask), true
	case ChannelJump:
		return uint32(uint64(m.M) & mask), true
	}
	return 0, false
}

// Operand returns an immediate value, false if the mode has an address.
func Operand(mode Mode) (uint32, bool) {
	switch m := mode.(type) {
	case Immediate:
		return uint32(m.D & 0o77), true
	case Constant:
		return m.Value(), true
	}
	return 0, false
}

func (m Immediate) String() string { return fmt.Sprintf("%o", m.D) }
func (m Constant) String() string  { return fmt.Sprintf("%o", m.Value()) }
func (m Direct) String() string    { return fmt.Sprintf("%o", m.D) }
func (m Indirect) String() string  { return fmt.Sprintf("%o", m.D) }
func (m Channel) String() string   { return fmt.Sprintf("%o", m.D) }

func (m Indexed) String() string {
	if m.D == 0 {
		return fmt.Sprintf("%o", m.M)
	}
	return fmt.Sprintf("%o,%o", m.M, m.D)
}

func (m ChannelJump) String() string {
	return fmt.Sprintf("%o,%o", m.M, m.D)
}
