/*
 * Cyber - Cyber 170 peripheral processor instruction decode
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

package pp170

import (
	"fmt"

	"github.com/rcornwell/cyber/emu/address"
	"github.com/rcornwell/cyber/emu/fault"
	"github.com/rcornwell/cyber/emu/parcel"
	"github.com/rcornwell/cyber/emu/word"
)

// Instruction is a decoded 12 bit PP instruction, one of Short or Long.
type Instruction interface {
	fmt.Stringer
	Opcode() Op
	Stride() uint64
	Mode() address.Mode
	isInstruction()
}

// Short is a one word instruction.
type Short struct {
	Op Op
	D  uint8
}

// Long is a two word instruction, M is the word that follows.
type Long struct {
	Op Op
	D  uint8
	M  uint16
}

func (Short) isInstruction() {}
func (Long) isInstruction()  {}

func (s Short) Opcode() Op     { return s.Op }
func (s Short) Stride() uint64 { return 1 }
func (l Long) Opcode() Op      { return l.Op }
func (l Long) Stride() uint64  { return 2 }

func (s Short) Mode() address.Mode {
	switch opInfo[s.Op].kind {
	case kindDirect:
		return address.Direct{D: s.D}
	case kindIndirect:
		return address.Indirect{D: s.D}
	case kindChannel:
		return address.Channel{D: s.D}
	}
	return address.Immediate{D: s.D}
}

func (l Long) Mode() address.Mode {
	switch opInfo[l.Op].kind {
	case kindConstant:
		return address.Constant{D: l.D, M: l.M}
	case kindChannelJump:
		return address.ChannelJump{D: l.D, M: l.M}
	case kindBlock:
		return address.Direct{D: l.D}
	}
	return address.Indexed{D: l.D, M: l.M}
}

func (s Short) String() string {
	return fmt.Sprintf("%s %s", s.Op, s.Mode())
}

func (l Long) String() string {
	switch opInfo[l.Op].kind {
	case kindConstant, kindIndexed:
		return fmt.Sprintf("%s %s", l.Op, l.Mode())
	}
	return fmt.Sprintf("%s %o,%o", l.Op, l.M, l.D)
}

// Memory is where instructions are fetched from.
type Memory interface {
	Fetch(addr uint64) uint64
}

// Decode the instruction at addr. Two word instructions read their
// second word from addr+1.
func Decode(mem Memory, addr uint64) (Instruction, error) {
	raw := mem.Fetch(addr) & word.W12.Mask()
	fields := parcel.PP12.Extract(raw)
	f, d := uint8(fields[0]), uint8(fields[1])
	for g := range numGroups {
		for _, def := range byGroup[g] {
			if def.f != f || d < def.dlo || d > def.dhi {
				continue
			}
			if !def.long {
				return Short{Op: def.op, D: d}, nil
			}
			m := uint16(mem.Fetch(addr+1) & word.W12.Mask())
			return Long{Op: def.op, D: d, M: m}, nil
		}
	}
	return nil, fmt.Errorf("%04o at %04o: %w", raw, addr, fault.ErrDecode)
}

// Encode returns the memory words of an instruction.
func Encode(inst Instruction) ([]uint64, error) {
	var d uint8
	var long bool
	var m uint16
	switch i := inst.(type) {
	case Short:
		d = i.D
	case Long:
		d, m, long = i.D, i.M, true
	default:
		return nil, fmt.Errorf("encode %T: %w", inst, fault.ErrDecode)
	}
	op := inst.Opcode()
	if op < 0 || op >= numOps {
		return nil, fmt.Errorf("encode op %d: %w", op, fault.ErrDecode)
	}
	def := opInfo[op]
	if def.long != long || d < def.dlo || d > def.dhi {
		return nil, fmt.Errorf("encode %s d=%o: %w", op, d, fault.ErrWidth)
	}
	if !word.W12.Valid(uint64(m)) {
		return nil, fmt.Errorf("encode %s m=%o: %w", op, m, fault.ErrWidth)
	}
	first := parcel.PP12.Insert(uint64(def.f), uint64(d))
	if !long {
		return []uint64{first}, nil
	}
	return []uint64{first, uint64(m)}, nil
}

// Disassemble the instruction at addr, returning its text and size.
func Disassemble(mem Memory, addr uint64) (string, uint64) {
	inst, err := Decode(mem, addr)
	if err != nil {
		return fmt.Sprintf("*** %04o", mem.Fetch(addr)&word.W12.Mask()), 1
	}
	return inst.String(), inst.Stride()
}
