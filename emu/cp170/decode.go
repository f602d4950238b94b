/*
 * Cyber - Cyber 170 central processor instruction decode
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

package cp170

import (
	"fmt"
	"strings"

	"github.com/rcornwell/cyber/emu/fault"
	"github.com/rcornwell/cyber/emu/parcel"
	"github.com/rcornwell/cyber/emu/word"
)

// Instruction is one decoded parcel: Short, Long, Full or Move.
type Instruction interface {
	fmt.Stringer
	Opcode() Op
	Bits() word.Width
	isInstruction()
}

// Short is a 15 bit instruction.
type Short struct {
	Op      Op
	I, J, K uint8
}

// Long is a 30 bit instruction with an 18 bit K.
type Long struct {
	Op   Op
	I, J uint8
	K    uint32
}

// Full is a 60 bit instruction, Rest holds the low 30 bits.
type Full struct {
	Op   Op
	I, J uint8
	K    uint32
	Rest uint32
}

// Move is a compare or move instruction with its descriptor.
type Move struct {
	Op   Op
	Desc Descriptor
}

// Descriptor of a compare or move, character counts and addresses.
type Descriptor struct {
	LU     uint16
	K1     uint32
	LL     uint8
	C1, C2 uint8
	K2     uint32
}

// L is the character count, upper and lower parts joined.
func (d Descriptor) L() uint16 {
	return d.LU<<4 | uint16(d.LL)
}

func (d Descriptor) String() string {
	return fmt.Sprintf("L=%o,K1=%o,C1=%o,C2=%o,K2=%o", d.L(), d.K1, d.C1, d.C2, d.K2)
}

func descriptor(raw uint64) Descriptor {
	f := parcel.MoveDescriptor.Extract(raw)
	return Descriptor{
		LU: uint16(f[0]),
		K1: uint32(f[1]),
		LL: uint8(f[2]),
		C1: uint8(f[3]),
		C2: uint8(f[4]),
		K2: uint32(f[5]),
	}
}

func (Short) isInstruction() {}
func (Long) isInstruction()  {}
func (Full) isInstruction()  {}
func (Move) isInstruction()  {}

func (s Short) Opcode() Op       { return s.Op }
func (s Short) Bits() word.Width { return word.W15 }
func (l Long) Opcode() Op        { return l.Op }
func (l Long) Bits() word.Width  { return word.W30 }
func (f Full) Opcode() Op        { return f.Op }
func (f Full) Bits() word.Width  { return word.W60 }
func (m Move) Opcode() Op        { return m.Op }
func (m Move) Bits() word.Width  { return word.W60 }

// Fill in the assembler form of op.
func render(op Op, i, j, k uint8, bigK uint32, desc string) string {
	if op < 0 || op >= numOps {
		return "???"
	}
	r := strings.NewReplacer(
		"{i}", fmt.Sprintf("%o", i),
		"{j}", fmt.Sprintf("%o", j),
		"{k}", fmt.Sprintf("%o", k),
		"{jk}", fmt.Sprintf("%02o", j<<3|k),
		"{K}", fmt.Sprintf("%o", bigK),
		"{desc}", desc,
	)
	return r.Replace(opInfo[op].text)
}

func (s Short) String() string { return render(s.Op, s.I, s.J, s.K, 0, "") }
func (l Long) String() string  { return render(l.Op, l.I, l.J, 0, l.K, "") }
func (f Full) String() string  { return render(f.Op, f.I, f.J, 0, f.K, "") }
func (m Move) String() string  { return render(m.Op, 0, 0, 0, 0, m.Desc.String()) }

var layouts = map[word.Width]parcel.Layout{
	word.W15: parcel.P15,
	word.W30: parcel.P30,
	word.W60: parcel.P60,
}

// Decode the parcel with bitsLeft bits of raw still to decode. The
// 15 bit groups are tried first, then 30 bit, then 60 bit.
func Decode(raw uint64, bitsLeft uint) (Instruction, error) {
	for _, w := range []word.Width{word.W15, word.W30, word.W60} {
		p, ok := parcel.Slice(raw, bitsLeft, w)
		if !ok {
			continue
		}
		if inst := decodeParcel(p, w); inst != nil {
			return inst, nil
		}
	}
	return nil, fmt.Errorf("%020o with %d bits left: %w", raw&word.W60.Mask(), bitsLeft, fault.ErrDecode)
}

func decodeParcel(p uint64, w word.Width) Instruction {
	f := layouts[w].Extract(p)
	code, i := uint8(f[0]), uint8(f[1])
	for g := range numGroups {
		for _, def := range byGroup[g] {
			if def.width != w || def.code != code || i < def.ilo || i > def.ihi {
				continue
			}
			switch {
			case w == word.W15:
				return Short{Op: def.op, I: i, J: uint8(f[2]), K: uint8(f[3])}
			case w == word.W30:
				return Long{Op: def.op, I: i, J: uint8(f[2]), K: uint32(f[3])}
			case def.op.moves():
				return Move{Op: def.op, Desc: descriptor(p)}
			}
			return Full{Op: def.op, I: i, J: uint8(f[2]), K: uint32(f[3]), Rest: uint32(f[4])}
		}
	}
	return nil
}

// DecodeWord decodes every parcel of a word, left to right.
func DecodeWord(raw uint64) ([]Instruction, error) {
	insts := []Instruction{}
	for bitsLeft := uint(60); bitsLeft > 0; {
		inst, err := Decode(raw, bitsLeft)
		if err != nil {
			return insts, err
		}
		insts = append(insts, inst)
		bitsLeft -= uint(inst.Bits())
	}
	return insts, nil
}

func checkFields(def *opDef, i uint8, small []uint8, big ...uint64) error {
	if i == 0 && def.ilo == def.ihi {
		i = def.ilo
	}
	if i < def.ilo || i > def.ihi {
		return fmt.Errorf("encode %s i=%o: %w", def.name, i, fault.ErrWidth)
	}
	for _, v := range small {
		if !word.W3.Valid(uint64(v)) {
			return fmt.Errorf("encode %s field %o: %w", def.name, v, fault.ErrWidth)
		}
	}
	widths := []word.Width{word.W18, word.W30}
	for n, v := range big {
		if err := widths[n].Check(v); err != nil {
			return fmt.Errorf("encode %s: %w", def.name, err)
		}
	}
	return nil
}

// The i field to encode. A mnemonic with a fixed sub opcode supplies
// its own when i is left at zero.
func (def *opDef) sub(i uint8) uint64 {
	if i == 0 && def.ilo == def.ihi {
		return uint64(def.ilo)
	}
	return uint64(i)
}

// Encode returns the parcel of an instruction, right justified.
func Encode(inst Instruction) (uint64, error) {
	op := inst.Opcode()
	if op < 0 || op >= numOps {
		return 0, fmt.Errorf("encode op %d: %w", op, fault.ErrDecode)
	}
	def := opInfo[op]
	if def.width != inst.Bits() {
		return 0, fmt.Errorf("encode %s as %d bits: %w", def.name, inst.Bits(), fault.ErrWidth)
	}
	code := uint64(def.code)
	switch i := inst.(type) {
	case Short:
		if err := checkFields(def, i.I, []uint8{i.J, i.K}); err != nil {
			return 0, err
		}
		return parcel.P15.Insert(code, def.sub(i.I), uint64(i.J), uint64(i.K)), nil
	case Long:
		if err := checkFields(def, i.I, []uint8{i.J}, uint64(i.K)); err != nil {
			return 0, err
		}
		return parcel.P30.Insert(code, def.sub(i.I), uint64(i.J), uint64(i.K)), nil
	case Full:
		if err := checkFields(def, i.I, []uint8{i.J}, uint64(i.K), uint64(i.Rest)); err != nil {
			return 0, err
		}
		return parcel.P60.Insert(code, def.sub(i.I), uint64(i.J), uint64(i.K), uint64(i.Rest)), nil
	case Move:
		return 0, fmt.Errorf("encode %s: %w", def.name, fault.ErrUnresolved)
	}
	return 0, fmt.Errorf("encode %T: %w", inst, fault.ErrDecode)
}

// Pass instruction used to fill the rest of a word.
var pass = Short{Op: NO}

// EncodeWord packs instructions left to right into one word. A short
// word is filled out with NO.
func EncodeWord(insts ...Instruction) (uint64, error) {
	var raw uint64
	bitsLeft := uint(60)
	for _, inst := range insts {
		shift, ok := uint(0), false
		switch inst.Bits() {
		case word.W15:
			shift, ok = parcel.At15(bitsLeft)
		case word.W30:
			shift, ok = parcel.At30(bitsLeft)
		case word.W60:
			shift, ok = parcel.At60(bitsLeft)
		}
		if !ok {
			return 0, fmt.Errorf("%s does not fit in %d bits: %w", inst, bitsLeft, fault.ErrWidth)
		}
		p, err := Encode(inst)
		if err != nil {
			return 0, err
		}
		raw |= p << shift
		bitsLeft -= uint(inst.Bits())
	}
	for ; bitsLeft > 0; bitsLeft -= 15 {
		p, _ := Encode(pass)
		raw |= p << (bitsLeft - 15)
	}
	return raw, nil
}

// Disassemble every parcel of a word. A parcel that does not decode
// ends the list with its octal value.
func Disassemble(raw uint64) []string {
	insts, err := DecodeWord(raw)
	text := make([]string, 0, len(insts)+1)
	bitsLeft := uint(60)
	for _, inst := range insts {
		text = append(text, inst.String())
		bitsLeft -= uint(inst.Bits())
	}
	if err != nil {
		p, _ := parcel.Slice(raw, bitsLeft, word.W15)
		text = append(text, fmt.Sprintf("*** %05o", p))
	}
	return text
}
