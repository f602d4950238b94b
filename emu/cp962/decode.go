/*
 * Cyber - Cyber 180 central processor decoder
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

package cp962

import (
	"fmt"
	"strings"

	"github.com/rcornwell/cyber/emu/fault"
	"github.com/rcornwell/cyber/emu/parcel"
)

// Instruction is a decoded instruction, one of JK, JKID, JKQ or SJKID.
type Instruction interface {
	fmt.Stringer
	Opcode() Op
	Size() uint64
	isInstruction()
}

// JK is a 16 bit instruction.
type JK struct {
	Op   Op
	J, K uint8
}

// JKID is a 32 bit instruction with index register i and
// displacement D.
type JKID struct {
	Op      Op
	J, K, I uint8
	D       uint16
}

// JKQ is a 32 bit instruction with a 16 bit Q field.
type JKQ struct {
	Op   Op
	J, K uint8
	Q    uint16
}

// SJKID is a 32 bit instruction whose opcode byte carries S in its
// low four bits.
type SJKID struct {
	Op         Op
	S, J, K, I uint8
	D          uint16
}

func (JK) isInstruction()    {}
func (JKID) isInstruction()  {}
func (JKQ) isInstruction()   {}
func (SJKID) isInstruction() {}

func (i JK) Opcode() Op    { return i.Op }
func (i JKID) Opcode() Op  { return i.Op }
func (i JKQ) Opcode() Op   { return i.Op }
func (i SJKID) Opcode() Op { return i.Op }

func (JK) Size() uint64    { return 2 }
func (JKID) Size() uint64  { return 4 }
func (JKQ) Size() uint64   { return 4 }
func (SJKID) Size() uint64 { return 4 }

// Count is the byte count of LBYTS and SBYTS.
func (i SJKID) Count() int {
	return int(i.S&7) + 1
}

var defaultText = [...]string{
	formJK:    "{op} {j},{k}",
	formJKID:  "{op} {j},{k},{i},{D}",
	formJKQ:   "{op} {j},{k},{Q}",
	formSJKID: "{op},{S} {j},{k},{i},{D}",
}

type fields struct {
	s, j, k, i uint8
	d, q       uint16
}

func render(op Op, f fields) string {
	def := opInfo[op]
	text := def.text
	if text == "" {
		text = defaultText[op.format()]
	}
	r := strings.NewReplacer(
		"{op}", def.name,
		"{jkQ}", fmt.Sprintf("%06X", uint32(f.j)<<20|uint32(f.k)<<16|uint32(f.q)),
		"{jk}", fmt.Sprintf("%02X", f.j<<4|f.k),
		"{j}", fmt.Sprintf("%X", f.j),
		"{k}", fmt.Sprintf("%X", f.k),
		"{i}", fmt.Sprintf("%X", f.i),
		"{D}", fmt.Sprintf("%03X", f.d),
		"{Q}", fmt.Sprintf("%04X", f.q),
		"{S}", fmt.Sprintf("%X", f.s),
		"{n}", fmt.Sprintf("%d", f.s&7+1),
	)
	return r.Replace(text)
}

func (i JK) String() string   { return render(i.Op, fields{j: i.J, k: i.K}) }
func (i JKID) String() string { return render(i.Op, fields{j: i.J, k: i.K, i: i.I, d: i.D}) }
func (i JKQ) String() string  { return render(i.Op, fields{j: i.J, k: i.K, q: i.Q}) }

func (i SJKID) String() string {
	return render(i.Op, fields{s: i.S, j: i.J, k: i.K, i: i.I, d: i.D})
}

// Decode an instruction from raw, which holds four bytes from the
// instruction address. A 16 bit instruction is in the upper half.
func Decode(raw uint32) (Instruction, error) {
	code := uint8(raw >> 24)
	def := byCode[code]
	if def == nil {
		return nil, fmt.Errorf("opcode %02X: %w", code, fault.ErrDecode)
	}
	switch formatOf(code) {
	case formJK:
		f := parcel.JK.Extract(uint64(raw >> 16))
		return JK{Op: def.op, J: uint8(f[1]), K: uint8(f[2])}, nil
	case formJKQ:
		f := parcel.JKQ.Extract(uint64(raw))
		return JKQ{Op: def.op, J: uint8(f[1]), K: uint8(f[2]), Q: uint16(f[3])}, nil
	case formSJKID:
		f := parcel.SJKID.Extract(uint64(raw))
		return SJKID{Op: def.op, S: uint8(f[1]), J: uint8(f[2]), K: uint8(f[3]),
			I: uint8(f[4]), D: uint16(f[5])}, nil
	}
	f := parcel.JKID.Extract(uint64(raw))
	return JKID{Op: def.op, J: uint8(f[1]), K: uint8(f[2]), I: uint8(f[3]), D: uint16(f[4])}, nil
}

func checkRegs(op Op, regs ...uint8) error {
	for _, r := range regs {
		if r > 0xf {
			return fmt.Errorf("encode %s register %d: %w", op, r, fault.ErrWidth)
		}
	}
	return nil
}

// Encode the instruction as bytes in memory order.
func Encode(inst Instruction) ([]byte, error) {
	op := inst.Opcode()
	if op < 0 || op >= numOps {
		return nil, fmt.Errorf("encode op %d: %w", op, fault.ErrDecode)
	}
	def := opInfo[op]
	if shapeFormat(inst) != op.format() {
		return nil, fmt.Errorf("encode %s as %T: %w", op, inst, fault.ErrWidth)
	}
	var raw uint64
	switch i := inst.(type) {
	case JK:
		if err := checkRegs(op, i.J, i.K); err != nil {
			return nil, err
		}
		raw = parcel.JK.Insert(uint64(def.code), uint64(i.J), uint64(i.K))
		return []byte{byte(raw >> 8), byte(raw)}, nil
	case JKID:
		if err := checkRegs(op, i.J, i.K, i.I); err != nil {
			return nil, err
		}
		if i.D > 0xfff {
			return nil, fmt.Errorf("encode %s D=%X: %w", op, i.D, fault.ErrWidth)
		}
		raw = parcel.JKID.Insert(uint64(def.code), uint64(i.J), uint64(i.K), uint64(i.I), uint64(i.D))
	case JKQ:
		if err := checkRegs(op, i.J, i.K); err != nil {
			return nil, err
		}
		raw = parcel.JKQ.Insert(uint64(def.code), uint64(i.J), uint64(i.K), uint64(i.Q))
	case SJKID:
		if err := checkRegs(op, i.S, i.J, i.K, i.I); err != nil {
			return nil, err
		}
		code := def.code&0xf0 | i.S
		if code < def.code || code > def.last || i.D > 0xfff {
			return nil, fmt.Errorf("encode %s S=%X D=%X: %w", op, i.S, i.D, fault.ErrWidth)
		}
		raw = parcel.SJKID.Insert(uint64(code>>4), uint64(i.S), uint64(i.J), uint64(i.K),
			uint64(i.I), uint64(i.D))
	}
	return []byte{byte(raw >> 24), byte(raw >> 16), byte(raw >> 8), byte(raw)}, nil
}

func shapeFormat(inst Instruction) format {
	switch inst.(type) {
	case JKID:
		return formJKID
	case JKQ:
		return formJKQ
	case SJKID:
		return formSJKID
	}
	return formJK
}

// Assemble encodes a sequence of instructions back to back.
func Assemble(insts ...Instruction) ([]byte, error) {
	var out []byte
	for _, inst := range insts {
		b, err := Encode(inst)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}
