/*
 * Cyber - Cyber 170 peripheral processor
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

// Package pp170 is the 12 bit peripheral processor of the Cyber 170.
//
// Instructions are one or two 12 bit words. The accumulator is 18 bits
// and adds in one's complement. Central memory words are 60 bits and
// move to and from PP memory as five 12 bit words.
package pp170

import (
	"fmt"

	"github.com/rcornwell/cyber/emu/address"
	"github.com/rcornwell/cyber/emu/fault"
	"github.com/rcornwell/cyber/emu/iou"
	"github.com/rcornwell/cyber/emu/memory"
	"github.com/rcornwell/cyber/emu/ppu"
	"github.com/rcornwell/cyber/emu/step"
	"github.com/rcornwell/cyber/emu/word"
	Debug "github.com/rcornwell/cyber/util/debug"
)

// PP is one Cyber 170 peripheral processor.
type PP struct {
	*ppu.Core
	Index int // Position in the IOU, 0 to 19.
}

var _ step.Processor[Instruction] = (*PP)(nil)

// Relocate adds R to the low 17 bits of A.
func Relocate(r, a uint64) uint64 {
	return r + a
}

// New creates PP index attached to central memory cm and the I/O unit.
func New(index int, cm *memory.Memory, u *iou.IOU) (*PP, error) {
	rank := iou.Rank170(index)
	barrel, err := iou.Barrel170(rank)
	if err != nil {
		return nil, err
	}
	core := ppu.New(ppu.Config{
		Name:     fmt.Sprintf("PP%02o", rank),
		Width:    word.W12,
		Size:     memory.PP170Size,
		RWidth:   word.W28,
		Arith:    ppu.OnesComplement,
		Relocate: Relocate,
		CM:       cm,
		IOU:      u,
		Barrel:   barrel,
	})
	return &PP{Core: core, Index: index}, nil
}

func (p *PP) ID() string                     { return p.Name }
func (p *PP) PC() uint64                     { return p.P.Get() }
func (p *PP) SetPC(pc uint64)                { p.P.Set(pc) }
func (p *PP) Stride(inst Instruction) uint64 { return inst.Stride() }

func (p *PP) Decode(pc uint64) (Instruction, error) {
	return Decode(p.Mem, pc)
}

// Step runs one instruction.
func (p *PP) Step() error {
	return step.Run[Instruction](p)
}

// Disassemble the instruction at addr.
func (p *PP) Disassemble(addr uint64) (string, uint64) {
	return Disassemble(p.Mem, addr)
}

func (p *PP) operand(inst Instruction) uint64 {
	return p.Operand(inst.Mode(), word.W12.Mask())
}

// Rewrite the word at the effective address with A.
func (p *PP) replace(inst Instruction) {
	p.Write(p.EA(inst.Mode()), p.A.Get())
}

// Execute inst, true when P should advance past it.
func (p *PP) Execute(inst Instruction) (bool, error) {
	Debug.DebugProcf(p.Name, p.P.Get(), p.Debug, ppu.DebugInst, "%s A=%06o", inst, p.A.Get())
	switch inst.Opcode() {
	case PSN, KPT:
	case EXN, MXN, MAN:
		return false, fault.ErrNotImplemented

	case LDN, LDD, LDI, LDC, LDM:
		p.A.Set(p.operand(inst))
	case LCN:
		p.A.Set(0x3FFC0 | ^p.operand(inst))
	case STD, STI, STM:
		p.replace(inst)
	case ADN, ADD, ADI, ADC, ADM:
		p.Add(p.operand(inst))
	case SBN, SBD, SBI, SBM:
		p.Sub(p.operand(inst))
	case LMN, LMD, LMI, LMC, LMM:
		p.A.Set(p.A.Get() ^ p.operand(inst))
	case LPN, LPC:
		p.A.Set(p.A.Get() & p.operand(inst))
	case SCN:
		p.A.Set(p.A.Get() &^ p.operand(inst))
	case SHN:
		p.Shift(inst.(Short).D)

	case RAD, RAI, RAM:
		p.Add(p.operand(inst))
		p.replace(inst)
	case AOD, AOI, AOM:
		p.A.Set(p.operand(inst))
		p.Add(1)
		p.replace(inst)
	case SOD, SOI, SOM:
		p.A.Set(p.operand(inst))
		p.Sub(1)
		p.replace(inst)

	case LRD:
		if d := uint64(inst.(Short).D); d != 0 {
			p.R.Set((p.Read(d)&0x3FF)<<18 | (p.Read(d+1)&0xFFF)<<6)
		}
	case SRD:
		if d := uint64(inst.(Short).D); d != 0 {
			r := p.R.Get()
			p.Write(d, (r>>18)&0x3FF)
			p.Write(d+1, (r>>6)&0xFFF)
		}

	case UJN, ZJN, NJN, PJN, MJN:
		return p.branch(inst.Opcode(), inst.(Short).D), nil
	case LJM:
		p.P.Set(p.EA(inst.Mode()))
		return false, nil
	case RJM:
		ea := p.EA(inst.Mode())
		p.Write(ea, p.P.Get()+2)
		p.P.Set(ea + 1)
		return false, nil

	case CRD:
		return true, p.ReadCM(uint64(inst.(Short).D), 1, 5, word.W12)
	case CWD:
		return true, p.WriteCM(uint64(inst.(Short).D), 1, 5, word.W12)
	case CRM, CWM:
		l := inst.(Long)
		count := int(p.Read(uint64(l.D)))
		if l.Op == CRM {
			return true, p.ReadCM(uint64(l.M), count, 5, word.W12)
		}
		return true, p.WriteCM(uint64(l.M), count, 5, word.W12)

	default:
		return p.channelOp(inst)
	}
	return true, nil
}

// Short branch, returns true when not taken.
func (p *PP) branch(op Op, d uint8) bool {
	var take bool
	switch op {
	case UJN:
		take = true
	case ZJN:
		take = p.A.Get() == 0
	case NJN:
		take = p.A.Get() != 0
	case PJN:
		take = !p.Negative()
	case MJN:
		take = p.Negative()
	}
	if !take {
		return true
	}
	p.Branch(d)
	return false
}

var jumpTest = map[Op]ppu.Test{
	AJM: ppu.IfActive,
	IJM: ppu.IfInactive,
	FJM: ppu.IfFull,
	EJM: ppu.IfEmpty,
	SCF: ppu.SetFlag,
	CCF: ppu.ClearFlag,
	SFM: ppu.ErrorSet,
	CFM: ppu.ErrorClear,
}

// Channel instructions. Bit 40 of d selects the form that does not wait.
func (p *PP) channelOp(inst Instruction) (bool, error) {
	op := inst.Opcode()
	if test, ok := jumpTest[op]; ok {
		l := inst.(Long)
		return p.JumpIf(l.D&0o37, test, uint64(l.M))
	}
	switch mode := inst.Mode().(type) {
	case address.Channel:
		c, wait := mode.C(), !mode.S()
		switch op {
		case IAN:
			return p.InputA(c, wait)
		case OAN:
			return p.OutputA(c, wait)
		case ACN:
			return p.Activate(c, wait)
		case DCN:
			return p.Deactivate(c, wait)
		case FAN:
			return p.Function(c, p.A.Get(), wait)
		}
	case address.ChannelJump:
		c, wait, m := mode.C(), !mode.S(), uint64(mode.M)
		switch op {
		case IAM:
			return p.InputBlock(c, m, wait)
		case OAM:
			return p.OutputBlock(c, m, wait)
		case FNC:
			return p.Function(c, m, wait)
		}
	}
	return false, fmt.Errorf("%s: %w", inst, fault.ErrNotImplemented)
}
