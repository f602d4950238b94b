/*
 * Cyber - Cyber 962 peripheral processor
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

// Package pp962 is the 16 bit peripheral processor of the Cyber 962.
package pp962

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

// PP is one Cyber 962 peripheral processor.
type PP struct {
	*ppu.Core
	Index int
}

var _ step.Processor[Instruction] = (*PP)(nil)

// Relocate forms a 28 bit CM word address from R and A.
func Relocate(r, a uint64) uint64 {
	return ((r << 4) + a) & 0x0FFFFFFF
}

// New creates PP index attached to central memory cm and the I/O unit.
func New(index int, cm *memory.Memory, u *iou.IOU) *PP {
	core := ppu.New(ppu.Config{
		Name:     fmt.Sprintf("PP%02o", index),
		Width:    word.W16,
		Size:     memory.PP962Size,
		RWidth:   word.W32,
		Arith:    ppu.Binary,
		Relocate: Relocate,
		CM:       cm,
		IOU:      u,
		Barrel:   iou.Barrel962(index),
	})
	p := &PP{Core: core, Index: index}
	p.Reset()
	return p
}

// Reset to the deadstart state, execution starts at 1.
func (p *PP) Reset() {
	p.Core.Reset()
	p.P.Set(1)
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

// Operand width of an instruction, L forms use the whole word.
func mask(op Op) uint64 {
	if opInfo[op].wide {
		return word.W16.Mask()
	}
	return word.W12.Mask()
}

func (p *PP) operand(inst Instruction) uint64 {
	return p.Operand(inst.Mode(), mask(inst.Opcode()))
}

func (p *PP) store(inst Instruction) {
	p.Write(p.EA(inst.Mode()), p.A.Get()&mask(inst.Opcode()))
}

// Execute inst, true when P should advance past it.
func (p *PP) Execute(inst Instruction) (bool, error) {
	Debug.DebugProcf(p.Name, p.P.Get(), p.Debug, ppu.DebugInst, "%s A=%06o", inst, p.A.Get())
	op := inst.Opcode()
	switch op {
	case PSN, KEYP:
	case EXN, MXN, MAN, INPN, SHDL, WAIT, LRDL, LRIL, SRDL, SRIL, IAPM, OAPM, CHCM, CMCH:
		return false, fault.ErrNotImplemented

	case LDN, LDC, LDD, LDDL, LDI, LDIL, LDM, LDML:
		p.A.Set(p.operand(inst))
	case LCN:
		p.A.Set(0x3FFC0 | ^p.operand(inst))
	case STD, STDL, STI, STIL, STM, STML:
		p.store(inst)
	case ADN, ADC, ADD, ADDL, ADI, ADIL, ADM, ADML:
		p.Add(p.operand(inst))
	case SBN, SBD, SBDL, SBI, SBIL, SBM, SBML:
		p.Sub(p.operand(inst))
	case LMN, LMC, LMD, LMDL, LMI, LMIL, LMM, LMML:
		p.A.Set(p.A.Get() ^ p.operand(inst))
	case LPN, LPC, LPDL, LPIL, LPML:
		p.A.Set(p.A.Get() & p.operand(inst))
	case SCN:
		p.A.Set(p.A.Get() &^ p.operand(inst))
	case SHN:
		p.Shift(inst.(Short).D)

	case RAD, RADL, RAI, RAIL, RAM, RAML:
		p.Add(p.operand(inst))
		p.store(inst)
	case AOD, AODL, AOI, AOIL, AOM, AOML:
		p.A.Set(p.operand(inst) + 1)
		p.store(inst)
	case SOD, SODL, SOI, SOIL, SOM, SOML:
		p.A.Set(p.operand(inst))
		p.Sub(1)
		p.store(inst)

	case LRD:
		if d := uint64(inst.(Short).D); d != 0 {
			p.R.Set((p.Read(d+1)&0x7FF)<<18 | (p.Read(d)&0x3FF)<<6)
		}
	case SRD:
		if d := uint64(inst.(Short).D); d != 0 {
			r := p.R.Get()
			p.Write(d, (r>>6)&0x3FF)
			p.Write(d+1, (r>>18)&0x7FF)
		}

	case UJN, ZJN, NJN, PJN, MJN:
		return p.branch(op, inst.(Short).D), nil
	case LJM:
		p.P.Set(p.EA(inst.Mode()))
		return false, nil
	case RJM:
		ea := p.EA(inst.Mode())
		p.Write(ea, p.P.Get()+2)
		p.P.Set(ea + 1)
		return false, nil

	case CRD, CRDL, CWD, CWDL:
		return true, p.centralWord(op, uint64(inst.(Short).D))
	case CRM, CRML, CWM, CWML:
		l := inst.(Long)
		count := int(p.Read(uint64(l.D)) & mask(op))
		return true, p.centralBlock(op, uint64(l.M), count)
	case RDSL:
		return true, p.ReadLock(uint64(inst.(Short).D), ppu.LockSet)
	case RDCL:
		return true, p.ReadLock(uint64(inst.(Short).D), ppu.LockClear)

	default:
		return p.channelOp(inst)
	}
	return true, nil
}

func (p *PP) centralWord(op Op, addr uint64) error {
	switch op {
	case CRD:
		return p.ReadCM(addr, 1, 5, word.W12)
	case CRDL:
		return p.ReadCM(addr, 1, 4, word.W16)
	case CWD:
		return p.WriteCM(addr, 1, 5, word.W12)
	}
	return p.WriteCM(addr, 1, 4, word.W16)
}

func (p *PP) centralBlock(op Op, addr uint64, count int) error {
	switch op {
	case CRM:
		return p.ReadCM(addr, count, 5, word.W12)
	case CRML:
		return p.ReadCM(addr, count, 4, word.W16)
	case CWM:
		return p.WriteCM(addr, count, 5, word.W12)
	}
	return p.WriteCM(addr, count, 4, word.W16)
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
	AJM:  ppu.IfActive,
	IJM:  ppu.IfInactive,
	FJM:  ppu.IfFull,
	EJM:  ppu.IfEmpty,
	SCF:  ppu.SetFlag,
	CCF:  ppu.ClearFlag,
	SFM:  ppu.ErrorSet,
	CFM:  ppu.ErrorClear,
	FSJM: ppu.FlagSet,
	FCJM: ppu.FlagClear,
}

// Channel instructions, s clear is the wait form.
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
		case MCLR:
			ch, err := p.Channel(c)
			if err != nil {
				return false, err
			}
			ch.MasterClear()
			return true, nil
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
