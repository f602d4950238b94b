/*
 * Cyber - Peripheral processor core
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

// Package ppu holds the register file and operation helpers shared by
// the 12 bit and 16 bit peripheral processors.
//
// Instruction decoding lives with each processor family. The helpers
// here implement what the families have in common: the 18 bit
// accumulator, short branches, shifts, central memory transfers and
// channel access through the processor's barrel.
package ppu

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rcornwell/cyber/emu/address"
	"github.com/rcornwell/cyber/emu/fault"
	"github.com/rcornwell/cyber/emu/iou"
	"github.com/rcornwell/cyber/emu/memory"
	"github.com/rcornwell/cyber/emu/word"
)

// Debug options.
const (
	DebugInst = 1 << iota
	DebugIO
	DebugCM
)

var debugOption = map[string]int{
	"INST": DebugInst,
	"IO":   DebugIO,
	"CM":   DebugCM,
}

// Initial accumulator after deadstart.
const InitialA = 0o10000

// Arith selects how the accumulator adds.
type Arith int

const (
	OnesComplement Arith = iota // Cyber 170 subtractive adder.
	Binary                      // Cyber 180 adder.
)

// Config describes one peripheral processor.
type Config struct {
	Name     string
	Width    word.Width // Word width, 12 or 16.
	Size     int        // Words of PP memory.
	RWidth   word.Width // Relocation register width.
	Arith    Arith

	// Relocate forms a CM address when A bit 17 is set.
	Relocate func(r, a uint64) uint64
	CM       *memory.Memory
	IOU      *iou.IOU
	Barrel   int
}

// Core is the state of one peripheral processor.
type Core struct {
	Name   string
	Mem    *memory.Memory
	CM     *memory.Memory
	IOU    *iou.IOU
	Barrel int
	Width  word.Width

	A word.Register // Accumulator.
	P word.Register // Program address.
	Q word.Register
	K word.Register
	R word.Register // Relocation.

	arith    Arith
	relocate func(r, a uint64) uint64
	Debug    int
}

// New creates a processor with zeroed memory.
func New(cfg Config) *Core {
	p := &Core{
		Name:     cfg.Name,
		Mem:      memory.New(cfg.Size, cfg.Width, memory.Cyclic(), memory.AddressBits(cfg.Width)),
		CM:       cfg.CM,
		IOU:      cfg.IOU,
		Barrel:   cfg.Barrel,
		Width:    cfg.Width,
		A:        word.NewRegister(word.W18),
		P:        word.NewRegister(cfg.Width),
		Q:        word.NewRegister(cfg.Width),
		K:        word.NewRegister(cfg.Width),
		R:        word.NewRegister(cfg.RWidth),
		arith:    cfg.Arith,
		relocate: cfg.Relocate,
	}
	p.Reset()
	return p
}

// Reset puts registers in the deadstart state, memory is kept.
func (p *Core) Reset() {
	p.A.Set(InitialA)
	p.P.Set(0)
	p.Q.Set(0)
	p.K.Set(p.Width.Mask())
	p.R.Set(0)
}

// SetDebug enables a debug option.
func (p *Core) SetDebug(opt string) error {
	flag, ok := debugOption[strings.ToUpper(opt)]
	if !ok {
		return fmt.Errorf("PP debug option invalid: %s", opt)
	}
	p.Debug |= flag
	return nil
}

func (p *Core) registers() map[string]*word.Register {
	return map[string]*word.Register{
		"A": &p.A,
		"P": &p.P,
		"Q": &p.Q,
		"K": &p.K,
		"R": &p.R,
	}
}

// SetRegister deposits a value, rejecting values too wide.
func (p *Core) SetRegister(name string, value uint64) error {
	r, ok := p.registers()[strings.ToUpper(name)]
	if !ok {
		return fmt.Errorf("%s has no register %s", p.Name, name)
	}
	if err := r.Load(value); err != nil {
		return fmt.Errorf("%s register %s: %w", p.Name, name, err)
	}
	return nil
}

// Registers formats the register file.
func (p *Core) Registers() string {
	regs := p.registers()
	names := make([]string, 0, len(regs))
	for n := range regs {
		names = append(names, n)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString(p.Name)
	for _, n := range names {
		fmt.Fprintf(&b, " %s=%o", n, regs[n].Get())
	}
	return b.String()
}

// Read a word of PP memory, addresses wrap.
func (p *Core) Read(addr uint64) uint64 {
	return p.Mem.Fetch(addr)
}

// Write a word of PP memory, masked to the word width.
func (p *Core) Write(addr, value uint64) {
	// Cyclic memory can not fail.
	_ = p.Mem.Store(addr, value)
}

// EA resolves an address mode against PP memory.
func (p *Core) EA(mode address.Mode) uint64 {
	ea, _ := address.EffectiveAddress(mode, p.Mem)
	return uint64(ea)
}

// Operand returns the value an instruction works with: the immediate
// value, or the word at its effective address masked to mask.
func (p *Core) Operand(mode address.Mode, mask uint64) uint64 {
	if v, ok := address.Operand(mode); ok {
		return uint64(v)
	}
	return p.Read(p.EA(mode)) & mask
}

// Add to the accumulator.
func (p *Core) Add(v uint64) {
	if p.arith == OnesComplement {
		p.A.Set(word.OnesAdd(p.A.Get(), v, word.W18))
		return
	}
	p.A.Set(p.A.Get() + v)
}

// Subtract from the accumulator.
func (p *Core) Sub(v uint64) {
	if p.arith == OnesComplement {
		p.A.Set(word.OnesSub(p.A.Get(), v, word.W18))
		return
	}
	p.A.Set(p.A.Get() - v)
}

// Negative reports whether A bit 17 is set.
func (p *Core) Negative() bool {
	return p.A.Get()&word.W18.Sign() != 0
}

// Displacement of a short branch, d is a 6 bit one's complement value.
func Displacement(d uint8) int64 {
	d &= 0o77
	if d < 0o40 {
		return int64(d)
	}
	return -int64(0o77 - d)
}

// Branch moves P by the short branch displacement d.
func (p *Core) Branch(d uint8) {
	p.P.Set(uint64(int64(p.P.Get()) + Displacement(d)))
}

// Shift A: d below 40 rotates left d places, otherwise shifts right 77-d
// places end off.
func (p *Core) Shift(d uint8) {
	a := p.A.Get()
	d &= 0o77
	if d < 0o40 {
		n := uint(d) % 18
		p.A.Set(a<<n | a>>(18-n))
		return
	}
	p.A.Set(a >> uint(0o77-d))
}

// CMAddress forms the central memory address from A and R.
func (p *Core) CMAddress() uint64 {
	a := p.A.Get()
	low := a & 0x1FFFF
	if a&0x20000 == 0 || p.relocate == nil {
		return low
	}
	return p.relocate(p.R.Get(), low)
}

func (p *Core) needCM() error {
	if p.CM == nil {
		return fmt.Errorf("%s has no central memory: %w", p.Name, fault.ErrAddress)
	}
	return nil
}
