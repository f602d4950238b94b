/*
 * Cyber - Cyber 170 central processor
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

// Package cp170 is the 60 bit central processor of the Cyber 170.
//
// The program counter counts 15 bit parcels, four to a word, so a
// stride is 1, 2 or 4 and a jump to word K sets it to K*4. Central
// memory references are relative to RA and checked against FL.
package cp170

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"

	"github.com/rcornwell/cyber/emu/fault"
	"github.com/rcornwell/cyber/emu/memory"
	"github.com/rcornwell/cyber/emu/parcel"
	"github.com/rcornwell/cyber/emu/step"
	"github.com/rcornwell/cyber/emu/word"
	Debug "github.com/rcornwell/cyber/util/debug"
)

// Debug options.
const (
	DebugInst = 1 << iota
	DebugTrace
	DebugExchange
)

var debugOption = map[string]int{
	"INST":  DebugInst,
	"TRACE": DebugTrace,
	"XJ":    DebugExchange,
}

// CP is one Cyber 170 central processor.
type CP struct {
	Name string
	CM   *memory.Memory

	X [8]word.Register // Operand registers.
	A [8]word.Register // Address registers.
	B [8]word.Register // Index registers, B0 is always zero.

	P      word.Register // Word address of the current instruction.
	parcel uint64

	RA    word.Register // Reference address.
	FL    word.Register // Field length.
	EM    word.Register // Exit mode.
	Flags word.Register
	RAE   word.Register // Extended memory reference address.
	FLE   word.Register // Extended memory field length.
	MA    word.Register // Monitor address.

	Monitor bool
	Debug   int
}

var _ step.Processor[Instruction] = (*CP)(nil)

// New creates central processor n on cm.
func New(n int, cm *memory.Memory) *CP {
	c := &CP{
		Name:  fmt.Sprintf("CP%d", n),
		CM:    cm,
		P:     word.NewRegister(word.W18),
		RA:    word.NewRegister(word.W21),
		FL:    word.NewRegister(word.W21),
		EM:    word.NewRegister(word.W6),
		Flags: word.NewRegister(word.W6),
		RAE:   word.NewRegister(word.W21),
		FLE:   word.NewRegister(word.W21),
		MA:    word.NewRegister(word.W18),
	}
	for i := range 8 {
		c.X[i] = word.NewRegister(word.W60)
		c.A[i] = word.NewRegister(word.W18)
		c.B[i] = word.NewRegister(word.W18)
	}
	c.Reset()
	return c
}

// Reset clears the registers. The field length covers all of memory.
func (c *CP) Reset() {
	for i := range 8 {
		c.X[i].Set(0)
		c.A[i].Set(0)
		c.B[i].Set(0)
	}
	for _, r := range []*word.Register{&c.P, &c.RA, &c.EM, &c.Flags, &c.RAE, &c.FLE, &c.MA} {
		r.Set(0)
	}
	c.parcel = 0
	c.FL.Set(min(uint64(c.CM.Size()), word.W21.Mask()))
	c.Monitor = false
}

// SetDebug enables a debug option.
func (c *CP) SetDebug(opt string) error {
	flag, ok := debugOption[strings.ToUpper(opt)]
	if !ok {
		return fmt.Errorf("CPU debug option invalid: %s", opt)
	}
	c.Debug |= flag
	return nil
}

func (c *CP) registers() map[string]*word.Register {
	regs := map[string]*word.Register{
		"P":     &c.P,
		"RA":    &c.RA,
		"FL":    &c.FL,
		"EM":    &c.EM,
		"FLAGS": &c.Flags,
		"RAE":   &c.RAE,
		"FLE":   &c.FLE,
		"MA":    &c.MA,
	}
	for i := range 8 {
		regs[fmt.Sprintf("X%d", i)] = &c.X[i]
		regs[fmt.Sprintf("A%d", i)] = &c.A[i]
		if i != 0 {
			regs[fmt.Sprintf("B%d", i)] = &c.B[i]
		}
	}
	return regs
}

// SetRegister deposits a value, rejecting values too wide. Setting P
// starts at the first parcel of the word.
func (c *CP) SetRegister(name string, value uint64) error {
	r, ok := c.registers()[strings.ToUpper(name)]
	if !ok {
		return fmt.Errorf("%s has no register %s", c.Name, name)
	}
	if err := r.Load(value); err != nil {
		return fmt.Errorf("%s register %s: %w", c.Name, name, err)
	}
	if r == &c.P {
		c.parcel = 0
	}
	return nil
}

// Registers formats the register file.
func (c *CP) Registers() string {
	regs := c.registers()
	names := make([]string, 0, len(regs))
	for n := range regs {
		names = append(names, n)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString(c.Name)
	for _, n := range names {
		fmt.Fprintf(&b, " %s=%o", n, regs[n].Get())
	}
	return b.String()
}

func (c *CP) ID() string                     { return c.Name }
func (c *CP) PC() uint64                     { return c.P.Get()*4 + c.parcel }
func (c *CP) Stride(inst Instruction) uint64 { return uint64(inst.Bits() / 15) }

func (c *CP) SetPC(pc uint64) {
	c.P.Set(pc / 4)
	c.parcel = pc % 4
}

// Absolute address of relative address rel.
func (c *CP) address(rel uint64) (uint64, error) {
	if rel >= c.FL.Get() {
		return 0, fmt.Errorf("%s address %o outside FL %o: %w", c.Name, rel, c.FL.Get(), fault.ErrAddress)
	}
	return c.RA.Get() + rel, nil
}

// Read a word of the program's field.
func (c *CP) Read(rel uint64) (uint64, error) {
	addr, err := c.address(rel)
	if err != nil {
		return 0, err
	}
	return c.CM.Read(addr)
}

// Write a word of the program's field.
func (c *CP) Write(rel, value uint64) error {
	addr, err := c.address(rel)
	if err != nil {
		return err
	}
	return c.CM.Write(addr, value&word.W60.Mask())
}

func (c *CP) Decode(pc uint64) (Instruction, error) {
	raw, err := c.Read(pc / 4)
	if err != nil {
		return nil, err
	}
	return Decode(raw, uint(60-15*(pc%4)))
}

// Step runs one instruction.
func (c *CP) Step() error {
	return step.Run[Instruction](c)
}

// Disassemble the word at relative address rel.
func (c *CP) Disassemble(rel uint64) ([]string, error) {
	raw, err := c.Read(rel)
	if err != nil {
		return nil, err
	}
	return Disassemble(raw), nil
}

func (c *CP) b(n uint8) uint64 {
	if n == 0 {
		return 0
	}
	return c.B[n&7].Get()
}

func (c *CP) x(n uint8) uint64 { return c.X[n&7].Get() }
func (c *CP) a(n uint8) uint64 { return c.A[n&7].Get() }

// Jump to word k, the rest of the current word is not executed.
func (c *CP) jump(k uint64) bool {
	c.SetPC(word.W18.Trunc(k) * 4)
	return false
}

// Execute inst, true when the program counter should advance.
func (c *CP) Execute(inst Instruction) (bool, error) {
	Debug.DebugProcf(c.Name, c.PC(), c.Debug, DebugInst, "%s", inst)
	advance, err := c.execute(inst)
	Debug.DebugProcf(c.Name, c.PC(), c.Debug, DebugTrace, "%s", c.Registers())
	return advance, err
}

func (c *CP) execute(inst Instruction) (bool, error) {
	switch i := inst.(type) {
	case Short:
		return true, c.short(i)
	case Long:
		return c.long(i)
	case Full:
		if i.Op == XJ {
			return false, c.exchange(word.OnesAdd(c.b(i.J), uint64(i.K), word.W18))
		}
		return false, fault.ErrNotImplemented
	case Move:
		return false, fault.ErrUnresolved
	}
	return false, fault.ErrDecode
}

func (c *CP) short(s Short) error {
	m := word.W60.Mask()
	xj, xk := c.x(s.J), c.x(s.K)
	jk := uint(s.J)<<3 | uint(s.K)
	if inc, ok := increments[s.Op]; ok {
		return c.set(inc.target, s.I, c.source(inc.src, s.J, s.K, 0))
	}
	switch s.Op {
	case NO:
		return nil
	case BXMove:
		c.X[s.I].Set(xj)
	case BXAnd:
		c.X[s.I].Set(xj & xk)
	case BXOr:
		c.X[s.I].Set(xj | xk)
	case BXXor:
		c.X[s.I].Set(xj ^ xk)
	case BXNot:
		c.X[s.I].Set(^xk & m)
	case BXAndNot:
		c.X[s.I].Set(^xk & xj)
	case BXOrNot:
		c.X[s.I].Set((^xk | xj) & m)
	case BXXorNot:
		c.X[s.I].Set((^xk ^ xj) & m)
	case LXJK:
		c.X[s.I].Set(rotate(c.x(s.I), jk))
	case AXJK:
		c.X[s.I].Set(shiftRight(c.x(s.I), jk))
	case LXB:
		n := word.OnesExtend(c.b(s.J), word.W18)
		if n < 0 {
			c.X[s.I].Set(shiftRight(xk, uint(-n)))
		} else {
			c.X[s.I].Set(rotate(xk, uint(n)&0o77))
		}
	case AXB:
		n := word.OnesExtend(c.b(s.J), word.W18)
		if n < 0 {
			c.X[s.I].Set(rotate(xk, uint(-n)&0o77))
		} else {
			c.X[s.I].Set(shiftRight(xk, uint(n)))
		}
	case MX:
		c.X[s.I].Set(m &^ (m >> min(jk, 60)))
	case CX:
		c.X[s.I].Set(uint64(bits.OnesCount64(xk)))
	case IXAdd:
		c.X[s.I].Set(word.OnesAdd(xj, xk, word.W60))
	case IXSub:
		c.X[s.I].Set(word.OnesSub(xj, xk, word.W60))
	default:
		return fault.ErrNotImplemented
	}
	return nil
}

// Circular left shift of a 60 bit word.
func rotate(v uint64, n uint) uint64 {
	n %= 60
	return (v<<n | v>>(60-n)) & word.W60.Mask()
}

// End off right shift, filling with the sign.
func shiftRight(v uint64, n uint) uint64 {
	n = min(n, 63)
	return uint64(word.SignExtend(v, word.W60)>>n) & word.W60.Mask()
}

// Operand of an increment instruction, 18 bits one's complement.
func (c *CP) source(src operand, j, k uint8, bigK uint32) uint64 {
	K := uint64(bigK)
	switch src {
	case srcAK:
		return word.OnesAdd(c.a(j), K, word.W18)
	case srcBK:
		return word.OnesAdd(c.b(j), K, word.W18)
	case srcXK:
		return word.OnesAdd(c.x(j), K, word.W18)
	case srcXB:
		return word.OnesAdd(c.x(j), c.b(k), word.W18)
	case srcAB:
		return word.OnesAdd(c.a(j), c.b(k), word.W18)
	case srcAmB:
		return word.OnesSub(c.a(j), c.b(k), word.W18)
	case srcBB:
		return word.OnesAdd(c.b(j), c.b(k), word.W18)
	}
	return word.OnesSub(c.b(j), c.b(k), word.W18)
}

// Set a register from an increment. Setting A1 to A5 reads the word at
// that address into the matching X, A6 and A7 store their X.
func (c *CP) set(target setTarget, i uint8, v uint64) error {
	switch target {
	case setB:
		if i != 0 {
			c.B[i].Set(v)
		}
	case setX:
		if v&word.W18.Sign() != 0 {
			v |= word.W60.Mask() &^ word.W18.Mask()
		}
		c.X[i].Set(v)
	case setA:
		// A and X change only once the memory reference succeeds.
		addr := c.A[i].Width().Trunc(v)
		switch {
		case i >= 1 && i <= 5:
			data, err := c.Read(addr)
			if err != nil {
				return err
			}
			c.X[i].Set(data)
		case i >= 6:
			if err := c.Write(addr, c.x(i)); err != nil {
				return err
			}
		}
		c.A[i].Set(addr)
	}
	return nil
}

func (c *CP) long(l Long) (bool, error) {
	xj := c.x(l.J)
	K := uint64(l.K)
	if inc, ok := increments[l.Op]; ok {
		return true, c.set(inc.target, l.I, c.source(inc.src, l.J, 0, l.K))
	}
	var take bool
	switch l.Op {
	case PS:
		return false, fault.ErrHalt
	case RE, WE:
		return false, fault.ErrNotImplemented
	case RJ:
		link := parcel.P30.Insert(uint64(EQ.code()), 0, 0, c.P.Get()+1) << 30
		if err := c.Write(K, link); err != nil {
			return false, err
		}
		return c.jump(K + 1), nil
	case JP:
		return c.jump(word.OnesAdd(c.b(l.I), K, word.W18)), nil

	case ZR:
		take = xj == 0 || xj == word.W60.Mask()
	case NZ:
		take = xj != 0 && xj != word.W60.Mask()
	case PL:
		take = xj&word.W60.Sign() == 0
	case NG:
		take = xj&word.W60.Sign() != 0
	case IR:
		take = !infinite(xj)
	case OR:
		take = infinite(xj)
	case DF:
		take = !indefinite(xj)
	case ID:
		take = indefinite(xj)
	case EQ:
		take = c.compare(l.I, l.J) == 0
	case NE:
		take = c.compare(l.I, l.J) != 0
	case GE:
		take = c.compare(l.I, l.J) >= 0
	case LT:
		take = c.compare(l.I, l.J) < 0
	default:
		return false, fault.ErrNotImplemented
	}
	if take {
		return c.jump(K), nil
	}
	return true, nil
}

func (op Op) code() uint8 {
	return opInfo[op].code
}

// Compare Bi with Bj as 18 bit one's complement numbers.
func (c *CP) compare(i, j uint8) int64 {
	return word.OnesExtend(c.b(i), word.W18) - word.OnesExtend(c.b(j), word.W18)
}

// Floating point exponents 3777 and 4000 are infinite, 1777 and 6000
// indefinite.
func infinite(v uint64) bool {
	e := v >> 48 & 0o7777
	return e == 0o3777 || e == 0o4000
}

func indefinite(v uint64) bool {
	e := v >> 48 & 0o7777
	return e == 0o1777 || e == 0o6000
}
