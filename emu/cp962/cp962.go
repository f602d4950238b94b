/*
 * Cyber - Cyber 180 central processor
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

// Package cp962 is the 64 bit central processor of the Cyber 962.
//
// Memory is byte addressed with bytes numbered from the most
// significant end of each word. The program counter is a 48 bit
// process virtual address and steps 2 or 4 bytes. Segments are not
// translated, the low 32 bits of an address select the byte.
package cp962

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rcornwell/cyber/emu/fault"
	"github.com/rcornwell/cyber/emu/memory"
	"github.com/rcornwell/cyber/emu/step"
	"github.com/rcornwell/cyber/emu/word"
	Debug "github.com/rcornwell/cyber/util/debug"
)

// Debug options.
const (
	DebugInst = 1 << iota
	DebugTrace
	DebugTimer
)

var debugOption = map[string]int{
	"INST":  DebugInst,
	"TRACE": DebugTrace,
	"SIT":   DebugTimer,
}

const (
	segMask  = 0xffff_0000_0000 // Ring and segment of a process address.
	byteMask = 0xffff_ffff
)

// CP is one Cyber 962 central processor.
type CP struct {
	Name string
	CM   *memory.Memory

	X [16]word.Register // Data registers.
	A [16]word.Register // Address registers.
	P word.Register     // Address of the current instruction.

	MPS  word.Register // Monitor process state.
	JPS  word.Register // Job process state.
	PTA  word.Register // Page table address.
	PTL  word.Register // Page table length.
	PSM  word.Register // Page size mask.
	EID  word.Register // Element id.
	PID  word.Register // Processor id.
	OI   word.Register // Options installed.
	SIT  word.Register // System interval timer, microseconds.
	VMCL word.Register // Virtual machine capability list.

	SITExpired bool
	Debug      int
}

var _ step.Processor[Instruction] = (*CP)(nil)

// New creates central processor n on cm, which must have 64 bit words.
func New(n int, cm *memory.Memory) *CP {
	c := &CP{
		Name: fmt.Sprintf("CP%d", n),
		CM:   cm,
		P:    word.NewRegister(word.W48),
		MPS:  word.NewRegister(word.W32),
		JPS:  word.NewRegister(word.W32),
		PTA:  word.NewRegister(word.W32),
		PTL:  word.NewRegister(word.W32),
		PSM:  word.NewRegister(word.W32),
		EID:  word.NewRegister(word.W32),
		PID:  word.NewRegister(word.W32),
		OI:   word.NewRegister(word.W64),
		SIT:  word.NewRegister(word.W32),
		VMCL: word.NewRegister(word.W16),
	}
	for i := range 16 {
		c.X[i] = word.NewRegister(word.W64)
		c.A[i] = word.NewRegister(word.W48)
	}
	c.Reset()
	c.PID.Set(uint64(n))
	return c
}

// Reset clears the registers except the processor id.
func (c *CP) Reset() {
	for i := range 16 {
		c.X[i].Set(0)
		c.A[i].Set(0)
	}
	for _, r := range []*word.Register{&c.P, &c.MPS, &c.JPS, &c.PTA, &c.PTL, &c.PSM,
		&c.EID, &c.OI, &c.SIT, &c.VMCL} {
		r.Set(0)
	}
	c.SITExpired = false
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
		"P":    &c.P,
		"MPS":  &c.MPS,
		"JPS":  &c.JPS,
		"PTA":  &c.PTA,
		"PTL":  &c.PTL,
		"PSM":  &c.PSM,
		"EID":  &c.EID,
		"PID":  &c.PID,
		"OI":   &c.OI,
		"SIT":  &c.SIT,
		"VMCL": &c.VMCL,
	}
	for i := range 16 {
		regs[fmt.Sprintf("X%X", i)] = &c.X[i]
		regs[fmt.Sprintf("A%X", i)] = &c.A[i]
	}
	return regs
}

// SetRegister deposits a value, rejecting values too wide.
func (c *CP) SetRegister(name string, value uint64) error {
	r, ok := c.registers()[strings.ToUpper(name)]
	if !ok {
		return fmt.Errorf("%s has no register %s", c.Name, name)
	}
	if err := r.Load(value); err != nil {
		return fmt.Errorf("%s register %s: %w", c.Name, name, err)
	}
	if r == &c.SIT {
		c.SITExpired = false
	}
	return nil
}

// Registers formats the register file in hexadecimal.
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
		fmt.Fprintf(&b, " %s=%X", n, regs[n].Get())
	}
	return b.String()
}

// TimeClock counts the interval timer down by elapsed microseconds.
// Reaching zero sets SITExpired, a stopped timer stays at zero.
func (c *CP) TimeClock(elapsed uint64) {
	sit := c.SIT.Get()
	if sit == 0 {
		return
	}
	if elapsed >= sit {
		c.SIT.Set(0)
		c.SITExpired = true
		Debug.Debugf(c.Name, c.Debug, DebugTimer, "interval timer expired")
		return
	}
	c.SIT.Set(sit - elapsed)
}

func (c *CP) ID() string                     { return c.Name }
func (c *CP) PC() uint64                     { return c.P.Get() }
func (c *CP) SetPC(pc uint64)                { c.P.Set(pc) }
func (c *CP) Stride(inst Instruction) uint64 { return inst.Size() }

// Displace the byte number of a process address, keeping its ring
// and segment.
func pva(base uint64, disp int64) uint64 {
	return base&segMask | uint64(uint32(int64(uint32(base))+disp))
}

// Read n bytes at a process address as a big endian value.
func (c *CP) Read(addr uint64, n int) (uint64, error) {
	return c.CM.ReadUint(addr&byteMask, n)
}

// Write the low n bytes of v at a process address.
func (c *CP) Write(addr uint64, n int, v uint64) error {
	return c.CM.WriteUint(addr&byteMask, n, v)
}

// Fetch the instruction at pc.
func (c *CP) Decode(pc uint64) (Instruction, error) {
	code, err := c.Read(pc, 1)
	if err != nil {
		return nil, err
	}
	n := formatOf(uint8(code)).size()
	raw, err := c.Read(pc, int(n))
	if err != nil {
		return nil, err
	}
	return Decode(uint32(raw << (8 * (4 - n))))
}

// Step runs one instruction.
func (c *CP) Step() error {
	return step.Run[Instruction](c)
}

// Disassemble the instruction at addr, returning its text and size.
func (c *CP) Disassemble(addr uint64) (string, uint64) {
	inst, err := c.Decode(addr)
	if err != nil {
		code, _ := c.Read(addr, 1)
		return fmt.Sprintf("*** %02X", code), 2
	}
	return inst.String(), inst.Size()
}

// Right half of Xi, zero for X0 used as an index.
func (c *CP) index(i uint8) uint64 {
	if i == 0 {
		return 0
	}
	return c.X[i].Get() & byteMask
}

func (c *CP) x(i uint8) uint64 { return c.X[i].Get() }
func (c *CP) a(i uint8) uint64 { return c.A[i].Get() }

func (c *CP) setX(i uint8, v uint64) { c.X[i].Set(v) }
func (c *CP) setA(i uint8, v uint64) { c.A[i].Set(v) }

// Branch by Q halfwords from the current instruction.
func (c *CP) branch(q uint16) bool {
	c.P.Set(pva(c.P.Get(), int64(int16(q))*2))
	return false
}

// Words must be on an eight byte boundary.
func (c *CP) aligned(op Op, addr uint64) error {
	if addr&7 != 0 {
		return fmt.Errorf("%s %s address specification %X: %w", c.Name, op, addr, fault.ErrAddress)
	}
	return nil
}

func (c *CP) Execute(inst Instruction) (bool, error) {
	pc := c.P.Get()
	Debug.DebugProcf(c.Name, pc, c.Debug, DebugInst, "%s", inst)
	var advance bool
	var err error
	switch i := inst.(type) {
	case JK:
		advance, err = c.jk(i)
	case JKID:
		advance, err = c.jkid(i)
	case JKQ:
		advance, err = c.jkq(i)
	case SJKID:
		advance, err = c.sjkid(i)
	default:
		return false, fmt.Errorf("%s: %T: %w", c.Name, inst, fault.ErrDecode)
	}
	if err == nil && c.Debug&DebugTrace != 0 {
		Debug.DebugProcf(c.Name, pc, c.Debug, DebugTrace, "%s", c.Registers())
	}
	return advance, err
}

func (c *CP) jk(i JK) (bool, error) {
	switch i.Op {
	case HALT:
		return false, fault.ErrHalt
	case CPYAA:
		c.setA(i.K, c.a(i.J))
	case CPYXA:
		c.setA(i.K, c.x(i.J)&word.W48.Mask())
	case CPYAX:
		c.setX(i.K, c.a(i.J))
	case CPYXX:
		c.setX(i.K, c.x(i.J))
	case INCX:
		c.setX(i.K, c.x(i.K)+uint64(i.J))
	case DECX:
		c.setX(i.K, c.x(i.K)-uint64(i.J))
	case IORX:
		c.setX(i.K, c.x(i.K)|c.x(i.J))
	case XORX:
		c.setX(i.K, c.x(i.K)^c.x(i.J))
	case ANDX:
		c.setX(i.K, c.x(i.K)&c.x(i.J))
	case NOTX:
		c.setX(i.K, ^c.x(i.J))
	case ADDX:
		c.setX(i.K, c.x(i.K)+c.x(i.J))
	case SUBX:
		c.setX(i.K, c.x(i.K)-c.x(i.J))
	case ENTP:
		c.setX(i.K, uint64(i.J))
	case ENTN:
		c.setX(i.K, -uint64(i.J))
	case ENTL:
		c.setX(0, uint64(i.J)<<4|uint64(i.K))
	case ENTX:
		c.setX(1, uint64(i.J)<<4|uint64(i.K))
	case BRDIR:
		target := pva(c.a(i.J), int64(c.index(i.K)))
		if target&1 != 0 {
			return false, fmt.Errorf("%s branch to %X: %w", c.Name, target, fault.ErrAddress)
		}
		c.P.Set(target)
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w", i.Op, fault.ErrNotImplemented)
	}
	return true, nil
}

func (c *CP) jkq(i JKQ) (bool, error) {
	q := int64(int16(i.Q))
	switch i.Op {
	case LX, SX:
		addr := pva(c.a(i.J), q*8)
		if err := c.aligned(i.Op, addr); err != nil {
			return false, err
		}
		return true, c.transfer(i.Op == LX, i.K, addr)
	case LA:
		v, err := c.Read(pva(c.a(i.J), q), 6)
		if err != nil {
			return false, err
		}
		c.setA(i.K, v)
	case SA:
		if err := c.Write(pva(c.a(i.J), q), 6, c.a(i.K)); err != nil {
			return false, err
		}
	case ENTE:
		c.setX(i.K, uint64(q))
	case ENTA:
		jkq := uint64(i.J)<<20 | uint64(i.K)<<16 | uint64(i.Q)
		c.setX(0, uint64(word.SignExtend(jkq, word.W24)))
	case ADDAQ:
		c.setA(i.K, pva(c.a(i.J), q))
	case BRREQ, BRRNE, BRRGT, BRRGE:
		if compare(i.Op-BRREQ, int64(int32(c.x(i.J))), int64(int32(c.x(i.K)))) {
			return c.branch(i.Q), nil
		}
	case BRXEQ, BRXNE, BRXGT, BRXGE:
		if compare(i.Op-BRXEQ, int64(c.x(i.J)), int64(c.x(i.K))) {
			return c.branch(i.Q), nil
		}
	default:
		return false, fmt.Errorf("%s: %w", i.Op, fault.ErrNotImplemented)
	}
	return true, nil
}

// Equal, not equal, greater, greater or equal in that order.
func compare(cond Op, j, k int64) bool {
	switch cond {
	case 0:
		return j == k
	case 1:
		return j != k
	case 2:
		return j > k
	}
	return j >= k
}

// Move a word between Xk and memory.
func (c *CP) transfer(load bool, k uint8, addr uint64) error {
	if !load {
		return c.Write(addr, 8, c.x(k))
	}
	v, err := c.Read(addr, 8)
	if err != nil {
		return err
	}
	c.setX(k, v)
	return nil
}

// Load count bytes right justified into Xk, or store the rightmost
// count bytes of Xk.
func (c *CP) bytes(load bool, k uint8, addr uint64, count int) error {
	if !load {
		return c.Write(addr, count, c.x(k))
	}
	v, err := c.Read(addr, count)
	if err != nil {
		return err
	}
	c.setX(k, v)
	return nil
}

// Bit field selected by XiR+D: the leftmost bit number and the
// length. Bits are numbered from the most significant end.
func (c *CP) field(op Op, i uint8, d uint16) (uint, uint, error) {
	sel := c.index(i) + uint64(d)
	pos := uint(sel>>6) & 0o77
	length := uint(sel&0o77) + 1
	if pos+length > 64 {
		return 0, 0, fmt.Errorf("%s %s field %d,%d: %w", c.Name, op, pos, length, fault.ErrWidth)
	}
	return pos, length, nil
}

func fieldMask(pos, length uint) uint64 {
	return (^uint64(0) >> (64 - length)) << (64 - pos - length)
}

func (c *CP) jkid(i JKID) (bool, error) {
	switch i.Op {
	case LXI, SXI:
		addr := pva(c.a(i.J), int64((c.index(i.I)+uint64(i.D))*8))
		if err := c.aligned(i.Op, addr); err != nil {
			return false, err
		}
		return true, c.transfer(i.Op == LXI, i.K, addr)
	case LBYT, SBYT:
		addr := pva(c.a(i.J), int64(c.index(i.I)+uint64(i.D)))
		count := int(c.x(0)&7) + 1
		return true, c.bytes(i.Op == LBYT, i.K, addr, count)
	case ISOM:
		pos, length, err := c.field(i.Op, i.I, i.D)
		if err != nil {
			return false, err
		}
		c.setX(i.K, fieldMask(pos, length))
	case ISOB:
		pos, length, err := c.field(i.Op, i.I, i.D)
		if err != nil {
			return false, err
		}
		c.setX(i.K, (c.x(i.J)&fieldMask(pos, length))>>(64-pos-length))
	default:
		return false, fmt.Errorf("%s: %w", i.Op, fault.ErrNotImplemented)
	}
	return true, nil
}

func (c *CP) sjkid(i SJKID) (bool, error) {
	switch i.Op {
	case LBYTS, SBYTS:
		addr := pva(c.a(i.J), int64(c.index(i.I)+uint64(i.D)))
		return true, c.bytes(i.Op == LBYTS, i.K, addr, i.Count())
	}
	return false, fmt.Errorf("%s: %w", i.Op, fault.ErrNotImplemented)
}
