/*
 * Cyber - Cyber 180 central processor tests
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
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rcornwell/cyber/emu/fault"
	"github.com/rcornwell/cyber/emu/memory"
	"github.com/rcornwell/cyber/emu/word"
)

func newCP(t *testing.T) *CP {
	t.Helper()
	return New(0, memory.New(0o10000, word.W64))
}

// Assemble insts at byte address addr.
func load(t *testing.T, c *CP, addr uint64, insts ...Instruction) {
	t.Helper()
	code, err := Assemble(insts...)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if err := c.CM.WriteBytes(addr, code); err != nil {
		t.Fatalf("WriteBytes failed: %v", err)
	}
}

func run(t *testing.T, c *CP, n int) {
	t.Helper()
	for range n {
		if err := c.Step(); err != nil {
			t.Fatalf("Step at %X failed: %v", c.PC(), err)
		}
	}
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		raw  uint32
		want Instruction
	}{
		{0x24210000, JK{Op: ADDX, J: 2, K: 1}},
		{0x3f10ffff, JK{Op: ENTL, J: 1, K: 0}},
		{0x7512abcd, JK{Op: MOVN, J: 1, K: 2}},
		{0x8d000063, JKQ{Op: ENTE, J: 0, K: 0, Q: 0x63}},
		{0xb5c4beef, JKQ{Op: CALLSEG, J: 0xc, K: 4, Q: 0xbeef}},
		{0xac010410, JKID{Op: ISOM, J: 0, K: 1, I: 0, D: 0x410}},
		{0x4d123456, JKID{Op: SHFV, J: 1, K: 2, I: 3, D: 0x456}},
		{0xfb000001, JKID{Op: ADDI, D: 1}},
		{0xc7123456, SJKID{Op: EXECUTE, S: 7, J: 1, K: 2, I: 3, D: 0x456}},
		{0xcf000000, SJKID{Op: EXECUTE, S: 0xf}},
		{0xd7e10028, SJKID{Op: LBYTS, S: 7, J: 0xe, K: 1, D: 0x28}},
		{0xd8410638, SJKID{Op: SBYTS, S: 8, J: 4, K: 1, I: 0, D: 0x638}},
	}
	for _, test := range tests {
		got, err := Decode(test.raw)
		if err != nil {
			t.Errorf("Decode %08X failed: %v", test.raw, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Decode %08X mismatch (-want +got):\n%s", test.raw, diff)
		}
	}
}

func TestUnassigned(t *testing.T) {
	for _, code := range []uint32{0x12, 0x13, 0x2b, 0x38, 0x46, 0x5f, 0x60, 0x6f, 0x7f, 0xa6, 0xaf, 0xb6, 0xe0, 0xff} {
		_, err := Decode(code << 24)
		if !errors.Is(err, fault.ErrDecode) {
			t.Errorf("Opcode %02X got: %v expected: ErrDecode", code, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, def := range opTable {
		for code := int(def.code); code <= int(def.last); code++ {
			var inst Instruction
			switch formatOf(uint8(code)) {
			case formJK:
				inst = JK{Op: def.op, J: 0xa, K: 5}
			case formJKID:
				inst = JKID{Op: def.op, J: 0xa, K: 5, I: 3, D: 0x123}
			case formJKQ:
				inst = JKQ{Op: def.op, J: 0xa, K: 5, Q: 0xbeef}
			default:
				inst = SJKID{Op: def.op, S: uint8(code & 0xf), J: 0xa, K: 5, I: 3, D: 0x123}
			}
			b, err := Encode(inst)
			if err != nil {
				t.Errorf("Encode %v failed: %v", inst, err)
				continue
			}
			if b[0] != uint8(code) || uint64(len(b)) != inst.Size() {
				t.Errorf("Encode %v got: % X", inst, b)
				continue
			}
			var raw uint32
			for i, c := range b {
				raw |= uint32(c) << (24 - 8*i)
			}
			got, err := Decode(raw)
			if err != nil {
				t.Errorf("Decode %v failed: %v", inst, err)
				continue
			}
			if diff := cmp.Diff(inst, got); diff != "" {
				t.Errorf("Round trip %02X mismatch (-want +got):\n%s", code, diff)
			}
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []Instruction{
		JK{Op: LX},
		JKQ{Op: ADDX},
		JK{Op: ADDX, J: 16},
		JKID{Op: LXI, D: 0x1000},
		SJKID{Op: LBYTS, S: 8},
		SJKID{Op: SBYTS, S: 7},
	}
	for _, inst := range tests {
		if _, err := Encode(inst); !errors.Is(err, fault.ErrWidth) {
			t.Errorf("Encode %#v got: %v expected: ErrWidth", inst, err)
		}
	}
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		inst Instruction
		want string
	}{
		{JK{Op: HALT}, "HALT"},
		{JK{Op: CPYXA, J: 1, K: 5}, "CPYXA A5,X1"},
		{JK{Op: ENTL, J: 1, K: 0}, "ENTL X0,10"},
		{JK{Op: MOVB, J: 1, K: 2}, "MOVB 1,2"},
		{JKQ{Op: ENTE, Q: 0x63}, "ENTE X0,0063"},
		{JKQ{Op: BRXNE, J: 1, K: 0, Q: 0xcc}, "BRXNE X1,X0,00CC"},
		{JKQ{Op: ENTA, J: 1, K: 2, Q: 0x3456}, "ENTA X0,123456"},
		{JKID{Op: ISOM, K: 1, D: 0x410}, "ISOM X1,X0,410"},
		{JKID{Op: SCLN, J: 1, K: 2, I: 3, D: 4}, "SCLN 1,2,3,004"},
		{SJKID{Op: LBYTS, S: 7, J: 0xe, K: 1, D: 0x28}, "LBYTS,8 X1,AE,X0,028"},
		{SJKID{Op: SBYTS, S: 8, J: 4, K: 1, D: 0x63f}, "SBYTS,1 X1,A4,X0,63F"},
		{SJKID{Op: EXECUTE, S: 0xc, J: 1, K: 2, I: 3, D: 4}, "EXECUTE,C 1,2,3,004"},
	}
	for _, test := range tests {
		if got := test.inst.String(); got != test.want {
			t.Errorf("Disassemble got: %q expected: %q", got, test.want)
		}
	}
}

func TestBootCodeDecodes(t *testing.T) {
	c := newCP(t)
	if err := c.CM.WriteBytes(0, bootCode); err != nil {
		t.Fatal(err)
	}
	var text []string
	var addr uint64
	for addr < uint64(len(bootCode)) {
		s, n := c.Disassemble(addr)
		if strings.HasPrefix(s, "***") {
			t.Errorf("Boot code at %X got: %s", addr, s)
		}
		text = append(text, s)
		addr += n
	}
	if addr != uint64(len(bootCode)) {
		t.Errorf("Boot code ends at %X expected: %X", addr, len(bootCode))
	}
	want := map[int]string{
		0:  "ENTE X0,0063",
		1:  "ISOM X1,X0,410",
		2:  "CPYXS 1,X0",
		16: "BRXNE X1,X0,00CC",
		23: "SBYTS,1 X1,A4,X0,63F",
		28: "LBYTS,8 X1,AE,X0,028",
	}
	if len(text) != 76 {
		t.Fatalf("Boot code instructions got: %d expected: 76", len(text))
	}
	for i, s := range want {
		if text[i] != s {
			t.Errorf("Boot instruction %d got: %q expected: %q", i, text[i], s)
		}
	}
}

func TestBootCodeRuns(t *testing.T) {
	c := newCP(t)
	if err := c.CM.WriteBytes(0, bootCode); err != nil {
		t.Fatal(err)
	}
	run(t, c, 2)
	if c.X[0].Get() != 0x63 {
		t.Errorf("ENTE X0 got: %X expected: 63", c.X[0].Get())
	}
	if c.X[1].Get() != 0xffff80000000 {
		t.Errorf("ISOM X1 got: %X expected: FFFF80000000", c.X[1].Get())
	}
	err := c.Step()
	if !errors.Is(err, fault.ErrNotImplemented) {
		t.Fatalf("CPYXS got: %v expected: ErrNotImplemented", err)
	}
	var f *fault.Fault
	if !errors.As(err, &f) || f.Address != 8 || f.Opcode != "CPYXS 1,X0" {
		t.Errorf("Fault got: %+v", f)
	}
	if c.PC() != 8 {
		t.Errorf("PC got: %X expected: 8", c.PC())
	}
}

func TestEnter(t *testing.T) {
	c := newCP(t)
	load(t, c, 0,
		JK{Op: ENTP, J: 5, K: 3},
		JK{Op: ENTN, J: 2, K: 4},
		JK{Op: ENTL, J: 1, K: 0xf},
		JK{Op: ENTX, J: 0xa, K: 5},
		JKQ{Op: ENTE, K: 2, Q: 0xffff},
		JKQ{Op: ENTA, J: 8},
	)
	run(t, c, 5)
	want := map[int]uint64{3: 5, 4: 0xfffffffffffffffe, 0: 0x1f, 1: 0xa5, 2: ^uint64(0)}
	for r, v := range want {
		if c.X[r].Get() != v {
			t.Errorf("X%X got: %X expected: %X", r, c.X[r].Get(), v)
		}
	}
	run(t, c, 1)
	if c.X[0].Get() != 0xffffffffff800000 {
		t.Errorf("ENTA got: %X", c.X[0].Get())
	}
	if c.PC() != 16 {
		t.Errorf("PC got: %X expected: 10", c.PC())
	}
}

func TestLoadStoreWord(t *testing.T) {
	c := newCP(t)
	c.A[2].Set(0x100)
	c.X[5].Set(0x0123456789abcdef)
	c.X[3].Set(0xffffffff00000002)
	load(t, c, 0,
		JKQ{Op: SX, J: 2, K: 5, Q: 2},
		JKQ{Op: LX, J: 2, K: 6, Q: 2},
		JKID{Op: SXI, J: 2, K: 5, I: 3, D: 1},
		JKID{Op: LXI, J: 2, K: 7, I: 3, D: 1},
	)
	run(t, c, 4)
	if w, _ := c.CM.Read(0x110 / 8); w != 0x0123456789abcdef {
		t.Errorf("SX stored: %X", w)
	}
	if w, _ := c.CM.Read(0x118 / 8); w != 0x0123456789abcdef {
		t.Errorf("SXI stored: %X", w)
	}
	if c.X[6].Get() != 0x0123456789abcdef || c.X[7].Get() != 0x0123456789abcdef {
		t.Errorf("Loads got: %X %X", c.X[6].Get(), c.X[7].Get())
	}
}

func TestAddressSpecification(t *testing.T) {
	c := newCP(t)
	c.A[2].Set(0x101)
	load(t, c, 0, JKQ{Op: LX, J: 2, K: 6})
	if err := c.Step(); !errors.Is(err, fault.ErrAddress) {
		t.Errorf("Misaligned LX got: %v expected: ErrAddress", err)
	}
	if c.PC() != 0 {
		t.Errorf("PC moved to: %X", c.PC())
	}
}

func TestLoadStoreAddress(t *testing.T) {
	c := newCP(t)
	c.A[2].Set(0x123456789abc)
	c.A[3].Set(0x200)
	load(t, c, 0,
		JKQ{Op: SA, J: 3, K: 2, Q: 4},
		JKQ{Op: LA, J: 3, K: 7, Q: 4},
		JKQ{Op: ADDAQ, J: 3, K: 8, Q: 0xfff0},
	)
	run(t, c, 3)
	got, _ := c.CM.ReadBytes(0x204, 6)
	if diff := cmp.Diff([]byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc}, got); diff != "" {
		t.Errorf("SA bytes mismatch (-want +got):\n%s", diff)
	}
	if c.A[7].Get() != 0x123456789abc {
		t.Errorf("LA got: %X", c.A[7].Get())
	}
	if c.A[8].Get() != 0x1f0 {
		t.Errorf("ADDAQ got: %X expected: 1F0", c.A[8].Get())
	}
}

func TestAddressKeepsSegment(t *testing.T) {
	c := newCP(t)
	c.A[1].Set(0x0123fffffffc)
	load(t, c, 0, JKQ{Op: ADDAQ, J: 1, K: 2, Q: 8})
	run(t, c, 1)
	if c.A[2].Get() != 0x012300000004 {
		t.Errorf("ADDAQ got: %X expected: 12300000004", c.A[2].Get())
	}
}

func TestBytes(t *testing.T) {
	c := newCP(t)
	c.A[2].Set(0x100)
	c.X[0].Set(2)
	c.X[4].Set(0x1122aabbcc)
	load(t, c, 0,
		JKID{Op: SBYT, J: 2, K: 4, D: 5},
		JKID{Op: LBYT, J: 2, K: 5, D: 5},
		SJKID{Op: LBYTS, S: 1, J: 2, K: 6, D: 5},
		SJKID{Op: SBYTS, S: 8, J: 2, K: 4, D: 0x10},
	)
	run(t, c, 4)
	got, _ := c.CM.ReadBytes(0x104, 5)
	if diff := cmp.Diff([]byte{0, 0xaa, 0xbb, 0xcc, 0}, got); diff != "" {
		t.Errorf("SBYT bytes mismatch (-want +got):\n%s", diff)
	}
	if c.X[5].Get() != 0xaabbcc {
		t.Errorf("LBYT got: %X expected: AABBCC", c.X[5].Get())
	}
	if c.X[6].Get() != 0xaabb {
		t.Errorf("LBYTS,2 got: %X expected: AABB", c.X[6].Get())
	}
	if b, _ := c.CM.ReadBytes(0x110, 2); b[0] != 0xcc || b[1] != 0 {
		t.Errorf("SBYTS,1 got: % X", b)
	}
}

func TestIsolate(t *testing.T) {
	c := newCP(t)
	c.X[2].Set(0x00f0000000000000)
	load(t, c, 0,
		JKID{Op: ISOM, K: 1, D: 0o0003},
		JKID{Op: ISOB, J: 2, K: 3, D: 8<<6 | 3},
		JKID{Op: ISOM, K: 4, D: 63 << 6},
		JKID{Op: ISOM, K: 5, D: 63<<6 | 1},
	)
	run(t, c, 3)
	if c.X[1].Get() != 0xf000000000000000 {
		t.Errorf("ISOM got: %X", c.X[1].Get())
	}
	if c.X[3].Get() != 0xf {
		t.Errorf("ISOB got: %X expected: F", c.X[3].Get())
	}
	if c.X[4].Get() != 1 {
		t.Errorf("ISOM last bit got: %X", c.X[4].Get())
	}
	if err := c.Step(); !errors.Is(err, fault.ErrWidth) {
		t.Errorf("ISOM past bit 63 got: %v", err)
	}
}

func TestArithmeticLogical(t *testing.T) {
	c := newCP(t)
	c.X[1].Set(0xf0f0)
	c.X[2].Set(0x0ff0)
	c.A[3].Set(0xabcdef)
	tests := []struct {
		inst Instruction
		reg  int
		want uint64
	}{
		{JK{Op: CPYXX, J: 1, K: 4}, 4, 0xf0f0},
		{JK{Op: IORX, J: 2, K: 4}, 4, 0xfff0},
		{JK{Op: ANDX, J: 1, K: 4}, 4, 0xf0f0},
		{JK{Op: XORX, J: 2, K: 4}, 4, 0xff00},
		{JK{Op: NOTX, J: 2, K: 5}, 5, 0xfffffffffffff00f},
		{JK{Op: ADDX, J: 1, K: 5}, 5, 0xe0ff},
		{JK{Op: SUBX, J: 1, K: 5}, 5, 0xfffffffffffff00f},
		{JK{Op: INCX, J: 0xf, K: 6}, 6, 0xf},
		{JK{Op: DECX, J: 0xf, K: 6}, 6, 0},
		{JK{Op: DECX, J: 1, K: 6}, 6, ^uint64(0)},
		{JK{Op: INCX, J: 1, K: 6}, 6, 0},
		{JK{Op: CPYAX, J: 3, K: 7}, 7, 0xabcdef},
	}
	for _, test := range tests {
		c.SetPC(0)
		load(t, c, 0, test.inst)
		run(t, c, 1)
		if got := c.X[test.reg].Get(); got != test.want {
			t.Errorf("%s X%X got: %X expected: %X", test.inst, test.reg, got, test.want)
		}
	}

	// Sums wrap modulo 2^64 with no overflow condition.
	c.X[8].Set(0x7fffffffffffffff)
	c.X[9].Set(1)
	c.X[10].Set(^uint64(0))
	c.X[11].Set(0x8000000000000000)
	c.SetPC(0)
	load(t, c, 0, JK{Op: ADDX, J: 9, K: 8}, JK{Op: ADDX, J: 9, K: 10}, JK{Op: SUBX, J: 9, K: 11})
	run(t, c, 3)
	if got := c.X[8].Get(); got != 0x8000000000000000 {
		t.Errorf("ADDX overflow got: %X expected: 8000000000000000", got)
	}
	if got := c.X[10].Get(); got != 0 {
		t.Errorf("ADDX carry out got: %X expected: 0", got)
	}
	if got := c.X[11].Get(); got != 0x7fffffffffffffff {
		t.Errorf("SUBX overflow got: %X expected: 7FFFFFFFFFFFFFFF", got)
	}
}

func TestCopyAddress(t *testing.T) {
	c := newCP(t)
	c.X[1].Set(0xffff_1234_5678_9abc)
	c.A[2].Set(0x100)
	load(t, c, 0, JK{Op: CPYXA, J: 1, K: 3}, JK{Op: CPYAA, J: 2, K: 4})
	run(t, c, 2)
	if c.A[3].Get() != 0x123456789abc {
		t.Errorf("CPYXA got: %X", c.A[3].Get())
	}
	if c.A[4].Get() != 0x100 {
		t.Errorf("CPYAA got: %X", c.A[4].Get())
	}
}

func TestBranches(t *testing.T) {
	tests := []struct {
		op    Op
		q     uint16
		taken bool
	}{
		{BRREQ, 8, false},
		{BRRNE, 8, true},
		{BRRGT, 8, false},
		{BRRGE, 8, false},
		{BRXEQ, 8, false},
		{BRXNE, 0xfffe, true},
		{BRXGT, 8, true},
		{BRXGE, 8, true},
	}
	for _, test := range tests {
		c := newCP(t)
		c.X[1].Set(0x80000000)
		c.X[2].Set(1)
		c.SetPC(0x40)
		load(t, c, 0x40, JKQ{Op: test.op, J: 1, K: 2, Q: test.q})
		run(t, c, 1)
		want := uint64(0x44)
		if test.taken {
			want = uint64(int64(0x40) + int64(int16(test.q))*2)
		}
		if c.PC() != want {
			t.Errorf("%s got: %X expected: %X", test.op, c.PC(), want)
		}
	}
}

func TestBranchEqualRightHalf(t *testing.T) {
	c := newCP(t)
	c.X[1].Set(0x1_0000_0005)
	c.X[2].Set(0x2_0000_0005)
	load(t, c, 0, JKQ{Op: BRREQ, J: 1, K: 2, Q: 0x10})
	run(t, c, 1)
	if c.PC() != 0x20 {
		t.Errorf("BRREQ got: %X expected: 20", c.PC())
	}
}

func TestBranchDirect(t *testing.T) {
	c := newCP(t)
	c.A[3].Set(0x200)
	c.X[4].Set(0x10)
	load(t, c, 0, JK{Op: BRDIR, J: 3, K: 4}, JK{Op: BRDIR, J: 3, K: 0})
	run(t, c, 1)
	if c.PC() != 0x210 {
		t.Errorf("BRDIR got: %X expected: 210", c.PC())
	}
	c.SetPC(2)
	c.A[3].Set(0x201)
	if err := c.Step(); !errors.Is(err, fault.ErrAddress) {
		t.Errorf("Odd BRDIR got: %v", err)
	}
}

func TestHalt(t *testing.T) {
	c := newCP(t)
	c.SetPC(0x20)
	load(t, c, 0x20, JK{Op: HALT})
	err := c.Step()
	if !errors.Is(err, fault.ErrHalt) {
		t.Fatalf("HALT got: %v", err)
	}
	var f *fault.Fault
	if !errors.As(err, &f) || f.Opcode != "HALT" || f.Processor != "CP0" {
		t.Errorf("Fault got: %+v", f)
	}
	if c.PC() != 0x20 {
		t.Errorf("HALT moved PC to: %X", c.PC())
	}
}

func TestNotImplemented(t *testing.T) {
	for _, inst := range []Instruction{JK{Op: MULX}, JKQ{Op: CALLREL}, JKID{Op: SHFX}, SJKID{Op: EXECUTE}} {
		c := newCP(t)
		load(t, c, 0, inst)
		if err := c.Step(); !errors.Is(err, fault.ErrNotImplemented) {
			t.Errorf("%s got: %v expected: ErrNotImplemented", inst, err)
		}
	}
}

func TestUndefinedFaults(t *testing.T) {
	c := newCP(t)
	if err := c.CM.WriteBytes(0, []byte{0x5f, 0, 0, 0}); err != nil {
		t.Fatal(err)
	}
	if err := c.Step(); !errors.Is(err, fault.ErrDecode) {
		t.Errorf("Opcode 5F got: %v", err)
	}
	if s, n := c.Disassemble(0); s != "*** 5F" || n != 2 {
		t.Errorf("Disassemble got: %q %d", s, n)
	}
}

func TestTimeClock(t *testing.T) {
	c := newCP(t)
	if err := c.SetRegister("sit", 100); err != nil {
		t.Fatal(err)
	}
	c.TimeClock(40)
	if c.SIT.Get() != 60 || c.SITExpired {
		t.Errorf("SIT got: %d expired: %v", c.SIT.Get(), c.SITExpired)
	}
	c.TimeClock(100)
	if c.SIT.Get() != 0 || !c.SITExpired {
		t.Errorf("SIT got: %d expired: %v", c.SIT.Get(), c.SITExpired)
	}
	c.TimeClock(5)
	if c.SIT.Get() != 0 {
		t.Errorf("Stopped SIT got: %d", c.SIT.Get())
	}
}

func TestSetRegister(t *testing.T) {
	c := newCP(t)
	if err := c.SetRegister("a1", 1<<48); !errors.Is(err, fault.ErrWidth) {
		t.Errorf("A1 overflow got: %v", err)
	}
	if err := c.SetRegister("XF", ^uint64(0)); err != nil {
		t.Errorf("XF got: %v", err)
	}
	if err := c.SetRegister("B1", 0); err == nil {
		t.Errorf("B1 accepted")
	}
	if !strings.Contains(c.Registers(), "XF=FFFFFFFFFFFFFFFF") {
		t.Errorf("Registers got: %s", c.Registers())
	}
}

var bootCode = []byte{
	0x8d, 0x00, 0x00, 0x63, 0xac, 0x01, 0x04, 0x10,
	0x0f, 0x01, 0x8d, 0x00, 0x00, 0x47, 0x0e, 0x01,
	0x0b, 0x42, 0x24, 0x21, 0x0a, 0x15, 0x85, 0x15,
	0x00, 0x0a, 0x3f, 0x10, 0x0e, 0x00, 0x83, 0x50,
	0x00, 0x0e, 0x3d, 0x00, 0x83, 0x50, 0x00, 0x0b,
	0x83, 0x50, 0x00, 0x0c, 0x82, 0x41, 0x00, 0x8d,
	0x95, 0x10, 0x00, 0xcc, 0x83, 0x4d, 0x00, 0xc8,
	0x8d, 0x01, 0x10, 0x14, 0xa9, 0x11, 0x00, 0x20,
	0x8b, 0x11, 0x01, 0x00, 0x0a, 0x16, 0x3d, 0x11,
	0xd8, 0x41, 0x06, 0x3f, 0x84, 0x47, 0x04, 0x70,
	0x2a, 0xf7, 0x84, 0x4e, 0x05, 0x5b, 0x84, 0x4f,
	0x04, 0x7c, 0xd7, 0xe1, 0x00, 0x28, 0xdf, 0xf1,
	0x00, 0x28, 0xd7, 0xe1, 0x00, 0x20, 0xdf, 0xf1,
	0x00, 0x20, 0xdf, 0x41, 0x06, 0x48, 0xd7, 0xe1,
	0x00, 0x90, 0xdf, 0xf1, 0x00, 0x80, 0x85, 0x56,
	0x00, 0x20, 0x16, 0x61, 0x83, 0x51, 0x00, 0x05,
	0x3f, 0x61, 0x0f, 0x01, 0x16, 0x71, 0xd8, 0x51,
	0x00, 0x68, 0x84, 0x4d, 0x04, 0x70, 0x85, 0x47,
	0x04, 0x70, 0x08, 0x11, 0x83, 0x41, 0x00, 0x07,
	0x3f, 0x10, 0x83, 0x41, 0x00, 0x8d, 0x0e, 0x0e,
	0x3d, 0x56, 0xad, 0xee, 0x0a, 0x03, 0xd0, 0x51,
	0x00, 0x04, 0x91, 0xe6, 0x00, 0x07, 0x28, 0x31,
	0x3d, 0x42, 0x94, 0x12, 0x00, 0x03, 0x3d, 0x81,
	0xd8, 0x51, 0x00, 0x04, 0xd8, 0x41, 0x04, 0xf6,
	0x82, 0x4e, 0x00, 0x94, 0x83, 0x7e, 0x00, 0x0f,
	0x82, 0x71, 0x00, 0x08, 0xad, 0x1e, 0x04, 0x17,
	0xa9, 0xee, 0x00, 0x0c, 0xdb, 0x4e, 0x00, 0x10,
	0x84, 0x4e, 0x06, 0x2b, 0x16, 0xee, 0xdb, 0x4e,
	0x00, 0x18, 0xdb, 0x4e, 0x00, 0x14, 0xd1, 0x76,
	0x01, 0x0a, 0xa9, 0x66, 0x00, 0x15, 0xd1, 0x7b,
	0x01, 0x0c, 0xa9, 0xbb, 0x00, 0x09, 0x24, 0xb6,
	0xd1, 0x7b, 0x01, 0x08, 0xa9, 0xbb, 0x00, 0x03,
}
