/*
 * Cyber - Cyber 170 central processor tests
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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rcornwell/cyber/emu/fault"
	"github.com/rcornwell/cyber/emu/memory"
	"github.com/rcornwell/cyber/emu/word"
)

func newCP(t *testing.T) *CP {
	t.Helper()
	return New(0, memory.New(0o10000, word.W60))
}

// Assemble one word of instructions at absolute address addr.
func load(t *testing.T, c *CP, addr uint64, insts ...Instruction) {
	t.Helper()
	raw, err := EncodeWord(insts...)
	if err != nil {
		t.Fatalf("EncodeWord %v failed: %v", insts, err)
	}
	if err := c.CM.Write(addr, raw); err != nil {
		t.Fatalf("CM write failed: %v", err)
	}
}

func run(t *testing.T, c *CP, n int) {
	t.Helper()
	for range n {
		if err := c.Step(); err != nil {
			t.Fatalf("Step at %o failed: %v", c.PC(), err)
		}
	}
}

func TestParcelLayouts(t *testing.T) {
	tests := []struct {
		name  string
		insts []Instruction
	}{
		{"15,30,15", []Instruction{
			Short{Op: IXAdd, I: 6, J: 1, K: 2},
			Long{Op: SAAK, I: 1, J: 2, K: 0o100},
			Short{Op: BXMove, I: 3, J: 4},
		}},
		{"30,30", []Instruction{
			Long{Op: ZR, J: 1, K: 0o200},
			Long{Op: EQ, I: 1, J: 2, K: 0o300},
		}},
		{"60", []Instruction{Full{Op: XJ, I: 3, J: 1, K: 0o100}}},
		{"15,15,30", []Instruction{
			Short{Op: CX, I: 1, K: 2},
			Short{Op: MX, I: 2, J: 7, K: 4},
			Long{Op: JP, I: 3, K: 0o777},
		}},
		{"30,15,15", []Instruction{
			Long{Op: SXBK, I: 7, J: 0, K: 0o777776},
			Short{Op: SBBB, I: 1, J: 2, K: 3},
			Short{Op: LXJK, I: 4, J: 1, K: 2},
		}},
	}
	for _, test := range tests {
		raw, err := EncodeWord(test.insts...)
		if err != nil {
			t.Errorf("%s: EncodeWord failed: %v", test.name, err)
			continue
		}
		got, err := DecodeWord(raw)
		if err != nil {
			t.Errorf("%s: DecodeWord %020o failed: %v", test.name, raw, err)
			continue
		}
		if diff := cmp.Diff(test.insts, got); diff != "" {
			t.Errorf("%s: parcels (-want +got):\n%s", test.name, diff)
		}
		total := 0
		for _, inst := range got {
			total += int(inst.Bits())
		}
		if total != 60 {
			t.Errorf("%s: consumed %d bits", test.name, total)
		}
	}
}

func TestPassFill(t *testing.T) {
	raw, err := EncodeWord(Short{Op: BXMove, I: 1, J: 2})
	if err != nil {
		t.Fatalf("EncodeWord failed: %v", err)
	}
	if raw != 0o10120_46000_46000_46000 {
		t.Errorf("EncodeWord got: %020o", raw)
	}
	insts, _ := DecodeWord(raw)
	if len(insts) != 4 || insts[3] != (Short{Op: NO}) {
		t.Errorf("DecodeWord got: %v", insts)
	}
}

func TestEncodeFit(t *testing.T) {
	_, err := EncodeWord(Short{Op: NO}, Short{Op: NO}, Short{Op: NO}, Long{Op: RJ, K: 1})
	if !errors.Is(err, fault.ErrWidth) {
		t.Errorf("30 bit parcel in last 15 bits got: %v", err)
	}
	_, err = EncodeWord(Short{Op: NO}, Full{Op: XJ, I: 3})
	if !errors.Is(err, fault.ErrWidth) {
		t.Errorf("60 bit parcel after 15 got: %v", err)
	}
	if _, err := Encode(Long{Op: RJ, I: 2}); !errors.Is(err, fault.ErrWidth) {
		t.Errorf("RJ with i=2 got: %v", err)
	}
	if _, err := Encode(Long{Op: SAAK, K: 1 << 18}); !errors.Is(err, fault.ErrWidth) {
		t.Errorf("19 bit K got: %v", err)
	}
	if _, err := Encode(Short{Op: SAAK}); !errors.Is(err, fault.ErrWidth) {
		t.Errorf("30 bit op as Short got: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, def := range opTable {
		if def.op.moves() {
			continue
		}
		for _, i := range []uint8{def.ilo, def.ihi} {
			var inst Instruction
			switch def.width {
			case word.W15:
				inst = Short{Op: def.op, I: i, J: 5, K: 3}
			case word.W30:
				inst = Long{Op: def.op, I: i, J: 5, K: 0o123456}
			default:
				inst = Full{Op: def.op, I: i, J: 5, K: 0o123456, Rest: 0o1234567012}
			}
			p, err := Encode(inst)
			if err != nil {
				t.Errorf("Encode %v failed: %v", inst, err)
				continue
			}
			raw := p << (60 - uint(def.width))
			got, err := Decode(raw, 60)
			if err != nil {
				t.Errorf("Decode %s failed: %v", def.name, err)
				continue
			}
			if diff := cmp.Diff(inst, got); diff != "" {
				t.Errorf("Round trip %s (-want +got):\n%s", def.name, diff)
			}
		}
	}
}

// Mnemonics with a fixed sub opcode encode without an explicit i.
func TestEncodeSubOpcode(t *testing.T) {
	for _, def := range opTable {
		if def.op.moves() || def.ilo != def.ihi {
			continue
		}
		var inst, want Instruction
		switch def.width {
		case word.W15:
			inst = Short{Op: def.op, J: 1, K: 2}
			want = Short{Op: def.op, I: def.ilo, J: 1, K: 2}
		case word.W30:
			inst = Long{Op: def.op, J: 1, K: 0o50}
			want = Long{Op: def.op, I: def.ilo, J: 1, K: 0o50}
		default:
			inst = Full{Op: def.op, J: 1, K: 0o50}
			want = Full{Op: def.op, I: def.ilo, J: 1, K: 0o50}
		}
		p, err := Encode(inst)
		if err != nil {
			t.Errorf("Encode %v failed: %v", inst, err)
			continue
		}
		got, err := Decode(p<<(60-uint(def.width)), 60)
		if err != nil {
			t.Errorf("Decode %s failed: %v", def.name, err)
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Encode %s (-want +got):\n%s", def.name, diff)
		}
	}
	if def := opInfo[NG]; def.ilo != 3 {
		t.Fatalf("NG sub opcode got: %o expected: 3", def.ilo)
	}
	if _, err := Encode(Long{Op: NG, I: 5, K: 0o50}); !errors.Is(err, fault.ErrWidth) {
		t.Errorf("NG with i=5 got: %v", err)
	}
}

func TestIncrementFaultKeepsRegisters(t *testing.T) {
	c := newCP(t)
	c.FL.Set(0o100)
	c.A[1].Set(0o10)
	c.X[1].Set(0o77)
	c.A[6].Set(0o20)
	load(t, c, 0, Long{Op: SABK, I: 1, J: 0, K: 0o200}, Short{Op: NO})
	if err := c.Step(); !errors.Is(err, fault.ErrAddress) {
		t.Fatalf("SA1 beyond FL got: %v", err)
	}
	if c.A[1].Get() != 0o10 || c.X[1].Get() != 0o77 {
		t.Errorf("SA1 fault changed A1=%o X1=%o", c.A[1].Get(), c.X[1].Get())
	}
	load(t, c, 0, Long{Op: SABK, I: 6, J: 0, K: 0o200}, Short{Op: NO})
	c.SetPC(0)
	if err := c.Step(); !errors.Is(err, fault.ErrAddress) {
		t.Fatalf("SA6 beyond FL got: %v", err)
	}
	if c.A[6].Get() != 0o20 {
		t.Errorf("SA6 fault changed A6=%o", c.A[6].Get())
	}
}

func TestCompareMoveUnresolved(t *testing.T) {
	raw := uint64(0o4660)<<48 | 0o100
	inst, err := Decode(raw, 60)
	if err != nil {
		t.Fatalf("Decode CC failed: %v", err)
	}
	m, ok := inst.(Move)
	if !ok || m.Op != CC {
		t.Fatalf("Decode got: %#v", inst)
	}
	if m.Desc.K2 != 0o100 {
		t.Errorf("K2 got: %o expected: 100", m.Desc.K2)
	}
	if _, err := Encode(m); !errors.Is(err, fault.ErrUnresolved) {
		t.Errorf("Encode CC got: %v", err)
	}
	c := newCP(t)
	_ = c.CM.Write(0, raw)
	if err := c.Step(); !errors.Is(err, fault.ErrUnresolved) {
		t.Errorf("Execute CC got: %v", err)
	}
}

func TestDecodeExhausted(t *testing.T) {
	raw := uint64(0o46000_46000_46000_50000)
	insts, err := DecodeWord(raw)
	if !errors.Is(err, fault.ErrDecode) || len(insts) != 3 {
		t.Errorf("DecodeWord got: %d instructions, %v", len(insts), err)
	}

	c := newCP(t)
	_ = c.CM.Write(0, raw)
	run(t, c, 3)
	err = c.Step()
	var f *fault.Fault
	if !errors.As(err, &f) || !errors.Is(err, fault.ErrDecode) {
		t.Fatalf("Step got: %v", err)
	}
	if f.Processor != "CP0" || f.Address != 3 {
		t.Errorf("Fault got: %s at %o", f.Processor, f.Address)
	}
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		inst Instruction
		text string
	}{
		{Short{Op: IXAdd, I: 6, J: 1, K: 2}, "IX6 X1+X2"},
		{Short{Op: BXAndNot, I: 1, J: 2, K: 3}, "BX1 -X3*X2"},
		{Short{Op: LXJK, I: 1, J: 1, K: 2}, "LX1 12"},
		{Short{Op: AXB, I: 1, J: 2, K: 3}, "AX1 B2,X3"},
		{Short{Op: FXDiv, I: 1, J: 2, K: 3}, "FX1 X2/X3"},
		{Short{Op: RXDiv, I: 1, J: 2, K: 3}, "RX1 X2/X3"},
		{Short{Op: SAAmB, I: 1, J: 2, K: 3}, "SA1 A2-B3"},
		{Short{Op: NO}, "NO"},
		{Long{Op: SAAK, I: 1, J: 2, K: 0o100}, "SA1 A2+100"},
		{Long{Op: ZR, J: 1, K: 0o200}, "ZR X1,200"},
		{Long{Op: GE, I: 1, J: 2, K: 0o300}, "GE B1,B2,300"},
		{Long{Op: RJ, K: 0o100}, "RJ 100"},
		{Long{Op: RE, I: 1, J: 2, K: 5}, "RE B2+5"},
		{Full{Op: XJ, I: 3, J: 1, K: 0o100}, "XJ B1+100"},
		{Move{Op: DM, Desc: Descriptor{LU: 1, LL: 2, K1: 3, K2: 4}}, "DM L=22,K1=3,C1=0,C2=0,K2=4"},
	}
	for _, test := range tests {
		if got := test.inst.String(); got != test.text {
			t.Errorf("Disassemble %#v got: %q expected: %q", test.inst, got, test.text)
		}
	}

	text := Disassemble(0o46000_46000_46000_50000)
	want := []string{"NO", "NO", "NO", "*** 50000"}
	if diff := cmp.Diff(want, text); diff != "" {
		t.Errorf("Disassemble word (-want +got):\n%s", diff)
	}
}

func TestStride(t *testing.T) {
	c := newCP(t)
	load(t, c, 0, Short{Op: NO}, Long{Op: SXBK, I: 1, K: 5}, Short{Op: NO})
	run(t, c, 1)
	if c.PC() != 1 {
		t.Errorf("15 bit stride got: PC=%o", c.PC())
	}
	run(t, c, 1)
	if c.PC() != 3 || c.X[1].Get() != 5 {
		t.Errorf("30 bit stride got: PC=%o X1=%o", c.PC(), c.X[1].Get())
	}
	run(t, c, 1)
	if c.PC() != 4 || c.P.Get() != 1 {
		t.Errorf("Next word got: PC=%o P=%o", c.PC(), c.P.Get())
	}
}

func TestIncrementMemory(t *testing.T) {
	c := newCP(t)
	_ = c.CM.Write(0o100, 0o1234)
	c.X[6].Set(0o7777)
	load(t, c, 0, Long{Op: SABK, I: 1, K: 0o100}, Long{Op: SAAK, I: 6, J: 1, K: 1})
	run(t, c, 2)
	if c.A[1].Get() != 0o100 || c.X[1].Get() != 0o1234 {
		t.Errorf("SA1 got: A1=%o X1=%o", c.A[1].Get(), c.X[1].Get())
	}
	v, _ := c.CM.Read(0o101)
	if c.A[6].Get() != 0o101 || v != 0o7777 {
		t.Errorf("SA6 got: A6=%o CM=%o", c.A[6].Get(), v)
	}
}

func TestIncrementSign(t *testing.T) {
	c := newCP(t)
	c.B[2].Set(3)
	c.B[3].Set(5)
	load(t, c, 0, Long{Op: SXBK, I: 1, K: 0o777776}, Short{Op: SBBmB, I: 4, J: 2, K: 3},
		Short{Op: SBBB, I: 0, J: 2, K: 3})
	run(t, c, 3)
	if c.X[1].Get() != word.W60.Mask()-1 {
		t.Errorf("SX1 -1 got: %o", c.X[1].Get())
	}
	if c.B[4].Get() != word.W18.Mask()-2 {
		t.Errorf("SB4 3-5 got: %o expected: %o", c.B[4].Get(), word.W18.Mask()-2)
	}
	if c.b(0) != 0 || c.B[0].Get() != 0 {
		t.Errorf("B0 changed: %o", c.B[0].Get())
	}
}

func TestFieldLength(t *testing.T) {
	c := newCP(t)
	c.RA.Set(0o1000)
	c.FL.Set(0o200)
	_ = c.CM.Write(0o1000+0o177, 0o55)
	load(t, c, 0o1000, Long{Op: SABK, I: 1, K: 0o177}, Long{Op: SABK, I: 2, K: 0o200})
	run(t, c, 1)
	if c.X[1].Get() != 0o55 {
		t.Errorf("Relocated read got: %o", c.X[1].Get())
	}
	if err := c.Step(); !errors.Is(err, fault.ErrAddress) {
		t.Errorf("Read at FL got: %v", err)
	}
}

func TestBranches(t *testing.T) {
	tests := []struct {
		name string
		inst Long
		x    uint64
		b1   uint64
		b2   uint64
		take bool
	}{
		{"ZR minus zero", Long{Op: ZR, K: 0o50}, word.W60.Mask(), 0, 0, true},
		{"ZR one", Long{Op: ZR, K: 0o50}, 1, 0, 0, false},
		{"NG", Long{Op: NG, K: 0o50}, word.W60.Sign(), 0, 0, true},
		{"OR", Long{Op: OR, K: 0o50}, 0o3777 << 48, 0, 0, true},
		{"DF", Long{Op: DF, K: 0o50}, 0o1777 << 48, 0, 0, false},
		{"EQ", Long{Op: EQ, I: 1, J: 2, K: 0o50}, 0, 7, 7, true},
		{"GE negative", Long{Op: GE, I: 1, J: 2, K: 0o50}, 0, word.W18.Mask() - 1, 0, false},
		{"LT negative", Long{Op: LT, I: 1, J: 2, K: 0o50}, 0, word.W18.Mask() - 1, 0, true},
	}
	for _, test := range tests {
		c := newCP(t)
		c.X[0].Set(test.x)
		c.B[1].Set(test.b1)
		c.B[2].Set(test.b2)
		load(t, c, 0, test.inst, Short{Op: NO})
		run(t, c, 1)
		want := uint64(2)
		if test.take {
			want = 0o50 * 4
		}
		if c.PC() != want {
			t.Errorf("%s got: PC=%o expected: %o", test.name, c.PC(), want)
		}
	}
}

func TestReturnJump(t *testing.T) {
	c := newCP(t)
	c.SetPC(0o100 * 4)
	load(t, c, 0o100, Long{Op: RJ, K: 0o200})
	run(t, c, 1)
	link, _ := c.CM.Read(0o200)
	if link != 0o0400000101<<30 {
		t.Errorf("RJ link got: %020o", link)
	}
	if c.PC() != 0o201*4 {
		t.Errorf("RJ PC got: %o", c.PC())
	}
	// The link word jumps back.
	c.SetPC(0o200 * 4)
	run(t, c, 1)
	if c.PC() != 0o101*4 {
		t.Errorf("Return got: PC=%o", c.PC())
	}
}

func TestShifts(t *testing.T) {
	c := newCP(t)
	c.X[1].Set(1 << 58)
	c.X[2].Set(word.W60.Sign())
	c.X[3].Set(0o17)
	c.B[4].Set(word.W18.Mask() - 2) // -2
	load(t, c, 0, Short{Op: LXJK, I: 1, J: 0, K: 3}, Short{Op: AXJK, I: 2, J: 0, K: 6},
		Short{Op: LXB, I: 5, J: 4, K: 3}, Short{Op: MX, I: 6, J: 0, K: 6})
	load(t, c, 1, Short{Op: CX, I: 7, K: 3}, Short{Op: MX, I: 0, J: 7, K: 4})
	run(t, c, 6)
	if c.X[1].Get() != 2 {
		t.Errorf("LX1 3 got: %o", c.X[1].Get())
	}
	if c.X[2].Get() != word.W60.Mask()&^(word.W60.Mask()>>7) {
		t.Errorf("AX2 6 got: %o", c.X[2].Get())
	}
	if c.X[5].Get() != 0o3 {
		t.Errorf("LX5 B4,X3 got: %o", c.X[5].Get())
	}
	if c.X[6].Get() != 0o77<<54 {
		t.Errorf("MX6 6 got: %o", c.X[6].Get())
	}
	if c.X[7].Get() != 4 {
		t.Errorf("CX7 got: %o", c.X[7].Get())
	}
	if c.X[0].Get() != word.W60.Mask() {
		t.Errorf("MX0 74 got: %o", c.X[0].Get())
	}
}

func TestLogical(t *testing.T) {
	c := newCP(t)
	c.X[1].Set(0o1100)
	c.X[2].Set(0o1010)
	load(t, c, 0, Short{Op: BXAnd, I: 3, J: 1, K: 2}, Short{Op: BXXor, I: 4, J: 1, K: 2},
		Short{Op: BXAndNot, I: 5, J: 1, K: 2}, Short{Op: IXSub, I: 6, J: 1, K: 2})
	run(t, c, 4)
	got := []uint64{c.X[3].Get(), c.X[4].Get(), c.X[5].Get(), c.X[6].Get()}
	want := []uint64{0o1000, 0o0110, 0o0100, 0o0070}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Logical results (-want +got):\n%s", diff)
	}
}

func TestExchangeJump(t *testing.T) {
	c := newCP(t)
	c.X[3].Set(0o333)
	c.A[1].Set(0o11)
	c.B[7].Set(0o77)
	c.RA.Set(0)
	in := [PackageSize]uint64{}
	in[0] = packageWord.Insert(0o40, 0o1, 0)
	in[1] = packageWord.Insert(0o2000, 0, 0o5)
	in[2] = packageWord.Insert(0o1000, 0, 0)
	in[3] = packageWord.Insert(0o7<<6|0o2, 0, 0)
	in[8+5] = 0o555
	for i, v := range in {
		_ = c.CM.Write(0o400+uint64(i), v)
	}
	load(t, c, 0o10, Full{Op: XJ, I: 3, K: 0o400})
	c.SetPC(0o10 * 4)
	run(t, c, 1)

	if c.PC() != 0o40*4 || c.RA.Get() != 0o2000 || c.FL.Get() != 0o1000 {
		t.Errorf("XJ loaded: PC=%o RA=%o FL=%o", c.PC(), c.RA.Get(), c.FL.Get())
	}
	if c.A[0].Get() != 1 || c.B[1].Get() != 5 || c.X[5].Get() != 0o555 || c.X[3].Get() != 0 {
		t.Errorf("XJ registers: %s", c.Registers())
	}
	if c.EM.Get() != 0o7 || c.Flags.Get() != 0o2 || !c.Monitor {
		t.Errorf("XJ mode got: EM=%o Flags=%o monitor=%v", c.EM.Get(), c.Flags.Get(), c.Monitor)
	}
	w0, _ := c.CM.Read(0o400)
	w7, _ := c.CM.Read(0o407)
	x3, _ := c.CM.Read(0o413)
	if w0 != packageWord.Insert(0o11, 0, 0) || w7 != packageWord.Insert(0, 0, 0o77) || x3 != 0o333 {
		t.Errorf("XJ stored: %020o %020o %o", w0, w7, x3)
	}
}

func TestStop(t *testing.T) {
	c := newCP(t)
	load(t, c, 0, Long{Op: PS}, Short{Op: FXAdd, I: 1, J: 2, K: 3})
	if err := c.Step(); !errors.Is(err, fault.ErrHalt) || c.PC() != 0 {
		t.Errorf("PS got: %v PC=%o", err, c.PC())
	}
	c.SetPC(2)
	if err := c.Step(); !errors.Is(err, fault.ErrNotImplemented) {
		t.Errorf("FX got: %v", err)
	}
}

func TestSetRegister(t *testing.T) {
	c := newCP(t)
	if err := c.SetRegister("x0", 1<<60); !errors.Is(err, fault.ErrWidth) {
		t.Errorf("X0 too wide got: %v", err)
	}
	if c.X[0].Get() != 0 {
		t.Errorf("X0 changed: %o", c.X[0].Get())
	}
	if err := c.SetRegister("B0", 1); err == nil {
		t.Errorf("B0 deposit succeeded")
	}
	c.SetPC(7)
	if err := c.SetRegister("P", 0o100); err != nil || c.PC() != 0o400 {
		t.Errorf("P deposit got: %v PC=%o", err, c.PC())
	}
	if c.FL.Get() != 0o10000 {
		t.Errorf("Reset FL got: %o", c.FL.Get())
	}
}
