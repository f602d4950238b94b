/*
 * Cyber - Cyber 170 central processor opcode table
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

import "github.com/rcornwell/cyber/emu/word"

// Op names a Cyber 170 central processor instruction.
type Op int

const (
	PS Op = iota
	RJ
	RE
	WE
	XJ
	JP
	ZR
	NZ
	PL
	NG
	IR
	OR
	DF
	ID
	EQ
	NE
	GE
	LT
	BXMove
	BXAnd
	BXOr
	BXXor
	BXNot
	BXAndNot
	BXOrNot
	BXXorNot
	LXJK
	AXJK
	LXB
	AXB
	NX
	ZX
	UX
	PX
	FXAdd
	FXSub
	DXAdd
	DXSub
	RXAdd
	RXSub
	IXAdd
	IXSub
	FXMul
	RXMul
	DXMul
	MX
	FXDiv
	RXDiv
	NO
	IM
	DM
	CC
	CU
	CX
	SAAK
	SABK
	SAXK
	SAXB
	SAAB
	SAAmB
	SABB
	SABmB
	SBAK
	SBBK
	SBXK
	SBXB
	SBAB
	SBAmB
	SBBB
	SBBmB
	SXAK
	SXBK
	SXXK
	SXXB
	SXAB
	SXAmB
	SXBB
	SXBmB
	numOps
)

type group int

const (
	groupIntegerArith group = iota
	groupShift
	groupLogical
	groupTransmit
	groupFloatArith
	groupIncrement15
	groupPass
	groupBranch
	groupBlockCopy
	groupJump
	groupIncrement30
	groupExchangeJump
	groupCompareMove
	numGroups
)

type opDef struct {
	op    Op
	name  string
	code  uint8 // Six bit opcode.
	ilo   uint8 // Accepted range of i.
	ihi   uint8
	width word.Width
	group group
	text  string // Assembler form, fields in braces.
}

var opTable = []opDef{
	{IXAdd, "IX+", 0o36, 0, 7, word.W15, groupIntegerArith, "IX{i} X{j}+X{k}"},
	{IXSub, "IX-", 0o37, 0, 7, word.W15, groupIntegerArith, "IX{i} X{j}-X{k}"},
	{UX, "UX", 0o26, 0, 7, word.W15, groupIntegerArith, "UX{i} B{j},X{k}"},
	{PX, "PX", 0o27, 0, 7, word.W15, groupIntegerArith, "PX{i} B{j},X{k}"},
	{CX, "CX", 0o47, 0, 7, word.W15, groupIntegerArith, "CX{i} X{k}"},

	{LXJK, "LX", 0o20, 0, 7, word.W15, groupShift, "LX{i} {jk}"},
	{AXJK, "AX", 0o21, 0, 7, word.W15, groupShift, "AX{i} {jk}"},
	{LXB, "LX", 0o22, 0, 7, word.W15, groupShift, "LX{i} B{j},X{k}"},
	{AXB, "AX", 0o23, 0, 7, word.W15, groupShift, "AX{i} B{j},X{k}"},
	{MX, "MX", 0o43, 0, 7, word.W15, groupShift, "MX{i} {jk}"},

	{BXAnd, "BX*", 0o11, 0, 7, word.W15, groupLogical, "BX{i} X{j}*X{k}"},
	{BXOr, "BX+", 0o12, 0, 7, word.W15, groupLogical, "BX{i} X{j}+X{k}"},
	{BXXor, "BX-", 0o13, 0, 7, word.W15, groupLogical, "BX{i} X{j}-X{k}"},
	{BXAndNot, "BX-*", 0o15, 0, 7, word.W15, groupLogical, "BX{i} -X{k}*X{j}"},
	{BXOrNot, "BX-+", 0o16, 0, 7, word.W15, groupLogical, "BX{i} -X{k}+X{j}"},
	{BXXorNot, "BX--", 0o17, 0, 7, word.W15, groupLogical, "BX{i} -X{k}-X{j}"},

	{BXMove, "BX", 0o10, 0, 7, word.W15, groupTransmit, "BX{i} X{j}"},
	{BXNot, "BX-", 0o14, 0, 7, word.W15, groupTransmit, "BX{i} -X{k}"},

	{NX, "NX", 0o24, 0, 7, word.W15, groupFloatArith, "NX{i} B{j},X{k}"},
	{ZX, "ZX", 0o25, 0, 7, word.W15, groupFloatArith, "ZX{i} B{j},X{k}"},
	{FXAdd, "FX+", 0o30, 0, 7, word.W15, groupFloatArith, "FX{i} X{j}+X{k}"},
	{FXSub, "FX-", 0o31, 0, 7, word.W15, groupFloatArith, "FX{i} X{j}-X{k}"},
	{DXAdd, "DX+", 0o32, 0, 7, word.W15, groupFloatArith, "DX{i} X{j}+X{k}"},
	{DXSub, "DX-", 0o33, 0, 7, word.W15, groupFloatArith, "DX{i} X{j}-X{k}"},
	{RXAdd, "RX+", 0o34, 0, 7, word.W15, groupFloatArith, "RX{i} X{j}+X{k}"},
	{RXSub, "RX-", 0o35, 0, 7, word.W15, groupFloatArith, "RX{i} X{j}-X{k}"},
	{FXMul, "FX*", 0o40, 0, 7, word.W15, groupFloatArith, "FX{i} X{j}*X{k}"},
	{RXMul, "RX*", 0o41, 0, 7, word.W15, groupFloatArith, "RX{i} X{j}*X{k}"},
	{DXMul, "DX*", 0o42, 0, 7, word.W15, groupFloatArith, "DX{i} X{j}*X{k}"},
	{FXDiv, "FX/", 0o44, 0, 7, word.W15, groupFloatArith, "FX{i} X{j}/X{k}"},
	{RXDiv, "RX/", 0o45, 0, 7, word.W15, groupFloatArith, "RX{i} X{j}/X{k}"},

	{SAXB, "SA", 0o53, 0, 7, word.W15, groupIncrement15, "SA{i} X{j}+B{k}"},
	{SAAB, "SA", 0o54, 0, 7, word.W15, groupIncrement15, "SA{i} A{j}+B{k}"},
	{SAAmB, "SA", 0o55, 0, 7, word.W15, groupIncrement15, "SA{i} A{j}-B{k}"},
	{SABB, "SA", 0o56, 0, 7, word.W15, groupIncrement15, "SA{i} B{j}+B{k}"},
	{SABmB, "SA", 0o57, 0, 7, word.W15, groupIncrement15, "SA{i} B{j}-B{k}"},
	{SBXB, "SB", 0o63, 0, 7, word.W15, groupIncrement15, "SB{i} X{j}+B{k}"},
	{SBAB, "SB", 0o64, 0, 7, word.W15, groupIncrement15, "SB{i} A{j}+B{k}"},
	{SBAmB, "SB", 0o65, 0, 7, word.W15, groupIncrement15, "SB{i} A{j}-B{k}"},
	{SBBB, "SB", 0o66, 0, 7, word.W15, groupIncrement15, "SB{i} B{j}+B{k}"},
	{SBBmB, "SB", 0o67, 0, 7, word.W15, groupIncrement15, "SB{i} B{j}-B{k}"},
	{SXXB, "SX", 0o73, 0, 7, word.W15, groupIncrement15, "SX{i} X{j}+B{k}"},
	{SXAB, "SX", 0o74, 0, 7, word.W15, groupIncrement15, "SX{i} A{j}+B{k}"},
	{SXAmB, "SX", 0o75, 0, 7, word.W15, groupIncrement15, "SX{i} A{j}-B{k}"},
	{SXBB, "SX", 0o76, 0, 7, word.W15, groupIncrement15, "SX{i} B{j}+B{k}"},
	{SXBmB, "SX", 0o77, 0, 7, word.W15, groupIncrement15, "SX{i} B{j}-B{k}"},

	{NO, "NO", 0o46, 0, 3, word.W15, groupPass, "NO"},

	{ZR, "ZR", 0o03, 0, 0, word.W30, groupBranch, "ZR X{j},{K}"},
	{NZ, "NZ", 0o03, 1, 1, word.W30, groupBranch, "NZ X{j},{K}"},
	{PL, "PL", 0o03, 2, 2, word.W30, groupBranch, "PL X{j},{K}"},
	{NG, "NG", 0o03, 3, 3, word.W30, groupBranch, "NG X{j},{K}"},
	{IR, "IR", 0o03, 4, 4, word.W30, groupBranch, "IR X{j},{K}"},
	{OR, "OR", 0o03, 5, 5, word.W30, groupBranch, "OR X{j},{K}"},
	{DF, "DF", 0o03, 6, 6, word.W30, groupBranch, "DF X{j},{K}"},
	{ID, "ID", 0o03, 7, 7, word.W30, groupBranch, "ID X{j},{K}"},
	{EQ, "EQ", 0o04, 0, 7, word.W30, groupBranch, "EQ B{i},B{j},{K}"},
	{NE, "NE", 0o05, 0, 7, word.W30, groupBranch, "NE B{i},B{j},{K}"},
	{GE, "GE", 0o06, 0, 7, word.W30, groupBranch, "GE B{i},B{j},{K}"},
	{LT, "LT", 0o07, 0, 7, word.W30, groupBranch, "LT B{i},B{j},{K}"},

	{RE, "RE", 0o01, 1, 1, word.W30, groupBlockCopy, "RE B{j}+{K}"},
	{WE, "WE", 0o01, 2, 2, word.W30, groupBlockCopy, "WE B{j}+{K}"},

	{PS, "PS", 0o00, 0, 7, word.W30, groupJump, "PS"},
	{RJ, "RJ", 0o01, 0, 0, word.W30, groupJump, "RJ {K}"},
	{JP, "JP", 0o02, 0, 7, word.W30, groupJump, "JP B{i}+{K}"},

	{SAAK, "SA", 0o50, 0, 7, word.W30, groupIncrement30, "SA{i} A{j}+{K}"},
	{SABK, "SA", 0o51, 0, 7, word.W30, groupIncrement30, "SA{i} B{j}+{K}"},
	{SAXK, "SA", 0o52, 0, 7, word.W30, groupIncrement30, "SA{i} X{j}+{K}"},
	{SBAK, "SB", 0o60, 0, 7, word.W30, groupIncrement30, "SB{i} A{j}+{K}"},
	{SBBK, "SB", 0o61, 0, 7, word.W30, groupIncrement30, "SB{i} B{j}+{K}"},
	{SBXK, "SB", 0o62, 0, 7, word.W30, groupIncrement30, "SB{i} X{j}+{K}"},
	{SXAK, "SX", 0o70, 0, 7, word.W30, groupIncrement30, "SX{i} A{j}+{K}"},
	{SXBK, "SX", 0o71, 0, 7, word.W30, groupIncrement30, "SX{i} B{j}+{K}"},
	{SXXK, "SX", 0o72, 0, 7, word.W30, groupIncrement30, "SX{i} X{j}+{K}"},

	{XJ, "XJ", 0o01, 3, 3, word.W60, groupExchangeJump, "XJ B{j}+{K}"},

	{IM, "IM", 0o46, 4, 4, word.W60, groupCompareMove, "IM B{j}+{K}"},
	{DM, "DM", 0o46, 5, 5, word.W60, groupCompareMove, "DM {desc}"},
	{CC, "CC", 0o46, 6, 6, word.W60, groupCompareMove, "CC {desc}"},
	{CU, "CU", 0o46, 7, 7, word.W60, groupCompareMove, "CU {desc}"},
}

var (
	opInfo  [numOps]*opDef
	byGroup [numGroups][]*opDef
)

func init() {
	for i := range opTable {
		def := &opTable[i]
		opInfo[def.op] = def
		byGroup[def.group] = append(byGroup[def.group], def)
	}
}

func (op Op) String() string {
	if op < 0 || op >= numOps || opInfo[op] == nil {
		return "???"
	}
	return opInfo[op].name
}

// Width of the instruction in bits.
func (op Op) Width() word.Width {
	return opInfo[op].width
}

// Descriptor operand of the compare and move instructions.
func (op Op) moves() bool {
	return op == DM || op == CC || op == CU
}

// Register a set instruction loads and the operand it forms.
type setTarget byte

const (
	setA setTarget = 'A'
	setB setTarget = 'B'
	setX setTarget = 'X'
)

type operand int

const (
	srcAK  operand = iota // Aj+K
	srcBK                 // Bj+K
	srcXK                 // Xj+K
	srcXB                 // Xj+Bk
	srcAB                 // Aj+Bk
	srcAmB                // Aj-Bk
	srcBB                 // Bj+Bk
	srcBmB                // Bj-Bk
)

type increment struct {
	target setTarget
	src    operand
}

var increments = map[Op]increment{
	SAAK: {setA, srcAK}, SABK: {setA, srcBK}, SAXK: {setA, srcXK},
	SAXB: {setA, srcXB}, SAAB: {setA, srcAB}, SAAmB: {setA, srcAmB},
	SABB: {setA, srcBB}, SABmB: {setA, srcBmB},
	SBAK: {setB, srcAK}, SBBK: {setB, srcBK}, SBXK: {setB, srcXK},
	SBXB: {setB, srcXB}, SBAB: {setB, srcAB}, SBAmB: {setB, srcAmB},
	SBBB: {setB, srcBB}, SBBmB: {setB, srcBmB},
	SXAK: {setX, srcAK}, SXBK: {setX, srcBK}, SXXK: {setX, srcXK},
	SXXB: {setX, srcXB}, SXAB: {setX, srcAB}, SXAmB: {setX, srcAmB},
	SXBB: {setX, srcBB}, SXBmB: {setX, srcBmB},
}
