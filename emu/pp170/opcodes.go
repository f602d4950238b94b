/*
 * Cyber - Cyber 170 peripheral processor opcode table
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

package pp170

// Op names a 12 bit peripheral processor instruction.
type Op int

const (
	PSN Op = iota
	LJM
	RJM
	UJN
	ZJN
	NJN
	PJN
	MJN
	SHN
	LMN
	LPN
	SCN
	LDN
	LCN
	ADN
	SBN
	LDC
	ADC
	LPC
	LMC
	LRD
	SRD
	EXN
	MXN
	MAN
	KPT
	LDD
	ADD
	SBD
	LMD
	STD
	RAD
	AOD
	SOD
	LDI
	ADI
	SBI
	LMI
	STI
	RAI
	AOI
	SOI
	LDM
	ADM
	SBM
	LMM
	STM
	RAM
	AOM
	SOM
	CRD
	CRM
	CWD
	CWM
	AJM
	IJM
	FJM
	EJM
	SCF
	CCF
	SFM
	CFM
	IAN
	IAM
	OAN
	OAM
	ACN
	DCN
	FAN
	FNC
	numOps
)

// How the d and m fields are used.
type kind int

const (
	kindImmediate kind = iota // d is the operand
	kindBranch                // d is a short displacement
	kindDirect                // (d)
	kindIndirect              // ((d))
	kindConstant              // d:m
	kindIndexed               // (m+(d))
	kindBlock                 // (d) is a count, m a PP address
	kindChannel               // d is the channel
	kindChannelJump           // d is the channel, m a target or buffer
)

type group int

const (
	groupLoadStore1 group = iota
	groupArith1
	groupLogical1
	groupReplace1
	groupBranch1
	groupCMAccess1
	groupIO1
	groupOther
	groupLoadStore2
	groupArith2
	groupLogical2
	groupReplace2
	groupBranch2
	groupCMAccess2
	groupIO2
	numGroups
)

type opDef struct {
	op    Op
	name  string
	f     uint8 // Function code.
	dlo   uint8 // Accepted range of d.
	dhi   uint8
	long  bool // Two word instruction.
	kind  kind
	group group
}

var opTable = []opDef{
	{LDN, "LDN", 0o14, 0, 0o77, false, kindImmediate, groupLoadStore1},
	{LCN, "LCN", 0o15, 0, 0o77, false, kindImmediate, groupLoadStore1},
	{LRD, "LRD", 0o24, 0, 0o77, false, kindDirect, groupLoadStore1},
	{SRD, "SRD", 0o25, 0, 0o77, false, kindDirect, groupLoadStore1},
	{LDD, "LDD", 0o30, 0, 0o77, false, kindDirect, groupLoadStore1},
	{STD, "STD", 0o34, 0, 0o77, false, kindDirect, groupLoadStore1},
	{LDI, "LDI", 0o40, 0, 0o77, false, kindIndirect, groupLoadStore1},
	{STI, "STI", 0o44, 0, 0o77, false, kindIndirect, groupLoadStore1},

	{ADN, "ADN", 0o16, 0, 0o77, false, kindImmediate, groupArith1},
	{SBN, "SBN", 0o17, 0, 0o77, false, kindImmediate, groupArith1},
	{ADD, "ADD", 0o31, 0, 0o77, false, kindDirect, groupArith1},
	{SBD, "SBD", 0o32, 0, 0o77, false, kindDirect, groupArith1},
	{ADI, "ADI", 0o41, 0, 0o77, false, kindIndirect, groupArith1},
	{SBI, "SBI", 0o42, 0, 0o77, false, kindIndirect, groupArith1},

	{SHN, "SHN", 0o10, 0, 0o77, false, kindImmediate, groupLogical1},
	{LMN, "LMN", 0o11, 0, 0o77, false, kindImmediate, groupLogical1},
	{LPN, "LPN", 0o12, 0, 0o77, false, kindImmediate, groupLogical1},
	{SCN, "SCN", 0o13, 0, 0o77, false, kindImmediate, groupLogical1},
	{LMD, "LMD", 0o33, 0, 0o77, false, kindDirect, groupLogical1},
	{LMI, "LMI", 0o43, 0, 0o77, false, kindIndirect, groupLogical1},

	{RAD, "RAD", 0o35, 0, 0o77, false, kindDirect, groupReplace1},
	{AOD, "AOD", 0o36, 0, 0o77, false, kindDirect, groupReplace1},
	{SOD, "SOD", 0o37, 0, 0o77, false, kindDirect, groupReplace1},
	{RAI, "RAI", 0o45, 0, 0o77, false, kindIndirect, groupReplace1},
	{AOI, "AOI", 0o46, 0, 0o77, false, kindIndirect, groupReplace1},
	{SOI, "SOI", 0o47, 0, 0o77, false, kindIndirect, groupReplace1},

	{UJN, "UJN", 0o03, 0, 0o77, false, kindBranch, groupBranch1},
	{ZJN, "ZJN", 0o04, 0, 0o77, false, kindBranch, groupBranch1},
	{NJN, "NJN", 0o05, 0, 0o77, false, kindBranch, groupBranch1},
	{PJN, "PJN", 0o06, 0, 0o77, false, kindBranch, groupBranch1},
	{MJN, "MJN", 0o07, 0, 0o77, false, kindBranch, groupBranch1},

	{CRD, "CRD", 0o60, 0, 0o77, false, kindDirect, groupCMAccess1},
	{CWD, "CWD", 0o62, 0, 0o77, false, kindDirect, groupCMAccess1},

	{IAN, "IAN", 0o70, 0, 0o77, false, kindChannel, groupIO1},
	{OAN, "OAN", 0o72, 0, 0o77, false, kindChannel, groupIO1},
	{ACN, "ACN", 0o74, 0, 0o77, false, kindChannel, groupIO1},
	{DCN, "DCN", 0o75, 0, 0o77, false, kindChannel, groupIO1},
	{FAN, "FAN", 0o76, 0, 0o77, false, kindChannel, groupIO1},

	{PSN, "PSN", 0o00, 0, 0o77, false, kindImmediate, groupOther},
	{KPT, "KPT", 0o27, 0, 0o77, false, kindImmediate, groupOther},
	{EXN, "EXN", 0o26, 0, 0, false, kindImmediate, groupOther},
	{MXN, "MXN", 0o26, 0o10, 0o10, false, kindImmediate, groupOther},
	{MAN, "MAN", 0o26, 0o20, 0o20, false, kindImmediate, groupOther},

	{LDC, "LDC", 0o20, 0, 0o77, true, kindConstant, groupLoadStore2},
	{LDM, "LDM", 0o50, 0, 0o77, true, kindIndexed, groupLoadStore2},
	{STM, "STM", 0o54, 0, 0o77, true, kindIndexed, groupLoadStore2},

	{ADC, "ADC", 0o21, 0, 0o77, true, kindConstant, groupArith2},
	{ADM, "ADM", 0o51, 0, 0o77, true, kindIndexed, groupArith2},
	{SBM, "SBM", 0o52, 0, 0o77, true, kindIndexed, groupArith2},

	{LPC, "LPC", 0o22, 0, 0o77, true, kindConstant, groupLogical2},
	{LMC, "LMC", 0o23, 0, 0o77, true, kindConstant, groupLogical2},
	{LMM, "LMM", 0o53, 0, 0o77, true, kindIndexed, groupLogical2},

	{RAM, "RAM", 0o55, 0, 0o77, true, kindIndexed, groupReplace2},
	{AOM, "AOM", 0o56, 0, 0o77, true, kindIndexed, groupReplace2},
	{SOM, "SOM", 0o57, 0, 0o77, true, kindIndexed, groupReplace2},

	{LJM, "LJM", 0o01, 0, 0o77, true, kindIndexed, groupBranch2},
	{RJM, "RJM", 0o02, 0, 0o77, true, kindIndexed, groupBranch2},
	{AJM, "AJM", 0o64, 0, 0o37, true, kindChannelJump, groupBranch2},
	{IJM, "IJM", 0o65, 0, 0o37, true, kindChannelJump, groupBranch2},
	{FJM, "FJM", 0o66, 0, 0o37, true, kindChannelJump, groupBranch2},
	{SFM, "SFM", 0o66, 0o40, 0o77, true, kindChannelJump, groupBranch2},
	{EJM, "EJM", 0o67, 0, 0o37, true, kindChannelJump, groupBranch2},
	{CFM, "CFM", 0o67, 0o40, 0o77, true, kindChannelJump, groupBranch2},

	{CRM, "CRM", 0o61, 0, 0o77, true, kindBlock, groupCMAccess2},
	{CWM, "CWM", 0o63, 0, 0o77, true, kindBlock, groupCMAccess2},

	{SCF, "SCF", 0o64, 0o40, 0o77, true, kindChannelJump, groupIO2},
	{CCF, "CCF", 0o65, 0o40, 0o77, true, kindChannelJump, groupIO2},
	{IAM, "IAM", 0o71, 0, 0o77, true, kindChannelJump, groupIO2},
	{OAM, "OAM", 0o73, 0, 0o77, true, kindChannelJump, groupIO2},
	{FNC, "FNC", 0o77, 0, 0o77, true, kindChannelJump, groupIO2},
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
