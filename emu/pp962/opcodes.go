/*
 * Cyber - Cyber 962 peripheral processor opcode table
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

package pp962

// Op names a 16 bit peripheral processor instruction.
type Op int

const (
	PSN Op = iota
	RDSL
	RDCL
	UJN
	ZJN
	NJN
	PJN
	MJN
	SHN
	SHDL
	LMN
	LRDL
	LPN
	LRIL
	SCN
	LDN
	SRDL
	LCN
	SRIL
	ADN
	SBN
	WAIT
	LPDL
	LPIL
	LPML
	LRD
	SRD
	EXN
	MXN
	MAN
	INPN
	KEYP
	LDD
	LDDL
	ADD
	ADDL
	SBD
	SBDL
	LMD
	LMDL
	STD
	STDL
	RAD
	RADL
	AOD
	AODL
	SOD
	SODL
	LDI
	LDIL
	ADI
	ADIL
	SBI
	SBIL
	LMI
	LMIL
	STI
	STIL
	RAI
	RAIL
	AOI
	AOIL
	SOI
	SOIL
	CRD
	CRDL
	CWD
	CWDL
	LJM
	RJM
	LDC
	ADC
	LPC
	LMC
	LDM
	LDML
	ADM
	ADML
	SBM
	SBML
	LMM
	LMML
	STM
	STML
	RAM
	RAML
	AOM
	AOML
	SOM
	SOML
	CRM
	CRML
	CWM
	CWML
	IAN
	OAN
	ACN
	DCN
	FAN
	MCLR
	AJM
	SCF
	IJM
	CCF
	FJM
	SFM
	EJM
	CFM
	FSJM
	FCJM
	IAM
	IAPM
	OAM
	OAPM
	FNC
	CHCM
	CMCH
	numOps
)

// Instruction formats, tried in this order.
type format int

const (
	format16d format = iota
	format16sc
	format32dm
	format32scm
	numFormats
)

// How the d and m fields are used.
type kind int

const (
	kindImmediate kind = iota
	kindBranch
	kindDirect
	kindIndirect
	kindConstant
	kindIndexed
	kindBlock
	kindChannel
	kindChannelJump
)

// Long function codes carry g in the 1000 bit.
const gBit = 0o1000

type opDef struct {
	op     Op
	name   string
	code   uint16 // g and f.
	dlo    uint8
	dhi    uint8
	kind   kind
	format format
	wide   bool // Operates on 16 bit words.
	suffix bool // Shown with W or I for the wait and skip forms.
}

var opTable = []opDef{
	{PSN, "PSN", 0o0000, 0, 0o77, kindImmediate, format16d, false, false},
	{RDSL, "RDSL", 0o1000, 0, 0o77, kindDirect, format16d, true, false},
	{RDCL, "RDCL", 0o1001, 0, 0o77, kindDirect, format16d, true, false},
	{UJN, "UJN", 0o0003, 0, 0o77, kindBranch, format16d, false, false},
	{ZJN, "ZJN", 0o0004, 0, 0o77, kindBranch, format16d, false, false},
	{NJN, "NJN", 0o0005, 0, 0o77, kindBranch, format16d, false, false},
	{PJN, "PJN", 0o0006, 0, 0o77, kindBranch, format16d, false, false},
	{MJN, "MJN", 0o0007, 0, 0o77, kindBranch, format16d, false, false},
	{SHN, "SHN", 0o0010, 0, 0o77, kindImmediate, format16d, false, false},
	{SHDL, "SHDL", 0o1010, 0, 0o77, kindImmediate, format16d, true, false},
	{LMN, "LMN", 0o0011, 0, 0o77, kindImmediate, format16d, false, false},
	{LRDL, "LRDL", 0o1011, 0, 0o77, kindDirect, format16d, true, false},
	{LPN, "LPN", 0o0012, 0, 0o77, kindImmediate, format16d, false, false},
	{LRIL, "LRIL", 0o1012, 0, 0o77, kindIndirect, format16d, true, false},
	{SCN, "SCN", 0o0013, 0, 0o77, kindImmediate, format16d, false, false},
	{LDN, "LDN", 0o0014, 0, 0o77, kindImmediate, format16d, false, false},
	{SRDL, "SRDL", 0o1014, 0, 0o77, kindDirect, format16d, true, false},
	{LCN, "LCN", 0o0015, 0, 0o77, kindImmediate, format16d, false, false},
	{SRIL, "SRIL", 0o1015, 0, 0o77, kindIndirect, format16d, true, false},
	{ADN, "ADN", 0o0016, 0, 0o77, kindImmediate, format16d, false, false},
	{SBN, "SBN", 0o0017, 0, 0o77, kindImmediate, format16d, false, false},
	{WAIT, "WAIT", 0o1017, 0, 0o77, kindImmediate, format16d, true, false},
	{LPDL, "LPDL", 0o1022, 0, 0o77, kindDirect, format16d, true, false},
	{LPIL, "LPIL", 0o1023, 0, 0o77, kindIndirect, format16d, true, false},
	{LRD, "LRD", 0o0024, 0, 0o77, kindDirect, format16d, false, false},
	{SRD, "SRD", 0o0025, 0, 0o77, kindDirect, format16d, false, false},
	{EXN, "EXN", 0o0026, 0, 0o07, kindImmediate, format16d, false, false},
	{MXN, "MXN", 0o0026, 0o10, 0o17, kindImmediate, format16d, false, false},
	{MAN, "MAN", 0o0026, 0o20, 0o37, kindImmediate, format16d, false, false},
	{INPN, "INPN", 0o1026, 0, 0o77, kindImmediate, format16d, true, false},
	{KEYP, "KEYP", 0o0027, 0, 0o77, kindImmediate, format16d, false, false},
	{LDD, "LDD", 0o0030, 0, 0o77, kindDirect, format16d, false, false},
	{LDDL, "LDDL", 0o1030, 0, 0o77, kindDirect, format16d, true, false},
	{ADD, "ADD", 0o0031, 0, 0o77, kindDirect, format16d, false, false},
	{ADDL, "ADDL", 0o1031, 0, 0o77, kindDirect, format16d, true, false},
	{SBD, "SBD", 0o0032, 0, 0o77, kindDirect, format16d, false, false},
	{SBDL, "SBDL", 0o1032, 0, 0o77, kindDirect, format16d, true, false},
	{LMD, "LMD", 0o0033, 0, 0o77, kindDirect, format16d, false, false},
	{LMDL, "LMDL", 0o1033, 0, 0o77, kindDirect, format16d, true, false},
	{STD, "STD", 0o0034, 0, 0o77, kindDirect, format16d, false, false},
	{STDL, "STDL", 0o1034, 0, 0o77, kindDirect, format16d, true, false},
	{RAD, "RAD", 0o0035, 0, 0o77, kindDirect, format16d, false, false},
	{RADL, "RADL", 0o1035, 0, 0o77, kindDirect, format16d, true, false},
	{AOD, "AOD", 0o0036, 0, 0o77, kindDirect, format16d, false, false},
	{AODL, "AODL", 0o1036, 0, 0o77, kindDirect, format16d, true, false},
	{SOD, "SOD", 0o0037, 0, 0o77, kindDirect, format16d, false, false},
	{SODL, "SODL", 0o1037, 0, 0o77, kindDirect, format16d, true, false},
	{LDI, "LDI", 0o0040, 0, 0o77, kindIndirect, format16d, false, false},
	{LDIL, "LDIL", 0o1040, 0, 0o77, kindIndirect, format16d, true, false},
	{ADI, "ADI", 0o0041, 0, 0o77, kindIndirect, format16d, false, false},
	{ADIL, "ADIL", 0o1041, 0, 0o77, kindIndirect, format16d, true, false},
	{SBI, "SBI", 0o0042, 0, 0o77, kindIndirect, format16d, false, false},
	{SBIL, "SBIL", 0o1042, 0, 0o77, kindIndirect, format16d, true, false},
	{LMI, "LMI", 0o0043, 0, 0o77, kindIndirect, format16d, false, false},
	{LMIL, "LMIL", 0o1043, 0, 0o77, kindIndirect, format16d, true, false},
	{STI, "STI", 0o0044, 0, 0o77, kindIndirect, format16d, false, false},
	{STIL, "STIL", 0o1044, 0, 0o77, kindIndirect, format16d, true, false},
	{RAI, "RAI", 0o0045, 0, 0o77, kindIndirect, format16d, false, false},
	{RAIL, "RAIL", 0o1045, 0, 0o77, kindIndirect, format16d, true, false},
	{AOI, "AOI", 0o0046, 0, 0o77, kindIndirect, format16d, false, false},
	{AOIL, "AOIL", 0o1046, 0, 0o77, kindIndirect, format16d, true, false},
	{SOI, "SOI", 0o0047, 0, 0o77, kindIndirect, format16d, false, false},
	{SOIL, "SOIL", 0o1047, 0, 0o77, kindIndirect, format16d, true, false},
	{CRD, "CRD", 0o0060, 0, 0o77, kindDirect, format16d, false, false},
	{CRDL, "CRDL", 0o1060, 0, 0o77, kindDirect, format16d, true, false},
	{CWD, "CWD", 0o0062, 0, 0o77, kindDirect, format16d, false, false},
	{CWDL, "CWDL", 0o1062, 0, 0o77, kindDirect, format16d, true, false},

	{IAN, "IAN", 0o0070, 0, 0o77, kindChannel, format16sc, false, true},
	{OAN, "OAN", 0o0072, 0, 0o77, kindChannel, format16sc, false, true},
	{ACN, "ACN", 0o0074, 0, 0o77, kindChannel, format16sc, false, true},
	{DCN, "DCN", 0o0075, 0, 0o77, kindChannel, format16sc, false, true},
	{FAN, "FAN", 0o0076, 0, 0o77, kindChannel, format16sc, false, true},
	{MCLR, "MCLR", 0o1074, 0, 0o37, kindChannel, format16sc, true, false},

	{LJM, "LJM", 0o0001, 0, 0o77, kindIndexed, format32dm, false, false},
	{RJM, "RJM", 0o0002, 0, 0o77, kindIndexed, format32dm, false, false},
	{LDC, "LDC", 0o0020, 0, 0o77, kindConstant, format32dm, false, false},
	{ADC, "ADC", 0o0021, 0, 0o77, kindConstant, format32dm, false, false},
	{LPC, "LPC", 0o0022, 0, 0o77, kindConstant, format32dm, false, false},
	{LMC, "LMC", 0o0023, 0, 0o77, kindConstant, format32dm, false, false},
	{LPML, "LPML", 0o1024, 0, 0o77, kindIndexed, format32dm, true, false},
	{LDM, "LDM", 0o0050, 0, 0o77, kindIndexed, format32dm, false, false},
	{LDML, "LDML", 0o1050, 0, 0o77, kindIndexed, format32dm, true, false},
	{ADM, "ADM", 0o0051, 0, 0o77, kindIndexed, format32dm, false, false},
	{ADML, "ADML", 0o1051, 0, 0o77, kindIndexed, format32dm, true, false},
	{SBM, "SBM", 0o0052, 0, 0o77, kindIndexed, format32dm, false, false},
	{SBML, "SBML", 0o1052, 0, 0o77, kindIndexed, format32dm, true, false},
	{LMM, "LMM", 0o0053, 0, 0o77, kindIndexed, format32dm, false, false},
	{LMML, "LMML", 0o1053, 0, 0o77, kindIndexed, format32dm, true, false},
	{STM, "STM", 0o0054, 0, 0o77, kindIndexed, format32dm, false, false},
	{STML, "STML", 0o1054, 0, 0o77, kindIndexed, format32dm, true, false},
	{RAM, "RAM", 0o0055, 0, 0o77, kindIndexed, format32dm, false, false},
	{RAML, "RAML", 0o1055, 0, 0o77, kindIndexed, format32dm, true, false},
	{AOM, "AOM", 0o0056, 0, 0o77, kindIndexed, format32dm, false, false},
	{AOML, "AOML", 0o1056, 0, 0o77, kindIndexed, format32dm, true, false},
	{SOM, "SOM", 0o0057, 0, 0o77, kindIndexed, format32dm, false, false},
	{SOML, "SOML", 0o1057, 0, 0o77, kindIndexed, format32dm, true, false},
	{CRM, "CRM", 0o0061, 0, 0o77, kindBlock, format32dm, false, false},
	{CRML, "CRML", 0o1061, 0, 0o77, kindBlock, format32dm, true, false},
	{CWM, "CWM", 0o0063, 0, 0o77, kindBlock, format32dm, false, false},
	{CWML, "CWML", 0o1063, 0, 0o77, kindBlock, format32dm, true, false},

	{AJM, "AJM", 0o0064, 0, 0o37, kindChannelJump, format32scm, false, false},
	{SCF, "SCF", 0o0064, 0o40, 0o77, kindChannelJump, format32scm, false, false},
	{IJM, "IJM", 0o0065, 0, 0o37, kindChannelJump, format32scm, false, false},
	{CCF, "CCF", 0o0065, 0o40, 0o77, kindChannelJump, format32scm, false, false},
	{FJM, "FJM", 0o0066, 0, 0o37, kindChannelJump, format32scm, false, false},
	{SFM, "SFM", 0o0066, 0o40, 0o77, kindChannelJump, format32scm, false, false},
	{EJM, "EJM", 0o0067, 0, 0o37, kindChannelJump, format32scm, false, false},
	{CFM, "CFM", 0o0067, 0o40, 0o77, kindChannelJump, format32scm, false, false},
	{FSJM, "FSJM", 0o1064, 0, 0o37, kindChannelJump, format32scm, true, false},
	{FCJM, "FCJM", 0o1065, 0, 0o37, kindChannelJump, format32scm, true, false},
	{IAM, "IAM", 0o0071, 0, 0o77, kindChannelJump, format32scm, false, false},
	{IAPM, "IAPM", 0o1071, 0, 0o77, kindChannelJump, format32scm, true, false},
	{OAM, "OAM", 0o0073, 0, 0o77, kindChannelJump, format32scm, false, false},
	{OAPM, "OAPM", 0o1073, 0, 0o77, kindChannelJump, format32scm, true, false},
	{FNC, "FNC", 0o0077, 0, 0o77, kindChannelJump, format32scm, false, true},
	{CHCM, "CHCM", 0o1070, 0, 0o37, kindChannelJump, format32scm, true, false},
	{CMCH, "CMCH", 0o1072, 0, 0o37, kindChannelJump, format32scm, true, false},
}

var (
	opInfo   [numOps]*opDef
	byFormat [numFormats][]*opDef
)

func init() {
	for i := range opTable {
		def := &opTable[i]
		opInfo[def.op] = def
		byFormat[def.format] = append(byFormat[def.format], def)
	}
}

func (op Op) String() string {
	if op < 0 || op >= numOps || opInfo[op] == nil {
		return "???"
	}
	return opInfo[op].name
}

// Code returns the function code with g in the 1000 bit.
func (op Op) Code() uint16 {
	return opInfo[op].code
}

func (op Op) long() bool {
	return opInfo[op].format >= format32dm
}
