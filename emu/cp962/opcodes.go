/*
 * Cyber - Cyber 180 central processor opcodes
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

// Op names a 64 bit central processor instruction.
type Op int

const (
	HALT Op = iota
	SYNC
	EXCHANGE
	INTRUPT
	RETURN
	PURGE
	POP
	PSFSA
	CPYTX
	CPYAA
	CPYXA
	CPYAX
	CPYRR
	CPYXX
	CPYSX
	CPYXS
	INCX
	DECX
	LBSET
	TPAGE
	LPAGE
	IORX
	XORX
	ANDX
	NOTX
	INHX
	MARK
	ENTZOS
	ADDR
	SUBR
	MULR
	DIVR
	ADDX
	SUBX
	MULX
	DIVX
	INCR
	DECR
	ADDAX
	CMPR
	CMPX
	BRREL
	BRDIR
	ADDF
	SUBF
	MULF
	DIVF
	ADDD
	SUBD
	MULD
	DIVD
	ENTX
	CNIF
	CNFI
	CMPF
	ENTP
	ENTN
	ENTL
	ADDFV
	SUBFV
	MULFV
	DIVFV
	ADDXV
	SUBXV
	IORV
	XORV
	ANDV
	CNIFV
	CNFIV
	SHFV
	CMPEQV
	CMPLTV
	CMPGEV
	CMPNEV
	MRGV
	GTHV
	SCTV
	SUMFV
	TPSFV
	TPDFV
	TSPFV
	TDPFV
	SUMPFV
	GTHIV
	SCTIV
	ADDN
	SUBN
	MULN
	DIVN
	CMPN
	MOVN
	MOVB
	CMPB
	LMULT
	SMULT
	LX
	SX
	LA
	SA
	LBYTP
	ENTC
	LBIT
	SBIT
	ADDRQ
	ADDXQ
	MULRQ
	ENTE
	ADDAQ
	ADDPXQ
	BRREQ
	BRRNE
	BRRGT
	BRRGE
	BRXEQ
	BRXNE
	BRXGT
	BRXGE
	BRFEQ
	BRFNE
	BRFGT
	BRFGE
	BRINC
	BRSEG
	BR9E
	BRCR
	LAI
	SAI
	LXI
	SXI
	LBYT
	SBYT
	ADDAD
	SHFC
	SHFX
	SHFR
	ISOM
	ISOB
	INSB
	CALLREL
	KEYPOINT
	MULXQ
	ENTA
	CMPXA
	CALLSEG
	RESBD
	RESBE
	RESBF
	EXECUTE
	LBYTS
	SBYTS
	SCLN
	SCLR
	CMPC
	TRANB
	EDIT
	SCNB
	MOVI
	CMPI
	ADDI
	numOps
)

// Instruction formats, picked by the opcode byte.
type format int

const (
	formJK format = iota
	formJKID
	formJKQ
	formSJKID
)

func formatOf(code uint8) format {
	switch {
	case code < 0x40, code >= 0x70 && code < 0x80:
		return formJK
	case code >= 0x80 && code < 0xa0, code >= 0xb0 && code < 0xc0:
		return formJKQ
	case code >= 0xc0 && code < 0xe0:
		return formSJKID
	}
	return formJKID
}

// Size in bytes of an instruction of format f.
func (f format) size() uint64 {
	if f == formJK {
		return 2
	}
	return 4
}

// Opcode definition. SjkiD instructions occupy code through last,
// the S field is the low nibble of the opcode byte.
type opDef struct {
	op   Op
	name string
	code uint8
	last uint8
	text string
}

var opTable = []opDef{
	{HALT, "HALT", 0x00, 0x00, "HALT"},
	{SYNC, "SYNC", 0x01, 0x01, "SYNC"},
	{EXCHANGE, "EXCHANGE", 0x02, 0x02, "EXCHANGE"},
	{INTRUPT, "INTRUPT", 0x03, 0x03, "INTRUPT X{k}"},
	{RETURN, "RETURN", 0x04, 0x04, "RETURN"},
	{PURGE, "PURGE", 0x05, 0x05, "PURGE X{k},{j}"},
	{POP, "POP", 0x06, 0x06, "POP"},
	{PSFSA, "PSFSA", 0x07, 0x07, "PSFSA"},
	{CPYTX, "CPYTX", 0x08, 0x08, "CPYTX X{k},X{j}"},
	{CPYAA, "CPYAA", 0x09, 0x09, "CPYAA A{k},A{j}"},
	{CPYXA, "CPYXA", 0x0a, 0x0a, "CPYXA A{k},X{j}"},
	{CPYAX, "CPYAX", 0x0b, 0x0b, "CPYAX X{k},A{j}"},
	{CPYRR, "CPYRR", 0x0c, 0x0c, "CPYRR X{k},X{j}"},
	{CPYXX, "CPYXX", 0x0d, 0x0d, "CPYXX X{k},X{j}"},
	{CPYSX, "CPYSX", 0x0e, 0x0e, "CPYSX X{k},{j}"},
	{CPYXS, "CPYXS", 0x0f, 0x0f, "CPYXS {k},X{j}"},

	{INCX, "INCX", 0x10, 0x10, "INCX X{k},{j}"},
	{DECX, "DECX", 0x11, 0x11, "DECX X{k},{j}"},
	{LBSET, "LBSET", 0x14, 0x14, "LBSET X{k},A{j},X0"},
	{TPAGE, "TPAGE", 0x16, 0x16, "TPAGE X{k},A{j}"},
	{LPAGE, "LPAGE", 0x17, 0x17, "LPAGE X{k},X{j},X1"},
	{IORX, "IORX", 0x18, 0x18, "IORX X{k},X{j}"},
	{XORX, "XORX", 0x19, 0x19, "XORX X{k},X{j}"},
	{ANDX, "ANDX", 0x1a, 0x1a, "ANDX X{k},X{j}"},
	{NOTX, "NOTX", 0x1b, 0x1b, "NOTX X{k},X{j}"},
	{INHX, "INHX", 0x1c, 0x1c, "INHX X{k},X{j}"},
	{MARK, "MARK", 0x1e, 0x1e, "MARK X{k},X1,{j}"},
	{ENTZOS, "ENTZOS", 0x1f, 0x1f, "ENTZOS X{k},{j}"},

	{ADDR, "ADDR", 0x20, 0x20, "ADDR X{k},X{j}"},
	{SUBR, "SUBR", 0x21, 0x21, "SUBR X{k},X{j}"},
	{MULR, "MULR", 0x22, 0x22, "MULR X{k},X{j}"},
	{DIVR, "DIVR", 0x23, 0x23, "DIVR X{k},X{j}"},
	{ADDX, "ADDX", 0x24, 0x24, "ADDX X{k},X{j}"},
	{SUBX, "SUBX", 0x25, 0x25, "SUBX X{k},X{j}"},
	{MULX, "MULX", 0x26, 0x26, "MULX X{k},X{j}"},
	{DIVX, "DIVX", 0x27, 0x27, "DIVX X{k},X{j}"},
	{INCR, "INCR", 0x28, 0x28, "INCR X{k},{j}"},
	{DECR, "DECR", 0x29, 0x29, "DECR X{k},{j}"},
	{ADDAX, "ADDAX", 0x2a, 0x2a, "ADDAX A{k},X{j}"},
	{CMPR, "CMPR", 0x2c, 0x2c, "CMPR X1,X{j},X{k}"},
	{CMPX, "CMPX", 0x2d, 0x2d, "CMPX X1,X{j},X{k}"},
	{BRREL, "BRREL", 0x2e, 0x2e, "BRREL X{k}"},
	{BRDIR, "BRDIR", 0x2f, 0x2f, "BRDIR A{j},X{k}"},

	{ADDF, "ADDF", 0x30, 0x30, "ADDF X{k},X{j}"},
	{SUBF, "SUBF", 0x31, 0x31, "SUBF X{k},X{j}"},
	{MULF, "MULF", 0x32, 0x32, "MULF X{k},X{j}"},
	{DIVF, "DIVF", 0x33, 0x33, "DIVF X{k},X{j}"},
	{ADDD, "ADDD", 0x34, 0x34, "ADDD X{k},X{j}"},
	{SUBD, "SUBD", 0x35, 0x35, "SUBD X{k},X{j}"},
	{MULD, "MULD", 0x36, 0x36, "MULD X{k},X{j}"},
	{DIVD, "DIVD", 0x37, 0x37, "DIVD X{k},X{j}"},
	{ENTX, "ENTX", 0x39, 0x39, "ENTX X1,{jk}"},
	{CNIF, "CNIF", 0x3a, 0x3a, "CNIF X{k},X{j}"},
	{CNFI, "CNFI", 0x3b, 0x3b, "CNFI X{k},X{j}"},
	{CMPF, "CMPF", 0x3c, 0x3c, "CMPF X1,X{j},X{k}"},
	{ENTP, "ENTP", 0x3d, 0x3d, "ENTP X{k},{j}"},
	{ENTN, "ENTN", 0x3e, 0x3e, "ENTN X{k},{j}"},
	{ENTL, "ENTL", 0x3f, 0x3f, "ENTL X0,{jk}"},

	{ADDFV, "ADDFV", 0x40, 0x40, ""},
	{SUBFV, "SUBFV", 0x41, 0x41, ""},
	{MULFV, "MULFV", 0x42, 0x42, ""},
	{DIVFV, "DIVFV", 0x43, 0x43, ""},
	{ADDXV, "ADDXV", 0x44, 0x44, ""},
	{SUBXV, "SUBXV", 0x45, 0x45, ""},
	{IORV, "IORV", 0x48, 0x48, ""},
	{XORV, "XORV", 0x49, 0x49, ""},
	{ANDV, "ANDV", 0x4a, 0x4a, ""},
	{CNIFV, "CNIFV", 0x4b, 0x4b, ""},
	{CNFIV, "CNFIV", 0x4c, 0x4c, ""},
	{SHFV, "SHFV", 0x4d, 0x4d, ""},

	{CMPEQV, "CMPEQV", 0x50, 0x50, ""},
	{CMPLTV, "CMPLTV", 0x51, 0x51, ""},
	{CMPGEV, "CMPGEV", 0x52, 0x52, ""},
	{CMPNEV, "CMPNEV", 0x53, 0x53, ""},
	{MRGV, "MRGV", 0x54, 0x54, ""},
	{GTHV, "GTHV", 0x55, 0x55, ""},
	{SCTV, "SCTV", 0x56, 0x56, ""},
	{SUMFV, "SUMFV", 0x57, 0x57, ""},
	{TPSFV, "TPSFV", 0x58, 0x58, ""},
	{TPDFV, "TPDFV", 0x59, 0x59, ""},
	{TSPFV, "TSPFV", 0x5a, 0x5a, ""},
	{TDPFV, "TDPFV", 0x5b, 0x5b, ""},
	{SUMPFV, "SUMPFV", 0x5c, 0x5c, ""},
	{GTHIV, "GTHIV", 0x5d, 0x5d, ""},
	{SCTIV, "SCTIV", 0x5e, 0x5e, ""},

	{ADDN, "ADDN", 0x70, 0x70, ""},
	{SUBN, "SUBN", 0x71, 0x71, ""},
	{MULN, "MULN", 0x72, 0x72, ""},
	{DIVN, "DIVN", 0x73, 0x73, ""},
	{CMPN, "CMPN", 0x74, 0x74, ""},
	{MOVN, "MOVN", 0x75, 0x75, ""},
	{MOVB, "MOVB", 0x76, 0x76, ""},
	{CMPB, "CMPB", 0x77, 0x77, ""},

	{LMULT, "LMULT", 0x80, 0x80, "LMULT X{k},A{j},{Q}"},
	{SMULT, "SMULT", 0x81, 0x81, "SMULT X{k},A{j},{Q}"},
	{LX, "LX", 0x82, 0x82, "LX X{k},A{j},{Q}"},
	{SX, "SX", 0x83, 0x83, "SX X{k},A{j},{Q}"},
	{LA, "LA", 0x84, 0x84, "LA A{k},A{j},{Q}"},
	{SA, "SA", 0x85, 0x85, "SA A{k},A{j},{Q}"},
	{LBYTP, "LBYTP", 0x86, 0x86, "LBYTP,{j} X{k},{Q}"},
	{ENTC, "ENTC", 0x87, 0x87, "ENTC X1,{jkQ}"},
	{LBIT, "LBIT", 0x88, 0x88, "LBIT X{k},A{j},{Q},X0"},
	{SBIT, "SBIT", 0x89, 0x89, "SBIT X{k},A{j},{Q},X0"},
	{ADDRQ, "ADDRQ", 0x8a, 0x8a, "ADDRQ X{k},X{j},{Q}"},
	{ADDXQ, "ADDXQ", 0x8b, 0x8b, "ADDXQ X{k},X{j},{Q}"},
	{MULRQ, "MULRQ", 0x8c, 0x8c, "MULRQ X{k},X{j},{Q}"},
	{ENTE, "ENTE", 0x8d, 0x8d, "ENTE X{k},{Q}"},
	{ADDAQ, "ADDAQ", 0x8e, 0x8e, "ADDAQ A{k},A{j},{Q}"},
	{ADDPXQ, "ADDPXQ", 0x8f, 0x8f, "ADDPXQ A{k},X{j},{Q}"},

	{BRREQ, "BRREQ", 0x90, 0x90, "BRREQ X{j},X{k},{Q}"},
	{BRRNE, "BRRNE", 0x91, 0x91, "BRRNE X{j},X{k},{Q}"},
	{BRRGT, "BRRGT", 0x92, 0x92, "BRRGT X{j},X{k},{Q}"},
	{BRRGE, "BRRGE", 0x93, 0x93, "BRRGE X{j},X{k},{Q}"},
	{BRXEQ, "BRXEQ", 0x94, 0x94, "BRXEQ X{j},X{k},{Q}"},
	{BRXNE, "BRXNE", 0x95, 0x95, "BRXNE X{j},X{k},{Q}"},
	{BRXGT, "BRXGT", 0x96, 0x96, "BRXGT X{j},X{k},{Q}"},
	{BRXGE, "BRXGE", 0x97, 0x97, "BRXGE X{j},X{k},{Q}"},
	{BRFEQ, "BRFEQ", 0x98, 0x98, "BRFEQ X{j},X{k},{Q}"},
	{BRFNE, "BRFNE", 0x99, 0x99, "BRFNE X{j},X{k},{Q}"},
	{BRFGT, "BRFGT", 0x9a, 0x9a, "BRFGT X{j},X{k},{Q}"},
	{BRFGE, "BRFGE", 0x9b, 0x9b, "BRFGE X{j},X{k},{Q}"},
	{BRINC, "BRINC", 0x9c, 0x9c, "BRINC X{j},X{k},{Q}"},
	{BRSEG, "BRSEG", 0x9d, 0x9d, "BRSEG X{j},A{k},{Q}"},
	{BR9E, "BR9E", 0x9e, 0x9e, ""},
	{BRCR, "BRCR", 0x9f, 0x9f, "BRCR {j},{k},{Q}"},

	{LAI, "LAI", 0xa0, 0xa0, "LAI A{k},A{j},X{i}"},
	{SAI, "SAI", 0xa1, 0xa1, "SAI A{k},A{j},X{i}"},
	{LXI, "LXI", 0xa2, 0xa2, "LXI X{k},A{j},X{i},{D}"},
	{SXI, "SXI", 0xa3, 0xa3, "SXI X{k},A{j},X{i},{D}"},
	{LBYT, "LBYT", 0xa4, 0xa4, "LBYT,X0 X{k},A{j},X{i},{D}"},
	{SBYT, "SBYT", 0xa5, 0xa5, "SBYT,X0 X{k},A{j},X{i},{D}"},
	{ADDAD, "ADDAD", 0xa7, 0xa7, "ADDAD A{k},X{i},{D}"},
	{SHFC, "SHFC", 0xa8, 0xa8, "SHFC X{k},X{j},X{i},{D}"},
	{SHFX, "SHFX", 0xa9, 0xa9, "SHFX X{k},X{j},X{i},{D}"},
	{SHFR, "SHFR", 0xaa, 0xaa, "SHFR X{k},X{j},X{i},{D}"},
	{ISOM, "ISOM", 0xac, 0xac, "ISOM X{k},X{i},{D}"},
	{ISOB, "ISOB", 0xad, 0xad, "ISOB X{k},X{j},X{i},{D}"},
	{INSB, "INSB", 0xae, 0xae, "INSB X{k},X{j},X{i},{D}"},

	{CALLREL, "CALLREL", 0xb0, 0xb0, "CALLREL {Q},A{j},A{k}"},
	{KEYPOINT, "KEYPOINT", 0xb1, 0xb1, "KEYPOINT {j},X{k},{Q}"},
	{MULXQ, "MULXQ", 0xb2, 0xb2, "MULXQ X{k},X{j},{Q}"},
	{ENTA, "ENTA", 0xb3, 0xb3, "ENTA X0,{jkQ}"},
	{CMPXA, "CMPXA", 0xb4, 0xb4, "CMPXA X{k},A{j},X0,{Q}"},
	{CALLSEG, "CALLSEG", 0xb5, 0xb5, "CALLSEG {Q},A{j},A{k}"},
	{RESBD, "RESBD", 0xbd, 0xbd, ""},
	{RESBE, "RESBE", 0xbe, 0xbe, ""},
	{RESBF, "RESBF", 0xbf, 0xbf, ""},

	{EXECUTE, "EXECUTE", 0xc0, 0xcf, "EXECUTE,{S} {j},{k},{i},{D}"},
	{LBYTS, "LBYTS", 0xd0, 0xd7, "LBYTS,{n} X{k},A{j},X{i},{D}"},
	{SBYTS, "SBYTS", 0xd8, 0xdf, "SBYTS,{n} X{k},A{j},X{i},{D}"},

	{SCLN, "SCLN", 0xe4, 0xe4, ""},
	{SCLR, "SCLR", 0xe5, 0xe5, ""},
	{CMPC, "CMPC", 0xe9, 0xe9, ""},
	{TRANB, "TRANB", 0xeb, 0xeb, ""},
	{EDIT, "EDIT", 0xed, 0xed, ""},
	{SCNB, "SCNB", 0xf3, 0xf3, ""},
	{MOVI, "MOVI", 0xf9, 0xf9, ""},
	{CMPI, "CMPI", 0xfa, 0xfa, ""},
	{ADDI, "ADDI", 0xfb, 0xfb, ""},
}

var (
	opInfo [numOps]*opDef
	byCode [256]*opDef
)

func init() {
	for i := range opTable {
		def := &opTable[i]
		opInfo[def.op] = def
		for c := int(def.code); c <= int(def.last); c++ {
			byCode[c] = def
		}
	}
}

func (op Op) String() string {
	if op < 0 || op >= numOps || opInfo[op] == nil {
		return "???"
	}
	return opInfo[op].name
}

// Format of instructions with this opcode.
func (op Op) format() format {
	return formatOf(opInfo[op].code)
}

// Size in bytes.
func (op Op) Size() uint64 {
	return op.format().size()
}
