/*
 * Cyber - Cyber 170 exchange jump
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
	"fmt"

	"github.com/rcornwell/cyber/emu/parcel"
	"github.com/rcornwell/cyber/emu/word"
	Debug "github.com/rcornwell/cyber/util/debug"
)

// Words in an exchange package.
const PackageSize = 16

// Words 0 to 7 hold a 21 bit control field with Ai and Bi, words
// 10 to 17 hold X0 to X7.
var packageWord = parcel.Layout{Name: "xp", Bits: word.W60, Fields: []parcel.Field{
	{Name: "ctl", Shift: 36, Bits: word.W21},
	{Name: "a", Shift: 18, Bits: word.W18},
	{Name: "b", Shift: 0, Bits: word.W18},
}}

// Package returns the exchange package of the processor, with P set
// to next.
func (c *CP) Package(next uint64) [PackageSize]uint64 {
	ctl := [8]uint64{
		next,
		c.RA.Get(),
		c.FL.Get(),
		c.EM.Get()<<6 | c.Flags.Get(),
		c.RAE.Get(),
		c.FLE.Get(),
		c.MA.Get(),
		0,
	}
	var xp [PackageSize]uint64
	for i := range 8 {
		xp[i] = packageWord.Insert(ctl[i], c.a(uint8(i)), c.b(uint8(i)))
		xp[8+i] = c.x(uint8(i))
	}
	return xp
}

// Load the registers from an exchange package.
func (c *CP) Load(xp [PackageSize]uint64) {
	var ctl [8]uint64
	for i := range 8 {
		f := packageWord.Extract(xp[i])
		ctl[i] = f[0]
		c.A[i].Set(f[1])
		if i != 0 {
			c.B[i].Set(f[2])
		}
		c.X[i].Set(xp[8+i])
	}
	c.SetPC(word.W18.Trunc(ctl[0]) * 4)
	c.RA.Set(ctl[1])
	c.FL.Set(ctl[2])
	c.EM.Set(ctl[3] >> 6)
	c.Flags.Set(ctl[3])
	c.RAE.Set(ctl[4])
	c.FLE.Set(ctl[5])
	c.MA.Set(ctl[6])
}

// Swap the registers with the exchange package at absolute address
// addr and start the new program.
func (c *CP) exchange(addr uint64) error {
	var in [PackageSize]uint64
	for i := range PackageSize {
		v, err := c.CM.Read(addr + uint64(i))
		if err != nil {
			return fmt.Errorf("%s exchange package %o: %w", c.Name, addr, err)
		}
		in[i] = v
	}
	out := c.Package(c.P.Get() + 1)
	for i, v := range out {
		if err := c.CM.Write(addr+uint64(i), v); err != nil {
			return err
		}
	}
	c.Load(in)
	c.Monitor = !c.Monitor
	Debug.DebugProcf(c.Name, c.PC(), c.Debug, DebugExchange, "exchange %o monitor %v", addr, c.Monitor)
	return nil
}
