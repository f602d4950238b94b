/*
 * Cyber - Peripheral processor central memory access
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

package ppu

import (
	"fmt"

	"github.com/rcornwell/cyber/emu/word"
	Debug "github.com/rcornwell/cyber/util/debug"
)

// Split a central memory word into n PP words of width w, most
// significant first.
func Split(cm uint64, n int, w word.Width) []uint64 {
	out := make([]uint64, n)
	for i := range n {
		out[i] = (cm >> (uint(n-1-i) * uint(w))) & w.Mask()
	}
	return out
}

// Join n PP words of width w into one central memory word.
func Join(pp []uint64, w word.Width) uint64 {
	var cm uint64
	for _, v := range pp {
		cm = cm<<uint(w) | v&w.Mask()
	}
	return cm
}

func (p *Core) readPP(addr uint64, n int) []uint64 {
	out := make([]uint64, n)
	for i := range n {
		out[i] = p.Read(addr + uint64(i))
	}
	return out
}

func (p *Core) writePP(addr uint64, words []uint64) {
	for i, v := range words {
		p.Write(addr+uint64(i), v)
	}
}

// ReadCM copies count central memory words at the address in A into PP
// memory at addr. Each CM word becomes n words of width w.
func (p *Core) ReadCM(addr uint64, count int, n int, w word.Width) error {
	if err := p.needCM(); err != nil {
		return err
	}
	base := p.CMAddress()
	for i := range count {
		cm, err := p.CM.Read(base + uint64(i))
		if err != nil {
			return err
		}
		p.writePP(addr+uint64(i*n), Split(cm, n, w))
		Debug.DebugProcf(p.Name, p.P.Get(), p.Debug, DebugCM, "read CM %o = %o", base+uint64(i), cm)
	}
	return nil
}

// WriteCM packs PP words at addr into count central memory words at the
// address in A.
func (p *Core) WriteCM(addr uint64, count int, n int, w word.Width) error {
	if err := p.needCM(); err != nil {
		return err
	}
	base := p.CMAddress()
	for i := range count {
		cm := Join(p.readPP(addr+uint64(i*n), n), w)
		if err := p.CM.Store(base+uint64(i), cm); err != nil {
			return err
		}
		Debug.DebugProcf(p.Name, p.P.Get(), p.Debug, DebugCM, "write CM %o = %o", base+uint64(i), cm)
	}
	return nil
}

// Lock op for ReadLock.
type LockOp int

const (
	LockSet   LockOp = iota // OR the PP word into CM.
	LockClear               // AND the PP word into CM.
)

// ReadLock exchanges one 64 bit CM word with four PP words at addr. The
// CM word is replaced by the OR or AND of both values holding the memory
// lock, the PP receives the old CM value.
func (p *Core) ReadLock(addr uint64, op LockOp) error {
	if err := p.needCM(); err != nil {
		return err
	}
	cmAddr := p.CMAddress()
	y := Join(p.readPP(addr, 4), word.W16)
	old, err := p.CM.Update(cmAddr, func(x uint64) uint64 {
		if op == LockSet {
			return x | y
		}
		return x & y
	})
	if err != nil {
		return fmt.Errorf("%s lock %o: %w", p.Name, cmAddr, err)
	}
	p.writePP(addr, Split(old, 4, word.W16))
	return nil
}
