/*
 * Cyber - Fetch, decode and execute one instruction
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

// Package step is the dispatch loop shared by every processor.
//
// Execute returns true when the program counter should advance by the
// instruction stride. False means the handler set it, or is waiting on
// a channel and wants the same instruction again.
package step

import (
	"errors"
	"fmt"

	"github.com/rcornwell/cyber/emu/fault"
)

// Processor is implemented by each processor model for its own
// instruction type.
type Processor[I fmt.Stringer] interface {
	ID() string
	PC() uint64
	SetPC(pc uint64)
	Decode(pc uint64) (I, error)
	Execute(inst I) (bool, error)
	Stride(inst I) uint64
}

// Run one instruction on p.
func Run[I fmt.Stringer](p Processor[I]) error {
	pc := p.PC()
	inst, err := p.Decode(pc)
	if err != nil {
		if !errors.Is(err, fault.ErrDecode) {
			err = fmt.Errorf("%w: %w", fault.ErrDecode, err)
		}
		return &fault.Fault{Processor: p.ID(), Address: pc, Err: err}
	}

	advance, err := p.Execute(inst)
	if err != nil {
		return &fault.Fault{Processor: p.ID(), Address: pc, Opcode: inst.String(), Err: err}
	}
	if advance {
		p.SetPC(pc + p.Stride(inst))
	}
	return nil
}

// RunN steps p up to n times, stopping at the first error.
func RunN[I fmt.Stringer](p Processor[I], n int) (int, error) {
	for i := range n {
		if err := Run(p); err != nil {
			return i, err
		}
	}
	return n, nil
}
