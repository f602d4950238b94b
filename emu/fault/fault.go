/*
 * Cyber - Processor fault reporting
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

// Package fault holds the error conditions shared by every processor,
// memory and channel in the emulator.
package fault

import (
	"errors"
	"fmt"
)

var (
	// No instruction shape accepts the word.
	ErrDecode = errors.New("no instruction decodes")

	// Instruction decoded but has no execution handler.
	ErrNotImplemented = errors.New("instruction not implemented")

	// Processor used a channel outside its barrel.
	ErrAccess = errors.New("channel access denied")

	// Memory address outside of capacity.
	ErrAddress = errors.New("address out of range")

	// Value wider than its register or word.
	ErrWidth = errors.New("value exceeds width")

	// Channel has no device attached.
	ErrNoDevice = errors.New("no device on channel")

	// No such channel in the I/O unit.
	ErrChannel = errors.New("no such channel")

	// Operation whose encoding is not defined.
	ErrUnresolved = errors.New("encoding unresolved")

	// Processor executed a stop instruction.
	ErrHalt = errors.New("processor halted")
)

// Fault carries enough context to reproduce a failed instruction.
type Fault struct {
	Processor string // Processor id, "PP03", "CP0".
	Address   uint64 // Program counter at start of instruction.
	Opcode    string // Mnemonic or raw octal if decode failed.
	Err       error
}

func (f *Fault) Error() string {
	if f.Opcode == "" {
		return fmt.Sprintf("%s at %o: %v", f.Processor, f.Address, f.Err)
	}
	return fmt.Sprintf("%s at %o (%s): %v", f.Processor, f.Address, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// Halt reports whether an error is a normal processor stop.
func Halt(err error) bool {
	return errors.Is(err, ErrHalt)
}
