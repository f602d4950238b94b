/*
 * Cyber - Operator console interface
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

package command

import "github.com/rcornwell/cyber/emu/system"

// Console is the machine as operator commands see it. The core loop
// implements it, every call waits for the core to act.
type Console interface {
	SendStart() error
	SendStop() error
	SendStep(n int) error
	SendDeadstart(words []uint64) error
	Exec(fn func(sys *system.System) error) error
}

// Kinds of command argument, used for completion.
const (
	ArgNone      = iota
	ArgProcessor // PP03, CP0.
	ArgMemory    // CM or a PP.
	ArgFile
	ArgShow
)

// What show can display besides a single processor.
var ShowOptions = []string{"all", "channels", "processors"}
