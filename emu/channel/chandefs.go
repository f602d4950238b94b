/*
 * Cyber - I/O channel definitions
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

package channel

import "github.com/rcornwell/cyber/emu/word"

// Interface for devices attached to a channel.
type Device interface {
	Read(count int) ([]uint16, error) // Words from device to channel
	Write(words []uint16) error       // Words from channel to device
	Function(code uint16) error       // Control code
}

// Result of a channel operation.
type Outcome int

const (
	Done    Outcome = iota // Operation completed
	Skipped                // Channel not ready, skip form continues
	Pending                // Channel not ready, wait form retries
)

func (o Outcome) String() string {
	switch o {
	case Done:
		return "done"
	case Skipped:
		return "skipped"
	case Pending:
		return "pending"
	}
	return "unknown"
}

// State is the complete observable state of a channel.
type State struct {
	Active bool
	Full   bool
	Flag   bool
	Error  bool
}

const (
	Width12 = word.W12 // Cyber 170 channel
	Width16 = word.W16 // Cyber 180 channel
)

// Debug options.
const (
	debugCmd = 1 << iota
	debugData
	debugState
)

var debugOption = map[string]int{
	"CMD":   debugCmd,
	"DATA":  debugData,
	"STATE": debugState,
}
