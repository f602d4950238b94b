/*
 * Cyber - Built in channel devices
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

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/rcornwell/cyber/emu/fault"
)

// NoDevice stands in for an empty channel. Any use is an error.
type NoDevice struct {
	Number int
}

func (n NoDevice) fail(op string) error {
	slog.Error("I/O to channel with no device", "channel", fmt.Sprintf("%o", n.Number), "op", op)
	return fault.ErrNoDevice
}

func (n NoDevice) Read(_ int) ([]uint16, error) {
	return nil, n.fail("read")
}

func (n NoDevice) Write(_ []uint16) error {
	return n.fail("write")
}

func (n NoDevice) Function(_ uint16) error {
	return n.fail("function")
}

// Loopback returns output words as input, oldest first.
type Loopback struct {
	mu       sync.Mutex
	queue    []uint16
	LastFunc uint16
	Funcs    int
}

func (l *Loopback) Read(count int) ([]uint16, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := min(count, len(l.queue))
	out := make([]uint16, count)
	copy(out, l.queue[:n])
	l.queue = l.queue[n:]
	return out, nil
}

func (l *Loopback) Write(words []uint16) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queue = append(l.queue, words...)
	return nil
}

func (l *Loopback) Function(code uint16) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.LastFunc = code
	l.Funcs++
	return nil
}

// Pending words not yet read.
func (l *Loopback) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}
