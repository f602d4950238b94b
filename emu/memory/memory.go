package memory

/*
 * Cyber - Low level memory
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

import (
	"fmt"
	"sync"

	"github.com/rcornwell/cyber/emu/fault"
	"github.com/rcornwell/cyber/emu/word"
)

const (
	PP170Size = 4096      // 12 bit peripheral memory
	PP962Size = 16 * 1024 // 16 bit peripheral memory

	MaxCM170 = 0x02000000 // 25 bit word address
)

// Memory is a word addressed store of fixed width words.
type Memory struct {
	mu     sync.Mutex
	mem    []uint64
	width  word.Width
	cyclic bool
	amask  uint64
}

type Option func(*Memory)

// Cyclic makes addresses wrap modulo the size.
func Cyclic() Option {
	return func(m *Memory) {
		m.cyclic = true
	}
}

// AddressBits sets the mask used when forming addresses.
func AddressBits(n word.Width) Option {
	return func(m *Memory) {
		m.amask = n.Mask()
	}
}

// New creates a zeroed memory of size words.
func New(size int, width word.Width, opts ...Option) *Memory {
	m := &Memory{
		mem:   make([]uint64, size),
		width: width,
		amask: ^uint64(0),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Size in words.
func (m *Memory) Size() int {
	return len(m.mem)
}

func (m *Memory) Width() word.Width {
	return m.width
}

func (m *Memory) Cyclic() bool {
	return m.cyclic
}

// AddressMask is applied by address arithmetic.
func (m *Memory) AddressMask() uint64 {
	return m.amask
}

// Map address to index, false if out of range.
func (m *Memory) index(addr uint64) (int, bool) {
	size := uint64(len(m.mem))
	if size == 0 {
		return 0, false
	}
	if m.cyclic {
		return int(addr % size), true
	}
	if addr >= size {
		return 0, false
	}
	return int(addr), true
}

func (m *Memory) rangeError(addr uint64) error {
	return fmt.Errorf("address %o size %o: %w", addr, len(m.mem), fault.ErrAddress)
}

// Read a word.
func (m *Memory) Read(addr uint64) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index(addr)
	if !ok {
		return 0, m.rangeError(addr)
	}
	return m.mem[i], nil
}

// Write a word, the value must fit in the word width.
func (m *Memory) Write(addr, value uint64) error {
	if err := m.width.Check(value); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index(addr)
	if !ok {
		return m.rangeError(addr)
	}
	m.mem[i] = value
	return nil
}

// Fetch reads without failing, out of range returns zero.
func (m *Memory) Fetch(addr uint64) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index(addr)
	if !ok {
		return 0
	}
	return m.mem[i]
}

// Store writes a value masked to the word width.
func (m *Memory) Store(addr, value uint64) error {
	return m.Write(addr, value&m.width.Mask())
}

// Update replaces a word with fn(old) holding the memory lock,
// returns old value.
func (m *Memory) Update(addr uint64, fn func(uint64) uint64) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index(addr)
	if !ok {
		return 0, m.rangeError(addr)
	}
	old := m.mem[i]
	m.mem[i] = fn(old) & m.width.Mask()
	return old, nil
}

// Reset clears memory keeping the same storage.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.mem)
}

// Load copies words starting at addr.
func (m *Memory) Load(addr uint64, words []uint64) error {
	for i, w := range words {
		if err := m.Store(addr+uint64(i), w); err != nil {
			return err
		}
	}
	return nil
}
