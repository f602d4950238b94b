/*
 * Cyber - System composition
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

// Package system builds a Cyber mainframe from a configuration and runs
// its processors in rounds.
//
// A round steps every running PP once and then every running CP. A fault
// stops only the processor that raised it.
package system

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rcornwell/cyber/emu/channel"
	"github.com/rcornwell/cyber/emu/cp170"
	"github.com/rcornwell/cyber/emu/cp962"
	"github.com/rcornwell/cyber/emu/event"
	"github.com/rcornwell/cyber/emu/fault"
	"github.com/rcornwell/cyber/emu/iou"
	"github.com/rcornwell/cyber/emu/memory"
	"github.com/rcornwell/cyber/emu/pp170"
	"github.com/rcornwell/cyber/emu/pp962"
	"github.com/rcornwell/cyber/emu/word"
)

// Models.
const (
	Model170 = "170"
	Model962 = "962"
)

// Device names for Config.Devices.
const (
	DeviceRTC      = "RTC"
	DeviceLoopback = "LOOPBACK"
)

// Config describes the machine to build.
type Config struct {
	Model       string
	MemoryWords int
	PPs         int
	Channels    int
	CPs         int
	Parallel    bool           // Step the PPs of a round concurrently.
	Devices     map[int]string // Channel number to device name.
	Deadstart   []uint64       // Words loaded into PP0 by Deadstart.
}

// Default is a 170 with ten PPs, one CP and the clock on channel 14.
func Default() Config {
	return Config{
		Model:       Model170,
		MemoryWords: 256 * 1024,
		PPs:         iou.DefaultPPs,
		Channels:    iou.DefaultPPs,
		CPs:         1,
		Devices:     map[int]string{iou.ChanClock: DeviceRTC},
	}
}

// Processor is what the console and the round loop need of a PP or CP.
type Processor interface {
	ID() string
	PC() uint64
	SetPC(pc uint64)
	Step() error
	Reset()
	Registers() string
	SetRegister(name string, value uint64) error
	SetDebug(opt string) error
}

// Unit is one processor and its run state.
type Unit struct {
	Processor
	Running bool
	Err     error // Fault that stopped it.
}

type System struct {
	cfg    Config
	CM     *memory.Memory
	IOU    *iou.IOU
	PPs    []*Unit
	CPs    []*Unit
	Events *event.List
	RTC    *iou.RTC
	Rounds uint64
}

// New builds the memory, I/O unit and processors, then attaches devices.
func New(cfg Config) (*System, error) {
	var cmWidth, chanWidth word.Width
	switch cfg.Model {
	case Model170:
		cmWidth, chanWidth = word.W60, word.W12
		if cfg.MemoryWords > memory.MaxCM170 {
			return nil, fmt.Errorf("memory %d words exceeds %d", cfg.MemoryWords, memory.MaxCM170)
		}
	case Model962:
		cmWidth, chanWidth = word.W64, word.W16
	default:
		return nil, fmt.Errorf("unknown system model: %q", cfg.Model)
	}
	if cfg.MemoryWords <= 0 {
		return nil, fmt.Errorf("memory size %d invalid", cfg.MemoryWords)
	}
	if cfg.CPs < 0 || cfg.CPs > 2 {
		return nil, fmt.Errorf("CPU count %d must be 0 to 2", cfg.CPs)
	}

	u, err := iou.New(cfg.PPs, cfg.Channels, chanWidth)
	if err != nil {
		return nil, err
	}
	s := &System{
		cfg:    cfg,
		CM:     memory.New(cfg.MemoryWords, cmWidth),
		IOU:    u,
		Events: event.New(),
	}

	for i := range cfg.PPs {
		var p Processor
		if cfg.Model == Model170 {
			p, err = pp170.New(i, s.CM, u)
			if err != nil {
				return nil, err
			}
		} else {
			p = pp962.New(i, s.CM, u)
		}
		s.PPs = append(s.PPs, &Unit{Processor: p})
	}
	for i := range cfg.CPs {
		var p Processor
		if cfg.Model == Model170 {
			p = cp170.New(i, s.CM)
		} else {
			p = cp962.New(i, s.CM)
		}
		s.CPs = append(s.CPs, &Unit{Processor: p})
	}

	for n, name := range cfg.Devices {
		if err := s.attach(n, name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *System) attach(n int, name string) error {
	ch, err := s.IOU.Lookup(n)
	if err != nil {
		return err
	}
	switch strings.ToUpper(name) {
	case DeviceRTC:
		if s.RTC != nil {
			return fmt.Errorf("channel %o: only one clock allowed", n)
		}
		s.RTC = iou.NewRTC(ch, 1, 1)
		s.RTC.Start(s.Events)
	case DeviceLoopback:
		ch.Attach(&channel.Loopback{})
	default:
		return fmt.Errorf("channel %o: unknown device %q", n, name)
	}
	slog.Debug("device attached", "channel", fmt.Sprintf("%o", n), "device", name)
	return nil
}

func (s *System) Config() Config {
	return s.cfg
}

// Units lists the PPs followed by the CPs.
func (s *System) Units() []*Unit {
	return append(append([]*Unit{}, s.PPs...), s.CPs...)
}

// Unit finds a processor by id, PP03 or CP0, ignoring case.
func (s *System) Unit(id string) (*Unit, error) {
	for _, u := range s.Units() {
		if strings.EqualFold(u.ID(), id) {
			return u, nil
		}
	}
	return nil, fmt.Errorf("no processor %q", id)
}

// Running reports whether any processor will step in the next round.
func (s *System) Running() bool {
	for _, u := range s.Units() {
		if u.Running {
			return true
		}
	}
	return false
}

// Start marks units running, all of them when no id is given.
func (s *System) Start(ids ...string) error {
	if len(ids) == 0 {
		for _, u := range s.Units() {
			u.Running = true
			u.Err = nil
		}
		return nil
	}
	for _, id := range ids {
		u, err := s.Unit(id)
		if err != nil {
			return err
		}
		u.Running = true
		u.Err = nil
	}
	return nil
}

// Stop every processor, state is kept.
func (s *System) Stop() {
	for _, u := range s.Units() {
		u.Running = false
	}
}

// Step runs one round and returns the first fault raised in it.
func (s *System) Step() error {
	var first error
	if s.cfg.Parallel {
		var g errgroup.Group
		for _, u := range s.PPs {
			g.Go(func() error {
				return s.run(u)
			})
		}
		first = g.Wait()
	} else {
		for _, u := range s.PPs {
			if err := s.run(u); err != nil && first == nil {
				first = err
			}
		}
	}
	for _, u := range s.CPs {
		if err := s.run(u); err != nil && first == nil {
			first = err
		}
	}
	s.Events.Advance(1)
	s.Rounds++
	return first
}

// RunRounds runs up to n rounds, stopping early once nothing is running.
func (s *System) RunRounds(n int) (int, error) {
	var first error
	for i := range n {
		if !s.Running() {
			return i, first
		}
		if err := s.Step(); err != nil && first == nil {
			first = err
		}
	}
	return n, first
}

func (s *System) run(u *Unit) error {
	if !u.Running {
		return nil
	}
	err := u.Step()
	if err == nil {
		return nil
	}
	u.Running = false
	u.Err = err
	logHalt(u, err)
	return err
}

func logHalt(u *Unit, err error) {
	var f *fault.Fault
	if !errors.As(err, &f) {
		slog.Error("processor halted", "cpu", u.ID(), "address", fmt.Sprintf("%o", u.PC()), "error", err)
		return
	}
	if fault.Halt(err) {
		slog.Info("processor stopped", "cpu", f.Processor, "address", fmt.Sprintf("%o", f.Address))
		return
	}
	slog.Error("processor halted", "cpu", f.Processor, "address", fmt.Sprintf("%o", f.Address),
		"opcode", f.Opcode, "error", f.Err)
}

// TimeClock passes elapsed microseconds to processors with an interval timer.
func (s *System) TimeClock(elapsed uint64) {
	for _, u := range s.CPs {
		if t, ok := u.Processor.(interface{ TimeClock(uint64) }); ok {
			t.TimeClock(elapsed)
		}
	}
}

// Reset every processor and master clear the channels. Memory is kept.
func (s *System) Reset() {
	for _, u := range s.Units() {
		u.Reset()
		u.Running = false
		u.Err = nil
	}
	s.IOU.MasterClear()
}

// Deadstart resets the machine, loads words into PP0 from address 0
// and starts PP0 at address 1. Nil words uses the configured program.
func (s *System) Deadstart(words []uint64) error {
	if words == nil {
		words = s.cfg.Deadstart
	}
	if len(words) == 0 {
		return errors.New("no deadstart program")
	}
	if len(s.PPs) == 0 {
		return errors.New("no PPs to deadstart")
	}
	s.Reset()
	pp0 := s.PPs[0]
	mem, err := s.Memory(pp0.ID())
	if err != nil {
		return err
	}
	if len(words) > mem.Size() {
		return fmt.Errorf("deadstart program of %d words exceeds %s memory", len(words), pp0.ID())
	}
	for i, w := range words {
		if err := mem.Write(uint64(i), w); err != nil {
			return fmt.Errorf("deadstart word %o: %w", i, err)
		}
	}
	pp0.SetPC(1)
	pp0.Running = true
	slog.Info("deadstart", "cpu", pp0.ID(), "words", len(words))
	return nil
}

// Memory returns the store named by id: CM, or a PP's own memory.
func (s *System) Memory(id string) (*memory.Memory, error) {
	if strings.EqualFold(id, "CM") {
		return s.CM, nil
	}
	u, err := s.Unit(id)
	if err != nil {
		return nil, err
	}
	switch p := u.Processor.(type) {
	case *pp170.PP:
		return p.Mem, nil
	case *pp962.PP:
		return p.Mem, nil
	case *cp170.CP, *cp962.CP:
		return s.CM, nil
	}
	return nil, fmt.Errorf("%s has no memory", id)
}

// Disassemble n instructions of processor id starting at addr.
func (s *System) Disassemble(id string, addr uint64, n int) ([]string, error) {
	u, err := s.Unit(id)
	if err != nil {
		return nil, err
	}
	lines := []string{}
	for range n {
		switch p := u.Processor.(type) {
		case *pp170.PP:
			text, size := p.Disassemble(addr)
			lines = append(lines, fmt.Sprintf("%06o %s", addr, text))
			addr += size
		case *pp962.PP:
			text, size := p.Disassemble(addr)
			lines = append(lines, fmt.Sprintf("%06o %s", addr, text))
			addr += size
		case *cp962.CP:
			text, size := p.Disassemble(addr)
			lines = append(lines, fmt.Sprintf("%012X %s", addr, text))
			addr += size
		case *cp170.CP:
			parcels, err := p.Disassemble(addr)
			if err != nil {
				return lines, err
			}
			lines = append(lines, fmt.Sprintf("%06o %s", addr, strings.Join(parcels, "; ")))
			addr++
		default:
			return lines, fmt.Errorf("%s can't disassemble", id)
		}
	}
	return lines, nil
}

// Shutdown stops the clock and every processor.
func (s *System) Shutdown() {
	s.Stop()
	if s.RTC != nil {
		s.RTC.Stop()
	}
}
