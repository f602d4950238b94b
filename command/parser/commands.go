/*
 * Cyber - Operator commands
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

package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	command "github.com/rcornwell/cyber/command/command"
	"github.com/rcornwell/cyber/emu/fault"
	"github.com/rcornwell/cyber/emu/system"
	"github.com/rcornwell/cyber/emu/word"
	"github.com/rcornwell/cyber/util/octal"
)

// Most words examine will show at once.
const maxExamine = 0o10000

var cmdList = []cmd{
	{Name: "quit", Min: 4, Process: quit},
	{Name: "start", Min: 3, Arg: command.ArgProcessor, Process: start},
	{Name: "stop", Min: 3, Process: stop},
	{Name: "step", Min: 3, Process: step},
	{Name: "show", Min: 2, Arg: command.ArgShow, Process: show},
	{Name: "examine", Min: 2, Arg: command.ArgMemory, Process: examine},
	{Name: "deposit", Min: 2, Arg: command.ArgMemory, Process: deposit},
	{Name: "disassemble", Min: 2, Arg: command.ArgProcessor, Process: disassemble},
	{Name: "clear", Min: 2, Process: reset},
	{Name: "reset", Min: 5, Process: reset},
	{Name: "load", Min: 1, Arg: command.ArgFile, Process: load},
}

// Handle commands that quit simulation.
func quit(line *cmdLine, _ command.Console) (bool, error) {
	slog.Debug("Command Quit")
	return true, line.getEOL()
}

// Start all processors, or the ones named.
func start(line *cmdLine, console command.Console) (bool, error) {
	slog.Debug("Command Start")
	ids := []string{}
	for name := line.getWord(); name != ""; name = line.getWord() {
		ids = append(ids, name)
	}
	if err := line.getEOL(); err != nil {
		return false, err
	}
	if len(ids) != 0 {
		err := console.Exec(func(sys *system.System) error {
			return sys.Start(ids...)
		})
		if err != nil {
			return false, err
		}
	}
	return false, console.SendStart()
}

// Stop the processors.
func stop(line *cmdLine, console command.Console) (bool, error) {
	slog.Debug("Command Stop")
	if err := line.getEOL(); err != nil {
		return false, err
	}
	return false, console.SendStop()
}

// Run some rounds and show where each processor got to.
func step(line *cmdLine, console command.Console) (bool, error) {
	slog.Debug("Command Step")
	count := 1
	line.skipSpace()
	if !line.isEOL() {
		n, err := line.getNumber()
		if err != nil {
			return false, err
		}
		count = n
	}
	if err := line.getEOL(); err != nil {
		return false, err
	}
	stepErr := console.SendStep(count)
	err := console.Exec(func(sys *system.System) error {
		showProcessors(sys, false)
		return nil
	})
	// A processor stop is shown above, not an error.
	if stepErr != nil && !fault.Halt(stepErr) {
		return false, stepErr
	}
	return false, err
}

func unitState(u *system.Unit) string {
	switch {
	case u.Running:
		return "running"
	case u.Err != nil:
		return "halted: " + u.Err.Error()
	}
	return "stopped"
}

func showProcessors(sys *system.System, all bool) {
	for _, u := range sys.Units() {
		if !all && !u.Running && u.Err == nil {
			continue
		}
		printf("%-4s P=%06o %s\n", u.ID(), u.PC(), unitState(u))
	}
}

func showChannels(sys *system.System) {
	for _, ch := range sys.IOU.Channels() {
		st := ch.State()
		flags := []string{}
		for _, f := range []struct {
			set  bool
			name string
		}{{st.Active, "active"}, {st.Full, "full"}, {st.Flag, "flag"}, {st.Error, "error"}} {
			if f.set {
				flags = append(flags, f.name)
			}
		}
		dev := strings.TrimPrefix(fmt.Sprintf("%T", ch.Device()), "*")
		printf("Channel %02o %s %s\n", ch.Number(), dev, strings.Join(flags, ","))
	}
}

// Match an abbreviated show option.
func showOption(name string) string {
	for _, opt := range command.ShowOptions {
		if strings.HasPrefix(opt, name) {
			return opt
		}
	}
	return ""
}

// Process the show command.
func show(line *cmdLine, console command.Console) (bool, error) {
	slog.Debug("Command Show")
	name := line.getWord()
	if err := line.getEOL(); err != nil {
		return false, err
	}
	opt := "all"
	if name != "" {
		opt = showOption(name)
	}
	return false, console.Exec(func(sys *system.System) error {
		switch opt {
		case "all":
			showProcessors(sys, true)
			showChannels(sys)
		case "processors":
			showProcessors(sys, true)
		case "channels":
			showChannels(sys)
		default:
			u, err := sys.Unit(name)
			if err != nil {
				return err
			}
			printf("%s\n", u.Registers())
		}
		return nil
	})
}

func formatWord(w word.Width, v uint64) string {
	var str strings.Builder
	if w == word.W60 {
		octal.FormatGroups(&str, v)
	} else {
		octal.FormatWord(&str, w, v)
	}
	return str.String()
}

// Show memory of CM or a PP.
func examine(line *cmdLine, console command.Console) (bool, error) {
	slog.Debug("Command Examine")
	name := line.getWord()
	if name == "" {
		return false, errors.New("examine requires CM or a PP")
	}
	low, high, err := line.getRange()
	if err != nil {
		return false, err
	}
	if err := line.getEOL(); err != nil {
		return false, err
	}
	if high-low >= maxExamine {
		return false, fmt.Errorf("range more than %o words", maxExamine)
	}
	return false, console.Exec(func(sys *system.System) error {
		mem, err := sys.Memory(name)
		if err != nil {
			return err
		}
		for addr := low; addr <= high; addr++ {
			v, err := mem.Read(addr)
			if err != nil {
				return err
			}
			printf("%06o: %s\n", addr, formatWord(mem.Width(), v))
		}
		return nil
	})
}

// Deposit words into memory, or a value into a register.
//
//	deposit CM 100 1 2 3
//	deposit CP0 X1 x1F
func deposit(line *cmdLine, console command.Console) (bool, error) {
	slog.Debug("Command Deposit")
	name := line.getWord()
	if name == "" {
		return false, errors.New("deposit requires CM, a PP or a processor")
	}
	pos := line.pos
	addr, err := line.getOctal()
	if err != nil {
		// Not an address, take it as a register.
		line.pos = pos
		reg := line.getWord()
		if reg == "" {
			return false, errors.New("deposit requires address or register")
		}
		value, err := line.getValue()
		if err != nil {
			return false, err
		}
		if err := line.getEOL(); err != nil {
			return false, err
		}
		return false, console.Exec(func(sys *system.System) error {
			u, err := sys.Unit(name)
			if err != nil {
				return err
			}
			return u.SetRegister(reg, value)
		})
	}

	values := []uint64{}
	for line.skipSpace(); !line.isEOL(); line.skipSpace() {
		v, err := line.getValue()
		if err != nil {
			return false, err
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return false, errors.New("deposit requires values")
	}
	return false, console.Exec(func(sys *system.System) error {
		mem, err := sys.Memory(name)
		if err != nil {
			return err
		}
		for i, v := range values {
			if err := mem.Write(addr+uint64(i), v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Disassemble instructions of a processor.
func disassemble(line *cmdLine, console command.Console) (bool, error) {
	slog.Debug("Command Disassemble")
	name := line.getWord()
	if name == "" {
		return false, errors.New("disassemble requires a processor")
	}
	var addr uint64
	addrGiven := false
	line.skipSpace()
	if !line.isEOL() {
		a, err := line.getOctal()
		if err != nil {
			return false, err
		}
		addr, addrGiven = a, true
	}
	count := 10
	line.skipSpace()
	if !line.isEOL() {
		n, err := line.getNumber()
		if err != nil {
			return false, err
		}
		count = n
	}
	if err := line.getEOL(); err != nil {
		return false, err
	}
	return false, console.Exec(func(sys *system.System) error {
		u, err := sys.Unit(name)
		if err != nil {
			return err
		}
		if !addrGiven {
			addr = u.PC()
		}
		lines, err := sys.Disassemble(name, addr, count)
		for _, text := range lines {
			printf("%s\n", text)
		}
		return err
	})
}

// Reset processors and channels.
func reset(line *cmdLine, console command.Console) (bool, error) {
	slog.Debug("Command Reset")
	if err := line.getEOL(); err != nil {
		return false, err
	}
	return false, console.Exec(func(sys *system.System) error {
		sys.Reset()
		return nil
	})
}

// Deadstart, from a file of octal words or the configured program.
func load(line *cmdLine, console command.Console) (bool, error) {
	slog.Debug("Command Load")
	line.skipSpace()
	if line.isEOL() {
		return false, console.SendDeadstart(nil)
	}
	name, ok := line.parseQuoteString()
	if !ok || name == "" {
		return false, errors.New("file name not valid")
	}
	if err := line.getEOL(); err != nil {
		return false, err
	}

	w := word.W12
	_ = console.Exec(func(sys *system.System) error {
		if sys.Config().Model == system.Model962 {
			w = word.W16
		}
		return nil
	})
	file, err := os.Open(name)
	if err != nil {
		return false, err
	}
	defer file.Close()
	words, err := octal.ReadWords(file, w)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return false, console.SendDeadstart(words)
}
