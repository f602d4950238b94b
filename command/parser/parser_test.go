/*
 * Cyber - Command line parser tests
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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rcornwell/cyber/emu/core"
	"github.com/rcornwell/cyber/emu/fault"
	"github.com/rcornwell/cyber/emu/master"
	"github.com/rcornwell/cyber/emu/system"
)

func newConsole(t *testing.T) (*core.Core, *bytes.Buffer) {
	t.Helper()
	sys, err := system.New(system.Default())
	if err != nil {
		t.Fatal(err)
	}
	c := core.New(sys, make(chan master.Packet))
	go c.Start()
	t.Cleanup(c.Stop)

	var out bytes.Buffer
	Out = &out
	t.Cleanup(func() { Out = os.Stdout })
	return c, &out
}

func mustRun(t *testing.T, c *core.Core, text string) {
	t.Helper()
	if _, err := ProcessCommand(text, c); err != nil {
		t.Fatalf("%q failed: %v", text, err)
	}
}

func TestMatch(t *testing.T) {
	c, _ := newConsole(t)
	tests := []struct {
		text string
		quit bool
		fail bool
	}{
		{"", false, false},
		{"# comment", false, false},
		{"quit", true, false},
		{"QUIT", true, false},
		{"qu", false, true},
		{"s", false, true},
		{"frobnicate", false, true},
		{"stop now", false, true},
	}
	for _, test := range tests {
		quit, err := ProcessCommand(test.text, c)
		if quit != test.quit || (err != nil) != test.fail {
			t.Errorf("%q got: quit=%v err=%v", test.text, quit, err)
		}
	}
}

func TestDepositExamine(t *testing.T) {
	c, out := newConsole(t)
	mustRun(t, c, "deposit pp00 100 1412 3410")
	mustRun(t, c, "examine pp00 100-101")
	if out.String() != "000100: 1412\n000101: 3410\n" {
		t.Errorf("Examine got: %q", out.String())
	}

	out.Reset()
	mustRun(t, c, "de cm 5 x123456789")
	mustRun(t, c, "ex cm 5")
	if out.String() != "000005: 0000 0000 0443 2126 3611\n" {
		t.Errorf("Examine CM got: %q", out.String())
	}

	if _, err := ProcessCommand("deposit pp00 0 17777", c); !errors.Is(err, fault.ErrWidth) {
		t.Errorf("Wide deposit got: %v", err)
	}
	if _, err := ProcessCommand("examine pp00 10-5", c); err == nil {
		t.Error("Backward range accepted")
	}
	if _, err := ProcessCommand("examine tape 0", c); err == nil {
		t.Error("Unknown memory accepted")
	}
}

func TestDepositRegister(t *testing.T) {
	c, out := newConsole(t)
	mustRun(t, c, "deposit cp0 x1 777")
	mustRun(t, c, "show cp0")
	if !strings.Contains(out.String(), " X1=777") {
		t.Errorf("Show CP0 got: %q", out.String())
	}
	if _, err := ProcessCommand("deposit cp0 b1 7777777", c); !errors.Is(err, fault.ErrWidth) {
		t.Errorf("Wide register got: %v", err)
	}
}

func TestDisassemble(t *testing.T) {
	c, out := newConsole(t)
	mustRun(t, c, "deposit pp00 1 1412 3410")
	mustRun(t, c, "disassemble pp00 1 2")
	if diff := cmp.Diff("000001 LDN 12\n000002 STD 10\n", out.String()); diff != "" {
		t.Errorf("Disassemble mismatch (-want +got):\n%s", diff)
	}
}

func TestStepShow(t *testing.T) {
	c, out := newConsole(t)
	mustRun(t, c, "step 2")
	if !strings.Contains(out.String(), "PP00 P=000002 running") {
		t.Errorf("Step got: %q", out.String())
	}
	if !strings.Contains(out.String(), "CP0  P=000000 halted") {
		t.Errorf("Step CP0 got: %q", out.String())
	}

	out.Reset()
	mustRun(t, c, "show ch")
	if !strings.Contains(out.String(), "Channel 14 iou.RTC active,full") {
		t.Errorf("Show channels got: %q", out.String())
	}
	mustRun(t, c, "stop")
	mustRun(t, c, "reset")
}

func TestLoad(t *testing.T) {
	c, out := newConsole(t)
	file := filepath.Join(t.TempDir(), "deadstart.oct")
	if err := os.WriteFile(file, []byte("0000\n1412 ; LDN 12\n3410\n2640\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	mustRun(t, c, `load "`+file+`"`)

	deadline := time.Now().Add(2 * time.Second)
	for {
		running := true
		_ = c.Exec(func(sys *system.System) error {
			running = sys.Running()
			return nil
		})
		if !running {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("deadstart program did not halt")
		}
		time.Sleep(time.Millisecond)
	}
	out.Reset()
	mustRun(t, c, "examine pp00 10")
	if out.String() != "000010: 0012\n" {
		t.Errorf("Program result got: %q", out.String())
	}
	if _, err := ProcessCommand("load", c); err == nil {
		t.Error("Load without a configured program accepted")
	}
}

func TestComplete(t *testing.T) {
	c, _ := newConsole(t)
	if diff := cmp.Diff([]string{"start ", "step ", "stop "}, CompleteCmd("st", c)); diff != "" {
		t.Errorf("Command completion mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ex cm ", "ex cp0 "}, CompleteCmd("ex c", c)); diff != "" {
		t.Errorf("Memory completion mismatch (-want +got):\n%s", diff)
	}
	got := CompleteCmd("show p", c)
	if len(got) == 0 || got[0] != "show processors " {
		t.Errorf("Show completion got: %q", got)
	}
	if got := CompleteCmd("ex pp00 1", c); got != nil {
		t.Errorf("Completion past argument got: %q", got)
	}
}
