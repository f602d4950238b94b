/*
 * Cyber - Operator console reader
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

package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/peterh/liner"
	"golang.org/x/term"

	command "github.com/rcornwell/cyber/command/command"
	"github.com/rcornwell/cyber/command/parser"
)

const prompt = "Cyber> "

// ConsoleReader reads operator commands until quit or end of input.
// A terminal gets line editing, anything else is read line by line.
func ConsoleReader(console command.Console) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		ScriptReader(os.Stdin, console)
		return
	}

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(line string) []string {
		return parser.CompleteCmd(line, console)
	})

	for {
		text, err := line.Prompt(prompt)
		if err == nil {
			line.AppendHistory(text)
			if run(text, console) {
				return
			}
			continue
		}
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return
		}
		slog.Error("error reading line: " + err.Error())
		return
	}
}

// ScriptReader runs commands from r, one per line.
func ScriptReader(r io.Reader, console command.Console) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if run(scanner.Text(), console) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Error("error reading commands: " + err.Error())
	}
}

// Run one command, true to quit.
func run(text string, console command.Console) bool {
	quit, err := parser.ProcessCommand(text, console)
	if err != nil {
		fmt.Fprintln(parser.Out, "Error: "+err.Error())
	}
	return quit
}
