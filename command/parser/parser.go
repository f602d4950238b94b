/*
 * Cyber - Command line parser
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
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	command "github.com/rcornwell/cyber/command/command"
)

// Where command output is written.
var Out io.Writer = os.Stdout

type cmd struct {
	Name    string // Command name.
	Min     int    // Minimum match size.
	Arg     int    // First argument kind, for completion.
	Process func(*cmdLine, command.Console) (bool, error)
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

// Execute the command line given, true means quit.
func ProcessCommand(commandLine string, console command.Console) (bool, error) {
	line := cmdLine{line: commandLine}
	command := line.getWord()
	if command == "" {
		return false, nil
	}

	match := matchList(command)
	if len(match) == 0 {
		return false, errors.New("command not found: " + command)
	}

	if len(match) > 1 {
		return false, errors.New("unique command not found: " + command)
	}

	return match[0].Process(&line, console)
}

// Check if command matches at least to minimum length.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.Name) {
		return false
	}
	if !strings.HasPrefix(match.Name, command) {
		return false
	}
	return len(command) >= match.Min
}

// Check if command matches one of the commands.
func matchList(command string) []cmd {
	// If command empty just return.
	if command == "" {
		return []cmd{}
	}

	// Try and match one command.
	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

func printf(format string, a ...any) {
	fmt.Fprintf(Out, format, a...)
}

// Skip forward over line until none whitespace character found.
func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *cmdLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// Return current character and advance to next.
func (line *cmdLine) getCurrent() byte {
	if line.isEOL() {
		return 0
	}
	by := line.line[line.pos]
	line.pos++
	return by
}

// Parse string that is "string" or just string.
func (line *cmdLine) parseQuoteString() (string, bool) {
	line.skipSpace()
	inQuote := false
	value := ""

	// If quote, set we are in quoted string
	by := line.getCurrent()
	if by == 0 {
		return "", false
	}

	if by == '"' {
		inQuote = true
		by = line.getCurrent()
	}

	for by != 0 {
		// If processing a quoted string "" gets replaced by single quote
		if by == '"' && inQuote {
			by = line.getCurrent()
			if by != '"' {
				return value, true
			}
		}

		// Space terminates a no quoted string.
		if !inQuote && unicode.IsSpace(rune(by)) {
			return value, true
		}

		value += string(by)
		by = line.getCurrent()
	}
	return value, !inQuote
}

// Get a word of letters and digits, lower cased.
func (line *cmdLine) getWord() string {
	line.skipSpace()

	start := line.pos
	for !line.isEOL() {
		by := line.line[line.pos]
		if !unicode.IsLetter(rune(by)) && !unicode.IsDigit(rune(by)) {
			break
		}
		line.pos++
	}
	if !line.isEOL() && !unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos = start
		return ""
	}
	return strings.ToLower(line.line[start:line.pos])
}

// Get the next space separated token.
func (line *cmdLine) getToken() string {
	line.skipSpace()
	start := line.pos
	for !line.isEOL() && !unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
	return line.line[start:line.pos]
}

// Parse an octal number.
func (line *cmdLine) getOctal() (uint64, error) {
	text := line.getToken()
	if text == "" {
		return 0, errors.New("not a number")
	}
	value, err := strconv.ParseUint(text, 8, 64)
	if err != nil {
		return 0, errors.New("not an octal number: " + text)
	}
	return value, nil
}

// Parse a value, octal or hexadecimal after an x.
func (line *cmdLine) getValue() (uint64, error) {
	text := line.getToken()
	if text == "" {
		return 0, errors.New("value required")
	}
	hex, ok := strings.CutPrefix(strings.ToLower(text), "x")
	if !ok {
		value, err := strconv.ParseUint(text, 8, 64)
		if err != nil {
			return 0, errors.New("not an octal number: " + text)
		}
		return value, nil
	}
	value, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return 0, errors.New("not a hexadecimal number: " + text)
	}
	return value, nil
}

// Parse a decimal number.
func (line *cmdLine) getNumber() (int, error) {
	text := line.getToken()
	if text == "" {
		return 0, errors.New("not a number")
	}
	value, err := strconv.Atoi(text)
	if err != nil || value < 0 {
		return 0, errors.New("not a number: " + text)
	}
	return value, nil
}

// Parse an octal address or range, low-high.
func (line *cmdLine) getRange() (uint64, uint64, error) {
	text := line.getToken()
	if text == "" {
		return 0, 0, errors.New("address required")
	}
	lowText, highText, isRange := strings.Cut(text, "-")
	low, err := strconv.ParseUint(lowText, 8, 64)
	if err != nil {
		return 0, 0, errors.New("not an octal address: " + lowText)
	}
	if !isRange {
		return low, low, nil
	}
	high, err := strconv.ParseUint(highText, 8, 64)
	if err != nil {
		return 0, 0, errors.New("not an octal address: " + highText)
	}
	if high < low {
		return 0, 0, errors.New("high address below low address")
	}
	return low, high, nil
}

// Check nothing is left on the line.
func (line *cmdLine) getEOL() error {
	line.skipSpace()
	if !line.isEOL() {
		return errors.New("extra arguments to command: " + line.line[line.pos:])
	}
	return nil
}
