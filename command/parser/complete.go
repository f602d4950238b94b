/*
 * Cyber - Command completion
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
	"slices"
	"strings"
	"unicode"

	command "github.com/rcornwell/cyber/command/command"
	"github.com/rcornwell/cyber/emu/system"
)

// Called to complete a command line, during line editing.
func CompleteCmd(commandLine string, console command.Console) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	// We have a command, let it try and complete its argument.
	if !line.isEOL() && unicode.IsSpace(rune(line.line[line.pos])) {
		match := matchList(name)
		if len(match) != 1 {
			return nil
		}
		return line.completeArg(match[0].Arg, console)
	}

	// Try and match one command.
	var matches []string
	for _, m := range cmdList {
		if strings.HasPrefix(m.Name, name) {
			matches = append(matches, m.Name+" ")
		}
	}
	slices.Sort(matches)
	return matches
}

// Names of processors, and CM when memory is wanted.
func names(console command.Console, memory bool) []string {
	list := []string{}
	if memory {
		list = append(list, "cm")
	}
	_ = console.Exec(func(sys *system.System) error {
		for _, u := range sys.Units() {
			list = append(list, strings.ToLower(u.ID()))
		}
		return nil
	})
	return list
}

// Complete the first argument of a command.
func (line *cmdLine) completeArg(arg int, console command.Console) []string {
	var choices []string
	switch arg {
	case command.ArgProcessor:
		choices = names(console, false)
	case command.ArgMemory:
		choices = names(console, true)
	case command.ArgShow:
		choices = append(slices.Clone(command.ShowOptions), names(console, false)...)
	default:
		return nil
	}

	line.skipSpace()
	leading := line.line[:line.pos]
	word := strings.ToLower(line.getToken())
	if !line.isEOL() {
		// Already past the first argument.
		return nil
	}
	matches := []string{}
	for _, choice := range choices {
		if strings.HasPrefix(choice, word) {
			matches = append(matches, leading+choice+" ")
		}
	}
	return matches
}
