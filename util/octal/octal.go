/*
 * Cyber - Octal formatting and parsing
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

package octal

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rcornwell/cyber/emu/fault"
	"github.com/rcornwell/cyber/emu/word"
)

var octMap = "01234567"

// Digits needed to show a word of width w.
func Digits(w word.Width) int {
	return (int(w) + 2) / 3
}

// FormatWord writes each word zero filled to the width, space separated.
func FormatWord(str *strings.Builder, w word.Width, words ...uint64) {
	for i, full := range words {
		if i != 0 {
			str.WriteByte(' ')
		}
		full &= w.Mask()
		for shift := (Digits(w) - 1) * 3; shift >= 0; shift -= 3 {
			str.WriteByte(octMap[(full>>shift)&7])
		}
	}
}

// Format returns a single word as octal text.
func Format(w word.Width, v uint64) string {
	var str strings.Builder
	FormatWord(&str, w, v)
	return str.String()
}

// FormatGroups writes a 60 bit word as five 12 bit groups, the way
// display code listings show them.
func FormatGroups(str *strings.Builder, v uint64) {
	for shift := 48; shift >= 0; shift -= 12 {
		FormatWord(str, word.W12, (v>>shift)&0o7777)
		if shift != 0 {
			str.WriteByte(' ')
		}
	}
}

// ParseWord converts octal text to a value that fits w.
func ParseWord(s string, w word.Width) (uint64, error) {
	v, err := strconv.ParseUint(s, 8, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid octal number: %s", s)
	}
	if err := w.Check(v); err != nil {
		return 0, err
	}
	return v, nil
}

// ReadWords reads whitespace separated octal words of width w. Text
// after '#' or ';' on a line is a comment.
func ReadWords(r io.Reader, w word.Width) ([]uint64, error) {
	words := []uint64{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexAny(text, "#;"); i >= 0 {
			text = text[:i]
		}
		for _, field := range strings.Fields(text) {
			v, err := ParseWord(field, w)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			words = append(words, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no words read: %w", fault.ErrDecode)
	}
	return words, nil
}
