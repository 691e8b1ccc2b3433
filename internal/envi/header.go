// Package envi opens ENVI-format hyperspectral captures: a plain-text .hdr
// header next to a raw image file. Only the header is read; pixel data is
// left alone.
package envi

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var ErrNotENVI = errors.New("not an ENVI header")

// Header holds header fields keyed by lower-cased field name. Values in
// braces are stored without the braces, with line breaks folded to spaces.
type Header map[string]string

// Get returns the value of the first key present.
func (h Header) Get(keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := h[strings.ToLower(key)]; ok {
			return v, true
		}
	}
	return "", false
}

// ParseHeader reads an ENVI header. The first non-blank line must be "ENVI".
func ParseHeader(r io.Reader) (Header, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	header := Header{}
	seenMagic := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !seenMagic {
			if line != "ENVI" {
				return nil, ErrNotENVI
			}
			seenMagic = true
			continue
		}
		if strings.HasPrefix(line, ";") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("envi: line %d: expected key = value", lineNo)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		if strings.HasPrefix(value, "{") {
			var b strings.Builder
			b.WriteString(value)
			for !strings.Contains(value, "}") {
				if !scanner.Scan() {
					return nil, fmt.Errorf("envi: unterminated value for %q", key)
				}
				lineNo++
				value = strings.TrimSpace(scanner.Text())
				b.WriteString(" ")
				b.WriteString(value)
			}
			value = b.String()
			value = strings.TrimSpace(value[1:strings.LastIndex(value, "}")])
		}

		header[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !seenMagic {
		return nil, ErrNotENVI
	}
	return header, nil
}

// ReadHeader parses the header file at path.
func ReadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, err := ParseHeader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return header, nil
}
