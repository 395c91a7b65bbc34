// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scripttest reads command scenarios from txtar archives, for
// tests of command-line drivers.
//
// The archive's comment holds directives of these forms:
//
//	CMD args...	command-line arguments of a new case
//	exit N		expected exit status (default 0)
//	[!]want arg	expected/unwanted string in output
//
// where CMD is the command name given to Load. Args may be Go-quoted
// strings. Blank lines and lines starting with '#' are ignored. The
// archive's files are the inputs of the cases.
package scripttest

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// A Case is one invocation of the command and its expectations.
type Case struct {
	Line int // line of the command directive within the comment
	Args []string
	Exit int
	Want map[string]bool // string -> sense
}

func (c *Case) String() string { return fmt.Sprintf("L%d", c.Line) }

// Load parses the named archive, writes its files below a new
// temporary directory, and returns that directory and the cases.
func Load(t testing.TB, filename, command string) (dir string, cases []*Case) {
	t.Helper()
	ar, err := txtar.ParseFile(filename)
	if err != nil {
		t.Fatal(err)
	}

	dir = t.TempDir()
	for _, f := range ar.Files {
		filename := filepath.Join(dir, f.Name)
		if err := os.MkdirAll(filepath.Dir(filename), 0777); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filename, f.Data, 0666); err != nil {
			t.Fatal(err)
		}
	}

	cases, err = Parse(string(ar.Comment), command)
	if err != nil {
		t.Fatalf("%s: %v", filename, err)
	}
	return dir, cases
}

// Parse parses the directives in text.
func Parse(text, command string) ([]*Case, error) {
	var cases []*Case
	var current *Case
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}

		words, err := Words(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: cannot break line into words: %v", i+1, err)
		}
		switch kind := words[0]; kind {
		case command:
			current = &Case{
				Line: i + 1,
				Args: words[1:],
				Want: make(map[string]bool),
			}
			cases = append(cases, current)
		case "exit":
			if current == nil || len(words) != 2 {
				return nil, fmt.Errorf("line %d: 'exit' directive must follow %q and have one argument", i+1, command)
			}
			if current.Exit, err = strconv.Atoi(words[1]); err != nil {
				return nil, fmt.Errorf("line %d: bad exit status: %v", i+1, err)
			}
		case "want", "!want":
			if current == nil {
				return nil, fmt.Errorf("line %d: 'want' directive must follow %q", i+1, command)
			}
			if len(words) != 2 {
				return nil, fmt.Errorf("line %d: 'want' directive needs one argument", i+1)
			}
			current.Want[words[1]] = kind[0] != '!'
		default:
			return nil, fmt.Errorf("line %d: invalid directive %q", i+1, kind)
		}
	}
	return cases, nil
}

// Check reports to t each way in which the command's combined output
// and exit status differ from the case's expectations.
func (c *Case) Check(t testing.TB, output string, exit int) {
	t.Helper()
	if exit != c.Exit {
		t.Errorf("exit status %d, want %d; output:\n%s", exit, c.Exit, output)
	}
	for str, sense := range c.Want {
		if strings.Contains(output, str) != sense {
			if sense {
				t.Errorf("missing %q", str)
			} else {
				t.Errorf("unwanted %q", str)
			}
			t.Errorf("got: <<%s>>", output)
		}
	}
}

// Words breaks a string into words, respecting
// Go string quotations around words with spaces.
func Words(s string) ([]string, error) {
	var words []string
	for s = strings.TrimSpace(s); s != ""; s = strings.TrimSpace(s) {
		var word string
		if s[0] == '"' || s[0] == '`' {
			prefix, err := strconv.QuotedPrefix(s)
			if err != nil {
				return nil, err
			}
			s = s[len(prefix):]
			word, _ = strconv.Unquote(prefix)
		} else {
			prefix, rest, _ := strings.Cut(s, " ")
			s = rest
			word = prefix
		}
		words = append(words, word)
	}
	return words, nil
}
