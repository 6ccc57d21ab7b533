// Copyright 2020 Nathan Taylor (nbtaylor@gmail.com)
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mimuw-pw/conctree/tree"
)

var scriptCmd = &cobra.Command{
	Use:   "script [file]",
	Short: "Run a sequence of create/remove/move/list commands against one tree",
	Long: `Each line is one of:

  create /a/b/
  remove /a/b/
  move   /a/b/ /c/d/
  list   /a/

Reads from the named file, or from stdin if no file is given. Results
are printed in order; a list result prints one child name per line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open script: %w", err)
			}
			defer f.Close()
			r = f
		}
		return runScript(cmd, r)
	},
}

func init() {
	rootCmd.AddCommand(scriptCmd)
}

func runScript(cmd *cobra.Command, r io.Reader) error {
	t := tree.New()
	defer t.Free()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		result, err := runCommand(t, fields)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), result)
	}
	return scanner.Err()
}

func runCommand(t *tree.Tree, fields []string) (string, error) {
	if len(fields) == 0 {
		return "", errors.New("empty command")
	}
	switch fields[0] {
	case "create":
		if len(fields) != 2 {
			return "", fmt.Errorf("create takes exactly one path, got %v", fields[1:])
		}
		return errString(t.Create(fields[1])), nil
	case "remove":
		if len(fields) != 2 {
			return "", fmt.Errorf("remove takes exactly one path, got %v", fields[1:])
		}
		return errString(t.Remove(fields[1])), nil
	case "move":
		if len(fields) != 3 {
			return "", fmt.Errorf("move takes exactly two paths, got %v", fields[1:])
		}
		return errString(t.Move(fields[1], fields[2])), nil
	case "list":
		if len(fields) != 2 {
			return "", fmt.Errorf("list takes exactly one path, got %v", fields[1:])
		}
		listing, ok := t.List(fields[1])
		if !ok {
			return "not found", nil
		}
		return listing, nil
	default:
		return "", fmt.Errorf("unknown command %q", fields[0])
	}
}

func errString(err error) string {
	if err == nil {
		return "ok"
	}
	return err.Error()
}
