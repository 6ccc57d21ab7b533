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
	"fmt"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mimuw-pw/conctree/tree"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the scenario walkthrough from the design write-up",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		t := tree.New()
		defer t.Free()

		check := func(what string, got, want error) error {
			if got != want {
				return fmt.Errorf("%s: got %v, want %v", what, got, want)
			}
			fmt.Fprintf(out, "ok: %s\n", what)
			return nil
		}

		if err := check("create /c/", t.Create("/c/"), nil); err != nil {
			return err
		}
		if err := check("create /c/a/", t.Create("/c/a/"), nil); err != nil {
			return err
		}
		if err := check("create /c/a/a/", t.Create("/c/a/a/"), nil); err != nil {
			return err
		}
		if listing, ok := t.List("/c/a/"); !ok || listing != "a" {
			return fmt.Errorf("list /c/a/: got (%q, %v), want (\"a\", true)", listing, ok)
		}
		fmt.Fprintln(out, "ok: list /c/a/ == \"a\"")

		if err := check("remove /", t.Remove("/"), syscall.EBUSY); err != nil {
			return err
		}
		if err := check("remove /c/a/a/", t.Remove("/c/a/a/"), nil); err != nil {
			return err
		}
		if err := check("remove /c/a/", t.Remove("/c/a/"), nil); err != nil {
			return err
		}
		if listing, ok := t.List("/"); !ok || listing != "c" {
			return fmt.Errorf("list /: got (%q, %v), want (\"c\", true)", listing, ok)
		}
		fmt.Fprintln(out, "ok: list / == \"c\"")

		if err := check("create /a/", t.Create("/a/"), nil); err != nil {
			return err
		}
		if err := check("create /a/b/", t.Create("/a/b/"), nil); err != nil {
			return err
		}
		if err := check("move /a/ /c/a/", t.Move("/a/", "/c/a/"), nil); err != nil {
			return err
		}
		if listing, ok := t.List("/c/a/"); !ok || listing != "b" {
			return fmt.Errorf("list /c/a/: got (%q, %v), want (\"b\", true)", listing, ok)
		}
		fmt.Fprintln(out, "ok: list /c/a/ == \"b\"")

		if err := check("move /c/a/ /c/a/b/c/", t.Move("/c/a/", "/c/a/b/c/"), tree.ErrMovingToSubtree); err != nil {
			return err
		}

		fmt.Fprintln(out, "all scenarios passed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
