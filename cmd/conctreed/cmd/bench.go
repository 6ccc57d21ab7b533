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
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mimuw-pw/conctree/tree"
)

var (
	benchWorkers  int
	benchDuration time.Duration
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Hammer a tree with concurrent move/list and report the outcome",
	Long: `Spawns --workers goroutines that for --duration repeatedly swap
a directory between two parents (move(/a/, /b/a/) and back) while
other goroutines concurrently list the root. Exercises the same
overlapping-move and torn-read properties described in the design
write-up's testable properties, but at a scale and duration the caller
controls.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		t := tree.New()
		defer t.Free()

		if err := t.Create("/a/"); err != nil {
			return err
		}
		if err := t.Create("/b/"); err != nil {
			return err
		}

		deadline := time.Now().Add(benchDuration)
		var g errgroup.Group

		for i := 0; i < benchWorkers; i++ {
			g.Go(func() error {
				for time.Now().Before(deadline) {
					_ = t.Move("/a/", "/b/a/")
					_ = t.Move("/b/a/", "/a/")
				}
				return nil
			})
		}
		for i := 0; i < benchWorkers; i++ {
			g.Go(func() error {
				for time.Now().Before(deadline) {
					if _, ok := t.List("/"); !ok {
						return fmt.Errorf("list /: unexpectedly not found")
					}
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		_, aOK := t.List("/a/")
		_, baOK := t.List("/b/a/")
		fmt.Fprintf(out, "done: /a/ exists=%v, /b/a/ exists=%v\n", aOK, baOK)
		if aOK == baOK {
			return fmt.Errorf("invariant violated: exactly one of /a/ or /b/a/ should exist")
		}
		fmt.Fprintln(out, "ok: exactly one survivor")
		return nil
	},
}

func init() {
	benchCmd.Flags().IntVar(&benchWorkers, "workers", 8, "number of concurrent mover/lister goroutines")
	benchCmd.Flags().DurationVar(&benchDuration, "duration", 200*time.Millisecond, "how long to hammer the tree")
	rootCmd.AddCommand(benchCmd)
}
