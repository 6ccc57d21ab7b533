package tree

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const stressWorkers = 8
const stressDuration = 150 * time.Millisecond

// Scenario 5: N goroutines race move(/a/, /b/a/) against move(/b/a/, /a/)
// for a short duration. Regardless of interleaving, at the end exactly
// one of /a/ or /b/a/ exists and the tree is otherwise unchanged.
func TestConcurrentCrissCrossMoveLeavesExactlyOneSurvivor(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Create("/b/"))

	deadline := time.Now().Add(stressDuration)
	var wg sync.WaitGroup
	for i := 0; i < stressWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(deadline) {
				_ = tr.Move("/a/", "/b/a/")
				_ = tr.Move("/b/a/", "/a/")
			}
		}()
	}
	wg.Wait()

	listing, ok := tr.List("/")
	require.True(t, ok)
	top := strings.Split(listing, "\n")

	_, aExists := tr.List("/a/")
	bListing, bOk := tr.List("/b/")
	_, baExists := tr.List("/b/a/")

	assert.True(t, bOk, "/b/ must still exist")
	assert.NotEqual(t, aExists, baExists, "exactly one of /a/ or /b/a/ must exist, got a=%v b/a=%v", aExists, baExists)
	if aExists {
		assert.Empty(t, bListing)
	}
	assert.ElementsMatch(t, top, uniqueNonEmpty(top))

	assertQuiescent(t, tr.root)
}

func uniqueNonEmpty(items []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// Scenario 6: readers calling List("/") concurrently with a goroutine
// that repeatedly creates and removes "/x/" must never observe a torn
// listing: every List result must be a name the tree actually held at
// some instant, and the listing itself must never be malformed.
func TestConcurrentReadersNeverObserveTornListing(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Create("/y/"))

	var g errgroup.Group
	stop := make(chan struct{})

	for i := 0; i < stressWorkers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-stop:
					return nil
				default:
				}
				listing, ok := tr.List("/")
				if !ok {
					return fmt.Errorf("List(/) unexpectedly reported not-found")
				}
				for _, name := range strings.Split(listing, "\n") {
					if name != "" && name != "x" && name != "y" {
						return fmt.Errorf("observed unexpected child %q in listing %q", name, listing)
					}
				}
			}
		})
	}

	g.Go(func() error {
		deadline := time.Now().Add(stressDuration)
		for time.Now().Before(deadline) {
			_ = tr.Create("/x/")
			_ = tr.Remove("/x/")
		}
		close(stop)
		return nil
	})

	require.NoError(t, g.Wait())
	assertQuiescent(t, tr.root)
}
