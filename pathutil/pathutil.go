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

// Package pathutil parses and validates the slash-delimited directory
// paths used throughout conctree: a string starting and ending with "/",
// whose components are non-empty runs of lowercase ASCII letters.
// "/" denotes the root; "/a/b/" denotes a two-level path.
package pathutil

import "strings"

// MaxComponentLength bounds a single path component, matching the
// MAX_FOLDER_NAME_LENGTH contract of the original path utility.
const MaxComponentLength = 255

// Root is the path denoting the tree's root directory.
const Root = "/"

func isComponentByte(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// Valid reports whether path has the required shape: starts and ends
// with '/', every component is one or more lowercase letters and no
// longer than MaxComponentLength, and there are no empty components
// (i.e. no "//").
func Valid(path string) bool {
	if len(path) == 0 || path[0] != '/' || path[len(path)-1] != '/' {
		return false
	}
	if path == Root {
		return true
	}
	for _, comp := range strings.Split(path[1:len(path)-1], "/") {
		if len(comp) == 0 || len(comp) > MaxComponentLength {
			return false
		}
		for i := 0; i < len(comp); i++ {
			if !isComponentByte(comp[i]) {
				return false
			}
		}
	}
	return true
}

// Count returns the number of path components; Count("/") is 0.
func Count(path string) int {
	if path == Root {
		return 0
	}
	return strings.Count(path, "/") - 1
}

// Split peels the first component off path, returning it along with
// the remaining subpath (always "/"-terminated). ok is false once path
// has no more components left to peel (path == "/" or "").
//
// Split does not validate path; callers are expected to have called
// Valid first.
func Split(path string) (component, rest string, ok bool) {
	if path == "" || path == Root {
		return "", "", false
	}
	trimmed := path[1:]
	idx := strings.IndexByte(trimmed, '/')
	if idx < 0 {
		return "", "", false
	}
	return trimmed[:idx], trimmed[idx:], true
}

// Components splits a valid path into its ordered component list;
// Components("/") is empty.
func Components(path string) []string {
	if path == Root || path == "" {
		return nil
	}
	parts := strings.Split(path[1:len(path)-1], "/")
	out := make([]string, 0, len(parts))
	out = append(out, parts...)
	return out
}

// FormatListing renders a set of child names as a tree listing: one
// name per line. Callers must not depend on any particular ordering of
// names beyond the set being correct.
func FormatListing(names []string) string {
	return strings.Join(names, "\n")
}

// IsStrictPrefix reports whether target names a node strictly inside
// the subtree rooted at source: every component of source appears as a
// component-aligned prefix of target and target has at least one more
// component than source.
func IsStrictPrefix(source, target string) bool {
	if len(target) <= len(source) {
		return false
	}
	return strings.HasPrefix(target, source)
}
