// geotrace: spatio-temporal trajectory pattern mining
// Adapted from PTRA: Patient Trajectory Analysis Library
// Copyright (c) 2022 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/ptra/blob/master/LICENSE.txt>.

package pattern

// trieNode is one node of the trie used to detect proper-prefix
// duplicates: a pattern is dropped if some other emitted pattern
// continues past it.
type trieNode struct {
	children map[int]*trieNode
	terminal bool // some emitted pattern ends exactly here
}

func newTrieNode() *trieNode {
	return &trieNode{children: map[int]*trieNode{}}
}

// Canonicalize removes every pattern that is a strict prefix of some
// other pattern in the set. Order of the result is undefined; callers
// that need a stable order should sort it themselves.
func Canonicalize(patterns []Pattern) []Pattern {
	root := newTrieNode()
	for _, p := range patterns {
		cur := root
		for _, c := range p {
			next, ok := cur.children[c]
			if !ok {
				next = newTrieNode()
				cur.children[c] = next
			}
			cur = next
		}
		cur.terminal = true
	}

	var out []Pattern
	for _, p := range patterns {
		cur := root
		for _, c := range p {
			cur = cur.children[c]
		}
		// p survives iff nothing continues past its terminal node: no
		// other emitted pattern has p as a strict prefix.
		if len(cur.children) == 0 {
			out = append(out, p)
		}
	}
	return out
}
