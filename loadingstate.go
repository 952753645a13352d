package main

import (
	"slices"
	"strings"
)

// Loading keys
const (
	expensesKey = "expenses"
	snapshotKey = "snapshot"
)

// loadingState tracks which startup reads have completed.
type loadingState map[string]bool

func newLoadingState(keys ...string) loadingState {
	l := make(loadingState, len(keys))
	for _, k := range keys {
		l[k] = false
	}
	return l
}

// set marks key as loaded
func (l loadingState) set(key string) {
	l[key] = true
}

// unset marks key as loading again
func (l loadingState) unset(key string) {
	l[key] = false
}

// allLoaded reports whether every key is loaded, and otherwise the first
// key still loading.
func (l loadingState) allLoaded() (bool, string) {
	waiting := l.waiting()
	if len(waiting) == 0 {
		return true, ""
	}
	return false, waiting[0]
}

// waiting returns the keys still loading, sorted.
func (l loadingState) waiting() []string {
	var keys []string
	for k, v := range l {
		if !v {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

func (l loadingState) String() string {
	return strings.Join(l.waiting(), ", ")
}
