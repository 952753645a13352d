package main

import (
	"testing"

	"github.com/carlmjohnson/be"
)

func TestNewLoadingState(t *testing.T) {
	tests := []struct {
		name string
		keys []string
	}{
		{
			name: "empty keys",
			keys: []string{},
		},
		{
			name: "expenses only",
			keys: []string{expensesKey},
		},
		{
			name: "expenses and snapshot",
			keys: []string{expensesKey, snapshotKey},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls := newLoadingState(tt.keys...)

			for _, key := range tt.keys {
				value, exists := ls[key]
				be.True(t, exists)
				be.False(t, value)
			}

			be.Equal(t, len(tt.keys), len(ls))
		})
	}
}

func TestLoadingStateSetUnset(t *testing.T) {
	ls := newLoadingState(expensesKey, snapshotKey)

	ls.set(expensesKey)
	be.True(t, ls[expensesKey])
	be.False(t, ls[snapshotKey])

	ls.unset(expensesKey)
	be.False(t, ls[expensesKey])
}

func TestLoadingStateAllLoaded(t *testing.T) {
	tests := []struct {
		name            string
		keys            []string
		setKeys         []string
		expectLoaded    bool
		expectNotLoaded string
	}{
		{
			name:         "empty state - all loaded",
			expectLoaded: true,
		},
		{
			name:            "none loaded reports the first key",
			keys:            []string{snapshotKey, expensesKey},
			expectLoaded:    false,
			expectNotLoaded: expensesKey,
		},
		{
			name:            "partially loaded",
			keys:            []string{expensesKey, snapshotKey},
			setKeys:         []string{expensesKey},
			expectLoaded:    false,
			expectNotLoaded: snapshotKey,
		},
		{
			name:         "all loaded",
			keys:         []string{expensesKey, snapshotKey},
			setKeys:      []string{expensesKey, snapshotKey},
			expectLoaded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls := newLoadingState(tt.keys...)
			for _, key := range tt.setKeys {
				ls.set(key)
			}

			loaded, notLoaded := ls.allLoaded()
			be.Equal(t, tt.expectLoaded, loaded)
			be.Equal(t, tt.expectNotLoaded, notLoaded)
		})
	}
}

func TestLoadingStateString(t *testing.T) {
	ls := newLoadingState(snapshotKey, expensesKey)
	be.Equal(t, "expenses, snapshot", ls.String())

	ls.set(expensesKey)
	be.Equal(t, "snapshot", ls.String())
}
