package main

import "time"

// Filter kinds
const (
	allFilter      = "all"
	categoryFilter = "category"
	monthFilter    = "month"
)

// Store operations reported back to the session
const (
	opLoad   = "load"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
	opFilter = "filter"
)

// storeTimeout bounds a single store command, mutation and re-read included.
const storeTimeout = 10 * time.Second

// Session states
type sessionState int

const (
	loading sessionState = iota
	browsing
	composing
	filtering
	configView
)

func (ss sessionState) String() string {
	switch ss {
	case loading:
		return "loading"
	case browsing:
		return "expenses"
	case composing:
		return "compose"
	case filtering:
		return "filter"
	case configView:
		return "configuration"
	}

	return "unknown"
}
