package ui

import (
	"github.com/unkn0wn-root/walle/internal/session"
	"github.com/unkn0wn-root/walle/internal/watcher"
)

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
	statusSuccess
)

type statusMsg struct {
	text  string
	level statusLevel
}

type runDoneMsg struct {
	seq    int
	result session.Result
}

type fileChangedMsg struct {
	path   string
	kind   watcher.EventKind
	source string
}
