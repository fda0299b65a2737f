// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nlp

import (
	"fmt"
	"io"
)

// LogLevel controls the verbosity of formulation output.
type LogLevel int

const (
	// LogNoop no output is generated.
	LogNoop LogLevel = iota - 1
	// LogError print internal errors only.
	LogError
	// LogWarn print also recoverable anomalies.
	LogWarn
	// LogSummary print also the problem summary at finalize time.
	LogSummary
	// LogTrace print details of every formulation call.
	LogTrace
)

// Logger handles logging output for the formulation layer.
// Note the writer must be thread-safe if shared across instances.
type Logger struct {
	Level LogLevel
	Msg   io.Writer
}

func (l *Logger) enable(level LogLevel) bool {
	return l != nil && l.Msg != nil && l.Level >= level
}

func (l *Logger) log(level LogLevel, format string, a ...any) {
	if !l.enable(level) {
		return
	}
	if len(a) > 0 {
		_, _ = fmt.Fprintf(l.Msg, format, a...)
	} else {
		_, _ = fmt.Fprint(l.Msg, format)
	}
}
