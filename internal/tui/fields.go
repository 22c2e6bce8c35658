// Package tui is the terminal frontend. It binds plain value-holding
// adapters onto the shared form; the Elm-style update loop edits them
// through a single text input.
package tui

import (
	"github.com/piwi3910/GridCalc/internal/export"
)

// inputField holds one editable cell's text. SetText fires the registered
// callback, which is how commits from the edit prompt reach the binding
// engine.
type inputField struct {
	value   string
	changed func(string)
}

func (f *inputField) Text() string { return f.value }

func (f *inputField) SetText(s string) {
	f.value = s
	if f.changed != nil {
		f.changed(s)
	}
}

func (f *inputField) OnChanged(fn func(string)) { f.changed = fn }

// valueSink holds one derived output, pre-formatted for display.
type valueSink struct {
	text string
}

func (s *valueSink) SetValue(v float64) { s.text = export.FormatValue(v) }
