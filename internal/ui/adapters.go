package ui

import (
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/GridCalc/internal/export"
)

// entryField adapts a fyne Entry to the binding field contract. Wrapping
// instead of embedding keeps the widget's Text field from shadowing the
// interface method.
type entryField struct {
	entry *widget.Entry
}

func (e *entryField) Text() string { return e.entry.Text }

func (e *entryField) SetText(s string) { e.entry.SetText(s) }

func (e *entryField) OnChanged(fn func(string)) { e.entry.OnChanged = fn }

// labelSink adapts a fyne Label to the binding sink contract. Values render
// with two decimals; infinite durations render as "inf".
type labelSink struct {
	label *widget.Label
}

func (s *labelSink) SetValue(v float64) { s.label.SetText(export.FormatValue(v)) }
