package ui

import (
	"math"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/GridCalc/internal/grid"
)

func TestEntryFieldAdapter(t *testing.T) {
	_ = test.NewApp()

	entry := widget.NewEntry()
	field := &entryField{entry: entry}

	var got string
	field.OnChanged(func(s string) { got = s })

	field.SetText("42")
	if field.Text() != "42" {
		t.Errorf("expected text 42, got %q", field.Text())
	}
	if got != "42" {
		t.Errorf("SetText should fire the change callback, got %q", got)
	}
}

func TestLabelSinkFormatting(t *testing.T) {
	_ = test.NewApp()

	label := widget.NewLabel("")
	sink := &labelSink{label: label}

	sink.SetValue(12.345)
	if label.Text != "12.35" {
		t.Errorf("expected 12.35, got %q", label.Text)
	}

	sink.SetValue(math.Inf(1))
	if label.Text != "inf" {
		t.Errorf("expected inf, got %q", label.Text)
	}
}

func TestResultSectionCoversAllOutputs(t *testing.T) {
	for _, spec := range grid.Outputs {
		if resultSection(spec.Key) == "Other" {
			t.Errorf("output %s has no result section", spec.Key)
		}
	}
}
