// Package binding keeps many independently-edited input fields
// synchronized with a single shared calculator, and guarantees that every
// edit triggers one full recomputation of all derived outputs before the
// triggering event handler returns.
//
// The package is presentation-agnostic: both frontends plug their widgets
// in through the Field and Sink interfaces. Exactly one Form exists per
// open document and it owns the document's model state.
package binding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/GridCalc/internal/data"
	"github.com/piwi3910/GridCalc/internal/grid"
)

// Field is one editable text field. OnChanged must invoke the registered
// callback every time the field's text changes, on the UI thread.
type Field interface {
	Text() string
	SetText(string)
	OnChanged(func(string))
}

// Sink is one read-only output slot. The engine supplies raw values;
// formatting is the sink's concern.
type Sink interface {
	SetValue(float64)
}

// Document is the model state of one open document: the owned calculator
// plus file bookkeeping. Both paths are empty until a load or save has
// succeeded (the directory may be seeded earlier from app config).
type Document struct {
	Calculator  *grid.Calculator
	CurrentDir  string
	CurrentFile string
}

type scalarBinding struct {
	spec  grid.ScalarSpec
	field Field
}

type countBinding struct {
	id    data.BlockID
	field Field
}

type outputBinding struct {
	spec grid.OutputSpec
	sink Sink
}

// Form owns the document and every binding onto it. Bindings are created
// once at startup for the lifetime of the field set; the catalog does not
// change at runtime.
//
// Form is single-threaded: all edits, recomputation, and persistence run
// synchronously on the caller's event loop. The mutating flag enforces the
// single-borrow discipline; re-entrant mutation is a programming error and
// panics.
type Form struct {
	data *data.Data
	doc  Document

	scalars   []*scalarBinding
	counts    map[data.Group]map[data.BlockID]*countBinding
	thrusters map[data.Direction]map[data.BlockID]*countBinding
	outputs   []*outputBinding

	mutating   bool
	refreshing bool
}

// NewForm creates the form for one document. calc becomes the owned model
// state; pass grid.NewCalculator() for a fresh document.
func NewForm(d *data.Data, calc *grid.Calculator) *Form {
	f := &Form{
		data:      d,
		doc:       Document{Calculator: calc},
		counts:    map[data.Group]map[data.BlockID]*countBinding{},
		thrusters: map[data.Direction]map[data.BlockID]*countBinding{},
	}
	for _, g := range data.UndirectedGroups {
		f.counts[g] = map[data.BlockID]*countBinding{}
	}
	for _, dir := range data.Directions {
		f.thrusters[dir] = map[data.BlockID]*countBinding{}
	}
	return f
}

// Calculator exposes the owned calculator for read-only collaborators
// (exports, result views). Callers must not mutate it.
func (f *Form) Calculator() *grid.Calculator { return f.doc.Calculator }

// Data returns the catalog the form was built against.
func (f *Form) Data() *data.Data { return f.data }

// CurrentFile returns the remembered file path, empty if none.
func (f *Form) CurrentFile() string { return f.doc.CurrentFile }

// CurrentDir returns the remembered directory, empty if none.
func (f *Form) CurrentDir() string { return f.doc.CurrentDir }

// SetCurrentDir seeds the remembered directory (e.g. from app config)
// before any load or save has happened.
func (f *Form) SetCurrentDir(dir string) { f.doc.CurrentDir = dir }

// BindScalar ties one scalar parameter to a field. An edit that fails to
// parse silently writes the parameter's default into the model and still
// recalculates; editing state is always accepted, never blocked.
func (f *Form) BindScalar(spec grid.ScalarSpec, field Field) {
	b := &scalarBinding{spec: spec, field: field}
	f.scalars = append(f.scalars, b)
	field.OnChanged(func(text string) {
		if f.refreshing {
			return
		}
		v := parseFloat(text, spec.Default)
		f.edit(func(c *grid.Calculator) { *spec.Ptr(c) = v })
	})
}

// BindCount ties one block's count in an undirected group to a field.
// Parse failures (including the empty string) write zero.
func (f *Form) BindCount(g data.Group, id data.BlockID, field Field) {
	if !f.data.Knows(id) {
		panic(fmt.Sprintf("binding: unknown block id %q", id))
	}
	b := &countBinding{id: id, field: field}
	f.counts[g][id] = b
	field.OnChanged(func(text string) {
		if f.refreshing {
			return
		}
		n := parseCount(text)
		f.edit(func(c *grid.Calculator) { c.SetCount(g, id, n) })
	})
}

// BindThruster ties one block's count in one thrust direction to a field.
// Each direction keeps its own lookup table; editing one direction never
// touches the others.
func (f *Form) BindThruster(dir data.Direction, id data.BlockID, field Field) {
	if !f.data.Knows(id) {
		panic(fmt.Sprintf("binding: unknown block id %q", id))
	}
	b := &countBinding{id: id, field: field}
	f.thrusters[dir][id] = b
	field.OnChanged(func(text string) {
		if f.refreshing {
			return
		}
		n := parseCount(text)
		f.edit(func(c *grid.Calculator) { c.SetThrusterCount(dir, id, n) })
	})
}

// BindOutput attaches a display sink for one derived output key.
func (f *Form) BindOutput(key string, sink Sink) {
	spec, ok := grid.OutputByKey(key)
	if !ok {
		panic(fmt.Sprintf("binding: unknown output key %q", key))
	}
	f.outputs = append(f.outputs, &outputBinding{spec: spec, sink: sink})
}

// Recalculate derives the full output snapshot from the current model
// state and pushes every bound value to its sink. It is synchronous,
// idempotent, and leaves the model untouched.
func (f *Form) Recalculate() {
	if f.mutating {
		panic("binding: recalculate during mutation")
	}
	calc := f.doc.Calculator.Calculate(f.data)
	for _, o := range f.outputs {
		o.sink.SetValue(o.spec.Get(&calc))
	}
}

// Batch runs one exclusive mutation that may touch many counts at once
// (e.g. applying an import), refreshes every bound field from the resulting
// state, and recalculates exactly once.
func (f *Form) Batch(mutate func(*grid.Calculator)) {
	f.acquire()
	func() {
		defer f.release()
		mutate(f.doc.Calculator)
		f.refreshAll()
	}()
	f.Recalculate()
}

// Adopt replaces the document's calculator wholesale (e.g. from a restored
// backup), refreshes every bound field, and recalculates exactly once. The
// adopted state has no grid file of its own, so like Reset it forgets the
// remembered file and keeps the remembered directory.
func (f *Form) Adopt(calc *grid.Calculator) {
	f.acquire()
	func() {
		defer f.release()
		f.doc.Calculator = calc
		f.refreshAll()
	}()
	f.doc.CurrentFile = ""
	f.Recalculate()
}

// edit runs one exclusive mutation followed by exactly one recalculation.
func (f *Form) edit(mutate func(*grid.Calculator)) {
	f.acquire()
	func() {
		defer f.release()
		mutate(f.doc.Calculator)
	}()
	f.Recalculate()
}

func (f *Form) acquire() {
	if f.mutating {
		panic("binding: re-entrant model mutation")
	}
	f.mutating = true
}

func (f *Form) release() {
	f.mutating = false
}

// refreshAll overwrites every bound field's text from the current model
// state without triggering any recomputation. Scalar fields get a fixed
// two-decimal rendering; count fields are first blanked, then the entries
// present in the model are written back, so ids absent from the model stay
// blank (and parse to zero on the next edit).
func (f *Form) refreshAll() {
	f.refreshing = true
	defer func() { f.refreshing = false }()

	c := f.doc.Calculator
	for _, b := range f.scalars {
		b.field.SetText(strconv.FormatFloat(*b.spec.Ptr(c), 'f', 2, 64))
	}

	for _, table := range f.counts {
		for _, b := range table {
			b.field.SetText("")
		}
	}
	for _, table := range f.thrusters {
		for _, b := range table {
			b.field.SetText("")
		}
	}

	for g, counts := range c.Counts {
		table := f.counts[g]
		for id, n := range counts {
			if b, ok := table[id]; ok {
				b.field.SetText(strconv.FormatUint(n, 10))
			}
		}
	}
	for dir, counts := range c.Thrusters {
		table := f.thrusters[dir]
		for id, n := range counts {
			if b, ok := table[id]; ok {
				b.field.SetText(strconv.FormatUint(n, 10))
			}
		}
	}
}

func parseFloat(text string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return def
	}
	return v
}

func parseCount(text string) uint64 {
	n, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
