package binding

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/GridCalc/internal/grid"
)

// Load reads a grid document from path and replaces the model state
// wholesale. On success every bound field is refreshed from the new state
// and exactly one recalculation runs. On failure the model state and all
// field displays are left untouched and a typed *OpenError is returned.
func (f *Form) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return &OpenError{Kind: FileUnreadable, Path: path, Err: err}
	}
	defer file.Close()

	calc, err := grid.FromJSON(file)
	if err != nil {
		return &OpenError{Kind: ContentUnparseable, Path: path, Err: err}
	}

	f.acquire()
	func() {
		defer f.release()
		f.doc.Calculator = calc
		f.refreshAll()
	}()

	f.doc.CurrentFile = path
	f.doc.CurrentDir = filepath.Dir(path)
	f.Recalculate()
	return nil
}

// Save serializes the current model state to path, creating or truncating
// the file. The remembered file path and directory are updated only on
// full success; the model's numeric content is never mutated. Failures are
// returned as a typed *SaveError.
func (f *Form) Save(path string) error {
	if f.mutating {
		panic("binding: save during mutation")
	}

	file, err := os.Create(path)
	if err != nil {
		return &SaveError{Kind: FileUnwritable, Path: path, Err: err}
	}
	if err := f.doc.Calculator.ToJSON(file); err != nil {
		file.Close()
		return &SaveError{Kind: ContentUnserializable, Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return &SaveError{Kind: FileUnwritable, Path: path, Err: err}
	}

	f.doc.CurrentFile = path
	f.doc.CurrentDir = filepath.Dir(path)
	return nil
}

// SaveCurrent saves to the remembered file path. It reports prompted=true
// when no path is remembered yet, in which case the caller must obtain a
// destination (save-as flow) and call Save itself.
func (f *Form) SaveCurrent() (prompted bool, err error) {
	if f.doc.CurrentFile == "" {
		return true, nil
	}
	return false, f.Save(f.doc.CurrentFile)
}

// Reset replaces the model state with a fresh default calculator, as for a
// new document. The remembered directory survives; the remembered file
// does not.
func (f *Form) Reset() {
	f.acquire()
	func() {
		defer f.release()
		f.doc.Calculator = grid.NewCalculator()
		f.refreshAll()
	}()
	f.doc.CurrentFile = ""
	f.Recalculate()
}
