package ui

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/GridCalc/internal/binding"
	"github.com/piwi3910/GridCalc/internal/data"
	"github.com/piwi3910/GridCalc/internal/grid"
	"github.com/piwi3910/GridCalc/internal/project"
)

func testApp(t *testing.T) (*App, *binding.Form) {
	t.Helper()
	_ = test.NewApp()

	d, err := data.Load()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	form := binding.NewForm(d, grid.NewCalculator())
	return NewApp(test.NewWindow(nil), form, project.DefaultAppConfig()), form
}

func TestApplyBackupRestoresConfigAndGrid(t *testing.T) {
	a, form := testApp(t)

	entry := widget.NewEntry()
	form.BindCount(data.GroupContainers, "container-large-lg", &entryField{entry: entry})
	value := widget.NewLabel("")
	form.BindOutput("volume.any", &labelSink{label: value})

	restored := grid.NewCalculator()
	restored.SetCount(data.GroupContainers, "container-large-lg", 7)
	cfg := project.DefaultAppConfig()
	cfg.Theme = "dark"
	cfg.LastDirectory = t.TempDir()

	a.applyBackup(project.BackupData{Version: "1.0.0", Config: cfg, Grid: restored})

	if a.config.Theme != "dark" {
		t.Errorf("expected restored theme dark, got %q", a.config.Theme)
	}
	if form.Calculator() != restored {
		t.Error("form should adopt the restored calculator")
	}
	if entry.Text != "7" {
		t.Errorf("count field should show the restored count, got %q", entry.Text)
	}
	if value.Text == "" || value.Text == "0.00" {
		t.Errorf("volume output should reflect the restored grid, got %q", value.Text)
	}
	if form.CurrentDir() != cfg.LastDirectory {
		t.Errorf("form should pick up the restored directory, got %q", form.CurrentDir())
	}
	if form.CurrentFile() != "" {
		t.Errorf("restored grid has no file of its own, got %q", form.CurrentFile())
	}
}

func TestApplyBackupWithoutGridKeepsDocument(t *testing.T) {
	a, form := testApp(t)
	form.Calculator().SetCount(data.GroupReactors, "reactor-large-lg", 2)
	before := form.Calculator()

	cfg := project.DefaultAppConfig()
	cfg.Theme = "light"
	a.applyBackup(project.BackupData{Version: "1.0.0", Config: cfg})

	if a.config.Theme != "light" {
		t.Errorf("config should be applied, got theme %q", a.config.Theme)
	}
	if form.Calculator() != before {
		t.Error("a config-only backup must not touch the open grid")
	}
	if form.Calculator().Count(data.GroupReactors, "reactor-large-lg") != 2 {
		t.Error("open grid state lost on config-only import")
	}
}

func TestBackupFileRoundTripThroughApply(t *testing.T) {
	a, form := testApp(t)
	path := filepath.Join(t.TempDir(), "gridcalc-backup.json")

	source := grid.NewCalculator()
	source.SetThrusterCount(data.Front, "thruster-ion-large-lg", 3)
	if err := project.ExportAllData(path, a.config, source); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := project.ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	a.applyBackup(backup)

	if form.Calculator().ThrusterCount(data.Front, "thruster-ion-large-lg") != 3 {
		t.Error("thruster count lost in backup round trip")
	}
}
