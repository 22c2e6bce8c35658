package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/GridCalc/internal/binding"
	"github.com/piwi3910/GridCalc/internal/data"
	"github.com/piwi3910/GridCalc/internal/export"
	"github.com/piwi3910/GridCalc/internal/grid"
	"github.com/piwi3910/GridCalc/internal/importer"
	"github.com/piwi3910/GridCalc/internal/project"
)

// groupTitles maps catalog groups to their display names.
var groupTitles = map[data.Group]string{
	data.GroupContainers:      "Containers",
	data.GroupCockpits:        "Cockpits",
	data.GroupThrusters:       "Thrusters",
	data.GroupHydrogenEngines: "Hydrogen Engines",
	data.GroupReactors:        "Reactors",
	data.GroupBatteries:       "Batteries",
	data.GroupGenerators:      "O2/H2 Generators",
	data.GroupHydrogenTanks:   "Hydrogen Tanks",
	data.GroupJumpDrives:      "Jump Drives",
}

// App holds all application state and UI references.
type App struct {
	window fyne.Window
	form   *binding.Form
	config project.AppConfig
	tabs   *container.AppTabs
}

// NewApp creates the application around one form. The form owns the open
// document; the app owns the widgets bound onto it.
func NewApp(window fyne.Window, form *binding.Form, config project.AppConfig) *App {
	if config.LastDirectory != "" {
		form.SetCurrentDir(config.LastDirectory)
	}
	return &App{
		window: window,
		form:   form,
		config: config,
	}
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Grid", func() {
			a.form.Reset()
		}),
		fyne.NewMenuItem("Open Grid...", func() {
			a.openGrid()
		}),
		fyne.NewMenuItem("Save", func() {
			a.saveGrid()
		}),
		fyne.NewMenuItem("Save As...", func() {
			a.saveGridAs()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Counts from CSV...", func() {
			a.importCounts(func(path string) importer.ImportResult {
				return importer.ImportCSV(a.form.Data(), path)
			})
		}),
		fyne.NewMenuItem("Import Counts from Excel...", func() {
			a.importCounts(func(path string) importer.ImportResult {
				return importer.ImportExcel(a.form.Data(), path)
			})
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF Report...", func() {
			a.exportFile("grid-report.pdf", export.ExportPDF)
		}),
		fyne.NewMenuItem("Export Excel Workbook...", func() {
			a.exportFile("grid.xlsx", export.ExportXLSX)
		}),
		fyne.NewMenuItem("Export Grid Card...", func() {
			a.exportFile("grid-card.pdf", export.ExportGridCard)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import / Export Data...", func() {
			a.showBackupDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.SaveConfig()
			a.window.Close()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))

	a.window.Canvas().AddShortcut(
		&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl},
		func(fyne.Shortcut) { a.openGrid() },
	)
	a.window.Canvas().AddShortcut(
		&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierControl},
		func(fyne.Shortcut) { a.saveGrid() },
	)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About GridCalc",
		"GridCalc — Ship Grid Calculator\n\n"+
			"A cross-platform desktop application for planning\n"+
			"block layouts: cargo, thrust, power, and hydrogen.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI, binds every widget to the form, and
// returns the root container. It must be called exactly once.
func (a *App) Build() fyne.CanvasObject {
	optionsTab := container.NewTabItem("Options", a.buildOptionsPanel())
	blocksTab := container.NewTabItem("Blocks", a.buildBlocksPanel())
	thrustersTab := container.NewTabItem("Thrusters", a.buildThrustersPanel())
	resultsTab := container.NewTabItem("Results", a.buildResultsPanel())

	a.tabs = container.NewAppTabs(optionsTab, blocksTab, thrustersTab, resultsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	// Populate all fields and outputs from the initial state.
	a.form.Batch(func(*grid.Calculator) {})

	return a.tabs
}

// ─── Options Panel ─────────────────────────────────────────

func (a *App) buildOptionsPanel() fyne.CanvasObject {
	rows := container.NewGridWithColumns(3)
	for _, spec := range grid.Scalars {
		entry := widget.NewEntry()
		a.form.BindScalar(spec, &entryField{entry: entry})
		rows.Add(widget.NewLabel(spec.Label))
		rows.Add(entry)
		rows.Add(widget.NewLabel(spec.Unit))
	}
	return container.NewVScroll(container.NewVBox(
		widget.NewCard("Options", "", rows),
	))
}

// ─── Blocks Panel ──────────────────────────────────────────

func (a *App) buildBlocksPanel() fyne.CanvasObject {
	sections := container.NewVBox()
	for _, g := range data.UndirectedGroups {
		sections.Add(widget.NewCard(groupTitles[g], "", a.buildGroupGrid(g)))
	}
	return container.NewVScroll(sections)
}

// buildGroupGrid lays out one count entry per block in a group, small grid
// blocks first, then large.
func (a *App) buildGroupGrid(g data.Group) fyne.CanvasObject {
	rows := container.NewGridWithColumns(3)
	small, large := a.form.Data().SmallAndLarge(g)
	for _, b := range append(small, large...) {
		entry := widget.NewEntry()
		a.form.BindCount(g, b.ID, &entryField{entry: entry})
		rows.Add(widget.NewLabel(b.Name))
		rows.Add(widget.NewLabel(string(b.Size)))
		rows.Add(entry)
	}
	return rows
}

// ─── Thrusters Panel ───────────────────────────────────────

func (a *App) buildThrustersPanel() fyne.CanvasObject {
	grid7 := container.NewGridWithColumns(7)

	grid7.Add(widget.NewLabelWithStyle("Thruster", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	for _, dir := range data.Directions {
		grid7.Add(widget.NewLabelWithStyle(dir.String(), fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))
	}

	small, large := a.form.Data().SmallAndLarge(data.GroupThrusters)
	for _, b := range append(small, large...) {
		grid7.Add(widget.NewLabel(fmt.Sprintf("%s (%s)", b.Name, b.Size)))
		for _, dir := range data.Directions {
			entry := widget.NewEntry()
			a.form.BindThruster(dir, b.ID, &entryField{entry: entry})
			grid7.Add(entry)
		}
	}

	return container.NewVScroll(grid7)
}

// ─── Results Panel ─────────────────────────────────────────

// resultSection maps an output key prefix to its card title.
func resultSection(key string) string {
	switch strings.SplitN(key, ".", 2)[0] {
	case "volume", "mass", "items":
		return "Cargo & Mass"
	case "force", "accel":
		return "Thrust"
	case "power":
		return "Power"
	case "hydrogen":
		return "Hydrogen"
	default:
		return "Other"
	}
}

func (a *App) buildResultsPanel() fyne.CanvasObject {
	sections := container.NewVBox()

	var current string
	var rows *fyne.Container
	for _, spec := range grid.Outputs {
		if section := resultSection(spec.Key); section != current {
			current = section
			rows = container.NewGridWithColumns(3)
			sections.Add(widget.NewCard(section, "", rows))
		}
		value := widget.NewLabelWithStyle("", fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true})
		a.form.BindOutput(spec.Key, &labelSink{label: value})
		rows.Add(widget.NewLabel(spec.Label))
		rows.Add(value)
		rows.Add(widget.NewLabel(spec.Unit))
	}

	return container.NewVScroll(sections)
}

// ─── Actions ───────────────────────────────────────────────

// seedLocation points a file dialog at the directory of the last
// successful load or save, when one is remembered.
func (a *App) seedLocation(d *dialog.FileDialog) {
	dir := a.form.CurrentDir()
	if dir == "" {
		return
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return
	}
	d.SetLocation(lister)
}

func (a *App) openGrid() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		if err := a.form.Load(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.rememberFile(path)
	}, a.window)
	a.seedLocation(d)
	d.Show()
}

func (a *App) saveGrid() {
	prompted, err := a.form.SaveCurrent()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	if prompted {
		a.saveGridAs()
		return
	}
	a.rememberFile(a.form.CurrentFile())
}

func (a *App) saveGridAs() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := a.form.Save(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.rememberFile(path)
	}, a.window)
	d.SetFileName("grid.json")
	a.seedLocation(d)
	d.Show()
}

// rememberFile records a successfully opened or saved path in the config.
func (a *App) rememberFile(path string) {
	a.config.LastDirectory = a.form.CurrentDir()
	a.config.AddRecentFile(path)
	a.SaveConfig()
}

// SaveConfig persists the application preferences. Errors are not fatal;
// the document itself is unaffected.
func (a *App) SaveConfig() {
	if err := project.SaveAppConfig(project.DefaultConfigPath(), a.config); err != nil {
		fmt.Printf("could not save config: %v\n", err)
	}
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) importCounts(run func(path string) importer.ImportResult) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := run(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
	a.seedLocation(d)
	d.Show()
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("Import warnings: %v\n", result.Warnings)
	}

	if len(result.Entries) > 0 {
		a.form.Batch(result.Apply)

		msg := fmt.Sprintf("Successfully imported %d block counts.", len(result.Entries))
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}

func (a *App) exportFile(defaultName string, run func(string, *data.Data, *grid.Calculator) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := run(path, a.form.Data(), a.form.Calculator()); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	a.seedLocation(d)
	d.Show()
}
