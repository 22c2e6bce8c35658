// GridCalc — Ship Grid Calculator
//
// A cross-platform desktop application for planning block layouts:
// cargo, thrust, power, and hydrogen.
//
// Build:
//   go build -o gridcalc ./cmd/gridcalc
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o gridcalc.exe ./cmd/gridcalc
//   GOOS=darwin  GOARCH=amd64 go build -o gridcalc-darwin ./cmd/gridcalc
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"

	"github.com/piwi3910/GridCalc/internal/binding"
	"github.com/piwi3910/GridCalc/internal/data"
	"github.com/piwi3910/GridCalc/internal/grid"
	"github.com/piwi3910/GridCalc/internal/project"
	"github.com/piwi3910/GridCalc/internal/ui"
)

func main() {
	catalog, err := data.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load block catalog: %v\n", err)
		os.Exit(1)
	}

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config, using defaults: %v\n", err)
		config = project.DefaultAppConfig()
	}

	application := app.NewWithID("com.piwi3910.gridcalc")
	application.Settings().SetTheme(themeForConfig(config))

	window := application.NewWindow("GridCalc — Ship Grid Calculator")

	calc := grid.NewCalculator()
	calc.GravityMultiplier = config.DefaultGravityMultiplier
	calc.ContainerMultiplier = config.DefaultContainerMultiplier
	calc.PlanetaryInfluence = config.DefaultPlanetaryInfluence

	form := binding.NewForm(catalog, calc)
	appUI := ui.NewApp(window, form, config)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1100, 750))
	window.CenterOnScreen()
	window.SetCloseIntercept(func() {
		appUI.SaveConfig()
		window.Close()
	})
	window.ShowAndRun()
}

func themeForConfig(config project.AppConfig) fyne.Theme {
	switch config.Theme {
	case "light":
		return ui.NewGridCalcThemeWithVariant(theme.VariantLight)
	case "dark":
		return ui.NewGridCalcThemeWithVariant(theme.VariantDark)
	default:
		return ui.NewGridCalcTheme()
	}
}
