package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/GridCalc/internal/data"
	"github.com/piwi3910/GridCalc/internal/grid"
)

func testData(t *testing.T) *data.Data {
	t.Helper()
	d, err := data.Load()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return d
}

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	raw := []byte("Block,Direction,Count\nreactor-large-lg,,2\nthruster-ion-large-lg,up,4\n")
	got := DetectCSVDelimiter(raw)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	raw := []byte("Block;Direction;Count\nreactor-large-lg;;2\nthruster-ion-large-lg;up;4\n")
	got := DetectCSVDelimiter(raw)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	raw := []byte("Block\tDirection\tCount\nreactor-large-lg\t\t2\nthruster-ion-large-lg\tup\t4\n")
	got := DetectCSVDelimiter(raw)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	raw := []byte("Block|Direction|Count\nreactor-large-lg||2\nthruster-ion-large-lg|up|4\n")
	got := DetectCSVDelimiter(raw)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Block", "Direction", "Count"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Block != 0 {
		t.Errorf("expected Block at 0, got %d", mapping.Block)
	}
	if mapping.Direction != 1 {
		t.Errorf("expected Direction at 1, got %d", mapping.Direction)
	}
	if mapping.Count != 2 {
		t.Errorf("expected Count at 2, got %d", mapping.Count)
	}
}

func TestDetectColumns_Aliases(t *testing.T) {
	row := []string{"QTY", "ID", "DIR"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Count != 0 {
		t.Errorf("expected Count at 0, got %d", mapping.Count)
	}
	if mapping.Block != 1 {
		t.Errorf("expected Block at 1, got %d", mapping.Block)
	}
	if mapping.Direction != 2 {
		t.Errorf("expected Direction at 2, got %d", mapping.Direction)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"reactor-large-lg", "", "2"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("expected no header detection for data row")
	}
	if mapping.Block != 0 || mapping.Direction != 1 || mapping.Count != 2 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSV_BasicCounts(t *testing.T) {
	d := testData(t)
	csv := "Block,Direction,Count\nreactor-large-lg,,2\nbattery-lg,,3\nthruster-ion-large-lg,up,4\n"
	result := ImportCSVFromReader(d, strings.NewReader(csv), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(result.Entries))
	}

	calc := grid.NewCalculator()
	result.Apply(calc)
	if calc.Count(data.GroupReactors, "reactor-large-lg") != 2 {
		t.Error("reactor count not applied")
	}
	if calc.Count(data.GroupBatteries, "battery-lg") != 3 {
		t.Error("battery count not applied")
	}
	if calc.ThrusterCount(data.Up, "thruster-ion-large-lg") != 4 {
		t.Error("thruster count not applied to up direction")
	}
	if calc.ThrusterCount(data.Down, "thruster-ion-large-lg") != 0 {
		t.Error("thruster count leaked into another direction")
	}
}

func TestImportCSV_UnknownBlock(t *testing.T) {
	d := testData(t)
	csv := "Block,Direction,Count\nwarp-nacelle-xl,,1\nreactor-large-lg,,2\n"
	result := ImportCSVFromReader(d, strings.NewReader(csv), ',')

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "warp-nacelle-xl") {
		t.Errorf("error should name the unknown id: %s", result.Errors[0])
	}
	if len(result.Entries) != 1 {
		t.Errorf("valid rows should still import, got %d entries", len(result.Entries))
	}
}

func TestImportCSV_ThrusterWithoutDirection(t *testing.T) {
	d := testData(t)
	csv := "Block,Direction,Count\nthruster-ion-large-lg,,4\n"
	result := ImportCSVFromReader(d, strings.NewReader(csv), ',')

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "direction") {
		t.Errorf("error should mention the missing direction: %s", result.Errors[0])
	}
}

func TestImportCSV_DirectionOnNonThrusterWarns(t *testing.T) {
	d := testData(t)
	csv := "Block,Direction,Count\nreactor-large-lg,up,2\n"
	result := ImportCSVFromReader(d, strings.NewReader(csv), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected a warning about the ignored direction")
	}
	if len(result.Entries) != 1 || result.Entries[0].Directed {
		t.Error("reactor row should import as undirected entry")
	}
}

func TestImportCSV_InvalidCount(t *testing.T) {
	d := testData(t)
	csv := "Block,Direction,Count\nreactor-large-lg,,lots\nbattery-lg,,-2\n"
	result := ImportCSVFromReader(d, strings.NewReader(csv), ',')

	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", result.Errors)
	}
	if len(result.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(result.Entries))
	}
}

func TestImportCSV_File(t *testing.T) {
	d := testData(t)
	path := filepath.Join(t.TempDir(), "counts.csv")
	content := "block;direction;count\ncontainer-large-lg;;6\nthruster-hydrogen-small-lg;back;2\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(d, path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}

	foundDelimiterWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			foundDelimiterWarning = true
		}
	}
	if !foundDelimiterWarning {
		t.Error("expected a semicolon delimiter warning")
	}
}

func TestImportCSV_MissingFile(t *testing.T) {
	d := testData(t)
	result := ImportCSV(d, filepath.Join(t.TempDir(), "nope.csv"))
	if len(result.Errors) == 0 {
		t.Fatal("expected error for missing file")
	}
}

func TestImportCSV_EmptyRowsSkipped(t *testing.T) {
	d := testData(t)
	csv := "Block,Direction,Count\n\n , , \nreactor-large-lg,,1\n"
	result := ImportCSVFromReader(d, strings.NewReader(csv), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(result.Entries))
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func TestImportExcel(t *testing.T) {
	d := testData(t)
	path := filepath.Join(t.TempDir(), "counts.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Block", "Direction", "Count"},
		{"reactor-large-lg", "", 2},
		{"thruster-atmo-large-lg", "left", 3},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	result := ImportExcel(d, path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}

	calc := grid.NewCalculator()
	result.Apply(calc)
	if calc.ThrusterCount(data.Left, "thruster-atmo-large-lg") != 3 {
		t.Error("excel thruster count not applied")
	}
}

func TestImportExcel_MissingFile(t *testing.T) {
	d := testData(t)
	result := ImportExcel(d, filepath.Join(t.TempDir(), "nope.xlsx"))
	if len(result.Errors) == 0 {
		t.Fatal("expected error for missing file")
	}
}
