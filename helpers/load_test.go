package helpers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rondas-org/rondas/schema"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSVSerenos(t *testing.T) {
	path := writeTemp(t, "serenos.csv",
		"Fecha,Hora,sector,Turno,Supervisor DNI,Supervisor,Cargo,Lat,Lng\n"+
			"15/03/2024,08:00,Sector 02,TI,111,Ana,Sereno,-12.04,-77.04\n"+
			"16/03/2024,09:00,04,T2,222,Luis,Sereno,,\n"+
			",,,,,,,,\n") // fully blank row dropped by the loader

	rows, profile, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if profile.Name != "serenos" {
		t.Errorf("profile = %q, want serenos", profile.Name)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["Supervisor DNI"] != "111" || rows[1]["sector"] != "04" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestLoadCSVLocales(t *testing.T) {
	path := writeTemp(t, "locales.csv",
		"Fecha,Hora,Sector,Turno,ID Local,Nombre\n"+
			"15/03/2024,08:00,01,TI,7,Bodega Sur\n")

	rows, profile, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if profile.Name != "locales" {
		t.Errorf("profile = %q, want locales", profile.Name)
	}
	if rows[0]["ID Local"] != "7" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestLoadCSVRaggedRows(t *testing.T) {
	path := writeTemp(t, "ragged.csv",
		"Fecha,sector,Supervisor DNI\n"+
			"15/03/2024,02\n"+ // short row: DNI missing, builder will drop it
			"16/03/2024,03,111\n")

	rows, _, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if _, ok := rows[0]["Supervisor DNI"]; ok {
		t.Error("short row should not carry the missing column")
	}
}

func TestLoadCSVUnknownHeaders(t *testing.T) {
	path := writeTemp(t, "bad.csv", "A,B,C\n1,2,3\n")

	_, _, err := LoadCSV(path)
	if err == nil {
		t.Fatal("unknown headers should fail profile detection")
	}
}

func TestLoadCSVMissingRequiredColumn(t *testing.T) {
	// Supervisor DNI selects the patrol profile, but Fecha is required too.
	path := writeTemp(t, "nodate.csv", "sector,Supervisor DNI\n02,111\n")

	_, _, err := LoadCSV(path)
	var missing *schema.MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingColumnError", err)
	}
	if missing.Column != "Fecha" {
		t.Errorf("missing column = %q, want Fecha", missing.Column)
	}
}

func TestLoadCSVEmptyFile(t *testing.T) {
	path := writeTemp(t, "empty.csv", "")
	if _, _, err := LoadCSV(path); err == nil {
		t.Fatal("empty file should fail")
	}
}

func TestLoadDispatch(t *testing.T) {
	path := writeTemp(t, "data.csv",
		"Fecha,sector,Supervisor DNI\n15/03/2024,02,111\n")

	rows, _, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	if _, _, err := Load("data.parquet"); err == nil {
		t.Error("unsupported extension should fail")
	}
}
