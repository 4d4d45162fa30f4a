package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rondas-org/rondas/engine"
	"github.com/rondas-org/rondas/helpers"
	"github.com/rondas-org/rondas/normalize"
)

// InspectCmd summarizes a source file: detected profile, row survival and
// the month/entity domains. Useful before committing to a full render.
type InspectCmd struct {
	File string `arg:"" help:"Source file (.xlsx, .xls or .csv)." type:"existingfile"`
}

func (c *InspectCmd) Run() error {
	rows, profile, err := helpers.Load(c.File)
	if err != nil {
		return err
	}

	b := engine.NewBuilder(profile)
	records := b.BuildAll(rows)
	set := engine.Aggregate(records, engine.Filters{}, engine.WithEntityKind(b.Kind()))

	geo := 0
	shifts := 0
	for _, r := range records {
		if r.HasGeo {
			geo++
		}
		if r.HasShift {
			shifts++
		}
	}

	var out strings.Builder
	fmt.Fprintf(&out, "%s\n", headerStyle.Render(c.File))
	fmt.Fprintf(&out, "  %s %s\n", labelStyle.Render("Perfil:"), valueStyle.Render(profile.Name))
	fmt.Fprintf(&out, "  %s %s\n", labelStyle.Render("Filas:"),
		valueStyle.Render(fmt.Sprintf("%d leídas, %d válidas, %d descartadas",
			len(rows), len(records), len(rows)-len(records))))
	fmt.Fprintf(&out, "  %s %s\n", labelStyle.Render("Con coordenadas:"), valueStyle.Render(fmt.Sprintf("%d", geo)))
	fmt.Fprintf(&out, "  %s %s\n", labelStyle.Render("Con turno:"), valueStyle.Render(fmt.Sprintf("%d", shifts)))

	months := make([]string, 0, len(set.CountByMonth.Rows))
	for _, row := range set.CountByMonth.Rows {
		months = append(months, normalize.MonthLabel(row.Month))
	}
	fmt.Fprintf(&out, "  %s %s\n", labelStyle.Render("Meses:"), valueStyle.Render(strings.Join(months, ", ")))
	fmt.Fprintf(&out, "  %s %s\n", labelStyle.Render(engine.RankingTitle(set.Entity)+":"),
		valueStyle.Render(fmt.Sprintf("%d", len(set.Ranking))))

	fmt.Fprint(os.Stdout, out.String())
	return nil
}
