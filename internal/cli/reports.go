package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/poisebuild/poise-pms/internal/model"
)

func (a *App) handleIncomplete(ctx context.Context) error {
	a.console.Println("\n_________________________\nProjects to be completed:\n_________________________")
	projects, err := a.projects.ListIncomplete(ctx)
	if err != nil {
		return err
	}
	return a.renderReport(model.ReportKindIncomplete, projects)
}

func (a *App) handleOverdue(ctx context.Context) error {
	a.console.Println("\n________________________\nProjects Past Deadline:\n________________________")
	projects, err := a.projects.ListOverdue(ctx, dateOnly(a.now()))
	if err != nil {
		return err
	}
	return a.renderReport(model.ReportKindOverdue, projects)
}

func (a *App) renderReport(kind model.ReportKind, projects []model.Project) error {
	for i := range projects {
		a.console.Println(a.formatProject(&projects[i]))
		a.console.Println("-----------------------------------------------------------")
	}

	option, err := a.console.ReadLine("\nE - Export to spreadsheet. Any other key + Enter to go back to Menu.")
	if err != nil {
		return err
	}
	if strings.EqualFold(strings.TrimSpace(option), "e") {
		a.exportReport(kind, projects)
	}
	a.console.Println("Returning to Menu...")
	return nil
}

// exportReport writes the listing as a spreadsheet artifact. Export is a
// side effect of a read-only view; a failure is logged and reported, no
// rollback is involved.
func (a *App) exportReport(kind model.ReportKind, projects []model.Project) {
	name, content, err := a.projects.ExportReport(model.ProjectReport{
		Kind:        kind,
		GeneratedAt: dateOnly(a.now()),
		Projects:    projects,
	})
	if err != nil {
		a.log.Warn().Err(err).Str("kind", string(kind)).Msg("report export failed")
		a.console.Println("Unable to export report.")
		return
	}
	if err := os.MkdirAll(a.cfg.Reports.Dir, 0o755); err != nil {
		a.log.Warn().Err(err).Msg("create reports dir failed")
		a.console.Println("Unable to export report.")
		return
	}
	path := filepath.Join(a.cfg.Reports.Dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		a.log.Warn().Err(err).Str("path", path).Msg("write report failed")
		a.console.Println("Unable to export report.")
		return
	}
	a.console.Printf("Report saved to %s\n", path)
}
