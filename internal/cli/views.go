package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/poisebuild/poise-pms/internal/model"
)

func (a *App) formatProject(project *model.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nProject details:\n-----------------\n[Project no.: %d]", project.ID)
	fmt.Fprintf(&b, "\nName: %s", project.Name)
	fmt.Fprintf(&b, "\nBuilding type: %s", project.BuildingType)
	fmt.Fprintf(&b, "\nAddress: %s", project.Address)
	fmt.Fprintf(&b, "\nERF no.: %s", project.ErfNum)
	fmt.Fprintf(&b, "\nTotal fee: %s", a.amount(project.TotalFee))
	fmt.Fprintf(&b, "\nAmount paid: %s", a.amount(project.AmountPaid))
	fmt.Fprintf(&b, "\nDeadline: %s", formatDate(project.Deadline))

	if project.Finalised() {
		fmt.Fprintf(&b, "\nCompletion date: %s", formatDate(*project.CompletionDate))
		b.WriteString("\nFinalised: Yes")
	} else {
		b.WriteString("\nFinalised: No")
	}
	return b.String()
}

func formatPerson(person model.Person) string {
	return fmt.Sprintf("[%s]\nName: %s\nPhone Number: %s\nE-mail Address: %s\nPhysical Address: %s",
		person.Role.Label(), person.Name, person.Phone, person.Email, person.Address)
}

func (a *App) amount(value float64) string {
	return fmt.Sprintf("%s%.2f", a.currency, value)
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// dateOnly truncates a timestamp to its calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
