package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/poisebuild/poise-pms/internal/model"
	"github.com/poisebuild/poise-pms/internal/service"
)

func (a *App) handleSearch(ctx context.Context) error {
	project, err := a.selectProject(ctx)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			a.console.Println("Project not found.")
			return nil
		}
		return err
	}

	if err := a.printProjectWithStakeholders(ctx, project); err != nil {
		return err
	}
	option, err := a.console.ReadLine("\n-- Options:\n1 - Update\n2 - Mark as finalised\nEnter option (any other key to go back):")
	if err != nil {
		return err
	}
	switch option {
	case "1":
		return a.updateProject(ctx, project.ID)
	case "2":
		return a.finaliseProject(ctx, project.ID)
	default:
		a.console.Println("Back to Main menu...")
		return nil
	}
}

func (a *App) selectProject(ctx context.Context) (*model.Project, error) {
	for {
		choice, err := a.console.ReadLine("Search for project by:\t1 - Project name\t2 - Project number\nEnter option (1 or 2):")
		if err != nil {
			return nil, err
		}
		switch choice {
		case "1":
			name, err := a.console.ReadLine("Search by project name:")
			if err != nil {
				return nil, err
			}
			return a.projects.FindProjectByName(ctx, strings.TrimSpace(name))
		case "2":
			raw, err := a.console.ReadLine("Search by project number:")
			if err != nil {
				return nil, err
			}
			id, convErr := strconv.Atoi(strings.TrimSpace(raw))
			if convErr != nil {
				a.console.Printf("Invalid input. Enter a number.\n\n")
				continue
			}
			return a.projects.FindProjectByID(ctx, id)
		default:
			a.console.Printf("Incorrect input. Please select an option.\n\n")
		}
	}
}

// updateProject loops over single-field updates. Each write is applied
// immediately; the fate of the whole sub-flow is decided once, at exit, via
// the save-changes prompt.
func (a *App) updateProject(ctx context.Context, projectID int) error {
	a.console.Println("\nUpdate project selected.")
	for {
		// the store is the source of truth between writes
		project, err := a.projects.FindProjectByID(ctx, projectID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				a.console.Println("Project not found.")
				return a.exitUpdating()
			}
			return err
		}
		if err := a.printProjectWithStakeholders(ctx, project); err != nil {
			return err
		}
		a.showUpdateOptions()

		choice, err := a.console.ReadLine("")
		if err != nil {
			return err
		}
		option, convErr := strconv.Atoi(strings.TrimSpace(choice))
		if convErr != nil || option < 1 || option > 12 {
			return a.exitUpdating()
		}

		switch option {
		case 1, 2, 3, 4:
			if err := a.updateProjectText(ctx, project, option); err != nil {
				return err
			}
		case 5, 6:
			if err := a.updateProjectAmount(ctx, project, option); err != nil {
				return err
			}
		case 7, 8:
			if err := a.updateProjectDate(ctx, project, option); err != nil {
				return err
			}
		default:
			role := model.Roles[option-9]
			if err := a.updatePerson(ctx, role, project.StakeholderID(role)); err != nil {
				return err
			}
		}
	}
}

func (a *App) showUpdateOptions() {
	a.console.Println("\nProject update options:\n---------------------\n" +
		"1. Project name\n2. Building Type\n3. Address\n4. ERF number\n" +
		"5. Total fee\n6. Amount paid\n7. Deadline\n8. Completion date\n9. Structural Engineer\n" +
		"10. Project Manager\n11. Architect\n12. Customer\n" +
		"-- Select option (any other key - go back to Main Menu):")
}

func (a *App) updateProjectText(ctx context.Context, project *model.Project, option int) error {
	var field model.ProjectField
	var old string
	switch option {
	case 1:
		field, old = model.ProjectFieldName, project.Name
	case 2:
		field, old = model.ProjectFieldBuildingType, project.BuildingType
	case 3:
		field, old = model.ProjectFieldAddress, project.Address
	case 4:
		field, old = model.ProjectFieldErfNum, project.ErfNum
	}

	update, err := a.console.ReadLine("Enter update:")
	if err != nil {
		return err
	}
	return a.applyProjectUpdate(ctx, project.ID, field, update, old, update)
}

func (a *App) updateProjectAmount(ctx context.Context, project *model.Project, option int) error {
	var field model.ProjectField
	var old float64
	switch option {
	case 5:
		field, old = model.ProjectFieldTotalFee, project.TotalFee
	case 6:
		field, old = model.ProjectFieldAmountPaid, project.AmountPaid
	}

	a.console.Println("Enter update:")
	amount, err := a.console.ReadMoney("")
	if err != nil {
		return err
	}
	return a.applyProjectUpdate(ctx, project.ID, field, amount, a.amount(old), a.amount(amount))
}

func (a *App) updateProjectDate(ctx context.Context, project *model.Project, option int) error {
	var field model.ProjectField
	var old string
	switch option {
	case 7:
		field, old = model.ProjectFieldDeadline, formatDate(project.Deadline)
	case 8:
		field = model.ProjectFieldCompletionDate
		if !project.Finalised() {
			a.console.Printf("\nCannot update Completion Date -- Project has not been finalised.\n\n")
			return nil
		}
		old = formatDate(*project.CompletionDate)
	}

	a.console.Println("Enter update:")
	date, err := a.console.ReadDate()
	if err != nil {
		return err
	}
	return a.applyProjectUpdate(ctx, project.ID, field, date, old, formatDate(date))
}

func (a *App) applyProjectUpdate(ctx context.Context, id int, field model.ProjectField, value interface{}, old, shown string) error {
	err := a.projects.UpdateProjectField(ctx, id, field, value)
	switch {
	case errors.Is(err, service.ErrNotFinalised):
		a.console.Printf("\nCannot update Completion Date -- Project has not been finalised.\n\n")
		return nil
	case errors.Is(err, service.ErrNotFound):
		a.console.Println("Update failed.")
		return nil
	case err != nil:
		return err
	}
	a.console.Printf("Update complete [%s -> %s].\n\n", old, shown)
	a.log.Info().Int("project_id", id).Str("field", string(field)).Msg("project field updated")
	return nil
}

// updatePerson loops over the four person fields until the operator backs
// out, echoing each change as old -> new.
func (a *App) updatePerson(ctx context.Context, role model.Role, id int) error {
	for {
		person, err := a.projects.GetPerson(ctx, role, id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				a.console.Println("Update failed !")
				return nil
			}
			return err
		}

		a.console.Printf("Update %s:\n-------------------\n", role.Label())
		a.console.Printf("1. Name         | %s\n2. Phone number | %s\n3. Email        | %s\n4. Address      | %s\nEnter option (any other key to go back):\n",
			person.Name, person.Phone, person.Email, person.Address)

		choice, err := a.console.ReadLine("")
		if err != nil {
			return err
		}

		var field model.PersonField
		var old string
		switch choice {
		case "1":
			field, old = model.PersonFieldName, person.Name
		case "2":
			field, old = model.PersonFieldPhone, person.Phone
		case "3":
			field, old = model.PersonFieldEmail, person.Email
		case "4":
			field, old = model.PersonFieldAddress, person.Address
		default:
			return nil
		}

		update, err := a.console.ReadLine("Enter update:")
		if err != nil {
			return err
		}
		if err := a.projects.UpdatePersonField(ctx, role, id, field, update); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				a.console.Println("Update failed !")
				continue
			}
			return err
		}
		a.console.Printf("Stakeholder updated [ %s -> '%s'].\n\n", old, update)
		a.log.Info().Str("role", string(role)).Int("person_id", id).Str("field", string(field)).Msg("stakeholder updated")
	}
}

// exitUpdating resolves the update sub-flow: the operator decides once
// whether everything accumulated since entering it is kept or discarded.
func (a *App) exitUpdating() error {
	for {
		option, err := a.console.ReadLine("Exiting update...\nDo you want to save changes (Y/N) ?\nEnter option:")
		if err != nil {
			return err
		}
		switch strings.ToLower(option) {
		case "y":
			a.console.Println("Saving changes...")
			return a.sess.Commit()
		case "n":
			a.console.Println("Discarding changes...")
			return a.sess.Rollback()
		default:
			a.console.Println("Invalid input. Please select an option.")
		}
	}
}

func (a *App) finaliseProject(ctx context.Context, projectID int) error {
	summary, err := a.projects.Finalise(ctx, projectID, dateOnly(a.now()))
	if err != nil {
		if errors.Is(err, service.ErrAlreadyFinalised) {
			a.console.Println("\nProject has already been finalised!")
			return nil
		}
		if errors.Is(err, service.ErrNotFound) {
			a.console.Println("Project not found.")
			return nil
		}
		return err
	}

	a.console.Printf("\nProject Finalised.\n___________________________________\nProject: %d\n", summary.ProjectID)
	a.console.Println(summary.ProjectName)
	a.console.Printf("Completion date: %s\n", formatDate(summary.CompletionDate))
	a.console.Println(formatPerson(summary.Customer))

	if summary.PaidInFull {
		a.console.Printf("Customer has paid total fee [%s].\n\n", a.amount(summary.TotalFee))
	} else {
		a.console.Printf(
			"\nInvoice\n______________\nProject Fee\n___________________________________"+
				"\nTotal fee: %s"+
				"\nAmount paid: %s"+
				"\n___________________________________\nAmount due: %s"+
				"\n___________________________________\n",
			a.amount(summary.TotalFee),
			a.amount(summary.AmountPaid),
			a.amount(summary.AmountDue),
		)
		a.writeInvoice(*summary)
	}

	if err := a.sess.Commit(); err != nil {
		return err
	}
	a.log.Info().Int("project_id", summary.ProjectID).Msg("project finalised")
	return nil
}

// writeInvoice stores the invoice artifact under the reports directory. The
// console summary is the contract; a failed write is logged, never rolled
// back.
func (a *App) writeInvoice(summary model.InvoiceSummary) {
	name, content, err := a.projects.InvoiceDocument(summary)
	if err != nil {
		a.log.Warn().Err(err).Int("project_id", summary.ProjectID).Msg("invoice document failed")
		return
	}
	if err := os.MkdirAll(a.cfg.Reports.Dir, 0o755); err != nil {
		a.log.Warn().Err(err).Msg("create reports dir failed")
		return
	}
	path := filepath.Join(a.cfg.Reports.Dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		a.log.Warn().Err(err).Str("path", path).Msg("write invoice failed")
		return
	}
	a.console.Println(fmt.Sprintf("Invoice saved to %s", path))
}
