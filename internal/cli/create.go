package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/poisebuild/poise-pms/internal/model"
	"github.com/poisebuild/poise-pms/internal/service"
)

func (a *App) handleCreate(ctx context.Context) error {
	a.console.Println("\nCreate New Project\n----------------------")
	name, err := a.console.ReadLine("Project name: ")
	if err != nil {
		return err
	}

	// Re-prompt while the chosen name is taken; any other key abandons the
	// flow back to the menu.
	for name != "" {
		taken, err := a.projects.ProjectNameTaken(ctx, name)
		if err != nil {
			return err
		}
		if !taken {
			break
		}
		option, err := a.console.ReadLine("This name is already taken. \nEnter: 1 - Try again\nAny other key - back to Menu")
		if err != nil {
			return err
		}
		if option != "1" {
			a.showMenu()
			return nil
		}
		if name, err = a.console.ReadLine("Project name: "); err != nil {
			return err
		}
	}

	buildingType, err := a.console.ReadLine("Building type: ")
	if err != nil {
		return err
	}
	address, err := a.console.ReadLine("Address: ")
	if err != nil {
		return err
	}
	erfNum, err := a.console.ReadLine("ERF no.: ")
	if err != nil {
		return err
	}
	totalFee, err := a.console.ReadMoney("Total Fee: ")
	if err != nil {
		return err
	}
	amountPaid, err := a.console.ReadMoney("Amount Paid: ")
	if err != nil {
		return err
	}
	deadline, err := a.console.ReadDate()
	if err != nil {
		return err
	}

	stakeholders := make(map[model.Role]int, len(model.Roles))
	var customer *model.Person
	for _, role := range model.Roles {
		a.console.Printf("\nProject Stakeholders\n\nEnter details for:\n%s\n", role.Label())
		person, err := a.stakeholderInput(ctx, role)
		if err != nil {
			return err
		}
		stakeholders[role] = person.ID
		if role == model.RoleCustomer {
			customer = person
		}
	}

	if name == "" {
		name = fallbackName(buildingType, customer.Name)
	}

	project, err := a.projects.CreateProject(ctx, service.CreateProjectInput{
		Name:         name,
		BuildingType: buildingType,
		Address:      address,
		ErfNum:       erfNum,
		TotalFee:     totalFee,
		AmountPaid:   amountPaid,
		Deadline:     deadline,
		Stakeholders: stakeholders,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateName) || errors.Is(err, service.ErrInvalidInput) {
			a.console.Println("Unable to add project.")
			return nil
		}
		return err
	}

	if err := a.sess.Commit(); err != nil {
		return err
	}

	a.console.Println("\n__________________\nProject added.\n__________________")
	if err := a.printProjectWithStakeholders(ctx, project); err != nil {
		return err
	}
	a.log.Info().Int("project_id", project.ID).Str("name", project.Name).Msg("project created")
	return nil
}

// stakeholderInput resolves one stakeholder: pick an existing row by its
// 1-based display index (0 cancels back one level) or collect the details
// for a new person, which is persisted immediately.
func (a *App) stakeholderInput(ctx context.Context, role model.Role) (*model.Person, error) {
	for {
		choice, err := a.console.ReadLine(fmt.Sprintf("Select an existing %s (Y/N)?", role.Label()))
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(choice) {
		case "y":
			person, err := a.selectExistingPerson(ctx, role)
			if err != nil {
				return nil, err
			}
			if person != nil {
				return person, nil
			}
			// cancelled, back to the Y/N prompt
		case "n":
			return a.createPerson(ctx, role)
		default:
			a.console.Printf("\nInvalid input. Try again.\n\n")
		}
	}
}

func (a *App) selectExistingPerson(ctx context.Context, role model.Role) (*model.Person, error) {
	people, err := a.projects.ListPeople(ctx, role)
	if err != nil {
		return nil, err
	}
	if len(people) == 0 {
		a.console.Printf("\nNo existing %ss.\n\n", role.Label())
		return nil, nil
	}

	for i, person := range people {
		a.console.Printf("%d - %s | %s\n", i+1, person.Name, person.Phone)
	}
	for {
		option, err := a.console.ReadLine("Select an option (0 - to go back):")
		if err != nil {
			return nil, err
		}
		index, convErr := strconv.Atoi(strings.TrimSpace(option))
		if convErr != nil {
			a.console.Printf("Invalid input. Enter a number.\n\n")
			continue
		}
		if index == 0 {
			return nil, nil
		}
		if index >= 1 && index <= len(people) {
			person := people[index-1]
			return &person, nil
		}
		a.console.Printf("Invalid input. Try again.\n\n")
	}
}

func (a *App) createPerson(ctx context.Context, role model.Role) (*model.Person, error) {
	var firstName, surname string
	for {
		var err error
		if firstName, err = a.console.ReadLine("First name: "); err != nil {
			return nil, err
		}
		if surname, err = a.console.ReadLine("Surname: "); err != nil {
			return nil, err
		}
		if strings.TrimSpace(firstName) != "" && strings.TrimSpace(surname) != "" {
			break
		}
		a.console.Printf("Invalid entry. Please enter name and surname.\n\n")
	}

	phone, err := a.console.ReadLine("Phone number: ")
	if err != nil {
		return nil, err
	}
	email, err := a.console.ReadLine("Email address: ")
	if err != nil {
		return nil, err
	}
	address, err := a.console.ReadLine("Physical address: ")
	if err != nil {
		return nil, err
	}

	person, err := a.projects.AddPerson(ctx, model.Person{
		Role:    role,
		Name:    firstName + " " + surname,
		Phone:   phone,
		Email:   email,
		Address: address,
	})
	if err != nil {
		return nil, err
	}
	a.log.Info().Str("role", string(role)).Int("person_id", person.ID).Msg("stakeholder added")
	return person, nil
}

// fallbackName builds a project name from the building type and the
// customer's surname when the operator left the name blank.
func fallbackName(buildingType, customerName string) string {
	parts := strings.Fields(customerName)
	if len(parts) < 2 {
		return buildingType
	}
	return buildingType + " " + parts[len(parts)-1]
}
