package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
)

// PeopleCommand returns the people command group.
func PeopleCommand() *cli.Command {
	return &cli.Command{
		Name:    "people",
		Aliases: []string{"person"},
		Usage:   "Tenants, owners and contractors",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Register a person and their address",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Full or company name"},
					&cli.BoolFlag{Name: "legal", Usage: "Register a company instead of an individual"},
					&cli.StringFlag{Name: "document", Usage: "CPF or CNPJ"},
					&cli.StringFlag{Name: "telephone", Usage: "Telephone (at least 6 characters)"},
					&cli.StringFlag{Name: "email", Usage: "E-mail address"},
				}, addressFlags()...),
				Action: guarded("people create", createPerson),
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List people",
				Action: guarded("people list", func(c *cli.Context, rt *Runtime, view *service.View) error {
					ctx, cancel := rt.requestContext(c.Context)
					defer cancel()

					people, err := rt.API.ListPeople(ctx, view)
					if err != nil {
						return rt.fail(err, "")
					}
					return render(c, rt, peopleView(people))
				}),
			},
		},
	}
}

func createPerson(c *cli.Context, rt *Runtime, view *service.View) error {
	in := domain.PersonInput{
		Name:          c.String("name"),
		IsLegalPerson: c.Bool("legal"),
		DocumentID:    c.String("document"),
		Telephone:     c.String("telephone"),
		Email:         c.String("email"),
		Address:       addressFrom(c),
	}

	ctx, cancel := rt.requestContext(c.Context)
	defer cancel()

	person, err := rt.API.CreatePerson(ctx, view, in)
	if err != nil {
		return rt.fail(err, "")
	}
	rt.Notices.Show("person registered successfully", domain.SeveritySuccess)
	return render(c, rt, peopleView{person})
}

func addressFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "street", Usage: "Street and number"},
		&cli.StringFlag{Name: "postal-code", Usage: "Postal code"},
		&cli.StringFlag{Name: "state", Usage: "State"},
		&cli.StringFlag{Name: "city", Usage: "City"},
		&cli.StringFlag{Name: "neighborhood", Usage: "Neighborhood"},
	}
}

func addressFrom(c *cli.Context) domain.Address {
	return domain.Address{
		Street:       c.String("street"),
		PostalCode:   c.String("postal-code"),
		State:        c.String("state"),
		City:         c.String("city"),
		Neighborhood: c.String("neighborhood"),
	}
}
