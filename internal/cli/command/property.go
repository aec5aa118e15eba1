package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
)

// PropertyCommand returns the property command group.
func PropertyCommand() *cli.Command {
	return &cli.Command{
		Name:    "property",
		Aliases: []string{"properties"},
		Usage:   "Managed real-estate units",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Register a property and its address",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "description", Usage: "Description"},
					&cli.StringFlag{Name: "owner", Usage: "Owner person ID (UUID)"},
					&cli.Int64Flag{Name: "iptu", Usage: "IPTU registration number"},
					&cli.StringFlag{Name: "registry-office", Usage: "Registry office"},
					&cli.Int64Flag{Name: "registration", Usage: "Registration number"},
					&cli.StringFlag{Name: "measure-type", Usage: "Measure unit, e.g. m2"},
					&cli.StringFlag{Name: "measure-amount", Usage: "Measured area"},
				}, addressFlags()...),
				Action: guarded("property create", createProperty),
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List properties",
				Action:  guarded("property list", listProperties),
			},
		},
	}
}

func createProperty(c *cli.Context, rt *Runtime, view *service.View) error {
	v := domain.NewValidator()
	amount := parseDecimal(v, "measure_amount", c.String("measure-amount"))
	if err := v.Err(); err != nil {
		return rt.fail(err, "")
	}

	in := domain.PropertyInput{
		Description:    c.String("description"),
		OwnerID:        c.String("owner"),
		IPTUID:         c.Int64("iptu"),
		RegistryOffice: c.String("registry-office"),
		RegistrationID: c.Int64("registration"),
		MeasureType:    c.String("measure-type"),
		MeasureAmount:  amount,
		Address:        addressFrom(c),
	}

	ctx, cancel := rt.requestContext(c.Context)
	defer cancel()

	property, err := rt.API.CreateProperty(ctx, view, in)
	if err != nil {
		return rt.fail(err, "")
	}
	rt.Notices.Show("property registered successfully", domain.SeveritySuccess)
	return render(c, rt, propertiesView{property})
}

func listProperties(c *cli.Context, rt *Runtime, view *service.View) error {
	ctx, cancel := rt.requestContext(c.Context)
	defer cancel()

	properties, err := rt.API.ListProperties(ctx, view)
	if err != nil {
		return rt.fail(err, "")
	}
	return render(c, rt, propertiesView(properties))
}
