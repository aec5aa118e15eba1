package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
)

// ContractCommand returns the contract command group.
func ContractCommand() *cli.Command {
	return &cli.Command{
		Name:    "contract",
		Aliases: []string{"contracts"},
		Usage:   "Lease contracts",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Register a contract",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "description", Usage: "Description"},
					&cli.StringFlag{Name: "customer", Usage: "Customer person ID (UUID)"},
					&cli.StringFlag{Name: "property", Usage: "Property ID (UUID)"},
					&cli.StringFlag{Name: "price", Usage: "Monthly price"},
					&cli.StringFlag{Name: "start", Usage: "Start date (YYYY-MM-DD)"},
					&cli.StringFlag{Name: "end", Usage: "End date (YYYY-MM-DD)"},
					&cli.StringFlag{Name: "registration", Usage: "Registration number"},
					&cli.StringFlag{Name: "registry-office", Usage: "Registry office"},
				},
				Action: guarded("contract create", createContract),
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List contracts with their status and renewal eligibility",
				Action: guarded("contract list", func(c *cli.Context, rt *Runtime, view *service.View) error {
					ctx, cancel := rt.requestContext(c.Context)
					defer cancel()

					contracts, err := rt.API.ListContracts(ctx, view)
					if err != nil {
						return rt.fail(err, "")
					}
					return render(c, rt, contractsView{contracts: contracts, now: rt.Now()})
				}),
			},
			{
				Name:      "renew",
				Usage:     "Renew a contract for a new period",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "start", Usage: "New start date (YYYY-MM-DD)"},
					&cli.StringFlag{Name: "end", Usage: "New end date (YYYY-MM-DD)"},
					&cli.StringFlag{Name: "price", Usage: "New monthly price"},
				},
				Action: guarded("contract renew", renewContract),
			},
		},
	}
}

func createContract(c *cli.Context, rt *Runtime, view *service.View) error {
	v := domain.NewValidator()
	price := parseDecimal(v, "price", c.String("price"))
	if err := v.Err(); err != nil {
		return rt.fail(err, "")
	}

	in := domain.ContractInput{
		Description:    c.String("description"),
		CustomerID:     c.String("customer"),
		PropertyID:     c.String("property"),
		Price:          price,
		StartDate:      c.String("start"),
		EndDate:        c.String("end"),
		RegistrationID: c.String("registration"),
		RegistryOffice: c.String("registry-office"),
	}

	ctx, cancel := rt.requestContext(c.Context)
	defer cancel()

	contract, err := rt.API.CreateContract(ctx, view, in)
	if err != nil {
		return rt.fail(err, "")
	}
	rt.Notices.Show("contract registered successfully", domain.SeveritySuccess)
	return render(c, rt, contractsView{contracts: []domain.Contract{contract}, now: rt.Now()})
}

func renewContract(c *cli.Context, rt *Runtime, view *service.View) error {
	v := domain.NewValidator()
	price := parseDecimal(v, "price", c.String("price"))
	if err := v.Err(); err != nil {
		return rt.fail(err, "")
	}

	in := domain.RenewInput{
		StartDate: c.String("start"),
		EndDate:   c.String("end"),
		Price:     price,
	}

	ctx, cancel := rt.requestContext(c.Context)
	defer cancel()

	contract, err := rt.API.RenewContract(ctx, view, c.Args().First(), in)
	if err != nil {
		return rt.fail(err, "")
	}
	rt.Notices.Show("contract renewed successfully", domain.SeveritySuccess)
	return render(c, rt, contractsView{contracts: []domain.Contract{contract}, now: rt.Now()})
}
