package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
)

// ReportCommand returns the report command group.
func ReportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Printable reports",
		Subcommands: []*cli.Command{
			{
				Name:  "contracts",
				Usage: "Active contracts expiring within 30 days",
				Action: guarded("report contracts", func(c *cli.Context, rt *Runtime, view *service.View) error {
					ctx, cancel := rt.requestContext(c.Context)
					defer cancel()

					contracts, err := rt.API.ExpiringContracts(ctx, view)
					if err != nil {
						return rt.fail(err, "")
					}
					if len(contracts) == 0 {
						rt.Notices.Show("no contracts close to expiring", domain.SeverityInfo)
						return nil
					}
					return render(c, rt, expiringView(contracts))
				}),
			},
			{
				Name:   "properties",
				Usage:  "All registered properties",
				Action: guarded("report properties", listProperties),
			},
			{
				Name:  "payments",
				Usage: "Payments due in a month",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "month", Aliases: []string{"m"}, Usage: "Due month (1-12), default current"},
					&cli.IntFlag{Name: "year", Aliases: []string{"y"}, Usage: "Due year, default current"},
					&cli.BoolFlag{Name: "paid", Usage: "Show paid instead of open payments"},
					&cli.StringFlag{Name: "contract", Usage: "Only payments of this contract"},
				},
				Action: guarded("report payments", paymentsReport),
			},
		},
	}
}

func paymentsReport(c *cli.Context, rt *Runtime, view *service.View) error {
	now := rt.Now()
	q := domain.PaymentsQuery{
		ContractID: c.String("contract"),
		DueMonth:   int(now.Month()),
		DueYear:    now.Year(),
	}
	if c.IsSet("month") {
		q.DueMonth = c.Int("month")
	}
	if c.IsSet("year") {
		q.DueYear = c.Int("year")
	}

	ctx, cancel := rt.requestContext(c.Context)
	defer cancel()

	payments, err := rt.API.PaymentsByPeriod(ctx, view, q, c.Bool("paid"))
	if err != nil {
		return rt.fail(err, "")
	}
	if len(payments) == 0 {
		rt.Notices.Show("no payments found", domain.SeverityInfo)
		return nil
	}
	return render(c, rt, paymentsView{payments: payments, withTotal: true})
}
