package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/leasedesk-go/internal/cli/api"
	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
)

// PaymentCommand returns the payment command group.
func PaymentCommand() *cli.Command {
	return &cli.Command{
		Name:    "payment",
		Aliases: []string{"payments"},
		Usage:   "Recurring contract payments",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List payments",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "contract", Usage: "Only payments of this contract"},
				},
				Action: guarded("payment list", listPayments),
			},
			{
				Name:  "create",
				Usage: "Add a payment to a contract",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "contract", Usage: "Contract ID (UUID)"},
					&cli.StringFlag{Name: "description", Usage: "Description"},
					&cli.StringFlag{Name: "due", Usage: "Due date (YYYY-MM-DD)"},
					&cli.StringFlag{Name: "fees", Usage: "Additional fees", Value: "0"},
					&cli.StringFlag{Name: "discount", Usage: "Discount", Value: "0"},
					&cli.StringFlag{Name: "paid-on", Usage: "Payment date, when already paid"},
					&cli.StringFlag{Name: "value", Usage: "Value, when not the contract price"},
				},
				Action: guarded("payment create", createPayment),
			},
			{
				Name:      "pay",
				Usage:     "Mark a payment as paid",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Usage: "Payment date (YYYY-MM-DD), default today"},
				},
				Action: guarded("payment pay", payPayment),
			},
		},
	}
}

func listPayments(c *cli.Context, rt *Runtime, view *service.View) error {
	ctx, cancel := rt.requestContext(c.Context)
	defer cancel()

	payments, err := rt.API.ListPayments(ctx, view, c.String("contract"))
	if err != nil {
		return rt.fail(err, "")
	}
	if len(payments) == 0 {
		rt.Notices.Show("no payments found", domain.SeverityInfo)
		return nil
	}
	return render(c, rt, paymentsView{payments: payments})
}

func createPayment(c *cli.Context, rt *Runtime, view *service.View) error {
	v := domain.NewValidator()
	in := domain.PaymentInput{
		ContractID:     c.String("contract"),
		Description:    c.String("description"),
		DueDate:        c.String("due"),
		AdditionalFees: parseDecimal(v, "additional_fees", c.String("fees")),
		Discount:       parseDecimal(v, "discount", c.String("discount")),
		PaymentDate:    c.String("paid-on"),
	}
	if c.IsSet("value") {
		value := parseDecimal(v, "value", c.String("value"))
		in.Value = &value
	}
	if err := v.Err(); err != nil {
		return rt.fail(err, "")
	}

	ctx, cancel := rt.requestContext(c.Context)
	defer cancel()

	payment, err := rt.API.CreatePayment(ctx, view, in)
	if err != nil {
		return rt.fail(err, "")
	}
	rt.Notices.Show("payment registered successfully", domain.SeveritySuccess)
	return render(c, rt, paymentsView{payments: []domain.Payment{payment}})
}

func payPayment(c *cli.Context, rt *Runtime, view *service.View) error {
	date := c.String("date")
	if date == "" {
		date = rt.Now().Format(domain.DateLayout)
	}

	ctx, cancel := rt.requestContext(c.Context)
	defer cancel()

	if err := rt.API.PayPayment(ctx, view, c.Args().First(), domain.PayInput{PaymentDate: date}); err != nil {
		return rt.fail(err, api.MsgPayDate)
	}
	rt.Notices.Show("payment registered as paid", domain.SeveritySuccess)
	return nil
}
