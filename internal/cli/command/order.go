package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
)

// MsgOrderInvalid heads the field listing when order lines fail validation.
const MsgOrderInvalid = "order validation failed, check quantities and prices"

// OrderCommand returns the purchase-suggestion order command group.
func OrderCommand() *cli.Command {
	return &cli.Command{
		Name:    "order",
		Aliases: []string{"orders"},
		Usage:   "Purchase-suggestion orders",
		Subcommands: []*cli.Command{
			{
				Name:  "suppliers",
				Usage: "List suppliers",
				Action: guarded("order suppliers", func(c *cli.Context, rt *Runtime, view *service.View) error {
					ctx, cancel := rt.requestContext(c.Context)
					defer cancel()

					suppliers, err := rt.API.ListSuppliers(ctx, view)
					if err != nil {
						return rt.fail(err, "")
					}
					return render(c, rt, suppliersView(suppliers))
				}),
			},
			{
				Name:      "products",
				Usage:     "Show a supplier's curve products with suggested amounts",
				ArgsUsage: "SUPPLIER",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "out-of-line", Usage: "Include out-of-line products"},
				},
				Action: guarded("order products", supplierProducts),
			},
			{
				Name:  "create",
				Usage: "Submit an order for approval",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "item",
						Aliases: []string{"i"},
						Usage:   "Order line product:amount:price[:budget-percentage], repeatable",
					},
				},
				Action: guarded("order create", createOrder),
			},
			{
				Name:  "pending",
				Usage: "List your orders awaiting approval",
				Action: guarded("order pending", func(c *cli.Context, rt *Runtime, view *service.View) error {
					user, _ := rt.Sessions.CurrentUser()

					ctx, cancel := rt.requestContext(c.Context)
					defer cancel()

					orders, err := rt.API.PendingOrders(ctx, view, user.Email)
					if err != nil {
						return rt.fail(err, "")
					}
					if len(orders) == 0 {
						rt.Notices.Show("no pending orders", domain.SeverityInfo)
						return nil
					}
					return render(c, rt, pendingOrdersView(orders))
				}),
			},
		},
	}
}

func supplierProducts(c *cli.Context, rt *Runtime, view *service.View) error {
	ctx, cancel := rt.requestContext(c.Context)
	defer cancel()

	rows, err := rt.API.SupplierProducts(ctx, view, c.Args().First(), c.Bool("out-of-line"))
	if err != nil {
		return rt.fail(err, "")
	}
	if len(rows) == 0 {
		rt.Notices.Show("no products found", domain.SeverityError)
		return nil
	}
	return render(c, rt, orderRowsView(rows))
}

func createOrder(c *cli.Context, rt *Runtime, view *service.View) error {
	specs := c.StringSlice("item")
	items := make([]domain.OrderItem, 0, len(specs))
	for _, s := range specs {
		item, err := domain.ParseOrderItem(s)
		if err != nil {
			return rt.fail(err, MsgOrderInvalid)
		}
		items = append(items, item)
	}

	ctx, cancel := rt.requestContext(c.Context)
	defer cancel()

	order, err := rt.API.CreateOrder(ctx, view, items)
	if err != nil {
		return rt.fail(err, MsgOrderInvalid)
	}
	if len(order.Items) == 0 {
		order.Items = items
	}
	rt.Notices.Show("order submitted for approval", domain.SeveritySuccess)
	return render(c, rt, newOrderView(order))
}
