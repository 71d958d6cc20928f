package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/sakchai-01/school-pos/internal/cart"
	"github.com/sakchai-01/school-pos/internal/config"
	"github.com/sakchai-01/school-pos/internal/notify"
)

var kioskServerURL string

var kioskCmd = &cobra.Command{
	Use:   "kiosk",
	Short: "Run an interactive student ordering terminal",
	Long: `Connects to a running POS server and walks a student through
login, browsing shop menus, building a cart and checking out. The cart
survives terminal restarts through a local mirror file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		serverURL := cfg.ServerURL
		if kioskServerURL != "" {
			serverURL = kioskServerURL
		}

		return runKiosk(cmd.Context(), serverURL)
	},
}

func runKiosk(ctx context.Context, serverURL string) error {
	client := cart.NewClient(serverURL)

	center := notify.New()
	go printNotifications(center.Subscribe())

	storePath, err := cart.DefaultPath()
	if err != nil {
		return fmt.Errorf("resolving cart mirror path: %w", err)
	}
	controller := cart.NewController(client, cart.NewFileStore(storePath), center)

	login, err := kioskLogin(ctx, client)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome, %s! Balance: %.2f\n", login.Name, login.Balance)

	for {
		choice, _, err := (&promptui.Select{
			Label: "What next",
			Items: []string{"Browse shops", "View cart", "Change quantity", "Remove item", "Checkout", "Quit"},
		}).Run()
		if err != nil {
			return err
		}

		switch choice {
		case 0:
			err = kioskBrowse(ctx, client, controller)
		case 1:
			kioskShowCart(controller)
		case 2:
			kioskChangeQuantity(controller)
		case 3:
			kioskRemove(controller)
		case 4:
			err = kioskCheckout(ctx, client, controller)
		case 5:
			return nil
		}
		if err != nil {
			fmt.Printf("  %v\n", err)
		}
	}
}

func kioskLogin(ctx context.Context, client *cart.Client) (*cart.LoginResponse, error) {
	idPrompt := promptui.Prompt{Label: "Student ID"}
	studentID, err := idPrompt.Run()
	if err != nil {
		return nil, err
	}

	passPrompt := promptui.Prompt{Label: "Password", Mask: '*'}
	password, err := passPrompt.Run()
	if err != nil {
		return nil, err
	}

	return client.StudentLogin(ctx, studentID, password)
}

func kioskBrowse(ctx context.Context, client *cart.Client, controller *cart.Controller) error {
	shops, err := client.Shops(ctx)
	if err != nil {
		return err
	}
	if len(shops) == 0 {
		fmt.Println("  No shops are open.")
		return nil
	}

	names := make([]string, len(shops))
	for i, s := range shops {
		names[i] = s.ShopName
	}
	shopIdx, _, err := (&promptui.Select{Label: "Shop", Items: names}).Run()
	if err != nil {
		return err
	}
	shop := shops[shopIdx]

	items, err := client.Menu(ctx, shop.ShopID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("  Nothing on sale right now.")
		return nil
	}

	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = fmt.Sprintf("%s — %.2f", it.Name, it.Price)
	}
	itemIdx, _, err := (&promptui.Select{Label: "Menu item", Items: labels}).Run()
	if err != nil {
		return err
	}
	picked := items[itemIdx]

	qtyStr, err := (&promptui.Prompt{
		Label:   "Quantity",
		Default: "1",
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return fmt.Errorf("enter a positive number")
			}
			return nil
		},
	}).Run()
	if err != nil {
		return err
	}
	qty, _ := strconv.Atoi(qtyStr)

	ctl := cart.NewControl("Add to cart")
	err = controller.AddItem(ctx, ctl, cart.Item{
		ItemID:   strconv.FormatInt(picked.ItemID, 10),
		Name:     picked.Name,
		Price:    picked.Price,
		Quantity: qty,
		ShopID:   strconv.FormatInt(shop.ShopID, 10),
	})
	if err != nil {
		return err
	}
	fmt.Printf("  Cart now holds %d item(s).\n", controller.CartCount())
	return nil
}

func kioskShowCart(controller *cart.Controller) {
	display := controller.Display()
	if len(display.Lines) == 0 {
		fmt.Println("  Your cart is empty.")
		return
	}
	for _, line := range display.Lines {
		fmt.Printf("  %dx %-24s %8.2f\n", line.Quantity, line.Name, line.Subtotal)
	}
	fmt.Printf("  %-27s %8.2f\n", "Total", display.Total)
}

func kioskChangeQuantity(controller *cart.Controller) {
	items := controller.Items()
	if len(items) == 0 {
		fmt.Println("  Your cart is empty.")
		return
	}

	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = fmt.Sprintf("%dx %s", it.Quantity, it.Name)
	}
	idx, _, err := (&promptui.Select{Label: "Which item", Items: labels}).Run()
	if err != nil {
		return
	}

	qtyStr, err := (&promptui.Prompt{
		Label:   "New quantity (0 removes)",
		Default: strconv.Itoa(items[idx].Quantity),
		Validate: func(s string) error {
			if _, err := strconv.Atoi(s); err != nil {
				return fmt.Errorf("enter a number")
			}
			return nil
		},
	}).Run()
	if err != nil {
		return
	}
	qty, _ := strconv.Atoi(qtyStr)
	controller.UpdateQuantity(items[idx].ItemID, qty)
}

func kioskRemove(controller *cart.Controller) {
	items := controller.Items()
	if len(items) == 0 {
		fmt.Println("  Your cart is empty.")
		return
	}

	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = fmt.Sprintf("%dx %s", it.Quantity, it.Name)
	}
	idx, _, err := (&promptui.Select{Label: "Remove which item", Items: labels}).Run()
	if err != nil {
		return
	}
	controller.Remove(items[idx].ItemID)
}

func kioskCheckout(ctx context.Context, client *cart.Client, controller *cart.Controller) error {
	resp, err := client.Checkout(ctx)
	if err != nil {
		return err
	}
	controller.Clear()
	fmt.Printf("  Order placed! %d order(s), new balance %.2f\n", len(resp.OrderIDs), resp.NewBalance)
	return nil
}

func printNotifications(events <-chan notify.Event) {
	for ev := range events {
		if ev.Type == notify.EventShown {
			fmt.Printf("  [%s] %s\n", ev.Notification.Severity, ev.Notification.Message)
		}
	}
}

func init() {
	kioskCmd.Flags().StringVar(&kioskServerURL, "server", "", "POS server URL (overrides config)")
	rootCmd.AddCommand(kioskCmd)
}
