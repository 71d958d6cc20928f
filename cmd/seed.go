package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sakchai-01/school-pos/internal/account"
	"github.com/sakchai-01/school-pos/internal/config"
	"github.com/sakchai-01/school-pos/internal/db"
	"github.com/sakchai-01/school-pos/internal/menu"
	"github.com/sakchai-01/school-pos/internal/progress"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo accounts, shops and menus into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		database, err := db.Open(filepath.Join(cfg.DataDir, "pos.db"))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		if err := seedDemoData(cmd.Context(), database); err != nil {
			return err
		}

		fmt.Fprintln(os.Stderr, "Demo data loaded. Student 01514 / password123, shop login: ร้านข้าวแม่สมปอง / shop123.")
		return nil
	},
}

type demoShop struct {
	shop     account.Shop
	password string
	items    []menu.Item
}

// demoShops mirrors the canteen the system was first rolled out in.
var demoShops = []demoShop{
	{
		shop:     account.Shop{ShopName: "ร้านข้าวแม่สมปอง", OwnerName: "แม่สมปอง", ImageURL: "/static/images/rice_shop.jpg"},
		password: "shop123",
		items: []menu.Item{
			{Name: "ข้าวผัดหมู", Price: 45, Cost: 25, ImageURL: "/static/images/fried_rice.jpg", Category: "ข้าว"},
			{Name: "ข้าวราดแกง", Price: 40, Cost: 20, ImageURL: "/static/images/curry_rice.jpg", Category: "ข้าว"},
			{Name: "ข้าวมันไก่", Price: 50, Cost: 30, ImageURL: "/static/images/chicken_rice.jpg", Category: "ข้าว"},
		},
	},
	{
		shop:     account.Shop{ShopName: "ร้านก๋วยเตี๋ยวลุงสมชาย", OwnerName: "ลุงสมชาย", ImageURL: "/static/images/noodle_shop.jpg"},
		password: "shop456",
		items: []menu.Item{
			{Name: "ก๋วยเตี๋ยวหมูน้ำใส", Price: 35, Cost: 18, ImageURL: "/static/images/clear_soup.jpg", Category: "ก๋วยเตี๋ยว"},
			{Name: "ก๋วยเตี๋ยวต้มยำ", Price: 40, Cost: 20, ImageURL: "/static/images/tomyum_noodle.jpg", Category: "ก๋วยเตี๋ยว"},
			{Name: "บะหมี่แห้ง", Price: 38, Cost: 19, ImageURL: "/static/images/dry_noodle.jpg", Category: "ก๋วยเตี๋ยว"},
		},
	},
	{
		shop:     account.Shop{ShopName: "ร้านน้ำผลไม้ป้าแก้ว", OwnerName: "ป้าแก้ว", ImageURL: "/static/images/drink_shop.jpg"},
		password: "shop789",
		items: []menu.Item{
			{Name: "น้ำส้มคั้น", Price: 25, Cost: 10, ImageURL: "/static/images/orange_juice.jpg", Category: "เครื่องดื่ม"},
			{Name: "น้ำแตงโม", Price: 20, Cost: 8, ImageURL: "/static/images/watermelon_juice.jpg", Category: "เครื่องดื่ม"},
			{Name: "ชาเย็น", Price: 15, Cost: 5, ImageURL: "/static/images/iced_tea.jpg", Category: "เครื่องดื่ม"},
		},
	},
	{
		shop:     account.Shop{ShopName: "ร้านขนมอรุณี", OwnerName: "อรุณี", ImageURL: "/static/images/snack_shop.jpg"},
		password: "shop000",
		items: []menu.Item{
			{Name: "ขนมปังปิ้ง", Price: 25, Cost: 12, ImageURL: "/static/images/toast.jpg", Category: "ขนม"},
			{Name: "โรตี", Price: 30, Cost: 15, ImageURL: "/static/images/roti.jpg", Category: "ขนม"},
			{Name: "ลูกชิ้นทอด", Price: 20, Cost: 10, ImageURL: "/static/images/fried_meatball.jpg", Category: "ขนม"},
		},
	},
}

var demoStudents = []struct {
	student  account.Student
	password string
}{
	{account.Student{StudentID: "01514", Name: "สมชาย ใจดี", Balance: 500}, "password123"},
	{account.Student{StudentID: "12346", Name: "สมหญิง สวยงาม", Balance: 300}, "password456"},
}

func seedDemoData(ctx context.Context, database *db.DB) error {
	accounts := account.NewStore(database)
	menus := menu.NewStore(database)

	total := len(demoStudents) + 1
	for _, ds := range demoShops {
		total += 1 + len(ds.items)
	}

	reporter := progress.NewReporter("Seeding demo data")
	reporter.Start(total)
	defer reporter.Finish()
	step := 0

	for _, d := range demoStudents {
		if err := accounts.CreateStudent(ctx, d.student, d.password); err != nil {
			return fmt.Errorf("seeding student %s: %w", d.student.StudentID, err)
		}
		step++
		reporter.Update(step, "student "+d.student.StudentID)
	}

	if err := accounts.CreateAdmin(ctx, account.Admin{Username: "teacher1", Name: "ครูสมศรี"}, "pass1234"); err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}
	step++
	reporter.Update(step, "admin teacher1")

	for _, d := range demoShops {
		shopID, err := accounts.CreateShop(ctx, d.shop, d.password)
		if err != nil {
			return fmt.Errorf("seeding shop %s: %w", d.shop.ShopName, err)
		}
		step++
		reporter.Update(step, d.shop.ShopName)

		for _, it := range d.items {
			it.ShopID = shopID
			if _, err := menus.Create(ctx, it); err != nil {
				return fmt.Errorf("seeding menu item %s: %w", it.Name, err)
			}
			step++
			reporter.Update(step, it.Name)
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
