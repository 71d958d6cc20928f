package account

// Student is a canteen customer with a prepaid balance.
type Student struct {
	StudentID string  `json:"student_id"`
	Name      string  `json:"name"`
	Balance   float64 `json:"balance"`
}

// Shop is one canteen stall.
type Shop struct {
	ShopID    int64  `json:"shop_id"`
	ShopName  string `json:"shop_name"`
	OwnerName string `json:"owner_name"`
	ImageURL  string `json:"image_url"`
}

// Admin is a staff account with access to the admin portal.
type Admin struct {
	AdminID  int64  `json:"admin_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}
