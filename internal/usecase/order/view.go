package order

import "time"

// View is the full order snapshot the console renders: header, lines
// with outstanding quantities and the payments already taken.
type View struct {
	ID            string     `json:"id"`
	TableNumber   *int       `json:"tableNumber,omitempty"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone *string    `json:"customerPhone,omitempty"`
	ServedBy      *string    `json:"servedBy,omitempty"`
	ServedByName  *string    `json:"servedByName,omitempty"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"paymentStatus"`
	TotalAmount   string     `json:"totalAmount"`
	PaidAmount    string     `json:"paidAmount"`
	BalanceDue    string     `json:"balanceDue"`
	Notes         *string    `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Items         []ViewItem `json:"items"`
	Payments      []ViewPay  `json:"payments"`
}

type ViewItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Qty         int    `json:"qty"`
	PaidQty     int    `json:"paidQty"`
	Outstanding int    `json:"outstanding"`
	UnitAmount  string `json:"unitAmount"`
	LineTotal   string `json:"lineTotal"`
}

type ViewPay struct {
	ID        string    `json:"id"`
	Method    string    `json:"method"`
	Amount    string    `json:"amount"`
	Discount  string    `json:"discount"`
	Surcharge string    `json:"surcharge"`
	PaidAt    time.Time `json:"paidAt"`
	TakenBy   *string   `json:"takenBy,omitempty"`
}

// BoardEntry is one card on the kitchen display.
type BoardEntry struct {
	ID           string      `json:"id"`
	TableNumber  *int        `json:"tableNumber,omitempty"`
	CustomerName string      `json:"customerName"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	Items        []BoardItem `json:"items"`
}

type BoardItem struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}
