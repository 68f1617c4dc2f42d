package order

import "time"

type Order struct {
	ID            string    `json:"id"`
	TableNumber   *int      `json:"tableNumber,omitempty"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone *string   `json:"customerPhone,omitempty"`
	ServedBy      *string   `json:"servedBy,omitempty"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	TotalAmount   string    `json:"totalAmount"`
	PaidAmount    string    `json:"paidAmount"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Items         []Item    `json:"items,omitempty"`
}

type Item struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"orderId"`
	Name       string    `json:"name"`
	Qty        int       `json:"qty"`
	PaidQty    int       `json:"paidQty"`
	UnitAmount string    `json:"unitAmount"`
	LineTotal  string    `json:"lineTotal"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CreateInput struct {
	TableNumber   *int           `json:"tableNumber"`
	CustomerName  string         `json:"customerName"`
	CustomerPhone *string        `json:"customerPhone"`
	ServedBy      *string        `json:"servedBy"`
	Notes         *string        `json:"notes"`
	Items         []CreateItemIn `json:"items"`
}

type CreateItemIn struct {
	Name       string `json:"name"`
	Qty        int    `json:"qty"`
	UnitAmount string `json:"unitAmount"` // "12,50" or "12.50"
}

type ListQuery struct {
	Limit  int
	Offset int
	Status *string
}

type UpdateStatusInput struct {
	Status string `json:"status"`
}
