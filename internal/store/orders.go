package store

import (
	"fmt"
	"math/rand"
)

// OrderItem is one line of a historical order.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"`
}

// Order is one entry of the customer's order history.
type Order struct {
	ID     string      `json:"id"`
	Date   string      `json:"date"`
	Total  int         `json:"total"`
	Status string      `json:"status"`
	Items  []OrderItem `json:"items"`
}

// TimelineEvent is one stage of an order's fulfilment timeline.
type TimelineEvent struct {
	Status    string `json:"status"`
	Time      string `json:"time"`
	Completed bool   `json:"completed"`
}

// OrderStatus is the tracking view for one order id.
type OrderStatus struct {
	ID       string          `json:"id"`
	Status   string          `json:"status"`
	Timeline []TimelineEvent `json:"timeline"`
}

// Receipt acknowledges a placed order.
type Receipt struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

var orderHistory = []Order{
	{
		ID: "ORD-9283", Date: "2024-03-15", Total: 1299, Status: "DELIVERED",
		Items: []OrderItem{
			{Name: "Neon Cyber-Deck", Quantity: 1, Price: 299},
			{Name: "Quantum Processor", Quantity: 1, Price: 899},
		},
	},
	{
		ID: "ORD-1120", Date: "2024-04-02", Total: 450, Status: "SHIPPED",
		Items: []OrderItem{
			{Name: "Gravity Boots", Quantity: 1, Price: 450},
		},
	},
	{
		ID: "ORD-3391", Date: "2024-04-10", Total: 150, Status: "PROCESSING",
		Items: []OrderItem{
			{Name: "Holo-Visor", Quantity: 1, Price: 150},
		},
	},
}

// OrderHistory returns the customer's fixed order list.
func OrderHistory() []Order {
	out := make([]Order, len(orderHistory))
	copy(out, orderHistory)
	return out
}

// StatusFor fabricates the tracking timeline for any order id. There is no
// not-found case; every id resolves to the same shipped-stage story.
func StatusFor(orderID string) OrderStatus {
	return OrderStatus{
		ID:     orderID,
		Status: "SHIPPED",
		Timeline: []TimelineEvent{
			{Status: "PLACED", Time: "10:00 AM", Completed: true},
			{Status: "PROCESSING", Time: "10:05 AM", Completed: true},
			{Status: "SHIPPED", Time: "02:30 PM", Completed: true},
			{Status: "DELIVERED", Time: "Estim. Tomorrow", Completed: false},
		},
	}
}

// PlaceOrder acknowledges an order with a fresh synthetic id.
func PlaceOrder() Receipt {
	return Receipt{
		Success: true,
		OrderID: fmt.Sprintf("ORD-%d", rand.Intn(10000)),
		Message: "Order placed successfully (Mock)",
	}
}
