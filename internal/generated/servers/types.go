// Package servers holds the HTTP contract of the service: the OpenAPI
// document, the wire types and the echo routing glue. It follows the layout
// oapi-codegen produces for the echo server target.
package servers

import (
	"time"
)

// Defines values for OrderStatus.
const (
	ASSIGNING OrderStatus = "ASSIGNING"
	CANCELLED OrderStatus = "CANCELLED"
	COMPLETED OrderStatus = "COMPLETED"
	ONGOING   OrderStatus = "ONGOING"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Fare defines model for Fare.
type Fare struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	DrivingDistancesInMeters []int     `json:"drivingDistancesInMeters"`
	Fare                     Fare      `json:"fare"`
	Id                       string    `json:"id"`
	OrderAt                  time.Time `json:"orderAt"`
	Stops                    []Stop    `json:"stops"`
}

// Order defines model for Order.
type Order struct {
	DrivingDistancesInMeters []int       `json:"drivingDistancesInMeters"`
	Fare                     Fare        `json:"fare"`
	Id                       string      `json:"id"`
	OrderAt                  time.Time   `json:"orderAt"`
	Status                   OrderStatus `json:"status"`
	Stops                    []Stop      `json:"stops"`
}

// OrderStats defines model for OrderStats.
type OrderStats struct {
	ASSIGNING int `json:"ASSIGNING"`
	CANCELLED int `json:"CANCELLED"`
	COMPLETED int `json:"COMPLETED"`
	ONGOING   int `json:"ONGOING"`
	Total     int `json:"total"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// Stop defines model for Stop.
type Stop struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OrderID defines model for OrderID.
type OrderID = string

// PlaceOrderJSONRequestBody defines body for PlaceOrder for application/json ContentType.
type PlaceOrderJSONRequestBody = NewOrder
