package models

// Address is the structured delivery address of a stop.
type Address struct {
	Line1      string `json:"addressLine1"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// Stop represents a single delivery point within a route, associated with one order.
type Stop struct {
	ID               string  `json:"stopId"`           // ID is the stop identifier.
	OrderID          string  `json:"orderId"`          // OrderID is the parent order identifier.
	CustomerName     string  `json:"customerName"`     // CustomerName is the recipient.
	CustomerPhone    string  `json:"customerPhone"`    // CustomerPhone is the recipient phone number.
	DeliveryNotes    string  `json:"deliveryNotes"`    // DeliveryNotes is free-text driver guidance.
	Address          Address `json:"address"`          // Address is where the packages go.
	Packages         int     `json:"packages"`         // Packages is the number of packages for this stop.
	EstimatedArrival string  `json:"estimatedArrival"` // EstimatedArrival is a time of day, HH:MM.
}
