package models

// Customer represents a customer in the database
type Customer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	School    string `json:"school,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// CreateCustomerRequest holds the fields written when a customer is created
type CreateCustomerRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
	School string `json:"school,omitempty"`
}
