package model

import "strings"

// Customer is the contact who requested a portal quote. It never reaches the engine.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

// FirstName returns the first word of the customer's name.
func (c Customer) FirstName() string {
	parts := strings.Fields(c.Name)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
