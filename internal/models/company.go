package models

// Company represents a company row in the database
type Company struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// CompanyCreate is the payload for creating a company; name is required.
type CompanyCreate struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// CompanyUpdate is the payload for PATCH (partial) and PUT (full) updates.
type CompanyUpdate struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}

// CompanyResponse is the company data returned in API responses
type CompanyResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// ToResponse converts a Company to CompanyResponse
func (c *Company) ToResponse() *CompanyResponse {
	return &CompanyResponse{
		ID:      c.ID,
		Name:    c.Name,
		Address: c.Address,
	}
}
