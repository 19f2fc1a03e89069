package models

// User represents a user row in the database
type User struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	CompanyID      *int64 `json:"company_id,omitempty"`
	HashedPassword string `json:"-"` // Never serialize the password hash
}

// UserCreate is the payload for creating a user. The database generates the
// id; the password travels in clear only inside the request and is hashed
// before it reaches storage.
type UserCreate struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	CompanyID *int64 `json:"company_id,omitempty"`
	Password  string `json:"password"`
}

// UserUpdate is the payload for PATCH (partial) and PUT (full) updates.
// Nil fields are left unchanged on PATCH.
type UserUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	CompanyID *int64  `json:"company_id,omitempty"`
	Password  *string `json:"password,omitempty"`
}

// UserResponse is the user data returned in API responses
type UserResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	CompanyID *int64 `json:"company_id,omitempty"`
}

// ToResponse converts a User to UserResponse
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CompanyID: u.CompanyID,
	}
}
