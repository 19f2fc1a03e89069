package services

import (
	"database/sql"
	"fmt"

	"github.com/orgdir/orgdir/internal/models"
	"github.com/orgdir/orgdir/internal/query"
	"github.com/orgdir/orgdir/internal/search"
	apperrors "github.com/orgdir/orgdir/pkg/errors"
)

// UserService handles user CRUD and search operations
type UserService struct {
	db       *sql.DB
	registry *query.Registry
}

// NewUserService creates a new UserService
func NewUserService(db *sql.DB, registry *query.Registry) *UserService {
	return &UserService{db: db, registry: registry}
}

const userColumns = "id, first_name, last_name, email, company_id, hashed_password"

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var user models.User
	var companyID sql.NullInt64
	if err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&companyID, &user.HashedPassword); err != nil {
		return nil, err
	}
	if companyID.Valid {
		user.CompanyID = &companyID.Int64
	}
	return &user, nil
}

// CreateUser hashes the password and inserts a new user. The referenced
// company must exist, and the email must be unused.
func (s *UserService) CreateUser(u models.UserCreate) (*models.User, error) {
	if u.CompanyID != nil {
		exists, err := s.companyExists(*u.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("failed to check company: %w", err)
		}
		if !exists {
			return nil, apperrors.NotFound(fmt.Sprintf("Company not found: %d", *u.CompanyID))
		}
	}

	hashed, err := HashPassword(u.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var id int64
	err = s.db.QueryRow(
		"INSERT INTO users (first_name, last_name, email, company_id, hashed_password) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		u.FirstName, u.LastName, u.Email, u.CompanyID, hashed,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict(fmt.Sprintf("a user with email %s already exists", u.Email))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.GetUserByID(id)
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(id int64) (*models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = $1", id)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound(fmt.Sprintf("User not found: %d", id))
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUsers returns users ordered by id, offset/limit paginated.
func (s *UserService) ListUsers(offset, limit int) ([]*models.User, error) {
	rows, err := s.db.Query(
		"SELECT "+userColumns+" FROM users ORDER BY id OFFSET $1 LIMIT $2",
		offset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateUser applies an update to an existing user without changing its id.
// With partial set (PATCH), nil fields are left unchanged; otherwise (PUT)
// they overwrite. A nil password always leaves the hash untouched.
func (s *UserService) UpdateUser(id int64, upd models.UserUpdate, partial bool) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	} else if !partial {
		user.FirstName = ""
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	} else if !partial {
		user.LastName = ""
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.CompanyID != nil {
		exists, err := s.companyExists(*upd.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("failed to check company: %w", err)
		}
		if !exists {
			return nil, apperrors.NotFound(fmt.Sprintf("Company not found: %d", *upd.CompanyID))
		}
		user.CompanyID = upd.CompanyID
	} else if !partial {
		user.CompanyID = nil
	}
	if upd.Password != nil {
		hashed, err := HashPassword(*upd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
	}

	_, err = s.db.Exec(
		"UPDATE users SET first_name = $1, last_name = $2, email = $3, company_id = $4, hashed_password = $5 WHERE id = $6",
		user.FirstName, user.LastName, user.Email, user.CompanyID, user.HashedPassword, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict(fmt.Sprintf("a user with email %s already exists", user.Email))
		}
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}

	return s.GetUserByID(id)
}

// DeleteUser removes a user by ID
func (s *UserService) DeleteUser(id int64) error {
	res, err := s.db.Exec("DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	if affected == 0 {
		return apperrors.NotFound(fmt.Sprintf("User not found: %d", id))
	}
	return nil
}

// SearchUsers compiles a validated search tree into a WHERE condition and
// executes it. The tree must target the User entity.
func (s *UserService) SearchUsers(tree search.Node) ([]*models.User, error) {
	if err := requireEntity(tree, "User"); err != nil {
		return nil, err
	}

	cond, err := search.Render(tree, s.registry)
	if err != nil {
		return nil, err
	}

	q, err := query.Select("id", "first_name", "last_name", "email", "company_id", "hashed_password").
		From("users").
		Where(cond).
		OrderBy("id").
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	rows, err := s.db.Query(q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *UserService) companyExists(id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// requireEntity rejects a tree aimed at a different entity than the endpoint
// it was posted to. A tree with no entity leaves (an empty combinator) is
// entity-agnostic and allowed; it renders a constant condition.
func requireEntity(tree search.Node, want string) error {
	got, err := search.EntityForTree(tree)
	if err != nil {
		return nil
	}
	if got != want {
		return apperrors.BadRequest(fmt.Sprintf("search tree targets %s, endpoint searches %s", got, want))
	}
	return nil
}
