package services

import (
	"database/sql"
	"fmt"

	"github.com/orgdir/orgdir/internal/models"
	"github.com/orgdir/orgdir/internal/query"
	"github.com/orgdir/orgdir/internal/search"
	apperrors "github.com/orgdir/orgdir/pkg/errors"
)

// CompanyService handles company CRUD and search operations
type CompanyService struct {
	db       *sql.DB
	registry *query.Registry
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(db *sql.DB, registry *query.Registry) *CompanyService {
	return &CompanyService{db: db, registry: registry}
}

const companyColumns = "id, name, address"

func scanCompany(row interface{ Scan(...any) error }) (*models.Company, error) {
	var company models.Company
	if err := row.Scan(&company.ID, &company.Name, &company.Address); err != nil {
		return nil, err
	}
	return &company, nil
}

// CreateCompany inserts a new company; the name must be set and unused.
func (s *CompanyService) CreateCompany(c models.CompanyCreate) (*models.Company, error) {
	if c.Name == "" {
		return nil, apperrors.BadRequest("name is required")
	}

	var id int64
	err := s.db.QueryRow(
		"INSERT INTO companies (name, address) VALUES ($1, $2) RETURNING id",
		c.Name, c.Address,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict(fmt.Sprintf("a company with name %s already exists", c.Name))
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	return s.GetCompanyByID(id)
}

// GetCompanyByID retrieves a company by ID
func (s *CompanyService) GetCompanyByID(id int64) (*models.Company, error) {
	row := s.db.QueryRow("SELECT "+companyColumns+" FROM companies WHERE id = $1", id)
	company, err := scanCompany(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound(fmt.Sprintf("Company not found: %d", id))
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// ListCompanies returns companies ordered by id, offset/limit paginated.
func (s *CompanyService) ListCompanies(offset, limit int) ([]*models.Company, error) {
	rows, err := s.db.Query(
		"SELECT "+companyColumns+" FROM companies ORDER BY id OFFSET $1 LIMIT $2",
		offset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

// UpdateCompany applies an update to an existing company without changing its
// id. With partial set (PATCH), nil fields are left unchanged.
func (s *CompanyService) UpdateCompany(id int64, upd models.CompanyUpdate, partial bool) (*models.Company, error) {
	company, err := s.GetCompanyByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		company.Name = *upd.Name
	}
	if upd.Address != nil {
		company.Address = *upd.Address
	} else if !partial {
		company.Address = ""
	}

	_, err = s.db.Exec(
		"UPDATE companies SET name = $1, address = $2 WHERE id = $3",
		company.Name, company.Address, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict(fmt.Sprintf("a company with name %s already exists", company.Name))
		}
		return nil, fmt.Errorf("failed to update company %d: %w", id, err)
	}

	return s.GetCompanyByID(id)
}

// DeleteCompany removes a company by ID. A company still referenced by users
// cannot be deleted.
func (s *CompanyService) DeleteCompany(id int64) error {
	res, err := s.db.Exec("DELETE FROM companies WHERE id = $1", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.Conflict(fmt.Sprintf("company %d still has users", id))
		}
		return fmt.Errorf("failed to delete company %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete company %d: %w", id, err)
	}
	if affected == 0 {
		return apperrors.NotFound(fmt.Sprintf("Company not found: %d", id))
	}
	return nil
}

// SearchCompanies compiles a validated search tree into a WHERE condition and
// executes it. The tree must target the Company entity.
func (s *CompanyService) SearchCompanies(tree search.Node) ([]*models.Company, error) {
	if err := requireEntity(tree, "Company"); err != nil {
		return nil, err
	}

	cond, err := search.Render(tree, s.registry)
	if err != nil {
		return nil, err
	}

	q, err := query.Select("id", "name", "address").
		From("companies").
		Where(cond).
		OrderBy("id").
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	rows, err := s.db.Query(q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search companies: %w", err)
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}
