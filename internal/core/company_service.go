package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CompanyService manages the companies an actor can switch between.
type CompanyService interface {
	// List returns all companies ordered by name.
	List(ctx context.Context) ([]Company, error)

	// GetByID returns one company or an error wrapping ErrNotFound.
	GetByID(ctx context.Context, id int) (*Company, error)

	Create(ctx context.Context, in CompanyInput) (*Company, error)
	Update(ctx context.Context, id int, in CompanyInput) (*Company, error)
}

// Validate normalises in and rejects missing required fields.
func (in *CompanyInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.BaseCurrency = strings.ToUpper(strings.TrimSpace(in.BaseCurrency))
	if in.Name == "" {
		return fmt.Errorf("company name is required")
	}
	if in.BaseCurrency == "" {
		in.BaseCurrency = "USD"
	}
	if len(in.BaseCurrency) != 3 {
		return fmt.Errorf("base currency must be a 3-letter ISO code, got %q", in.BaseCurrency)
	}
	return nil
}

type companyService struct {
	pool *pgxpool.Pool
}

// NewCompanyService constructs a CompanyService backed by PostgreSQL.
func NewCompanyService(pool *pgxpool.Pool) CompanyService {
	return &companyService{pool: pool}
}

const companyColumns = `id, name, email, phone, address, base_currency, created_at`

func scanCompany(row pgx.Row) (*Company, error) {
	c := &Company{}
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.BaseCurrency, &c.CreatedAt)
	return c, err
}

func (s *companyService) List(ctx context.Context) ([]Company, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *companyService) GetByID(ctx context.Context, id int) (*Company, error) {
	c, err := scanCompany(s.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("company id=%d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("company id=%d: %w", id, err)
	}
	return c, nil
}

func (s *companyService) Create(ctx context.Context, in CompanyInput) (*Company, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c, err := scanCompany(s.pool.QueryRow(ctx, `
		INSERT INTO companies (name, email, phone, address, base_currency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+companyColumns,
		in.Name, in.Email, in.Phone, in.Address, in.BaseCurrency))
	if err != nil {
		return nil, fmt.Errorf("create company %q: %w", in.Name, err)
	}
	return c, nil
}

func (s *companyService) Update(ctx context.Context, id int, in CompanyInput) (*Company, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c, err := scanCompany(s.pool.QueryRow(ctx, `
		UPDATE companies
		SET name = $2, email = $3, phone = $4, address = $5, base_currency = $6
		WHERE id = $1
		RETURNING `+companyColumns,
		id, in.Name, in.Email, in.Phone, in.Address, in.BaseCurrency))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("company id=%d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("update company id=%d: %w", id, err)
	}
	return c, nil
}
