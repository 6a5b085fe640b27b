package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/akhyar02/scholar-draft-sub000/app/models"
)

const scholarshipColumns = `id, title, description, provider_name, amount, deadline,
	is_published, created_at, updated_at, deleted_at`

func scanScholarship(row interface{ Scan(...interface{}) error }) (*models.Scholarship, error) {
	s := &models.Scholarship{}
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.ProviderName, &s.Amount,
		&s.Deadline, &s.IsPublished, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ScholarshipFilters represents listing options for scholarships.
type ScholarshipFilters struct {
	Search        string
	PublishedOnly bool
	OpenOnly      bool
	Limit         int
	Offset        int
}

func GetScholarships(db *sql.DB, filters ScholarshipFilters) ([]*models.Scholarship, error) {
	baseQuery := `SELECT ` + scholarshipColumns + ` FROM scholarships WHERE deleted_at IS NULL`

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filters.PublishedOnly {
		conditions = append(conditions, "is_published = true")
	}
	if filters.OpenOnly {
		conditions = append(conditions, "deadline > NOW()")
	}
	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR provider_name ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filters.Search+"%")
		argIndex++
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY deadline ASC"

	if filters.Limit > 0 {
		baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := db.Query(baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scholarships []*models.Scholarship
	for rows.Next() {
		s, err := scanScholarship(rows)
		if err != nil {
			return nil, err
		}
		scholarships = append(scholarships, s)
	}
	return scholarships, rows.Err()
}

func GetScholarshipByID(db *sql.DB, id string) (*models.Scholarship, error) {
	query := `SELECT ` + scholarshipColumns + ` FROM scholarships WHERE id = $1 AND deleted_at IS NULL`
	return scanScholarship(db.QueryRow(query, id))
}

func CreateScholarship(db *sql.DB, s *models.Scholarship) error {
	query := `INSERT INTO scholarships (title, description, provider_name, amount, deadline, is_published)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, s.Title, s.Description, s.ProviderName, s.Amount,
		s.Deadline, s.IsPublished).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func UpdateScholarship(db *sql.DB, s *models.Scholarship) error {
	query := `UPDATE scholarships
			  SET title = $2, description = $3, provider_name = $4, amount = $5,
				  deadline = $6, is_published = $7, updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL`
	result, err := db.Exec(query, s.ID, s.Title, s.Description, s.ProviderName,
		s.Amount, s.Deadline, s.IsPublished)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func SetScholarshipPublished(db *sql.DB, id string, published bool) error {
	result, err := db.Exec(`UPDATE scholarships SET is_published = $2, updated_at = NOW()
							WHERE id = $1 AND deleted_at IS NULL`, id, published)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func SoftDeleteScholarship(db *sql.DB, id string) error {
	result, err := db.Exec(`UPDATE scholarships SET deleted_at = NOW(), is_published = false
							WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// CloseExpiredScholarships unpublishes every scholarship past its
// deadline and returns how many were closed. Used by the nightly sweep.
func CloseExpiredScholarships(db *sql.DB) (int64, error) {
	result, err := db.Exec(`UPDATE scholarships SET is_published = false, updated_at = NOW()
							WHERE is_published = true AND deadline <= NOW() AND deleted_at IS NULL`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func requireRowAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
