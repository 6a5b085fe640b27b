package database

import (
	"database/sql"

	"github.com/akhyar02/scholar-draft-sub000/app/models"
)

const optionColumns = `id, kind, parent_id, label, sort_order, is_active, created_at, updated_at`

func scanOptionItem(row interface{ Scan(...interface{}) error }) (*models.OptionItem, error) {
	item := &models.OptionItem{}
	err := row.Scan(&item.ID, &item.Kind, &item.ParentID, &item.Label,
		&item.SortOrder, &item.IsActive, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetActiveOptionItems loads the whole active reference-data set in one
// query; the tree is assembled in memory by the options service.
func GetActiveOptionItems(db *sql.DB) ([]*models.OptionItem, error) {
	return queryOptionItems(db, `SELECT `+optionColumns+`
		FROM application_option_items
		WHERE is_active = true
		ORDER BY kind, sort_order, label`)
}

func GetAllOptionItems(db *sql.DB) ([]*models.OptionItem, error) {
	return queryOptionItems(db, `SELECT `+optionColumns+`
		FROM application_option_items
		ORDER BY kind, sort_order, label`)
}

func queryOptionItems(db *sql.DB, query string, args ...interface{}) ([]*models.OptionItem, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.OptionItem
	for rows.Next() {
		item, err := scanOptionItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func GetOptionItemByID(db *sql.DB, id string) (*models.OptionItem, error) {
	return scanOptionItem(db.QueryRow(`SELECT `+optionColumns+`
		FROM application_option_items WHERE id = $1`, id))
}

func CreateOptionItem(db *sql.DB, item *models.OptionItem) error {
	query := `INSERT INTO application_option_items (kind, parent_id, label, sort_order, is_active)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, item.Kind, item.ParentID, item.Label,
		item.SortOrder, item.IsActive).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func UpdateOptionItem(db *sql.DB, item *models.OptionItem) error {
	result, err := db.Exec(`
		UPDATE application_option_items
		SET label = $2, sort_order = $3, is_active = $4, updated_at = NOW()
		WHERE id = $1`,
		item.ID, item.Label, item.SortOrder, item.IsActive)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// CountOptionChildren reports how many items reference id as parent,
// used to block deactivating a node that still has active children.
func CountOptionChildren(db *sql.DB, id string) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM application_option_items
		WHERE parent_id = $1 AND is_active = true`, id).Scan(&count)
	return count, err
}
