package database

import (
	"database/sql"
	"time"

	"github.com/akhyar02/scholar-draft-sub000/app/models"
)

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND is_active = true AND deleted_at IS NULL`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND is_active = true AND deleted_at IS NULL`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserRoles(db *sql.DB, userID string) ([]*models.Role, error) {
	query := `
		SELECT r.id, r.name
		FROM roles r
		JOIN user_roles ur ON r.id = ur.role_id
		WHERE ur.user_id = $1
	`
	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}
	return roles, nil
}

// CreateUserWithRole inserts a user, assigns the named role and, for
// students, seeds an empty profile row. One transaction.
func CreateUserWithRole(db *sql.DB, user *models.User, roleName string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO users (email, password, first_name, last_name, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		user.Email, user.Password, user.FirstName, user.LastName, user.Phone,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = $2`,
		user.ID, roleName)
	if err != nil {
		return err
	}

	if roleName == "student" {
		_, err = tx.Exec(`
			INSERT INTO student_profiles (user_id, full_name)
			VALUES ($1, $2)`,
			user.ID, user.FirstName+" "+user.LastName)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func UpdateUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}

func GetStudentProfile(db *sql.DB, userID string) (*models.StudentProfile, error) {
	profile := &models.StudentProfile{}
	query := `SELECT user_id, full_name, student_id_no, mobile_number, nationality,
			  campus_id, faculty_id, course_id, created_at, updated_at
			  FROM student_profiles WHERE user_id = $1`

	err := db.QueryRow(query, userID).Scan(
		&profile.UserID, &profile.FullName, &profile.StudentIDNo,
		&profile.MobileNumber, &profile.Nationality,
		&profile.CampusID, &profile.FacultyID, &profile.CourseID,
		&profile.CreatedAt, &profile.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateStudentProfileTx refreshes the denormalized profile columns from
// a submitted form. Runs inside the submit transaction.
func UpdateStudentProfileTx(tx *sql.Tx, userID, fullName, studentIDNo, mobileNumber, nationality string, campusID, facultyID, courseID *string) error {
	_, err := tx.Exec(`
		UPDATE student_profiles
		SET full_name = $2, student_id_no = $3, mobile_number = $4,
			nationality = $5, campus_id = $6, faculty_id = $7, course_id = $8,
			updated_at = NOW()
		WHERE user_id = $1`,
		userID, fullName, studentIDNo, mobileNumber, nationality,
		campusID, facultyID, courseID)
	return err
}

func InsertEmailLog(db *sql.DB, entry *models.EmailLog) error {
	query := `INSERT INTO email_logs (application_id, recipient, subject, status, error_message, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := db.Exec(query, entry.ApplicationID, entry.Recipient, entry.Subject,
		entry.Status, entry.ErrorMessage, time.Now())
	return err
}
