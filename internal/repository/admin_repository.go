package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/samadhan-cg/samadhan-api/internal/models"
)

// AdminRepository provides database access for administrative accounts.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository creates a new instance of AdminRepository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

const adminColumns = `id, name, email, phone, username, password_hash, role, created_at, updated_at`

// FindByEmail returns an admin by email address. sql.ErrNoRows passes
// through untouched.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admins WHERE email = $1 LIMIT 1`, adminColumns)
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, email); err != nil {
		return nil, err
	}
	return &admin, nil
}

// First returns the oldest account, used as the profile-page fallback.
func (r *AdminRepository) First(ctx context.Context) (*models.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admins ORDER BY id ASC LIMIT 1`, adminColumns)
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query); err != nil {
		return nil, err
	}
	return &admin, nil
}

// Create inserts a new account and fills in its id.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	const query = `INSERT INTO admins (name, email, phone, username, password_hash, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
RETURNING id`
	if err := r.db.GetContext(ctx, &admin.ID, query,
		admin.Name, admin.Email, admin.Phone, admin.Username, admin.PasswordHash, admin.Role,
	); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

// EmailTaken reports whether another account already uses the email.
func (r *AdminRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	const query = `SELECT COUNT(*) FROM admins WHERE email = $1 AND id != $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, email, excludeID); err != nil {
		return false, fmt.Errorf("check email taken: %w", err)
	}
	return count > 0, nil
}

// UsernameTaken reports whether another account already uses the username.
func (r *AdminRepository) UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	const query = `SELECT COUNT(*) FROM admins WHERE username = $1 AND id != $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, username, excludeID); err != nil {
		return false, fmt.Errorf("check username taken: %w", err)
	}
	return count > 0, nil
}

// UpdateProfile updates profile fields, touching the password hash only when
// one is supplied. It reports the number of affected rows.
func (r *AdminRepository) UpdateProfile(ctx context.Context, id int64, name, email, phone, username, passwordHash string) (int64, error) {
	var result sql.Result
	var err error
	if passwordHash != "" {
		const query = `UPDATE admins SET name = $2, email = $3, phone = $4, username = $5, password_hash = $6, updated_at = NOW() WHERE id = $1`
		result, err = r.db.ExecContext(ctx, query, id, name, email, phone, username, passwordHash)
	} else {
		const query = `UPDATE admins SET name = $2, email = $3, phone = $4, username = $5, updated_at = NOW() WHERE id = $1`
		result, err = r.db.ExecContext(ctx, query, id, name, email, phone, username)
	}
	if err != nil {
		return 0, fmt.Errorf("update admin profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update admin profile rows: %w", err)
	}
	return affected, nil
}

// CreateAuditLog records an administrative action.
func (r *AdminRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_logs (id, actor, action, resource, resource_id, ip_address, created_at)
VALUES (:id, :actor, :action, :resource, :resource_id, :ip_address, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
