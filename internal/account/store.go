package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakchai-01/school-pos/internal/db"
)

var (
	// ErrNotFound is returned when the requested account does not exist.
	ErrNotFound = errors.New("account not found")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Store provides account lookup, login verification and admin CRUD.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// hashPassword produces a bcrypt hash for storage.
func hashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(h), nil
}

// CreateStudent inserts a student with the given plaintext password.
func (s *Store) CreateStudent(ctx context.Context, st Student, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO students (student_id, name, password_hash, balance)
		VALUES (?, ?, ?, ?)`,
		st.StudentID, st.Name, hash, st.Balance,
	)
	if err != nil {
		return fmt.Errorf("inserting student: %w", err)
	}
	return nil
}

// GetStudent returns one student by id.
func (s *Store) GetStudent(ctx context.Context, studentID string) (*Student, error) {
	var st Student
	err := s.db.QueryRowContext(ctx, `
		SELECT student_id, name, balance FROM students WHERE student_id = ?`, studentID).
		Scan(&st.StudentID, &st.Name, &st.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying student: %w", err)
	}
	return &st, nil
}

// VerifyStudent checks a student login and returns the account on success.
func (s *Store) VerifyStudent(ctx context.Context, studentID, password string) (*Student, error) {
	var (
		st   Student
		hash string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT student_id, name, password_hash, balance FROM students WHERE student_id = ?`, studentID).
		Scan(&st.StudentID, &st.Name, &hash, &st.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("querying student: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &st, nil
}

// ListStudents returns all students ordered by id.
func (s *Store) ListStudents(ctx context.Context) ([]Student, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT student_id, name, balance FROM students ORDER BY student_id`)
	if err != nil {
		return nil, fmt.Errorf("querying students: %w", err)
	}
	defer rows.Close()

	var out []Student
	for rows.Next() {
		var st Student
		if err := rows.Scan(&st.StudentID, &st.Name, &st.Balance); err != nil {
			return nil, fmt.Errorf("scanning student: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// UpdateStudent overwrites a student's name and balance. A non-empty
// password also rotates the stored hash; an empty one keeps the old hash.
func (s *Store) UpdateStudent(ctx context.Context, studentID, name, password string, balance float64) error {
	if password != "" {
		hash, err := hashPassword(password)
		if err != nil {
			return err
		}
		res, err := s.db.ExecContext(ctx, `
			UPDATE students SET name = ?, password_hash = ?, balance = ? WHERE student_id = ?`,
			name, hash, balance, studentID,
		)
		return checkUpdated(res, err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE students SET name = ?, balance = ? WHERE student_id = ?`,
		name, balance, studentID,
	)
	return checkUpdated(res, err)
}

// DeleteStudent removes a student.
func (s *Store) DeleteStudent(ctx context.Context, studentID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE student_id = ?`, studentID)
	return checkUpdated(res, err)
}

func checkUpdated(res sql.Result, err error) error {
	if err != nil {
		return fmt.Errorf("updating student: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateShop inserts a shop and returns its id.
func (s *Store) CreateShop(ctx context.Context, sh Shop, password string) (int64, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO shops (shop_name, owner_name, password_hash, image_url)
		VALUES (?, ?, ?, ?)`,
		sh.ShopName, sh.OwnerName, hash, sh.ImageURL,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting shop: %w", err)
	}
	return res.LastInsertId()
}

// VerifyShop checks a shop login by shop name.
func (s *Store) VerifyShop(ctx context.Context, shopName, password string) (*Shop, error) {
	var (
		sh   Shop
		hash string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT shop_id, shop_name, owner_name, password_hash, image_url
		FROM shops WHERE shop_name = ?`, shopName).
		Scan(&sh.ShopID, &sh.ShopName, &sh.OwnerName, &hash, &sh.ImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("querying shop: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &sh, nil
}

// ListShops returns the shops ordered by id. Duplicate shop names are
// filtered, first occurrence wins.
func (s *Store) ListShops(ctx context.Context) ([]Shop, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT shop_id, shop_name, owner_name, image_url FROM shops ORDER BY shop_id`)
	if err != nil {
		return nil, fmt.Errorf("querying shops: %w", err)
	}
	defer rows.Close()

	seen := map[string]bool{}
	var out []Shop
	for rows.Next() {
		var sh Shop
		if err := rows.Scan(&sh.ShopID, &sh.ShopName, &sh.OwnerName, &sh.ImageURL); err != nil {
			return nil, fmt.Errorf("scanning shop: %w", err)
		}
		if seen[sh.ShopName] {
			continue
		}
		seen[sh.ShopName] = true
		out = append(out, sh)
	}
	return out, rows.Err()
}

// CreateAdmin inserts an admin account.
func (s *Store) CreateAdmin(ctx context.Context, a Admin, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO admins (username, password_hash, name) VALUES (?, ?, ?)`,
		a.Username, hash, a.Name,
	)
	if err != nil {
		return fmt.Errorf("inserting admin: %w", err)
	}
	return nil
}

// VerifyAdmin checks an admin login.
func (s *Store) VerifyAdmin(ctx context.Context, username, password string) (*Admin, error) {
	var (
		a    Admin
		hash string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT admin_id, username, password_hash, name FROM admins WHERE username = ?`, username).
		Scan(&a.AdminID, &a.Username, &hash, &a.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("querying admin: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &a, nil
}
