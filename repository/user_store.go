package repository

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"userRegistry/internal/config"
	"userRegistry/internal/db"
	"userRegistry/models"
)

const defaultOpTimeout = 3 * time.Second

// UserStore keeps user records in the SQLite `users` table.
type UserStore struct {
	db        *sql.DB
	log       *zap.Logger
	validate  *validator.Validate
	opTimeout time.Duration
}

// Option configures a UserStore.
type Option func(*UserStore)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *UserStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithOpTimeout bounds every single operation. Zero or negative disables the bound.
func WithOpTimeout(d time.Duration) Option {
	return func(s *UserStore) { s.opTimeout = d }
}

// NewUserStore wraps an already opened database handle.
func NewUserStore(d *sql.DB, opts ...Option) *UserStore {
	s := &UserStore{
		db:        d,
		log:       zap.NewNop(),
		validate:  newRecordValidator(),
		opTimeout: defaultOpTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenUserStore opens the database described by cfg and wraps it.
// The schema is not created until Initialize is called.
func OpenUserStore(cfg config.DatabaseConfig, opts ...Option) (*UserStore, error) {
	d, err := db.Open(cfg)
	if err != nil {
		return nil, unavailable("open", err)
	}
	if cfg.OpTimeout > 0 {
		opts = append([]Option{WithOpTimeout(cfg.OpTimeout)}, opts...)
	}
	return NewUserStore(d, opts...), nil
}

// Close releases the database handle.
func (s *UserStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Initialize creates the users table if it does not exist. Existing rows are untouched.
func (s *UserStore) Initialize(ctx context.Context) error {
	if s.db == nil {
		return unavailable("initialize", errors.New("nil db"))
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := db.Migrate(ctx, s.db); err != nil {
		s.log.Warn("initialize failed", zap.Error(err))
		return unavailable("initialize", err)
	}
	return nil
}

// Insert stores a new record. Empty fields and taken usernames are rejected
// without touching storage state; only storage failures are returned as errors.
func (s *UserStore) Insert(ctx context.Context, username, email, password string) (InsertResult, error) {
	rec := models.UserRecord{Username: username, Email: email, Password: password}
	if reason, ok := s.checkRecord(rec); !ok {
		s.log.Debug("insert rejected", zap.String("username", username), zap.String("reason", string(reason)))
		return Rejected(reason), nil
	}
	if s.db == nil {
		return InsertResult{}, unavailable("insert user", errors.New("nil db"))
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `INSERT INTO users (username, email, password) VALUES (?, ?, ?)`,
		rec.Username, rec.Email, rec.Password)
	if err != nil {
		if isUsernameTaken(err) {
			s.log.Debug("insert rejected", zap.String("username", username), zap.String("reason", string(RejectDuplicateUsername)))
			return Rejected(RejectDuplicateUsername), nil
		}
		s.log.Warn("insert failed", zap.String("username", username), zap.Error(err))
		return InsertResult{}, unavailable("insert user", err)
	}
	s.log.Info("user registered", zap.String("username", username))
	return Accepted(), nil
}

// Authenticate reports whether a record with exactly this username and password exists.
// An unknown username and a wrong password both yield false.
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (bool, error) {
	if s.db == nil {
		return false, unavailable("authenticate", errors.New("nil db"))
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username = ? AND password = ?`, username, password).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, unavailable("authenticate", err)
	}
	return true, nil
}

// Exists reports whether username is registered.
func (s *UserStore) Exists(ctx context.Context, username string) (bool, error) {
	if s.db == nil {
		return false, unavailable("lookup user", errors.New("nil db"))
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username = ?`, username).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, unavailable("lookup user", err)
	}
	return true, nil
}

// List returns every account in insertion order. The result is empty, not nil,
// when no users are registered.
func (s *UserStore) List(ctx context.Context) ([]models.Account, error) {
	if s.db == nil {
		return nil, unavailable("list users", errors.New("nil db"))
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT username, email FROM users ORDER BY rowid`)
	if err != nil {
		return nil, unavailable("list users", err)
	}
	defer rows.Close()
	out := make([]models.Account, 0)
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.Username, &a.Email); err != nil {
			return nil, unavailable("list users", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list users", err)
	}
	return out, nil
}

// Clear deletes every record and returns how many were removed.
func (s *UserStore) Clear(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, unavailable("clear users", errors.New("nil db"))
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM users`)
	if err != nil {
		return 0, unavailable("clear users", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, unavailable("clear users", err)
	}
	s.log.Info("users cleared", zap.Int64("count", n))
	return n, nil
}

func (s *UserStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

var emptyFieldReasons = map[string]RejectReason{
	"username": RejectEmptyUsername,
	"email":    RejectEmptyEmail,
	"password": RejectEmptyPassword,
}

// checkRecord returns the reason for the first empty field, in column order.
func (s *UserStore) checkRecord(rec models.UserRecord) (RejectReason, bool) {
	err := s.validate.Struct(rec)
	if err == nil {
		return "", true
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		if reason, ok := emptyFieldReasons[fieldErrs[0].Field()]; ok {
			return reason, false
		}
	}
	return RejectEmptyUsername, false
}

// newRecordValidator reports fields by their column names.
func newRecordValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("db"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
