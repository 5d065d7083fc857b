package models

// UserRecord is one registered user.
// It maps to the `users` table in SQLite. Password is stored verbatim.
type UserRecord struct {
	Username string `db:"username" json:"username" validate:"required"`
	Email    string `db:"email" json:"email" validate:"required"`
	Password string `db:"password" json:"-" validate:"required"`
}

// Account is the listing view of a UserRecord. It never carries the password.
type Account struct {
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
}

// Account returns the listing view of r.
func (r UserRecord) Account() Account {
	return Account{Username: r.Username, Email: r.Email}
}
