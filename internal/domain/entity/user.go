package entity

// User is a registered Foodgram account.
// PasswordHash holds the bcrypt hash and is never serialized.
type User struct {
	ID           int64
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	Avatar       string
}

// Validate checks profile fields against the account rules.
func (u *User) Validate() error {
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if err := ValidateUsername(u.Username); err != nil {
		return err
	}
	if err := validateName("first_name", u.FirstName); err != nil {
		return err
	}
	return validateName("last_name", u.LastName)
}

func validateName(field, v string) error {
	if v == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	if runeLen(v) > MaxNameLength {
		return &ValidationError{Field: field, Message: "is too long"}
	}
	return nil
}

// Follow records that UserID subscribes to AuthorID.
type Follow struct {
	UserID   int64
	AuthorID int64
}
