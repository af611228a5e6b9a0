package users

// Account is a user as the remote API keeps it: the public profile plus credentials.
type Account struct {
	Profile
	PasswordHash string `json:"-"` // never serialize
}

type AccountRepo interface {
	Upsert(account *Account) error
	Delete(email string) error
	GetByEmail(email string) (*Account, error)
	GetByID(ID string) (*Account, error)
	List(role Role) ([]*Account, error)
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	return &Account{Profile: *a.Profile.Clone(), PasswordHash: a.PasswordHash}
}
