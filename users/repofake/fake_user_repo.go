package fakeuserrepo

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/users"
)

var _ users.AccountRepo = (*FakeAccountRepo)(nil)

type FakeAccountRepo struct {
	accounts map[string]*users.Account
	emailIds map[string]string // email to account id
	lock     sync.RWMutex
}

func NewFakeAccountRepo() *FakeAccountRepo {
	return &FakeAccountRepo{
		accounts: make(map[string]*users.Account),
		emailIds: make(map[string]string),
	}
}

func (ur *FakeAccountRepo) Upsert(account *users.Account) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if id, ok := ur.emailIds[normaliseEmail(account.Email)]; ok && id != account.ID {
		return errors.Wrapf(errors.ErrEmailTaken, "[FakeAccountRepo Upsert] %s", account.Email)
	}
	if old, ok := ur.accounts[account.ID]; ok && normaliseEmail(old.Email) != normaliseEmail(account.Email) {
		delete(ur.emailIds, normaliseEmail(old.Email))
	}
	ur.accounts[account.ID] = account.Clone()
	ur.emailIds[normaliseEmail(account.Email)] = account.ID
	return nil
}

func (ur *FakeAccountRepo) Delete(email string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	accountID, ok := ur.emailIds[normaliseEmail(email)]
	if !ok {
		return errors.ErrNotFound
	}
	delete(ur.emailIds, normaliseEmail(email))
	delete(ur.accounts, accountID)
	return nil
}

func (ur *FakeAccountRepo) GetByEmail(email string) (*users.Account, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[normaliseEmail(email)]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return ur.accounts[id].Clone(), nil
}

func (ur *FakeAccountRepo) GetByID(id string) (*users.Account, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	account, ok := ur.accounts[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return account.Clone(), nil
}

// List returns accounts with the given role, or all accounts for RoleNone, ordered by id.
func (ur *FakeAccountRepo) List(role users.Role) ([]*users.Account, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	list := make([]*users.Account, 0, len(ur.accounts))
	for _, v := range ur.accounts {
		if role != users.RoleNone && v.Role != role {
			continue
		}
		list = append(list, v.Clone())
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
