// Package auth is the credential gate: registration and login against the
// users table.
package auth

import (
	"github.com/apex/log"

	"segnalapp/csvstore"
	"segnalapp/models"
)

type Service struct {
	store csvstore.Store
}

func NewService(store csvstore.Store) *Service {
	return &Service{store: store}
}

// Register creates an account and returns its identity. There is no
// uniqueness check on email: registering the same address twice creates two
// distinct accounts. That is the system's current behavior and callers
// depend on the identities staying sequential, so it stays.
func (s *Service) Register(email, password string, role models.Role) (int64, error) {
	if role == "" {
		role = models.RoleCitizen
	}
	var id int64
	err := s.store.Mutate(models.TableUsers, func(t *csvstore.Table) error {
		id = t.NextID("user_id")
		u := models.User{ID: id, Email: email, Password: password, Role: role}
		t.Rows = append(t.Rows, u.Row())
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Infof("Created user %d (%s)", id, role)
	return id, nil
}

// Login matches the stored credentials exactly; the first matching row wins
// when duplicates exist. A miss returns ErrInvalidCredentials so the caller
// can render a failure message.
func (s *Service) Login(email, password string) (*models.User, error) {
	t, err := s.store.Load(models.TableUsers)
	if err != nil {
		return nil, err
	}
	for _, r := range t.Rows {
		if r["email"] == email && r["password"] == password {
			u := models.UserFromRow(r)
			return &u, nil
		}
	}
	return nil, models.ErrInvalidCredentials
}
