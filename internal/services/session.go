package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/classkeeper/internal/common"
	"github.com/dmitrijs2005/classkeeper/internal/logging"
	"github.com/dmitrijs2005/classkeeper/internal/repositories/metadata"
	"github.com/google/uuid"
)

// Validator checks a credential pair; AccountService implements it.
type Validator interface {
	ValidateUser(ctx context.Context, email, password string) (bool, error)
}

// SessionService remembers which account is signed in on this device.
type SessionService struct {
	accounts Validator
	meta     metadata.Repository
	log      logging.Logger
}

func NewSessionService(accounts Validator, meta metadata.Repository, log logging.Logger) *SessionService {
	return &SessionService{accounts: accounts, meta: meta, log: log}
}

// SignIn validates the credentials and, on success, records the normalized
// email and a fresh session id.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (bool, error) {
	ok, err := s.accounts.ValidateUser(ctx, email, password)
	if err != nil || !ok {
		return false, err
	}

	email = common.NormalizeEmail(email)
	sid := uuid.NewString()
	err = s.meta.SetMany(ctx, map[string][]byte{
		common.CurrentUserKey: []byte(email),
		common.SessionIDKey:   []byte(sid),
	})
	if err != nil {
		return false, fmt.Errorf("failed to store session: %w", err)
	}
	s.log.Info(ctx, "signed in", "email", email, "session", sid)
	return true, nil
}

func (s *SessionService) SignOut(ctx context.Context) error {
	if err := s.meta.DeleteMany(ctx, common.CurrentUserKey, common.SessionIDKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// CurrentUser returns the signed-in email, or "" when nobody is signed in.
func (s *SessionService) CurrentUser(ctx context.Context) (string, error) {
	v, err := s.meta.Get(ctx, common.CurrentUserKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// SessionID returns the id issued by the last SignIn, or "".
func (s *SessionService) SessionID(ctx context.Context) (string, error) {
	v, err := s.meta.Get(ctx, common.SessionIDKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *SessionService) IsSignedIn(ctx context.Context) (bool, error) {
	email, err := s.CurrentUser(ctx)
	if err != nil {
		return false, err
	}
	return email != "", nil
}
