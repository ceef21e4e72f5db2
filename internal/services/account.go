package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/classkeeper/internal/common"
	"github.com/dmitrijs2005/classkeeper/internal/cryptox"
	"github.com/dmitrijs2005/classkeeper/internal/logging"
	"github.com/dmitrijs2005/classkeeper/internal/models"
	"github.com/dmitrijs2005/classkeeper/internal/repositories/users"
)

// hashPassword is swapped in tests to simulate hasher failures.
var hashPassword = cryptox.HashPassword

// AccountService creates accounts and checks credentials.
type AccountService struct {
	users users.Repository
	log   logging.Logger
}

func NewAccountService(users users.Repository, log logging.Logger) *AccountService {
	return &AccountService{users: users, log: log}
}

// CreateUser registers email with a hashed password. It returns false when
// the normalized email is already taken, and common.ErrorValidation when
// email or password is blank.
func (s *AccountService) CreateUser(ctx context.Context, email, password string) (bool, error) {
	email = common.NormalizeEmail(email)
	if email == "" || password == "" {
		return false, common.ErrorValidation
	}

	exists, err := s.users.Exists(ctx, email)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	hash, err := hashPassword(password)
	if err != nil {
		return false, fmt.Errorf("%w: failed to hash password: %w", common.ErrorInternal, err)
	}
	_, err = s.users.Save(ctx, &models.UserAccount{Email: email, PasswordHash: &hash})
	if errors.Is(err, common.ErrorAlreadyExists) {
		// registered concurrently between Exists and Save
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.log.Info(ctx, "user created", "email", email)
	return true, nil
}

// ValidateUser reports whether password matches the stored credential. A
// credential stored as plain text is compared directly and, when it matches,
// replaced by a hashed one.
func (s *AccountService) ValidateUser(ctx context.Context, email, password string) (bool, error) {
	email = common.NormalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	stored := u.Credential()
	if stored == "" {
		return false, nil
	}
	if cryptox.IsHashedCredential(stored) {
		return cryptox.VerifyPassword(password, stored), nil
	}

	if !cryptox.EqualLegacy(stored, password) {
		return false, nil
	}
	s.upgrade(ctx, u, password)
	return true, nil
}

// upgrade replaces a plain-text credential. Failure is logged and left for
// the next successful sign-in to retry.
func (s *AccountService) upgrade(ctx context.Context, u *models.UserAccount, password string) {
	hash, err := hashPassword(password)
	if err != nil {
		s.log.Warn(ctx, "credential upgrade skipped", "email", u.Email, "err", err)
		return
	}
	u.PasswordHash = &hash
	if _, err := s.users.Save(ctx, u); err != nil {
		s.log.Warn(ctx, "credential upgrade failed", "email", u.Email, "err", err)
		return
	}
	s.log.Info(ctx, "legacy credential upgraded", "email", u.Email)
}
