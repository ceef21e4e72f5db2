package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/classkeeper/internal/common"
	"github.com/dmitrijs2005/classkeeper/internal/cryptox"
	"github.com/dmitrijs2005/classkeeper/internal/repositories/metadata"
)

// AppLockService stores a hashed PIN that guards opening the application.
type AppLockService struct {
	meta metadata.Repository
}

func NewAppLockService(meta metadata.Repository) *AppLockService {
	return &AppLockService{meta: meta}
}

func (s *AppLockService) SetPIN(ctx context.Context, pin string) error {
	if pin == "" {
		return common.ErrorValidation
	}
	if err := s.meta.Set(ctx, common.AppLockPinKey, []byte(cryptox.HashPIN([]byte(pin)))); err != nil {
		return fmt.Errorf("failed to store pin: %w", err)
	}
	return nil
}

// ValidatePIN is false when no PIN has been set.
func (s *AppLockService) ValidatePIN(ctx context.Context, pin string) (bool, error) {
	saved, err := s.meta.Get(ctx, common.AppLockPinKey)
	if err != nil {
		return false, err
	}
	if len(saved) == 0 {
		return false, nil
	}
	return cryptox.VerifyPIN([]byte(pin), string(saved)), nil
}

func (s *AppLockService) IsSet(ctx context.Context) (bool, error) {
	saved, err := s.meta.Get(ctx, common.AppLockPinKey)
	if err != nil {
		return false, err
	}
	return len(saved) > 0, nil
}

// Clear removes the PIN.
func (s *AppLockService) Clear(ctx context.Context) error {
	return s.meta.Delete(ctx, common.AppLockPinKey)
}
