package service

import (
	"context"

	"go.uber.org/zap"

	"meal-tracker/internal/domain"
	"meal-tracker/internal/repository"
)

type OnboardingService struct {
	logger *zap.Logger
	store  repository.OnboardingStore
}

func NewOnboardingService(logger *zap.Logger, store repository.OnboardingStore) *OnboardingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OnboardingService{logger: logger, store: store}
}

// Complete escribe perfil y preferencia juntos; si alguno ya existe devuelve ErrConflict.
func (s *OnboardingService) Complete(ctx context.Context, ownerID string, req domain.OnboardingRequest) (domain.Onboarding, error) {
	out, err := s.store.Onboard(ctx, ownerID, req.ProfileFields(), req.PreferenceFields())
	if err != nil {
		return domain.Onboarding{}, err
	}
	s.logger.Info("onboarding completed", zap.String("owner_id", ownerID))
	return out, nil
}
