package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Astemirdum/library-management/library/internal/model"
	"github.com/Astemirdum/library-management/library/internal/policy"
)

func (s *Service) GetUser(ctx context.Context, caller *model.Caller, id uuid.UUID) (model.User, error) {
	if err := policy.Authorize(caller, policy.ActionRead, policy.ResourceUser, id); err != nil {
		return model.User{}, err
	}
	return s.repo.GetUser(ctx, id)
}
