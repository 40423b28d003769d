package usecases

import (
	"context"
	"fmt"

	"github.com/seatshare-inc/seatshare/internal/application/purchase/dto"
	"github.com/seatshare-inc/seatshare/internal/domain/grant"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

type ListUserGrantsQuery struct {
	UserID uint
}

// ListUserGrantsUseCase returns a user's purchase history, newest first.
// Inactive grants stay in the list: they are records, not sessions.
type ListUserGrantsUseCase struct {
	grantRepo grant.Repository
	logger    logger.Interface
}

func NewListUserGrantsUseCase(
	grantRepo grant.Repository,
	logger logger.Interface,
) *ListUserGrantsUseCase {
	return &ListUserGrantsUseCase{
		grantRepo: grantRepo,
		logger:    logger,
	}
}

func (uc *ListUserGrantsUseCase) Execute(
	ctx context.Context,
	query ListUserGrantsQuery,
) ([]*dto.GrantDTO, error) {
	grants, err := uc.grantRepo.ListByUserID(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to list user grants", "user_id", query.UserID, "error", err)
		return nil, fmt.Errorf("failed to list user grants: %w", err)
	}

	return dto.ToGrantDTOs(grants), nil
}
