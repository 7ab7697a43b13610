package link

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/advisorkit/scheduler/internal/audit"
	domain "github.com/advisorkit/scheduler/internal/domain/scheduling"
	"github.com/advisorkit/scheduler/internal/httperr"
)

type DeleteLink struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteLink(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteLink {
	return &DeleteLink{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteLink) Execute(
	ctx context.Context,
	advisorID uint,
	linkID uint,
) error {

	if err := uc.repo.DeleteLink(ctx, advisorID, linkID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness(httperr.CodeLinkNotFound)
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		AdvisorID: advisorID,
		Action:    "link_deleted",
		Entity:    "scheduling_link",
		EntityID:  &linkID,
	})

	return nil
}
