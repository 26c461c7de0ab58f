package services

import (
	"context"
	"fmt"

	"github.com/yungbote/edulearn-backend/internal/data/aggregates"
	"github.com/yungbote/edulearn-backend/internal/data/repos"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
	"github.com/yungbote/edulearn-backend/internal/platform/password"
)

type UpdateProfileInput struct {
	Name           string
	Specialization *string
}

type UserService interface {
	GetByID(ctx context.Context, id int64) (*types.User, error)
	GetProfessor(ctx context.Context, id int64) (*types.User, error)
	ListProfessors(ctx context.Context) ([]*types.User, error)

	UpdateProfile(ctx context.Context, actingUserID, id int64, in UpdateProfileInput) (*types.User, error)
	ChangePassword(ctx context.Context, actingUserID int64, current, next string) error
	Delete(ctx context.Context, actingUserID, id int64) error
}

type userService struct {
	w          writer
	log        *logger.Logger
	userRepo   repos.UserRepo
	hasher     password.Hasher
	dependents Dependents
}

func NewUserService(base aggregates.BaseDeps, log *logger.Logger, userRepo repos.UserRepo, hasher password.Hasher, dependents Dependents) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		w:          newWriter(base, serviceLog),
		log:        serviceLog,
		userRepo:   userRepo,
		hasher:     hasher,
		dependents: dependents,
	}
}

func (us *userService) GetByID(ctx context.Context, id int64) (*types.User, error) {
	u, err := requireUser(read(ctx), us.userRepo, id, "")
	if err != nil {
		return nil, mapRead(us.log, "UserService.GetByID", err, "user_id", id)
	}
	return u, nil
}

func (us *userService) GetProfessor(ctx context.Context, id int64) (*types.User, error) {
	u, err := requireUser(read(ctx), us.userRepo, id, types.UserTypeProfessor)
	if err != nil {
		return nil, mapRead(us.log, "UserService.GetProfessor", err, "user_id", id)
	}
	return u, nil
}

func (us *userService) ListProfessors(ctx context.Context) ([]*types.User, error) {
	out, err := us.userRepo.ListByType(read(ctx), types.UserTypeProfessor)
	if err != nil {
		return nil, mapRead(us.log, "UserService.ListProfessors", err)
	}
	return out, nil
}

func requireSelf(actingUserID, id int64) error {
	if actingUserID <= 0 || actingUserID != id {
		return apperr.Unauthorized(fmt.Sprintf("user %d may only change their own account", actingUserID))
	}
	return nil
}

func (us *userService) UpdateProfile(ctx context.Context, actingUserID, id int64, in UpdateProfileInput) (*types.User, error) {
	if err := requireSelf(actingUserID, id); err != nil {
		logOutcome(us.log, "UserService.UpdateProfile", err, "user_id", id)
		return nil, err
	}
	name, err := requireText("name", in.Name)
	if err != nil {
		return nil, err
	}
	spec := optionalText(in.Specialization)

	var out *types.User
	err = us.w.do(ctx, "UserService.UpdateProfile", func(dbc dbctx.Context) error {
		u, err := requireUser(dbc, us.userRepo, id, "")
		if err != nil {
			return err
		}
		if u.IsStudent() && spec != nil {
			return apperr.InvalidInput("only professors have a specialization")
		}
		u.Name = name
		if u.IsProfessor() {
			u.Specialization = spec
		}
		ok, err := us.userRepo.Update(dbc, u)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence("UserService.UpdateProfile", nil)
		}
		out = u
		return nil
	}, "user_id", id)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (us *userService) ChangePassword(ctx context.Context, actingUserID int64, current, next string) error {
	if len(next) < minPasswordLen {
		return apperr.InvalidInputf("password must have at least %d characters", minPasswordLen)
	}
	hash, err := us.hasher.Hash(next)
	if err != nil {
		return apperr.Persistence("UserService.ChangePassword", err)
	}
	return us.w.do(ctx, "UserService.ChangePassword", func(dbc dbctx.Context) error {
		u, err := requireUser(dbc, us.userRepo, actingUserID, "")
		if err != nil {
			return err
		}
		if !us.hasher.Verify(current, u.PasswordHash) {
			return apperr.Unauthorized("current password does not match")
		}
		ok, err := us.userRepo.UpdatePasswordHash(dbc, u.ID, hash)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence("UserService.ChangePassword", nil)
		}
		return nil
	}, "user_id", actingUserID)
}

func (us *userService) Delete(ctx context.Context, actingUserID, id int64) error {
	if err := requireSelf(actingUserID, id); err != nil {
		logOutcome(us.log, "UserService.Delete", err, "user_id", id)
		return err
	}
	return us.w.do(ctx, "UserService.Delete", func(dbc dbctx.Context) error {
		u, err := requireUser(dbc, us.userRepo, id, "")
		if err != nil {
			return err
		}
		if err := us.dependents.ofUser(dbc, u); err != nil {
			return err
		}
		ok, err := us.userRepo.Delete(dbc, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("user", id)
		}
		return nil
	}, "user_id", id)
}
