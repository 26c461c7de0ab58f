package user

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/edulearn-backend/internal/data/repos/crud"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type UserRepo interface {
	Save(dbc dbctx.Context, u *types.User) (*types.User, error)

	GetByID(dbc dbctx.Context, id int64) (*types.User, error)
	GetByIDs(dbc dbctx.Context, ids []int64) ([]*types.User, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.User, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	ListByType(dbc dbctx.Context, userType types.UserType) ([]*types.User, error)

	Update(dbc dbctx.Context, u *types.User) (bool, error)
	UpdatePasswordHash(dbc dbctx.Context, id int64, hash string) (bool, error)
	Delete(dbc dbctx.Context, id int64) (bool, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) Save(dbc dbctx.Context, u *types.User) (*types.User, error) {
	if err := crud.Create(dbc.DB(r.db), "UserRepo.Save", u, func() int64 { return u.ID }); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepo) GetByID(dbc dbctx.Context, id int64) (*types.User, error) {
	return crud.ByID[types.User](dbc.DB(r.db), id)
}

func (r *userRepo) GetByIDs(dbc dbctx.Context, ids []int64) ([]*types.User, error) {
	return crud.ByIDs[types.User](dbc.DB(r.db), ids)
}

// GetByEmail matches case-insensitively; stored emails are lowercased.
func (r *userRepo) GetByEmail(dbc dbctx.Context, email string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	return crud.First[types.User](dbc.DB(r.db).Where("email = ?", email))
}

func (r *userRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	var count int64
	if err := dbc.DB(r.db).
		Model(&types.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) ListByType(dbc dbctx.Context, userType types.UserType) ([]*types.User, error) {
	return crud.Find[types.User](dbc.DB(r.db).Where("type = ?", userType).Order("name ASC, id ASC"))
}

// Update never rewrites the type discriminant or password hash.
func (r *userRepo) Update(dbc dbctx.Context, u *types.User) (bool, error) {
	if u == nil {
		return false, nil
	}
	return crud.UpdateFields[types.User](dbc.DB(r.db), u.ID, map[string]any{
		"name":           u.Name,
		"email":          u.Email,
		"specialization": u.Specialization,
	})
}

func (r *userRepo) UpdatePasswordHash(dbc dbctx.Context, id int64, hash string) (bool, error) {
	return crud.UpdateFields[types.User](dbc.DB(r.db), id, map[string]any{"password_hash": hash})
}

func (r *userRepo) Delete(dbc dbctx.Context, id int64) (bool, error) {
	return crud.Delete[types.User](dbc.DB(r.db), id)
}
