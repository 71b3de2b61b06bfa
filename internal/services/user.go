package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/schoolmeal-backend/internal/data/repos"
	types "github.com/yungbote/schoolmeal-backend/internal/domain"
	"github.com/yungbote/schoolmeal-backend/internal/platform/apierr"
	"github.com/yungbote/schoolmeal-backend/internal/platform/authz"
	"github.com/yungbote/schoolmeal-backend/internal/platform/dbctx"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

type UserService interface {
	GetMe(dbc dbctx.Context) (*types.User, error)
	UpdateProfile(dbc dbctx.Context, firstName, lastName, school string) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
	}
}

func (us *userService) GetMe(dbc dbctx.Context) (*types.User, error) {
	actor, err := authz.ActorFrom(dbc.Ctx)
	if err != nil {
		return nil, err
	}
	return us.load(dbc, actor.ID)
}

func (us *userService) UpdateProfile(dbc dbctx.Context, firstName, lastName, school string) (*types.User, error) {
	actor, err := authz.ActorFrom(dbc.Ctx)
	if err != nil {
		return nil, err
	}
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, apierr.Validation("first and last name are required")
	}
	if err := us.userRepo.UpdateProfile(dbc, actor.ID, firstName, lastName, strings.TrimSpace(school)); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return us.load(dbc, actor.ID)
}

func (us *userService) load(dbc dbctx.Context, id uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		us.log.Warn("authenticated user not found", "user_id", id)
		return nil, apierr.NotFound("user")
	}
	return users[0], nil
}
