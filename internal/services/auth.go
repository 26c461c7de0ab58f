package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/edulearn-backend/internal/data/aggregates"
	"github.com/yungbote/edulearn-backend/internal/data/repos"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/ctxutil"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
	"github.com/yungbote/edulearn-backend/internal/pkg/pointers"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
	"github.com/yungbote/edulearn-backend/internal/platform/password"
)

const minPasswordLen = 8

type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Type           types.UserType
	Specialization *string
}

// Session is returned by a successful login.
type Session struct {
	AccessToken string      `json:"access_token"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        *types.User `json:"user"`
}

type JWTClaims struct {
	UserType string `json:"user_type"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*types.User, error)
	Login(ctx context.Context, email, plainPassword string) (*Session, error)
	// ParseToken validates an access token and returns the caller it names.
	ParseToken(tokenString string) (*ctxutil.RequestData, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	w            writer
	log          *logger.Logger
	userRepo     repos.UserRepo
	hasher       password.Hasher
	jwtSecretKey string
	accessTTL    time.Duration
	issuer       string
}

func NewAuthService(base aggregates.BaseDeps, log *logger.Logger, userRepo repos.UserRepo, hasher password.Hasher, jwtSecretKey string, accessTTL time.Duration) AuthService {
	serviceLog := log.With("service", "AuthService")
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	return &authService{
		w:            newWriter(base, serviceLog),
		log:          serviceLog,
		userRepo:     userRepo,
		hasher:       hasher,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		issuer:       "edulearn",
	}
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*types.User, error) {
	name, err := requireText("name", in.Name)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLen {
		return nil, apperr.InvalidInputf("password must have at least %d characters", minPasswordLen)
	}
	userType, ok := types.ParseUserType(string(in.Type))
	if !ok {
		return nil, apperr.InvalidInputf("unknown user type %q", in.Type)
	}
	spec := optionalText(in.Specialization)
	if userType == types.UserTypeStudent && spec != nil {
		return nil, apperr.InvalidInput("only professors have a specialization")
	}

	hash, err := as.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Persistence("AuthService.Register", err)
	}

	var u *types.User
	if userType == types.UserTypeProfessor {
		u = types.NewProfessor(name, email, hash, pointers.Deref(spec))
	} else {
		u = types.NewStudent(name, email, hash)
	}

	err = as.w.do(ctx, "AuthService.Register", func(dbc dbctx.Context) error {
		exists, err := as.userRepo.EmailExists(dbc, email)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict(fmt.Sprintf("email %s is already registered", email))
		}
		_, err = as.userRepo.Save(dbc, u)
		return err
	}, "type", userType)
	if err != nil {
		return nil, err
	}
	as.log.Info("user registered", "user_id", u.ID, "type", u.Type)
	return u, nil
}

func (as *authService) Login(ctx context.Context, email, plainPassword string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plainPassword == "" {
		return nil, apperr.InvalidInput("email and password are required")
	}
	u, err := as.userRepo.GetByEmail(read(ctx), email)
	if err != nil {
		return nil, mapRead(as.log, "AuthService.Login", err)
	}
	if u == nil || !as.hasher.Verify(plainPassword, u.PasswordHash) {
		as.log.Warn("login rejected")
		return nil, apperr.Unauthorized("invalid email or password")
	}
	token, exp, err := as.generateAccessToken(u)
	if err != nil {
		as.log.Error("sign access token", "user_id", u.ID, "error", err)
		return nil, apperr.Persistence("AuthService.Login", err)
	}
	return &Session{AccessToken: token, ExpiresAt: exp, User: u}, nil
}

func (as *authService) generateAccessToken(u *types.User) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(as.accessTTL)
	claims := JWTClaims{
		UserType: string(u.Type),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			Issuer:    as.issuer,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	return signed, exp, err
}

func (as *authService) ParseToken(tokenString string) (*ctxutil.RequestData, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, apperr.Unauthorized("missing access token")
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(as.issuer))
	if err != nil {
		return nil, apperr.Unauthorized("invalid or expired access token")
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return nil, apperr.Unauthorized("invalid or expired access token")
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, apperr.Unauthorized("invalid user id in access token")
	}
	return &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		UserType:    claims.UserType,
	}, nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
