package biz

import (
	"context"
	"errors"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	v1 "github.com/yunmaoQu/train-booking/api/booking/v1"
)

type AuthConfig struct {
	Secret     []byte
	Issuer     string
	TokenTTL   time.Duration
	BcryptCost int
}

// Session is a signed token for a verified user.
type Session struct {
	UserID   string
	Token    string
	ExpireAt time.Time
}

// AuthUsecase turns credentials into verified user ids. Nothing past it
// sees a raw password.
type AuthUsecase struct {
	cfg    AuthConfig
	state  *State
	mirror *Mirror
	now    func() time.Time
	log    *log.Helper
}

func NewAuthUsecase(cfg AuthConfig, state *State, mirror *Mirror, logger log.Logger) *AuthUsecase {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &AuthUsecase{
		cfg:    cfg,
		state:  state,
		mirror: mirror,
		now:    time.Now,
		log:    log.NewHelper(log.With(logger, "module", "biz/auth")),
	}
}

// Registration is a successful sign-up.
type Registration struct {
	User     User
	Degraded *kerrors.Error
}

func (r *Registration) Durable() bool { return r.Degraded == nil }

// SignUp registers name and opens an empty ticket account for it.
func (uc *AuthUsecase) SignUp(ctx context.Context, name, password string) (*Registration, error) {
	if name == "" || password == "" {
		return nil, v1.ErrorInvalidArgument("name and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cfg.BcryptCost)
	if err != nil {
		return nil, v1.ErrorInvalidArgument("password rejected").WithCause(err)
	}
	u := User{ID: uuid.NewString(), Name: name, PasswordHash: string(hash)}
	// The account exists before the user is visible, so a login racing the
	// signup can book at once.
	uc.state.Tickets.Open(u.ID)
	if err := uc.state.Users.Add(u); err != nil {
		return nil, v1.ErrorUserAlreadyExists("user %q already exists", name)
	}
	uc.log.Infof("user %s signed up as %s", name, u.ID)

	reg := &Registration{User: u}
	if err := uc.mirror.Flush(ctx); err != nil {
		reg.Degraded = v1.ErrorPersistenceDegraded("user %s is registered but not yet durable", u.ID).WithCause(err)
	}
	return reg, nil
}

func (uc *AuthUsecase) Login(ctx context.Context, name, password string) (*Session, error) {
	u, ok := uc.state.Users.ByName(name)
	if !ok {
		return nil, v1.ErrorInvalidCredentials("invalid name or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, v1.ErrorInvalidCredentials("invalid name or password")
	}

	now := uc.now()
	exp := now.Add(uc.cfg.TokenTTL)
	claims := jwtv5.RegisteredClaims{
		Subject:   u.ID,
		Issuer:    uc.cfg.Issuer,
		IssuedAt:  jwtv5.NewNumericDate(now),
		ExpiresAt: jwtv5.NewNumericDate(exp),
	}
	token, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(uc.cfg.Secret)
	if err != nil {
		return nil, err
	}
	return &Session{UserID: u.ID, Token: token, ExpireAt: exp}, nil
}

// KeyFunc resolves the HMAC key for incoming tokens.
func (uc *AuthUsecase) KeyFunc(token *jwtv5.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwtv5.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return uc.cfg.Secret, nil
}

// UserFromClaims maps verified token claims to a registered user id.
func (uc *AuthUsecase) UserFromClaims(claims jwtv5.Claims) (string, error) {
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", v1.ErrorInvalidCredentials("token has no subject")
	}
	if _, ok := uc.state.Users.Get(sub); !ok {
		return "", v1.ErrorUserNotFound("user %s not found", sub)
	}
	return sub, nil
}
