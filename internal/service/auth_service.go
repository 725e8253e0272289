package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"notemark-be/internal/dto"
	"notemark-be/internal/entity"
	"notemark-be/internal/pkg/serverutils"
	"notemark-be/internal/repository/memory"
	"notemark-be/internal/repository/specification"
	"notemark-be/internal/repository/unitofwork"
	"notemark-be/pkg/events"
	pktNats "notemark-be/pkg/nats"
	"notemark-be/pkg/ratelimit"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Signup walks a fixed sequence: request a code, verify it, set a
// password. Each step's guard lives in its own method, so a caller can
// never reach set-password without the verified session issued by
// VerifyCode.
type IAuthService interface {
	RequestCode(ctx context.Context, req *dto.RequestCodeRequest) error
	VerifyCode(ctx context.Context, req *dto.VerifyCodeRequest) (*dto.VerifyCodeResponse, error)
	SetPassword(ctx context.Context, userId uuid.UUID, req *dto.SetPasswordRequest) error
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error)
}

const (
	codeExpiry        = 5 * time.Minute
	accessTokenExpiry = 24 * time.Hour
)

type authService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	resendThrottle   *memory.ResendThrottle
	codeLimiter      *ratelimit.RedisLimiter
	eventPublisher   *pktNats.Publisher
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	resendThrottle *memory.ResendThrottle,
	codeLimiter *ratelimit.RedisLimiter,
	eventPublisher *pktNats.Publisher,
) IAuthService {
	return &authService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		resendThrottle:   resendThrottle,
		codeLimiter:      codeLimiter,
		eventPublisher:   eventPublisher,
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}

func signAccessToken(userId uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(accessTokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(serverutils.JwtSecret())
}

// Refresh tokens are stored hashed; a database leak never exposes a
// usable session token.
func hashRefreshToken(raw string) string {
	hasher := sha256.New()
	hasher.Write([]byte(raw))
	return hex.EncodeToString(hasher.Sum(nil))
}

// RequestCode serves both the initial send and "resend": it replaces any
// previously issued code, so only the newest one verifies.
func (s *authService) RequestCode(ctx context.Context, req *dto.RequestCodeRequest) error {
	if !s.resendThrottle.Allow(req.Email) {
		return errors.New("Please wait a moment before requesting another code")
	}

	// A failed issue must not burn the cooldown window; release it so the
	// user can retry immediately.
	if err := s.issueCode(ctx, req.Email); err != nil {
		s.resendThrottle.Reset(req.Email)
		return err
	}
	return nil
}

func (s *authService) issueCode(ctx context.Context, email string) error {
	allowed, err := s.codeLimiter.Allow(ctx, email)
	if err != nil {
		fmt.Printf("[WARN] Code rate limiter unavailable: %v\n", err)
	}
	if !allowed {
		return errors.New("Too many codes requested for this email. Try again later")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if user == nil {
		user = &entity.User{
			Id:        uuid.New(),
			Email:     email,
			Status:    entity.UserStatusPending,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return err
		}
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	if err := uow.UserRepository().DeleteEmailVerificationTokensByUser(ctx, user.Id); err != nil {
		return err
	}

	verificationToken := &entity.EmailVerificationToken{
		Id:        uuid.New(),
		UserId:    user.Id,
		Token:     code,
		ExpiresAt: time.Now().Add(codeExpiry),
		CreatedAt: time.Now(),
	}
	if err := uow.UserRepository().CreateEmailVerificationToken(ctx, verificationToken); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	// Hand the code to the email worker. The response to this request
	// never carries it.
	msgPayload := dto.SendVerificationEmailMessage{Email: user.Email, Code: code}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, msgJson)
}

func (s *authService) VerifyCode(ctx context.Context, req *dto.VerifyCodeRequest) (*dto.VerifyCodeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		return nil, errors.New("invalid or expired code. please try again")
	}

	tokenEntity, err := uow.UserRepository().FindEmailVerificationToken(ctx,
		specification.UserOwnedBy{UserID: user.Id},
		specification.ByToken{Token: req.Code},
	)
	if err != nil || tokenEntity == nil {
		return nil, errors.New("invalid or expired code. please try again")
	}

	if time.Now().After(tokenEntity.ExpiresAt) {
		return nil, errors.New("invalid or expired code. please try again")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().MarkEmailVerified(ctx, user.Id); err != nil {
		return nil, err
	}
	if err := uow.UserRepository().DeleteEmailVerificationToken(ctx, tokenEntity.Id); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.resendThrottle.Reset(req.Email)

	signedToken, err := signAccessToken(user.Id)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "USER_VERIFIED",
			Data: map[string]interface{}{
				"user_id": user.Id,
				"email":   user.Email,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_VERIFIED event: %v\n", err)
		}
	}

	return &dto.VerifyCodeResponse{
		AccessToken: signedToken,
		User: dto.UserDTO{
			Id:            user.Id,
			Email:         user.Email,
			EmailVerified: true,
			CreatedAt:     user.CreatedAt,
		},
	}, nil
}

func (s *authService) SetPassword(ctx context.Context, userId uuid.UUID, req *dto.SetPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("User not found")
	}
	if !user.EmailVerified {
		return errors.New("Email not verified")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return uow.UserRepository().UpdatePassword(ctx, userId, string(hash))
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, errors.New("Invalid email or password")
	}
	if user == nil {
		return nil, errors.New("Invalid email or password")
	}

	if user.Status == entity.UserStatusPending || !user.EmailVerified {
		return nil, errors.New("Please verify your email first")
	}

	if user.PasswordHash == nil {
		return nil, errors.New("Please finish signup by setting a password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("Invalid email or password")
	}

	signedToken, err := signAccessToken(user.Id)
	if err != nil {
		return nil, err
	}

	var rawRefreshToken string

	if req.RememberMe {
		rawRefreshToken = uuid.New().String()

		refreshTokenEntity := &entity.UserRefreshToken{
			Id:        uuid.New(),
			UserId:    user.Id,
			TokenHash: hashRefreshToken(rawRefreshToken),
			ExpiresAt: time.Now().Add(time.Hour * 24 * 30),
			Revoked:   false,
			CreatedAt: time.Now(),
			IpAddress: ipAddress,
			UserAgent: userAgent,
		}

		if err := uow.UserRepository().CreateRefreshToken(ctx, refreshTokenEntity); err != nil {
			return nil, fmt.Errorf("failed to create session: %v", err)
		}
	}

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: "USER_LOGIN",
			Data: map[string]interface{}{
				"user_id": user.Id,
				"device":  userAgent,
				"time":    time.Now().Format(time.RFC822),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_LOGIN event: %v\n", err)
		}
	}

	return &dto.LoginResponse{
		AccessToken:  signedToken,
		RefreshToken: rawRefreshToken,
		User: dto.UserDTO{
			Id:            user.Id,
			Email:         user.Email,
			EmailVerified: user.EmailVerified,
			CreatedAt:     user.CreatedAt,
		},
	}, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	return uow.UserRepository().RevokeRefreshToken(ctx, hashRefreshToken(refreshToken))
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("User not found")
	}

	return &dto.UserDTO{
		Id:            user.Id,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}, nil
}
