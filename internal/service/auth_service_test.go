package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"notemark-be/internal/dto"
	"notemark-be/internal/entity"
	"notemark-be/internal/repository/memory"
	"notemark-be/pkg/ratelimit"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestAuthService(pub *capturingPublisher, cooldown time.Duration) (IAuthService, *fakeUnitOfWork) {
	uow := newFakeUnitOfWork()
	svc := NewAuthService(
		&fakeFactory{uow: uow},
		pub,
		memory.NewResendThrottle(cooldown),
		ratelimit.NewRedisLimiter(nil, "signup_code", 10, time.Hour),
		nil,
	)
	return svc, uow
}

func queuedCode(t *testing.T, pub *capturingPublisher) dto.SendVerificationEmailMessage {
	t.Helper()
	if len(pub.payloads) == 0 {
		t.Fatal("no email message was queued")
	}
	var msg dto.SendVerificationEmailMessage
	if err := json.Unmarshal(pub.payloads[len(pub.payloads)-1], &msg); err != nil {
		t.Fatalf("failed to unmarshal queued message: %v", err)
	}
	return msg
}

func TestGenerateCode(t *testing.T) {
	sixDigits := regexp.MustCompile(`^\d{6}$`)

	// Run enough samples to cover low values that need zero padding.
	for i := 0; i < 200; i++ {
		code, err := generateCode()
		assert.NoError(t, err)
		assert.True(t, sixDigits.MatchString(code), "code %q is not 6 digits", code)
	}
}

func TestHashRefreshToken(t *testing.T) {
	a := hashRefreshToken("token-one")
	b := hashRefreshToken("token-one")
	c := hashRefreshToken("token-two")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64) // hex-encoded sha256
}

func TestRequestCodeThenVerifyCode(t *testing.T) {
	ctx := context.Background()
	pub := &capturingPublisher{}
	svc, uow := newTestAuthService(pub, time.Minute)

	err := svc.RequestCode(ctx, &dto.RequestCodeRequest{Email: "a@b.com"})
	assert.NoError(t, err)

	// The code travels only through the queued email message.
	msg := queuedCode(t, pub)
	assert.Equal(t, "a@b.com", msg.Email)
	assert.Regexp(t, `^\d{6}$`, msg.Code)

	wrong := "000000"
	if wrong == msg.Code {
		wrong = "000001"
	}

	// A wrong code fails but leaves the issued code usable.
	_, err = svc.VerifyCode(ctx, &dto.VerifyCodeRequest{Email: "a@b.com", Code: wrong})
	assert.Error(t, err)

	res, err := svc.VerifyCode(ctx, &dto.VerifyCodeRequest{Email: "a@b.com", Code: msg.Code})
	assert.NoError(t, err)
	if assert.NotNil(t, res) {
		assert.NotEmpty(t, res.AccessToken)
		assert.True(t, res.User.EmailVerified)
	}

	user, err := uow.users.FindOne(ctx)
	assert.NoError(t, err)
	if assert.NotNil(t, user) {
		assert.Equal(t, entity.UserStatusActive, user.Status)
	}

	// The code is single use.
	_, err = svc.VerifyCode(ctx, &dto.VerifyCodeRequest{Email: "a@b.com", Code: msg.Code})
	assert.Error(t, err)
}

func TestVerifyCodeExpired(t *testing.T) {
	ctx := context.Background()
	svc, uow := newTestAuthService(&capturingPublisher{}, time.Minute)

	userId := uuid.New()
	uow.users.users = append(uow.users.users, &entity.User{
		Id:     userId,
		Email:  "a@b.com",
		Status: entity.UserStatusPending,
	})
	uow.users.tokens = append(uow.users.tokens, &entity.EmailVerificationToken{
		Id:        uuid.New(),
		UserId:    userId,
		Token:     "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	_, err := svc.VerifyCode(ctx, &dto.VerifyCodeRequest{Email: "a@b.com", Code: "123456"})
	assert.Error(t, err)

	// State stays re-submittable: the user is still pending and unverified.
	user, err := uow.users.FindOne(ctx)
	assert.NoError(t, err)
	if assert.NotNil(t, user) {
		assert.False(t, user.EmailVerified)
		assert.Equal(t, entity.UserStatusPending, user.Status)
	}
}

func TestRequestCodeResendCooldown(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(&capturingPublisher{}, time.Minute)

	assert.NoError(t, svc.RequestCode(ctx, &dto.RequestCodeRequest{Email: "a@b.com"}))
	assert.Error(t, svc.RequestCode(ctx, &dto.RequestCodeRequest{Email: "a@b.com"}))
}

func TestRequestCodeFailureReleasesCooldown(t *testing.T) {
	ctx := context.Background()
	pub := &capturingPublisher{err: errors.New("pipeline down")}
	svc, _ := newTestAuthService(pub, time.Minute)

	err := svc.RequestCode(ctx, &dto.RequestCodeRequest{Email: "a@b.com"})
	assert.Error(t, err)

	// The failed attempt must not lock the address out of an immediate retry.
	pub.err = nil
	err = svc.RequestCode(ctx, &dto.RequestCodeRequest{Email: "a@b.com"})
	assert.NoError(t, err)
	assert.Len(t, pub.payloads, 1)
}
