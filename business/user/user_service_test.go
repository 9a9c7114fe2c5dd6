//go:build !integration

package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"myStarCompanion/domain"
	"myStarCompanion/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, errors.New("user not found")
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error {
	u := f.users[id]
	u.IsVerified = isVerified
	f.users[id] = u
	return nil
}

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) SendEmail(toName, toEmail, subject, message string) error {
	f.sent = append(f.sent, message)
	return nil
}

type fakeTokens struct {
	byUser map[string]domain.TokenSession
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{byUser: make(map[string]domain.TokenSession)}
}

func (f *fakeTokens) StoreToken(ctx context.Context, session domain.TokenSession, ttl time.Duration) error {
	f.byUser[session.UserID] = session
	return nil
}

func (f *fakeTokens) GetTokenData(ctx context.Context, userID string) (*domain.TokenSession, error) {
	s, ok := f.byUser[userID]
	if !ok {
		return nil, errors.New("token not found")
	}
	return &s, nil
}

func (f *fakeTokens) ValidateToken(ctx context.Context, token string) (string, error) {
	for id, s := range f.byUser {
		if s.Token == token {
			return id, nil
		}
	}
	return "", errors.New("token not found or expired")
}

func (f *fakeTokens) RevokeToken(ctx context.Context, userID string) error {
	delete(f.byUser, userID)
	return nil
}

const testKey = "0123456789abcdef"

func newTestUserService() (*userService, *fakeUserRepo, *fakeMailer, *fakeTokens) {
	utils.InitJWT("test-secret", time.Hour)
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	tokens := newFakeTokens()
	svc := NewUserService(repo, validator.New(), mailer, tokens, testKey, "http://localhost:8080")
	return svc, repo, mailer, tokens
}

func TestRegister(t *testing.T) {
	svc, repo, mailer, _ := newTestUserService()

	user, err := svc.Register(context.Background(), &domain.User{FullName: "Trailblazer", Email: "tb@astral.express", Password: "secret1"})
	require.NoError(t, err)

	assert.Empty(t, user.Password)
	assert.Equal(t, RolePlayer, user.Role)
	assert.False(t, repo.users[user.ID].IsVerified)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0], "http://localhost:8080/api/v1/users/email-verification/")

	_, err = svc.Register(context.Background(), &domain.User{Email: "tb@astral.express", Password: "secret1"})
	assert.EqualError(t, err, "email already exists")
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	_, err := svc.Register(context.Background(), &domain.User{Email: "not-an-email", Password: "secret1"})
	assert.EqualError(t, err, "invalid email format")

	_, err = svc.Register(context.Background(), &domain.User{Email: "a@b.co", Password: "123"})
	assert.EqualError(t, err, "password must be at least 6 characters")
}

func TestVerifyEmailRoundTrip(t *testing.T) {
	svc, repo, mailer, _ := newTestUserService()

	user, err := svc.Register(context.Background(), &domain.User{FullName: "March", Email: "march7@astral.express", Password: "secret1"})
	require.NoError(t, err)

	link := mailer.sent[0]
	start := strings.Index(link, "email-verification/") + len("email-verification/")
	end := strings.Index(link[start:], "</br>")
	code := link[start : start+end]

	require.NoError(t, svc.VerifyEmail(context.Background(), code))
	assert.True(t, repo.users[user.ID].IsVerified)

	assert.EqualError(t, svc.VerifyEmail(context.Background(), code), "invalid or expired url")
}

func TestVerificationCodeExpiry(t *testing.T) {
	svc, _, _, _ := newTestUserService()
	now := time.Now()

	link, err := svc.verificationLink("kafka@stellaron.io", now)
	require.NoError(t, err)
	code := strings.TrimPrefix(link, "http://localhost:8080/api/v1/users/email-verification/")

	email, err := svc.parseVerificationCode(code, now)
	require.NoError(t, err)
	assert.Equal(t, "kafka@stellaron.io", email)

	_, err = svc.parseVerificationCode(code, now.Add(verificationCodeTTL*time.Minute+time.Second))
	assert.Error(t, err)
}

func TestLoginAndLogout(t *testing.T) {
	svc, repo, _, tokens := newTestUserService()
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &domain.User{Email: "dan@heng.io", Password: string(hash), IsVerified: true, Role: RolePlayer}))

	_, _, err = svc.Login(context.Background(), "dan@heng.io", "wrong", "127.0.0.1", "test")
	assert.EqualError(t, err, "invalid email or password")

	token, user, err := svc.Login(context.Background(), "dan@heng.io", "secret1", "127.0.0.1", "test")
	require.NoError(t, err)
	assert.Empty(t, user.Password)
	assert.Equal(t, token, tokens.byUser["1"].Token)

	userID, err := svc.ValidateTokenFromRedis(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "1", userID)

	assert.Error(t, svc.Logout(context.Background(), 1, "another-token"))
	require.NoError(t, svc.Logout(context.Background(), 1, token))
	_, err = svc.ValidateTokenFromRedis(context.Background(), token)
	assert.Error(t, err)
}

func TestLoginRequiresVerifiedEmail(t *testing.T) {
	svc, repo, _, _ := newTestUserService()
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &domain.User{Email: "kafka@stellaron.hunt", Password: string(hash)}))

	_, _, err = svc.Login(context.Background(), "kafka@stellaron.hunt", "secret1", "", "")
	assert.EqualError(t, err, "email address has not been verified")
}

func TestRefreshToken(t *testing.T) {
	svc, repo, _, tokens := newTestUserService()
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &domain.User{Email: "welt@astral.express", Password: string(hash), IsVerified: true, Role: RoleAdmin}))

	token, _, err := svc.Login(context.Background(), "welt@astral.express", "secret1", "", "")
	require.NoError(t, err)

	newToken, user, err := svc.RefreshToken(context.Background(), token, "", "")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, user.Role)
	assert.Equal(t, newToken, tokens.byUser["1"].Token)

	_, _, err = svc.RefreshToken(context.Background(), "garbage", "", "")
	assert.EqualError(t, err, "invalid token")
}

func TestUpdateUser(t *testing.T) {
	svc, repo, _, _ := newTestUserService()
	require.NoError(t, repo.Create(context.Background(), &domain.User{FullName: "Old", Email: "x@y.io", Role: RolePlayer}))

	updated, err := svc.UpdateUser(context.Background(), 1, &domain.User{FullName: "New", Password: "secret22"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.FullName)
	assert.Empty(t, updated.Password)
	assert.True(t, utils.CheckPassword("secret22", repo.users[1].Password))

	_, err = svc.UpdateUser(context.Background(), 1, &domain.User{Role: "superuser"})
	assert.EqualError(t, err, "invalid role")

	_, err = svc.UpdateUser(context.Background(), 9, &domain.User{FullName: "Nobody"})
	assert.EqualError(t, err, "user not found")
}

func TestDeleteUserRevokesToken(t *testing.T) {
	svc, repo, _, tokens := newTestUserService()
	require.NoError(t, repo.Create(context.Background(), &domain.User{Email: "x@y.io"}))
	tokens.byUser["1"] = domain.TokenSession{UserID: "1", Token: "t"}

	require.NoError(t, svc.DeleteUser(context.Background(), 1))
	assert.Empty(t, repo.users)
	assert.Empty(t, tokens.byUser)
}
