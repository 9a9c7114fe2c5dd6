package user

import (
	"context"
	"errors"
	"fmt"
	"myStarCompanion/domain"
	"myStarCompanion/pkg/logger"
	"myStarCompanion/pkg/utils"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
	UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

// TokenRepository keeps the active session token of each user.
type TokenRepository interface {
	StoreToken(ctx context.Context, session domain.TokenSession, ttl time.Duration) error
	GetTokenData(ctx context.Context, userID string) (*domain.TokenSession, error)
	ValidateToken(ctx context.Context, token string) (string, error)
	RevokeToken(ctx context.Context, userID string) error
}

type userService struct {
	userRepo                UserRepository
	validate                *validator.Validate
	notifRepo               NotificationRepository
	tokenRepo               TokenRepository
	appEmailVerificationKey string
	appDeploymentUrl        string
}

const (
	verificationCodeTTL      = 5
	SubjectRegisterAccount   = "Activate Your Star Companion Account!"
	EmailBodyRegisterAccount = `Hi %v, activate your account by opening the link below</br></br>%v</br>note: the link is only valid for %v minutes`
)

func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	tokenRepo TokenRepository,
	appEmailVerificationKey string,
	appDeploymentUrl string,
) *userService {
	return &userService{
		userRepo:                userRepo,
		validate:                validate,
		notifRepo:               notifRepo,
		tokenRepo:               tokenRepo,
		appEmailVerificationKey: appEmailVerificationKey,
		appDeploymentUrl:        appDeploymentUrl,
	}
}

const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

var validRoles = map[string]bool{
	RolePlayer: true,
	RoleAdmin:  true,
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	// Check if email already exists
	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Email already exists")
		return domain.User{}, errors.New("email already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FullName:   user.FullName,
		Email:      user.Email,
		Password:   string(passwordHash),
		IsVerified: false,
		Role:       RolePlayer,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	activationLink, err := s.verificationLink(newUser.Email, time.Now())
	if err != nil {
		logger.Error("Failed to build verification link", err)
		return domain.User{}, errors.New("failed to build verification link")
	}

	err = s.notifRepo.SendEmail(newUser.FullName, newUser.Email, SubjectRegisterAccount, fmt.Sprintf(EmailBodyRegisterAccount, newUser.FullName, activationLink, verificationCodeTTL))
	if err != nil {
		logger.Warn("Failed to send verification email", err)
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) verificationLink(email string, now time.Time) (string, error) {
	expAt := now.Add(time.Minute * verificationCodeTTL).Unix()

	verificationCode := fmt.Sprintf("%v|%v", email, expAt)
	verificationCodeEncrypt, err := goshortcute.AESCBCEncrypt([]byte(verificationCode), []byte(s.appEmailVerificationKey))
	if err != nil {
		return "", err
	}
	strEncode := goshortcute.StringtoBase64Encode(verificationCodeEncrypt)

	return s.appDeploymentUrl + "/api/v1/users/email-verification/" + strEncode, nil
}

func (s *userService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Invalid user credentials", err)
		return "", domain.User{}, errors.New("invalid email or password")
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Error("User password incorrect")
		return "", domain.User{}, errors.New("invalid email or password")
	}

	if !user.IsVerified {
		logger.Error("Email address has not been verified")
		return "", domain.User{}, errors.New("email address has not been verified")
	}

	token, err := s.issueToken(ctx, user, ipAddress, userAgent)
	if err != nil {
		return "", domain.User{}, err
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) issueToken(ctx context.Context, user domain.User, ipAddress, userAgent string) (string, error) {
	userIdStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIdStr, user.Role)
	if err != nil {
		logger.Error("Failed to generated token", err)
		return "", errors.New("failed to generate token")
	}

	now := time.Now()
	session := domain.TokenSession{
		UserID:    userIdStr,
		Role:      user.Role,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(utils.TokenTTL()),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	if err := s.tokenRepo.StoreToken(ctx, session, utils.TokenTTL()); err != nil {
		logger.Error("Failed to store token", err)
		return "", errors.New("failed to store token")
	}

	return token, nil
}

// ValidateTokenFromRedis returns the user id a live token belongs to.
func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.tokenRepo.ValidateToken(ctx, token)
}

// RefreshToken swaps a still valid token for a new one.
func (s *userService) RefreshToken(ctx context.Context, oldToken, ipAddress, userAgent string) (string, domain.User, error) {
	claims, err := utils.ParseJWT(oldToken)
	if err != nil {
		logger.Error("Failed to parse token for refresh", err)
		return "", domain.User{}, errors.New("invalid token")
	}

	userID, err := s.tokenRepo.ValidateToken(ctx, oldToken)
	if err != nil || userID != claims.UserID {
		logger.Error("Refresh with revoked token", "user_id", claims.UserID)
		return "", domain.User{}, errors.New("invalid token")
	}

	id, err := strconv.ParseUint(userID, 10, 64)
	if err != nil {
		return "", domain.User{}, errors.New("invalid token")
	}

	user, err := s.userRepo.FindByID(ctx, uint(id))
	if err != nil {
		logger.Error("Failed to find user for refresh", err)
		return "", domain.User{}, err
	}

	if err := s.tokenRepo.RevokeToken(ctx, userID); err != nil {
		logger.Warn("Failed to revoke old token", err)
	}

	token, err := s.issueToken(ctx, user, ipAddress, userAgent)
	if err != nil {
		return "", domain.User{}, err
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	userIdStr := strconv.FormatUint(uint64(userID), 10)

	session, err := s.tokenRepo.GetTokenData(ctx, userIdStr)
	if err != nil {
		logger.Error("Failed to get token data", err)
		return err
	}

	if session.Token != token {
		return errors.New("token does not belong to the active session")
	}

	if err := s.tokenRepo.RevokeToken(ctx, userIdStr); err != nil {
		logger.Error("Failed to revoke token", err)
		return err
	}

	return nil
}

var errInvalidLink = errors.New("invalid or expired url")

// parseVerificationCode reverses verificationLink and returns the email it was
// issued for, provided the link has not expired at now.
func (s *userService) parseVerificationCode(code string, now time.Time) (string, error) {
	plain, err := goshortcute.AESCBCDecrypt([]byte(goshortcute.StringtoBase64Decode(code)), []byte(s.appEmailVerificationKey))
	if err != nil {
		return "", err
	}

	email, expAtStr, found := strings.Cut(plain, "|")
	if !found || email == "" {
		return "", fmt.Errorf("malformed verification code %q", plain)
	}

	expAt, err := strconv.ParseInt(expAtStr, 10, 64)
	if err != nil {
		return "", fmt.Errorf("malformed expiry: %w", err)
	}
	if now.After(time.Unix(expAt, 0)) {
		return "", errors.New("verification link expired")
	}

	return email, nil
}

func (s *userService) VerifyEmail(ctx context.Context, verificationCodeEncrypt string) error {
	email, err := s.parseVerificationCode(verificationCodeEncrypt, time.Now())
	if err != nil {
		logger.Warn("Rejected verification link", "error", err)
		return errInvalidLink
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Failed to find user for verification", err)
		return errInvalidLink
	}

	if user.IsVerified {
		logger.Warn("Email already verified", "user_id", user.ID)
		return errInvalidLink
	}

	if err := s.userRepo.UpdateEmailVerification(ctx, user.ID, true); err != nil {
		logger.Error("Failed to mark email verified", err)
		return err
	}

	logger.Info("Email verified", "user_id", user.ID)

	return nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

// GetAllUsers retrieves all users
func (s *userService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to get all users", err)
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, nil
}

// UpdateUser updates user information
func (s *userService) UpdateUser(ctx context.Context, id uint, updateData *domain.User) (domain.User, error) {
	if updateData.Role != "" && !validRoles[updateData.Role] {
		return domain.User{}, errors.New("invalid role")
	}

	existingUser, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("User not found for update", err)
		return domain.User{}, err
	}

	if updateData.FullName != "" {
		existingUser.FullName = updateData.FullName
	}

	if updateData.Password != "" {
		if err := s.validate.Var(updateData.Password, "required,min=6"); err != nil {
			logger.Error("Invalid password", err)
			return domain.User{}, errors.New("password must be at least 6 characters")
		}

		passwordHash, err := utils.HashPassword(updateData.Password)
		if err != nil {
			logger.Error("Failed to hash password", err)
			return domain.User{}, errors.New("failed to hash password")
		}
		existingUser.Password = string(passwordHash)
	}

	if updateData.Role != "" {
		existingUser.Role = updateData.Role
	}

	if err := s.userRepo.Update(ctx, &existingUser); err != nil {
		logger.Error("Failed to update user", err)
		return domain.User{}, err
	}

	existingUser.Password = ""
	return existingUser, nil
}

// DeleteUser soft deletes a user
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		logger.Error("User not found for deletion", err)
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete user", err)
		return err
	}

	if err := s.tokenRepo.RevokeToken(ctx, strconv.FormatUint(uint64(id), 10)); err != nil {
		logger.Warn("Failed to revoke token of deleted user", err)
	}

	return nil
}
