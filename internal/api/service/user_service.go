package service

import (
	"booking"
	"booking/internal/api/handler/mapper"
	"booking/internal/api/handler/request"
	"booking/internal/api/handler/response"
	"booking/internal/api/models"
	"booking/internal/api/repo"
	"booking/pkg"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo         *repo.UserRepository
	notificationRepo *repo.NotificationRepository
	config           booking.AppConfig
	logger           zerolog.Logger
	userMapper       mapper.UserMapper
	bookingMapper    mapper.BookingMapper
}

func NewUserService() *UserService {
	return &UserService{
		userRepo:         repo.NewUserRepository(),
		notificationRepo: repo.NewNotificationRepository(),
		config:           booking.GetConfig(),
		logger:           booking.Logger,
	}
}

func (slf *UserService) Register(registerDTO request.RegisterDTO) (*response.AuthResponseDTO, error) {
	exists, err := slf.userRepo.ExistsByEmail(registerDTO.Email)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error checking if user exists")
		return nil, err
	}
	if exists {
		return nil, errors.New("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registerDTO.Password), bcrypt.DefaultCost)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error hashing password")
		return nil, err
	}

	user := models.User{
		Email:     registerDTO.Email,
		Password:  string(hashedPassword),
		FirstName: registerDTO.FirstName,
		LastName:  registerDTO.LastName,
		Role:      models.RoleUser,
		Active:    true,
	}

	if err = slf.userRepo.Create(&user); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	token, refreshToken, err := slf.openSession(&user)
	if err != nil {
		return nil, err
	}

	slf.logger.Info().Uint("userId", user.ID).Msg("User registered successfully")
	return &response.AuthResponseDTO{
		Token:        token,
		RefreshToken: refreshToken,
		User:         slf.userMapper.EntityToUserResponse(user),
	}, nil
}

func (slf *UserService) Login(loginDTO request.LoginDTO) (*response.AuthResponseDTO, error) {
	user, err := slf.userRepo.FindByEmail(loginDTO.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid email or password")
		}
		slf.logger.Error().Err(err).Msg("Error finding user by email")
		return nil, err
	}

	if !user.Active {
		return nil, errors.New("account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginDTO.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token, refreshToken, err := slf.openSession(&user)
	if err != nil {
		return nil, err
	}

	slf.logger.Info().Uint("userId", user.ID).Msg("User logged in successfully")
	return &response.AuthResponseDTO{
		Token:        token,
		RefreshToken: refreshToken,
		User:         slf.userMapper.EntityToUserResponse(user),
	}, nil
}

// openSession mints a token pair and appends a session record for the
// refresh token to the user's embedded session list.
func (slf *UserService) openSession(user *models.User) (string, string, error) {
	token, err := pkg.GenerateToken(user.ID, user.Email, string(user.Role), slf.config.JWTConfig.Secret, slf.config.JWTConfig.Expiration)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error generating token")
		return "", "", err
	}

	refreshToken, err := pkg.GenerateRefreshToken(user.ID, slf.config.JWTConfig.Secret, slf.config.JWTConfig.RefreshExpiration)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error generating refresh token")
		return "", "", err
	}

	user.Sessions = append(user.Sessions, models.SessionRecord{
		Token:        refreshToken,
		LastModified: time.Now(),
	})
	if err = slf.userRepo.Update(user); err != nil {
		slf.logger.Error().Err(err).Msg("Error saving user session")
		return "", "", err
	}

	return token, refreshToken, nil
}

func (slf *UserService) RefreshToken(refreshToken string) (response.AuthResponseDTO, error) {
	claims, err := pkg.ValidateRefreshToken(refreshToken, slf.config.JWTConfig.Secret)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Invalid refresh token")
		return response.AuthResponseDTO{}, errors.New("invalid or expired refresh token")
	}

	user, err := slf.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.AuthResponseDTO{}, errors.New("user not found")
		}
		slf.logger.Error().Err(err).Uint("userId", claims.UserID).Msg("Error finding user by ID")
		return response.AuthResponseDTO{}, err
	}

	if !user.Active {
		return response.AuthResponseDTO{}, errors.New("account is inactive")
	}

	sessionIdx := -1
	for i, s := range user.Sessions {
		if s.Token == refreshToken {
			sessionIdx = i
			break
		}
	}
	if sessionIdx == -1 {
		slf.logger.Warn().Uint("userId", user.ID).Msg("Refresh token does not match any session")
		return response.AuthResponseDTO{}, errors.New("invalid refresh token")
	}

	token, err := pkg.GenerateToken(user.ID, user.Email, string(user.Role), slf.config.JWTConfig.Secret, slf.config.JWTConfig.Expiration)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error generating token")
		return response.AuthResponseDTO{}, err
	}

	newRefreshToken, err := pkg.GenerateRefreshToken(user.ID, slf.config.JWTConfig.Secret, slf.config.JWTConfig.RefreshExpiration)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error generating refresh token")
		return response.AuthResponseDTO{}, err
	}

	user.Sessions[sessionIdx] = models.SessionRecord{
		Token:        newRefreshToken,
		LastModified: time.Now(),
	}
	if err = slf.userRepo.Update(&user); err != nil {
		slf.logger.Error().Err(err).Msg("Error saving rotated session")
		return response.AuthResponseDTO{}, err
	}

	slf.logger.Info().Uint("userId", user.ID).Msg("Token refreshed successfully")
	return response.AuthResponseDTO{
		Token:        token,
		RefreshToken: newRefreshToken,
		User:         slf.userMapper.EntityToUserResponse(user),
	}, nil
}

// Logout revokes the session holding refreshToken by clearing it to the
// empty sentinel; the sweep removes nothing, revoked records just stop
// verifying as belonging to an open session.
func (slf *UserService) Logout(userID uint, refreshToken string) error {
	user, err := slf.userRepo.FindByID(userID)
	if err != nil {
		return err
	}

	changed := false
	for i, s := range user.Sessions {
		if s.Token != "" && s.Token == refreshToken {
			user.Sessions[i].Token = ""
			user.Sessions[i].LastModified = time.Now()
			changed = true
		}
	}
	if !changed {
		return nil
	}

	return slf.userRepo.Update(&user)
}

func (slf *UserService) GetByID(id uint) (response.UserResponseDTO, error) {
	user, err := slf.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.UserResponseDTO{}, errors.New("user not found")
		}
		slf.logger.Error().Err(err).Uint("userId", id).Msg("Error finding user by ID")
		return response.UserResponseDTO{}, err
	}

	return slf.userMapper.EntityToUserResponse(user), nil
}

func (slf *UserService) GetInbox(userID uint) ([]response.NotificationResponseDTO, error) {
	notifications, err := slf.notificationRepo.FindByUser(userID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error loading inbox")
		return nil, err
	}

	out := make([]response.NotificationResponseDTO, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, slf.bookingMapper.EntityToNotificationResponse(n))
	}
	return out, nil
}

func (slf *UserService) MarkNotificationRead(id uint, userID uint) error {
	return slf.notificationRepo.MarkRead(id, userID)
}
