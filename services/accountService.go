package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kariqs/mobistore-api/models"
	"github.com/Kariqs/mobistore-api/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 10

// Identity is the caller resolved from a request.
type Identity struct {
	UserID uint
	Role   models.Role
}

type LoginResult struct {
	Token    string      `json:"token"`
	UserID   uint        `json:"user_id"`
	UserType models.Role `json:"user_type"`
}

type AccountService struct {
	db        *gorm.DB
	filters   *FilterService
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAccountService(db *gorm.DB, filters *FilterService, jwtSecret string, jwtTTL time.Duration) *AccountService {
	if jwtTTL <= 0 {
		jwtTTL = 24 * time.Hour
	}
	return &AccountService{db: db, filters: filters, jwtSecret: jwtSecret, jwtTTL: jwtTTL}
}

// ResolveIdentity confirms the user exists and is active. The stored role wins
// over whatever the credential claimed.
func (s *AccountService) ResolveIdentity(ctx context.Context, userID uint) (*Identity, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("id", "user_type", "is_active").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: unknown user", ErrUnauthenticated)
	}
	if err != nil {
		return nil, internalError("resolve identity", err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account disabled", ErrUnauthenticated)
	}
	return &Identity{UserID: user.ID, Role: user.UserType}, nil
}

// Register creates the user and an empty profile together.
func (s *AccountService) Register(ctx context.Context, in models.RegisterData) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	role := in.UserType
	if role == "" {
		role = models.RoleBuyer
	}

	user := models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     in.Phone,
		Password:  string(hash),
		UserType:  role,
		IsActive:  true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.Profile{UserID: user.ID}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		user.Profile = &profile
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}
	if err != nil {
		return nil, internalError("register", err)
	}

	zap.S().Infow("user registered", "user_id", user.ID, "user_type", user.UserType)
	return &user, nil
}

func (s *AccountService) Login(ctx context.Context, in models.LoginData) (*LoginResult, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(in.Email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
	}
	if err != nil {
		return nil, internalError("login", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account disabled", ErrUnauthenticated)
	}

	token, err := utils.GenerateJWT(user, s.jwtSecret, s.jwtTTL)
	if err != nil {
		zap.S().Errorw("failed to sign token", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("%w: failed to generate token", ErrInternal)
	}

	return &LoginResult{Token: token, UserID: user.ID, UserType: user.UserType}, nil
}

// DeleteAccount removes the user and everything the user owns.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uint) error {
	var retired int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", userID).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		carts := tx.Model(&models.Cart{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("cart_id IN (?)", carts).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for _, model := range []any{&models.Cart{}, &models.Wishlist{}, &models.Address{}, &models.Profile{}} {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}

		// listings of a removed seller leave the catalog but keep their rows
		// for cart snapshots
		result = tx.Model(&models.Product{}).
			Where("seller_id = ? AND status = ?", userID, models.ProductActive).
			Update("status", models.ProductDeleted)
		if result.Error != nil {
			return result.Error
		}
		retired = result.RowsAffected
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if err != nil {
		return internalError("delete account", err)
	}

	if retired > 0 && s.filters != nil {
		s.filters.InvalidateFilterOptions()
	}

	zap.S().Infow("account deleted", "user_id", userID, "retired_products", retired)
	return nil
}

func (s *AccountService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Profile").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if err != nil {
		return nil, internalError("get profile", err)
	}
	if user.Profile == nil {
		user.Profile = &models.Profile{UserID: user.ID}
	}
	return &user, nil
}

// UpdateProfile sets the non-empty fields, creating the profile row if the
// user has none.
func (s *AccountService) UpdateProfile(ctx context.Context, userID uint, in models.ProfileUpdate) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where(models.Profile{UserID: userID}).FirstOrInit(&profile).Error
	if err != nil {
		return nil, internalError("find profile", err)
	}

	if in.Gender != "" {
		profile.Gender = in.Gender
	}
	if in.ProfilePicture != "" {
		profile.ProfilePicture = in.ProfilePicture
	}

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, internalError("update profile", err)
	}
	return &profile, nil
}

func (s *AccountService) AddAddress(ctx context.Context, userID uint, in models.Address) (*models.Address, error) {
	in.ID = 0
	in.UserID = userID
	if in.AddressType == "" {
		in.AddressType = models.AddressHome
	}

	if err := s.db.WithContext(ctx).Create(&in).Error; err != nil {
		return nil, internalError("add address", err)
	}
	return &in, nil
}

func (s *AccountService) ListAddresses(ctx context.Context, userID uint) ([]models.Address, error) {
	addresses := []models.Address{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&addresses).Error; err != nil {
		return nil, internalError("list addresses", err)
	}
	return addresses, nil
}

// DeleteAddress removes one of the user's addresses. Addresses of other users
// are reported as missing.
func (s *AccountService) DeleteAddress(ctx context.Context, userID, addressID uint) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", addressID, userID).Delete(&models.Address{})
	if result.Error != nil {
		return internalError("delete address", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: address %d", ErrNotFound, addressID)
	}
	return nil
}
