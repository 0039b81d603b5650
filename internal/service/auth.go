package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/TubaAnsari/vendor-management-portal/internal/auth"
	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	"github.com/TubaAnsari/vendor-management-portal/internal/event"
	"github.com/TubaAnsari/vendor-management-portal/internal/repository"
	apperrors "github.com/TubaAnsari/vendor-management-portal/pkg/errors"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 12

// minPasswordLength is the minimum password length required.
const minPasswordLength = 6

// RegisterInput holds the parameters for registering a new vendor.
type RegisterInput struct {
	VendorName       string
	OwnerName        string
	ContactNumber    string
	Email            string
	BusinessCategory string
	City             string
	Description      string
	Password         string
	LogoURL          *string
}

// LoginInput holds the parameters for vendor login.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is a vendor together with a freshly issued access token.
type AuthResult struct {
	Vendor    *domain.Vendor `json:"vendor"`
	Token     string         `json:"token"`
	ExpiresIn int64          `json:"expires_in"`
}

// AuthService implements vendor account operations.
type AuthService struct {
	vendors    repository.VendorRepository
	jwtManager *auth.JWTManager
	cache      repository.ListingCache
	producer   *event.Producer
	logger     *slog.Logger
	hashCost   int
	now        func() time.Time
}

// NewAuthService creates a new auth service. cache may be nil.
func NewAuthService(
	vendors repository.VendorRepository,
	jwtManager *auth.JWTManager,
	cache repository.ListingCache,
	producer *event.Producer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		vendors:    vendors,
		jwtManager: jwtManager,
		cache:      cache,
		producer:   producer,
		logger:     logger,
		hashCost:   bcryptCost,
		now:        time.Now,
	}
}

// WithHashCost overrides the bcrypt cost used for new password hashes.
// Values outside bcrypt's accepted range keep the default.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		s.hashCost = cost
	}
	return s
}

// Register creates a vendor account and returns it with an access token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if strings.TrimSpace(input.VendorName) == "" {
		return nil, apperrors.InvalidInput("vendor name is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	vendor := &domain.Vendor{
		VendorName:       strings.TrimSpace(input.VendorName),
		OwnerName:        strings.TrimSpace(input.OwnerName),
		ContactNumber:    input.ContactNumber,
		Email:            email,
		BusinessCategory: input.BusinessCategory,
		City:             strings.TrimSpace(input.City),
		Description:      strings.TrimSpace(input.Description),
		LogoURL:          input.LogoURL,
		PasswordHash:     string(hashed),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.vendors.Create(ctx, vendor); err != nil {
		return nil, fmt.Errorf("create vendor: %w", err)
	}

	if err := invalidateListings(ctx, s.cache, s.logger); err != nil {
		return nil, err
	}

	result, err := s.issue(vendor)
	if err != nil {
		return nil, err
	}

	if err := s.producer.PublishVendorRegistered(ctx, vendor); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish vendor.registered event",
			slog.Int64("vendor_id", vendor.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "vendor registered",
		slog.Int64("vendor_id", vendor.ID),
		slog.String("email", vendor.Email),
	)

	return result, nil
}

// Login authenticates a vendor by email and password.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if input.Password == "" {
		return nil, apperrors.InvalidInput("password is required")
	}

	vendor, err := s.vendors.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("get vendor by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(vendor.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	result, err := s.issue(vendor)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "vendor logged in",
		slog.Int64("vendor_id", vendor.ID),
	)

	return result, nil
}

// GetProfile returns the authenticated vendor's profile.
func (s *AuthService) GetProfile(ctx context.Context, vendorID int64) (*domain.Vendor, error) {
	vendor, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return vendor, nil
}

// UpdateProfile applies a partial update to the vendor's profile.
func (s *AuthService) UpdateProfile(ctx context.Context, vendorID int64, update domain.VendorUpdate) (*domain.Vendor, error) {
	if update.IsEmpty() {
		return nil, apperrors.Validation("at least one field must be provided", nil)
	}

	vendor, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("get vendor: %w", err)
	}

	update.Apply(vendor)
	vendor.UpdatedAt = s.now().UTC()

	if err := s.vendors.Update(ctx, vendor); err != nil {
		return nil, fmt.Errorf("update vendor: %w", err)
	}

	if err := invalidateListings(ctx, s.cache, s.logger); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "vendor profile updated",
		slog.Int64("vendor_id", vendor.ID),
	)

	return vendor, nil
}

// DeleteProfile removes the vendor account along with its products and reviews.
func (s *AuthService) DeleteProfile(ctx context.Context, vendorID int64, reason string) error {
	if err := s.vendors.Delete(ctx, vendorID); err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}

	if err := invalidateListings(ctx, s.cache, s.logger); err != nil {
		return err
	}

	if err := s.producer.PublishVendorDeleted(ctx, vendorID, reason); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish vendor.deleted event",
			slog.Int64("vendor_id", vendorID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "vendor deleted",
		slog.Int64("vendor_id", vendorID),
		slog.String("reason", reason),
	)

	return nil
}

func (s *AuthService) issue(vendor *domain.Vendor) (*AuthResult, error) {
	token, err := s.jwtManager.GenerateToken(vendor.ID, vendor.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{
		Vendor:    vendor,
		Token:     token,
		ExpiresIn: int64(s.jwtManager.Expiry().Seconds()),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
