package services

import (
	"context"
	"errors"
	"time"

	"shopmart/internal/common"
	"shopmart/internal/config"
	"shopmart/internal/models"
	"shopmart/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type RegisterCustomerInput struct {
	Username     string
	Password     string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 *string
	City         string
	PostalCode   string
	Country      string
}

type RegisterVendorInput struct {
	Username     string
	Password     string
	Name         string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 *string
	City         string
	PostalCode   string
	Country      string
}

type AuthService interface {
	RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*models.Customer, error)
	LoginCustomer(ctx context.Context, username, password string) (string, error)
	ChangeCustomerPassword(ctx context.Context, customerID uuid.UUID, oldPassword, newPassword string) error
	RegisterVendor(ctx context.Context, input RegisterVendorInput) (*models.Vendor, error)
	LoginVendor(ctx context.Context, username, password string) (string, error)
	ChangeVendorPassword(ctx context.Context, vendorID uuid.UUID, oldPassword, newPassword string) error
}

type authService struct {
	db           repositories.Database
	customerRepo repositories.CustomerRepository
	vendorRepo   repositories.VendorRepository
	categoryRepo repositories.CategoryRepository
	cfg          config.AuthConfig
}

func NewAuthService(db repositories.Database, customerRepo repositories.CustomerRepository,
	vendorRepo repositories.VendorRepository, categoryRepo repositories.CategoryRepository,
	cfg config.AuthConfig) AuthService {
	return &authService{
		db:           db,
		customerRepo: customerRepo,
		vendorRepo:   vendorRepo,
		categoryRepo: categoryRepo,
		cfg:          cfg,
	}
}

func (s *authService) RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*models.Customer, error) {
	if err := validateCredentials(input.Username, input.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		PostalCode:   input.PostalCode,
		Country:      input.Country,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// RegisterVendor creates the vendor account and its root category node in
// one transaction. Every vendor owns exactly one tree in the category
// forest, so a vendor row without a root never exists.
func (s *authService) RegisterVendor(ctx context.Context, input RegisterVendorInput) (*models.Vendor, error) {
	if err := validateCredentials(input.Username, input.Password); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(input.Name, "name"); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	vendor := &models.Vendor{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: string(hash),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		PostalCode:   input.PostalCode,
		Country:      input.Country,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.NewStorageError("vendor register", 0, err)
	}
	defer tx.Rollback(ctx)

	if err := s.vendorRepo.Create(ctx, tx, vendor); err != nil {
		return nil, common.NewStorageError("vendor register", 1, err)
	}
	if _, err := s.categoryRepo.CreateRoot(ctx, tx, vendor.ID, vendor.Name); err != nil {
		return nil, common.NewStorageError("vendor register", 2, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.NewStorageError("vendor register", 3, err)
	}
	return vendor, nil
}

func (s *authService) LoginCustomer(ctx context.Context, username, password string) (string, error) {
	customer, err := s.customerRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.signToken(customer.ID, s.cfg.CustomerSecret)
}

func (s *authService) LoginVendor(ctx context.Context, username, password string) (string, error) {
	vendor, err := s.vendorRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(vendor.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.signToken(vendor.ID, s.cfg.VendorSecret)
}

func (s *authService) ChangeCustomerPassword(ctx context.Context, customerID uuid.UUID, oldPassword, newPassword string) error {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}
	if err := common.ValidateStringLength(newPassword, "password", 8, 72); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	return s.customerRepo.UpdatePassword(ctx, customerID, string(hash))
}

func (s *authService) ChangeVendorPassword(ctx context.Context, vendorID uuid.UUID, oldPassword, newPassword string) error {
	vendor, err := s.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(vendor.PasswordHash), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}
	if err := common.ValidateStringLength(newPassword, "password", 8, 72); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	return s.vendorRepo.UpdatePassword(ctx, vendorID, string(hash))
}

// signToken issues an HS256 token under the actor-specific secret. The
// secrets differ per actor kind so a customer token can never pass
// vendor-side verification.
func (s *authService) signToken(actorID uuid.UUID, secret string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": actorID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.TokenTTL).Unix(),
	})
	return token.SignedString([]byte(secret))
}

func validateCredentials(username, password string) error {
	if err := common.ValidateRequiredString(username, "username"); err != nil {
		return err
	}
	if err := common.ValidateStringLength(username, "username", 3, 64); err != nil {
		return err
	}
	// bcrypt truncates inputs past 72 bytes
	return common.ValidateStringLength(password, "password", 8, 72)
}
