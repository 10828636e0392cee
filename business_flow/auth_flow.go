package businessflow

import (
	"context"
	"time"

	"github.com/amirphl/Yatagarasu/app/dto"
	"github.com/amirphl/Yatagarasu/app/services"
	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/repository"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthFlow is the credential collaborator: it verifies credentials and hands
// out signed tokens. The short link flows trust the customer identity it
// produces verbatim.
type AuthFlow interface {
	Signup(ctx context.Context, req *dto.SignupRequest, metadata *ClientMetadata) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.AuthResponse, error)
	Logout(ctx context.Context, accessToken string) error
	Profile(ctx context.Context, customerID uint) (*dto.ProfileResponse, error)
}

type AuthFlowImpl struct {
	customerRepo repository.CustomerRepository
	tokenService services.TokenService
	db           *gorm.DB
}

func NewAuthFlow(customerRepo repository.CustomerRepository, tokenService services.TokenService, db *gorm.DB) AuthFlow {
	return &AuthFlowImpl{
		customerRepo: customerRepo,
		tokenService: tokenService,
		db:           db,
	}
}

func (f *AuthFlowImpl) Signup(ctx context.Context, req *dto.SignupRequest, metadata *ClientMetadata) (*dto.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewBusinessError("PASSWORD_HASH_FAILED", "Failed to hash password", err)
	}

	customer := &models.Customer{
		UUID:         uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     utils.ToPtr(true),
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		existing, err := f.customerRepo.ByEmail(txCtx, req.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrEmailAlreadyExists
		}
		if err := f.customerRepo.Save(txCtx, customer); err != nil {
			if repository.IsDuplicateKeyError(err) {
				return ErrEmailAlreadyExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		if IsEmailAlreadyExists(err) {
			return nil, err
		}
		return nil, NewBusinessError("SIGNUP_FAILED", "Failed to register account", err)
	}

	return f.buildAuthResponse(customer)
}

func (f *AuthFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.AuthResponse, error) {
	customer, err := f.customerRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Failed to lookup account", err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	if !utils.IsTrue(customer.IsActive) {
		return nil, ErrAccountInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrIncorrectPassword
	}

	if err := f.customerRepo.UpdateLastLogin(ctx, customer.ID); err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Failed to update login timestamp", err)
	}

	return f.buildAuthResponse(customer)
}

func (f *AuthFlowImpl) Logout(ctx context.Context, accessToken string) error {
	if err := f.tokenService.RevokeToken(accessToken); err != nil {
		return NewBusinessError("LOGOUT_FAILED", "Failed to revoke token", err)
	}
	return nil
}

func (f *AuthFlowImpl) Profile(ctx context.Context, customerID uint) (*dto.ProfileResponse, error) {
	customer, err := f.customerRepo.ByID(ctx, customerID)
	if err != nil {
		return nil, NewBusinessError("PROFILE_FAILED", "Failed to load account", err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	linkCount, err := f.customerRepo.CountShortLinks(ctx, customerID)
	if err != nil {
		return nil, NewBusinessError("PROFILE_FAILED", "Failed to count short links", err)
	}

	return &dto.ProfileResponse{
		Username:  customer.Username,
		Email:     customer.Email,
		LinkCount: linkCount,
	}, nil
}

func (f *AuthFlowImpl) buildAuthResponse(customer *models.Customer) (*dto.AuthResponse, error) {
	accessToken, refreshToken, err := f.tokenService.GenerateTokens(customer.ID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_ISSUE_FAILED", "Failed to issue tokens", err)
	}

	return &dto.AuthResponse{
		Customer: dto.CustomerDTO{
			ID:        customer.ID,
			UUID:      customer.UUID.String(),
			Username:  customer.Username,
			Email:     customer.Email,
			CreatedAt: customer.CreatedAt.Format(time.RFC3339),
		},
		Tokens: dto.TokenPairDTO{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			TokenType:    "Bearer",
			ExpiresIn:    int(utils.AccessTokenTTL.Seconds()),
		},
	}, nil
}
