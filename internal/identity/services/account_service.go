package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	apperrors "casavista-listings/internal/errors"
	"casavista-listings/internal/identity/models"
	"casavista-listings/internal/identity/repositories"
	"casavista-listings/internal/identity/validators"
	"casavista-listings/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AccountService struct {
	repo      repositories.AccountRepository
	validator validators.AccountValidator
	tokens    *TokenService
}

func NewAccountService(repo repositories.AccountRepository, validator validators.AccountValidator, tokens *TokenService) *AccountService {
	return &AccountService{
		repo:      repo,
		validator: validator,
		tokens:    tokens,
	}
}

// Register creates a self-service account and signs it in. Role defaults to
// USER; binding limits it to the two end-user roles.
func (s *AccountService) Register(ctx context.Context, req *models.RegisterRequest) (*models.SessionResponse, error) {
	if err := s.validator.ValidateRegister(req); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), apperrors.MsgInvalidParameters, err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	account := &models.Account{
		Username:    strings.ToLower(req.Username),
		FullName:    req.FullName,
		Email:       strings.ToLower(req.Email),
		PhoneNumber: req.PhoneNumber,
		Role:        role,
		IsActive:    true,
	}

	if err := s.create(ctx, account, req.Password); err != nil {
		return nil, err
	}
	return s.session(account)
}

// CreateAccount is the admin variant: any role, no session issued.
func (s *AccountService) CreateAccount(ctx context.Context, req *models.CreateAccountRequest) (*models.AccountResponse, error) {
	register := &models.RegisterRequest{
		Username:    req.Username,
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	}
	if err := s.validator.ValidateRegister(register); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), apperrors.MsgInvalidParameters, err)
	}

	account := &models.Account{
		Username:    strings.ToLower(req.Username),
		FullName:    req.FullName,
		Email:       strings.ToLower(req.Email),
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
		IsActive:    true,
	}
	if err := s.create(ctx, account, req.Password); err != nil {
		return nil, err
	}
	return models.NewAccountResponse(account), nil
}

// create checks uniqueness, hashes the password, and inserts. The unique
// indexes backstop the pre-checks under concurrent registration.
func (s *AccountService) create(ctx context.Context, account *models.Account, password string) error {
	if existing, err := s.repo.FindByUsername(ctx, account.Username); err != nil {
		return utils.LogAndMapError(err, "check username availability", "username", account.Username)
	} else if existing != nil {
		return apperrors.NewConflictError("username already registered", "This username is already taken.")
	}
	if existing, err := s.repo.FindByEmail(ctx, account.Email); err != nil {
		return utils.LogAndMapError(err, "check email availability", "email", account.Email)
	} else if existing != nil {
		return apperrors.NewConflictError("email already registered", "This email is already registered.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return utils.LogAndMapError(err, "hash password")
	}
	account.Password = string(hashed)

	if err := s.repo.Create(ctx, account); err != nil {
		return utils.LogAndMapError(err, "create account", "username", account.Username)
	}
	return nil
}

// Login authenticates by username or email. Unknown identifier and wrong
// password fail identically so the response does not reveal which accounts
// exist.
func (s *AccountService) Login(ctx context.Context, req *models.LoginRequest) (*models.SessionResponse, error) {
	account, err := s.repo.FindByIdentifier(ctx, req.Identifier)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load account for login")
	}
	if account == nil {
		return nil, invalidCredentials("login identifier not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, invalidCredentials("password mismatch")
	}

	if !account.IsActive {
		return nil, apperrors.NewAppError("login on deactivated account", apperrors.MsgAccountDeactivated,
			apperrors.ErrCodeAuthenticationFailed, http.StatusUnauthorized, nil)
	}

	return s.session(account)
}

// Me returns the caller's own profile.
func (s *AccountService) Me(ctx context.Context, accountID string) (*models.AccountResponse, error) {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load own profile", "account_id", accountID)
	}
	if account == nil {
		return nil, apperrors.NewNotFoundError("account not found", apperrors.MsgUserNotFound)
	}
	return models.NewAccountResponse(account), nil
}

// ListAccounts pages through every account, newest first.
func (s *AccountService) ListAccounts(ctx context.Context, offset, limit int, baseURL string, params url.Values) (*models.PaginatedAccountsResponse, error) {
	offset, limit = utils.ClampPageParams(offset, limit)
	accounts, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, utils.LogAndMapError(err, "list accounts")
	}

	responses := make([]models.AccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, *models.NewAccountResponse(&accounts[i]))
	}
	return &models.PaginatedAccountsResponse{
		Data: responses,
		Meta: utils.BuildPaginationMeta(total, offset, limit, baseURL, params),
	}, nil
}

// UpdateAccount edits profile fields. Admins may edit anyone and any field;
// account holders may edit their own profile but not role or active state.
func (s *AccountService) UpdateAccount(ctx context.Context, callerID, callerRole, targetID string, req *models.UpdateAccountRequest) (*models.AccountResponse, error) {
	if callerRole != models.RoleAdmin {
		if callerID != targetID {
			return nil, apperrors.NewAuthorizationError("account update on another user")
		}
		if req.Role != nil || req.IsActive != nil {
			return nil, apperrors.NewAuthorizationError("role or active state change by non-admin")
		}
	}
	if err := s.validator.ValidateUpdate(req); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), apperrors.MsgInvalidParameters, err)
	}

	account, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load account for update", "account_id", targetID)
	}
	if account == nil {
		return nil, apperrors.NewNotFoundError("account not found", apperrors.MsgUserNotFound)
	}

	if req.FullName != nil {
		account.FullName = *req.FullName
	}
	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		if email != account.Email {
			if existing, err := s.repo.FindByEmail(ctx, email); err != nil {
				return nil, utils.LogAndMapError(err, "check email availability", "email", email)
			} else if existing != nil {
				return nil, apperrors.NewConflictError("email already registered", "This email is already registered.")
			}
		}
		account.Email = email
	}
	if req.PhoneNumber != nil {
		account.PhoneNumber = *req.PhoneNumber
	}
	if req.Role != nil {
		account.Role = *req.Role
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, utils.LogAndMapError(err, "update account", "account_id", targetID)
	}
	return models.NewAccountResponse(account), nil
}

// ChangePassword re-hashes the account password. Account holders must present
// their current password; admins reset without it.
func (s *AccountService) ChangePassword(ctx context.Context, callerID, callerRole, targetID string, req *models.ChangePasswordRequest) error {
	if callerRole != models.RoleAdmin && callerID != targetID {
		return apperrors.NewAuthorizationError("password change on another user")
	}
	if err := s.validator.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.NewValidationError(err.Error(), apperrors.MsgInvalidParameters, err)
	}

	account, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return utils.LogAndMapError(err, "load account for password change", "account_id", targetID)
	}
	if account == nil {
		return apperrors.NewNotFoundError("account not found", apperrors.MsgUserNotFound)
	}

	if callerRole != models.RoleAdmin {
		if req.CurrentPassword == "" {
			return apperrors.NewValidationError("current password missing", "Current password is required.", nil)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.CurrentPassword)); err != nil {
			return apperrors.NewValidationError("current password mismatch", "Current password is incorrect.", nil)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return utils.LogAndMapError(err, "hash password")
	}
	account.Password = string(hashed)

	if err := s.repo.Update(ctx, account); err != nil {
		return utils.LogAndMapError(err, "update account password", "account_id", targetID)
	}
	return nil
}

// DeactivateAccount soft-deletes: the row stays, sessions for it stop
// verifying.
func (s *AccountService) DeactivateAccount(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFoundError("account not found", apperrors.MsgUserNotFound)
		}
		return utils.LogAndMapError(err, "deactivate account", "account_id", id)
	}
	return nil
}

func (s *AccountService) session(account *models.Account) (*models.SessionResponse, error) {
	details, err := s.tokens.Issue(account)
	if err != nil {
		return nil, utils.LogAndMapError(err, "issue session token", "account_id", account.ID)
	}
	return &models.SessionResponse{
		Token:     details.Token,
		ExpiresIn: details.ExpiresIn,
		TokenType: details.TokenType,
		User:      models.NewAccountResponse(account),
	}, nil
}

func invalidCredentials(technical string) *apperrors.AppError {
	return apperrors.NewAppError(technical, apperrors.MsgInvalidCredentials,
		apperrors.ErrCodeAuthenticationFailed, http.StatusUnauthorized, nil)
}
