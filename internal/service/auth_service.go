package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/samadhan-cg/samadhan-api/internal/dto"
	"github.com/samadhan-cg/samadhan-api/internal/models"
	"github.com/samadhan-cg/samadhan-api/pkg/config"
	appErrors "github.com/samadhan-cg/samadhan-api/pkg/errors"
)

// AdminStore is the persistence surface for administrative accounts.
type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	First(ctx context.Context) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error)
	UpdateProfile(ctx context.Context, id int64, name, email, phone, username, passwordHash string) (int64, error)
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// Claims is the JWT payload issued on login.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService authenticates administrators and issues access tokens.
type AuthService struct {
	admins AdminStore
	jwt    config.JWTConfig
	logger *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(admins AdminStore, jwtCfg config.JWTConfig, logger *zap.Logger) *AuthService {
	return &AuthService{admins: admins, jwt: jwtCfg, logger: logger}
}

// Login verifies credentials against the stored bcrypt hash. Missing fields
// fail before the store is consulted; an unknown email and a wrong password
// are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email and password are required")
	}

	admin, err := s.admins.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(admin)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, admin.Email, models.AuditActionLogin, "admin", admin.ID, req.IP)

	return &dto.LoginResponse{
		Message: "Login successful",
		User:    admin.Info(),
		Token:   token,
	}, nil
}

func (s *AuthService) issueToken(admin *models.Admin) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: admin.Email,
		Role:  admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(admin.ID, 10),
			Issuer:    s.jwt.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwt.Expiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwt.Secret))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "sign token")
	}
	return signed, nil
}

// ParseToken validates a token issued by Login.
func (s *AuthService) ParseToken(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwt.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.ErrInvalidCredentials
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, appErrors.ErrInvalidCredentials
	}
	return claims, nil
}

// audit records an administrative action. Failures are logged and dropped,
// never surfaced to the caller.
func (s *AuthService) audit(ctx context.Context, actor, action, resource string, resourceID int64, ip string) {
	id := strconv.FormatInt(resourceID, 10)
	log := &models.AuditLog{
		ID:         uuid.NewString(),
		Actor:      actor,
		Action:     action,
		Resource:   resource,
		ResourceID: &id,
		IPAddress:  ip,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.admins.CreateAuditLog(ctx, log); err != nil && s.logger != nil {
		s.logger.Warn("audit log write failed", zap.String("action", action), zap.Error(err))
	}
}
