package jwt

import (
	"errors"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	ErrInvalidTokenType = errors.New("token is not an access token")
	ErrMissingClaim     = errors.New("token is missing a required claim")
)

// Service verifies the access tokens issued by the identity service.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth

	// GenerateAccessToken signs a token for caller; used by tests and local tooling
	GenerateAccessToken(caller user.Caller, ttl time.Duration) (token string, expiresAt int64, err error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(caller user.Caller, ttl time.Duration) (string, int64, error) {
	expiresAt := time.Now().Add(ttl).Unix()

	claims := map[string]interface{}{
		"user_id":     caller.UserID,
		"employee_id": valueOrNil(caller.EmployeeID),
		"company_id":  valueOrNil(caller.CompanyID),
		"role":        string(caller.Role),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// CallerFromClaims builds the caller identity from verified access token claims.
// employee_id and company_id may be null for users not attached to a company yet.
func CallerFromClaims(claims map[string]interface{}) (user.Caller, error) {
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return user.Caller{}, ErrInvalidTokenType
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || role == "" {
		return user.Caller{}, ErrMissingClaim
	}

	employeeID, _ := claims["employee_id"].(string)
	companyID, _ := claims["company_id"].(string)
	return user.Caller{
		UserID:     userID,
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Role:       user.Role(role),
	}, nil
}

func valueOrNil(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
