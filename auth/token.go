package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sanket4450/SonicBox-sub000/apperr"
	"github.com/Sanket4450/SonicBox-sub000/domain"
)

// Claims is the identity a verified token resolves to.
type Claims struct {
	SubjectID string
	Role      domain.Role
}

// Manager issues and verifies the three token families. Access, refresh and
// reset tokens use separate secrets and expiries so a compromise of one family
// does not extend to the others.
type Manager struct {
	accessSecret  []byte
	accessExpiry  time.Duration
	refreshSecret []byte
	refreshExpiry time.Duration
	resetSecret   []byte
	resetExpiry   time.Duration
}

type ManagerConfig struct {
	AccessSecret  string
	AccessExpiry  time.Duration
	RefreshSecret string
	RefreshExpiry time.Duration
	ResetSecret   string
	ResetExpiry   time.Duration
}

func NewManager(cfg ManagerConfig) *Manager {
	return &Manager{
		accessSecret:  []byte(cfg.AccessSecret),
		accessExpiry:  cfg.AccessExpiry,
		refreshSecret: []byte(cfg.RefreshSecret),
		refreshExpiry: cfg.RefreshExpiry,
		resetSecret:   []byte(cfg.ResetSecret),
		resetExpiry:   cfg.ResetExpiry,
	}
}

func (m *Manager) IssueAccess(subjectID string, role domain.Role) (string, error) {
	return issue(subjectID, role, m.accessSecret, m.accessExpiry)
}

func (m *Manager) IssueRefresh(subjectID string, role domain.Role) (string, error) {
	return issue(subjectID, role, m.refreshSecret, m.refreshExpiry)
}

func (m *Manager) IssueReset(subjectID string, role domain.Role) (string, error) {
	return issue(subjectID, role, m.resetSecret, m.resetExpiry)
}

// IssuePair issues an access/refresh token pair for the subject.
func (m *Manager) IssuePair(subjectID string, role domain.Role) (access, refresh string, err error) {
	access, err = m.IssueAccess(subjectID, role)
	if err != nil {
		return "", "", err
	}
	refresh, err = m.IssueRefresh(subjectID, role)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (m *Manager) VerifyAccess(token string) (*Claims, error) {
	return verify(token, m.accessSecret)
}

func (m *Manager) VerifyRefresh(token string) (*Claims, error) {
	return verify(token, m.refreshSecret)
}

func (m *Manager) VerifyReset(token string) (*Claims, error) {
	return verify(token, m.resetSecret)
}

func issue(subjectID string, role domain.Role, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subjectID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to sign token", err)
	}
	return signed, nil
}

// verify surfaces every failure as Unauthenticated so identity errors stay
// distinguishable from input errors.
func verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.New(apperr.Unauthenticated, "invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.New(apperr.Unauthenticated, "invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, apperr.New(apperr.Unauthenticated, "missing subject in token")
	}
	role, _ := claims["role"].(string)

	return &Claims{SubjectID: sub, Role: domain.Role(role)}, nil
}
