package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveStaff      = errors.New("staff inactive")
)

type StaffFinder interface {
	FindByEmail(ctx context.Context, email string) (*Staff, error)
}

type Staff struct {
	ID           string
	Name         string
	Email        string
	Role         string // admin | cashier | waiter | driver
	PasswordHash string
	IsActive     bool
}

type LoginResult struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"` // seconds
	Role        string `json:"role"`
	Name        string `json:"name"`
}

type StaffLoginUsecase struct {
	finder    StaffFinder
	jwtSecret []byte
	expMin    int
}

func NewStaffLoginUsecase(finder StaffFinder, jwtSecret string, expiresMinutes int) *StaffLoginUsecase {
	if expiresMinutes <= 0 {
		expiresMinutes = 60
	}
	return &StaffLoginUsecase{
		finder:    finder,
		jwtSecret: []byte(jwtSecret),
		expMin:    expiresMinutes,
	}
}

func (u *StaffLoginUsecase) Execute(ctx context.Context, email, password string) (*LoginResult, error) {
	staff, err := u.finder.FindByEmail(ctx, email)
	if err != nil {
		// Hide whether email exists
		return nil, ErrInvalidCredentials
	}
	if !staff.IsActive {
		return nil, ErrInactiveStaff
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	exp := now.Add(time.Duration(u.expMin) * time.Minute)

	claims := jwt.MapClaims{
		"sub":   staff.ID,
		"typ":   "staff",
		"role":  staff.Role,
		"email": staff.Email,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(u.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: signed,
		ExpiresIn:   u.expMin * 60,
		Role:        staff.Role,
		Name:        staff.Name,
	}, nil
}
