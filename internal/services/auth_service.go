package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"kart2kitchen/internal/models"
	"kart2kitchen/internal/repositories"
	"kart2kitchen/pkg/scancode"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// scannerCodeAttempts bounds the uniqueness retry loop for scanner code
// generation. With 36^8 possible codes, collisions past the first retry
// mean something is badly wrong.
const scannerCodeAttempts = 5

// AuthService handles registration, login, and token validation for both
// actor types.
type AuthService struct {
	userRepo   repositories.UserRepository
	vendorRepo repositories.VendorRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, vendorRepo repositories.VendorRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		vendorRepo: vendorRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterUser registers a new buyer, hashing their password before it is
// stored.
func (s *AuthService) RegisterUser(user *models.User) error {
	if existing, err := s.userRepo.GetByPhone(user.Phone); err == nil && existing != nil {
		return ErrPhoneTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// RegisterVendor registers a new vendor and assigns their scanner code,
// retrying generation until the code is not already taken.
func (s *AuthService) RegisterVendor(vendor *models.Vendor) error {
	if existing, err := s.vendorRepo.GetByPhone(vendor.Phone); err == nil && existing != nil {
		return ErrPhoneTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(vendor.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	vendor.Password = string(hashedPassword)
	if vendor.ID == "" {
		vendor.ID = uuid.New().String()
	}
	if vendor.Service == "" {
		vendor.Service = "General"
	}

	code, err := s.uniqueScannerCode()
	if err != nil {
		return err
	}
	vendor.ScannerCode = code

	if err := s.vendorRepo.Create(vendor); err != nil {
		return fmt.Errorf("failed to register vendor: %w", err)
	}
	return nil
}

func (s *AuthService) uniqueScannerCode() (string, error) {
	for attempt := 0; attempt < scannerCodeAttempts; attempt++ {
		code := scancode.New()
		exists, err := s.vendorRepo.ScannerCodeExists(code)
		if err != nil {
			return "", fmt.Errorf("failed to check scanner code uniqueness: %w", err)
		}
		if !exists {
			return code, nil
		}
		log.Printf("Scanner code collision on %s, retrying", code)
	}
	return "", fmt.Errorf("could not generate a unique scanner code after %d attempts", scannerCodeAttempts)
}

// LoginUser authenticates a buyer and returns a JWT plus their profile.
func (s *AuthService) LoginUser(phone, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByPhone(phone)
	if err != nil {
		// Do not reveal whether the phone is registered.
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user.Phone, user.Name, "user")
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// LoginVendor authenticates a vendor and returns a JWT plus their profile.
func (s *AuthService) LoginVendor(phone, password string) (string, *models.Vendor, error) {
	vendor, err := s.vendorRepo.GetByPhone(phone)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(vendor.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(vendor.Phone, vendor.Name, "vendor")
	if err != nil {
		return "", nil, err
	}
	return token, vendor, nil
}

func (s *AuthService) issueToken(phone, name, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"phone": phone,
		"name":  name,
		"role":  role,
		"exp":   time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":   time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
