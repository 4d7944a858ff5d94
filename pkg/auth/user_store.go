package auth

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidUsername    = errors.New("username must be 3-50 alphanumeric characters")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const (
	minPasswordLength = 8
	minUsernameLength = 3
	maxUsernameLength = 50
	bcryptCost        = 12
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// User is a workbench account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserStore manages accounts and credential checks in memory.
type UserStore struct {
	users       map[string]*User  // userID -> User
	usernameMap map[string]string // username -> userID
	mu          sync.RWMutex
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users:       make(map[string]*User),
		usernameMap: make(map[string]string),
	}
}

// CreateUser creates an account with a bcrypt-hashed password.
func (s *UserStore) CreateUser(username, password, role string) (*User, error) {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength || !usernameRegex.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	if !validRoles[role] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usernameMap[username]; exists {
		return nil, fmt.Errorf("%w: %s", ErrUserExists, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[user.ID] = user
	s.usernameMap[username] = user.ID
	return user, nil
}

// Authenticate checks a username/password pair and returns the user.
func (s *UserStore) Authenticate(username, password string) (*User, error) {
	s.mu.RLock()
	userID, ok := s.usernameMap[username]
	user := s.users[userID]
	s.mu.RUnlock()

	if !ok || user == nil {
		// Burn a bcrypt comparison anyway to keep timing uniform.
		bcrypt.CompareHashAndPassword([]byte("$2a$12$invalidsaltinvalidsaltinv"), []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser returns a user by ID.
func (s *UserStore) GetUser(id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return user, nil
}
