package store

import (
	"errors"
	"fmt"
	"strings"

	"cybertech/models"
	"cybertech/storage"

	"golang.org/x/crypto/bcrypt"
)

// Reserved admin account, ensured to exist at startup.
const (
	AdminEmail    = "admin@gmail.com"
	AdminName     = "Administrator"
	adminPassword = "admin123"
)

// Password assigned to accounts created through manual enrollment.
const placeholderPassword = "password123"

// IdentityStore owns the registered-user list and the current session. It has
// no dependency on the catalog.
type IdentityStore struct {
	kv *storage.Store
}

func NewIdentityStore(kv *storage.Store) *IdentityStore {
	return &IdentityStore{kv: kv}
}

// EnsureAdmin creates the reserved admin account if no user with its email
// exists yet. Called once at startup; idempotent.
func (s *IdentityStore) EnsureAdmin() error {
	return s.kv.Update(func(tx *storage.Store) error {
		users, err := loadUsers(tx)
		if err != nil {
			return err
		}
		for _, u := range users {
			if u.Email == AdminEmail {
				return nil
			}
		}

		hash, err := hashPassword(adminPassword)
		if err != nil {
			return err
		}
		users = append(users, models.NewUser(AdminName, AdminEmail, hash, models.RoleAdmin))
		return tx.Save(storage.KeyUsers, users)
	})
}

// Register creates a user with empty purchase, creation and completion state
// and establishes it as the active session.
func (s *IdentityStore) Register(name, email, password, role string) (*models.SessionUser, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required: %w", models.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email: %w", models.ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters: %w", models.ErrValidation)
	}
	if role != models.RoleStudent && role != models.RoleInstructor {
		return nil, fmt.Errorf("invalid role %q: %w", role, models.ErrValidation)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	var session models.SessionUser
	err = s.kv.Update(func(tx *storage.Store) error {
		users, err := loadUsers(tx)
		if err != nil {
			return err
		}
		for _, u := range users {
			if u.Email == email {
				return models.ErrDuplicateEmail
			}
		}

		user := models.NewUser(name, email, hash, role)
		users = append(users, user)
		if err := tx.Save(storage.KeyUsers, users); err != nil {
			return err
		}

		session = user.Session()
		return tx.Save(storage.KeySession, session)
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Login authenticates the credentials and persists the session projection.
func (s *IdentityStore) Login(email, password string) (*models.SessionUser, error) {
	var session models.SessionUser
	err := s.kv.Update(func(tx *storage.Store) error {
		users, err := loadUsers(tx)
		if err != nil {
			return err
		}

		for _, u := range users {
			if u.Email != email {
				continue
			}
			if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
				return models.ErrInvalidCredentials
			}
			session = u.Session()
			return tx.Save(storage.KeySession, session)
		}
		return models.ErrInvalidCredentials
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout clears the current session. Registered users are untouched.
func (s *IdentityStore) Logout() error {
	return s.kv.Delete(storage.KeySession)
}

// Session returns the persisted session projection, or ErrNotFound when
// nobody is logged in.
func (s *IdentityStore) Session() (*models.SessionUser, error) {
	var session models.SessionUser
	if err := s.kv.Load(storage.KeySession, &session); err != nil {
		if errors.Is(err, storage.ErrNoSnapshot) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// RecordLessonCompletion adds lessonID to the user's completed set for
// courseID. Idempotent; the full user record and the session projection are
// updated together.
func (s *IdentityStore) RecordLessonCompletion(email, courseID, lessonID string) error {
	return s.kv.Update(func(tx *storage.Store) error {
		users, err := loadUsers(tx)
		if err != nil {
			return err
		}

		idx := findUser(users, email)
		if idx < 0 {
			return fmt.Errorf("user %s: %w", email, models.ErrNotFound)
		}

		user := &users[idx]
		if user.CompletedLessons == nil {
			user.CompletedLessons = map[string][]string{}
		}
		completed := user.CompletedLessons[courseID]
		for _, id := range completed {
			if id == lessonID {
				return nil // already recorded
			}
		}
		user.CompletedLessons[courseID] = append(completed, lessonID)

		if err := tx.Save(storage.KeyUsers, users); err != nil {
			return err
		}

		// Keep the session projection in step with the full record.
		var session models.SessionUser
		if err := tx.Load(storage.KeySession, &session); err != nil {
			if errors.Is(err, storage.ErrNoSnapshot) {
				return nil
			}
			return err
		}
		if session.Email != email {
			return nil
		}
		session.CompletedLessons = user.CompletedLessons
		return tx.Save(storage.KeySession, session)
	})
}

// FindUser returns the full record for email.
func (s *IdentityStore) FindUser(email string) (*models.User, error) {
	users, err := loadUsers(s.kv)
	if err != nil {
		return nil, err
	}
	if idx := findUser(users, email); idx >= 0 {
		return &users[idx], nil
	}
	return nil, fmt.Errorf("user %s: %w", email, models.ErrNotFound)
}

// Users returns all registered users.
func (s *IdentityStore) Users() ([]models.User, error) {
	return loadUsers(s.kv)
}

func loadUsers(kv *storage.Store) ([]models.User, error) {
	var users []models.User
	if err := kv.Load(storage.KeyUsers, &users); err != nil && !errors.Is(err, storage.ErrNoSnapshot) {
		return nil, err
	}
	return users, nil
}

func findUser(users []models.User, email string) int {
	for i := range users {
		if users[i].Email == email {
			return i
		}
	}
	return -1
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
