package models

// Roles assignable to a user. Email is the unique identifier and is used
// as the foreign key everywhere a user is referenced.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

type User struct {
	Name             string              `json:"name"`
	Email            string              `json:"email"`
	Password         string              `json:"password,omitempty"` // bcrypt hash
	Role             string              `json:"role"`
	PurchasedCourses []string            `json:"purchasedCourses"`
	CreatedCourses   []string            `json:"createdCourses"`
	CompletedLessons map[string][]string `json:"completedLessons"`
}

// SessionUser is the password-stripped projection of a User persisted as the
// "currently logged in" record.
type SessionUser struct {
	Name             string              `json:"name"`
	Email            string              `json:"email"`
	Role             string              `json:"role"`
	PurchasedCourses []string            `json:"purchasedCourses"`
	CreatedCourses   []string            `json:"createdCourses"`
	CompletedLessons map[string][]string `json:"completedLessons"`
}

// Session builds the projection for u.
func (u User) Session() SessionUser {
	return SessionUser{
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		PurchasedCourses: u.PurchasedCourses,
		CreatedCourses:   u.CreatedCourses,
		CompletedLessons: u.CompletedLessons,
	}
}

// NewUser creates a user with empty purchase, creation and completion state.
// The password must already be hashed.
func NewUser(name, email, passwordHash, role string) User {
	return User{
		Name:             name,
		Email:            email,
		Password:         passwordHash,
		Role:             role,
		PurchasedCourses: []string{},
		CreatedCourses:   []string{},
		CompletedLessons: map[string][]string{},
	}
}
