package store

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"cybertech/models"
	"cybertech/storage"

	"github.com/google/uuid"
)

// CatalogStore owns courses, lessons and enrollment records. Role and
// ownership checks live here rather than in the HTTP layer, so the store is
// safe to call directly.
type CatalogStore struct {
	kv  *storage.Store
	now func() time.Time
}

func NewCatalogStore(kv *storage.Store) *CatalogStore {
	return &CatalogStore{kv: kv, now: time.Now}
}

// EnsureCatalog installs the seed catalog when no courses have ever been
// persisted. Called once at startup; idempotent.
func (s *CatalogStore) EnsureCatalog() error {
	return s.kv.Update(func(tx *storage.Store) error {
		var courses []models.Course
		err := tx.Load(storage.KeyCourses, &courses)
		if err == nil {
			return nil
		}
		if !errors.Is(err, storage.ErrNoSnapshot) {
			return err
		}
		return tx.Save(storage.KeyCourses, SeedCourses())
	})
}

// Courses returns the full catalog.
func (s *CatalogStore) Courses() ([]models.Course, error) {
	return loadCourses(s.kv)
}

// GetCourse returns the course with the given ID.
func (s *CatalogStore) GetCourse(courseID string) (*models.Course, error) {
	courses, err := loadCourses(s.kv)
	if err != nil {
		return nil, err
	}
	if idx := findCourse(courses, courseID); idx >= 0 {
		return &courses[idx], nil
	}
	return nil, fmt.Errorf("course %s: %w", courseID, models.ErrNotFound)
}

// CoursesWithPurchaseStatus annotates every course with whether email's
// purchase list contains it. An empty email marks nothing as purchased.
func (s *CatalogStore) CoursesWithPurchaseStatus(email string) ([]models.Course, error) {
	courses, err := loadCourses(s.kv)
	if err != nil {
		return nil, err
	}

	var purchased []string
	if email != "" {
		users, err := loadUsers(s.kv)
		if err != nil {
			return nil, err
		}
		if idx := findUser(users, email); idx >= 0 {
			purchased = users[idx].PurchasedCourses
		}
	}

	for i := range courses {
		courses[i].IsPurchased = slices.Contains(purchased, courses[i].ID)
	}
	return courses, nil
}

// AddCourse creates a course owned by the acting user. Only instructors and
// admins may create courses; the new course starts with no lessons.
func (s *CatalogStore) AddCourse(input models.NewCourse, actor *models.SessionUser) (*models.Course, error) {
	if actor == nil || (actor.Role != models.RoleInstructor && actor.Role != models.RoleAdmin) {
		return nil, fmt.Errorf("add course: %w", models.ErrForbidden)
	}

	course := models.Course{
		ID:           "course-" + uuid.NewString(),
		Title:        input.Title,
		Description:  input.Description,
		Image:        input.Image,
		Instructor:   actor.Name,
		InstructorID: actor.Email,
		Duration:     input.Duration,
		Level:        input.Level,
		Category:     input.Category,
		Price:        input.Price,
		IsFree:       input.IsFree,
		Content:      []models.Lesson{},
		Attachments:  input.Attachments,
	}
	for i := range course.Attachments {
		if course.Attachments[i].ID == "" {
			course.Attachments[i].ID = uuid.NewString()
		}
	}

	err := s.kv.Update(func(tx *storage.Store) error {
		courses, err := loadCourses(tx)
		if err != nil {
			return err
		}
		courses = append(courses, course)
		return tx.Save(storage.KeyCourses, courses)
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// UpdateCourseContent replaces the course's lesson list wholesale. Only the
// owning instructor or an admin may rewrite it, and a course that already has
// lessons cannot be emptied out.
func (s *CatalogStore) UpdateCourseContent(courseID string, lessons []models.Lesson, actor *models.SessionUser) error {
	return s.kv.Update(func(tx *storage.Store) error {
		courses, err := loadCourses(tx)
		if err != nil {
			return err
		}

		idx := findCourse(courses, courseID)
		if idx < 0 {
			return fmt.Errorf("course %s: %w", courseID, models.ErrNotFound)
		}
		course := &courses[idx]

		if !canManageCourse(course, actor) {
			return fmt.Errorf("update course content: %w", models.ErrForbidden)
		}
		if len(course.Content) > 0 && len(lessons) == 0 {
			return fmt.Errorf("a published course must keep at least one lesson: %w", models.ErrValidation)
		}

		for i := range lessons {
			if lessons[i].ID == "" {
				lessons[i].ID = courseID + "-" + strconv.Itoa(i+1)
			}
		}
		course.Content = lessons
		return tx.Save(storage.KeyCourses, courses)
	})
}

// PurchaseCourse grants email access to courseID: exactly one enrollment and
// exactly one purchase-list entry per (user, course), no matter how many
// times it is called. Membership is re-checked inside the transaction so a
// double submission cannot slip through.
func (s *CatalogStore) PurchaseCourse(courseID, email string) error {
	return s.kv.Update(func(tx *storage.Store) error {
		courses, err := loadCourses(tx)
		if err != nil {
			return err
		}
		cIdx := findCourse(courses, courseID)
		if cIdx < 0 {
			return fmt.Errorf("course %s: %w", courseID, models.ErrNotFound)
		}

		users, err := loadUsers(tx)
		if err != nil {
			return err
		}
		uIdx := findUser(users, email)
		if uIdx < 0 {
			return fmt.Errorf("user %s: %w", email, models.ErrNotFound)
		}

		user := &users[uIdx]
		if slices.Contains(user.PurchasedCourses, courseID) {
			return models.ErrDuplicateEnrollment
		}
		user.PurchasedCourses = append(user.PurchasedCourses, courseID)
		if err := tx.Save(storage.KeyUsers, users); err != nil {
			return err
		}

		if err := syncSessionPurchases(tx, user); err != nil {
			return err
		}

		enrollments, err := loadEnrollments(tx)
		if err != nil {
			return err
		}
		enrollments = append(enrollments, models.Enrollment{
			CourseID:       courseID,
			UserID:         email,
			UserName:       user.Name,
			EnrollmentDate: s.now().UTC(),
		})
		return tx.Save(storage.KeyEnrollments, enrollments)
	})
}

// DeleteCourse removes the course, its enrollments, and every reference to it
// in user purchase/created lists, in one transaction. Admin only.
func (s *CatalogStore) DeleteCourse(courseID string, actor *models.SessionUser) error {
	if actor == nil || actor.Role != models.RoleAdmin {
		return fmt.Errorf("delete course: %w", models.ErrForbidden)
	}
	return s.kv.Update(func(tx *storage.Store) error {
		return deleteCourseTx(tx, courseID)
	})
}

func deleteCourseTx(tx *storage.Store, courseID string) error {
	courses, err := loadCourses(tx)
	if err != nil {
		return err
	}
	idx := findCourse(courses, courseID)
	if idx < 0 {
		return fmt.Errorf("course %s: %w", courseID, models.ErrNotFound)
	}
	courses = append(courses[:idx], courses[idx+1:]...)
	if err := tx.Save(storage.KeyCourses, courses); err != nil {
		return err
	}

	enrollments, err := loadEnrollments(tx)
	if err != nil {
		return err
	}
	enrollments = slices.DeleteFunc(enrollments, func(e models.Enrollment) bool {
		return e.CourseID == courseID
	})
	if err := tx.Save(storage.KeyEnrollments, enrollments); err != nil {
		return err
	}

	users, err := loadUsers(tx)
	if err != nil {
		return err
	}
	for i := range users {
		users[i].PurchasedCourses = removeID(users[i].PurchasedCourses, courseID)
		users[i].CreatedCourses = removeID(users[i].CreatedCourses, courseID)
	}
	return tx.Save(storage.KeyUsers, users)
}

// AddStudentManually enrolls email in courseID without a purchase. A new
// minimal student account is created when the email is unknown; an existing
// enrollment is rejected rather than duplicated.
func (s *CatalogStore) AddStudentManually(courseID, email, name string, actor *models.SessionUser) error {
	return s.kv.Update(func(tx *storage.Store) error {
		courses, err := loadCourses(tx)
		if err != nil {
			return err
		}
		cIdx := findCourse(courses, courseID)
		if cIdx < 0 {
			return fmt.Errorf("course %s: %w", courseID, models.ErrNotFound)
		}
		if !canManageCourse(&courses[cIdx], actor) {
			return fmt.Errorf("add student: %w", models.ErrForbidden)
		}

		enrollments, err := loadEnrollments(tx)
		if err != nil {
			return err
		}
		for _, e := range enrollments {
			if e.CourseID == courseID && e.UserID == email {
				return models.ErrDuplicateEnrollment
			}
		}

		users, err := loadUsers(tx)
		if err != nil {
			return err
		}
		uIdx := findUser(users, email)
		if uIdx < 0 {
			hash, err := hashPassword(placeholderPassword)
			if err != nil {
				return err
			}
			user := models.NewUser(name, email, hash, models.RoleStudent)
			user.PurchasedCourses = []string{courseID}
			users = append(users, user)
		} else if !slices.Contains(users[uIdx].PurchasedCourses, courseID) {
			users[uIdx].PurchasedCourses = append(users[uIdx].PurchasedCourses, courseID)
		}
		if err := tx.Save(storage.KeyUsers, users); err != nil {
			return err
		}

		enrollments = append(enrollments, models.Enrollment{
			CourseID:       courseID,
			UserID:         email,
			UserName:       name,
			EnrollmentDate: s.now().UTC(),
		})
		return tx.Save(storage.KeyEnrollments, enrollments)
	})
}

// RemoveStudent drops the enrollment and strips the course from the user's
// purchase list.
func (s *CatalogStore) RemoveStudent(courseID, userID string, actor *models.SessionUser) error {
	return s.kv.Update(func(tx *storage.Store) error {
		courses, err := loadCourses(tx)
		if err != nil {
			return err
		}
		cIdx := findCourse(courses, courseID)
		if cIdx < 0 {
			return fmt.Errorf("course %s: %w", courseID, models.ErrNotFound)
		}
		if !canManageCourse(&courses[cIdx], actor) {
			return fmt.Errorf("remove student: %w", models.ErrForbidden)
		}

		enrollments, err := loadEnrollments(tx)
		if err != nil {
			return err
		}
		enrollments = slices.DeleteFunc(enrollments, func(e models.Enrollment) bool {
			return e.CourseID == courseID && e.UserID == userID
		})
		if err := tx.Save(storage.KeyEnrollments, enrollments); err != nil {
			return err
		}

		users, err := loadUsers(tx)
		if err != nil {
			return err
		}
		if uIdx := findUser(users, userID); uIdx >= 0 {
			users[uIdx].PurchasedCourses = removeID(users[uIdx].PurchasedCourses, courseID)
		}
		return tx.Save(storage.KeyUsers, users)
	})
}

// RemoveInstructor cascades a full course deletion across every course owned
// by instructorID, then deletes the instructor's user record. Admin only.
func (s *CatalogStore) RemoveInstructor(instructorID string, actor *models.SessionUser) error {
	if actor == nil || actor.Role != models.RoleAdmin {
		return fmt.Errorf("remove instructor: %w", models.ErrForbidden)
	}
	return s.kv.Update(func(tx *storage.Store) error {
		courses, err := loadCourses(tx)
		if err != nil {
			return err
		}
		for _, c := range courses {
			if c.InstructorID != instructorID {
				continue
			}
			if err := deleteCourseTx(tx, c.ID); err != nil {
				return err
			}
		}

		users, err := loadUsers(tx)
		if err != nil {
			return err
		}
		users = slices.DeleteFunc(users, func(u models.User) bool {
			return u.Email == instructorID
		})
		return tx.Save(storage.KeyUsers, users)
	})
}

// GetCourseEnrollments returns the enrollments for courseID in insertion
// order. Pure read.
func (s *CatalogStore) GetCourseEnrollments(courseID string) ([]models.Enrollment, error) {
	enrollments, err := loadEnrollments(s.kv)
	if err != nil {
		return nil, err
	}
	result := []models.Enrollment{}
	for _, e := range enrollments {
		if e.CourseID == courseID {
			result = append(result, e)
		}
	}
	return result, nil
}

func canManageCourse(course *models.Course, actor *models.SessionUser) bool {
	if actor == nil {
		return false
	}
	if actor.Role == models.RoleAdmin {
		return true
	}
	return actor.Role == models.RoleInstructor && course.InstructorID == actor.Email
}

// syncSessionPurchases mirrors the user's purchase list into the session
// projection when that user is the one logged in.
func syncSessionPurchases(tx *storage.Store, user *models.User) error {
	var session models.SessionUser
	if err := tx.Load(storage.KeySession, &session); err != nil {
		if errors.Is(err, storage.ErrNoSnapshot) {
			return nil
		}
		return err
	}
	if session.Email != user.Email {
		return nil
	}
	session.PurchasedCourses = user.PurchasedCourses
	return tx.Save(storage.KeySession, session)
}

func loadCourses(kv *storage.Store) ([]models.Course, error) {
	var courses []models.Course
	err := kv.Load(storage.KeyCourses, &courses)
	if errors.Is(err, storage.ErrNoSnapshot) {
		return SeedCourses(), nil
	}
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func loadEnrollments(kv *storage.Store) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := kv.Load(storage.KeyEnrollments, &enrollments); err != nil && !errors.Is(err, storage.ErrNoSnapshot) {
		return nil, err
	}
	return enrollments, nil
}

func findCourse(courses []models.Course, courseID string) int {
	for i := range courses {
		if courses[i].ID == courseID {
			return i
		}
	}
	return -1
}

func removeID(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(v string) bool { return v == id })
}
