package store

import (
	"testing"

	"cybertech/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerUser(t *testing.T, identity *IdentityStore, name, email, role string) *models.SessionUser {
	t.Helper()
	session, err := identity.Register(name, email, "secret123", role)
	require.NoError(t, err)
	return session
}

func TestSeedCatalogInstalledOnce(t *testing.T) {
	_, catalog := newTestStores(t)

	courses, err := catalog.Courses()
	require.NoError(t, err)
	require.Len(t, courses, 3)
	assert.Equal(t, "Penetration Testing Fundamentals", courses[0].Title)

	require.NoError(t, catalog.EnsureCatalog())
	courses, err = catalog.Courses()
	require.NoError(t, err)
	assert.Len(t, courses, 3)
}

func TestAddCourseRequiresPrivilegedRole(t *testing.T) {
	identity, catalog := newTestStores(t)
	student := registerUser(t, identity, "Sam", "sam@example.com", models.RoleStudent)

	input := models.NewCourse{Title: "Intro", Description: "d", Category: "Cryptography", Level: models.LevelBeginner, Price: 10, Duration: "2 Hours", Image: "https://images.unsplash.com/x"}

	_, err := catalog.AddCourse(input, student)
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = catalog.AddCourse(input, nil)
	assert.ErrorIs(t, err, models.ErrForbidden)

	courses, err := catalog.Courses()
	require.NoError(t, err)
	assert.Len(t, courses, 3)
}

func TestAddCourseStampsInstructor(t *testing.T) {
	identity, catalog := newTestStores(t)
	instructor := registerUser(t, identity, "Ingrid", "ingrid@example.com", models.RoleInstructor)

	course, err := catalog.AddCourse(models.NewCourse{
		Title: "Applied Cryptography", Description: "d", Category: "Cryptography",
		Level: models.LevelIntermediate, Price: 29.99, Duration: "6 Hours",
		Image: "https://images.unsplash.com/photo-1",
	}, instructor)
	require.NoError(t, err)

	assert.NotEmpty(t, course.ID)
	assert.Equal(t, "Ingrid", course.Instructor)
	assert.Equal(t, "ingrid@example.com", course.InstructorID)
	assert.Empty(t, course.Content)

	persisted, err := catalog.GetCourse(course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.Title, persisted.Title)
}

func TestUpdateCourseContent(t *testing.T) {
	identity, catalog := newTestStores(t)
	instructor := registerUser(t, identity, "Ingrid", "ingrid@example.com", models.RoleInstructor)
	other := registerUser(t, identity, "Oskar", "oskar@example.com", models.RoleInstructor)

	course, err := catalog.AddCourse(models.NewCourse{
		Title: "Applied Cryptography", Description: "d", Category: "Cryptography",
		Level: models.LevelIntermediate, Price: 29.99, Duration: "6 Hours",
		Image: "https://images.unsplash.com/photo-1",
	}, instructor)
	require.NoError(t, err)

	lessons := []models.Lesson{
		{Title: "Keys", Duration: "30 Minutes", VideoURL: "https://www.youtube.com/embed/abcdefghijk"},
		{Title: "Ciphers", Duration: "40 Minutes", VideoURL: "https://www.youtube.com/embed/abcdefghijl"},
	}

	t.Run("other instructor forbidden", func(t *testing.T) {
		err := catalog.UpdateCourseContent(course.ID, lessons, other)
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("owner replaces wholesale and ordinals are assigned", func(t *testing.T) {
		require.NoError(t, catalog.UpdateCourseContent(course.ID, lessons, instructor))

		persisted, err := catalog.GetCourse(course.ID)
		require.NoError(t, err)
		require.Len(t, persisted.Content, 2)
		assert.Equal(t, course.ID+"-1", persisted.Content[0].ID)
		assert.Equal(t, course.ID+"-2", persisted.Content[1].ID)
	})

	t.Run("cannot empty a published course", func(t *testing.T) {
		err := catalog.UpdateCourseContent(course.ID, nil, instructor)
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("unknown course", func(t *testing.T) {
		err := catalog.UpdateCourseContent("course-missing", lessons, instructor)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestPurchaseCourseExactlyOnce(t *testing.T) {
	identity, catalog := newTestStores(t)
	registerUser(t, identity, "Sam", "sam@example.com", models.RoleStudent)

	require.NoError(t, catalog.PurchaseCourse("1", "sam@example.com"))

	// The second call must not add a second enrollment or purchase entry.
	err := catalog.PurchaseCourse("1", "sam@example.com")
	assert.ErrorIs(t, err, models.ErrDuplicateEnrollment)

	enrollments, err := catalog.GetCourseEnrollments("1")
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, "sam@example.com", enrollments[0].UserID)
	assert.Equal(t, "Sam", enrollments[0].UserName)
	assert.False(t, enrollments[0].EnrollmentDate.IsZero())

	user, err := identity.FindUser("sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, user.PurchasedCourses)
}

func TestPurchaseCourseErrors(t *testing.T) {
	identity, catalog := newTestStores(t)
	registerUser(t, identity, "Sam", "sam@example.com", models.RoleStudent)

	assert.ErrorIs(t, catalog.PurchaseCourse("course-missing", "sam@example.com"), models.ErrNotFound)
	assert.ErrorIs(t, catalog.PurchaseCourse("1", "ghost@example.com"), models.ErrNotFound)
}

func TestPurchaseUpdatesSessionProjection(t *testing.T) {
	identity, catalog := newTestStores(t)
	registerUser(t, identity, "Sam", "sam@example.com", models.RoleStudent)

	require.NoError(t, catalog.PurchaseCourse("2", "sam@example.com"))

	session, err := identity.Session()
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, session.PurchasedCourses)
}

func TestCoursesWithPurchaseStatus(t *testing.T) {
	identity, catalog := newTestStores(t)
	registerUser(t, identity, "Sam", "sam@example.com", models.RoleStudent)
	registerUser(t, identity, "Tess", "tess@example.com", models.RoleStudent)

	require.NoError(t, catalog.PurchaseCourse("1", "sam@example.com"))

	samCourses, err := catalog.CoursesWithPurchaseStatus("sam@example.com")
	require.NoError(t, err)
	tessCourses, err := catalog.CoursesWithPurchaseStatus("tess@example.com")
	require.NoError(t, err)
	anonCourses, err := catalog.CoursesWithPurchaseStatus("")
	require.NoError(t, err)

	byID := func(courses []models.Course, id string) models.Course {
		for _, c := range courses {
			if c.ID == id {
				return c
			}
		}
		t.Fatalf("course %s not in projection", id)
		return models.Course{}
	}

	assert.True(t, byID(samCourses, "1").IsPurchased)
	assert.False(t, byID(samCourses, "2").IsPurchased)
	assert.False(t, byID(tessCourses, "1").IsPurchased)
	assert.False(t, byID(anonCourses, "1").IsPurchased)
}

func TestDeleteCourseCascade(t *testing.T) {
	identity, catalog := newTestStores(t)
	registerUser(t, identity, "Sam", "sam@example.com", models.RoleStudent)
	require.NoError(t, catalog.PurchaseCourse("1", "sam@example.com"))

	admin, err := identity.Login(AdminEmail, adminPassword)
	require.NoError(t, err)

	t.Run("student cannot delete", func(t *testing.T) {
		student := &models.SessionUser{Email: "sam@example.com", Role: models.RoleStudent}
		assert.ErrorIs(t, catalog.DeleteCourse("1", student), models.ErrForbidden)
	})

	require.NoError(t, catalog.DeleteCourse("1", admin))

	_, err = catalog.GetCourse("1")
	assert.ErrorIs(t, err, models.ErrNotFound)

	enrollments, err := catalog.GetCourseEnrollments("1")
	require.NoError(t, err)
	assert.Empty(t, enrollments)

	users, err := identity.Users()
	require.NoError(t, err)
	for _, u := range users {
		assert.NotContains(t, u.PurchasedCourses, "1")
		assert.NotContains(t, u.CreatedCourses, "1")
	}
}

func TestAddStudentManually(t *testing.T) {
	identity, catalog := newTestStores(t)
	instructor := registerUser(t, identity, "Ingrid", "ingrid@example.com", models.RoleInstructor)

	course, err := catalog.AddCourse(models.NewCourse{
		Title: "Forensics", Description: "d", Category: "Defensive Security",
		Level: models.LevelBeginner, Price: 19.99, Duration: "4 Hours",
		Image: "https://images.unsplash.com/photo-2",
	}, instructor)
	require.NoError(t, err)

	t.Run("creates a minimal student account", func(t *testing.T) {
		require.NoError(t, catalog.AddStudentManually(course.ID, "new@example.com", "Newbie", instructor))

		user, err := identity.FindUser("new@example.com")
		require.NoError(t, err)
		assert.Equal(t, models.RoleStudent, user.Role)
		assert.Equal(t, []string{course.ID}, user.PurchasedCourses)
		assert.NotEmpty(t, user.Password)

		// The placeholder password works for login.
		_, err = identity.Login("new@example.com", placeholderPassword)
		assert.NoError(t, err)
	})

	t.Run("rejects a duplicate enrollment", func(t *testing.T) {
		err := catalog.AddStudentManually(course.ID, "new@example.com", "Newbie", instructor)
		assert.ErrorIs(t, err, models.ErrDuplicateEnrollment)

		enrollments, err := catalog.GetCourseEnrollments(course.ID)
		require.NoError(t, err)
		assert.Len(t, enrollments, 1)
	})

	t.Run("existing user gains access without a new account", func(t *testing.T) {
		registerUser(t, identity, "Sam", "sam@example.com", models.RoleStudent)
		require.NoError(t, catalog.AddStudentManually(course.ID, "sam@example.com", "Sam", instructor))

		user, err := identity.FindUser("sam@example.com")
		require.NoError(t, err)
		assert.Contains(t, user.PurchasedCourses, course.ID)
	})

	t.Run("only the owner or an admin may add", func(t *testing.T) {
		other := registerUser(t, identity, "Oskar", "oskar@example.com", models.RoleInstructor)
		err := catalog.AddStudentManually(course.ID, "x@example.com", "X", other)
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("unknown course", func(t *testing.T) {
		err := catalog.AddStudentManually("course-missing", "y@example.com", "Y", instructor)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestRemoveStudent(t *testing.T) {
	identity, catalog := newTestStores(t)
	registerUser(t, identity, "Sam", "sam@example.com", models.RoleStudent)
	require.NoError(t, catalog.PurchaseCourse("1", "sam@example.com"))

	admin, err := identity.Login(AdminEmail, adminPassword)
	require.NoError(t, err)

	require.NoError(t, catalog.RemoveStudent("1", "sam@example.com", admin))

	enrollments, err := catalog.GetCourseEnrollments("1")
	require.NoError(t, err)
	assert.Empty(t, enrollments)

	user, err := identity.FindUser("sam@example.com")
	require.NoError(t, err)
	assert.NotContains(t, user.PurchasedCourses, "1")
}

func TestRemoveInstructorCascade(t *testing.T) {
	identity, catalog := newTestStores(t)
	instructor := registerUser(t, identity, "Ingrid", "ingrid@example.com", models.RoleInstructor)

	first, err := catalog.AddCourse(models.NewCourse{
		Title: "Course A", Description: "d", Category: "Cryptography",
		Level: models.LevelBeginner, Price: 9.99, Duration: "1 Hour",
		Image: "https://images.unsplash.com/photo-a",
	}, instructor)
	require.NoError(t, err)
	second, err := catalog.AddCourse(models.NewCourse{
		Title: "Course B", Description: "d", Category: "Cryptography",
		Level: models.LevelBeginner, Price: 9.99, Duration: "1 Hour",
		Image: "https://images.unsplash.com/photo-b",
	}, instructor)
	require.NoError(t, err)

	registerUser(t, identity, "Sam", "sam@example.com", models.RoleStudent)
	require.NoError(t, catalog.PurchaseCourse(first.ID, "sam@example.com"))

	admin, err := identity.Login(AdminEmail, adminPassword)
	require.NoError(t, err)

	t.Run("instructor cannot remove themselves", func(t *testing.T) {
		err := catalog.RemoveInstructor("ingrid@example.com", instructor)
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	require.NoError(t, catalog.RemoveInstructor("ingrid@example.com", admin))

	courses, err := catalog.Courses()
	require.NoError(t, err)
	for _, c := range courses {
		assert.NotEqual(t, "ingrid@example.com", c.InstructorID)
	}
	_, err = catalog.GetCourse(first.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = catalog.GetCourse(second.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// The instructor's account is gone, and the cascade cleaned up the
	// student's purchase.
	_, err = identity.FindUser("ingrid@example.com")
	assert.ErrorIs(t, err, models.ErrNotFound)

	user, err := identity.FindUser("sam@example.com")
	require.NoError(t, err)
	assert.NotContains(t, user.PurchasedCourses, first.ID)

	enrollments, err := catalog.GetCourseEnrollments(first.ID)
	require.NoError(t, err)
	assert.Empty(t, enrollments)
}

func TestGetCourseEnrollmentsInsertionOrder(t *testing.T) {
	identity, catalog := newTestStores(t)
	registerUser(t, identity, "Sam", "sam@example.com", models.RoleStudent)
	registerUser(t, identity, "Tess", "tess@example.com", models.RoleStudent)

	require.NoError(t, catalog.PurchaseCourse("1", "sam@example.com"))
	require.NoError(t, catalog.PurchaseCourse("1", "tess@example.com"))

	enrollments, err := catalog.GetCourseEnrollments("1")
	require.NoError(t, err)
	require.Len(t, enrollments, 2)
	assert.Equal(t, "sam@example.com", enrollments[0].UserID)
	assert.Equal(t, "tess@example.com", enrollments[1].UserID)
}
