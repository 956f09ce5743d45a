package controllers

import (
	"errors"

	"cybertech/config"
	"cybertech/models"
	"cybertech/store"
	"cybertech/utils"
	"cybertech/validators"

	"github.com/gofiber/fiber/v2"
)

type CoursesController struct {
	Catalog  *store.CatalogStore
	Identity *store.IdentityStore
	Cfg      *config.Config
}

func NewCoursesController(catalog *store.CatalogStore, identity *store.IdentityStore, cfg *config.Config) *CoursesController {
	return &CoursesController{Catalog: catalog, Identity: identity, Cfg: cfg}
}

func (cc *CoursesController) GetCategories(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, store.SeedCategories())
}

// GetCourses lists the catalog. With a valid token the courses are annotated
// with the caller's purchase status; anonymously everything is unpurchased.
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	email := ""
	if tokenEmail, _, err := utils.ExtractUserFromToken(c, cc.Cfg); err == nil {
		email = tokenEmail
	}

	courses, err := cc.Catalog.CoursesWithPurchaseStatus(email)
	if err != nil {
		return utils.InternalServerError(c, "Could not load courses")
	}
	return utils.Success(c, fiber.StatusOK, courses)
}

func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	course, err := cc.Catalog.GetCourse(c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, course)
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var input validators.NewCourseRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	newCourse, errs := validators.ValidateNewCourse(input)
	if errs != nil {
		return utils.ValidationError(c, errs)
	}

	actor, err := sessionActor(cc.Identity, c)
	if err != nil {
		return storeError(c, err)
	}

	course, err := cc.Catalog.AddCourse(*newCourse, actor)
	if err != nil {
		return storeError(c, err)
	}
	return utils.Created(c, course)
}

// UpdateCourseContent replaces the course's lesson list wholesale.
func (cc *CoursesController) UpdateCourseContent(c *fiber.Ctx) error {
	var input struct {
		Content []validators.LessonRequest `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	lessons, errs := validators.ValidateLessons(input.Content)
	if errs != nil {
		return utils.ValidationError(c, errs)
	}

	actor, err := sessionActor(cc.Identity, c)
	if err != nil {
		return storeError(c, err)
	}

	if err := cc.Catalog.UpdateCourseContent(c.Params("id"), lessons, actor); err != nil {
		return storeError(c, err)
	}
	return utils.NoContent(c)
}

// PurchaseCourse runs the checkout flow. Free or already-owned courses skip
// payment and go straight to watching; paid courses validate the card fields
// and run the simulated processor before the purchase is recorded.
func (cc *CoursesController) PurchaseCourse(c *fiber.Ctx) error {
	email, _ := c.Locals("userEmail").(string)
	user, err := cc.Identity.FindUser(email)
	if err != nil {
		return storeError(c, err)
	}

	course, err := cc.Catalog.GetCourse(c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}

	checkout := store.NewCheckout(*course, user.PurchasedCourses, store.WithDelay(cc.Cfg.PaymentDelay))
	if checkout.Step() == store.StepWatching {
		return utils.Success(c, fiber.StatusOK, fiber.Map{"step": checkout.Step()})
	}

	var info models.PaymentInfo
	if err := c.BodyParser(&info); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if _, err := checkout.Submit(c.UserContext(), info); err != nil {
		if errors.Is(err, models.ErrValidation) {
			return utils.ValidationError(c, checkout.FieldErrors())
		}
		return utils.Error(c, fiber.StatusBadGateway, err, fiber.Map{"step": checkout.Step()})
	}

	if err := cc.Catalog.PurchaseCourse(course.ID, email); err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"step": checkout.Step()})
}

// UpdateCourseProgress marks a lesson as completed for the caller.
func (cc *CoursesController) UpdateCourseProgress(c *fiber.Ctx) error {
	var input struct {
		LessonID string `json:"lessonId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.LessonID == "" {
		return utils.BadRequest(c, "lessonId is required")
	}

	email, _ := c.Locals("userEmail").(string)
	if err := cc.Identity.RecordLessonCompletion(email, c.Params("id"), input.LessonID); err != nil {
		return storeError(c, err)
	}
	return utils.NoContent(c)
}

// GetCourseEnrollments returns the roster for a course the caller manages.
func (cc *CoursesController) GetCourseEnrollments(c *fiber.Ctx) error {
	actor, err := sessionActor(cc.Identity, c)
	if err != nil {
		return storeError(c, err)
	}

	course, err := cc.Catalog.GetCourse(c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if actor.Role != models.RoleAdmin && course.InstructorID != actor.Email {
		return utils.Forbidden(c, "Not the course instructor")
	}

	enrollments, err := cc.Catalog.GetCourseEnrollments(course.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load enrollments")
	}
	return utils.Success(c, fiber.StatusOK, enrollments)
}

// AddStudent enrolls a student without a purchase, creating the account when
// the email is unknown.
func (cc *CoursesController) AddStudent(c *fiber.Ctx) error {
	var input validators.AddStudentRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := validators.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	actor, err := sessionActor(cc.Identity, c)
	if err != nil {
		return storeError(c, err)
	}

	if err := cc.Catalog.AddStudentManually(c.Params("id"), input.Email, input.Name, actor); err != nil {
		return storeError(c, err)
	}
	return utils.NoContent(c)
}

// RemoveStudent drops a student's enrollment and access.
func (cc *CoursesController) RemoveStudent(c *fiber.Ctx) error {
	actor, err := sessionActor(cc.Identity, c)
	if err != nil {
		return storeError(c, err)
	}

	if err := cc.Catalog.RemoveStudent(c.Params("id"), c.Params("email"), actor); err != nil {
		return storeError(c, err)
	}
	return utils.NoContent(c)
}
