package routes

import (
	"cybertech/chat"
	"cybertech/config"
	"cybertech/controllers"
	"cybertech/middleware"
	"cybertech/store"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, identity *store.IdentityStore, catalog *store.CatalogStore, assistant *chat.Assistant, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(identity, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(identity)
	instructorMiddleware := middleware.InstructorMiddleware(identity)

	app.Post("/api/auth/logout", authMiddleware, authController.Logout)
	app.Get("/api/auth/session", authMiddleware, authController.GetSession)

	// Catalog routes
	coursesController := controllers.NewCoursesController(catalog, identity, cfg)
	app.Get("/api/categories", coursesController.GetCategories)

	courses := app.Group("/api/courses")
	courses.Get("/", coursesController.GetCourses)
	courses.Get("/:id", coursesController.GetCourseDetails)
	courses.Post("/", authMiddleware, instructorMiddleware, coursesController.CreateCourse)
	courses.Put("/:id/content", authMiddleware, instructorMiddleware, coursesController.UpdateCourseContent)
	courses.Post("/:id/purchase", authMiddleware, coursesController.PurchaseCourse)
	courses.Post("/:id/progress", authMiddleware, coursesController.UpdateCourseProgress)
	courses.Get("/:id/enrollments", authMiddleware, instructorMiddleware, coursesController.GetCourseEnrollments)
	courses.Post("/:id/students", authMiddleware, instructorMiddleware, coursesController.AddStudent)
	courses.Delete("/:id/students/:email", authMiddleware, instructorMiddleware, coursesController.RemoveStudent)

	// Admin routes
	adminController := controllers.NewAdminController(catalog, identity, cfg)
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)
	admin.Get("/users", adminController.ListUsers)
	admin.Delete("/courses/:id", adminController.DeleteCourse)
	admin.Delete("/instructors/:email", adminController.RemoveInstructor)

	// Chat assistant
	chatController := controllers.NewChatController(assistant)
	app.Post("/api/chat", chatController.SendMessage)
}
