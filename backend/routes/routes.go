package routes

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/backend/config"
	"learnhub/backend/controllers"
	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/store"
)

// Deps carries the service singletons main constructs.
type Deps struct {
	Progress      *services.ProgressService
	Enrollments   *services.EnrollmentService
	Grades        *services.GradeService
	Courses       *services.CourseService
	Insights      *services.InsightsService
	Notifications *services.NotificationService
}

func SetupRoutes(app *fiber.App, st store.Store, cfg *config.Config, deps Deps) {
	// Auth routes
	authController := controllers.NewAuthController(st, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	staffMiddleware := middleware.RequireRole(st, cfg, "instructor", "admin")

	// User routes
	userController := controllers.NewUserController(st, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Courses routes
	coursesController := controllers.NewCoursesController(st, cfg, deps.Courses, deps.Enrollments)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.GetMyCourses)
	courses.Get("/available", coursesController.GetAvailableCourses)
	courses.Get("/:id", coursesController.GetCourseDetails)
	courses.Post("/:id/enroll", coursesController.Enroll)
	courses.Post("/:id/drop", coursesController.Drop)
	courses.Post("/:id/modules/:moduleId/quiz", coursesController.SubmitModuleQuiz)

	// Progress routes
	progressController := controllers.NewProgressController(st, cfg, deps.Progress, deps.Insights)
	courses.Post("/:id/lessons/complete", progressController.CompleteLesson)
	courses.Get("/:id/progress", progressController.GetCourseProgress)
	app.Get("/api/progress/engagement", authMiddleware, progressController.GetEngagement)

	// Grades routes
	gradesController := controllers.NewGradesController(st, cfg, deps.Grades)
	app.Get("/api/grades", authMiddleware, gradesController.GetMyGrades)
	app.Get("/api/grades/overview", authMiddleware, gradesController.GetOverview)
	courses.Get("/:id/grades/stats", gradesController.GetCourseStats)

	// Assignments routes
	assignmentsController := controllers.NewAssignmentsController(st, cfg)
	courses.Get("/:id/assignments", assignmentsController.ListAssignments)

	// Overview / gamification routes
	overviewController := controllers.NewOverviewController(st, cfg, deps.Insights, deps.Grades, deps.Notifications)
	app.Get("/api/overview", authMiddleware, overviewController.GetOverview)
	app.Get("/api/achievements", authMiddleware, overviewController.GetAchievements)
	app.Get("/api/goals", authMiddleware, overviewController.GetGoals)

	// Notifications routes
	notificationsController := controllers.NewNotificationsController(st, cfg, deps.Notifications)
	app.Get("/api/notifications", authMiddleware, notificationsController.List)
	app.Put("/api/notifications/:id/read", authMiddleware, notificationsController.MarkRead)

	// Staff routes for course authoring and grading
	adminCourses := app.Group("/api/admin/courses", staffMiddleware)
	adminCourses.Post("/", coursesController.CreateCourse)
	adminCourses.Put("/:id", coursesController.UpdateCourse)
	adminCourses.Put("/:id/status", coursesController.UpdateCourseStatus)
	adminCourses.Post("/:id/modules", coursesController.AddModule)
	adminCourses.Put("/:id/modules/:moduleId", coursesController.RenameModule)
	adminCourses.Delete("/:id/modules/:moduleId", coursesController.RemoveModule)
	adminCourses.Post("/:id/modules/:moduleId/lessons", coursesController.AddLesson)
	adminCourses.Put("/:id/modules/:moduleId/lessons/:lessonId", coursesController.RenameLesson)
	adminCourses.Delete("/:id/modules/:moduleId/lessons/:lessonId", coursesController.RemoveLesson)
	adminCourses.Post("/:id/modules/:moduleId/lessons/:lessonId/blocks", coursesController.AddBlock)
	adminCourses.Put("/:id/modules/:moduleId/lessons/:lessonId/blocks/:blockId", coursesController.UpdateBlock)
	adminCourses.Delete("/:id/modules/:moduleId/lessons/:lessonId/blocks/:blockId", coursesController.RemoveBlock)
	adminCourses.Post("/:id/modules/:moduleId/questions", coursesController.AddModuleQuestion)
	adminCourses.Put("/:id/modules/:moduleId/questions/:questionId", coursesController.UpdateModuleQuestion)
	adminCourses.Delete("/:id/modules/:moduleId/questions/:questionId", coursesController.RemoveModuleQuestion)
	adminCourses.Post("/:id/assignments", assignmentsController.CreateAssignment)
	adminCourses.Post("/:id/grades", gradesController.AddGrade)
}
