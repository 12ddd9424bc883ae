package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"learnhub/backend/config"
	"learnhub/backend/routes"
	"learnhub/backend/services"
	"learnhub/backend/store"
	"learnhub/backend/utils"
)

var (
	app *fiber.App
	st  store.Store
	cfg *config.Config
)

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	os.Exit(code)
}

func setup() {
	cfg = &config.Config{
		JWTSecret:    "testsecret",
		ServerPort:   "8080",
		ReminderCron: "0 8 * * *",
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}
	if err := utils.Migrate(db); err != nil {
		panic(err)
	}

	st = store.NewGormStore(db)
	logger := log.New(io.Discard, "", 0)

	gradeSvc := services.NewGradeService(st, logger)
	deps := routes.Deps{
		Progress:      services.NewProgressService(st, logger),
		Enrollments:   services.NewEnrollmentService(st, logger),
		Grades:        gradeSvc,
		Courses:       services.NewCourseService(st, logger, gradeSvc),
		Insights:      services.NewInsightsService(st, logger, gradeSvc),
		Notifications: services.NewNotificationService(st, logger),
	}

	app = fiber.New()
	routes.SetupRoutes(app, st, cfg, deps)
}

// request performs one API call and decodes the JSON body.
func request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewBuffer(jsonData)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return resp, result
}

// intID renders a decoded JSON number as a path segment.
func intID(v interface{}) string {
	return fmt.Sprintf("%.0f", v.(float64))
}

// mustID converts a path id back to its numeric form for JSON bodies.
func mustID(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

var userSeq int

// registerUser creates a user through the API and returns its token and id.
func registerUser(t *testing.T, role string) (string, uint) {
	t.Helper()
	userSeq++
	username := fmt.Sprintf("user%d", userSeq)

	resp, result := request(t, "POST", "/api/auth/register", "", map[string]interface{}{
		"username": username,
		"email":    username + "@test.local",
		"password": "hunter2hunter2",
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("register %s: status %d", username, resp.StatusCode)
	}

	token := result["token"].(string)
	id := uint(result["user"].(map[string]interface{})["id"].(float64))

	if role != "" && role != "student" {
		user, err := st.GetUser(id)
		if err != nil {
			t.Fatalf("load user %d: %v", id, err)
		}
		user.Role = role
		if err := st.SaveUser(user); err != nil {
			t.Fatalf("promote user %d: %v", id, err)
		}
	}
	return token, id
}

// buildCourse drives the authoring API: course with one module and two
// lessons, published at the end. Returns the course id plus module and
// lesson ids.
func buildCourse(t *testing.T, staffToken string) (string, string, []string) {
	t.Helper()

	_, created := request(t, "POST", "/api/admin/courses/", staffToken, map[string]interface{}{
		"title":       "Integration Course",
		"description": "end to end",
		"category":    "engineering",
		"level":       "beginner",
	})
	if created["success"] != true {
		t.Fatalf("create course: %v", created)
	}
	courseID := intID(created["data"].(map[string]interface{})["ID"])

	_, withModule := request(t, "POST", "/api/admin/courses/"+courseID+"/modules", staffToken,
		map[string]interface{}{"title": "Module One"})
	modules := withModule["data"].(map[string]interface{})["modules"].([]interface{})
	moduleID := modules[0].(map[string]interface{})["id"].(string)

	var lessonIDs []string
	for _, title := range []string{"Lesson One", "Lesson Two"} {
		_, withLesson := request(t, "POST", "/api/admin/courses/"+courseID+"/modules/"+moduleID+"/lessons",
			staffToken, map[string]interface{}{"title": title})
		modules = withLesson["data"].(map[string]interface{})["modules"].([]interface{})
		lessons := modules[0].(map[string]interface{})["lessons"].([]interface{})
		lessonIDs = lessonIDs[:0]
		for _, l := range lessons {
			lessonIDs = append(lessonIDs, l.(map[string]interface{})["id"].(string))
		}
	}

	_, published := request(t, "PUT", "/api/admin/courses/"+courseID+"/status", staffToken,
		map[string]interface{}{"status": "published"})
	if published["success"] != true {
		t.Fatalf("publish course: %v", published)
	}
	return courseID, moduleID, lessonIDs
}
