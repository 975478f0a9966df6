package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"academy/internal/handlers"
	"academy/internal/middleware"
	"academy/internal/models"
	"academy/internal/notifications"
	"academy/internal/repositories"
	"academy/internal/services"
	"academy/internal/testutil"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testAdminEmail    = "admin@academy.example"
	testAdminPassword = "password123"
)

// setupApp sets up a Fiber app for testing with SQLite and the content handlers.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewSQLiteDB(t)

	authService := services.NewAuthService(repositories.NewGORMUserRepository(db), "test_jwt_secret")
	require.NoError(t, authService.EnsureAdmin(context.Background(), testAdminEmail, testAdminPassword))

	notifier := notifications.NewDispatcher("", "Academy <noreply@academy.example>")

	eventHandler := handlers.NewEventHandler(services.NewEventService(repositories.NewGORMEventRepository(db)))
	speakerHandler := handlers.NewSpeakerHandler(services.NewSpeakerService(repositories.NewGORMSpeakerRepository(db)))
	testimonialHandler := handlers.NewTestimonialHandler(services.NewTestimonialService(repositories.NewGORMTestimonialRepository(db)))
	contactHandler := handlers.NewContactHandler(services.NewContactService(repositories.NewGORMContactRepository(db), notifier, testAdminEmail))
	orderHandler := handlers.NewOrderHandler(services.NewOrderService(repositories.NewGORMOrderRepository(db)))
	authHandler := handlers.NewAuthHandler(authService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)
	eventHandler.RegisterRoutes(apiV1)
	speakerHandler.RegisterRoutes(apiV1)
	testimonialHandler.RegisterRoutes(apiV1)
	contactHandler.RegisterRoutes(apiV1)

	admin := apiV1.Group("/admin", middleware.AuthRequired(authService))
	eventHandler.RegisterAdminRoutes(admin)
	speakerHandler.RegisterAdminRoutes(admin)
	testimonialHandler.RegisterAdminRoutes(admin)
	contactHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterRoutes(admin)
	authHandler.RegisterAdminRoutes(admin)

	return app, db
}

func jsonRequest(method, target string, body interface{}, token string) *http.Request {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func send(t *testing.T, app *fiber.App, req *http.Request, out interface{}) int {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp.StatusCode
}

func loginAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()
	var out map[string]interface{}
	status := send(t, app, jsonRequest(http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": testAdminEmail, "password": testAdminPassword}, ""), &out)
	require.Equal(t, fiber.StatusOK, status, out)
	return out["token"].(string)
}

func TestAuth_Login(t *testing.T) {
	app, _ := setupApp(t)

	var out map[string]interface{}
	status := send(t, app, jsonRequest(http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": testAdminEmail, "password": "wrong-password"}, ""), &out)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Authentication failed", out["message"])

	status = send(t, app, jsonRequest(http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "not-an-email"}, ""), &out)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", out["message"])

	assert.NotEmpty(t, loginAdmin(t, app))
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	app, _ := setupApp(t)

	status := send(t, app, jsonRequest(http.MethodGet, "/api/v1/admin/events", nil, ""), nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status = send(t, app, jsonRequest(http.MethodGet, "/api/v1/admin/events", nil, "garbage"), nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAdminRoutes_ResolveAdminIdentity(t *testing.T) {
	app, _ := setupApp(t)
	token := loginAdmin(t, app)

	var me map[string]interface{}
	status := send(t, app, jsonRequest(http.MethodGet, "/api/v1/admin/me", nil, token), &me)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, testAdminEmail, me["email"])
	assert.NotEmpty(t, me["user_id"])

	req := jsonRequest(http.MethodGet, "/api/v1/admin/me", nil, "")
	req.Header.Set("Authorization", "Basic "+token)
	assert.Equal(t, fiber.StatusUnauthorized, send(t, app, req, nil))
}

func TestAdminRoutes_RejectTokenWithoutIdentity(t *testing.T) {
	app, _ := setupApp(t)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test_jwt_secret"))
	require.NoError(t, err)

	status := send(t, app, jsonRequest(http.MethodGet, "/api/v1/admin/orders", nil, token), nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestEvents_AdminCRUDAndPublicCatalog(t *testing.T) {
	app, _ := setupApp(t)
	token := loginAdmin(t, app)

	var speaker models.Speaker
	status := send(t, app, jsonRequest(http.MethodPost, "/api/v1/admin/speakers",
		map[string]interface{}{"name": "Dr. Ada Auditor", "headline": "Lead assessor"}, token), &speaker)
	require.Equal(t, fiber.StatusCreated, status)
	require.NotEmpty(t, speaker.ID)

	startsAt := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	var course models.Event
	status = send(t, app, jsonRequest(http.MethodPost, "/api/v1/admin/events", map[string]interface{}{
		"slug":        "iso-9001-lead-auditor",
		"title":       "ISO 9001 Lead Auditor",
		"kind":        "course",
		"summary":     "Five day accredited course",
		"starts_at":   startsAt,
		"published":   true,
		"speaker_ids": []string{speaker.ID},
	}, token), &course)
	require.Equal(t, fiber.StatusCreated, status)
	require.NotEmpty(t, course.ID)

	var draft models.Event
	status = send(t, app, jsonRequest(http.MethodPost, "/api/v1/admin/events", map[string]interface{}{
		"slug":  "draft-webinar",
		"title": "Draft Webinar",
		"kind":  "webinar",
	}, token), &draft)
	require.Equal(t, fiber.StatusCreated, status)

	// Duplicate slug
	var dup map[string]interface{}
	status = send(t, app, jsonRequest(http.MethodPost, "/api/v1/admin/events", map[string]interface{}{
		"slug":  "draft-webinar",
		"title": "Another Webinar",
		"kind":  "webinar",
	}, token), &dup)
	assert.Equal(t, fiber.StatusConflict, status)

	// Unknown speaker
	status = send(t, app, jsonRequest(http.MethodPost, "/api/v1/admin/events", map[string]interface{}{
		"slug":        "ghost-course",
		"title":       "Ghost Course",
		"kind":        "course",
		"speaker_ids": []string{"missing"},
	}, token), &dup)
	assert.Equal(t, fiber.StatusBadRequest, status)

	// Invalid payload
	var invalid map[string]interface{}
	status = send(t, app, jsonRequest(http.MethodPost, "/api/v1/admin/events", map[string]interface{}{
		"slug": "Bad Slug", "title": "x", "kind": "seminar",
	}, token), &invalid)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", invalid["message"])

	// Public listing shows only published events
	var page models.Paginated[models.Event]
	status = send(t, app, jsonRequest(http.MethodGet, "/api/v1/events?kind=course&q=auditor", nil, ""), &page)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "iso-9001-lead-auditor", page.Items[0].Slug)
	require.Len(t, page.Items[0].Speakers, 1)
	assert.Equal(t, "Dr. Ada Auditor", page.Items[0].Speakers[0].Name)

	status = send(t, app, jsonRequest(http.MethodGet, "/api/v1/events?kind=seminar", nil, ""), nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	var detail models.Event
	status = send(t, app, jsonRequest(http.MethodGet, "/api/v1/events/iso-9001-lead-auditor", nil, ""), &detail)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, course.ID, detail.ID)

	status = send(t, app, jsonRequest(http.MethodGet, "/api/v1/events/draft-webinar", nil, ""), nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	// Admin listing sees both
	status = send(t, app, jsonRequest(http.MethodGet, "/api/v1/admin/events", nil, token), &page)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 2, page.Total)

	// Publish the draft, then delete the course
	status = send(t, app, jsonRequest(http.MethodPut, "/api/v1/admin/events/"+draft.ID, map[string]interface{}{
		"slug":      "draft-webinar",
		"title":     "Launch Webinar",
		"kind":      "webinar",
		"published": true,
	}, token), nil)
	require.Equal(t, fiber.StatusOK, status)

	status = send(t, app, jsonRequest(http.MethodDelete, "/api/v1/admin/events/"+course.ID, nil, token), nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status = send(t, app, jsonRequest(http.MethodDelete, "/api/v1/admin/events/"+course.ID, nil, token), nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status = send(t, app, jsonRequest(http.MethodGet, "/api/v1/events", nil, ""), &page)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Launch Webinar", page.Items[0].Title)

	status = send(t, app, jsonRequest(http.MethodPut, "/api/v1/admin/events/does-not-exist", map[string]interface{}{
		"slug": "nothing-here", "title": "Nothing Here", "kind": "course",
	}, token), nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestTestimonials_PublishedOnlyInPublicList(t *testing.T) {
	app, _ := setupApp(t)
	token := loginAdmin(t, app)

	for _, published := range []bool{true, false} {
		status := send(t, app, jsonRequest(http.MethodPost, "/api/v1/admin/testimonials", map[string]interface{}{
			"author_name": "Sam Student",
			"quote":       "The course prepared me for certification.",
			"rating":      5,
			"published":   published,
		}, token), nil)
		require.Equal(t, fiber.StatusCreated, status)
	}

	var public []models.Testimonial
	status := send(t, app, jsonRequest(http.MethodGet, "/api/v1/testimonials", nil, ""), &public)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, public, 1)

	var all []models.Testimonial
	status = send(t, app, jsonRequest(http.MethodGet, "/api/v1/admin/testimonials", nil, token), &all)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, all, 2)

	status = send(t, app, jsonRequest(http.MethodPost, "/api/v1/admin/testimonials", map[string]interface{}{
		"author_name": "Sam Student", "quote": "Great course overall!", "rating": 9,
	}, token), nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSpeakers_UpdateAndDelete(t *testing.T) {
	app, _ := setupApp(t)
	token := loginAdmin(t, app)

	var speaker models.Speaker
	require.Equal(t, fiber.StatusCreated, send(t, app, jsonRequest(http.MethodPost, "/api/v1/admin/speakers",
		map[string]interface{}{"name": "Lee Lecturer"}, token), &speaker))

	var updated models.Speaker
	status := send(t, app, jsonRequest(http.MethodPut, "/api/v1/admin/speakers/"+speaker.ID,
		map[string]interface{}{"name": "Lee Lecturer", "headline": "Quality manager", "sort_order": 2}, token), &updated)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Quality manager", updated.Headline)

	var public []models.Speaker
	require.Equal(t, fiber.StatusOK, send(t, app, jsonRequest(http.MethodGet, "/api/v1/speakers", nil, ""), &public))
	require.Len(t, public, 1)
	assert.Equal(t, 2, public[0].SortOrder)

	assert.Equal(t, fiber.StatusNoContent, send(t, app, jsonRequest(http.MethodDelete, "/api/v1/admin/speakers/"+speaker.ID, nil, token), nil))
	assert.Equal(t, fiber.StatusNotFound, send(t, app, jsonRequest(http.MethodGet, "/api/v1/admin/speakers/"+speaker.ID, nil, token), nil))
}

func TestContact_SubmitAndAdminList(t *testing.T) {
	app, _ := setupApp(t)
	token := loginAdmin(t, app)

	var out map[string]interface{}
	status := send(t, app, jsonRequest(http.MethodPost, "/api/v1/contact", map[string]interface{}{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"message": "Do you run in-house training for companies?",
	}, ""), &out)
	require.Equal(t, fiber.StatusCreated, status, out)
	assert.NotEmpty(t, out["id"])

	status = send(t, app, jsonRequest(http.MethodPost, "/api/v1/contact", map[string]interface{}{
		"name": "J", "email": "nope", "message": "hi",
	}, ""), &out)
	assert.Equal(t, fiber.StatusBadRequest, status)

	var page models.Paginated[models.ContactMessage]
	status = send(t, app, jsonRequest(http.MethodGet, "/api/v1/admin/contact?page=1&limit=5", nil, token), &page)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, 5, page.Limit)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "jane@example.com", page.Items[0].Email)
}

func TestOrders_AdminView(t *testing.T) {
	app, db := setupApp(t)
	token := loginAdmin(t, app)

	repo := repositories.NewGORMOrderRepository(db)
	order := &models.Order{CourseID: "c1", CourseName: "Test Course", CustomerName: "Jane Doe",
		CustomerEmail: "jane@example.com", CustomerPhone: "+15551234567", Amount: 29700, Currency: "USD", Status: models.OrderPending}
	require.NoError(t, repo.Create(context.Background(), order))

	var got models.Order
	status := send(t, app, jsonRequest(http.MethodGet, "/api/v1/admin/orders/"+order.ID, nil, token), &got)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, models.OrderPending, got.Status)

	status = send(t, app, jsonRequest(http.MethodGet, "/api/v1/admin/orders/missing", nil, token), nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}
