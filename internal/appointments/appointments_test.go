package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aldoetobex/legal-practice-backend/internal/apitest"
	"github.com/aldoetobex/legal-practice-backend/pkg/database/dbtest"
	"github.com/aldoetobex/legal-practice-backend/pkg/models"
)

func newTestApp(db *gorm.DB) *fiber.App {
	h := NewHandler(db)
	app := apitest.NewApp()
	app.Post("/api/appointments", h.Create)
	app.Get("/api/appointments", h.List)
	app.Get("/api/appointments/lawyer/:lawyer_id", h.ListByLawyer)
	return app
}

func seedLawyer(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	l := models.Lawyer{FirstName: "Ann", LastName: "Perkins", Mobile: "1", Email: "ann@x.io", Country: "US", LawyerType: "Civil"}
	require.NoError(t, db.Create(&l).Error)
	return l.ID
}

func booking(lawyerID uint, client, at string) map[string]any {
	return map[string]any{
		"clientName": client,
		"duration":   "30 minutes",
		"dateTime":   at,
		"bookedOn":   "2025-08-10T09:15:00Z",
		"lawyer_id":  lawyerID,
	}
}

func TestCustomID(t *testing.T) {
	assert.Equal(t, "A001", CustomID(1))
	assert.Equal(t, "A042", CustomID(42))
	assert.Equal(t, "A1234", CustomID(1234))
}

func TestCreate(t *testing.T) {
	db := dbtest.Open(t)
	app := newTestApp(db)
	lawyerID := seedLawyer(t, db)

	res := apitest.Do(t, app, "POST", "/api/appointments", booking(lawyerID, "John Doe", "2025-08-15T14:30:00+02:00"))
	require.Equal(t, 200, res.Code, res.Message)
	assert.Equal(t, "Appointment created successfully", res.Message)

	var a models.Appointment
	require.NoError(t, db.First(&a).Error)
	assert.True(t, a.DateTime.Equal(time.Date(2025, 8, 15, 12, 30, 0, 0, time.UTC)))
	assert.Equal(t, lawyerID, a.LawyerID)
}

func TestCreate_UnknownLawyer(t *testing.T) {
	db := dbtest.Open(t)
	res := apitest.Do(t, newTestApp(db), "POST", "/api/appointments", booking(77, "John", "2025-08-15T14:30:00Z"))
	assert.Equal(t, 404, res.Code)
	assert.Equal(t, "Lawyer not found", res.Message)
}

func TestCreate_Validation(t *testing.T) {
	app := newTestApp(dbtest.Open(t))
	body := booking(0, "", "tomorrow")

	res := apitest.Do(t, app, "POST", "/api/appointments", body)
	assert.Equal(t, 400, res.Code)
	assert.Contains(t, res.Errors, "clientName")
	assert.Contains(t, res.Errors, "dateTime")
	assert.Contains(t, res.Errors, "lawyer_id")
}

func TestList_Filters(t *testing.T) {
	db := dbtest.Open(t)
	app := newTestApp(db)
	a := seedLawyer(t, db)
	b := seedLawyer(t, db)
	for _, body := range []map[string]any{
		booking(a, "John Doe", "2025-08-15T09:00:00Z"),
		booking(a, "Jane Roe", "2025-08-15T23:59:00Z"),
		booking(b, "Johnny Bravo", "2025-08-16T00:00:00Z"),
	} {
		require.Equal(t, 200, apitest.Do(t, app, "POST", "/api/appointments", body).Code)
	}

	res := apitest.Do(t, app, "GET", "/api/appointments?date=2025-08-15", nil)
	require.Equal(t, 200, res.Code)
	var got []View
	res.Into(t, &got)
	require.Len(t, got, 2)
	assert.Equal(t, "A001", got[0].CustomID)
	assert.Equal(t, "A002", got[1].CustomID)

	day := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	rows, err := NewRepository(db).List(context.Background(), Filters{ClientName: "JOHN", Day: &day}, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "John Doe", rows[0].ClientName)

	res = apitest.Do(t, app, "GET", "/api/appointments?clientName=john&lawyer_id=2", nil)
	require.Equal(t, 200, res.Code)
	res.Into(t, &got)
	require.Len(t, got, 1)
	assert.Equal(t, "Johnny Bravo", got[0].ClientName)

	assert.Equal(t, 400, apitest.Do(t, app, "GET", "/api/appointments?date=15-08-2025", nil).Code)
	assert.Equal(t, 400, apitest.Do(t, app, "GET", "/api/appointments?lawyer_id=x", nil).Code)
}

func TestListByLawyer(t *testing.T) {
	db := dbtest.Open(t)
	app := newTestApp(db)
	a := seedLawyer(t, db)
	for i := 0; i < 12; i++ {
		require.Equal(t, 200, apitest.Do(t, app, "POST", "/api/appointments", booking(a, "C", "2025-09-01T10:00:00Z")).Code)
	}

	res := apitest.Do(t, app, "GET", "/api/appointments/lawyer/1", nil)
	require.Equal(t, 200, res.Code)
	assert.Equal(t, "Appointments for lawyer_id 1 fetched successfully", res.Message)
	var got []View
	res.Into(t, &got)
	assert.Len(t, got, 12)

	res = apitest.Do(t, app, "GET", "/api/appointments/lawyer/abc", nil)
	assert.Equal(t, 400, res.Code)
}
