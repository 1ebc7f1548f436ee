package cases

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aldoetobex/legal-practice-backend/internal/apitest"
	"github.com/aldoetobex/legal-practice-backend/internal/clients"
	"github.com/aldoetobex/legal-practice-backend/pkg/database/dbtest"
	"github.com/aldoetobex/legal-practice-backend/pkg/models"
)

/* ============================================================================
   Helpers
   ============================================================================ */

func newTestApp(db *gorm.DB) *fiber.App {
	h := NewHandler(db, clients.NewRepository(db))
	app := apitest.NewApp()
	app.Post("/api/cases", h.Create)
	app.Post("/api/cases/client_id", h.CreateByClientID)
	app.Get("/api/cases", h.List)
	app.Get("/api/cases/export", h.Export)
	app.Get("/api/cases/:id", h.Get)
	app.Patch("/api/cases/:id", h.Update)
	app.Delete("/api/cases/:id", h.Delete)
	return app
}

func seedLawyer(t *testing.T, db *gorm.DB, id uint, first, last string) uint {
	t.Helper()
	l := models.Lawyer{ID: id, FirstName: first, LastName: last, Mobile: "555", Email: first + "@firm.com", Country: "US", LawyerType: "Civil"}
	require.NoError(t, db.Create(&l).Error)
	return l.ID
}

func seedClient(t *testing.T, db *gorm.DB, id, lawyerID uint) uint {
	t.Helper()
	cl := models.Client{
		ID: id, ClientType: "Individual", FirstName: "Jane", LastName: "Smith", Email: "jane@smith.com",
		PhoneNumber: "555-0100", StreetAddress: "1 Main", City: "NYC", State: "NY", ZipCode: "10001",
		Country: "US", AssignedLawyerID: lawyerID, Priority: "High",
	}
	require.NoError(t, db.Create(&cl).Error)
	return cl.ID
}

func seedCase(t *testing.T, db *gorm.DB, title, number string) uint {
	t.Helper()
	cs := models.Case{
		CaseTitle: title, CaseNumber: number, CaseType: "Civil", Jurisdiction: "NY", Priority: "Low",
		FillingDate: datatypes.Date(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	id, err := NewRepository(db).CreateCase(context.Background(), &cs)
	require.NoError(t, err)
	return id
}

func snapshotCase(number int) map[string]any {
	return map[string]any{
		"caseTitle":     "Acme v. Widget",
		"caseNumber":    number,
		"caseType":      "Commercial",
		"jurisdiction":  "CA",
		"priority":      "Medium",
		"fillingDate":   "2025-03-04",
		"clientName":    "Wile E. Coyote",
		"clientCompany": "Desert Holdings",
		"clientEmail":   "wile@desert.io",
		"clientPhone":   "+1 555 0199",
	}
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func count(t *testing.T, db *gorm.DB, model any, where ...any) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

/* ============================================================================
   Creation
   ============================================================================ */

func TestCreate_SnapshotModeStoresClientFields(t *testing.T) {
	db := dbtest.Open(t)
	app := newTestApp(db)

	res := apitest.Do(t, app, "POST", "/api/cases", snapshotCase(1001))
	require.Equal(t, 200, res.Code, res.Message)
	assert.True(t, res.Status)
	assert.Equal(t, "Case created successfully", res.Message)

	var out CreatedCase
	res.Into(t, &out)
	assert.Equal(t, "1001", out.CaseNumber)

	var cs models.Case
	require.NoError(t, db.First(&cs, out.CaseID).Error)
	assert.Nil(t, cs.ClientID)
	require.NotNil(t, cs.ClientName)
	assert.Equal(t, "Wile E. Coyote", *cs.ClientName)
	assert.Equal(t, "Desert Holdings", *cs.ClientCompany)
	assert.Equal(t, "wile@desert.io", *cs.ClientEmail)
	assert.Equal(t, "+1 555 0199", *cs.ClientPhone)
	assert.Nil(t, cs.ClientAddress)
	assert.Equal(t, models.CaseOpen, cs.Status)
	assert.Equal(t, "2025-03-04", time.Time(cs.FillingDate).Format("2006-01-02"))
}

func TestCreate_SnapshotFieldsStoredVerbatim(t *testing.T) {
	db := dbtest.Open(t)
	body := snapshotCase(1004)
	body["clientName"] = "  Wile E. Coyote "
	body["clientAddress"] = "12 Mesa Rd\n"

	res := apitest.Do(t, newTestApp(db), "POST", "/api/cases", body)
	require.Equal(t, 200, res.Code, res.Message)

	var cs models.Case
	require.NoError(t, db.First(&cs).Error)
	assert.Equal(t, "  Wile E. Coyote ", *cs.ClientName)
	assert.Equal(t, "12 Mesa Rd\n", *cs.ClientAddress)
}

func TestCreate_SnapshotModeRequiresContactFields(t *testing.T) {
	db := dbtest.Open(t)
	app := newTestApp(db)

	body := snapshotCase(1)
	delete(body, "clientEmail")
	body["clientPhone"] = "  "

	res := apitest.Do(t, app, "POST", "/api/cases", body)
	assert.Equal(t, 400, res.Code)
	assert.False(t, res.Status)
	assert.Contains(t, res.Errors, "clientEmail")
	assert.Contains(t, res.Errors, "clientPhone")
	assert.NotContains(t, res.Errors, "clientName")
	assert.Zero(t, count(t, db, &models.Case{}))
}

func TestCreate_LinkedModeClearsSnapshot(t *testing.T) {
	db := dbtest.Open(t)
	app := newTestApp(db)
	clientID := seedClient(t, db, 0, seedLawyer(t, db, 0, "Kim", "Wexler"))

	body := snapshotCase(1002)
	body["clientId"] = clientID
	res := apitest.Do(t, app, "POST", "/api/cases", body)
	require.Equal(t, 200, res.Code, res.Message)

	var out CreatedCase
	res.Into(t, &out)
	var cs models.Case
	require.NoError(t, db.First(&cs, out.CaseID).Error)
	require.NotNil(t, cs.ClientID)
	assert.Equal(t, clientID, *cs.ClientID)
	assert.Nil(t, cs.ClientName)
	assert.Nil(t, cs.ClientEmail)
}

func TestCreate_LinkedModeUnknownClient(t *testing.T) {
	db := dbtest.Open(t)
	app := newTestApp(db)

	body := snapshotCase(1003)
	body["clientId"] = 404
	res := apitest.Do(t, app, "POST", "/api/cases", body)
	assert.Equal(t, 404, res.Code)
	assert.Equal(t, "Client not found", res.Message)
	assert.Zero(t, count(t, db, &models.Case{}))
}

func TestCreate_ExampleScenarioAttachesTeam(t *testing.T) {
	db := dbtest.Open(t)
	app := newTestApp(db)
	seedLawyer(t, db, 1, "Other", "Lawyer")
	seedLawyer(t, db, 2, "Harvey", "Specter")
	seedLawyer(t, db, 3, "Mike", "Ross")
	seedClient(t, db, 7, 2)

	res := apitest.Do(t, app, "POST", "/api/cases", map[string]any{
		"caseTitle":       "Smith v. Jones",
		"caseNumber":      1001,
		"caseType":        "Civil",
		"jurisdiction":    "NY",
		"priority":        "High",
		"fillingDate":     "2025-01-01",
		"caseDescription": "...",
		"clientId":        7,
		"lawyers":         []uint{2, 3},
	})
	require.Equal(t, 200, res.Code, res.Message)
	var out CreatedCase
	res.Into(t, &out)
	require.NotZero(t, out.CaseID)

	detail, err := NewRepository(db).GetCaseByID(context.Background(), out.CaseID)
	require.NoError(t, err)
	assert.Equal(t, []TeamLawyer{
		{ID: 2, FirstName: "Harvey", LastName: "Specter"},
		{ID: 3, FirstName: "Mike", LastName: "Ross"},
	}, detail.Lawyers)

	res = apitest.Do(t, app, "GET", "/api/cases/"+itoa(out.CaseID), nil)
	require.Equal(t, 200, res.Code)
	var got map[string]any
	res.Into(t, &got)
	assert.Equal(t, "Smith v. Jones", got["caseTitle"])
	assert.Len(t, got["lawyers"], 2)
}

func TestCreate_DuplicateCaseNumberConflicts(t *testing.T) {
	db := dbtest.Open(t)
	app := newTestApp(db)

	require.Equal(t, 200, apitest.Do(t, app, "POST", "/api/cases", snapshotCase(77)).Code)
	res := apitest.Do(t, app, "POST", "/api/cases", snapshotCase(77))
	assert.Equal(t, 409, res.Code)
	assert.False(t, res.Status)
	assert.Equal(t, "Case number already exists", res.Message)
}

func TestCreate_MissingLawyerRollsBackCase(t *testing.T) {
	db := dbtest.Open(t)
	app := newTestApp(db)
	seedLawyer(t, db, 1, "Only", "One")

	body := snapshotCase(500)
	body["lawyers"] = []uint{1, 99}
	res := apitest.Do(t, app, "POST", "/api/cases", body)
	assert.Equal(t, 404, res.Code)
	assert.Zero(t, count(t, db, &models.Case{}))
	assert.Zero(t, count(t, db, &models.CaseLawyer{}))
}

func TestCreate_Validation(t *testing.T) {
	app := newTestApp(dbtest.Open(t))

	body := snapshotCase(0)
	body["fillingDate"] = "03/04/2025"
	body["status"] = "active"
	delete(body, "caseTitle")

	res := apitest.Do(t, app, "POST", "/api/cases", body)
	assert.Equal(t, 400, res.Code)
	assert.Contains(t, res.Errors, "caseNumber")
	assert.Contains(t, res.Errors, "fillingDate")
	assert.Contains(t, res.Errors, "status")
	assert.Contains(t, res.Errors, "caseTitle")
}

func TestCreateByClientID(t *testing.T) {
	db := dbtest.Open(t)
	app := newTestApp(db)
	lawyerID := seedLawyer(t, db, 0, "Saul", "Goodman")
	clientID := seedClient(t, db, 0, lawyerID)

	res := apitest.Do(t, app, "POST", "/api/cases/client_id", map[string]any{
		"clientId":        clientID,
		"caseTitle":       "Estate of Smith",
		"caseNumberInput": 42,
		"caseType":        "Probate",
		"jurisdiction":    "NM",
		"priority":        "Low",
		"fillingDate":     "2025-02-10",
		"caseDescription": "Contested will",
		"additionalDetails": map[string]any{
			"opposingParty":      "Jones Family Trust",
			"estimatedCaseValue": 125000.5,
		},
		"lawyers": []uint{lawyerID},
	})
	require.Equal(t, 200, res.Code, res.Message)
	assert.Equal(t, "Case created successfully linked to client", res.Message)

	var out CreatedCase
	res.Into(t, &out)
	assert.Equal(t, "CASE-42", out.CaseNumber)

	var cs models.Case
	require.NoError(t, db.First(&cs, out.CaseID).Error)
	assert.Equal(t, models.CaseActive, cs.Status)
	assert.Equal(t, clientID, *cs.ClientID)
	assert.Nil(t, cs.ClientName)
	assert.Equal(t, "Jones Family Trust", *cs.OpposingParty)
	assert.Nil(t, cs.OpposingCounsel)
	assert.InDelta(t, 125000.5, *cs.EstimatedCaseValue, 0.001)
	assert.Equal(t, int64(1), count(t, db, &models.CaseLawyer{}, "case_id = ?", out.CaseID))
}

func TestCreateByClientID_UnknownClientWritesNothing(t *testing.T) {
	db := dbtest.Open(t)
	app := newTestApp(db)

	res := apitest.Do(t, app, "POST", "/api/cases/client_id", map[string]any{
		"clientId": 9, "caseTitle": "X", "caseNumberInput": "A1", "caseType": "Civil",
		"jurisdiction": "NY", "priority": "Low", "fillingDate": "2025-01-01", "caseDescription": "d",
	})
	assert.Equal(t, 404, res.Code)
	assert.Equal(t, "Client not found", res.Message)
	assert.Zero(t, count(t, db, &models.Case{}))
}

func TestCreateByClientID_MissingFields(t *testing.T) {
	app := newTestApp(dbtest.Open(t))

	res := apitest.Do(t, app, "POST", "/api/cases/client_id", map[string]any{"clientId": 1})
	assert.Equal(t, 400, res.Code)
	assert.Equal(t, "Missing required fields", res.Message)
	assert.Contains(t, res.Errors, "caseNumberInput")
	assert.Contains(t, res.Errors, "caseDescription")
}

func TestCreateByClientID_RejectsBlankDescriptionAndNegativeValue(t *testing.T) {
	db := dbtest.Open(t)
	app := newTestApp(db)
	clientID := seedClient(t, db, 0, seedLawyer(t, db, 0, "Saul", "Goodman"))

	res := apitest.Do(t, app, "POST", "/api/cases/client_id", map[string]any{
		"clientId": clientID, "caseTitle": "X", "caseNumberInput": "B2", "caseType": "Civil",
		"jurisdiction": "NY", "priority": "Low", "fillingDate": "2025-01-01", "caseDescription": "  ",
		"additionalDetails": map[string]any{"estimatedCaseValue": -1},
	})
	assert.Equal(t, 400, res.Code)
	assert.Contains(t, res.Errors, "caseDescription")
	assert.Contains(t, res.Errors, "estimatedCaseValue")
	assert.Zero(t, count(t, db, &models.Case{}))
}

func TestCaseNumberInput_StringOrNumber(t *testing.T) {
	for raw, want := range map[string]CaseNumberInput{
		`"  ab-7 "`: "ab-7",
		`1001`:      "1001",
		`null`:      "",
	} {
		var n CaseNumberInput
		require.NoError(t, n.UnmarshalJSON([]byte(raw)), raw)
		assert.Equal(t, want, n, raw)
	}
	var n CaseNumberInput
	assert.Error(t, n.UnmarshalJSON([]byte(`{"x":1}`)))
}

func TestResolveClientRef(t *testing.T) {
	id := uint(5)
	name := "Ann"
	ref, missing := ResolveClientRef(&id, &name, nil, nil, nil, nil)
	assert.Empty(t, missing)
	assert.Equal(t, LinkedClient{ID: 5}, ref)

	email, phone, blankCompany := "a@b.c", "555-1234", " "
	ref, missing = ResolveClientRef(nil, &name, &blankCompany, &email, &phone, nil)
	assert.Empty(t, missing)
	snap, ok := ref.(SnapshotClient)
	require.True(t, ok)
	require.NotNil(t, snap.Company)
	assert.Equal(t, " ", *snap.Company)
	assert.Equal(t, "Ann", snap.Name)

	_, missing = ResolveClientRef(nil, nil, nil, &email, nil, nil)
	assert.Equal(t, []string{"clientName", "clientPhone"}, missing)
}

/* ============================================================================
   Repository
   ============================================================================ */

func TestAddLawyersToCase_EmptyIsNoop(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	caseID := seedCase(t, db, "Empty team", "E-1")

	require.NoError(t, repo.AddLawyersToCase(context.Background(), caseID, nil))
	require.NoError(t, repo.AddLawyersToCase(context.Background(), caseID, []uint{}))
	assert.Zero(t, count(t, db, &models.CaseLawyer{}))
}

func TestAddLawyersToCase_DedupesAndRejectsRepeats(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()
	caseID := seedCase(t, db, "Team", "T-1")
	a := seedLawyer(t, db, 0, "A", "A")

	require.NoError(t, repo.AddLawyersToCase(ctx, caseID, []uint{a, a}))
	assert.Equal(t, int64(1), count(t, db, &models.CaseLawyer{}))

	err := repo.AddLawyersToCase(ctx, caseID, []uint{a})
	assert.ErrorIs(t, err, ErrAlreadyOnTeam)

	err = repo.AddLawyersToCase(ctx, caseID, []uint{999})
	assert.ErrorIs(t, err, ErrReferenceNotFound)
}

func TestGetAllCases_TitleFilterAndPagination(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()
	seedCase(t, db, "Contract dispute", "C-1")
	seedCase(t, db, "Tort claim", "C-2")
	seedCase(t, db, "Breach of CONTRACT", "C-3")
	seedCase(t, db, "contract renewal", "C-4")

	all, err := repo.GetAllCases(ctx, Filters{CaseTitle: "contract"}, Pagination{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, cs := range all {
		assert.NotEqual(t, "Tort claim", cs.CaseTitle)
	}

	page1, err := repo.GetAllCases(ctx, Filters{CaseTitle: "contract"}, Pagination{Limit: 2})
	require.NoError(t, err)
	page2, err := repo.GetAllCases(ctx, Filters{CaseTitle: "contract"}, Pagination{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page1, 2)
	assert.Len(t, page2, 1)
	assert.NotContains(t, []uint{page1[0].ID, page1[1].ID}, page2[0].ID)

	app := newTestApp(db)
	res := apitest.Do(t, app, "GET", "/api/cases?caseTitle=CONTRACT&limit=1&page=3", nil)
	require.Equal(t, 200, res.Code)
	var got []models.Case
	res.Into(t, &got)
	assert.Len(t, got, 1)
}

func TestGetAllCases_WildcardsMatchLiterally(t *testing.T) {
	db := dbtest.Open(t)
	seedCase(t, db, "Fee dispute 50 percent", "W-1")
	seedCase(t, db, "Aaxb claim", "W-2")
	seedCase(t, db, "Split 50% liability", "W-3")
	seedCase(t, db, "Ref a_b appeal", "W-4")
	app := newTestApp(db)

	for query, want := range map[string]string{
		"%25": "Split 50% liability",
		"a_b": "Ref a_b appeal",
	} {
		res := apitest.Do(t, app, "GET", "/api/cases?caseTitle="+query, nil)
		require.Equal(t, 200, res.Code)
		var got []models.Case
		res.Into(t, &got)
		require.Len(t, got, 1, query)
		assert.Equal(t, want, got[0].CaseTitle)
	}
}

func TestGetCaseByID_NotFound(t *testing.T) {
	db := dbtest.Open(t)
	_, err := NewRepository(db).GetCaseByID(context.Background(), 12)
	assert.ErrorIs(t, err, ErrCaseNotFound)

	res := apitest.Do(t, newTestApp(db), "GET", "/api/cases/12", nil)
	assert.Equal(t, 404, res.Code)
	assert.Equal(t, "Case not found", res.Message)
}

func TestUpdateCaseByID_EmptyIsRejected(t *testing.T) {
	db := dbtest.Open(t)
	_, err := NewRepository(db).UpdateCaseByID(context.Background(), 1, map[string]any{})
	assert.ErrorIs(t, err, ErrNoFields)

	seedCase(t, db, "Some case", "U-1")
	res := apitest.Do(t, newTestApp(db), "PATCH", "/api/cases/1", map[string]any{"clientId": 3})
	assert.Equal(t, 400, res.Code)
	assert.Equal(t, "No valid fields provided for update", res.Message)
}

/* ============================================================================
   Update / delete
   ============================================================================ */

func TestUpdate(t *testing.T) {
	db := dbtest.Open(t)
	app := newTestApp(db)
	snapID := seedCase(t, db, "Snapshot case", "S-1")
	linked := snapshotCase(2)
	linked["clientId"] = seedClient(t, db, 0, seedLawyer(t, db, 0, "L", "L"))
	require.Equal(t, 200, apitest.Do(t, app, "POST", "/api/cases", linked).Code)
	seedCase(t, db, "Other", "S-3")

	res := apitest.Do(t, app, "PATCH", "/api/cases/2", map[string]any{"clientName": "New name"})
	assert.Equal(t, 400, res.Code)

	res = apitest.Do(t, app, "PATCH", "/api/cases/"+itoa(snapID), map[string]any{
		"clientName":  "New name",
		"status":      "closed",
		"fillingDate": "2024-12-31",
	})
	require.Equal(t, 200, res.Code, res.Message)
	assert.Equal(t, "Case updated successfully", res.Message)

	var cs models.Case
	require.NoError(t, db.First(&cs, snapID).Error)
	assert.Equal(t, "New name", *cs.ClientName)
	assert.Equal(t, models.CaseClosed, cs.Status)
	assert.Equal(t, "2024-12-31", time.Time(cs.FillingDate).Format("2006-01-02"))
	assert.Equal(t, "Snapshot case", cs.CaseTitle)

	res = apitest.Do(t, app, "PATCH", "/api/cases/"+itoa(snapID), map[string]any{"caseTitle": "   "})
	assert.Equal(t, 400, res.Code)
	assert.Contains(t, res.Errors, "caseTitle")
	require.NoError(t, db.First(&cs, snapID).Error)
	assert.Equal(t, "Snapshot case", cs.CaseTitle)

	res = apitest.Do(t, app, "PATCH", "/api/cases/"+itoa(snapID), map[string]any{"caseNumber": "S-3"})
	assert.Equal(t, 409, res.Code)

	res = apitest.Do(t, app, "PATCH", "/api/cases/99", map[string]any{"caseTitle": "x"})
	assert.Equal(t, 404, res.Code)
	assert.Equal(t, "Case not found or no changes made", res.Message)

	res = apitest.Do(t, app, "PATCH", "/api/cases/99", map[string]any{"clientEmail": "x@y.z"})
	assert.Equal(t, 404, res.Code)
}

func TestDeleteCase_CascadesChildren(t *testing.T) {
	db := dbtest.Open(t)
	app := newTestApp(db)
	caseID := seedCase(t, db, "Doomed", "D-1")
	keepID := seedCase(t, db, "Survivor", "D-2")
	a := seedLawyer(t, db, 0, "A", "A")
	b := seedLawyer(t, db, 0, "B", "B")
	require.NoError(t, NewRepository(db).AddLawyersToCase(context.Background(), caseID, []uint{a, b}))

	for _, id := range []uint{caseID, keepID} {
		require.NoError(t, db.Create(&[]models.CaseComment{{CaseID: id, Comment: "one"}, {CaseID: id, Comment: "two"}}).Error)
		require.NoError(t, db.Create(&models.CaseNote{CaseID: id, Title: "t", Description: "d"}).Error)
		require.NoError(t, db.Create(&models.CaseFile{CaseID: id, Filename: "a.pdf", FileURL: "/uploads/a.pdf"}).Error)
	}

	res := apitest.Do(t, app, "DELETE", "/api/cases/"+itoa(caseID), nil)
	require.Equal(t, 200, res.Code)
	assert.Equal(t, "Case deleted successfully", res.Message)

	assert.Zero(t, count(t, db, &models.CaseComment{}, "case_id = ?", caseID))
	assert.Zero(t, count(t, db, &models.CaseNote{}, "case_id = ?", caseID))
	assert.Zero(t, count(t, db, &models.CaseFile{}, "case_id = ?", caseID))
	assert.Zero(t, count(t, db, &models.CaseLawyer{}, "case_id = ?", caseID))
	assert.Equal(t, int64(2), count(t, db, &models.CaseComment{}, "case_id = ?", keepID))
	assert.Equal(t, int64(2), count(t, db, &models.Lawyer{}))

	res = apitest.Do(t, app, "DELETE", "/api/cases/"+itoa(caseID), nil)
	assert.Equal(t, 404, res.Code)
	assert.Equal(t, "Case not found", res.Message)
}

func TestDeletingLawyerKeepsCase(t *testing.T) {
	db := dbtest.Open(t)
	caseID := seedCase(t, db, "Kept", "K-1")
	gone := seedLawyer(t, db, 0, "Gone", "Lawyer")
	stays := seedLawyer(t, db, 0, "Stays", "Lawyer")
	require.NoError(t, NewRepository(db).AddLawyersToCase(context.Background(), caseID, []uint{gone, stays}))
	require.NoError(t, db.Create(&models.CaseComment{CaseID: caseID, Comment: "still here"}).Error)

	require.NoError(t, db.Delete(&models.Lawyer{}, gone).Error)

	detail, err := NewRepository(db).GetCaseByID(context.Background(), caseID)
	require.NoError(t, err)
	require.Len(t, detail.Lawyers, 1)
	assert.Equal(t, stays, detail.Lawyers[0].ID)
	assert.Equal(t, int64(1), count(t, db, &models.CaseComment{}, "case_id = ?", caseID))
}

func TestDeletingClientLeavesCaseUnlinked(t *testing.T) {
	db := dbtest.Open(t)
	app := newTestApp(db)
	clientID := seedClient(t, db, 0, seedLawyer(t, db, 0, "L", "L"))
	body := snapshotCase(3)
	body["clientId"] = clientID
	require.Equal(t, 200, apitest.Do(t, app, "POST", "/api/cases", body).Code)

	require.NoError(t, db.Delete(&models.Client{}, clientID).Error)

	var cs models.Case
	require.NoError(t, db.First(&cs).Error)
	assert.Nil(t, cs.ClientID)

	linked, err := NewRepository(db).IsLinked(context.Background(), cs.ID)
	require.NoError(t, err)
	assert.False(t, linked)
}

/* ============================================================================
   Export
   ============================================================================ */

func TestExport(t *testing.T) {
	db := dbtest.Open(t)
	app := newTestApp(db)
	seedCase(t, db, "Contract dispute", "X-1")
	seedCase(t, db, "Tort claim", "X-2")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/cases/export?caseTitle=contract", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "X-1", rows[1][1])
	assert.Equal(t, "Contract dispute", rows[1][2])
	assert.Equal(t, "2025-01-01", rows[1][7])
}
