package apiv1

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"talentflow-backend/db/dbtest"
	"talentflow-backend/lib/analytics"
	assessmenthandler "talentflow-backend/lib/assessment"
	candidatehandler "talentflow-backend/lib/candidate"
	xlsexport "talentflow-backend/lib/export/xls"
	gpthandler "talentflow-backend/lib/gpt"
	jobhandler "talentflow-backend/lib/job"
	responsehandler "talentflow-backend/lib/response"
	"talentflow-backend/models"
	apimodels "talentflow-backend/models/api"
	analyticsapimodels "talentflow-backend/models/api/analytics"
	assessmentapimodels "talentflow-backend/models/api/assessment"
	candidateapimodels "talentflow-backend/models/api/candidate"
	jobapimodels "talentflow-backend/models/api/job"
	responseapimodels "talentflow-backend/models/api/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func initHandlers(t *testing.T) *gorm.DB {
	conn := dbtest.New(t)
	xlsexport.Instance = xlsexport.NewInstance()
	jobhandler.Instance = jobhandler.NewInstance(conn)
	candidatehandler.Instance = candidatehandler.NewInstance(conn, nil)
	assessmenthandler.Instance = assessmenthandler.NewInstance(conn, "/published/", nil)
	responsehandler.Instance = responsehandler.NewInstance(conn, xlsexport.Instance, nil, "")
	gpthandler.Instance = gpthandler.NewInstance(nil, nil, nil)
	analytics.Instance = analytics.NewInstance(conn, xlsexport.Instance)
	return conn
}

func newTestApp() *fiber.App {
	app := fiber.New()
	api := app.Group("/api/v1")
	InitJobApiRouters(api, Latency{})
	InitCandidateApiRouters(api, Latency{})
	InitAssessmentApiRouters(api, Latency{})
	InitResponseApiRouters(api, Latency{})
	InitPublicApiRouters(api)
	InitAiApiRouters(api)
	InitAnalyticsApiRouters(api)
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch v := body.(type) {
		case string:
			reader = bytes.NewBufferString(v)
		default:
			data, err := json.Marshal(v)
			require.NoError(t, err)
			reader = bytes.NewBuffer(data)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode
}

func TestJobApi(t *testing.T) {
	initHandlers(t)
	app := newTestApp()

	var first, second jobapimodels.JobView
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/v1/jobs",
		jobapimodels.JobData{Title: "Senior Go Developer", Tags: []string{"backend"}}, &first))
	require.Equal(t, "senior-go-developer", first.Slug)
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/v1/jobs",
		jobapimodels.JobData{Title: "Designer"}, &second))

	t.Run(`duplicate slug`, func(t *testing.T) {
		var resp apimodels.Response
		require.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/v1/jobs",
			jobapimodels.JobData{Title: "Senior Go Developer"}, &resp))
		require.Equal(t, apimodels.StatusFail, resp.Status)
		require.NotEmpty(t, resp.Message)
	})

	t.Run(`missing title`, func(t *testing.T) {
		require.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/v1/jobs", jobapimodels.JobData{}, nil))
	})

	t.Run(`malformed body`, func(t *testing.T) {
		require.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/v1/jobs", "{", nil))
	})

	t.Run(`list and count`, func(t *testing.T) {
		var page struct {
			Data       []jobapimodels.JobView `json:"data"`
			Pagination struct {
				Total int `json:"total"`
			} `json:"pagination"`
		}
		require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/jobs?search=go&tags=backend", nil, &page))
		require.Equal(t, 1, page.Pagination.Total)
		require.Equal(t, first.ID, page.Data[0].ID)

		var count jobapimodels.CountView
		require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/jobs/count", nil, &count))
		require.Equal(t, int64(2), count.Count)
	})

	t.Run(`get`, func(t *testing.T) {
		require.Equal(t, http.StatusBadRequest, call(t, app, http.MethodGet, "/api/v1/jobs/abc", nil, nil))
		require.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/v1/jobs/999", nil, nil))
		var job jobapimodels.JobView
		require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/jobs/"+strconv.Itoa(first.ID), nil, &job))
		require.Equal(t, first.Title, job.Title)
	})

	t.Run(`reorder is not captured by id route`, func(t *testing.T) {
		var msg jobapimodels.MessageView
		require.Equal(t, http.StatusOK, call(t, app, http.MethodPut, "/api/v1/jobs/reorder", jobapimodels.ReorderRequest{
			Items: []jobapimodels.ReorderItem{{ID: first.ID, Order: 2}, {ID: second.ID, Order: 1}},
		}, &msg))
		var job jobapimodels.JobView
		require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/jobs/"+strconv.Itoa(second.ID), nil, &job))
		require.Equal(t, 1, job.Order)
	})

	t.Run(`toggle status`, func(t *testing.T) {
		var job jobapimodels.JobView
		require.Equal(t, http.StatusOK, call(t, app, http.MethodPut, "/api/v1/jobs/"+strconv.Itoa(first.ID)+"/toggle-status", nil, &job))
		require.Equal(t, models.JobStatusArchived, job.Status)
	})

	t.Run(`delete`, func(t *testing.T) {
		require.Equal(t, http.StatusOK, call(t, app, http.MethodDelete, "/api/v1/jobs/"+strconv.Itoa(second.ID), nil, nil))
		require.Equal(t, http.StatusNotFound, call(t, app, http.MethodDelete, "/api/v1/jobs/"+strconv.Itoa(second.ID), nil, nil))
	})
}

func TestCandidateApi(t *testing.T) {
	initHandlers(t)
	app := newTestApp()

	var created candidateapimodels.CandidateView
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/v1/candidates", candidateapimodels.CandidateData{
		Name: "Ann Lee", Email: "ann@example.com", JobID: 3, Stage: models.CandidateStageApplied,
	}, &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/v1/candidates", candidateapimodels.CandidateData{
		Name: "Bob Stone", Email: "bob@example.com", JobID: 4, Stage: models.CandidateStageTech,
	}, nil))

	t.Run(`invalid stage`, func(t *testing.T) {
		require.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/v1/candidates", candidateapimodels.CandidateData{
			Name: "X", Email: "x@example.com", JobID: 3, Stage: "interview",
		}, nil))
		require.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPatch, "/api/v1/candidates/"+created.ID,
			map[string]string{"stage": "interview"}, nil))
	})

	t.Run(`list filters by job and stage`, func(t *testing.T) {
		var page struct {
			Data []candidateapimodels.CandidateView `json:"data"`
		}
		require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/candidates?jobId=3", nil, &page))
		require.Len(t, page.Data, 1)
		require.Equal(t, created.ID, page.Data[0].ID)

		require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/candidates?stage=tech", nil, &page))
		require.Len(t, page.Data, 1)
		require.Equal(t, "Bob Stone", page.Data[0].Name)

		require.Equal(t, http.StatusBadRequest, call(t, app, http.MethodGet, "/api/v1/candidates?jobId=x", nil, nil))
	})

	t.Run(`patch without stage keeps candidate`, func(t *testing.T) {
		var view candidateapimodels.CandidateView
		require.Equal(t, http.StatusOK, call(t, app, http.MethodPatch, "/api/v1/candidates/"+created.ID, nil, &view))
		require.Equal(t, models.CandidateStageApplied, view.Stage)
	})

	t.Run(`patch stage and board`, func(t *testing.T) {
		var view candidateapimodels.CandidateView
		require.Equal(t, http.StatusOK, call(t, app, http.MethodPatch, "/api/v1/candidates/"+created.ID,
			map[string]string{"stage": "offer"}, &view))
		require.Equal(t, models.CandidateStageOffer, view.Stage)

		var board candidateapimodels.BoardView
		require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/jobs/3/board", nil, &board))
		require.Len(t, board.Columns, 6)
		for _, column := range board.Columns {
			if column.Stage == models.CandidateStageOffer {
				require.Len(t, column.Candidates, 1)
				continue
			}
			require.Empty(t, column.Candidates)
		}

		var list candidateapimodels.CandidateList
		require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/jobs/3/candidates", nil, &list))
		require.Len(t, list.Data, 1)
	})

	t.Run(`patch missing`, func(t *testing.T) {
		require.Equal(t, http.StatusNotFound, call(t, app, http.MethodPatch, "/api/v1/candidates/missing",
			map[string]string{"stage": "offer"}, nil))
	})

	t.Run(`export`, func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/3/candidates/export", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, mimeXlsx, resp.Header.Get(fiber.HeaderContentType))
		require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "candidates-3-")
	})

	t.Run(`delete`, func(t *testing.T) {
		var resp candidateapimodels.DeleteView
		require.Equal(t, http.StatusOK, call(t, app, http.MethodDelete, "/api/v1/candidates/"+created.ID, nil, &resp))
		require.True(t, resp.Success)
		require.Equal(t, http.StatusNotFound, call(t, app, http.MethodDelete, "/api/v1/candidates/"+created.ID, nil, nil))
	})
}

const testDocument = `{"jobId":"5","title":"Go screen","sections":[{"id":"s1","title":"General Questions","questions":[
	{"id":"q1","type":"short","label":"Name","required":true},
	{"id":"q2","type":"multi","label":"Skills","required":true,"options":["go","sql"]},
	{"id":"q3","type":"numeric","label":"Years","required":false,"min":0,"max":50}
]}]}`

func TestAssessmentApi(t *testing.T) {
	initHandlers(t)
	app := newTestApp()

	var created assessmentapimodels.CreatedView
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/v1/assessments",
		`{"jobId":"5","data":`+testDocument+`}`, &created))
	require.NotEmpty(t, created.ID)
	require.NotEmpty(t, created.Message)

	t.Run(`create without document`, func(t *testing.T) {
		require.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/v1/assessments", `{"jobId":5}`, nil))
	})

	t.Run(`list`, func(t *testing.T) {
		require.Equal(t, http.StatusBadRequest, call(t, app, http.MethodGet, "/api/v1/assessments", nil, nil))
		var list []assessmentapimodels.AssessmentView
		require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/assessments?jobId=5", nil, &list))
		require.Len(t, list, 1)
		require.Equal(t, created.ID, list[0].ID)
		require.False(t, list[0].Published)
	})

	t.Run(`unpublished is hidden from candidates`, func(t *testing.T) {
		require.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/v1/public/assessments/"+created.ID, nil, nil))
	})

	t.Run(`publish`, func(t *testing.T) {
		var view assessmentapimodels.PublishView
		require.Equal(t, http.StatusOK, call(t, app, http.MethodPut, "/api/v1/assessments/"+created.ID+"/publish", nil, &view))
		require.True(t, view.Published)
		require.NotNil(t, view.Link)
		require.Equal(t, "/published/"+created.ID, *view.Link)

		var public assessmentapimodels.AssessmentView
		require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/public/assessments/"+created.ID, nil, &public))
		require.Equal(t, created.ID, public.ID)
	})

	t.Run(`public submit requires answers`, func(t *testing.T) {
		var failure responseapimodels.ValidationFailure
		require.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/v1/public/assessments/"+created.ID+"/responses",
			`{"candidateInfo":{"name":"Ann","email":"ann@example.com"},"responses":{"q1":"Ann","q2":[]}}`, &failure))
		require.Equal(t, apimodels.StatusFail, failure.Status)
		require.Equal(t, []string{"q2"}, failure.Missing)

		var view responseapimodels.ResponseView
		require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/v1/public/assessments/"+created.ID+"/responses",
			`{"candidateInfo":{"name":"Ann","email":"ann@example.com"},"responses":{"q1":"Ann","q2":["go"]}}`, &view))
		require.Equal(t, "5", view.JobID)
		require.Equal(t, responseapimodels.CompletionStatusCompleted, view.CompletionStatus)
	})

	t.Run(`responses`, func(t *testing.T) {
		require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/v1/responses",
			`{"assessmentId":"`+created.ID+`","jobId":5,"candidateInfo":{"name":"Bob","email":"bob@example.com"},"responses":{}}`, nil))
		require.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/v1/responses", `{"responses":{}}`, nil))

		var list responseapimodels.ResponseList
		require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/responses?assessmentId="+created.ID, nil, &list))
		require.Len(t, list.Data, 2)
		require.Equal(t, http.StatusBadRequest, call(t, app, http.MethodGet, "/api/v1/responses", nil, nil))
	})

	t.Run(`pdf`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/assessments/"+created.ID+"/pdf", nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	})

	t.Run(`archive without storage`, func(t *testing.T) {
		require.Equal(t, http.StatusServiceUnavailable, call(t, app, http.MethodPost, "/api/v1/assessments/"+created.ID+"/archive", nil, nil))
	})

	t.Run(`update and delete`, func(t *testing.T) {
		var view assessmentapimodels.AssessmentView
		require.Equal(t, http.StatusOK, call(t, app, http.MethodPut, "/api/v1/assessments/"+created.ID,
			`{"data":{"jobId":"5","title":"Renamed","sections":[]}}`, &view))
		require.Contains(t, string(view.Data), "Renamed")

		require.Equal(t, http.StatusOK, call(t, app, http.MethodDelete, "/api/v1/assessments/"+created.ID, nil, nil))
		require.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/v1/assessments/"+created.ID, nil, nil))
	})
}

func TestAiApi(t *testing.T) {
	initHandlers(t)
	app := newTestApp()

	require.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/v1/ai/assessment", `{"jobId":1}`, nil))
	require.Equal(t, http.StatusServiceUnavailable, call(t, app, http.MethodPost, "/api/v1/ai/assessment",
		`{"prompt":"Go developer","jobId":1,"title":"Go"}`, nil))
}

func TestAnalyticsApi(t *testing.T) {
	initHandlers(t)
	app := newTestApp()

	for _, stage := range []models.CandidateStage{models.CandidateStageApplied, models.CandidateStageHired} {
		require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/v1/candidates", candidateapimodels.CandidateData{
			Name: "C " + string(stage), Email: string(stage) + "@example.com", JobID: 1, Stage: stage,
		}, nil))
	}

	var funnel analyticsapimodels.FunnelView
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/analytics/funnel?jobId=1", nil, &funnel))
	require.Equal(t, 2, funnel.Total)
	require.Equal(t, 1, funnel.Hired)
	require.InDelta(t, 50.0, funnel.ConversionRate, 0.001)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/analytics/funnel?jobId=2", nil, &funnel))
	require.Equal(t, 0, funnel.Total)
	require.Empty(t, funnel.Stages)

	require.Equal(t, http.StatusBadRequest, call(t, app, http.MethodGet, "/api/v1/analytics/funnel?jobId=abc", nil, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/analytics/funnel/export", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
