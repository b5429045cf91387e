package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"talentflow-backend/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	var mu sync.Mutex
	var lastMethod, lastPath, lastStage string
	last := func() (string, string, string) {
		mu.Lock()
		defer mu.Unlock()
		return lastMethod, lastPath, lastStage
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		lastMethod = r.Method
		lastPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/jobs/3/candidates":
			_, _ = w.Write([]byte(`{"data":[{"id":"c1","name":"Ann","email":"ann@example.com","jobId":3,"stage":"tech"}]}`))
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`{"data":null}`))
		case r.Method == http.MethodPatch && r.URL.Path == "/api/v1/candidates/c1":
			body := map[string]string{}
			_ = json.NewDecoder(r.Body).Decode(&body)
			lastStage = body["stage"]
			_, _ = w.Write([]byte(`{"id":"c1"}`))
		case r.URL.Path == "/api/v1/candidates/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":"fail","message":"кандидат не найден"}`))
		case r.Method == http.MethodDelete:
			_, _ = w.Write([]byte(`{"success":true}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`oops`))
		}
	}))
	defer server.Close()

	client := NewProvider(server.URL+"/api/v1", time.Second)
	ctx := context.Background()

	cards, err := client.ListCandidates(ctx, 3)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.Equal(t, models.CandidateStageTech, cards[0].Stage)

	cards, err = client.ListCandidates(ctx, 4)
	require.NoError(t, err)
	require.NotNil(t, cards)
	require.Empty(t, cards)

	require.NoError(t, client.PatchStage(ctx, "c1", models.CandidateStageOffer))
	method, _, stage := last()
	require.Equal(t, http.MethodPatch, method)
	require.Equal(t, "offer", stage)

	require.NoError(t, client.DeleteCandidate(ctx, "c1"))
	method, path, _ := last()
	require.Equal(t, http.MethodDelete, method)
	require.Equal(t, "/api/v1/candidates/c1", path)

	err = client.PatchStage(ctx, "missing", models.CandidateStageOffer)
	require.True(t, errors.Is(err, models.ErrNotFound))
	require.Equal(t, "кандидат не найден", err.Error())

	err = client.PatchStage(ctx, "other", models.CandidateStageOffer)
	require.Error(t, err)
	require.Contains(t, err.Error(), "500")
}

func TestClientUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	_, err := NewProvider(server.URL, time.Second).ListCandidates(context.Background(), 1)
	require.Error(t, err)
}
