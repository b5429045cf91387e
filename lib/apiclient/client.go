package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"talentflow-backend/lib/pipeline"
	"talentflow-backend/models"
	apimodels "talentflow-backend/models/api"
	candidateapimodels "talentflow-backend/models/api/candidate"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Provider клиент REST API для доски подбора
type Provider interface {
	pipeline.Persister
}

type impl struct {
	host   string
	client *http.Client
}

// NewProvider host адрес API, например http://localhost:8080/api/v1
func NewProvider(host string, timeout time.Duration) Provider {
	return &impl{
		host:   host,
		client: &http.Client{Timeout: timeout},
	}
}

const (
	jobCandidatesPath = "/jobs/%v/candidates"
	candidatePath     = "/candidates/%v"
)

func (i impl) ListCandidates(ctx context.Context, jobID int) ([]pipeline.Card, error) {
	uri := i.host + fmt.Sprintf(jobCandidatesPath, jobID)
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования запроса")
	}
	resp := candidateapimodels.CandidateList{}
	logger := log.WithField("external_request", uri)
	if err = i.sendRequest(logger, r, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []candidateapimodels.CandidateView{}
	}
	return resp.Data, nil
}

func (i impl) PatchStage(ctx context.Context, candidateID string, stage models.CandidateStage) error {
	uri := i.host + fmt.Sprintf(candidatePath, url.PathEscape(candidateID))
	body, err := json.Marshal(candidateapimodels.StagePatch{Stage: &stage})
	if err != nil {
		return errors.Wrap(err, "ошибка сериализации запроса")
	}
	r, err := http.NewRequestWithContext(ctx, http.MethodPatch, uri, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "ошибка формирования запроса")
	}
	r.Header.Add("Content-Type", "application/json")
	logger := log.
		WithField("external_request", uri).
		WithField("request_body", string(body))
	return i.sendRequest(logger, r, nil)
}

func (i impl) DeleteCandidate(ctx context.Context, candidateID string) error {
	uri := i.host + fmt.Sprintf(candidatePath, url.PathEscape(candidateID))
	r, err := http.NewRequestWithContext(ctx, http.MethodDelete, uri, nil)
	if err != nil {
		return errors.Wrap(err, "ошибка формирования запроса")
	}
	logger := log.WithField("external_request", uri)
	return i.sendRequest(logger, r, nil)
}

func (i impl) sendRequest(logger *log.Entry, r *http.Request, resp interface{}) error {
	r.Header.Add("User-Agent", "TalentFlow/1.0")
	r.Header.Add("Accept", "application/json")
	response, err := i.client.Do(r)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки запроса в API")
		return errors.Wrap(err, "ошибка отправки запроса в API")
	}
	defer response.Body.Close()
	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return errors.Wrap(err, "ошибка чтения ответа")
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if resp != nil {
			if err = json.Unmarshal(responseBody, resp); err != nil {
				return errors.Wrap(err, "ошибка сериализации ответа")
			}
		}
		return nil
	}

	errorResp := apimodels.Response{}
	if err = json.Unmarshal(responseBody, &errorResp); err != nil || errorResp.Message == "" {
		errorResp.Message = http.StatusText(response.StatusCode)
	}
	logger.
		WithField("status", response.StatusCode).
		WithField("response_body", string(responseBody)).
		Error("ошибка выполнения запроса в API")
	if response.StatusCode == http.StatusNotFound {
		return models.NotFound(errorResp.Message)
	}
	return errors.Errorf("API вернул %v: %v", response.StatusCode, errorResp.Message)
}
