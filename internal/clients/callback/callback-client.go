package callback_client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/init-pkg/nova/errs"

	"github.com/init-pkg/soupis-parser/internal/config"
)

// CallbackClient reports parse-job outcomes back to the backend that queued
// them.
type CallbackClient struct {
	url    string
	client *http.Client
}

type successRequest struct {
	JobID      uint64            `json:"job_id"`
	Notes      string            `json:"notes,omitempty"`
	ResultData map[string]string `json:"result_data,omitempty"`
}

type errorRequest struct {
	JobID        uint64 `json:"job_id"`
	ErrorMessage string `json:"error_message"`
}

type updateStatusRequest struct {
	JobID  uint64 `json:"job_id"`
	Status string `json:"status"`
}

func New(cfg *config.Config) *CallbackClient {
	return &CallbackClient{
		url: cfg.Clients.Callback.Url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (this *CallbackClient) MarkJobSuccess(jobID uint64, notes string, resultData map[string]string) errs.Error {
	return this.post("/api/parse-jobs/mark-success", successRequest{
		JobID:      jobID,
		Notes:      notes,
		ResultData: resultData,
	})
}

func (this *CallbackClient) MarkJobFailed(jobID uint64, errorMessage string) errs.Error {
	return this.post("/api/parse-jobs/mark-error", errorRequest{
		JobID:        jobID,
		ErrorMessage: errorMessage,
	})
}

func (this *CallbackClient) UpdateJobStatus(jobID uint64, status string) errs.Error {
	return this.post("/api/parse-jobs/update-status", updateStatusRequest{
		JobID:  jobID,
		Status: status,
	})
}

func (this *CallbackClient) post(path string, payload any) errs.Error {
	js, e := json.Marshal(payload)
	if e != nil {
		return errs.WrapAppError(e, &errs.ErrorOpts{})
	}

	req, e := http.NewRequest(http.MethodPost, this.url+path, bytes.NewBuffer(js))
	if e != nil {
		return errs.WrapAppError(e, &errs.ErrorOpts{})
	}
	req.Header.Set("Content-Type", "application/json")

	res, e := this.client.Do(req)
	if e != nil {
		return errs.WrapAppError(e, &errs.ErrorOpts{})
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return errs.WrapAppError(fmt.Errorf("API error %d: %s", res.StatusCode, string(body)), &errs.ErrorOpts{})
	}

	return nil
}
