package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jude-explorer/internal/logging"
	"jude-explorer/internal/models"
)

var logger = logging.New("backend")

const (
	explorationPath = "/backend/get-exploration-data/"
	exportPath      = "/backend/create-export/"
)

// ErrExportFailed is returned when the backend answers an export with
// error set.
var ErrExportFailed = errors.New("backend reported export failure")

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the subject backend
type Client struct {
	config Config
	client *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	return &Client{
		config: Config{
			BaseURL: strings.TrimRight(baseURL, "/"),
			Timeout: timeout,
		},
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves the subject records and the variable catalogue
func (c *Client) Fetch(ctx context.Context) (*models.ExplorationData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+explorationPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	var data models.ExplorationData
	if err := c.do(req, &data); err != nil {
		return nil, fmt.Errorf("fetch exploration data: %w", err)
	}
	logger.Infof("loaded %d subjects, %d variables", len(data.SubjectData), len(data.Variables))
	return &data, nil
}

// Export asks the backend for a CSV export of the given subjects and
// returns the file content.
func (c *Client) Export(ctx context.Context, ids []models.SubjectID) ([]byte, error) {
	if ids == nil {
		ids = []models.SubjectID{}
	}
	jsonData, err := json.Marshal(models.ExportRequest{SubjectIDs: ids})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+exportPath, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	var resp models.ExportResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("export %d subjects: %w", len(ids), err)
	}
	if resp.Error {
		return nil, ErrExportFailed
	}
	return []byte(resp.FileData), nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
