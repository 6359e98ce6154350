package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"campuspay/models"
)

// Client fetches students from the remote school backend. It is used
// only for identity resolution and advisory validation.
type Client interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	GetStudent(ctx context.Context, id int) (*models.Student, error)
}

type httpClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient returns a directory client for the given backend base
// URL. The token is attached as a bearer credential; how it is minted is
// outside this service's concern.
func NewHTTPClient(baseURL, token string) Client {
	return &httpClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *httpClient) ListStudents(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := c.getJSON(ctx, c.baseURL+"/students/", &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (c *httpClient) GetStudent(ctx context.Context, id int) (*models.Student, error) {
	var student models.Student
	if err := c.getJSON(ctx, fmt.Sprintf("%s/students/%d/", c.baseURL, id), &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (c *httpClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("student directory unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("student directory returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode directory response: %w", err)
	}
	return nil
}
