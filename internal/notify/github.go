package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/law-makers/leadgen/pkg/models"
)

const githubAPIBase = "https://api.github.com"

// GitHub publishes run statistics to a repository's README via the
// contents API, creating the file when it does not exist yet.
type GitHub struct {
	client  *http.Client
	baseURL string
	token   string
	repo    string // "owner/name"
	log     zerolog.Logger

	now func() time.Time
}

func NewGitHub(client *http.Client, token, repo string, logger zerolog.Logger) *GitHub {
	return &GitHub{
		client:  client,
		baseURL: githubAPIBase,
		token:   token,
		repo:    repo,
		log:     logger.With().Str("component", "github").Logger(),
		now:     time.Now,
	}
}

func (g *GitHub) Enabled() bool {
	return g.token != "" && g.repo != ""
}

// UpdatePortfolio rewrites the portfolio README with this run's stats.
func (g *GitHub) UpdatePortfolio(ctx context.Context, leads []*models.Lead) error {
	if !g.Enabled() {
		g.log.Debug().Msg("GitHub sink disabled")
		return nil
	}

	content := fmt.Sprintf("# SDR Lead Generation Portfolio\n\n_Last updated: %s_\n\n",
		g.now().Format("2006-01-02 15:04"))
	if len(leads) > 0 {
		total := 0
		for _, l := range leads {
			total += l.QualityScore
		}
		content += fmt.Sprintf("**Latest Run Results:**\n- Leads Generated: %d\n- Average Quality Score: %.1f%%\n",
			len(leads), float64(total)/float64(len(leads)))
	} else {
		content += "**Latest Run Results:**\n- No leads generated in this run.\n"
	}

	sha, err := g.readmeSHA(ctx)
	if err != nil {
		return err
	}

	body := map[string]string{
		"message": "Automated portfolio update",
		"content": base64.StdEncoding.EncodeToString([]byte(content)),
	}
	if sha != "" {
		body["sha"] = sha
	} else {
		body["message"] = "Create portfolio"
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := g.request(ctx, http.MethodPut, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("github update: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("github update: unexpected status %d", resp.StatusCode)
	}

	g.log.Info().Str("repo", g.repo).Msg("GitHub portfolio updated")
	return nil
}

// readmeSHA fetches the current README blob SHA, or "" when the file
// does not exist yet.
func (g *GitHub) readmeSHA(ctx context.Context) (string, error) {
	req, err := g.request(ctx, http.MethodGet, nil)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("github read: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("github read: unexpected status %d", resp.StatusCode)
	}

	var file struct {
		SHA string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return "", err
	}
	return file.SHA, nil
}

func (g *GitHub) request(ctx context.Context, method string, body *bytes.Reader) (*http.Request, error) {
	url := fmt.Sprintf("%s/repos/%s/contents/README.md", g.baseURL, g.repo)

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, url, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, url, nil)
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	return req, nil
}
