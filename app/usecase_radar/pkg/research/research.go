// Package research scrapes short text snippets about an industry from a web
// search results page.
package research

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html"

	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/config"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/model"
)

// Agent issues one search request per call and extracts snippet text from
// the returned markup.
type Agent struct {
	cfg    config.ResearchConfig
	client *http.Client
}

// NewAgent creates a research agent. A nil client uses http.DefaultClient.
func NewAgent(cfg config.ResearchConfig, client *http.Client) *Agent {
	if client == nil {
		client = http.DefaultClient
	}
	return &Agent{cfg: cfg, client: client}
}

// Research searches for "<industry><suffix>" and returns the text of the first
// matching elements. A non-200 answer is reported as a status failure.
func (a *Agent) Research(ctx context.Context, industry string) model.Result[[]string] {
	u, err := url.Parse(a.cfg.Endpoint)
	if err != nil {
		return model.Fail[[]string](model.CallResearch, model.FailureTransport, fmt.Errorf("invalid endpoint: %w", err))
	}
	q := u.Query()
	q.Set("q", industry+a.cfg.QuerySuffix)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return model.Fail[[]string](model.CallResearch, model.FailureTransport, fmt.Errorf("create request failed: %w", err))
	}
	req.Header.Set("User-Agent", a.cfg.UserAgent)

	res, err := a.client.Do(req)
	if err != nil {
		return model.Fail[[]string](model.CallResearch, model.FailureTransport, fmt.Errorf("request failed: %w", err))
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body)
		return model.FailStatus[[]string](model.CallResearch, res.StatusCode)
	}

	snippets, err := ExtractSnippets(res.Body, a.cfg.Selector, a.cfg.MaxSnippets)
	if err != nil {
		return model.Fail[[]string](model.CallResearch, model.FailureDecode, err)
	}
	return model.Success(snippets)
}

// ExtractSnippets parses an HTML document and returns the text content of the
// first limit elements matching selector, in document order.
func ExtractSnippets(r io.Reader, selector string, limit int) ([]string, error) {
	if limit <= 0 || limit > config.MaxItems {
		limit = config.MaxItems
	}

	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	nodes := dom.QuerySelectorAll(doc, selector)
	if len(nodes) > limit {
		nodes = nodes[:limit]
	}

	snippets := make([]string, 0, len(nodes))
	for _, n := range nodes {
		snippets = append(snippets, dom.TextContent(n))
	}
	return snippets, nil
}
