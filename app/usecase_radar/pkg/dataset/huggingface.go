package dataset

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/config"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/model"
)

const huggingFacePageBase = "https://huggingface.co/datasets/"

// HuggingFace Hugging Face Hub dataset search
type HuggingFace struct {
	baseURL string
	token   string
	max     int
	client  *http.Client
}

// NewHuggingFace creates a Hugging Face source.
func NewHuggingFace(cfg config.HuggingFaceConfig, maxResults int, client *http.Client) *HuggingFace {
	if client == nil {
		client = http.DefaultClient
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://huggingface.co"
	}
	return &HuggingFace{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   cfg.Token,
		max:     limitOrDefault(maxResults),
		client:  client,
	}
}

var _ Source = (*HuggingFace)(nil)

func (h *HuggingFace) Name() string { return SourceHuggingFace }

// hfDataset one element of the /api/datasets answer; only id is used
type hfDataset struct {
	ID string `json:"id"`
}

// Search lists datasets matching query and links the first few.
func (h *HuggingFace) Search(ctx context.Context, query string) model.Result[[]string] {
	u := h.baseURL + "/api/datasets?" + url.Values{"search": {query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.Fail[[]string](model.CallHuggingFace, model.FailureTransport, err)
	}
	req.Header.Set("Authorization", "Bearer "+h.token)

	res, err := h.client.Do(req)
	if err != nil {
		return model.Fail[[]string](model.CallHuggingFace, model.FailureTransport, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body)
		return model.FailStatus[[]string](model.CallHuggingFace, res.StatusCode)
	}

	var datasets []hfDataset
	if err := json.NewDecoder(res.Body).Decode(&datasets); err != nil {
		return model.Fail[[]string](model.CallHuggingFace, model.FailureDecode, err)
	}

	if len(datasets) > h.max {
		datasets = datasets[:h.max]
	}
	links := make([]string, 0, len(datasets))
	for _, d := range datasets {
		id := d.ID
		if id == "" {
			id = "Unknown"
		}
		links = append(links, Link(id, huggingFacePageBase))
	}
	return model.Success(links)
}
