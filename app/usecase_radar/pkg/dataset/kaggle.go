package dataset

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"strings"

	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/config"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/model"
)

const kagglePageBase = "https://www.kaggle.com/datasets/"

// KaggleAPI Kaggle dataset search over the public REST API
type KaggleAPI struct {
	baseURL  string
	username string
	key      string
	max      int
	client   *http.Client
}

// NewKaggleAPI creates a REST-backed Kaggle source.
func NewKaggleAPI(cfg config.KaggleConfig, maxResults int, client *http.Client) *KaggleAPI {
	if client == nil {
		client = http.DefaultClient
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://www.kaggle.com"
	}
	return &KaggleAPI{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: cfg.Username,
		key:      cfg.Key,
		max:      limitOrDefault(maxResults),
		client:   client,
	}
}

var _ Source = (*KaggleAPI)(nil)

func (k *KaggleAPI) Name() string { return SourceKaggle }

type kaggleDataset struct {
	Ref string `json:"ref"`
}

// Search lists datasets matching query and links the first few.
func (k *KaggleAPI) Search(ctx context.Context, query string) model.Result[[]string] {
	u := k.baseURL + "/api/v1/datasets/list?" + url.Values{"search": {query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.Fail[[]string](model.CallKaggle, model.FailureTransport, err)
	}
	req.SetBasicAuth(k.username, k.key)

	res, err := k.client.Do(req)
	if err != nil {
		return model.Fail[[]string](model.CallKaggle, model.FailureTransport, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body)
		return model.FailStatus[[]string](model.CallKaggle, res.StatusCode)
	}

	var datasets []kaggleDataset
	if err := json.NewDecoder(res.Body).Decode(&datasets); err != nil {
		return model.Fail[[]string](model.CallKaggle, model.FailureDecode, err)
	}

	if len(datasets) > k.max {
		datasets = datasets[:k.max]
	}
	links := make([]string, 0, len(datasets))
	for _, d := range datasets {
		if strings.TrimSpace(d.Ref) == "" {
			continue
		}
		links = append(links, Link(d.Ref, kagglePageBase))
	}
	return model.Success(links)
}

// Executor runs an external command and returns its standard output.
type Executor interface {
	Output(ctx context.Context, env []string, name string, args ...string) ([]byte, error)
}

// ExecExecutor runs commands with os/exec, inheriting the process environment.
type ExecExecutor struct{}

func (ExecExecutor) Output(ctx context.Context, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	return cmd.Output()
}

// KaggleCLI Kaggle dataset search through the kaggle command line tool
type KaggleCLI struct {
	binary   string
	username string
	key      string
	max      int
	exec     Executor
}

// NewKaggleCLI creates a CLI-backed Kaggle source. A nil executor runs real
// processes.
func NewKaggleCLI(cfg config.KaggleConfig, maxResults int, executor Executor) *KaggleCLI {
	if executor == nil {
		executor = ExecExecutor{}
	}
	binary := cfg.Binary
	if binary == "" {
		binary = "kaggle"
	}
	return &KaggleCLI{
		binary:   binary,
		username: cfg.Username,
		key:      cfg.Key,
		max:      limitOrDefault(maxResults),
		exec:     executor,
	}
}

var _ Source = (*KaggleCLI)(nil)

func (k *KaggleCLI) Name() string { return SourceKaggle }

// Search runs `kaggle datasets list --search query --csv`. The header line is
// skipped and only the next few lines are considered; blank lines inside that
// window produce no link.
func (k *KaggleCLI) Search(ctx context.Context, query string) model.Result[[]string] {
	env := []string{
		"KAGGLE_USERNAME=" + k.username,
		"KAGGLE_KEY=" + k.key,
	}
	out, err := k.exec.Output(ctx, env, k.binary, "datasets", "list", "--search", query, "--csv")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return model.FailProcess[[]string](model.CallKaggle, exitErr.ExitCode(), err)
		}
		return model.Fail[[]string](model.CallKaggle, model.FailureTransport, err)
	}

	links, err := ParseKaggleCSV(string(out), k.max)
	if err != nil {
		return model.Fail[[]string](model.CallKaggle, model.FailureDecode, err)
	}
	return model.Success(links)
}

// ParseKaggleCSV links the first field of up to limit lines following the
// header.
func ParseKaggleCSV(out string, limit int) ([]string, error) {
	limit = limitOrDefault(limit)
	lines := strings.Split(out, "\n")
	if len(lines) <= 1 {
		return []string{}, nil
	}
	lines = lines[1:]
	if len(lines) > limit {
		lines = lines[:limit]
	}

	links := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		r := csv.NewReader(strings.NewReader(line))
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		record, err := r.Read()
		if err != nil {
			return nil, err
		}
		ref := strings.TrimSpace(record[0])
		if ref == "" {
			continue
		}
		links = append(links, Link(ref, kagglePageBase))
	}
	return links, nil
}
