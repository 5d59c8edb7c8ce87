package dataset

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/config"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/model"
)

func jsonObjects(n int, field string) string {
	items := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, fmt.Sprintf(`{"%s":"owner/set-%d","downloads":%d}`, field, i, i))
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestHuggingFaceSearch(t *testing.T) {
	var gotAuth, gotSearch, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotSearch = r.URL.Query().Get("search")
		gotPath = r.URL.Path
		fmt.Fprint(w, jsonObjects(20, "id"))
	}))
	defer srv.Close()

	hf := NewHuggingFace(config.HuggingFaceConfig{BaseURL: srv.URL, Token: "hf_tok"}, 5, srv.Client())
	res := hf.Search(context.Background(), "retail banking")

	require.True(t, res.OK(), "failure: %v", res.Failure)
	require.Len(t, res.Value, 5)
	assert.Equal(t, "[owner/set-1](https://huggingface.co/datasets/owner/set-1)", res.Value[0])
	assert.Equal(t, "[owner/set-5](https://huggingface.co/datasets/owner/set-5)", res.Value[4])
	assert.Equal(t, "Bearer hf_tok", gotAuth)
	assert.Equal(t, "retail banking", gotSearch)
	assert.Equal(t, "/api/datasets", gotPath)
}

func TestResultCapAboveFive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/v1/") {
			fmt.Fprint(w, jsonObjects(20, "ref"))
			return
		}
		fmt.Fprint(w, jsonObjects(20, "id"))
	}))
	defer srv.Close()

	hf := NewHuggingFace(config.HuggingFaceConfig{BaseURL: srv.URL}, 20, srv.Client()).Search(context.Background(), "q")
	require.True(t, hf.OK())
	assert.Len(t, hf.Value, 5)

	kg := NewKaggleAPI(config.KaggleConfig{BaseURL: srv.URL}, 20, srv.Client()).Search(context.Background(), "q")
	require.True(t, kg.OK())
	assert.Len(t, kg.Value, 5)

	var csvOut strings.Builder
	csvOut.WriteString("ref\n")
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&csvOut, "o/s%d\n", i)
	}
	links, err := ParseKaggleCSV(csvOut.String(), 20)
	require.NoError(t, err)
	assert.Len(t, links, 5)
}

func TestHuggingFaceFormatting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":"x"},{"id":"y"}]`)
	}))
	defer srv.Close()

	res := NewHuggingFace(config.HuggingFaceConfig{BaseURL: srv.URL}, 5, srv.Client()).Search(context.Background(), "q")

	require.True(t, res.OK())
	assert.Equal(t, []string{
		"[x](https://huggingface.co/datasets/x)",
		"[y](https://huggingface.co/datasets/y)",
	}, res.Value)
}

func TestHuggingFaceMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"author":"x"},{"id":"a/b"}]`)
	}))
	defer srv.Close()

	res := NewHuggingFace(config.HuggingFaceConfig{BaseURL: srv.URL}, 5, srv.Client()).Search(context.Background(), "q")

	require.True(t, res.OK())
	assert.Equal(t, []string{
		"[Unknown](https://huggingface.co/datasets/Unknown)",
		"[a/b](https://huggingface.co/datasets/a/b)",
	}, res.Value)
}

func TestHuggingFaceFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind model.FailureKind
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"bad token"}`, wantKind: model.FailureStatus},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantKind: model.FailureDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			res := NewHuggingFace(config.HuggingFaceConfig{BaseURL: srv.URL}, 5, srv.Client()).Search(context.Background(), "q")

			require.False(t, res.OK())
			assert.Equal(t, model.CallHuggingFace, res.Failure.Call)
			assert.Equal(t, tt.wantKind, res.Failure.Kind)
		})
	}
}

func TestKaggleAPISearch(t *testing.T) {
	var user, pass, gotSearch string
	var ok bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok = r.BasicAuth()
		gotSearch = r.URL.Query().Get("search")
		assert.Equal(t, "/api/v1/datasets/list", r.URL.Path)
		fmt.Fprint(w, jsonObjects(20, "ref"))
	}))
	defer srv.Close()

	k := NewKaggleAPI(config.KaggleConfig{BaseURL: srv.URL, Username: "alice", Key: "secret"}, 5, srv.Client())
	res := k.Search(context.Background(), "retail")

	require.True(t, res.OK(), "failure: %v", res.Failure)
	require.Len(t, res.Value, 5)
	assert.Equal(t, "[owner/set-1](https://www.kaggle.com/datasets/owner/set-1)", res.Value[0])
	assert.True(t, ok)
	assert.Equal(t, "alice", user)
	assert.Equal(t, "secret", pass)
	assert.Equal(t, "retail", gotSearch)
}

func TestKaggleAPIStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	res := NewKaggleAPI(config.KaggleConfig{BaseURL: srv.URL}, 5, srv.Client()).Search(context.Background(), "q")

	require.False(t, res.OK())
	assert.Equal(t, model.CallKaggle, res.Failure.Call)
	assert.Equal(t, model.FailureStatus, res.Failure.Kind)
	assert.Equal(t, http.StatusForbidden, res.Failure.StatusCode)
}

type fakeExecutor struct {
	out  string
	err  error
	env  []string
	name string
	args []string
}

func (f *fakeExecutor) Output(_ context.Context, env []string, name string, args ...string) ([]byte, error) {
	f.env = env
	f.name = name
	f.args = args
	return []byte(f.out), f.err
}

func TestKaggleCLISearch(t *testing.T) {
	fe := &fakeExecutor{out: "ref,title,size\n" +
		"a/one,One,1MB\n" +
		"\n" +
		"b/two,\"Two, quoted\",2MB\n" +
		"c/three,Three,3MB\n" +
		"d/four,Four,4MB\n" +
		"e/five,Five,5MB\n"}
	k := NewKaggleCLI(config.KaggleConfig{Binary: "kaggle", Username: "alice", Key: "secret"}, 5, fe)

	res := k.Search(context.Background(), "retail")

	require.True(t, res.OK(), "failure: %v", res.Failure)
	assert.Equal(t, []string{
		"[a/one](https://www.kaggle.com/datasets/a/one)",
		"[b/two](https://www.kaggle.com/datasets/b/two)",
		"[c/three](https://www.kaggle.com/datasets/c/three)",
		"[d/four](https://www.kaggle.com/datasets/d/four)",
	}, res.Value)
	assert.Equal(t, "kaggle", fe.name)
	assert.Equal(t, []string{"datasets", "list", "--search", "retail", "--csv"}, fe.args)
	assert.Equal(t, []string{"KAGGLE_USERNAME=alice", "KAGGLE_KEY=secret"}, fe.env)
}

func TestKaggleCLINonZeroExit(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	_, exitErr := exec.Command("sh", "-c", "exit 3").Output()
	require.Error(t, exitErr)

	k := NewKaggleCLI(config.KaggleConfig{}, 5, &fakeExecutor{err: exitErr})
	res := k.Search(context.Background(), "retail")

	require.False(t, res.OK())
	assert.Equal(t, model.FailureProcess, res.Failure.Kind)
	assert.Equal(t, 3, res.Failure.ExitCode)
}

func TestKaggleCLIMissingBinary(t *testing.T) {
	k := NewKaggleCLI(config.KaggleConfig{Binary: "kaggle-binary-that-does-not-exist"}, 5, nil)
	res := k.Search(context.Background(), "retail")

	require.False(t, res.OK())
	assert.Equal(t, model.FailureTransport, res.Failure.Kind)
	assert.True(t, errors.Is(res.Failure, exec.ErrNotFound))
}

func TestParseKaggleCSV(t *testing.T) {
	links, err := ParseKaggleCSV("ref,title\n", 5)
	require.NoError(t, err)
	assert.Empty(t, links)

	links, err = ParseKaggleCSV("", 5)
	require.NoError(t, err)
	assert.Empty(t, links)

	links, err = ParseKaggleCSV("ref\nx/1\ny/2\nz/3\n", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"[x/1](https://www.kaggle.com/datasets/x/1)",
		"[y/2](https://www.kaggle.com/datasets/y/2)",
	}, links)
}

func TestNewSources(t *testing.T) {
	cfg := config.Default()
	sources, err := NewSources(cfg, nil)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, SourceHuggingFace, sources[0].Name())
	assert.IsType(t, &KaggleAPI{}, sources[1])

	cfg.Datasets.Order = []string{SourceKaggle, SourceHuggingFace}
	cfg.Datasets.Kaggle.Mode = config.KaggleModeCLI
	sources, err = NewSources(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &KaggleCLI{}, sources[0])
	assert.IsType(t, &HuggingFace{}, sources[1])

	cfg.Datasets.Kaggle.Enabled = false
	sources, err = NewSources(cfg, nil)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, SourceHuggingFace, sources[0].Name())

	cfg.Datasets.Order = []string{"zenodo"}
	_, err = NewSources(cfg, nil)
	assert.Error(t, err)
}
