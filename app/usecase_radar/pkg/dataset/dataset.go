// Package dataset searches dataset hosting sites for datasets related to an
// industry and formats the hits as markdown links.
package dataset

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/config"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/model"
)

// Source names used in datasets.order
const (
	SourceHuggingFace = "huggingface"
	SourceKaggle      = "kaggle"
)

// Source a dataset search backend
type Source interface {
	Name() string
	Search(ctx context.Context, query string) model.Result[[]string]
}

// Link formats a dataset identifier as a markdown link.
func Link(id, pageBase string) string {
	return fmt.Sprintf("[%s](%s%s)", id, pageBase, id)
}

// NewSources builds the enabled sources in configured order.
func NewSources(cfg *config.Config, client *http.Client) ([]Source, error) {
	ds := cfg.Datasets
	var sources []Source
	for _, name := range ds.Order {
		switch name {
		case SourceHuggingFace:
			if !ds.HuggingFace.Enabled {
				continue
			}
			sources = append(sources, NewHuggingFace(ds.HuggingFace, ds.MaxResults, client))

		case SourceKaggle:
			if !ds.Kaggle.Enabled {
				continue
			}
			switch ds.Kaggle.Mode {
			case config.KaggleModeAPI, "":
				sources = append(sources, NewKaggleAPI(ds.Kaggle, ds.MaxResults, client))
			case config.KaggleModeCLI:
				sources = append(sources, NewKaggleCLI(ds.Kaggle, ds.MaxResults, nil))
			default:
				return nil, fmt.Errorf("unknown kaggle mode: %s", ds.Kaggle.Mode)
			}

		default:
			return nil, fmt.Errorf("unknown dataset source: %s", name)
		}
	}
	return sources, nil
}

func limitOrDefault(n int) int {
	if n <= 0 || n > config.MaxItems {
		return config.MaxItems
	}
	return n
}
