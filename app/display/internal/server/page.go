package server

import (
	"bytes"
	"html/template"
	nethttp "net/http"
	"regexp"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/usecase_radar/app/display/internal/service"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/generation"
)

const msgInvalidIndustry = "Please enter a valid industry or company name."

var markdownLink = regexp.MustCompile(`^\[(.*)\]\((https?://[^)\s]+)\)$`)

var pageTpl = template.Must(template.ParseFS(assets, "assets/index.html"))

// PageLink one dataset entry; URL is empty for sentinel texts
type PageLink struct {
	Text string
	URL  string
}

// PageData view model of assets/index.html
type PageData struct {
	Industry string
	UseCases []string
	Datasets []PageLink
	Error    string
	Done     bool
}

type pageHandler struct {
	svc *service.RadarService
	log *log.Helper
}

func newPageHandler(svc *service.RadarService, logger log.Logger) *pageHandler {
	return &pageHandler{svc: svc, log: log.NewHelper(logger)}
}

func (h *pageHandler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.URL.Path != "/" {
		nethttp.NotFound(w, r)
		return
	}

	var data PageData
	switch r.Method {
	case nethttp.MethodGet:
	case nethttp.MethodPost:
		data = h.submit(r)
	default:
		w.Header().Set("Allow", "GET, POST")
		nethttp.Error(w, "method not allowed", nethttp.StatusMethodNotAllowed)
		return
	}

	var buf bytes.Buffer
	if err := pageTpl.Execute(&buf, data); err != nil {
		h.log.Errorf("render page: %v", err)
		nethttp.Error(w, "internal error", nethttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (h *pageHandler) submit(r *nethttp.Request) PageData {
	if err := r.ParseForm(); err != nil {
		return PageData{Error: msgInvalidIndustry}
	}
	industry := r.PostForm.Get("industry")
	data := PageData{Industry: industry}

	reply, err := h.svc.GenerateUseCases(r.Context(), &service.GenerateUseCasesReq{Industry: industry})
	if err != nil {
		data.Error = pageError(err)
		return data
	}

	data.Done = true
	data.UseCases = generation.CleanUseCases(reply.UseCases)
	for _, d := range reply.Datasets {
		data.Datasets = append(data.Datasets, ParseLink(d))
	}
	return data
}

// ParseLink splits a markdown link into text and URL. Anything else is kept
// as plain text.
func ParseLink(s string) PageLink {
	if m := markdownLink.FindStringSubmatch(s); m != nil {
		return PageLink{Text: m[1], URL: m[2]}
	}
	return PageLink{Text: s}
}

func pageError(err error) string {
	if errors.Reason(err) == "INVALID_INDUSTRY" {
		return msgInvalidIndustry
	}
	return "An error occurred: " + errors.FromError(err).Message
}
