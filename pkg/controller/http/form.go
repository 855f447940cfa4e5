package http

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gramfetch/pkg/domain/interfaces"
	"github.com/m-mizutani/gramfetch/pkg/domain/model"
	"github.com/m-mizutani/gramfetch/pkg/domain/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// pageData is the template input for the download form page.
type pageData struct {
	Service         string
	Version         string
	LoaderAvailable bool
	URL             string
	Folder          string
	Error           string
	Result          *model.FetchResult
}

// FormHandler serves the download form and runs submissions.
type FormHandler struct {
	fetchUC interfaces.FetchUseCase
}

// NewFormHandler creates a new FormHandler
func NewFormHandler(fetchUC interfaces.FetchUseCase) *FormHandler {
	return &FormHandler{
		fetchUC: fetchUC,
	}
}

// Index renders the download form. When instaloader is missing, the page
// shows an install hint instead of the form.
func (h *FormHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, &pageData{
		LoaderAvailable: h.fetchUC.LoaderAvailable(r.Context()),
	})
}

// Fetch handles form submissions. The whole flow runs synchronously; the
// response is the same page with either the result or a classified
// failure message.
func (h *FormHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	if err := r.ParseForm(); err != nil {
		writeError(w, goerr.Wrap(err, "failed to parse form"), http.StatusBadRequest)
		return
	}

	data := &pageData{
		LoaderAvailable: true,
		URL:             r.FormValue("url"),
		Folder:          r.FormValue("folder"),
	}

	if strings.TrimSpace(data.URL) == "" {
		data.Error = "Please enter a post URL."
		h.render(w, r, http.StatusBadRequest, data)
		return
	}

	result, err := h.fetchUC.Fetch(ctx, &model.FetchRequest{
		URL:    data.URL,
		Folder: data.Folder,
	})
	if err != nil {
		logger.Error("fetch failed", "url", data.URL, "error", err)
		data.Error = err.Error()
		data.LoaderAvailable = !goerr.HasTag(err, types.TagUnavailable)
		h.render(w, r, errorStatus(err), data)
		return
	}

	data.Result = result
	h.render(w, r, http.StatusOK, data)
}

func (h *FormHandler) render(w http.ResponseWriter, r *http.Request, status int, data *pageData) {
	data.Service = types.ServiceName
	data.Version = types.Version

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTmpl.Execute(w, data); err != nil {
		ctxlog.From(r.Context()).Error("Failed to render page", "error", err)
	}
}
