package server

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"framediff/internal/browse"
	"framediff/internal/imagediff"
	"framediff/internal/query"
)

//go:embed templates/*.html
var templateFS embed.FS

func loadTemplates() *template.Template {
	return template.Must(template.New("pages").Funcs(template.FuncMap{
		"dataURI": dataURI,
	}).ParseFS(templateFS, "templates/*.html"))
}

// dataURI marks base64 image data as a safe inline URL.
func dataURI(format imagediff.Format, data string) template.URL {
	return template.URL("data:" + format.MIMEType() + ";base64," + data)
}

// Pages renders the HTML views.
type Pages struct {
	svc *query.Service
}

// NewPages creates HTML handlers backed by svc.
func NewPages(svc *query.Service) *Pages {
	return &Pages{svc: svc}
}

// Index lists targets.
func (p *Pages) Index(c *gin.Context) {
	targets, err := p.svc.Targets(c.Request.Context())
	if err != nil {
		p.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Title": "Targets", "Targets": targets})
}

// Target renders the verdict matrix of one target.
func (p *Pages) Target(c *gin.Context) {
	view, err := p.svc.TargetOverview(c.Request.Context(), c.Param("target"))
	if err != nil {
		p.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "target.html", gin.H{"Title": view.Target, "View": view})
}

// Compare renders the frame comparison of one movie between two builds.
func (p *Pages) Compare(c *gin.Context) {
	table, err := p.svc.Compare(c.Request.Context(),
		c.Param("target"), c.Param("build1"), c.Param("build2"), c.Param("movie"), true)
	if err != nil {
		p.fail(c, err)
		return
	}
	title := table.Target + " · " + table.Movie + " · " + table.Build1 + " → " + table.Build2
	c.HTML(http.StatusOK, "compare.html", gin.H{"Title": title, "Table": table})
}

// Browse renders a directory listing.
func (p *Pages) Browse(c *gin.Context) {
	listing, err := browse.List(p.svc.Archive(), c.Query("dir"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.String(http.StatusNotFound, "directory not found")
			return
		}
		p.fail(c, err)
		return
	}
	title := "/" + listing.Dir
	c.HTML(http.StatusOK, "browse.html", gin.H{"Title": title, "Listing": listing})
}

func (p *Pages) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.String(status, "internal error")
		return
	}
	c.String(status, err.Error())
}
