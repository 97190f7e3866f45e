package server

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"framediff/internal/browse"
	"framediff/internal/query"
)

// Handlers serves the JSON API.
type Handlers struct {
	svc *query.Service
}

// NewHandlers creates API handlers backed by svc.
func NewHandlers(svc *query.Service) *Handlers {
	return &Handlers{svc: svc}
}

// Health reports liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Targets lists target names.
func (h *Handlers) Targets(c *gin.Context) {
	targets, err := h.svc.Targets(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"targets": targets, "count": len(targets)})
}

// Target returns the verdict matrix of one target.
func (h *Handlers) Target(c *gin.Context) {
	view, err := h.svc.TargetOverview(c.Request.Context(), c.Param("target"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Build returns the movies of one build.
func (h *Handlers) Build(c *gin.Context) {
	view, err := h.svc.BuildView(c.Request.Context(), c.Param("target"), c.Param("build"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// MovieFrames returns frame presence for one movie of a target.
func (h *Handlers) MovieFrames(c *gin.Context) {
	view, err := h.svc.MovieFrames(c.Request.Context(), c.Param("target"), c.Param("movie"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Movie returns the verdict matrix of one movie across targets.
func (h *Handlers) Movie(c *gin.Context) {
	matrix, err := h.svc.MovieMatrix(c.Request.Context(), c.Param("movie"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, matrix)
}

// Compare returns the frame comparison table. Images are included unless
// images=false.
func (h *Handlers) Compare(c *gin.Context) {
	withImages := true
	if raw := c.Query("images"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "images must be true or false"})
			return
		}
		withImages = parsed
	}
	table, err := h.svc.Compare(c.Request.Context(),
		c.Param("target"), c.Param("build1"), c.Param("build2"), c.Param("movie"), withImages)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

// FrameDiff returns the visualization of one frame.
func (h *Handlers) FrameDiff(c *gin.Context) {
	frame, err := strconv.Atoi(c.Param("frame"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "frame must be an integer"})
		return
	}
	diff, err := h.svc.FrameDiff(c.Request.Context(),
		c.Param("target"), c.Param("build1"), c.Param("build2"), c.Param("movie"), frame)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, diff)
}

// Browse lists a directory under the archive root.
func (h *Handlers) Browse(c *gin.Context) {
	listing, err := browse.List(h.svc.Archive(), c.Query("dir"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "directory not found"})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// Image streams a raw archive file.
func (h *Handlers) Image(c *gin.Context) {
	rel := strings.TrimPrefix(c.Param("path"), "/")
	path, err := h.svc.Archive().ResolveRelative(rel)
	if err != nil {
		writeError(c, err)
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	c.Header("Cache-Control", "public, max-age=300")
	c.File(path)
}
