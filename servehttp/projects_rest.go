package servehttp

import (
	"context"
	"flyerboard/bizerror"
	"flyerboard/board"
	"flyerboard/common"
	"flyerboard/domain"
	"flyerboard/session"
	"io"
	"net/http"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ProjectService interface {
	CreateProject(ctx context.Context, c *domain.ProjectCreation) (types.ID, error)
	UpdateProject(ctx context.Context, id types.ID, u *domain.ProjectUpdating) error
	UpdateProjectStatus(ctx context.Context, id types.ID, status domain.ProjectStatus) error
	DeleteProject(ctx context.Context, id types.ID) error
	AddFileToProject(ctx context.Context, id types.ID, fileName string, content io.Reader) (*domain.ProjectFile, error)
	DeleteFileFromProject(ctx context.Context, id types.ID, fileName string) error
	AddCommentToProject(ctx context.Context, id types.ID, text, userName string, role domain.UserRole) (*domain.Comment, error)
}

type BoardView interface {
	Cards() []board.ProjectCard
	Snapshot() board.State
	Fatal() error
	View(fragment string) board.View
	Listen() (<-chan uint64, func())
	WaitFor(ctx context.Context, id types.ID) bool
}

type ProjectHandlerOptions struct {
	// ReportMutationErrors surfaces backend failures of mutations instead of
	// answering 202. Invalid requests are always rejected.
	ReportMutationErrors bool
	// CreateWait bounds how long creation waits for the board to show the new project.
	CreateWait time.Duration
}

type StatusUpdating struct {
	Status string `json:"status"`
}

type CommentCreation struct {
	Text     string          `json:"text"`
	UserName string          `json:"userName"`
	Role     domain.UserRole `json:"role"`
}

type CreatedProject struct {
	ID       types.ID `json:"id"`
	Fragment string   `json:"fragment"`
	Visible  bool     `json:"visible"`
}

type projectsHandler struct {
	service ProjectService
	board   BoardView
	opts    ProjectHandlerOptions
}

func RegisterProjectsHandler(r gin.IRouter, svc ProjectService, b BoardView, opts ProjectHandlerOptions, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/projects", middleWares...)

	h := &projectsHandler{service: svc, board: b, opts: opts}
	g.GET("", h.handleListProjects)
	g.POST("", h.handleCreateProject)
	g.PATCH(":id", h.handleUpdateProject)
	g.PUT(":id/status", h.handleUpdateStatus)
	g.DELETE(":id", h.handleDeleteProject)
	g.POST(":id/files", h.handleAddFile)
	g.DELETE(":id/files/:name", h.handleDeleteFile)
	g.POST(":id/comments", h.handleAddComment)
}

func (h *projectsHandler) handleListProjects(c *gin.Context) {
	if err := h.board.Fatal(); err != nil {
		panic(&bizerror.ErrBoardUnavailable{Cause: err})
	}
	c.JSON(http.StatusOK, h.board.Cards())
}

func (h *projectsHandler) handleCreateProject(c *gin.Context) {
	creation := domain.ProjectCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}

	id, err := h.service.CreateProject(c.Request.Context(), &creation)
	if err != nil {
		h.mutationFailed(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.CreateWait)
	defer cancel()
	visible := h.board.WaitFor(ctx, id)
	c.JSON(http.StatusCreated, &CreatedProject{ID: id, Fragment: "#/project/" + id.String(), Visible: visible})
}

func (h *projectsHandler) handleUpdateProject(c *gin.Context) {
	id := projectID(c)
	updating := domain.ProjectUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	h.mutationDone(c, h.service.UpdateProject(c.Request.Context(), id, &updating), nil)
}

func (h *projectsHandler) handleUpdateStatus(c *gin.Context) {
	id := projectID(c)
	updating := StatusUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	status, err := domain.ParseStatus(updating.Status)
	if err != nil {
		panic(err)
	}
	h.mutationDone(c, h.service.UpdateProjectStatus(c.Request.Context(), id, status), nil)
}

func (h *projectsHandler) handleDeleteProject(c *gin.Context) {
	id := projectID(c)
	h.mutationDone(c, h.service.DeleteProject(c.Request.Context(), id), nil)
}

func (h *projectsHandler) handleAddFile(c *gin.Context) {
	id := projectID(c)
	header, err := c.FormFile("file")
	if err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	file, err := header.Open()
	if err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	defer file.Close()

	f, err := h.service.AddFileToProject(c.Request.Context(), id, header.Filename, file)
	if err != nil {
		h.mutationFailed(c, err)
		return
	}
	h.mutationDone(c, nil, f)
}

func (h *projectsHandler) handleDeleteFile(c *gin.Context) {
	id := projectID(c)
	h.mutationDone(c, h.service.DeleteFileFromProject(c.Request.Context(), id, c.Param("name")), nil)
}

// handleAddComment falls back to the remembered name and role when the body
// leaves them out.
func (h *projectsHandler) handleAddComment(c *gin.Context) {
	id := projectID(c)
	creation := CommentCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	prefs := session.ReadPreferences(c)
	if creation.UserName == "" {
		creation.UserName = prefs.UserName
	}
	if creation.Role == "" {
		creation.Role = prefs.Role
	}

	comment, err := h.service.AddCommentToProject(c.Request.Context(), id, creation.Text, creation.UserName, creation.Role)
	if err != nil {
		h.mutationFailed(c, err)
		return
	}
	h.mutationDone(c, nil, comment)
}

func (h *projectsHandler) mutationDone(c *gin.Context, err error, body interface{}) {
	if err != nil {
		h.mutationFailed(c, err)
		return
	}
	if body == nil {
		body = gin.H{}
	}
	c.JSON(http.StatusAccepted, body)
}

// mutationFailed rejects invalid requests. Backend failures were already
// logged by the service and are only surfaced when configured.
func (h *projectsHandler) mutationFailed(c *gin.Context, err error) {
	if h.opts.ReportMutationErrors || bizerror.IsBadParam(err) {
		panic(err)
	}
	c.JSON(http.StatusAccepted, gin.H{})
}

func projectID(c *gin.Context) types.ID {
	id, err := types.ParseID(c.Param("id"))
	if err != nil || id == 0 {
		panic(&common.ErrBadParam{Cause: domain.ErrMissingProject})
	}
	return id
}
