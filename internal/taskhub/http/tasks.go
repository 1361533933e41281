package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/oakmount/taskhub/internal/taskhub/domain"
	"github.com/oakmount/taskhub/internal/taskhub/service"
	"github.com/oakmount/taskhub/internal/taskhub/store"
	"github.com/oakmount/taskhub/pkg/httpx"
)

type TasksHandler struct {
	TaskService *service.TaskService
}

type createTaskRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	DueDate     *time.Time     `json:"due_date"`
	Parameters  map[string]any `json:"parameters"`
	Tags        []string       `json:"tags"`
	Priority    int            `json:"priority"`
}

// updateTaskRequest mirrors service.TaskPatch: absent fields are left
// unchanged.
type updateTaskRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Category    *string        `json:"category"`
	DueDate     *time.Time     `json:"due_date"`
	Parameters  map[string]any `json:"parameters"`
	Completed   *bool          `json:"completed"`
	Tags        []string       `json:"tags"`
	Priority    *int           `json:"priority"`
}

// HandleCreate godoc
//
//	@Summary		Create Task
//	@Description	Creates a task owned by the authenticated account. An empty category defaults to General.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		createTaskRequest	true	"Task fields"
//	@Success		201		{object}	TaskResponse		"The created task"
//	@Failure		400		{object}	ErrorResponse		"error, error_description"
//	@Failure		401		{object}	ErrorResponse		"Invalid or missing access token"
//	@Failure		500		{object}	ErrorResponse		"error, error_description"
//	@Router			/api/v1/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := authedUserID(ctx, w)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}

	task, err := h.TaskService.Create(ctx, domain.Task{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		DueDate:     req.DueDate,
		Parameters:  req.Parameters,
		Tags:        req.Tags,
		Priority:    req.Priority,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTaskResponse(task))
}

// HandleList godoc
//
//	@Summary		List Tasks
//	@Description	Lists the authenticated account's tasks. Filters combine with AND semantics.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			category	query		string			false	"Filter by category name"
//	@Param			completed	query		boolean			false	"Filter by completion state"
//	@Param			tag			query		string			false	"Filter by tag name"
//	@Param			priority	query		string			false	"Filter by priority (0-3 or none/low/medium/high)"
//	@Success		200			{array}		TaskResponse	"Tasks"
//	@Failure		400			{object}	ErrorResponse	"error, error_description"
//	@Failure		401			{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure		500			{object}	ErrorResponse	"error, error_description"
//	@Router			/api/v1/tasks [get].
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := authedUserID(ctx, w)
	if !ok {
		return
	}

	var filter store.TaskFilter
	q := r.URL.Query()

	if v := q.Get("category"); v != "" {
		filter.Category = &v
	}
	if v := q.Get("tag"); v != "" {
		filter.Tag = &v
	}
	if v := q.Get("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			writeBadRequest(w, "completed must be true or false")
			return
		}
		filter.Completed = &completed
	}
	if v := q.Get("priority"); v != "" {
		priority, err := service.ParsePriority(v)
		if err != nil {
			writeServiceError(ctx, w, err)
			return
		}
		filter.Priority = &priority
	}

	tasks, err := h.TaskService.List(ctx, userID, filter)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTaskResponses(tasks))
}

// HandleGet godoc
//
//	@Summary		Get Task
//	@Description	Returns a single task. Tasks owned by other accounts are reported as not found.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int				true	"Task id"
//	@Success		200	{object}	TaskResponse	"The task"
//	@Failure		401	{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure		404	{object}	ErrorResponse	"Task not found"
//	@Failure		500	{object}	ErrorResponse	"error, error_description"
//	@Router			/api/v1/tasks/{id} [get].
func (h *TasksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := authedUserID(ctx, w)
	if !ok {
		return
	}
	taskID, ok := pathTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.TaskService.Get(ctx, userID, taskID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(task))
}

// HandleUpdate godoc
//
//	@Summary		Update Task
//	@Description	Applies a partial update to a task. Absent fields are left unchanged.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Task id"
//	@Param			body	body		updateTaskRequest	true	"Fields to change"
//	@Success		200		{object}	TaskResponse		"The updated task"
//	@Failure		400		{object}	ErrorResponse		"error, error_description"
//	@Failure		401		{object}	ErrorResponse		"Invalid or missing access token"
//	@Failure		404		{object}	ErrorResponse		"Task not found"
//	@Failure		500		{object}	ErrorResponse		"error, error_description"
//	@Router			/api/v1/tasks/{id} [put].
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := authedUserID(ctx, w)
	if !ok {
		return
	}
	taskID, ok := pathTaskID(w, r)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}

	task, err := h.TaskService.Update(ctx, userID, taskID, service.TaskPatch{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		DueDate:     req.DueDate,
		Parameters:  req.Parameters,
		Completed:   req.Completed,
		Tags:        req.Tags,
		Priority:    req.Priority,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(task))
}

// HandleComplete godoc
//
//	@Summary		Complete Task
//	@Description	Marks a task as completed. Completing an already-completed task is a no-op.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int				true	"Task id"
//	@Success		200	{object}	TaskResponse	"The completed task"
//	@Failure		401	{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure		404	{object}	ErrorResponse	"Task not found"
//	@Failure		500	{object}	ErrorResponse	"error, error_description"
//	@Router			/api/v1/tasks/{id}/complete [post].
func (h *TasksHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := authedUserID(ctx, w)
	if !ok {
		return
	}
	taskID, ok := pathTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.TaskService.Complete(ctx, userID, taskID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(task))
}

// HandleDelete godoc
//
//	@Summary		Delete Task
//	@Description	Deletes a task owned by the authenticated account.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Param			id	path	int	true	"Task id"
//	@Success		204	"Task deleted"
//	@Failure		401	{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure		404	{object}	ErrorResponse	"Task not found"
//	@Failure		500	{object}	ErrorResponse	"error, error_description"
//	@Router			/api/v1/tasks/{id} [delete].
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := authedUserID(ctx, w)
	if !ok {
		return
	}
	taskID, ok := pathTaskID(w, r)
	if !ok {
		return
	}

	if err := h.TaskService.Delete(ctx, userID, taskID); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleUsedCategories godoc
//
//	@Summary		List Used Categories
//	@Description	Returns the distinct category names across the authenticated account's tasks.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		string			"Category names"
//	@Failure		401	{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	ErrorResponse	"error, error_description"
//	@Router			/api/v1/tasks/categories [get].
func (h *TasksHandler) HandleUsedCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := authedUserID(ctx, w)
	if !ok {
		return
	}

	names, err := h.TaskService.UsedCategories(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	httpx.WriteJSON(w, http.StatusOK, names)
}

func pathTaskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{
			Error:            "not_found",
			ErrorDescription: "Task not found",
		})
		return 0, false
	}
	return id, true
}
