package web

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campulse/internal/api"
	"campulse/internal/auth"
	"campulse/internal/listview"
	"campulse/internal/model"
	"campulse/internal/session"
)

// Handler owns the page views. Every page is a thin view over the backend:
// fetch a snapshot, derive the visible set, render.
type Handler struct {
	api   *api.Client
	auth  *auth.Service
	store session.Store
	tmpl  *template.Template

	tasks listview.Controller[model.Task]
	opps  listview.Controller[model.Opportunity]
}

// New builds the handler and its per-resource list controllers.
func New(client *api.Client, svc *auth.Service, store session.Store) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	h := &Handler{api: client, auth: svc, store: store, tmpl: tmpl}
	h.tasks = listview.Controller[model.Task]{
		Fetch:      client.ListTasks,
		CategoryOf: func(t model.Task) string { return t.TaskType },
	}
	h.opps = listview.Controller[model.Opportunity]{
		Fetch:      func(ctx context.Context) ([]model.Opportunity, error) { return client.ListOpportunities(ctx, "") },
		CategoryOf: func(o model.Opportunity) string { return o.Category },
	}
	return h, nil
}

// Register wires all routes. Unknown paths land on the dashboard, which the
// guard bounces to /login for anonymous visitors.
func (h *Handler) Register(r *gin.Engine) {
	static, err := fs.Sub(staticFS, "static")
	if err == nil {
		r.StaticFS("/static", http.FS(static))
	}

	anon := r.Group("/", auth.RequireAnon(h.auth))
	anon.GET("/login", h.loginPage)
	anon.POST("/login", h.loginSubmit)
	anon.GET("/signup", h.signupPage)
	anon.POST("/signup", h.signupSubmit)

	authed := r.Group("/", auth.RequireAuth(h.auth))
	authed.GET("/dashboard", h.dashboard)
	authed.GET("/planner", h.planner)
	authed.POST("/planner/tasks", h.createTask)
	authed.POST("/planner/tasks/:id/update", h.updateTask)
	authed.POST("/planner/tasks/:id/toggle", h.toggleTask)
	authed.GET("/planner/tasks/:id/delete", h.confirmDeleteTask)
	authed.POST("/planner/tasks/:id/delete", h.deleteTask)
	authed.GET("/opportunities", h.opportunities)
	authed.POST("/opportunities/:id/bookmark", h.bookmark)
	authed.GET("/tutors", h.tutors)
	authed.POST("/logout", h.logout)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/dashboard")
	})
	r.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/dashboard")
	})
}

func (h *Handler) render(c *gin.Context, status int, name string, data any) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := h.tmpl.ExecuteTemplate(c.Writer, name, data); err != nil {
		log.Printf("render %s failed: %v", name, err)
	}
}

// kickedOut redirects to the login page when an API call came back 401. The
// client's unauthorized hook has already cleared the session by this point.
func (h *Handler) kickedOut(c *gin.Context, err error) bool {
	if errors.Is(err, api.ErrUnauthorized) {
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
		return true
	}
	return false
}

// ---- auth pages ----

type authPageData struct {
	Form    any
	Errors  map[string]string
	General string
	Levels  []string
}

var signupLevels = []string{"100", "200", "300", "400", "500", "Postgraduate"}

func (h *Handler) loginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login", authPageData{Form: LoginForm{}, Errors: map[string]string{}})
}

func (h *Handler) loginSubmit(c *gin.Context) {
	form := LoginForm{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}
	if errs := form.Validate(); len(errs) > 0 {
		h.render(c, http.StatusBadRequest, "login", authPageData{Form: form, Errors: errs})
		return
	}
	if _, err := h.auth.Login(c.Request.Context(), form.Email, form.Password); err != nil {
		h.render(c, http.StatusUnauthorized, "login", authPageData{Form: form, Errors: map[string]string{}, General: err.Error()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) signupPage(c *gin.Context) {
	h.render(c, http.StatusOK, "signup", authPageData{Form: SignupForm{}, Errors: map[string]string{}, Levels: signupLevels})
}

func (h *Handler) signupSubmit(c *gin.Context) {
	form := SignupForm{
		FullName:        c.PostForm("full_name"),
		Email:           c.PostForm("email"),
		Level:           c.PostForm("level"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
	}
	if errs := form.Validate(); len(errs) > 0 {
		h.render(c, http.StatusBadRequest, "signup", authPageData{Form: form, Errors: errs, Levels: signupLevels})
		return
	}
	input := api.SignupInput{
		FullName: form.FullName,
		Email:    form.Email,
		Level:    form.Level,
		Password: form.Password,
	}
	if _, err := h.auth.Signup(c.Request.Context(), input); err != nil {
		h.render(c, http.StatusBadRequest, "signup", authPageData{Form: form, Errors: map[string]string{}, General: err.Error(), Levels: signupLevels})
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) logout(c *gin.Context) {
	h.auth.Logout(c.Request.Context())
	c.Redirect(http.StatusSeeOther, "/login")
}

// ---- dashboard ----

type dashboardData struct {
	User model.User
}

func (h *Handler) dashboard(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	h.render(c, http.StatusOK, "dashboard", dashboardData{User: user})
}

// ---- planner ----

type plannerData struct {
	User      model.User
	Tasks     []model.Task
	Filter    string
	Banner    string
	ShowModal bool
	Editing   *model.Task
	Form      TaskForm
	Errors    map[string]string
}

func (h *Handler) newPlannerData(c *gin.Context, items []model.Task, filter, banner string) plannerData {
	user, _ := auth.CurrentUser(c)
	return plannerData{
		User:   user,
		Tasks:  h.tasks.Visible(items, filter),
		Filter: filter,
		Banner: banner,
		Errors: map[string]string{},
	}
}

func (h *Handler) planner(c *gin.Context) {
	ctx := c.Request.Context()
	filter := c.DefaultQuery("filter", listview.FilterAll)

	items, err := h.tasks.Load(ctx)
	banner := ""
	if err != nil {
		if h.kickedOut(c, err) {
			return
		}
		log.Printf("fetch tasks failed: %v", err)
		banner = "Could not load your tasks. Please try again."
	}

	data := h.newPlannerData(c, items, filter, banner)
	if c.Query("new") != "" {
		data.ShowModal = true
		data.Form = TaskForm{TaskType: model.TaskAssignment, Priority: model.PriorityMedium}
	}
	if editID := c.Query("edit"); editID != "" {
		if id, err := strconv.ParseInt(editID, 10, 64); err == nil {
			for i := range items {
				if items[i].ID == id {
					data.ShowModal = true
					data.Editing = &items[i]
					data.Form = TaskForm{
						Title:       items[i].Title,
						Description: items[i].Description,
						TaskType:    items[i].TaskType,
						Priority:    items[i].Priority,
						DueDate:     items[i].DueDate,
					}
					break
				}
			}
		}
	}
	h.render(c, http.StatusOK, "planner", data)
}

func taskFormFrom(c *gin.Context) TaskForm {
	return TaskForm{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		TaskType:    c.PostForm("task_type"),
		Priority:    c.PostForm("priority"),
		DueDate:     c.PostForm("due_date"),
	}
}

// renderPlannerAfterMutation shows the list after a write. The items always
// come from a fresh snapshot fetch, never from patching the previous list.
func (h *Handler) renderPlannerAfterMutation(c *gin.Context, items []model.Task, filter, banner string) {
	h.render(c, http.StatusOK, "planner", h.newPlannerData(c, items, filter, banner))
}

func (h *Handler) createTask(c *gin.Context) {
	ctx := c.Request.Context()
	filter := c.DefaultPostForm("filter", listview.FilterAll)
	form := taskFormFrom(c)

	if errs := form.Validate(); len(errs) > 0 {
		items, err := h.tasks.Load(ctx)
		if err != nil && h.kickedOut(c, err) {
			return
		}
		data := h.newPlannerData(c, items, filter, "")
		data.ShowModal = true
		data.Form = form
		data.Errors = errs
		h.render(c, http.StatusBadRequest, "planner", data)
		return
	}

	input := api.TaskInput{
		Title:       form.Title,
		Description: form.Description,
		TaskType:    form.TaskType,
		Priority:    form.Priority,
		DueDate:     form.DueDate,
	}
	items, err := h.tasks.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.CreateTask(ctx, input)
		return err
	})
	if err != nil {
		if h.kickedOut(c, err) {
			return
		}
		log.Printf("create task failed: %v", err)
		items, _ = h.tasks.Load(ctx)
		h.renderPlannerAfterMutation(c, items, filter, "Failed to save task. Please try again.")
		return
	}
	h.renderPlannerAfterMutation(c, items, filter, "")
}

func (h *Handler) updateTask(c *gin.Context) {
	ctx := c.Request.Context()
	filter := c.DefaultPostForm("filter", listview.FilterAll)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/planner")
		return
	}
	form := taskFormFrom(c)

	if errs := form.Validate(); len(errs) > 0 {
		items, lerr := h.tasks.Load(ctx)
		if lerr != nil && h.kickedOut(c, lerr) {
			return
		}
		data := h.newPlannerData(c, items, filter, "")
		data.ShowModal = true
		data.Errors = errs
		data.Form = form
		for i := range items {
			if items[i].ID == id {
				data.Editing = &items[i]
				break
			}
		}
		h.render(c, http.StatusBadRequest, "planner", data)
		return
	}

	patch := api.TaskPatch{
		Title:       &form.Title,
		Description: &form.Description,
		TaskType:    &form.TaskType,
		Priority:    &form.Priority,
		DueDate:     &form.DueDate,
	}
	items, err := h.tasks.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.UpdateTask(ctx, id, patch)
		return err
	})
	if err != nil {
		if h.kickedOut(c, err) {
			return
		}
		log.Printf("update task failed: %v", err)
		items, _ = h.tasks.Load(ctx)
		h.renderPlannerAfterMutation(c, items, filter, "Failed to save task. Please try again.")
		return
	}
	h.renderPlannerAfterMutation(c, items, filter, "")
}

func (h *Handler) toggleTask(c *gin.Context) {
	ctx := c.Request.Context()
	filter := c.DefaultPostForm("filter", listview.FilterAll)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/planner")
		return
	}
	done := c.PostForm("done") == "true"

	items, err := h.tasks.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.UpdateTask(ctx, id, api.TaskPatch{IsDone: &done})
		return err
	})
	if err != nil {
		if h.kickedOut(c, err) {
			return
		}
		log.Printf("toggle task failed: %v", err)
		items, _ = h.tasks.Load(ctx)
		h.renderPlannerAfterMutation(c, items, filter, "Failed to update task.")
		return
	}
	h.renderPlannerAfterMutation(c, items, filter, "")
}

type confirmDeleteData struct {
	User   model.User
	Task   model.Task
	Filter string
}

// confirmDeleteTask is the explicit confirmation step; the DELETE call is
// only issued from the POST this page submits.
func (h *Handler) confirmDeleteTask(c *gin.Context) {
	ctx := c.Request.Context()
	filter := c.DefaultQuery("filter", listview.FilterAll)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/planner")
		return
	}

	items, err := h.tasks.Load(ctx)
	if err != nil {
		if h.kickedOut(c, err) {
			return
		}
		c.Redirect(http.StatusSeeOther, "/planner")
		return
	}
	for _, task := range items {
		if task.ID == id {
			user, _ := auth.CurrentUser(c)
			h.render(c, http.StatusOK, "confirm_delete", confirmDeleteData{User: user, Task: task, Filter: filter})
			return
		}
	}
	c.Redirect(http.StatusSeeOther, "/planner")
}

func (h *Handler) deleteTask(c *gin.Context) {
	ctx := c.Request.Context()
	filter := c.DefaultPostForm("filter", listview.FilterAll)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/planner")
		return
	}

	items, err := h.tasks.Mutate(ctx, func(ctx context.Context) error {
		return h.api.DeleteTask(ctx, id)
	})
	if err != nil {
		if h.kickedOut(c, err) {
			return
		}
		log.Printf("delete task failed: %v", err)
		items, _ = h.tasks.Load(ctx)
		h.renderPlannerAfterMutation(c, items, filter, "Failed to delete task.")
		return
	}
	h.renderPlannerAfterMutation(c, items, filter, "")
}

// ---- opportunities ----

type opportunitiesData struct {
	User      model.User
	Items     []model.Opportunity
	Filter    string
	Banner    string
	Selected  *model.Opportunity
	Bookmarks map[int64]bool
}

func (h *Handler) opportunities(c *gin.Context) {
	ctx := c.Request.Context()
	user, _ := auth.CurrentUser(c)
	filter := c.DefaultQuery("category", listview.FilterAll)

	items, err := h.opps.Load(ctx)
	banner := ""
	if err != nil {
		if h.kickedOut(c, err) {
			return
		}
		log.Printf("fetch opportunities failed: %v", err)
		banner = "Could not load opportunities. Please try again."
	}

	data := opportunitiesData{
		User:      user,
		Items:     h.opps.Visible(items, filter),
		Filter:    filter,
		Banner:    banner,
		Bookmarks: loadBookmarks(ctx, h.store),
	}

	if sel := c.Query("selected"); sel != "" {
		if id, perr := strconv.ParseInt(sel, 10, 64); perr == nil {
			opp, gerr := h.api.GetOpportunity(ctx, id)
			if gerr != nil {
				if h.kickedOut(c, gerr) {
					return
				}
				log.Printf("fetch opportunity %d failed: %v", id, gerr)
			} else {
				data.Selected = &opp
			}
		}
	}
	h.render(c, http.StatusOK, "opportunities", data)
}

// bookmark flips the local bookmark set first, then fires the backend call.
// A failed call is logged and the flip is kept.
func (h *Handler) bookmark(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/opportunities")
		return
	}

	if _, err := toggleBookmark(ctx, h.store, id); err != nil {
		log.Printf("toggle bookmark %d failed: %v", id, err)
	}
	if err := h.api.BookmarkOpportunity(ctx, id); err != nil {
		if h.kickedOut(c, err) {
			return
		}
		log.Printf("bookmark opportunity %d failed: %v", id, err)
	}

	target := "/opportunities"
	if cat := c.PostForm("category"); cat != "" && cat != listview.FilterAll {
		target += "?category=" + cat
	}
	c.Redirect(http.StatusSeeOther, target)
}

// ---- tutors ----

type tutorsData struct {
	User     model.User
	Items    []model.Tutor
	Query    string
	Banner   string
	Selected *model.Tutor
}

func (h *Handler) tutors(c *gin.Context) {
	ctx := c.Request.Context()
	user, _ := auth.CurrentUser(c)
	query := c.Query("course_code")

	// Tutors filter on the backend by course code, so the fetch closes over
	// the current search instead of filtering a cached snapshot.
	ctrl := listview.Controller[model.Tutor]{
		Fetch: func(ctx context.Context) ([]model.Tutor, error) {
			return h.api.ListTutors(ctx, query)
		},
	}

	items, err := ctrl.Load(ctx)
	banner := ""
	if err != nil {
		if h.kickedOut(c, err) {
			return
		}
		log.Printf("fetch tutors failed: %v", err)
		banner = "Could not load tutors. Please try again."
	}

	data := tutorsData{User: user, Items: items, Query: query, Banner: banner}

	if sel := c.Query("selected"); sel != "" {
		if id, perr := strconv.ParseInt(sel, 10, 64); perr == nil {
			tutor, gerr := h.api.GetTutor(ctx, id)
			if gerr != nil {
				if h.kickedOut(c, gerr) {
					return
				}
				log.Printf("fetch tutor %d failed: %v", id, gerr)
			} else {
				data.Selected = &tutor
			}
		}
	}
	h.render(c, http.StatusOK, "tutors", data)
}
