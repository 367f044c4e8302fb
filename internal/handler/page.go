package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"minisocial/internal/config"
	"minisocial/internal/httputil"
	"minisocial/internal/model"
	"minisocial/internal/service"
	"minisocial/internal/transport/http/middleware"
	"minisocial/internal/view"
)

// PageHandler serves the server-rendered pages and their form posts.
// Failures are reported through flash messages and redirects, never as JSON.
type PageHandler struct {
	userService    *service.UserService
	authService    *service.AuthService
	feedService    *service.FeedService
	postService    *service.PostService
	commentService *service.CommentService
	followService  *service.FollowService
	renderer       *view.Renderer
	config         *config.Config
}

func NewPageHandler(
	userService *service.UserService,
	authService *service.AuthService,
	feedService *service.FeedService,
	postService *service.PostService,
	commentService *service.CommentService,
	followService *service.FollowService,
	renderer *view.Renderer,
	cfg *config.Config,
) *PageHandler {
	return &PageHandler{
		userService:    userService,
		authService:    authService,
		feedService:    feedService,
		postService:    postService,
		commentService: commentService,
		followService:  followService,
		renderer:       renderer,
		config:         cfg,
	}
}

// Index handles GET / and GET /?feed=following
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	feed := r.URL.Query().Get("feed")
	if feed != model.FeedFollowing {
		feed = model.FeedPublic
	}
	h.renderFeed(w, r, feed)
}

// Following handles GET /following
func (h *PageHandler) Following(w http.ResponseWriter, r *http.Request) {
	h.renderFeed(w, r, model.FeedFollowing)
}

func (h *PageHandler) renderFeed(w http.ResponseWriter, r *http.Request, feed string) {
	viewerID := middleware.ViewerFromContext(r.Context())
	viewer := h.viewer(r.Context(), viewerID)
	if viewer == nil {
		viewerID = nil
	}

	posts, err := h.feedService.HomeFeed(r.Context(), feed, viewerID)
	if err != nil {
		if errors.Is(err, model.ErrAuthRequired) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		log.Printf("[ERROR] Feed page: feed=%s err=%v", feed, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, http.StatusOK, view.PageIndex, view.PageData{
		Viewer:  viewer,
		Flashes: view.PopFlashes(w, r),
		Feed:    feed,
		Posts:   posts,
	})
}

// Profile handles GET /u/{username}
func (h *PageHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	viewerID := middleware.ViewerFromContext(r.Context())
	viewer := h.viewer(r.Context(), viewerID)
	if viewer == nil {
		viewerID = nil
	}

	profile, err := h.feedService.Profile(r.Context(), username, viewerID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			h.NotFound(w, r)
			return
		}
		log.Printf("[ERROR] Profile page: username=%s err=%v", username, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, http.StatusOK, view.PageProfile, view.PageData{
		Title:   "@" + profile.User.Username,
		Viewer:  viewer,
		Flashes: view.PopFlashes(w, r),
		Profile: profile,
	})
}

// NotFound renders the 404 page.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusNotFound, view.PageNotFound, view.PageData{
		Title:  "Not found",
		Viewer: h.viewer(r.Context(), middleware.ViewerFromContext(r.Context())),
	})
}

// RegisterForm handles GET /register
func (h *PageHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, view.PageRegister, view.PageData{
		Title:   "Register",
		Flashes: view.PopFlashes(w, r),
	})
}

// Register handles POST /register. A new account is signed in straight away.
func (h *PageHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.flashRedirect(w, r, "/register", msgCredentialsRequired)
		return
	}

	user, err := h.userService.Register(r.Context(), &model.RegisterRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	})
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			h.flashRedirect(w, r, "/register", msg)
			return
		}
		if errors.Is(err, model.ErrUsernameExists) {
			h.flashRedirect(w, r, "/register", msgUsernameExists)
			return
		}
		log.Printf("[ERROR] Register page: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !h.signIn(w, user.ID) {
		return
	}
	h.flashRedirect(w, r, "/", msgRegistered)
}

// LoginForm handles GET /login
func (h *PageHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, view.PageLogin, view.PageData{
		Title:   "Sign in",
		Flashes: view.PopFlashes(w, r),
	})
}

// Login handles POST /login
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.flashRedirect(w, r, "/login", msgInvalidCredentials)
		return
	}

	user, err := h.userService.Login(r.Context(), &model.LoginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	})
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			h.flashRedirect(w, r, "/login", msgInvalidCredentials)
			return
		}
		log.Printf("[ERROR] Login page: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !h.signIn(w, user.ID) {
		return
	}
	h.flashRedirect(w, r, "/", msgSignedIn)
}

// Logout handles POST /logout
func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, h.config.CookieSecure)
	h.flashRedirect(w, r, "/", msgSignedOut)
}

// CreatePost handles POST /post
func (h *PageHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireViewer(w, r)
	if !ok {
		return
	}

	_, err := h.postService.Create(r.Context(), userID, r.PostFormValue("content"))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrContentRequired):
			h.flashBack(w, r, msgPostEmpty)
		case errors.Is(err, model.ErrContentTooLong):
			h.flashBack(w, r, msgPostTooLong)
		case errors.Is(err, model.ErrUserNotFound):
			h.endSession(w, r)
		default:
			log.Printf("[ERROR] Create post page: user=%d err=%v", userID, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	h.flashBack(w, r, msgPosted)
}

// Follow handles POST /follow/{username}
func (h *PageHandler) Follow(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireViewer(w, r)
	if !ok {
		return
	}

	username := chi.URLParam(r, "username")
	result, err := h.followService.Follow(r.Context(), userID, username)
	if err != nil {
		h.followError(w, r, username, err)
		return
	}

	msg := msgFollowed
	if result.AlreadyFollowing {
		msg = msgAlreadyFollowing
	}
	h.flashRedirect(w, r, profilePath(username), msg)
}

// Unfollow handles POST /unfollow/{username}
func (h *PageHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireViewer(w, r)
	if !ok {
		return
	}

	username := chi.URLParam(r, "username")
	if _, err := h.followService.Unfollow(r.Context(), userID, username); err != nil {
		h.followError(w, r, username, err)
		return
	}

	h.flashRedirect(w, r, profilePath(username), msgUnfollowed)
}

func (h *PageHandler) followError(w http.ResponseWriter, r *http.Request, username string, err error) {
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		h.NotFound(w, r)
	case errors.Is(err, model.ErrCannotFollowSelf):
		h.flashRedirect(w, r, profilePath(username), msgCannotFollowSelf)
	default:
		log.Printf("[ERROR] Follow page: target=%s err=%v", username, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Like handles POST /like/{id}
func (h *PageHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.postService.Like)
}

// Unlike handles POST /unlike/{id}
func (h *PageHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.postService.Unlike)
}

func (h *PageHandler) toggleLike(w http.ResponseWriter, r *http.Request, fn likeFunc) {
	userID, ok := h.requireViewer(w, r)
	if !ok {
		return
	}

	postID, err := postIDParam(r)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	if _, err := fn(r.Context(), userID, postID); err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			h.flashBack(w, r, msgPostNotFound)
			return
		case errors.Is(err, model.ErrUserNotFound):
			h.endSession(w, r)
			return
		}
		log.Printf("[ERROR] Like page: user=%d post=%d err=%v", userID, postID, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	httputil.RedirectBack(w, r, "/")
}

// Comment handles POST /comment/{id}
func (h *PageHandler) Comment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireViewer(w, r)
	if !ok {
		return
	}

	postID, err := postIDParam(r)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	if _, err := h.commentService.Create(r.Context(), userID, postID, r.PostFormValue("content")); err != nil {
		if msg, ok := validationMessage(err); ok {
			h.flashBack(w, r, msg)
			return
		}
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			h.flashBack(w, r, msgPostNotFound)
			return
		case errors.Is(err, model.ErrUserNotFound):
			h.endSession(w, r)
			return
		}
		log.Printf("[ERROR] Comment page: user=%d post=%d err=%v", userID, postID, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	httputil.RedirectBack(w, r, "/")
}

// requireViewer sends anonymous visitors to the sign-in page.
func (h *PageHandler) requireViewer(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return 0, false
	}
	return userID, true
}

// endSession drops a session whose user no longer exists and sends the
// browser to the sign-in page.
func (h *PageHandler) endSession(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, h.config.CookieSecure)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// viewer resolves the signed-in user for the nav bar. A token for a deleted
// user renders as anonymous.
func (h *PageHandler) viewer(ctx context.Context, viewerID *int64) *model.UserSummary {
	if viewerID == nil {
		return nil
	}
	user, err := h.userService.GetByID(ctx, *viewerID)
	if err != nil {
		if !errors.Is(err, model.ErrUserNotFound) {
			log.Printf("[PageHandler] Viewer lookup failed for user=%d: %v", *viewerID, err)
		}
		return nil
	}
	return user.Summary()
}

func (h *PageHandler) signIn(w http.ResponseWriter, userID int64) bool {
	token, err := h.authService.IssueToken(userID)
	if err != nil {
		log.Printf("[ERROR] Issue token: user=%d err=%v", userID, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return false
	}
	middleware.SetSessionCookie(w, token, h.authService.MaxAge(), h.config.CookieSecure)
	return true
}

func (h *PageHandler) flashRedirect(w http.ResponseWriter, r *http.Request, target, msg string) {
	view.SetFlash(w, msg)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *PageHandler) flashBack(w http.ResponseWriter, r *http.Request, msg string) {
	view.SetFlash(w, msg)
	httputil.RedirectBack(w, r, "/")
}

func profilePath(username string) string {
	return "/u/" + url.PathEscape(username)
}
