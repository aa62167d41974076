package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tinybio/linkdeck/internal/types"
)

// defaultPageSize matches the real server's article page size
const defaultPageSize = 10

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]string{"error": fmt.Sprintf(format, args...)})
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin accepts any non-empty credentials. A known seeded email
// returns that user; anything else gets a synthesized admin so demos
// never dead-end on auth.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, ok := s.store.UserByEmail(req.Email)
	if !ok {
		now := time.Now().UTC()
		user = types.User{
			ID:        uuid.New().String(),
			Name:      strings.Split(req.Email, "@")[0],
			Email:     req.Email,
			Role:      types.RoleAdmin,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.store.PutUser(user)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": "mock-" + uuid.New().String(),
		"user":  user,
	})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.Collection[types.User]{Items: s.store.Users()})
}

type userRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == nil || *req.Name == "" || req.Email == nil || *req.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}
	if req.Password == nil || *req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}
	if s.store.EmailTaken(*req.Email, "") {
		writeError(w, http.StatusConflict, "email already exists")
		return
	}

	role := types.RoleUser
	if req.Role != nil {
		role = types.Role(*req.Role)
		if !role.Valid() {
			writeError(w, http.StatusBadRequest, "invalid role")
			return
		}
	}

	now := time.Now().UTC()
	user := types.User{
		ID:        uuid.New().String(),
		Name:      *req.Name,
		Email:     *req.Email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.store.PutUser(user)

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := s.store.GetUser(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Email != nil && *req.Email != "" {
		if s.store.EmailTaken(*req.Email, user.ID) {
			writeError(w, http.StatusConflict, "email already exists")
			return
		}
		user.Email = *req.Email
	}
	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Role != nil {
		role := types.Role(*req.Role)
		if !role.Valid() {
			writeError(w, http.StatusBadRequest, "invalid role")
			return
		}
		user.Role = role
	}
	// Passwords are accepted and discarded; the mock never checks them.

	user.UpdatedAt = time.Now().UTC()
	s.store.PutUser(user)

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteUser(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.Collection[types.Category]{Items: s.store.Categories()})
}

type categoryRequest struct {
	Name *string `json:"name"`
	Icon *string `json:"icon"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == nil || *req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Icon == nil || *req.Icon == "" {
		writeError(w, http.StatusBadRequest, "icon is required")
		return
	}

	cat := types.Category{
		ID:        uuid.New().String(),
		Name:      *req.Name,
		Icon:      types.ParseIcon(*req.Icon),
		CreatedAt: time.Now().UTC(),
	}
	s.store.PutCategory(cat)

	writeJSON(w, http.StatusCreated, cat)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.store.GetCategory(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name != nil && *req.Name != "" {
		cat.Name = *req.Name
	}
	if req.Icon != nil && *req.Icon != "" {
		cat.Icon = types.ParseIcon(*req.Icon)
	}
	s.store.PutCategory(cat)

	writeJSON(w, http.StatusOK, cat)
}

// handleDeleteCategory enforces the usage precondition server-side as
// well; the console checks it before calling, but the mock mirrors the
// real server's behavior for clients that do not.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.store.GetCategory(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	if used := cat.Count.Total(); used > 0 {
		writeError(w, http.StatusBadRequest, "category is in use by %d links", used)
		return
	}

	s.store.DeleteCategory(cat.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCategoryArticles(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.store.GetCategory(id); !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	articles := s.store.ArticlesByCategory(id)
	for i := range articles {
		articles[i] = s.withCategory(articles[i])
	}
	writeJSON(w, http.StatusOK, types.Collection[types.Article]{Items: articles})
}

// withCategory embeds the referenced category into an article response
func (s *Server) withCategory(a types.Article) types.Article {
	if a.CategoryID != nil {
		if cat, ok := s.store.GetCategory(*a.CategoryID); ok {
			a.Category = &cat
		}
	}
	return a
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = defaultPageSize
	}
	status := q.Get("status")
	category := q.Get("category")
	search := strings.ToLower(q.Get("search"))

	matched := make([]types.Article, 0)
	for _, a := range s.store.Articles() {
		if status != "" && string(a.Status) != status {
			continue
		}
		if category != "" && (a.CategoryID == nil || *a.CategoryID != category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Title), search) &&
			!strings.Contains(strings.ToLower(a.Content), search) {
			continue
		}
		matched = append(matched, a)
	}

	total := len(matched)
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	items := make([]types.Article, 0, end-start)
	for _, a := range matched[start:end] {
		items = append(items, s.withCategory(a))
	}

	writeJSON(w, http.StatusOK, types.Collection[types.Article]{
		Items: items,
		Pagination: &types.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	})
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	article, ok := s.store.GetArticle(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}
	writeJSON(w, http.StatusOK, s.withCategory(article))
}

// articleRequest distinguishes absent fields (nil pointer) from
// explicit nulls where it matters: categoryId null clears the link.
type articleRequest struct {
	Title         *string   `json:"title"`
	Slug          *string   `json:"slug"`
	Content       *string   `json:"content"`
	Excerpt       *string   `json:"excerpt"`
	FeaturedImage *string   `json:"featuredImage"`
	CategoryID    *string   `json:"categoryId"`
	Status        *string   `json:"status"`
	Tags          *[]string `json:"tags"`
	IsFeatured    *bool     `json:"isFeatured"`

	raw map[string]json.RawMessage
}

func (req *articleRequest) decode(w http.ResponseWriter, r *http.Request) bool {
	var buf json.RawMessage
	if !decodeBody(w, r, &buf) {
		return false
	}
	if err := json.Unmarshal(buf, req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := json.Unmarshal(buf, &req.raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// has reports whether the field key appeared in the request at all,
// even with a null value.
func (req *articleRequest) has(field string) bool {
	_, ok := req.raw[field]
	return ok
}

func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	var req articleRequest
	if !req.decode(w, r) {
		return
	}
	if req.Title == nil || *req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	slug := ""
	if req.Slug != nil {
		slug = *req.Slug
	}
	if slug == "" {
		slug = slugFromTitle(*req.Title)
	}
	if s.store.SlugTaken(slug, "") {
		writeError(w, http.StatusConflict, "slug already exists")
		return
	}

	status := types.StatusDraft
	if req.Status != nil && *req.Status != "" {
		status = types.ArticleStatus(*req.Status)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
	}

	if req.CategoryID != nil {
		if _, ok := s.store.GetCategory(*req.CategoryID); !ok {
			writeError(w, http.StatusBadRequest, "unknown category")
			return
		}
	}

	now := time.Now().UTC()
	article := types.Article{
		ID:         uuid.New().String(),
		Title:      *req.Title,
		Slug:       slug,
		Status:     status,
		CategoryID: req.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Excerpt != nil {
		article.Excerpt = *req.Excerpt
	}
	if req.FeaturedImage != nil {
		article.FeaturedImage = *req.FeaturedImage
	}
	if req.Tags != nil {
		article.Tags = *req.Tags
	}
	if req.IsFeatured != nil {
		article.IsFeatured = *req.IsFeatured
	}
	if status == types.StatusPublished {
		article.PublishedAt = &now
	}

	s.store.PutArticle(article)

	writeJSON(w, http.StatusCreated, s.withCategory(article))
}

func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	article, ok := s.store.GetArticle(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}

	var req articleRequest
	if !req.decode(w, r) {
		return
	}

	if req.Slug != nil && *req.Slug != "" && *req.Slug != article.Slug {
		if s.store.SlugTaken(*req.Slug, article.ID) {
			writeError(w, http.StatusConflict, "slug already exists")
			return
		}
		article.Slug = *req.Slug
	}
	if req.Title != nil && *req.Title != "" {
		article.Title = *req.Title
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Excerpt != nil {
		article.Excerpt = *req.Excerpt
	} else if req.has("excerpt") {
		article.Excerpt = ""
	}
	if req.FeaturedImage != nil {
		article.FeaturedImage = *req.FeaturedImage
	} else if req.has("featuredImage") {
		article.FeaturedImage = ""
	}
	if req.has("categoryId") {
		if req.CategoryID != nil {
			if _, ok := s.store.GetCategory(*req.CategoryID); !ok {
				writeError(w, http.StatusBadRequest, "unknown category")
				return
			}
		}
		article.CategoryID = req.CategoryID
	}
	if req.Tags != nil {
		article.Tags = *req.Tags
	}
	if req.IsFeatured != nil {
		article.IsFeatured = *req.IsFeatured
	}
	if req.Status != nil && *req.Status != "" {
		status := types.ArticleStatus(*req.Status)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		// publishedAt is stamped on the first transition to PUBLISHED
		// and kept thereafter.
		if status == types.StatusPublished && article.PublishedAt == nil {
			now := time.Now().UTC()
			article.PublishedAt = &now
		}
		article.Status = status
	}

	article.UpdatedAt = time.Now().UTC()
	s.store.PutArticle(article)

	writeJSON(w, http.StatusOK, s.withCategory(article))
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteArticle(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUpload accepts an icon image and returns a server path. The
// bytes are discarded; only the path convention matters to clients.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	file.Close()

	name := filepath.Base(header.Filename)
	path := types.UploadPathPrefix + uuid.New().String()[:8] + "-" + name

	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}
