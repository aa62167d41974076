package tui

import (
	"github.com/tinybio/linkdeck/internal/types"
)

// errorMsg carries a failure into the status bar
type errorMsg string

// statusMsg carries a transient status line update
type statusMsg string

// loginDoneMsg is the result of a login attempt
type loginDoneMsg struct {
	user *types.User
	err  error
}

// usersLoadedMsg is the result of a user collection fetch
type usersLoadedMsg struct {
	generation int
	users      []types.User
	err        error
}

// categoriesLoadedMsg is the result of a category collection fetch
type categoriesLoadedMsg struct {
	generation int
	categories []types.Category
	err        error
}

// articlesLoadedMsg is one server page of articles
type articlesLoadedMsg struct {
	generation int
	collection *types.Collection[types.Article]
	err        error
}

// categoryArticlesMsg is the lazy child fetch for the category detail
type categoryArticlesMsg struct {
	generation int
	articles   []types.Article
	err        error
}

// articleDetailMsg is a full single-article fetch for the editor
type articleDetailMsg struct {
	article *types.Article
	draft   map[string]string
	err     error
}

// userSavedMsg is the result of a user create or update
type userSavedMsg struct {
	user *types.User
	err  error
}

// categorySavedMsg is the result of a category create or update.
// uploadedPath is set when a pending icon image was uploaded on the
// way, whether or not the save itself succeeded.
type categorySavedMsg struct {
	category     *types.Category
	uploadedPath string
	err          error
}

// articleSavedMsg is the result of an article create or update
type articleSavedMsg struct {
	article *types.Article
	created bool
	err     error
}

// entityDeletedMsg is the result of any delete
type entityDeletedMsg struct {
	kind string // "user", "category" or "article"
	err  error
}
