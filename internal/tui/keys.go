package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinybio/linkdeck/internal/forms"
)

// handleKeyPress dispatches a keypress to the active mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if msg.String() == "ctrl+l" {
		switch m.mode {
		case ModeUsers, ModeCategories, ModeArticles:
			m.signOut()
			return nil
		}
	}

	switch m.mode {
	case ModeLogin:
		return m.handleLoginKeys(msg)
	case ModeUsers:
		return m.handleUsersKeys(msg)
	case ModeCategories:
		return m.handleCategoriesKeys(msg)
	case ModeArticles:
		return m.handleArticlesKeys(msg)
	case ModeCategoryDetail:
		return m.handleCategoryDetailKeys(msg)
	case ModeUserForm, ModeCategoryForm, ModeArticleEditor:
		return m.handleFormKeys(msg)
	case ModeConfirm:
		return m.handleConfirmKeys(msg)
	case ModeNotify:
		m.notifyText = ""
		m.mode = m.returnMode
		return nil
	case ModeHelp:
		switch msg.String() {
		case "esc", "q", "?":
			m.mode = m.returnMode
			return nil
		}
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return cmd
	}

	return nil
}

// handleLoginKeys edits the credential fields
func (m *Model) handleLoginKeys(msg tea.KeyMsg) tea.Cmd {
	field := &m.loginEmail
	if m.loginField == 1 {
		field = &m.loginPassword
	}

	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		m.loginField = (m.loginField + 1) % 2
		m.loginCursor = len([]rune(*m.fieldForLogin()))
		return nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.loginField = (m.loginField + 1) % 2
		m.loginCursor = len([]rune(*m.fieldForLogin()))
		return nil
	case tea.KeyEnter:
		if m.loginField == 0 {
			m.loginField = 1
			m.loginCursor = len([]rune(m.loginPassword))
			return nil
		}
		if m.loginEmail == "" || m.loginPassword == "" {
			m.errorMsg = "Email and password are required"
			return nil
		}
		m.loading = true
		m.errorMsg = ""
		m.statusMsg = "Signing in..."
		return m.login()
	case tea.KeyRunes:
		runes := []rune(*field)
		*field = string(append(runes[:m.loginCursor:m.loginCursor], append(msg.Runes, runes[m.loginCursor:]...)...))
		m.loginCursor += len(msg.Runes)
		return nil
	case tea.KeyBackspace:
		if m.loginCursor > 0 {
			runes := []rune(*field)
			*field = string(append(runes[:m.loginCursor-1:m.loginCursor-1], runes[m.loginCursor:]...))
			m.loginCursor--
		}
		return nil
	case tea.KeyLeft:
		if m.loginCursor > 0 {
			m.loginCursor--
		}
		return nil
	case tea.KeyRight:
		if m.loginCursor < len([]rune(*field)) {
			m.loginCursor++
		}
		return nil
	}
	return nil
}

func (m *Model) fieldForLogin() *string {
	if m.loginField == 1 {
		return &m.loginPassword
	}
	return &m.loginEmail
}

// handleSearchKeys edits the footer search input. It reports whether
// the key was consumed.
func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !m.searching {
		return nil, false
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.searchInput = ""
		return m.applySearch(), true
	case tea.KeyEnter:
		m.searching = false
		return m.applySearch(), true
	case tea.KeyBackspace:
		if len(m.searchInput) > 0 {
			runes := []rune(m.searchInput)
			m.searchInput = string(runes[:len(runes)-1])
		}
		return m.applyLiveSearch(), true
	case tea.KeyRunes:
		m.searchInput += string(msg.Runes)
		return m.applyLiveSearch(), true
	case tea.KeySpace:
		m.searchInput += " "
		return m.applyLiveSearch(), true
	}
	return nil, true
}

// applyLiveSearch narrows client-side screens on every keystroke.
// Articles wait for Enter since each change costs a round trip.
func (m *Model) applyLiveSearch() tea.Cmd {
	switch m.mode {
	case ModeUsers:
		m.users.List().SetSearchQuery(m.searchInput)
	case ModeCategories:
		m.categories.List().SetSearchQuery(m.searchInput)
	}
	return nil
}

// applySearch commits the search input to the active screen
func (m *Model) applySearch() tea.Cmd {
	switch m.mode {
	case ModeUsers:
		m.users.List().SetSearchQuery(m.searchInput)
	case ModeCategories:
		m.categories.List().SetSearchQuery(m.searchInput)
	case ModeArticles:
		m.articles.SetSearch(m.searchInput)
		return m.loadArticles()
	}
	return nil
}

// switchScreen changes the active list screen
func (m *Model) switchScreen(mode Mode) tea.Cmd {
	if m.mode == mode {
		return nil
	}
	m.mode = mode
	m.returnMode = mode
	m.searching = false
	m.searchInput = ""

	switch mode {
	case ModeUsers:
		if !m.users.IsLoaded() {
			return m.loadUsers()
		}
	case ModeCategories:
		if !m.categories.IsLoaded() {
			return m.loadCategories()
		}
	case ModeArticles:
		if !m.articles.IsLoaded() {
			return m.loadArticles()
		}
	}
	return nil
}

// nextScreen cycles Users -> Categories -> Articles
func (m *Model) nextScreen(delta int) tea.Cmd {
	order := []Mode{ModeUsers, ModeCategories, ModeArticles}
	idx := 0
	for i, mode := range order {
		if mode == m.mode {
			idx = i
		}
	}
	return m.switchScreen(order[(idx+delta+len(order))%len(order)])
}

// handleUsersKeys drives the users list screen
func (m *Model) handleUsersKeys(msg tea.KeyMsg) tea.Cmd {
	if cmd, handled := m.handleSearchKeys(msg); handled {
		return cmd
	}

	list := m.users.List()
	switch msg.String() {
	case "q":
		return tea.Quit
	case "?":
		m.openHelp()
	case "tab":
		return m.nextScreen(1)
	case "shift+tab":
		return m.nextScreen(-1)
	case "2":
		return m.switchScreen(ModeCategories)
	case "3":
		return m.switchScreen(ModeArticles)
	case "/":
		m.searching = true
		m.searchInput = list.SearchQuery()
	case "j", "down":
		list.Navigate(1)
	case "k", "up":
		list.Navigate(-1)
	case "n", "right":
		list.NextPage()
	case "p", "left":
		list.PrevPage()
	case "s":
		m.cycleUserSort()
	case "o":
		if key, order := list.Sort(); key != "" {
			list.SetSort(key, order.Toggle())
		}
	case "r":
		m.loading = true
		return m.loadUsers()
	case "a":
		m.openUserForm(forms.NewUserForm())
	case "e", "enter":
		if user, ok := list.Selected(); ok {
			m.openUserForm(forms.EditUserForm(user))
		}
	case "y":
		if user, ok := list.Selected(); ok {
			return m.copyToClipboard(user.Email, "email")
		}
	case "d":
		if user, ok := list.Selected(); ok {
			m.openConfirm(
				fmt.Sprintf("Delete user %q? Their link pages are removed with them.", user.Name),
				m.deleteUser(user.ID),
			)
		}
	}
	return nil
}

// cycleUserSort advances the users sort column
func (m *Model) cycleUserSort() {
	list := m.users.List()
	key, order := list.Sort()
	next := map[string]string{
		"name":      "email",
		"email":     "linktrees",
		"linktrees": "createdAt",
		"createdAt": "name",
	}[key]
	if next == "" {
		next = "name"
	}
	list.SetSort(next, order)
}

// handleCategoriesKeys drives the categories list screen
func (m *Model) handleCategoriesKeys(msg tea.KeyMsg) tea.Cmd {
	if cmd, handled := m.handleSearchKeys(msg); handled {
		return cmd
	}

	list := m.categories.List()
	switch msg.String() {
	case "q":
		return tea.Quit
	case "?":
		m.openHelp()
	case "tab":
		return m.nextScreen(1)
	case "shift+tab":
		return m.nextScreen(-1)
	case "1":
		return m.switchScreen(ModeUsers)
	case "3":
		return m.switchScreen(ModeArticles)
	case "/":
		m.searching = true
		m.searchInput = list.SearchQuery()
	case "j", "down":
		list.Navigate(1)
	case "k", "up":
		list.Navigate(-1)
	case "n", "right":
		list.NextPage()
	case "p", "left":
		list.PrevPage()
	case "s":
		m.cycleCategorySort()
	case "o":
		if key, order := list.Sort(); key != "" {
			list.SetSort(key, order.Toggle())
		}
	case "r":
		m.loading = true
		return m.loadCategories()
	case "a":
		m.openCategoryForm(forms.NewCategoryForm())
	case "e":
		if cat, ok := list.Selected(); ok {
			m.openCategoryForm(forms.EditCategoryForm(cat))
		}
	case "enter":
		if cat, ok := list.Selected(); ok {
			return m.openCategoryDetail(cat)
		}
	case "d":
		if cat, ok := list.Selected(); ok {
			// The precondition is checked locally; an in-use category
			// never produces a network call.
			if used := cat.Count.Total(); used > 0 {
				m.openNotify(fmt.Sprintf("Cannot delete %q: it is in use by %d links.", cat.Name, used))
				return nil
			}
			m.openConfirm(fmt.Sprintf("Delete category %q?", cat.Name), m.deleteCategory(cat.ID))
		}
	}
	return nil
}

// cycleCategorySort advances the categories sort column
func (m *Model) cycleCategorySort() {
	list := m.categories.List()
	key, order := list.Sort()
	next := map[string]string{
		"name":      "usage",
		"usage":     "createdAt",
		"createdAt": "name",
	}[key]
	if next == "" {
		next = "name"
	}
	list.SetSort(next, order)
}

// handleArticlesKeys drives the articles list screen
func (m *Model) handleArticlesKeys(msg tea.KeyMsg) tea.Cmd {
	if cmd, handled := m.handleSearchKeys(msg); handled {
		return cmd
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "?":
		m.openHelp()
	case "tab":
		return m.nextScreen(1)
	case "shift+tab":
		return m.nextScreen(-1)
	case "1":
		return m.switchScreen(ModeUsers)
	case "2":
		return m.switchScreen(ModeCategories)
	case "/":
		m.searching = true
		m.searchInput = m.articles.Query().Search
	case "j", "down":
		m.articles.Navigate(1)
	case "k", "up":
		m.articles.Navigate(-1)
	case "n", "right":
		if m.articles.NextPage() {
			m.loading = true
			return m.loadArticles()
		}
	case "p", "left":
		if m.articles.PrevPage() {
			m.loading = true
			return m.loadArticles()
		}
	case "f":
		status := m.articles.CycleStatusFilter()
		if status == "" {
			m.statusMsg = "Showing all statuses"
		} else {
			m.statusMsg = "Filtering by " + string(status)
		}
		m.loading = true
		return m.loadArticles()
	case "c":
		return m.cycleArticleCategoryFilter()
	case "r":
		m.loading = true
		return m.loadArticles()
	case "a":
		m.openArticleCreate()
	case "e", "enter":
		if article := m.articles.Selected(); article != nil {
			return m.fetchArticleForEdit(article.ID)
		}
	case "y":
		if article := m.articles.Selected(); article != nil {
			return m.copyToClipboard(article.Slug, "slug")
		}
	case "d":
		if article := m.articles.Selected(); article != nil {
			id := article.ID
			m.openConfirm(fmt.Sprintf("Delete article %q?", article.Title), m.deleteArticle(id))
		}
	}
	return nil
}

// cycleArticleCategoryFilter steps the category filter through every
// known category and back to "all"
func (m *Model) cycleArticleCategoryFilter() tea.Cmd {
	cats := m.categories.List().Items()
	current := m.articles.Query().Category

	next := ""
	if current == "" {
		if len(cats) > 0 {
			next = cats[0].ID
		}
	} else {
		for i, c := range cats {
			if c.ID == current && i+1 < len(cats) {
				next = cats[i+1].ID
			}
		}
	}

	m.articles.SetCategoryFilter(next)
	m.statusMsg = "Showing all categories"
	for _, c := range cats {
		if c.ID == next {
			m.statusMsg = "Filtering by " + c.Name
		}
	}
	m.loading = true
	return m.loadArticles()
}

// handleCategoryDetailKeys drives the category drill-down
func (m *Model) handleCategoryDetailKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "enter":
		m.detail.Close()
		m.mode = ModeCategories
	}
	return nil
}

// openUserForm opens the user modal
func (m *Model) openUserForm(form *forms.UserForm) {
	m.userForm = form
	m.formFields = userFormFields(form)
	m.formIndex = 0
	m.formErrors = nil
	m.returnMode = m.screenMode()
	m.mode = ModeUserForm
}

// openCategoryForm opens the category modal
func (m *Model) openCategoryForm(form *forms.CategoryForm) {
	m.categoryForm = form
	m.categoryUploadMode = false
	m.formFields = categoryFormFields(form, false)
	m.formIndex = 0
	m.formErrors = nil
	m.returnMode = m.screenMode()
	m.mode = ModeCategoryForm
}

// handleFormKeys drives all three entity forms
func (m *Model) handleFormKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		if m.mode == ModeArticleEditor {
			// Keep the in-progress edit around for next time.
			m.saveDraftField()
		}
		m.closeForm()
		return nil
	case "ctrl+s":
		if m.mode == ModeArticleEditor {
			m.saveDraftField()
		}
		return m.submitForm()
	case "tab", "down":
		m.blurField()
		m.formIndex = (m.formIndex + 1) % len(m.formFields)
		return nil
	case "shift+tab", "up":
		m.blurField()
		m.formIndex = (m.formIndex - 1 + len(m.formFields)) % len(m.formFields)
		return nil
	case "enter":
		m.blurField()
		if m.formIndex == len(m.formFields)-1 {
			return m.submitForm()
		}
		m.formIndex++
		return nil
	case "ctrl+u":
		if m.mode == ModeCategoryForm {
			m.categoryUploadMode = !m.categoryUploadMode
			m.formFields = categoryFormFields(m.categoryForm, m.categoryUploadMode)
			if m.formIndex >= len(m.formFields) {
				m.formIndex = len(m.formFields) - 1
			}
		}
		return nil
	case "ctrl+t":
		if m.mode == ModeArticleEditor {
			// The toggle only changes the footer label; buffering
			// itself always happens on field changes.
			m.autosave = !m.autosave
		}
		return nil
	}

	if m.formIndex < len(m.formFields) {
		m.formFields[m.formIndex].handleKey(msg)
	}
	return nil
}

// blurField runs the leave-field hooks of the active field
func (m *Model) blurField() {
	if m.mode == ModeArticleEditor {
		m.saveDraftField()
	}
}

// submitForm routes to the submit of whichever form is open
func (m *Model) submitForm() tea.Cmd {
	switch m.mode {
	case ModeUserForm:
		return m.submitUserForm()
	case ModeCategoryForm:
		return m.submitCategoryForm()
	case ModeArticleEditor:
		return m.submitArticleForm()
	}
	return nil
}

// signOut drops the stored credentials and returns to the login screen
func (m *Model) signOut() {
	m.sessionMgr.ClearCredentials()
	if err := m.sessionMgr.Save(); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to save session: %v", err)
	}
	m.client.Token = ""
	m.users.Reset()
	m.categories.Reset()
	m.articles.Reset()
	m.loginEmail = ""
	m.loginPassword = ""
	m.loginField = 0
	m.loginCursor = 0
	m.statusMsg = "Signed out"
	m.mode = ModeLogin
	m.returnMode = ModeUsers
}

// openHelp shows the scrollable key reference
func (m *Model) openHelp() {
	m.helpView.SetContent(helpContent)
	m.helpView.GotoTop()
	m.returnMode = m.screenMode()
	m.mode = ModeHelp
}

// openConfirm shows the confirmation modal with a pending action
func (m *Model) openConfirm(text string, cmd tea.Cmd) {
	m.confirmText = text
	m.confirmCmd = cmd
	m.returnMode = m.screenMode()
	m.mode = ModeConfirm
}

// openNotify shows a dismissable warning modal
func (m *Model) openNotify(text string) {
	m.notifyText = text
	m.returnMode = m.screenMode()
	m.mode = ModeNotify
}

// handleConfirmKeys resolves the confirmation modal
func (m *Model) handleConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		cmd := m.confirmCmd
		m.confirmCmd = nil
		m.confirmText = ""
		m.mode = m.returnMode
		return cmd
	case "n", "esc":
		m.confirmCmd = nil
		m.confirmText = ""
		m.mode = m.returnMode
	}
	return nil
}
