package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinybio/linkdeck/internal/listview"
	"github.com/tinybio/linkdeck/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleModal = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan).
			Padding(1, 2)
)

// View renders the active mode
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	switch m.mode {
	case ModeLogin:
		return m.renderLogin()
	case ModeUsers:
		return m.renderScreen("Users", m.renderUsersTable(), m.renderClientPager(m.users.List()))
	case ModeCategories:
		return m.renderScreen("Categories", m.renderCategoriesTable(), m.renderClientPager(m.categories.List()))
	case ModeArticles:
		return m.renderScreen("Articles", m.renderArticlesTable(), m.renderServerPager())
	case ModeCategoryDetail:
		return m.renderCategoryDetail()
	case ModeUserForm:
		return m.renderForm("User", "")
	case ModeCategoryForm:
		footer := "ctrl+u: switch emoji/image icon"
		return m.renderForm("Category", footer)
	case ModeArticleEditor:
		return m.renderArticleEditor()
	case ModeConfirm:
		return m.renderModal(styleWarning.Render(m.confirmText) + "\n\n" + styleSubtle.Render("y: confirm  n: cancel"))
	case ModeNotify:
		return m.renderModal(styleWarning.Render(m.notifyText) + "\n\n" + styleSubtle.Render("press any key"))
	case ModeHelp:
		return m.renderHelp()
	}
	return ""
}

// renderScreen assembles a list screen: tab bar, table, pager, footer
func (m *Model) renderScreen(title, table, pager string) string {
	var b strings.Builder
	b.WriteString(m.renderTabs(title))
	b.WriteString("\n\n")
	b.WriteString(table)
	b.WriteString("\n")
	b.WriteString(pager)
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// renderTabs shows the three screens with the active one highlighted
func (m *Model) renderTabs(active string) string {
	tabs := make([]string, 0, 3)
	for _, name := range []string{"Users", "Categories", "Articles"} {
		if name == active {
			tabs = append(tabs, styleTitle.Render("["+name+"]"))
		} else {
			tabs = append(tabs, styleSubtle.Render(" "+name+" "))
		}
	}
	return strings.Join(tabs, " ")
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// renderUsersTable renders the visible page of the users list
func (m *Model) renderUsersTable() string {
	list := m.users.List()
	var b strings.Builder

	sortKey, order := list.Sort()
	b.WriteString(styleSubtle.Render(fmt.Sprintf("sort: %s %s", sortKey, orderLabel(order))))
	b.WriteString("\n")
	b.WriteString(styleTitle.Render(pad("Name", ColNameWidth) + pad("Email", ColEmailWidth) + pad("Role", 12) + "Links"))
	b.WriteString("\n")

	visible := list.Visible()
	if len(visible) == 0 {
		b.WriteString(styleSubtle.Render("  (no users)"))
		return b.String()
	}
	for i, u := range visible {
		row := pad(u.Name, ColNameWidth) + pad(u.Email, ColEmailWidth) + pad(string(u.Role), 12) + fmt.Sprintf("%d", u.Count.Linktrees)
		if i == list.Index() {
			row = styleSelected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

// renderCategoriesTable renders the visible page of the categories list
func (m *Model) renderCategoriesTable() string {
	list := m.categories.List()
	var b strings.Builder

	sortKey, order := list.Sort()
	b.WriteString(styleSubtle.Render(fmt.Sprintf("sort: %s %s", sortKey, orderLabel(order))))
	b.WriteString("\n")
	b.WriteString(styleTitle.Render(pad("Icon", 6) + pad("Name", ColNameWidth) + "In use"))
	b.WriteString("\n")

	visible := list.Visible()
	if len(visible) == 0 {
		b.WriteString(styleSubtle.Render("  (no categories)"))
		return b.String()
	}
	for i, c := range visible {
		row := pad(renderIcon(c.Icon), 6) + pad(c.Name, ColNameWidth) + fmt.Sprintf("%d", c.Count.Total())
		if i == list.Index() {
			row = styleSelected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

// renderIcon shows an emoji literal as-is and an uploaded image as a
// tagged path.
func renderIcon(icon types.Icon) string {
	if icon.Kind == types.IconImage {
		return "img"
	}
	return icon.Value
}

// renderArticlesTable renders the current server page of articles
func (m *Model) renderArticlesTable() string {
	var b strings.Builder

	query := m.articles.Query()
	filters := make([]string, 0, 3)
	if query.Status != "" {
		filters = append(filters, "status="+string(query.Status))
	}
	if query.Category != "" {
		name := query.Category
		for _, c := range m.categories.List().Items() {
			if c.ID == query.Category {
				name = c.Name
			}
		}
		filters = append(filters, "category="+name)
	}
	if query.Search != "" {
		filters = append(filters, "search="+query.Search)
	}
	if len(filters) > 0 {
		b.WriteString(styleSubtle.Render(strings.Join(filters, "  ")))
		b.WriteString("\n")
	}

	b.WriteString(styleTitle.Render(pad("Title", ColTitleWidth) + pad("Status", ColStatusWidth) + pad("Category", 16) + "Views"))
	b.WriteString("\n")

	items := m.articles.Items()
	if len(items) == 0 {
		b.WriteString(styleSubtle.Render("  (no articles)"))
		return b.String()
	}
	for i, a := range items {
		catName := "-"
		if a.Category != nil {
			catName = a.Category.Name
		}
		row := pad(a.Title, ColTitleWidth) + pad(renderStatus(a.Status), ColStatusWidth) + pad(catName, 16) + fmt.Sprintf("%d", a.ViewCount)
		if i == m.articles.Index() {
			row = styleSelected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func renderStatus(s types.ArticleStatus) string {
	switch s {
	case types.StatusPublished:
		return styleSuccess.Render(string(s))
	case types.StatusArchived:
		return styleSubtle.Render(string(s))
	default:
		return styleWarning.Render(string(s))
	}
}

func orderLabel(order listview.SortOrder) string {
	if order == listview.Descending {
		return "desc"
	}
	return "asc"
}

// renderPagerNumbers renders a page window with the current page
// highlighted and collapsed runs shown as ellipses.
func renderPagerNumbers(current, totalPages int) string {
	window := listview.PageWindowEllipsis(current, totalPages, PagerMaxVisible)
	parts := make([]string, 0, len(window))
	for _, p := range window {
		switch {
		case p == listview.Ellipsis:
			parts = append(parts, styleSubtle.Render("…"))
		case p == current:
			parts = append(parts, styleTitle.Render(fmt.Sprintf("[%d]", p)))
		default:
			parts = append(parts, fmt.Sprintf(" %d ", p))
		}
	}
	return strings.Join(parts, "")
}

// renderClientPager renders the pager of a client-side list
func renderClientPagerFor(page, totalPages, totalItems int) string {
	return fmt.Sprintf("%s  %s",
		renderPagerNumbers(page, totalPages),
		styleSubtle.Render(fmt.Sprintf("%d items", totalItems)))
}

func (m *Model) renderClientPager(counts interface {
	Page() int
	TotalPages() int
	TotalItems() int
}) string {
	return renderClientPagerFor(counts.Page(), counts.TotalPages(), counts.TotalItems())
}

// renderServerPager renders the articles pager from server metadata
func (m *Model) renderServerPager() string {
	p := m.articles.Pagination()
	pages := p.Pages
	if pages < 1 {
		pages = 1
	}
	return renderClientPagerFor(p.Page, pages, p.Total)
}

// renderModal renders a small dialog over the status bar
func (m *Model) renderModal(content string) string {
	return styleModal.Render(content) + "\n" + m.renderStatusBar()
}

// renderStatusBar renders the footer: search input, errors, status
func (m *Model) renderStatusBar() string {
	if m.searching {
		return styleTitle.Render("/") + m.searchInput + styleSubtle.Render("▌  (enter: apply, esc: clear)")
	}
	if m.errorMsg != "" {
		return styleError.Render(truncate(m.errorMsg, StatusTruncateLength))
	}
	if m.loading {
		return styleSubtle.Render("Loading...")
	}
	if m.statusMsg != "" {
		return styleSuccess.Render(truncate(m.statusMsg, StatusTruncateLength))
	}
	return styleSubtle.Render("tab: switch  /: search  a: add  e: edit  d: delete  ?: help  q: quit")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}

// renderLogin renders the credential prompt
func (m *Model) renderLogin() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Sign in"))
	b.WriteString("\n\n")

	email := m.loginEmail
	password := strings.Repeat("*", len(m.loginPassword))
	if m.loginField == 0 {
		email += "▌"
	} else {
		password += "▌"
	}
	b.WriteString(pad("Email:", 12) + email + "\n")
	b.WriteString(pad("Password:", 12) + password + "\n\n")
	b.WriteString(styleSubtle.Render("enter: sign in  ctrl+c: quit"))

	body := styleModal.Render(b.String())
	footer := ""
	if m.errorMsg != "" {
		footer = "\n" + styleError.Render(m.errorMsg)
	} else if m.loading {
		footer = "\n" + styleSubtle.Render("Signing in...")
	}
	return body + footer
}

// renderCategoryDetail renders the drill-down with its lazy children
func (m *Model) renderCategoryDetail() string {
	cat := m.detail.Category()
	if cat == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render(fmt.Sprintf("%s %s", renderIcon(cat.Icon), cat.Name)))
	b.WriteString("\n")
	b.WriteString(styleSubtle.Render(fmt.Sprintf("in use by %d links", cat.Count.Total())))
	b.WriteString("\n\n")

	if !m.detail.IsLoaded() {
		b.WriteString(styleSubtle.Render("Loading articles..."))
	} else {
		articles := m.detail.Articles()
		if len(articles) == 0 {
			b.WriteString(styleSubtle.Render("(no articles in this category)"))
		} else {
			b.WriteString(styleTitle.Render(pad("Title", ColTitleWidth) + "Status"))
			b.WriteString("\n")
			for _, a := range articles {
				b.WriteString(pad(a.Title, ColTitleWidth) + renderStatus(a.Status))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("esc: back"))
	return styleModal.Render(b.String()) + "\n" + m.renderStatusBar()
}

// renderForm renders the user/category modal from its field list
func (m *Model) renderForm(title, extraFooter string) string {
	verb := "Create"
	switch {
	case m.userForm != nil && m.userForm.IsEdit():
		verb = "Edit"
	case m.categoryForm != nil && m.categoryForm.IsEdit():
		verb = "Edit"
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render(verb + " " + title))
	b.WriteString("\n\n")
	b.WriteString(m.renderFields())
	b.WriteString("\n")
	footer := "enter/tab: next  ctrl+s: save  esc: cancel"
	if extraFooter != "" {
		footer += "\n" + extraFooter
	}
	b.WriteString(styleSubtle.Render(footer))

	return styleModal.Render(b.String()) + "\n" + m.renderStatusBar()
}

// renderArticleEditor renders the editor with its draft footer
func (m *Model) renderArticleEditor() string {
	verb := "New article"
	if m.articleForm.IsEdit() {
		verb = "Edit article"
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render(verb))
	b.WriteString("\n\n")
	b.WriteString(m.renderFields())
	b.WriteString("\n")

	autosaveLabel := "autosave: off"
	if m.autosave {
		autosaveLabel = "autosave: on"
	}
	b.WriteString(styleSubtle.Render("ctrl+s: save  ctrl+t: " + autosaveLabel + "  esc: close"))

	return styleModal.Render(b.String()) + "\n" + m.renderStatusBar()
}

// renderFields renders the active field list with validation errors
func (m *Model) renderFields() string {
	var b strings.Builder
	for i, field := range m.formFields {
		value := field.display()
		if i == m.formIndex && field.isText() {
			runes := []rune(value)
			cursor := field.cursor
			if cursor > len(runes) {
				cursor = len(runes)
			}
			value = string(runes[:cursor]) + "▌" + string(runes[cursor:])
		}

		label := pad(field.label+":", 12)
		line := label + value
		if i == m.formIndex {
			line = styleSelected.Render(label) + value
			if i == m.formIndex && !field.isText() {
				line += styleSubtle.Render("  (←/→ to change)")
			}
		}
		b.WriteString(line)
		b.WriteString("\n")

		if msg, bad := m.formErrors[field.name]; bad {
			b.WriteString(styleError.Render("  " + msg))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderHelp renders the key reference in its scrollable viewport
func (m *Model) renderHelp() string {
	return styleTitle.Render("Help") + "\n\n" + m.helpView.View() + "\n\n" + styleSubtle.Render("esc: back")
}

const helpContent = `Navigation
  tab / shift+tab   cycle screens (Users, Categories, Articles)
  1 / 2 / 3         jump to a screen
  j/k or arrows     move selection
  n/p or ←/→        change page
  /                 search (esc clears)
  r                 refresh

Actions
  a                 add
  e or enter        edit (enter drills into a category)
  d                 delete (with confirmation)
  y                 copy email / slug
  s, o              change sort column / direction
  f / c             filter articles by status / category

Editing
  enter/tab         next field
  ctrl+s            save
  ctrl+u            category icon: switch emoji/image
  ctrl+t            toggle autosave label
  esc               close (article edits are buffered)

ctrl+l signs out, q quits. Unsaved article edits are restored when you
reopen them.`
