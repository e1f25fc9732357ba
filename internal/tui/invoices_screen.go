package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/andy/billfold/internal/app"
	"github.com/andy/billfold/internal/config"
	"github.com/andy/billfold/internal/domain"
	"github.com/andy/billfold/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// invoiceMode represents the current screen mode
type invoiceMode int

const (
	invoiceModeList invoiceMode = iota
	invoiceModeForm
	invoiceModeFilter
)

// invoice form field indices
const (
	fieldDescription = iota
	fieldAmount
	fieldPrice
	fieldCount
)

type invoicesDataMsg struct {
	invoices []*domain.Invoice
	err      error
}

type invoiceSavedMsg struct {
	invoice *domain.Invoice
	editing bool
	err     error
}

type invoiceDeletedMsg struct {
	id  string
	err error
}

// InvoicesModel displays the invoice list with create/edit forms, a price
// filter, and description sorting. The create and edit forms keep separate
// drafts so opening one never clobbers the other's unsaved input.
type InvoicesModel struct {
	app     *app.App
	user    *domain.User
	visible []*domain.Invoice
	cursor  int
	loading bool

	mode      invoiceMode
	edit      *service.EditCursor
	statusMsg string
	errMsg    string

	// Create and edit drafts are independent field sets.
	createFields []textinput.Model
	editFields   []textinput.Model
	fieldFocus   int

	filterField textinput.Model
}

// NewInvoicesModel creates the invoices screen for the signed-in user
func NewInvoicesModel(a *app.App, user *domain.User) tea.Model {
	return &InvoicesModel{
		app:     a,
		user:    user,
		edit:    service.NewEditCursor(),
		loading: true,
	}
}

// IsCapturingInput returns true while a form or prompt is active
func (m *InvoicesModel) IsCapturingInput() bool {
	return m.mode != invoiceModeList
}

func (m *InvoicesModel) Init() tea.Cmd {
	return m.loadInvoices()
}

func (m *InvoicesModel) loadInvoices() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.app.Invoices.Refresh(ctx, m.user.ID); err != nil {
			return invoicesDataMsg{err: err}
		}
		return invoicesDataMsg{invoices: m.app.Invoices.List().Visible()}
	}
}

// reproject recomputes the visible slice from the canonical list
func (m *InvoicesModel) reproject() {
	m.visible = m.app.Invoices.List().Visible()
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
}

func (m *InvoicesModel) activeFields() []textinput.Model {
	if m.edit.State() == service.EditEditing ||
		(m.edit.State() == service.EditError && m.edit.ResumeState() == service.EditEditing) ||
		(m.edit.State() == service.EditSubmitting && m.edit.TargetID() != "") {
		return m.editFields
	}
	return m.createFields
}

func newInvoiceFields() []textinput.Model {
	fields := make([]textinput.Model, fieldCount)

	fields[fieldDescription] = textinput.New()
	fields[fieldDescription].Placeholder = "Description"
	fields[fieldDescription].CharLimit = 200
	fields[fieldDescription].Width = 40

	fields[fieldAmount] = textinput.New()
	fields[fieldAmount].Placeholder = "1"
	fields[fieldAmount].CharLimit = 12
	fields[fieldAmount].Width = 12

	fields[fieldPrice] = textinput.New()
	fields[fieldPrice].Placeholder = "1200.00"
	fields[fieldPrice].CharLimit = 12
	fields[fieldPrice].Width = 12

	return fields
}

func (m *InvoicesModel) openCreateForm() tea.Cmd {
	if err := m.edit.StartCreate(); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	if m.createFields == nil {
		m.createFields = newInvoiceFields()
	}
	m.mode = invoiceModeForm
	m.fieldFocus = fieldDescription
	for i := range m.createFields {
		m.createFields[i].Blur()
	}
	return m.createFields[fieldDescription].Focus()
}

func (m *InvoicesModel) openEditForm(invoice *domain.Invoice) tea.Cmd {
	if err := m.edit.StartEdit(invoice.ID); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	// Pre-populate from the selected record.
	m.editFields = newInvoiceFields()
	m.editFields[fieldDescription].SetValue(invoice.Description)
	m.editFields[fieldAmount].SetValue(strconv.FormatFloat(invoice.Amount, 'f', -1, 64))
	m.editFields[fieldPrice].SetValue(strconv.FormatFloat(invoice.Price, 'f', -1, 64))

	m.mode = invoiceModeForm
	m.fieldFocus = fieldDescription
	return m.editFields[fieldDescription].Focus()
}

// parseDraft reads the active form into values
func (m *InvoicesModel) parseDraft() (description string, amount, price float64, err error) {
	fields := m.activeFields()

	description = fields[fieldDescription].Value()
	if description == "" {
		return "", 0, 0, fmt.Errorf("description is required")
	}

	amount, err = strconv.ParseFloat(fields[fieldAmount].Value(), 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid amount: %s", fields[fieldAmount].Value())
	}
	price, err = strconv.ParseFloat(fields[fieldPrice].Value(), 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid price: %s", fields[fieldPrice].Value())
	}
	return description, amount, price, nil
}

func (m *InvoicesModel) submitForm() tea.Cmd {
	description, amount, price, err := m.parseDraft()
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}

	editing := m.edit.State() == service.EditEditing ||
		(m.edit.State() == service.EditError && m.edit.ResumeState() == service.EditEditing)
	targetID := m.edit.TargetID()

	// Rejecting re-entry here is the double-submit guard.
	if err := m.edit.BeginSubmit(); err != nil {
		return nil
	}
	m.errMsg = ""

	return func() tea.Msg {
		ctx := context.Background()

		if editing {
			updated, err := m.app.Invoices.Update(ctx, targetID, domain.InvoicePatch{
				Description: &description,
				Amount:      &amount,
				Price:       &price,
			})
			return invoiceSavedMsg{invoice: updated, editing: true, err: err}
		}

		created, err := m.app.Invoices.Create(ctx, domain.NewInvoice(description, amount, price, m.user.ID))
		return invoiceSavedMsg{invoice: created, editing: false, err: err}
	}
}

func (m *InvoicesModel) deleteSelected() tea.Cmd {
	if len(m.visible) == 0 || m.cursor >= len(m.visible) {
		return nil
	}
	id := m.visible[m.cursor].ID

	return func() tea.Msg {
		ctx := context.Background()
		return invoiceDeletedMsg{id: id, err: m.app.Invoices.Delete(ctx, id)}
	}
}

func (m *InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadInvoices()

	case invoicesDataMsg:
		m.loading = false
		if msg.err != nil {
			// Last-good list preserved; just surface the error.
			m.errMsg = fmt.Sprintf("Failed to fetch invoices: %v", msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.visible = msg.invoices
		if m.cursor >= len(m.visible) {
			m.cursor = max(0, len(m.visible)-1)
		}
		return m, nil

	case invoiceSavedMsg:
		if msg.err != nil {
			m.edit.Fail(msg.err)
			if msg.editing {
				m.errMsg = fmt.Sprintf("Failed to update invoice: %v", msg.err)
			} else {
				m.errMsg = fmt.Sprintf("Failed to add invoice: %v", msg.err)
			}
			return m, nil
		}

		m.edit.Succeed()
		m.mode = invoiceModeList
		if msg.editing {
			m.statusMsg = "Invoice updated successfully"
		} else {
			m.statusMsg = "Invoice added successfully"
			// Fields reset to empty for the next create.
			m.createFields = nil
		}
		m.editFields = nil
		m.reproject()
		return m, nil

	case invoiceDeletedMsg:
		if msg.err != nil {
			// List unchanged on failure.
			m.errMsg = fmt.Sprintf("Failed to delete invoice: %v", msg.err)
			return m, nil
		}
		m.statusMsg = "Invoice deleted successfully"
		m.errMsg = ""
		m.reproject()
		return m, nil
	}

	// Form and filter modes capture everything else.
	switch m.mode {
	case invoiceModeForm:
		return m.updateForm(msg)
	case invoiceModeFilter:
		return m.updateFilter(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		m.statusMsg = ""

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			return m, m.openCreateForm()
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.visible) > 0 && m.cursor < len(m.visible) {
				return m, m.openEditForm(m.visible[m.cursor])
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			return m, m.deleteSelected()
		case key.Matches(msg, DefaultKeyMap.Filter):
			m.mode = invoiceModeFilter
			m.filterField = textinput.New()
			m.filterField.Placeholder = "price threshold"
			m.filterField.CharLimit = 12
			m.filterField.Width = 15
			return m, m.filterField.Focus()
		case key.Matches(msg, DefaultKeyMap.Unfilter):
			m.app.Invoices.List().ClearFilter()
			m.reproject()
		case key.Matches(msg, DefaultKeyMap.Sort):
			list := m.app.Invoices.List()
			list.SetSorted(!list.Sorted())
			m.reproject()
		case key.Matches(msg, DefaultKeyMap.Refresh):
			m.loading = true
			return m, m.loadInvoices()
		}
	}

	return m, nil
}

func (m *InvoicesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	fields := m.activeFields()

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		fields[m.fieldFocus], cmd = fields[m.fieldFocus].Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "esc":
		if err := m.edit.Cancel(); err != nil {
			return m, nil // submit in flight
		}
		m.mode = invoiceModeList
		m.errMsg = ""
		m.editFields = nil
		return m, nil

	case "tab", "down":
		fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus + 1) % fieldCount
		return m, fields[m.fieldFocus].Focus()

	case "shift+tab", "up":
		fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus - 1 + fieldCount) % fieldCount
		return m, fields[m.fieldFocus].Focus()

	case "enter":
		if m.fieldFocus == fieldCount-1 {
			return m, m.submitForm()
		}
		fields[m.fieldFocus].Blur()
		m.fieldFocus++
		return m, fields[m.fieldFocus].Focus()

	case "ctrl+s":
		return m, m.submitForm()
	}

	var cmd tea.Cmd
	fields[m.fieldFocus], cmd = fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *InvoicesModel) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.filterField, cmd = m.filterField.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "esc":
		m.mode = invoiceModeList
		return m, nil

	case "enter":
		threshold, err := strconv.ParseFloat(m.filterField.Value(), 64)
		if err != nil {
			m.errMsg = fmt.Sprintf("invalid threshold: %s", m.filterField.Value())
			return m, nil
		}
		m.app.Invoices.List().SetFilter(threshold)
		m.mode = invoiceModeList
		m.errMsg = ""
		m.cursor = 0
		m.reproject()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterField, cmd = m.filterField.Update(msg)
	return m, cmd
}

func (m *InvoicesModel) View() string {
	switch m.mode {
	case invoiceModeForm:
		return m.viewForm()
	case invoiceModeFilter:
		return m.viewFilter()
	}
	return m.viewList()
}

func (m *InvoicesModel) viewForm() string {
	var s string

	if m.edit.TargetID() != "" {
		s += titleStyle.Render("Edit Invoice") + "\n\n"
	} else {
		s += titleStyle.Render("Add Invoice") + "\n\n"
	}

	fields := m.activeFields()
	labels := []string{"Description:", "Amount:", "Price:"}
	for i, label := range labels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = titleStyle
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), fields[i].View())
	}

	if m.edit.State() == service.EditSubmitting {
		s += subtitleStyle.Render("  Saving...") + "\n\n"
	}
	if m.errMsg != "" {
		s += errStyle.Render("  "+m.errMsg) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate  ctrl+s: save  enter: next/save  esc: cancel")
	return s
}

func (m *InvoicesModel) viewFilter() string {
	var s string
	s += titleStyle.Render("Filter by Price") + "\n\n"

	policy := "at least"
	if m.app.Config.List.FilterPolicy == config.FilterPolicyLTE {
		policy = "at most"
	}
	s += subtitleStyle.Render(fmt.Sprintf("  Show invoices with a price of %s:", policy)) + "\n"
	s += "  " + m.filterField.View() + "\n\n"

	if m.errMsg != "" {
		s += errStyle.Render("  "+m.errMsg) + "\n\n"
	}

	s += helpStyle.Render("  enter: apply  esc: cancel")
	return s
}

func (m *InvoicesModel) viewList() string {
	if m.loading {
		return "Loading invoices..."
	}

	var s string

	header := "Invoices"
	list := m.app.Invoices.List()
	if list.Filtered() {
		header += subtitleStyle.Render("  (filtered)")
	}
	if list.Sorted() {
		header += subtitleStyle.Render("  (sorted)")
	}
	s += titleStyle.Render(header) + "\n\n"

	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}
	if m.errMsg != "" {
		s += errStyle.Render("  "+m.errMsg) + "\n\n"
	}

	if len(m.visible) == 0 {
		if list.Filtered() {
			s += subtitleStyle.Render("  No invoices match the filter. Press 'F' to clear it.") + "\n"
		} else {
			s += subtitleStyle.Render("  No invoices yet. Press 'n' to add one.") + "\n"
		}
		return s
	}

	for i, invoice := range m.visible {
		s += m.renderInvoice(i, invoice) + "\n"
	}

	total := list.Len()
	if len(m.visible) != total {
		s += "\n" + subtitleStyle.Render(fmt.Sprintf("  Showing %d of %d invoice(s)", len(m.visible), total)) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  d: delete  f/F: filter/clear  s: sort  r: refresh")
	return s
}

func (m *InvoicesModel) renderInvoice(index int, invoice *domain.Invoice) string {
	selected := index == m.cursor

	indicator := "  "
	if selected {
		indicator = "> "
	}

	line1 := fmt.Sprintf("%s%s", indicator, truncateStr(invoice.Description, 50))
	line2 := fmt.Sprintf("    Amount: %g  |  Price: %s", invoice.Amount, formatMoney(invoice.Price))

	nameStyle := subtitleStyle
	if selected {
		nameStyle = titleStyle
	}

	return nameStyle.Render(line1) + "\n" + priceStyle.Render(line2)
}
