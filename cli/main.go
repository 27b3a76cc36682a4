package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const maxVariant = 99

var (
	meals    = []string{"dinner", "lunch", "brunch"}
	spices   = []string{"medium", "mild", "hot"}
	alcohols = []string{"any", "none", "beer", "wine", "cocktail"}
	portions = []string{"filling", "light"}
)

// recommender is the slice of ApiClient the model depends on
type recommender interface {
	Recommend(ctx context.Context, q Query) (*Result, error)
}

// Model defines the application state
type Model struct {
	client    recommender
	query     Query
	result    *Result
	selected  int
	items     table.Model
	spinner   spinner.Model
	dietInput textinput.Model
	editing   bool
	loading   bool
	error     string
}

type resultMsg struct {
	result *Result
}

type errorMsg struct {
	err string
}

func initialModel(client recommender, q Query) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	columns := []table.Column{
		{Title: "Category", Width: 12},
		{Title: "Item", Width: 32},
		{Title: "Note", Width: 24},
	}
	items := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(7),
	)

	ti := textinput.New()
	ti.Placeholder = "vegetarian, gluten"
	ti.CharLimit = 80
	ti.Width = 30

	return Model{
		client:    client,
		query:     q,
		items:     items,
		spinner:   s,
		dietInput: ti,
		loading:   true,
	}
}

// Init fires the first request
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, recommend(m.client, m.query))
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateDiet(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.query.Variant = (m.query.Variant + 1) % (maxVariant + 1)
			return m.refresh()
		case "m":
			m.query.Meal = next(meals, m.query.Meal)
			return m.refresh()
		case "s":
			m.query.Spice = next(spices, m.query.Spice)
			return m.refresh()
		case "a":
			m.query.Alcohol = next(alcohols, m.query.Alcohol)
			return m.refresh()
		case "p":
			m.query.PortionPref = next(portions, m.query.PortionPref)
			return m.refresh()
		case "+", "=":
			if m.query.PartySize < 10 {
				m.query.PartySize++
				return m.refresh()
			}
			return m, nil
		case "-":
			if m.query.PartySize > 1 {
				m.query.PartySize--
				return m.refresh()
			}
			return m, nil
		case "d":
			m.editing = true
			m.dietInput.SetValue(strings.Join(m.query.Diet, ", "))
			m.dietInput.Focus()
			return m, textinput.Blink
		case "tab", "right", "l":
			m.selectCombo(m.selected + 1)
			return m, nil
		case "shift+tab", "left", "h":
			m.selectCombo(m.selected - 1)
			return m, nil
		}
	case resultMsg:
		m.loading = false
		m.error = ""
		m.result = msg.result
		m.selectCombo(0)
		return m, nil
	case errorMsg:
		m.loading = false
		m.error = msg.err
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.items, cmd = m.items.Update(msg)
	return m, cmd
}

func (m Model) updateDiet(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.dietInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.editing = false
		m.dietInput.Blur()
		m.query.Diet = parseDiet(m.dietInput.Value())
		return m.refresh()
	}
	var cmd tea.Cmd
	m.dietInput, cmd = m.dietInput.Update(msg)
	return m, cmd
}

func (m Model) refresh() (tea.Model, tea.Cmd) {
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, recommend(m.client, m.query))
}

func (m *Model) selectCombo(i int) {
	if m.result == nil || len(m.result.Recommendations) == 0 {
		m.selected = 0
		m.items.SetRows(nil)
		return
	}
	n := len(m.result.Recommendations)
	m.selected = ((i % n) + n) % n
	rows := make([]table.Row, 0, len(m.result.Recommendations[m.selected].Items))
	for _, it := range m.result.Recommendations[m.selected].Items {
		rows = append(rows, table.Row{it.Category, it.Name, it.Note})
	}
	m.items.SetRows(rows)
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Combo Planner") + "\n\n")
	b.WriteString(infoStyle.Render(queryLine(m.query)) + "\n\n")

	switch {
	case m.editing:
		b.WriteString("Diet flags (comma separated):\n" + m.dietInput.View() + "\n")
		b.WriteString(helpStyle.Render("enter apply • esc cancel"))
		return docStyle.Render(b.String())
	case m.loading:
		b.WriteString(m.spinner.View() + " Planning combos...\n")
	case m.error != "":
		b.WriteString(errorStyle.Render(m.error) + "\n")
	case m.result == nil || len(m.result.Recommendations) == 0:
		b.WriteString("No combos fit these preferences.\n")
	default:
		b.WriteString(comboView(m.result, m.selected) + "\n")
		b.WriteString(m.items.View() + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("r regenerate • m meal • +/- party • s spice • a alcohol • p portion • d diet • tab next combo • q quit"))
	return docStyle.Render(b.String())
}

func comboView(res *Result, selected int) string {
	rec := res.Recommendations[selected]
	view := fmt.Sprintf("%s (%d/%d)", lipgloss.NewStyle().Bold(true).Render(rec.Title), selected+1, len(res.Recommendations))
	if res.Strategy != "" {
		view += helpStyle.Render("  via " + res.Strategy)
	}
	view += "\n"
	if len(rec.Tags) > 0 {
		view += "Tags: " + strings.Join(rec.Tags, ", ") + "\n"
	}
	view += fmt.Sprintf("Per person: %s   Total: %s\n", rec.EstimatePerPerson, rec.EstimateTotal)
	if rec.Rationale != "" {
		view += rec.Rationale + "\n"
	}
	return view
}

func queryLine(q Query) string {
	diet := "none"
	if len(q.Diet) > 0 {
		diet = strings.Join(q.Diet, "+")
	}
	line := fmt.Sprintf("%s • party %d • diet %s • %s spice • %s • %s • variant %d",
		q.Meal, q.PartySize, diet, q.Spice, q.Alcohol, q.PortionPref, q.Variant)
	if q.Budget != nil {
		line += fmt.Sprintf(" • budget $%.0f", *q.Budget)
	}
	return line
}

func next(options []string, current string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func parseDiet(raw string) []string {
	diet := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			diet = append(diet, part)
		}
	}
	return diet
}

// recommend fetches combos for the query
func recommend(client recommender, q Query) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		res, err := client.Recommend(ctx, q)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching combos: %v", err)}
		}
		return resultMsg{result: res}
	}
}

func main() {
	q := Query{}
	var budget float64
	flag.StringVar(&q.Meal, "meal", "dinner", "meal period: dinner, lunch or brunch")
	flag.IntVar(&q.PartySize, "party", 2, "party size (1-10)")
	diet := flag.String("diet", "", "comma separated diet flags")
	flag.StringVar(&q.Spice, "spice", "medium", "spice tolerance: mild, medium or hot")
	flag.StringVar(&q.Alcohol, "alcohol", "any", "drink preference: any, none, beer, wine or cocktail")
	flag.StringVar(&q.PortionPref, "portion", "filling", "portion preference: light or filling")
	flag.Float64Var(&budget, "budget", 0, "per person budget, 0 for none")
	flag.Parse()

	q.Diet = parseDiet(*diet)
	if budget > 0 {
		q.Budget = &budget
	}

	client := NewApiClient()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := client.CheckHealth(ctx); err != nil {
		fmt.Printf("Warning: API server at %s is not available: %v\n", client.BaseURL, err)
	}
	cancel()

	p := tea.NewProgram(initialModel(client, q), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
