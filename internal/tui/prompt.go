package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// ErrAborted is returned when the player quits the prompt instead of
// choosing an action.
var ErrAborted = errors.New("tui: prompt aborted")

// promptModel is the Bubble Tea model for a single hit-or-stand decision
type promptModel struct {
	snapshot game.RoundSnapshot
	input    textinput.Model

	action  game.Action
	done    bool
	aborted bool
	errMsg  string
}

// newPromptModel creates a prompt model for one decision
func newPromptModel(snapshot game.RoundSnapshot) *promptModel {
	ti := textinput.New()
	ti.Placeholder = "hit or stand"
	ti.Focus()
	ti.CharLimit = 20
	ti.Width = 30
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &promptModel{
		snapshot: snapshot,
		input:    ti,
	}
}

// Init initializes the prompt model
func (m *promptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the prompt
func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				return m, nil
			}

			action, err := game.ParseAction(value)
			if err != nil {
				m.errMsg = fmt.Sprintf("Unknown action %q, type hit or stand", value)
				m.input.SetValue("")
				return m, nil
			}
			if !m.snapshot.Allows(action) {
				m.errMsg = fmt.Sprintf("%s is not available right now", action)
				m.input.SetValue("")
				return m, nil
			}

			m.action = action
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt
func (m *promptModel) View() string {
	var content strings.Builder

	content.WriteString(HandInfoStyle.Render(fmt.Sprintf("Your hand: %s (%s)",
		formatCards(m.snapshot.Hand.Cards()), totalLabel(m.snapshot.Hand))))
	content.WriteString("\n")
	content.WriteString(HandInfoStyle.Render(fmt.Sprintf("Dealer shows: [%s ??]",
		formatCard(m.snapshot.DealerUpcard))))
	content.WriteString("\n")
	content.WriteString(ActionsStyle.Render("Actions: " + formatActions(m.snapshot.AllowedActions)))
	content.WriteString("\n")
	content.WriteString(m.input.View())
	content.WriteString("\n")

	if m.errMsg != "" {
		content.WriteString(ErrorStyle.Render(m.errMsg))
		content.WriteString("\n")
	}

	content.WriteString(InfoStyle.Render("Enter to submit • Ctrl+C to quit"))
	content.WriteString("\n")

	return content.String()
}

// formatActions renders the allowed actions as bracketed labels
func formatActions(actions []game.Action) string {
	var rendered []string
	for _, action := range actions {
		rendered = append(rendered, fmt.Sprintf("[%s]", action))
	}
	return strings.Join(rendered, " ")
}

// totalLabel describes the hand total, marking soft totals
func totalLabel(hand game.Hand) string {
	if hand.IsSoft() {
		return fmt.Sprintf("soft %d", hand.BestValue())
	}
	return fmt.Sprintf("%d", hand.BestValue())
}

// formatCards formats cards with colors
func formatCards(cards []deck.Card) string {
	var formatted []string
	for _, card := range cards {
		formatted = append(formatted, formatCard(card))
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

func formatCard(card deck.Card) string {
	if card.IsRed() {
		return RedCardStyle.Render(card.String())
	}
	return BlackCardStyle.Render(card.String())
}

// PromptAction runs an inline prompt for one decision and blocks until the
// player submits an action or aborts.
func PromptAction(snapshot game.RoundSnapshot) (game.Action, error) {
	final, err := tea.NewProgram(newPromptModel(snapshot)).Run()
	if err != nil {
		return 0, fmt.Errorf("running prompt: %w", err)
	}

	m := final.(*promptModel)
	if m.aborted || !m.done {
		return 0, ErrAborted
	}
	return m.action, nil
}
