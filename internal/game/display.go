package game

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack/internal/deck"
)

// DisplayStyles contains styling for round display
type DisplayStyles struct {
	Header     lipgloss.Style
	SubHeader  lipgloss.Style
	Winner     lipgloss.Style
	Loser      lipgloss.Style
	Push       lipgloss.Style
	CardRed    lipgloss.Style
	CardBlack  lipgloss.Style
	Money      lipgloss.Style
	Separator  lipgloss.Style
	PlayerName lipgloss.Style
	Muted      lipgloss.Style
}

// NewDisplayStyles creates a new set of display styles
func NewDisplayStyles() *DisplayStyles {
	return &DisplayStyles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2).
			Bold(true),
		SubHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Winner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Loser: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		Push: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		CardRed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Bold(true),
		Money: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		PlayerName: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// RoundDisplay renders rounds and reports for the console front end. The
// engine itself never prints; callers feed it results.
type RoundDisplay struct {
	styles *DisplayStyles
}

// NewRoundDisplay creates a new round display
func NewRoundDisplay() *RoundDisplay {
	return &RoundDisplay{
		styles: NewDisplayStyles(),
	}
}

// ShowRoundHeader displays the start-of-round banner
func (rd *RoundDisplay) ShowRoundHeader(round int, players int) {
	fmt.Println()
	fmt.Println(rd.styles.Header.Render(fmt.Sprintf("*** ROUND %d ***", round)))
	fmt.Printf("%d player(s) versus the dealer\n\n", players)
}

// ShowUpcard displays the dealer's visible card with the hole card hidden
func (rd *RoundDisplay) ShowUpcard(upcard deck.Card) {
	fmt.Printf("Dealer shows: [%s ??]\n", rd.formatCard(upcard))
}

// ShowHand displays a named hand with its best total
func (rd *RoundDisplay) ShowHand(name string, hand Hand) {
	total := hand.BestValue()
	label := fmt.Sprintf("(%d)", total)
	if hand.IsBlackjack() {
		label = rd.styles.Winner.Render("(blackjack)")
	} else if hand.IsBust() {
		label = rd.styles.Loser.Render(fmt.Sprintf("(bust, %d)", total))
	} else if hand.IsSoft() {
		label = fmt.Sprintf("(soft %d)", total)
	}
	fmt.Printf("%s: %s %s\n", rd.styles.PlayerName.Render(name), rd.FormatCards(hand.Cards()), label)
}

// ShowResults displays the settled results of a round
func (rd *RoundDisplay) ShowResults(results []Result) {
	fmt.Println()
	for _, r := range results {
		fmt.Println(rd.formatResult(r))
	}
}

// ShowBankrolls displays each player's bankroll after play
func (rd *RoundDisplay) ShowBankrolls(players []*Player) {
	fmt.Println()
	fmt.Println(rd.styles.SubHeader.Render("Bankrolls"))
	for _, p := range players {
		fmt.Printf("  %s: %s\n",
			rd.styles.PlayerName.Render(p.Name),
			rd.styles.Money.Render(fmt.Sprintf("$%.2f", p.Bankroll)))
	}
}

// ShowSeparator displays a horizontal rule between rounds
func (rd *RoundDisplay) ShowSeparator() {
	fmt.Println(rd.styles.Separator.Render(strings.Repeat("─", 47)))
}

func (rd *RoundDisplay) formatResult(r Result) string {
	name := rd.styles.PlayerName.Render(r.PlayerName)
	switch r.Outcome {
	case OutcomeSkip:
		return fmt.Sprintf("%s sits out %s", name, rd.styles.Muted.Render("(cannot cover bet)"))
	case OutcomeBlackjack:
		return fmt.Sprintf("%s %s with a natural! %s",
			name,
			rd.styles.Winner.Render("WINS"),
			rd.styles.Money.Render(fmt.Sprintf("+$%.2f", r.Payout)))
	case OutcomeWin:
		return fmt.Sprintf("%s %s %d v %d %s",
			name,
			rd.styles.Winner.Render("WINS"),
			r.PlayerTotal, r.DealerTotal,
			rd.styles.Money.Render(fmt.Sprintf("+$%.2f", r.Payout)))
	case OutcomeLose:
		reason := fmt.Sprintf("%d v %d", r.PlayerTotal, r.DealerTotal)
		if r.PlayerTotal > 21 {
			reason = fmt.Sprintf("busts on %d", r.PlayerTotal)
		}
		return fmt.Sprintf("%s %s %s %s",
			name,
			rd.styles.Loser.Render("LOSES"),
			reason,
			rd.styles.Money.Render(fmt.Sprintf("-$%.2f", -r.Payout)))
	default:
		return fmt.Sprintf("%s %s on %d",
			name,
			rd.styles.Push.Render("PUSHES"),
			r.PlayerTotal)
	}
}

// FormatCards formats cards with red/black coloring
func (rd *RoundDisplay) FormatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "[]"
	}

	var formatted []string
	for _, card := range cards {
		formatted = append(formatted, rd.formatCard(card))
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

func (rd *RoundDisplay) formatCard(card deck.Card) string {
	if card.IsRed() {
		return rd.styles.CardRed.Render(card.String())
	}
	return rd.styles.CardBlack.Render(card.String())
}
