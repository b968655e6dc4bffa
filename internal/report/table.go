package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Aman-CERP/wordrank/internal/output"
)

const barWidth = 20

func writeTable(w io.Writer, rep Report, st output.Styles) error {
	rankW, wordW, countW := len("RANK"), len("WORD"), len("COUNT")
	var maxCount int64
	for _, word := range rep.Words {
		rankW = max(rankW, len(strconv.Itoa(word.Rank)))
		wordW = max(wordW, lipgloss.Width(word.Word))
		countW = max(countW, len(strconv.FormatInt(word.Count, 10)))
		maxCount = max(maxCount, word.Count)
	}

	var sb strings.Builder

	header := fmt.Sprintf("%*s  %s  %*s  %s",
		rankW, "RANK", padRight("WORD", wordW), countW, "COUNT", "SHARE")
	sb.WriteString(st.Header.Render(header))
	sb.WriteString("\n")
	sb.WriteString(st.Border.Render(strings.Repeat("─", rankW+wordW+countW+barWidth+6)))
	sb.WriteString("\n")

	for _, word := range rep.Words {
		sb.WriteString(st.Rank.Render(fmt.Sprintf("%*d", rankW, word.Rank)))
		sb.WriteString("  ")
		sb.WriteString(st.Word.Render(padRight(word.Word, wordW)))
		sb.WriteString("  ")
		sb.WriteString(st.Count.Render(fmt.Sprintf("%*d", countW, word.Count)))
		sb.WriteString("  ")
		sb.WriteString(st.Bar.Render(output.Bar(word.Count, maxCount, barWidth)))
		sb.WriteString("\n")
	}

	sb.WriteString(st.Dim.Render(fmt.Sprintf("%d tokens, %d distinct, %d shown", rep.Tokens, rep.Distinct, len(rep.Words))))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// padRight pads by display width so wide runes keep columns aligned.
func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
