package telegram

import "strings"

// keyboardColumns is the fixed button-grid width
const keyboardColumns = 3

// markdownV2Specials are the characters MarkdownV2 requires escaping.
// See https://core.telegram.org/bots/api#markdownv2-style
const markdownV2Specials = "_*[]()~`>#+-=|{}.!"

// EscapeMarkdownV2 escapes MarkdownV2 special characters
func EscapeMarkdownV2(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(markdownV2Specials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// buildMessage renders the post body: one address line and one country line
// per entry, a blank line between entries, and the channel handle footer
func buildMessage(entries []Entry, footer string) string {
	var lines []string
	for i, e := range entries {
		addr := EscapeMarkdownV2(e.AddressPort)
		if e.Link != "" {
			lines = append(lines, "🔒 Address & Port: ["+addr+"]("+EscapeMarkdownV2(e.Link)+")")
		} else {
			lines = append(lines, "🔒 Address & Port: "+addr)
		}

		if e.CountryName != "" && e.CountryName != "Unknown" && e.CountryEmoji != "" {
			lines = append(lines, "🌎 Country: "+e.CountryEmoji+" "+EscapeMarkdownV2(e.CountryName))
		} else if e.CountryName != "" && e.CountryName != "Unknown" {
			lines = append(lines, "🌎 Country: "+EscapeMarkdownV2(e.CountryName))
		} else {
			lines = append(lines, "🌎 Country: Unknown")
		}

		if i < len(entries)-1 {
			lines = append(lines, "")
		}
	}
	if footer != "" {
		lines = append(lines, "\n"+footer)
	}
	return strings.Join(lines, "\n")
}

// buildKeyboard lays Connect buttons out in a fixed-width grid, row-major
func buildKeyboard(entries []Entry, columns int) *replyMarkup {
	if columns <= 0 {
		columns = keyboardColumns
	}
	var rows [][]button
	var row []button
	for _, e := range entries {
		if e.Link == "" {
			continue
		}
		row = append(row, button{Text: "Connect", URL: e.Link})
		if len(row) == columns {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil
	}
	return &replyMarkup{InlineKeyboard: rows}
}
