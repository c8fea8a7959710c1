// Package render turns extracted report blocks into the combined HTML
// document shared in chat. The markup is deliberately old-fashioned, inline
// styles on small tables, because the messaging client that displays it
// strips stylesheets.
package render

import (
	"fmt"
	"strings"

	"weeklyreport/extract"
)

// Sections holds the extracted blocks of one reporting period. A nil block
// means that section could not be loaded; it renders as an inline error
// paragraph instead of dropping silently.
type Sections struct {
	MFA     *extract.Block
	GSNvsAD *extract.Block
	GSNvsER *extract.Block
	ER      *extract.Block
}

// Empty reports whether no section carries data.
func (s Sections) Empty() bool {
	return s.MFA == nil && s.GSNvsAD == nil && s.GSNvsER == nil && s.ER == nil
}

// Renderer builds the combined document. SectionKeywords mark MFA rows that
// open a topic section (light blue, full width).
type Renderer struct {
	SectionKeywords []string
}

// Document renders the complete HTML page for one period.
func (r *Renderer) Document(s Sections, dateRange string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n    <meta charset=\"UTF-8\">\n")
	fmt.Fprintf(&b, "    <title>%s Weekly Report</title>\n", dateRange)
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s Weekly Report</h1>\n", dateRange)
	b.WriteString("<h2>MFA & AD/EDS</h2>\n")
	b.WriteString(r.Tables(s))
	b.WriteString("\n</body>\n</html>")
	return b.String()
}

// Tables renders the four section tables without the page wrapper.
func (r *Renderer) Tables(s Sections) string {
	var b strings.Builder

	if s.MFA != nil {
		r.mfaTable(&b, s.MFA)
	} else {
		b.WriteString("<p style=\"color: red;\">MFA data could not be loaded.</p>\n")
	}

	b.WriteString("<br><h2>GSN VS AD</h2>\n")
	if s.GSNvsAD != nil {
		r.gsnVsADTable(&b, s.GSNvsAD)
	} else {
		b.WriteString("<p style=\"color: red;\">GSN VS AD data could not be loaded.</p>\n")
	}

	b.WriteString("<br><h2>GSN VS ER</h2>\n")
	if s.GSNvsER != nil {
		r.gsnVsERTable(&b, s.GSNvsER)
	} else {
		b.WriteString("<p style=\"color: red;\">GSN VS ER data could not be loaded.</p>\n")
	}

	b.WriteString("<br><h2>ER</h2>\n")
	if s.ER != nil {
		r.erTable(&b, s.ER)
	} else {
		b.WriteString("<p style=\"color: red;\">ER data could not be loaded.</p>\n")
	}

	if s.Empty() {
		b.WriteString("<p>No data found for the specified date range.</p>\n")
	}
	return b.String()
}

func (r *Renderer) mfaTable(b *strings.Builder, block *extract.Block) {
	openTable(b)
	for i, row := range block.Rows {
		b.WriteString("<tr>\n")
		switch {
		case i == 0:
			fmt.Fprintf(b, "<td colspan=\"4\" style=\"background-color: #EDEDED; color: #000000; font-weight: bold;\"><b>%s</b></td>\n",
				plain(row, 0))
		case i == 1:
			headers := []string{"Updates for AD/EDS Clean up & MFA", "Incident Ticket", "Remarks", "Status"}
			for col, header := range headers {
				fmt.Fprintf(b, "<td style=\"background-color: #FFFFFF; color: #FF0000; font-weight: bold;\">%s</td>\n",
					span(col == 3, "<b>"+header+"</b>"))
			}
		case r.isSectionHeader(row):
			for col := 0; col < 4; col++ {
				content := ""
				if col == 0 {
					content = plain(row, 0)
				}
				fmt.Fprintf(b, "<td style=\"background-color: #DDEBF7; color: #000000; font-weight: bold;\">%s</td>\n",
					span(col == 3, "<b>"+content+"</b>"))
			}
		case i >= len(block.Rows)-2 && isCompletedByRow(row):
			for col := 0; col < 4; col++ {
				fmt.Fprintf(b, "<td style=\"background-color: #FFFF00; color: #FF0000; font-weight: bold;\">%s</td>\n",
					span(col == 3, "<b>"+plain(row, col)+"</b>"))
			}
		default:
			for col := 0; col < 4; col++ {
				value := plain(row, col)
				switch {
				case col == 1 && strings.Contains(value, "INC"):
					fmt.Fprintf(b, "<td style=\"background-color: #FFFFFF; color: #FF0000; font-weight: bold;\">%s</td>\n",
						span(false, "<b>"+value+"</b>"))
				case col == 3 && value == "Pending":
					fmt.Fprintf(b, "<td style=\"background-color: #FFEB9C; color: #9C5700; font-weight: normal;\">%s</td>\n",
						span(true, value))
				case col == 3 && value == "Completed":
					fmt.Fprintf(b, "<td style=\"background-color: #C6EFCE; color: #006100; font-weight: normal;\">%s</td>\n",
						span(true, value))
				default:
					fmt.Fprintf(b, "<td style=\"background-color: #FFFFFF; color: #000000; font-weight: normal;\">%s</td>\n",
						span(col == 3, value))
				}
			}
		}
		b.WriteString("</tr>")
	}
	closeTable(b)
}

func (r *Renderer) gsnVsADTable(b *strings.Builder, block *extract.Block) {
	openTable(b)
	for _, row := range block.Rows {
		b.WriteString("<tr>\n")
		first := plain(row, 0)
		switch {
		case strings.Contains(first, "GSN VS AD"):
			fmt.Fprintf(b, "<td colspan=\"6\" style=\"background-color: #AEAAAA; color: #000000; font-weight: bold;\"><b>%s</b></td>\n", first)
		case first == "In GSN not in AD":
			headers := []string{"In GSN not in AD", "Remarks", "Action", "In AD not in GSN", "Remarks", "Action"}
			for col, header := range headers {
				fmt.Fprintf(b, "<td style=\"background-color: #FFFF00; color: #000000; font-weight: bold;\">%s</td>\n",
					span(col >= 3, "<b>"+header+"</b>"))
			}
		default:
			for col := 0; col < 6; col++ {
				fmt.Fprintf(b, "<td style=\"background-color: #FFFFFF; color: #000000; font-weight: normal;\">%s</td>\n",
					span(col >= 3, plain(row, col)))
			}
		}
		b.WriteString("</tr>")
	}
	closeTable(b)
}

func (r *Renderer) gsnVsERTable(b *strings.Builder, block *extract.Block) {
	openTable(b)
	for _, row := range block.Rows {
		b.WriteString("<tr>\n")
		for col := 0; col < 2; col++ {
			if col >= len(row.Cells) {
				fmt.Fprintf(b, "<td style=\"background-color: #FFFFFF; color: #000000; font-weight: normal;\">%s</td>\n", span(false, ""))
				continue
			}
			cell := row.Cells[col]
			weight := "normal"
			if cell.Bold {
				weight = "bold"
			}
			fmt.Fprintf(b, "<td style=\"background-color: #FFFFFF; color: #000000; font-weight: %s;\">%s</td>\n",
				weight, span(false, content(cell)))
		}
		b.WriteString("</tr>")
	}
	closeTable(b)
}

func (r *Renderer) erTable(b *strings.Builder, block *extract.Block) {
	openTable(b)
	for i, row := range block.Rows {
		b.WriteString("<tr>\n")
		if i == 0 && row.Colspan == 3 {
			fmt.Fprintf(b, "<td colspan=\"3\" style=\"background-color: #AEAAAA; color: #000000; font-weight: bold;\"><b>%s</b></td>\n",
				plain(row, 0))
		} else {
			for col := 0; col < 3; col++ {
				value := ""
				if col < len(row.Cells) {
					value = content(row.Cells[col])
				}
				fmt.Fprintf(b, "<td style=\"background-color: #FFFFFF; color: #000000; font-weight: normal;\">%s</td>\n",
					span(false, value))
			}
		}
		b.WriteString("</tr>")
	}
	closeTable(b)
}

func (r *Renderer) isSectionHeader(row extract.Row) bool {
	first := plain(row, 0)
	if first == "" {
		return false
	}
	for _, keyword := range r.SectionKeywords {
		if strings.Contains(first, keyword) {
			return true
		}
	}
	return false
}

func isCompletedByRow(row extract.Row) bool {
	for col := range row.Cells {
		if strings.Contains(strings.ToLower(plain(row, col)), "completed by for") {
			return true
		}
	}
	return false
}

func openTable(b *strings.Builder) {
	b.WriteString("<table border=\"1\" style=\"font-size: 5px;\">\n<tbody>\n")
}

func closeTable(b *strings.Builder) {
	b.WriteString("</tbody>\n</table>\n")
}

// content keeps the cell's inline markup: "<br>" for empty cells, bold
// wrappers for bold cells.
func content(cell extract.Cell) string {
	return cell.Content
}

// plain strips the extraction markers from a cell for rows where the value
// feeds a styled template instead of flowing through as-is.
func plain(row extract.Row, col int) string {
	if col >= len(row.Cells) {
		return ""
	}
	value := row.Cells[col].Content
	if value == "<br>" {
		return ""
	}
	value = strings.TrimPrefix(value, "<b>")
	value = strings.TrimSuffix(value, "</b>")
	return value
}

// span wraps a value in the sizing span the chat client respects. The status
// and action columns get a smaller, non-wrapping span.
func span(narrow bool, value string) string {
	if narrow {
		return "<span style=\"font-size: 6px; white-space: nowrap;\">" + value + "</span>"
	}
	return "<span style=\"font-size: 7px;\">" + value + "</span>"
}
