package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/Bhavya700/CSE-412/internal/ui/types"
)

// NoResultsMessage is displayed in place of the table when there are no rows
const NoResultsMessage = "No results found."

// ResultTable renders the rows in the order supplied, or a placeholder when there are none
func ResultTable(rows []types.Player, theme types.Theme) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)

		if len(rows) == 0 {
			hw.raw(`<div class="no-results">`)
			hw.text(NoResultsMessage)
			hw.raw(`</div>`)
			return hw.err
		}

		hw.raw(`<div class="table-wrapper"><table class="results"><thead`)
		hw.attr("class", "theme-"+string(theme))
		hw.raw(`><tr>`,
			`<th scope="col">ID</th>`,
			`<th scope="col">Name</th>`,
			`<th scope="col">Nation</th>`,
			`<th scope="col">Club</th>`,
			`<th scope="col" class="num">Rating</th>`,
			`<th scope="col" class="num">Pace</th>`,
			`</tr></thead><tbody>`)

		for _, p := range rows {
			hw.raw(`<tr`)
			hw.attr("data-player-id", strconv.Itoa(p.ID))
			hw.raw(`><td class="mono">`, strconv.Itoa(p.ID), `</td><td class="name">`)
			hw.text(p.Name)
			hw.raw(`</td><td>`)
			hw.text(p.Nation)
			hw.raw(`</td><td>`)
			hw.text(p.Club)
			hw.raw(`</td><td class="num">`, strconv.Itoa(p.Overall), `</td>`)
			hw.raw(`<td class="num strong">`, strconv.Itoa(p.Pace), `</td></tr>`)
		}

		hw.raw(`</tbody></table></div>`)
		return hw.err
	})
}
