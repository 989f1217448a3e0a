package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const PageTitle = "Index vs No Index"

// ShellPage lays the panels out side by side
func ShellPage(views []PanelView, topN int) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<main class="shell">`); err != nil {
			return err
		}
		for _, v := range views {
			if err := Panel(v, topN).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main>`)
		return err
	})

	return BaseLayout(PageTitle, body)
}
