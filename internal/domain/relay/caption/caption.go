// Package caption renders the attribution caption attached to delivered media
package caption

import (
	"fmt"
	"html"
	"strings"

	"github.com/mexanickx/mexanicke/internal/domain/relay/entities"
)

// Build returns the two-line HTML caption naming the requester
func Build(r entities.Requester, botHandle string) string {
	name := html.EscapeString(displayName(r))
	footer := fmt.Sprintf("🔗 Via @%s", strings.TrimPrefix(botHandle, "@"))

	if r.Username != "" {
		return fmt.Sprintf(
			`<b>👤 Sender: </b><a href="https://t.me/%s"><b>%s</b></a>`+"\n<b>%s</b>",
			html.EscapeString(r.Username), name, footer,
		)
	}

	return fmt.Sprintf("<b>👤 Sender: %s\n%s</b>", name, footer)
}

func displayName(r entities.Requester) string {
	if name := strings.TrimSpace(r.FullName); name != "" {
		return name
	}
	if r.Username != "" {
		return r.Username
	}
	return fmt.Sprintf("user %d", r.ID)
}
