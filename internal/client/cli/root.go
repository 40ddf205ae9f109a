package cli

import (
	"context"
	"fmt"
	"strings"
)

// getStatus renders the prompt decoration, e.g. "(Demo User online)".
func (a *App) getStatus() string {
	var parts []string
	if u := a.session.CurrentUser(); u != nil {
		parts = append(parts, u.Name)
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if a.session.Busy() {
		parts = append(parts, "busy")
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// Root runs the interactive session until the user exits or input ends.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to Ishara CLI (type 'help' for commands)")
	if u := a.session.CurrentUser(); u != nil {
		fmt.Fprintf(a.out, "Signed in as %s <%s>\n", u.Name, u.Email)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
