package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/ishara/internal/client/config"
	"github.com/dmitrijs2005/ishara/internal/client/models"
	"github.com/dmitrijs2005/ishara/internal/client/session"
	"github.com/stretchr/testify/assert"
)

func TestGetStatus(t *testing.T) {
	tests := []struct {
		name string
		s    *fakeSession
		mode Mode
		want string
	}{
		{name: "anonymous, no probe", s: &fakeSession{state: session.StateAnonymous}, want: ""},
		{name: "signed in", s: &fakeSession{state: session.StateAuthenticated, user: &models.User{Name: "Sam"}}, want: "(Sam)"},
		{name: "signed in online", s: &fakeSession{state: session.StateAuthenticated, user: &models.User{Name: "Sam"}}, mode: ModeOnline, want: "(Sam online)"},
		{name: "busy offline", s: &fakeSession{state: session.StateAnonymous, busy: true}, mode: ModeOffline, want: "(offline busy)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(tt.s)
			a.mode = tt.mode
			assert.Equal(t, tt.want, a.getStatus())
		})
	}
}

func TestRoot_GreetsRestoredUserAndExits(t *testing.T) {
	capturePrintln(t)

	s := &fakeSession{state: session.StateAuthenticated, user: &models.User{Name: "Sam", Email: "s@x.com"}}
	a, out := newTestApp(s)
	a.config = &config.Config{}
	a.reader = bufio.NewReader(strings.NewReader("exit\n"))

	a.Root(context.Background())

	assert.Contains(t, out.String(), "Welcome to Ishara CLI")
	assert.Contains(t, out.String(), "Signed in as Sam <s@x.com>")
}
