// Package cli implements the moodctl command line client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/limbo/moodtrack/internal/client"
	errorvalues "github.com/limbo/moodtrack/internal/error_values"
)

const requestTimeout = 15 * time.Second

// App holds what the commands need. ReadPassword and Now may be nil.
type App struct {
	Store        client.MoodStore
	Sessions     client.SessionStore
	Now          func() time.Time
	ReadPassword func() (string, error)
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) session() (*client.Session, error) {
	s, err := a.Sessions.Load()
	if err != nil {
		if errors.Is(err, errorvalues.ErrAuthRequired) {
			return nil, errors.New("not signed in, run 'moodctl login' first")
		}
		return nil, err
	}
	return s, nil
}

// password prompts on stderr. Input is hidden on a terminal, otherwise one
// line is read from the command's stdin.
func (a *App) password(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	if a.ReadPassword != nil {
		return a.ReadPassword()
	}
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) && cmd.InOrStdin() == os.Stdin {
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// storeMessage keeps the server's wording, used where a 401 means wrong
// credentials rather than an expired session.
func storeMessage(err error) error {
	var storeErr *client.StoreError
	if errors.As(err, &storeErr) {
		return errors.New(storeErr.Message)
	}
	return err
}

// describe turns store failures into one user facing line.
func describe(err error) error {
	var storeErr *client.StoreError
	switch {
	case errors.Is(err, errorvalues.ErrAuthRequired):
		return errors.New("session expired, run 'moodctl login' again")
	case errors.As(err, &storeErr):
		return errors.New(storeErr.Message)
	default:
		return err
	}
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, requestTimeout)
}

func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "moodctl",
		Short: "MoodTrack - log how you feel, see your week",
		Long: `moodctl talks to a MoodTrack API server. Sign in once with 'moodctl login';
the session is kept in $MOODTRACK_HOME (default ~/.moodtrack).`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		newRegisterCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newSubmitCmd(app),
		newHomeCmd(app),
		newTrendsCmd(app),
	)
	return rootCmd
}

// Execute is the entry point called from main.
func Execute(app *App) {
	if err := NewRootCmd(app).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
