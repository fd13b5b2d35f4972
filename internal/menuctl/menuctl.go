// Package menuctl implements the menuctl command line client of the clinic
// admin service: logging in, checking routes against the stored session
// and editing which menus a role may open.
package menuctl

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/clinicadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/clinicadmin/pkg/navguard"
)

var (
	// ErrUsage is returned for unknown commands and bad flags.
	ErrUsage = errors.New("menuctl: usage")

	// ErrDenied is returned by "can" when the path is not granted.
	ErrDenied = errors.New("menuctl: access denied")

	// ErrNotLoggedIn is returned by commands that need a session.
	ErrNotLoggedIn = errors.New("menuctl: not logged in, run \"menuctl login\"")
)

// CLI holds what the commands share. Run dispatches on the first argument.
type CLI struct {
	BaseURL    string
	HTTPClient *http.Client // optional
	Sessions   *navguard.SessionContext
	Logger     *slog.Logger

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run executes one command.
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.usage()
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return c.login(ctx, rest)
	case "logout":
		return c.logout(ctx)
	case "whoami":
		return c.whoami(ctx, rest)
	case "can":
		return c.can(ctx, rest)
	case "roles":
		return c.roles(ctx)
	case "tree":
		return c.tree(ctx)
	case "edit":
		return c.edit(ctx, rest)
	case "help", "-h", "--help":
		c.usage()
		return nil
	default:
		fmt.Fprintf(c.Err, "unknown command: %s\n\n", cmd)
		c.usage()
		return ErrUsage
	}
}

func (c *CLI) usage() {
	fmt.Fprint(c.Err, `Usage: menuctl <command> [options]

Commands:
  login -u <username> [-p <password>]   log in, password read from stdin if omitted
  logout                                forget the stored session
  whoami [-refresh]                     show the stored session
  can <path>                            check a route against the granted paths
  roles                                 list roles
  tree                                  show the menu tree
  edit -role <id> [-toggle <menuId>]... [-select-all] [-yes] [-concurrency <n>]
                                        change the menus granted to a role

Environment:
  CLINIC_ADMIN_URL       service base URL (default http://localhost:8080)
  CLINIC_SESSION_FILE    session file (default ~/.config/clinicadmin/session.json)
`)
}

func (c *CLI) client() *adminsdk.SDKClient {
	client := adminsdk.NewSDKClient(c.BaseURL)
	if c.HTTPClient != nil {
		client.HTTPClient = c.HTTPClient
	}
	return client
}

// session restores the stored session as an SDK session.
func (c *CLI) session(ctx context.Context) (*adminsdk.Session, error) {
	if err := c.Sessions.Load(ctx); err != nil {
		if errors.Is(err, navguard.ErrNoSession) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	ns, err := c.Sessions.Current()
	if err != nil {
		return nil, ErrNotLoggedIn
	}
	return c.client().ResumeSession(ns), nil
}

func (c *CLI) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.Err)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ErrUsage
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

// idList is a repeatable int64 flag.
type idList []int64

func (l *idList) String() string {
	parts := make([]string, len(*l))
	for i, id := range *l {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func (l *idList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid menu id %q", part)
		}
		*l = append(*l, id)
	}
	return nil
}
