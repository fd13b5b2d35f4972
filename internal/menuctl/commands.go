package menuctl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/clinicadmin/pkg/menutree"
	"github.com/aussiebroadwan/clinicadmin/pkg/navguard"
)

func (c *CLI) login(ctx context.Context, args []string) error {
	fs := c.newFlagSet("login")
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password (read from stdin when empty)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *username == "" {
		return fmt.Errorf("%w: -u is required", ErrUsage)
	}

	if *password == "" {
		fmt.Fprint(c.Err, "Password: ")
		line, err := bufio.NewReader(c.In).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read password: %w", err)
		}
		*password = strings.TrimRight(line, "\r\n")
	}

	sess, err := c.client().Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	if err := c.Sessions.Login(ctx, sess.NavSession()); err != nil {
		return err
	}

	c.Logger.Debug("logged in", "username", *username, "expires_at", sess.ExpiresAt())
	fmt.Fprintf(c.Out, "Logged in as %s until %s\n", *username, sess.ExpiresAt().Local().Format(time.DateTime))
	return nil
}

func (c *CLI) logout(ctx context.Context) error {
	if err := c.Sessions.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.Out, "Logged out")
	return nil
}

func (c *CLI) whoami(ctx context.Context, args []string) error {
	fs := c.newFlagSet("whoami")
	refresh := fs.Bool("refresh", false, "fetch the current profile from the service")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	sess, err := c.session(ctx)
	if err != nil {
		return err
	}
	if *refresh {
		if _, err := sess.Me(ctx); err != nil {
			return err
		}
		// Keep the refreshed grants for later "can" checks.
		if err := c.Sessions.Login(ctx, sess.NavSession()); err != nil {
			return err
		}
	}

	u := sess.User()
	tw := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Username:\t%s\n", u.Username)
	if u.RoleName != "" {
		fmt.Fprintf(tw, "Role:\t%s (%d)\n", u.RoleName, u.RoleID)
	} else {
		fmt.Fprintf(tw, "Role:\t%d\n", u.RoleID)
	}
	fmt.Fprintf(tw, "Scopes:\t%s\n", strings.Join(sess.Scopes(), " "))
	fmt.Fprintf(tw, "Paths:\t%s\n", strings.Join(u.GrantedPaths, " "))
	fmt.Fprintf(tw, "Expires:\t%s\n", sess.ExpiresAt().Local().Format(time.DateTime))
	return tw.Flush()
}

func (c *CLI) can(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: can takes exactly one path", ErrUsage)
	}
	if err := c.Sessions.Load(ctx); err != nil && !errors.Is(err, navguard.ErrNoSession) {
		return err
	}

	if c.Sessions.Allowed(args[0]) {
		fmt.Fprintf(c.Out, "allowed: %s\n", args[0])
		return nil
	}
	fmt.Fprintf(c.Out, "denied: %s\n", args[0])
	return ErrDenied
}

func (c *CLI) roles(ctx context.Context) error {
	sess, err := c.session(ctx)
	if err != nil {
		return err
	}
	roles, err := sess.ListRoles(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSCOPES")
	for _, r := range roles {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", r.ID, r.Name, strings.Join(r.Scopes, " "))
	}
	return tw.Flush()
}

func (c *CLI) tree(ctx context.Context) error {
	sess, err := c.session(ctx)
	if err != nil {
		return err
	}
	roots, err := sess.MenuTree(ctx)
	if err != nil {
		return err
	}

	var walk func(nodes []*menutree.TreeNode, depth int)
	walk = func(nodes []*menutree.TreeNode, depth int) {
		for _, n := range nodes {
			fmt.Fprintf(c.Out, "%s%s\n", strings.Repeat("  ", depth), describe(n.Item))
			walk(n.Children, depth+1)
		}
	}
	walk(roots, 0)
	return nil
}

// describe renders one menu line: "Title /path #id", flagged when inactive.
func describe(it menutree.Item) string {
	var b strings.Builder
	b.WriteString(it.Title)
	if it.Path != "" {
		b.WriteString(" " + it.Path)
	}
	fmt.Fprintf(&b, " #%d", it.ID)
	if !it.IsActive {
		b.WriteString(" (inactive)")
	}
	return b.String()
}
