package menuctl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aussiebroadwan/clinicadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/clinicadmin/pkg/menuperm"
)

// edit loads the editor for one role, applies the requested toggles, shows
// the resulting tree and plan, and saves after confirmation.
func (c *CLI) edit(ctx context.Context, args []string) error {
	fs := c.newFlagSet("edit")
	roleID := fs.Int64("role", 0, "role to edit")
	var toggles idList
	fs.Var(&toggles, "toggle", "menu id to toggle with its subtree, repeatable or comma separated")
	selectAll := fs.Bool("select-all", false, "toggle select all before applying -toggle")
	yes := fs.Bool("yes", false, "save without asking")
	concurrency := fs.Int("concurrency", 0, "max parallel grant/revoke calls, 0 issues all at once")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *roleID <= 0 {
		return fmt.Errorf("%w: -role is required", ErrUsage)
	}
	if *concurrency < 0 {
		return fmt.Errorf("%w: -concurrency must not be negative", ErrUsage)
	}

	sess, err := c.session(ctx)
	if err != nil {
		return err
	}

	ed := menuperm.NewEditor(adminsdk.EditorBackend{Session: sess},
		menuperm.WithLogger(c.Logger),
		menuperm.WithConcurrency(*concurrency),
	)
	if err := ed.Load(ctx); err != nil {
		return fmt.Errorf("load permissions: %w", err)
	}

	idx := slices.IndexFunc(ed.Roles(), func(r menuperm.Role) bool { return r.ID == *roleID })
	if idx < 0 {
		return fmt.Errorf("role %d not found", *roleID)
	}
	if err := ed.SetActiveRole(*roleID); err != nil {
		return err
	}

	if *selectAll {
		if err := ed.ToggleSelectAll(); err != nil {
			return err
		}
	}
	for _, id := range toggles {
		ok, err := ed.Toggle(id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("menu %d is not in the tree", id)
		}
	}

	fmt.Fprintf(c.Out, "Role %s (%d)\n", ed.Roles()[idx].Name, *roleID)
	c.printSelection(ed)

	plan, err := ed.Pending()
	if err != nil {
		return err
	}
	if plan.Empty() {
		fmt.Fprintln(c.Out, "No changes")
		return nil
	}

	confirm := menuperm.AlwaysConfirm
	if !*yes {
		confirm = c.confirm
	}
	res, err := ed.Save(ctx, confirm)
	if errors.Is(err, menuperm.ErrCancelled) {
		fmt.Fprintln(c.Out, "Cancelled, nothing saved")
		return nil
	}
	c.printResult(res)
	return err
}

// printSelection draws the forest with [x] checked, [-] partly checked
// and [ ] unchecked boxes, followed by the selected/total count.
func (c *CLI) printSelection(ed *menuperm.Editor) {
	forest := ed.Forest()
	var walk func(ids []int64)
	walk = func(ids []int64) {
		for _, id := range ids {
			node, _ := forest.Node(id)
			box := "[ ]"
			switch st := ed.State(id); {
			case st.Checked:
				box = "[x]"
			case st.Indeterminate:
				box = "[-]"
			}
			fmt.Fprintf(c.Out, "%s%s %s\n", strings.Repeat("  ", node.Depth), box, describe(node.Item))
			walk(forest.Children(id))
		}
	}
	walk(forest.Roots())

	selected, total := ed.Counts()
	fmt.Fprintf(c.Out, "%d of %d selected\n", selected, total)
}

// confirm prints the plan and reads y/N from In.
func (c *CLI) confirm(p menuperm.Plan) bool {
	fmt.Fprintf(c.Out, "Grant %s, revoke %s. Save? [y/N] ", formatIDs(p.Grant), formatIDs(p.Revoke))
	line, _ := bufio.NewReader(c.In).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (c *CLI) printResult(res menuperm.BatchResult) {
	for _, o := range res.Outcomes {
		if o.OK() {
			fmt.Fprintf(c.Out, "  %-6s menu %d: ok\n", o.Op, o.MenuID)
		} else {
			fmt.Fprintf(c.Out, "  %-6s menu %d: %v\n", o.Op, o.MenuID, o.Err)
		}
	}
	if len(res.Outcomes) > 0 {
		fmt.Fprintf(c.Out, "%d ok, %d failed\n", len(res.Succeeded()), len(res.Failed()))
	}
}

func formatIDs(ids []int64) string {
	if len(ids) == 0 {
		return "nothing"
	}
	l := idList(ids)
	return l.String()
}
