// Package menuperm edits which menus a role may open.
//
// An Editor loads the role catalog, the flat menu list and the persisted
// role/menu assignments from a Backend, builds a menutree.Forest, and keeps
// a Selection for the active role:
//
//	ed := menuperm.NewEditor(backend, menuperm.WithLogger(logger))
//	if err := ed.Load(ctx); err != nil {
//		return err
//	}
//	_ = ed.SetActiveRole(2)
//	_, _ = ed.Toggle(7)
//	res, err := ed.Save(ctx, askUser)
//	if errors.Is(err, menuperm.ErrSyncFailed) {
//		for _, o := range res.Failed() {
//			log.Printf("%s %d: %v", o.Op, o.MenuID, o.Err)
//		}
//	}
//
// Toggling a node selects or clears its whole subtree and then re-checks the
// immediate parent only: a parent is selected exactly when all its direct
// children are. Grandparents are not re-evaluated in the same toggle.
//
// Saving diffs the selection against the persisted assignments and issues
// one grant or revoke per changed menu, all concurrently. Failed calls are
// reported per menu in a BatchResult and nothing is rolled back.
package menuperm
