package service

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store"
	"github.com/aussiebroadwan/clinicadmin/pkg/cryptox"
	"github.com/aussiebroadwan/clinicadmin/pkg/idx"
	"github.com/aussiebroadwan/clinicadmin/pkg/slogx"
	"gopkg.in/yaml.v3"
)

//go:embed seed_default.yaml
var defaultSeed []byte

// LoadSeedData reads seed data from path, or the built-in data when path is
// empty, and validates it.
func LoadSeedData(path string) (domain.SeedData, error) {
	raw := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return domain.SeedData{}, fmt.Errorf("read seed file: %w", err)
		}
		raw = b
	}
	return ParseSeedData(raw)
}

// ParseSeedData decodes YAML seed data and checks its references.
func ParseSeedData(raw []byte) (domain.SeedData, error) {
	var data domain.SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return domain.SeedData{}, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	if err := validateSeed(data); err != nil {
		return domain.SeedData{}, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	return data, nil
}

func validateSeed(data domain.SeedData) error {
	keys := map[string]bool{}
	var walk func([]domain.SeedMenu) error
	walk = func(menus []domain.SeedMenu) error {
		for _, m := range menus {
			if m.Key == "" || m.Title == "" {
				return fmt.Errorf("menu %q needs a key and a title", m.Key)
			}
			if keys[m.Key] {
				return fmt.Errorf("duplicate menu key %q", m.Key)
			}
			keys[m.Key] = true
			if err := walk(m.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(data.Menus); err != nil {
		return err
	}

	roles := map[string]bool{}
	for _, r := range data.Roles {
		if r.Name == "" {
			return fmt.Errorf("role without a name")
		}
		if roles[r.Name] {
			return fmt.Errorf("duplicate role %q", r.Name)
		}
		roles[r.Name] = true
		for _, k := range r.Menus {
			if k != "*" && !keys[k] {
				return fmt.Errorf("role %q grants unknown menu %q", r.Name, k)
			}
		}
	}

	if data.Admin.Username == "" {
		return fmt.Errorf("admin username is required")
	}
	if !roles[data.Admin.Role] {
		return fmt.Errorf("admin role %q is not defined", data.Admin.Role)
	}
	return nil
}

// SeedService fills an empty store with initial roles, menus, grants and an
// admin user.
type SeedService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
	Data   domain.SeedData
}

// SeedResult summarizes an applied seed.
type SeedResult struct {
	Roles  int
	Menus  int
	Grants int

	AdminUsername string
	// AdminPassword is set only when it was generated.
	AdminPassword string
}

// IsSeeded reports whether the store already holds roles or users.
func (s *SeedService) IsSeeded(ctx context.Context) (bool, error) {
	rolesEmpty, err := s.Store.Roles().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	usersEmpty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !rolesEmpty || !usersEmpty, nil
}

// Seed applies Data in one transaction. A store that already holds data is
// left alone and ErrAlreadySeeded is returned.
func (s *SeedService) Seed(ctx context.Context) (SeedResult, error) {
	l := slogx.FromContext(ctx)

	if seeded, err := s.IsSeeded(ctx); err != nil {
		return SeedResult{}, err
	} else if seeded {
		return SeedResult{}, ErrAlreadySeeded
	}

	res := SeedResult{AdminUsername: s.Data.Admin.Username}
	password := s.Data.Admin.Password
	if password == "" {
		generated, err := cryptox.GeneratePassword()
		if err != nil {
			return SeedResult{}, err
		}
		password = generated
		res.AdminPassword = generated
	}
	passHash, err := s.Hasher.Hash(password)
	if err != nil {
		return SeedResult{}, fmt.Errorf("hash admin password: %w", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Menus first so grants can resolve keys.
		menuIDs := map[string]int64{}
		var create func(parent *int64, menus []domain.SeedMenu) error
		create = func(parent *int64, menus []domain.SeedMenu) error {
			for _, m := range menus {
				created, err := tx.Menus().CreateMenu(ctx, domain.Menu{
					ParentID: parent,
					Title:    m.Title,
					Path:     m.Path,
					OrderNum: m.OrderNum,
					IsActive: !m.Inactive,
				})
				if err != nil {
					return fmt.Errorf("create menu %q: %w", m.Key, err)
				}
				menuIDs[m.Key] = created.ID
				if err := create(&created.ID, m.Children); err != nil {
					return err
				}
			}
			return nil
		}
		if err := create(nil, s.Data.Menus); err != nil {
			return err
		}
		res.Menus = len(menuIDs)

		roleIDs := map[string]int64{}
		for _, r := range s.Data.Roles {
			created, err := tx.Roles().CreateRole(ctx, domain.Role{Name: r.Name, Scopes: normalizeScopes(r.Scopes)})
			if err != nil {
				return fmt.Errorf("create role %q: %w", r.Name, err)
			}
			roleIDs[r.Name] = created.ID
			res.Roles++

			for _, menuID := range seedGrants(r.Menus, menuIDs) {
				if err := tx.MenuRoles().Assign(ctx, created.ID, menuID); err != nil {
					return fmt.Errorf("grant menu %d to %q: %w", menuID, r.Name, err)
				}
				res.Grants++
			}
		}

		return tx.Users().CreateUser(ctx, domain.User{
			ID:            idx.New().String(),
			Username:      s.Data.Admin.Username,
			PreferredName: s.Data.Admin.PreferredName,
			PasswordHash:  passHash,
			RoleID:        roleIDs[s.Data.Admin.Role],
		})
	})
	if err != nil {
		l.Error("seeding failed", slog.Any("error", err))
		return SeedResult{}, err
	}

	l.Info("store seeded",
		slog.Int("roles", res.Roles),
		slog.Int("menus", res.Menus),
		slog.Int("grants", res.Grants),
		slog.String("admin", res.AdminUsername),
	)
	return res, nil
}

// seedGrants resolves menu keys to ids, "*" meaning every menu.
func seedGrants(keys []string, menuIDs map[string]int64) []int64 {
	seen := map[int64]bool{}
	var out []int64
	add := func(id int64) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, k := range keys {
		if k == "*" {
			for _, id := range menuIDs {
				add(id)
			}
			continue
		}
		add(menuIDs[k])
	}
	return out
}
