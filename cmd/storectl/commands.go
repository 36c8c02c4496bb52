package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type seeder interface {
	Seed(ctx context.Context) (int, error)
}

type userAdmin interface {
	SetRole(ctx context.Context, email, role string) error
	BackfillRoles(ctx context.Context) (int64, error)
	RehashPasswords(ctx context.Context) (int, error)
	RevokeSessions(ctx context.Context, email string) error
}

type services struct {
	Categories seeder
	Products   seeder
	Users      userAdmin
	// Sessions opens the session store for commands that need it.
	Sessions   func(ctx context.Context) error
}

type loader func(ctx context.Context) (*services, func(), error)

// withServices loads the services for one command run and closes them after.
func withServices(load loader, run func(cmd *cobra.Command, args []string, s *services) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, closeFn, err := load(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()
		return run(cmd, args, s)
	}
}

func newRootCmd(load loader) *cobra.Command {
	root := &cobra.Command{
		Use:           "storectl",
		Short:         "Storefront maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSeedCmd(load), newUsersCmd(load))
	return root
}

func newSeedCmd(load loader) *cobra.Command {
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Insert the default catalog into empty collections",
	}

	seed.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "Insert the default categories",
		Args:  cobra.NoArgs,
		RunE: withServices(load, func(cmd *cobra.Command, _ []string, s *services) error {
			n, err := s.Categories.Seed(cmd.Context())
			if err != nil {
				return fmt.Errorf("seed categories: %w", err)
			}
			reportSeed(cmd, "categories", n)
			return nil
		}),
	})

	seed.AddCommand(&cobra.Command{
		Use:   "products",
		Short: "Insert the default products",
		Args:  cobra.NoArgs,
		RunE: withServices(load, func(cmd *cobra.Command, _ []string, s *services) error {
			n, err := s.Products.Seed(cmd.Context())
			if err != nil {
				return fmt.Errorf("seed products: %w", err)
			}
			reportSeed(cmd, "products", n)
			return nil
		}),
	})

	return seed
}

func reportSeed(cmd *cobra.Command, what string, n int) {
	if n == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already present, nothing inserted\n", what)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "inserted %d %s\n", n, what)
}

func newUsersCmd(load loader) *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	users.AddCommand(&cobra.Command{
		Use:   "set-role <email> <user|admin>",
		Short: "Change the role of a user",
		Args:  cobra.ExactArgs(2),
		RunE: withServices(load, func(cmd *cobra.Command, args []string, s *services) error {
			if err := s.Users.SetRole(cmd.Context(), args[0], args[1]); err != nil {
				return fmt.Errorf("set role: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], args[1])
			return nil
		}),
	})

	users.AddCommand(&cobra.Command{
		Use:   "revoke-sessions <email>",
		Short: "Sign a user out of every device",
		Args:  cobra.ExactArgs(1),
		RunE: withServices(load, func(cmd *cobra.Command, args []string, s *services) error {
			if err := s.Sessions(cmd.Context()); err != nil {
				return fmt.Errorf("open sessions: %w", err)
			}
			if err := s.Users.RevokeSessions(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("revoke sessions: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed out %s everywhere\n", args[0])
			return nil
		}),
	})

	users.AddCommand(&cobra.Command{
		Use:   "backfill-roles",
		Short: `Give role "user" to accounts without one`,
		Args:  cobra.NoArgs,
		RunE: withServices(load, func(cmd *cobra.Command, _ []string, s *services) error {
			n, err := s.Users.BackfillRoles(cmd.Context())
			if err != nil {
				return fmt.Errorf("backfill roles: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d users\n", n)
			return nil
		}),
	})

	users.AddCommand(&cobra.Command{
		Use:   "rehash-passwords",
		Short: "Hash any password still stored in plain text",
		Args:  cobra.NoArgs,
		RunE: withServices(load, func(cmd *cobra.Command, _ []string, s *services) error {
			n, err := s.Users.RehashPasswords(cmd.Context())
			if err != nil {
				return fmt.Errorf("rehash passwords: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rehashed %d passwords\n", n)
			return nil
		}),
	})

	return users
}
