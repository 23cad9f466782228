package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Muneerali199/website-builder/internal/auth"
	"github.com/Muneerali199/website-builder/internal/usage"
)

// what the commands need from the user database
type backend interface {
	// returns the usage store of a signed-in user
	Store(ctx context.Context, userID string) (usage.Store, error)
	// returns the user's email, failing when the user does not exist
	Email(ctx context.Context, userID string) (string, error)
}

// connects to the backing database; the returned func releases it
type connector func(ctx context.Context) (backend, func(), error)

func newRootCmd(connect connector) *cobra.Command {
	root := &cobra.Command{
		Use:           "quotactl",
		Short:         "Inspect and adjust prompt quotas of signed-in users",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newGetCmd(connect),
		newSetTierCmd(connect),
		newResetCmd(connect),
		newTokenCmd(connect),
	)

	return root
}

func newGetCmd(connect connector) *cobra.Command {
	return &cobra.Command{
		Use:   "get <user-id>",
		Short: "Show a user's tier and remaining prompts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, connect, args[0], func(ctx context.Context, store usage.Store) error {
				record, found, err := store.Load(ctx)
				if err != nil {
					return err
				}

				if !found {
					record = usage.DefaultRecord()
				}

				printRecord(cmd.OutOrStdout(), args[0], record, found)
				return nil
			})
		},
	}
}

func newSetTierCmd(connect connector) *cobra.Command {
	return &cobra.Command{
		Use:   "set-tier <user-id> <free|pro|enterprise>",
		Short: "Change a user's subscription tier",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tier := usage.Tier(args[1])
			if !tier.IsValid() {
				return fmt.Errorf("unknown tier %q", args[1])
			}

			return withStore(cmd, connect, args[0], func(ctx context.Context, store usage.Store) error {
				record, found, err := store.Load(ctx)
				if err != nil {
					return err
				}

				if !found {
					record = usage.DefaultRecord()
				}

				record.Tier = tier
				if err := store.Save(ctx, record); err != nil {
					return err
				}

				printRecord(cmd.OutOrStdout(), args[0], record, true)
				return nil
			})
		},
	}
}

func newResetCmd(connect connector) *cobra.Command {
	var tokens int

	cmd := &cobra.Command{
		Use:   "reset <user-id>",
		Short: "Set a user's remaining free prompts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokens < 0 {
				return fmt.Errorf("--tokens must not be negative")
			}

			return withStore(cmd, connect, args[0], func(ctx context.Context, store usage.Store) error {
				record, found, err := store.Load(ctx)
				if err != nil {
					return err
				}

				if !found {
					record = usage.DefaultRecord()
				}

				record.RemainingTokens = tokens
				if err := store.Save(ctx, record); err != nil {
					return err
				}

				printRecord(cmd.OutOrStdout(), args[0], record, true)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&tokens, "tokens", usage.DefaultRecord().RemainingTokens, "remaining prompts to grant")

	return cmd
}

func newTokenCmd(connect connector) *cobra.Command {
	return &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue a bearer token for a user, for local testing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			db, release, err := connect(ctx)
			if err != nil {
				return err
			}
			defer release()

			email, err := db.Email(ctx, args[0])
			if err != nil {
				return fmt.Errorf("user %s: %w", args[0], err)
			}

			token, err := auth.GenerateJWT(args[0], email)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

func withStore(cmd *cobra.Command, connect connector, userID string, fn func(context.Context, usage.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, release, err := connect(ctx)
	if err != nil {
		return err
	}
	defer release()

	store, err := db.Store(ctx, userID)
	if err != nil {
		return fmt.Errorf("user %s: %w", userID, err)
	}

	return fn(ctx, store)
}

func printRecord(w io.Writer, userID string, record usage.Record, stored bool) {
	view := record.View()

	remaining := fmt.Sprintf("%d", view.RemainingTokens)
	if view.Unlimited {
		remaining = "unlimited"
	}

	source := "stored"
	if !stored {
		source = "default"
	}

	fmt.Fprintf(w, "user:      %s\ntier:      %s\nremaining: %s\nrecord:    %s\n", userID, view.Tier, remaining, source)
}
