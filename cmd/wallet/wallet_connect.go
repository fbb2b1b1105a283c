package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/bankwallet/internal/cli"
	"github.com/Veraticus/bankwallet/internal/model"
	"github.com/Veraticus/bankwallet/internal/service"
	"github.com/spf13/cobra"
)

func walletConnectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "wc",
		Aliases: []string{"wallet-connect"},
		Short:   "Manage wallet-connect sessions",
		Long:    `List, record and remove wallet-connect v2 sessions per account.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list [account-id]",
		Short: "List sessions, optionally for one account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID := ""
			if len(args) == 1 {
				accountID = args[0]
			}
			return withSessionStore(cmd.Context(), func(store service.WalletConnectStore) error {
				return runSessionsList(cmd.Context(), cmd.OutOrStdout(), store, accountID)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <account-id> <topic>",
		Short: "Record a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSessionStore(cmd.Context(), func(store service.WalletConnectStore) error {
				return runSessionAdd(cmd.Context(), cmd.OutOrStdout(), store, args[0], args[1])
			})
		},
	})

	remove := &cobra.Command{
		Use:   "remove <account-id> [topic]",
		Short: "Remove a session, or every session of an account with --all",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			if !all && len(args) != 2 {
				return fmt.Errorf("topic is required unless --all is set")
			}
			topic := ""
			if len(args) == 2 {
				topic = args[1]
			}
			return withSessionStore(cmd.Context(), func(store service.WalletConnectStore) error {
				return runSessionRemove(cmd.Context(), cmd.OutOrStdout(), store, args[0], topic, all)
			})
		},
	}
	remove.Flags().Bool("all", false, "Remove every session of the account")
	cmd.AddCommand(remove)

	return cmd
}

func withSessionStore(ctx context.Context, fn func(service.WalletConnectStore) error) error {
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}

func runSessionsList(ctx context.Context, out io.Writer, store service.WalletConnectStore, accountID string) error {
	var (
		sessions []model.WalletConnectSession
		err      error
	)
	if accountID == "" {
		sessions, err = store.GetAllWalletConnectSessions(ctx)
	} else {
		sessions, err = store.GetWalletConnectSessions(ctx, accountID)
	}
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No wallet-connect sessions"))
		return nil
	}

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{s.AccountID, s.Topic})
	}
	fmt.Fprintln(out, cli.RenderTable([]string{"ACCOUNT", "TOPIC"}, rows))
	return nil
}

func runSessionAdd(ctx context.Context, out io.Writer, store service.WalletConnectStore, accountID, topic string) error {
	session := model.WalletConnectSession{AccountID: accountID, Topic: topic}
	if err := store.SaveWalletConnectSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Session %s saved for %s", topic, accountID)))
	return nil
}

func runSessionRemove(ctx context.Context, out io.Writer, store service.WalletConnectStore, accountID, topic string, all bool) error {
	if all {
		if err := store.DeleteWalletConnectSessionsByAccount(ctx, accountID); err != nil {
			return fmt.Errorf("failed to remove sessions: %w", err)
		}
		fmt.Fprintln(out, cli.FormatSuccess("Removed all sessions for "+accountID))
		return nil
	}

	if err := store.DeleteWalletConnectSession(ctx, accountID, topic); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Session %s removed", topic)))
	return nil
}
