package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/summonerscompass/compass-go/internal/adapters/persistence"
	appsocial "github.com/summonerscompass/compass-go/internal/application/social"
)

// NewFriendsCommand creates the friends command with subcommands
func NewFriendsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "friends",
		Short: "Manage friends and friend requests",
		Long: `Manage the friends list and pending friend requests.

Examples:
  compass friends request --player-id <id> --email rival@example.com
  compass friends accept --player-id <id> --email rival@example.com
  compass friends reject --player-id <id> --email rival@example.com
  compass friends remove --player-id <id> --email rival@example.com
  compass friends list --player-id <id>`,
	}

	cmd.AddCommand(newFriendsRequestCommand())
	cmd.AddCommand(newFriendsAcceptCommand())
	cmd.AddCommand(newFriendsRejectCommand())
	cmd.AddCommand(newFriendsRemoveCommand())
	cmd.AddCommand(newFriendsListCommand())

	return cmd
}

// friendsHandler builds the shared handler for every subcommand
func friendsHandler() (*appsocial.FriendsHandler, error) {
	_, db, err := connect()
	if err != nil {
		return nil, err
	}

	directory := persistence.NewGormSocialDirectory(db)
	playerRepo := persistence.NewGormPlayerRepository(db)
	return appsocial.NewFriendsHandler(directory, playerRepo), nil
}

// newFriendsRequestCommand creates the friends request subcommand
func newFriendsRequestCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Send a friend request by email",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayerID()
			if err != nil {
				return err
			}
			if email == "" {
				return fmt.Errorf("--email flag is required")
			}

			handler, err := friendsHandler()
			if err != nil {
				return err
			}

			if _, err := handler.Handle(context.Background(), &appsocial.SendFriendRequestCommand{
				SenderID:       id,
				RecipientEmail: email,
			}); err != nil {
				return fmt.Errorf("failed to send friend request: %w", err)
			}

			fmt.Printf("✓ Friend request sent to %s\n", email)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Recipient email (required)")

	return cmd
}

// newFriendsAcceptCommand creates the friends accept subcommand
func newFriendsAcceptCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "accept",
		Short: "Accept a pending friend request",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayerID()
			if err != nil {
				return err
			}
			if email == "" {
				return fmt.Errorf("--email flag is required")
			}

			handler, err := friendsHandler()
			if err != nil {
				return err
			}

			if _, err := handler.Handle(context.Background(), &appsocial.AcceptFriendRequestCommand{
				RecipientID: id,
				SenderEmail: email,
			}); err != nil {
				return fmt.Errorf("failed to accept friend request: %w", err)
			}

			fmt.Printf("✓ You are now friends with %s\n", email)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Sender email (required)")

	return cmd
}

// newFriendsRejectCommand creates the friends reject subcommand
func newFriendsRejectCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "reject",
		Short: "Reject a pending friend request",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayerID()
			if err != nil {
				return err
			}
			if email == "" {
				return fmt.Errorf("--email flag is required")
			}

			handler, err := friendsHandler()
			if err != nil {
				return err
			}

			if _, err := handler.Handle(context.Background(), &appsocial.RejectFriendRequestCommand{
				RecipientID: id,
				SenderEmail: email,
			}); err != nil {
				return fmt.Errorf("failed to reject friend request: %w", err)
			}

			fmt.Println("✓ Friend request rejected")

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Sender email (required)")

	return cmd
}

// newFriendsRemoveCommand creates the friends remove subcommand
func newFriendsRemoveCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a friend",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayerID()
			if err != nil {
				return err
			}
			if email == "" {
				return fmt.Errorf("--email flag is required")
			}

			handler, err := friendsHandler()
			if err != nil {
				return err
			}

			if _, err := handler.Handle(context.Background(), &appsocial.RemoveFriendCommand{
				PlayerID:    id,
				FriendEmail: email,
			}); err != nil {
				return fmt.Errorf("failed to remove friend: %w", err)
			}

			fmt.Printf("✓ Removed %s from friends\n", email)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Friend email (required)")

	return cmd
}

// newFriendsListCommand creates the friends list subcommand
func newFriendsListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List friends and pending requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayerID()
			if err != nil {
				return err
			}

			handler, err := friendsHandler()
			if err != nil {
				return err
			}

			response, err := handler.Handle(context.Background(), &appsocial.ListFriendsQuery{PlayerID: id})
			if err != nil {
				return fmt.Errorf("failed to list friends: %w", err)
			}

			result := response.(*appsocial.ListFriendsResponse)

			if len(result.Friends) == 0 && len(result.Requests) == 0 {
				fmt.Println("No friends or pending requests.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			if len(result.Friends) > 0 {
				fmt.Fprintln(w, "FRIEND\tEMAIL\tPOWER")
				fmt.Fprintln(w, "------\t-----\t-----")
				for _, friend := range result.Friends {
					fmt.Fprintf(w, "%s\t%s\t%d\n", friend.Name, friend.Email, friend.Power)
				}
			}
			if len(result.Requests) > 0 {
				fmt.Fprintln(w, "\nPENDING REQUEST FROM\tEMAIL\tPOWER")
				fmt.Fprintln(w, "--------------------\t-----\t-----")
				for _, request := range result.Requests {
					fmt.Fprintf(w, "%s\t%s\t%d\n", request.Name, request.Email, request.Power)
				}
			}
			w.Flush()

			return nil
		},
	}

	return cmd
}
