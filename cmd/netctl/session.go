package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/w1ncs/netcontrol/internal/models"
	"github.com/w1ncs/netcontrol/pkg/netclient"
)

// unlockNet exchanges a --passcode flag for a grant when one was given, so a
// delegated operator can run session and check-in commands in one invocation
func unlockNet(cmd *cobra.Command, client *netclient.Client, netID string) {
	passcode, _ := cmd.Flags().GetString("passcode")
	if passcode == "" {
		return
	}
	ok, err := client.VerifyPasscode(context.Background(), netID, passcode)
	if err != nil {
		fatal(err)
	}
	if !ok {
		fatal(fmt.Errorf("passcode not accepted"))
	}
}

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start <net-id>",
	Short: "Start a session for a net",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient(cmd)
		unlockNet(cmd, client, args[0])

		var session models.NetSession
		params := map[string]string{"netId": args[0]}
		if err := client.ForNet(args[0]).CallProcedure(context.Background(), "session.start", params, &session); err != nil {
			fatal(err)
		}
		fmt.Printf("Session started: %s (operator %s)\n", session.ID, session.OperatorCallSign)
	},
}

// endCmd represents the end command
var endCmd = &cobra.Command{
	Use:   "end <net-id> <session-id>",
	Short: "End a running session",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient(cmd)
		unlockNet(cmd, client, args[0])

		params := map[string]string{"id": args[1]}
		if err := client.ForNet(args[0]).CallProcedure(context.Background(), "session.end", params, nil); err != nil {
			fatal(err)
		}
		fmt.Println("Session ended.")
	},
}

// notesCmd represents the notes command
var notesCmd = &cobra.Command{
	Use:   "notes <net-id> <session-id> <text>",
	Short: "Replace a session's notes",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient(cmd)
		unlockNet(cmd, client, args[0])

		params := map[string]string{"id": args[1], "notes": args[2]}
		if err := client.ForNet(args[0]).CallProcedure(context.Background(), "session.update_notes", params, nil); err != nil {
			fatal(err)
		}
		fmt.Println("Notes saved.")
	},
}

func init() {
	for _, c := range []*cobra.Command{startCmd, endCmd, notesCmd} {
		c.Flags().StringP("passcode", "p", "", "net passcode (for delegated operators)")
		rootCmd.AddCommand(c)
	}
}
