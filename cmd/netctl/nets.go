package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/w1ncs/netcontrol/internal/models"
)

// netsCmd represents the nets command
var netsCmd = &cobra.Command{
	Use:   "nets",
	Short: "List the net directory",
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient(cmd)

		var nets []models.Net
		if err := client.FetchRows(context.Background(), "nets", nil, &nets); err != nil {
			fatal(err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tSCHEDULE\tTIME")
		for _, n := range nets {
			when := "-"
			if rec, err := n.Recurrence(); err == nil {
				when = rec.Describe()
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", n.ID, n.Name, n.Type, when, n.StartTime)
		}
		w.Flush()
	},
}

// sessionsCmd represents the sessions command
var sessionsCmd = &cobra.Command{
	Use:   "sessions <net-id>",
	Short: "List a net's sessions, newest first",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient(cmd)

		query := url.Values{"netid": {args[0]}}
		var sessions []models.NetSession
		if err := client.FetchRows(context.Background(), "net_sessions", query, &sessions); err != nil {
			fatal(err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTARTED\tENDED\tOPERATOR")
		for _, s := range sessions {
			ended := "active"
			if s.EndedAt != nil {
				ended = s.EndedAt.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.StartedAt.Format("2006-01-02 15:04"), ended, s.OperatorCallSign)
		}
		w.Flush()
	},
}

// joinCmd represents the join command
var joinCmd = &cobra.Command{
	Use:   "join <net-id>",
	Short: "Unlock a net's delegated controls with its passcode",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		passcode, _ := cmd.Flags().GetString("passcode")
		if passcode == "" {
			fatal(fmt.Errorf("--passcode is required"))
		}

		client := newClient(cmd)
		ok, err := client.VerifyPasscode(context.Background(), args[0], passcode)
		if err != nil {
			fatal(err)
		}
		if !ok {
			fmt.Println("Passcode not accepted.")
			os.Exit(1)
		}

		perms := client.Grants()[args[0]]
		fmt.Println("Passcode accepted. Delegated permissions:")
		for key, granted := range perms {
			if granted {
				fmt.Println("  -", key)
			}
		}
		fmt.Println("Note: grants live for this process only; run commands in the same invocation or re-join.")
	},
}

func init() {
	joinCmd.Flags().StringP("passcode", "p", "", "net passcode")
	rootCmd.AddCommand(netsCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(joinCmd)
}
