package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/w1ncs/netcontrol/pkg/netclient"
)

// checkinCmd represents the checkin command
var checkinCmd = &cobra.Command{
	Use:   "checkin <net-id> <session-id> <call-sign>",
	Short: "Log a check-in to a running session",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		location, _ := cmd.Flags().GetString("location")
		notes, _ := cmd.Flags().GetString("notes")
		repeater, _ := cmd.Flags().GetString("repeater")

		client := newClient(cmd)
		unlockNet(cmd, client, args[0])

		store := netclient.NewSessionStore(client.ForNet(args[0]), args[1])
		form := netclient.CheckInForm{
			CallSign: args[2],
			Name:     name,
			Location: location,
			Notes:    notes,
			Repeater: repeater,
		}
		if err := store.Submit(context.Background(), form); err != nil {
			fatal(err)
		}
		fmt.Printf("Checked in %s\n", store.List()[0].CallSign)
	},
}

func init() {
	checkinCmd.Flags().StringP("name", "n", "", "operator name")
	checkinCmd.Flags().StringP("location", "l", "", "operator location")
	checkinCmd.Flags().String("notes", "", "check-in notes")
	checkinCmd.Flags().StringP("repeater", "r", "", "repeater used")
	checkinCmd.Flags().StringP("passcode", "p", "", "net passcode (for delegated operators)")
	rootCmd.AddCommand(checkinCmd)
}
