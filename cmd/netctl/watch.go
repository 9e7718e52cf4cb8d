package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/w1ncs/netcontrol/internal/feed"
	"github.com/w1ncs/netcontrol/internal/models"
	"github.com/w1ncs/netcontrol/pkg/netclient"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <net-id> <session-id>",
	Short: "Follow a session's check-in list live",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient(cmd)
		netID, sessionID := args[0], args[1]

		store := netclient.NewSessionStore(client.ForNet(netID), sessionID)

		// Initial full fetch, then fine-grained patching from the feed
		query := url.Values{"sessionid": {sessionID}}
		var checkIns []models.CheckIn
		if err := client.FetchRows(context.Background(), "check_ins", query, &checkIns); err != nil {
			fatal(err)
		}
		store.SetCheckIns(checkIns)

		redraw := make(chan struct{}, 1)
		sub, err := client.Subscribe([]string{feed.TableCheckIns}, func(ev feed.Event) {
			store.ApplyEvent(ev)
			select {
			case redraw <- struct{}{}:
			default:
			}
		})
		if err != nil {
			fatal(err)
		}
		defer sub.Close()

		printList(store)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		for {
			select {
			case <-redraw:
				printList(store)
			case <-quit:
				fmt.Println("\n73!")
				return
			}
		}
	},
}

func printList(store *netclient.SessionStore) {
	list := store.List()
	fmt.Printf("\n--- %d checked in ---\n", len(list))
	for i, ci := range list {
		fmt.Printf("%2d. %-10s %-20s %-15s [%s]\n", i+1, ci.CallSign, ci.Name, ci.Location, ci.Status)
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
