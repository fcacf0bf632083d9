package cli

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Tail the live activity feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		wsURL := strings.Replace(serverURL, "http", "ws", 1) + "/api/ws"

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
		if err != nil {
			return fmt.Errorf("connecting to feed: %w", err)
		}
		defer conn.Close()

		// Close the connection when interrupted so ReadMessage unblocks.
		go func() {
			<-ctx.Done()
			conn.Close()
		}()

		fmt.Println("Listening for activity (Ctrl+C to stop)...")
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("feed closed: %w", err)
			}
			fmt.Println(string(message))
		}
	},
}

func init() {
	rootCmd.AddCommand(feedCmd)
}
