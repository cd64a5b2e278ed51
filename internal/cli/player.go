package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	playerCmd := &cobra.Command{
		Use:   "player",
		Short: "Player account operations",
	}

	playerCmd.AddCommand(newPlayerJoinCmd())
	playerCmd.AddCommand(newPlayerGetCmd())
	playerCmd.AddCommand(newPlayerBalanceCmd())
	playerCmd.AddCommand(newPlayerRenameCmd())
	playerCmd.AddCommand(newPlayerBonusCmd())
	playerCmd.AddCommand(newLeaderboardCmd())

	return playerCmd
}

func newPlayerJoinCmd() *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Register (or refresh) the player account",
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := requirePlayer()
			if err != nil {
				return err
			}

			body := map[string]string{
				"player_id":    playerID,
				"display_name": displayName,
			}

			var result Player
			if err := client.Post("/api/v1/players", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&displayName, "name", "", "Display name (defaults to player ID)")
	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the player account",
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := requirePlayer()
			if err != nil {
				return err
			}

			var result Player
			if err := client.Get("/api/v1/players/"+playerID, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newPlayerBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the player balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := requirePlayer()
			if err != nil {
				return err
			}

			var result BalanceResult
			if err := client.Get("/api/v1/players/"+playerID+"/balance", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newPlayerRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <display-name>",
		Short: "Change the player display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := requirePlayer()
			if err != nil {
				return err
			}

			var result Player
			if err := client.Patch("/api/v1/players/"+playerID+"/name",
				map[string]string{"display_name": args[0]}, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newPlayerBonusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bonus",
		Short: "Claim a random bonus credit",
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := requirePlayer()
			if err != nil {
				return err
			}

			var result BalanceResult
			if err := client.Post("/api/v1/players/"+playerID+"/bonus", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	var limit int
	var by string

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the top players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			switch by {
			case "balance":
				path = "/api/v1/leaderboard"
			case "clicks":
				path = "/api/v1/leaderboard/clicks"
			default:
				return fmt.Errorf("unknown ranking %q (want balance or clicks)", by)
			}
			if limit > 0 {
				path += fmt.Sprintf("?limit=%d", limit)
			}

			var result Leaderboard
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of players to show")
	cmd.Flags().StringVar(&by, "by", "balance", "Ranking: balance or clicks")
	return cmd
}
