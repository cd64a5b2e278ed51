package cli

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"
)

func newBetCmd() *cobra.Command {
	betCmd := &cobra.Command{
		Use:   "bet",
		Short: "Bet flow: declare a game, then stake it",
	}

	betCmd.AddCommand(newBetDeclareCmd())
	betCmd.AddCommand(newBetStakeCmd())
	betCmd.AddCommand(newBetCancelCmd())

	return betCmd
}

func newBetDeclareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "declare <coinflip|mines>",
		Short: "Declare which game the next stake is for",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := requirePlayer()
			if err != nil {
				return err
			}

			var result PendingBet
			if err := client.Post("/api/v1/players/"+playerID+"/bets",
				map[string]string{"game_type": args[0]}, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newBetStakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stake <amount>",
		Short: "Stake the declared bet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := requirePlayer()
			if err != nil {
				return err
			}

			amount, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			// the response shape depends on which game was declared
			var raw json.RawMessage
			if err := client.Post("/api/v1/players/"+playerID+"/stake",
				map[string]int64{"amount": amount}, &raw); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			var head struct {
				GameType string `json:"game_type"`
			}
			if err := json.Unmarshal(raw, &head); err != nil {
				return err
			}

			switch head.GameType {
			case "coinflip":
				var result CoinflipStart
				if err := json.Unmarshal(raw, &result); err != nil {
					return err
				}
				out.Print(result)
			case "mines":
				var result MinesStart
				if err := json.Unmarshal(raw, &result); err != nil {
					return err
				}
				out.Print(result)
			default:
				out.Print(raw)
			}
			return nil
		},
	}
}

func newBetCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <coinflip|mines>",
		Short: "Abandon the active session (no refund)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := requirePlayer()
			if err != nil {
				return err
			}

			if err := client.Delete("/api/v1/players/" + playerID + "/sessions/" + args[0]); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Session cancelled.")
			return nil
		},
	}
}
