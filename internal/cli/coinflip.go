package cli

import (
	"github.com/spf13/cobra"
)

func newCoinflipCmd() *cobra.Command {
	coinflipCmd := &cobra.Command{
		Use:   "coinflip",
		Short: "Coinflip game operations",
	}

	coinflipCmd.AddCommand(newCoinflipChoiceCmd())

	return coinflipCmd
}

func newCoinflipChoiceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "choose <heads|tails>",
		Short: "Pick a side and resolve the flip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := requirePlayer()
			if err != nil {
				return err
			}

			var result CoinflipResult
			if err := client.Post("/api/v1/players/"+playerID+"/coinflip/choice",
				map[string]string{"side": args[0]}, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
