package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newMinesCmd() *cobra.Command {
	minesCmd := &cobra.Command{
		Use:   "mines",
		Short: "Mines game operations",
	}

	minesCmd.AddCommand(newMinesFieldCmd())
	minesCmd.AddCommand(newMinesOptionCmd())
	minesCmd.AddCommand(newMinesCountCmd())
	minesCmd.AddCommand(newMinesCellCmd())

	return minesCmd
}

func newMinesFieldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "field <size>",
		Short: "Choose the board size (4, 5, or 6)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := requirePlayer()
			if err != nil {
				return err
			}

			size, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			var result MinesStateResult
			if err := client.Post("/api/v1/players/"+playerID+"/mines/field",
				map[string]int{"board_size": size}, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newMinesOptionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "option <default|custom>",
		Short: "Choose how mines are counted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := requirePlayer()
			if err != nil {
				return err
			}

			var result MinesCommit
			if err := client.Post("/api/v1/players/"+playerID+"/mines/option",
				map[string]string{"option": args[0]}, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newMinesCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count <mines>",
		Short: "Set a custom mine count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := requirePlayer()
			if err != nil {
				return err
			}

			count, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			var result MinesCommit
			if err := client.Post("/api/v1/players/"+playerID+"/mines/count",
				map[string]int{"mine_count": count}, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newMinesCellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cell <number>",
		Short: "Pick a cell and resolve the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := requirePlayer()
			if err != nil {
				return err
			}

			cell, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			var result MinesResult
			if err := client.Post("/api/v1/players/"+playerID+"/mines/cell",
				map[string]int{"cell": cell}, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
