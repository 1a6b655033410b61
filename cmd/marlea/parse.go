package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/martinemde/marlea/crnparser"
)

var parseCmd = &cobra.Command{
	Use:   "parse <network.csv>",
	Short: "Parse a network file and print the result",
	Long:  "Parse a reaction network file and print its reactions and initial solution.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt <network.csv>",
	Short: "Print a network file in canonical notation",
	Long:  "Parse a reaction network file and print it back in canonical notation, collapsing duplicate reactions and repeated declarations.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().BoolP("write", "w", false, "Write the result back to the file")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(fmtCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	net, err := newRegistry().LoadFile(args[0])
	if err != nil {
		return err
	}
	logger.Info("parsed", "path", args[0], "reactions", net.Reactions.Len(), "species", len(net.Solution))
	return renderNetwork(cmd.OutOrStdout(), net, viper.GetString("format"))
}

func runFmt(cmd *cobra.Command, args []string) error {
	path := args[0]
	write, _ := cmd.Flags().GetBool("write")

	net, err := newRegistry().LoadFile(path)
	if err != nil {
		return err
	}
	out := crnparser.Format(net)

	if !write {
		_, err := fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info("formatted", "path", path)
	return nil
}
