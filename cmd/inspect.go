package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/jsphweid/smfnotes/constants"
	"github.com/jsphweid/smfnotes/model"
	"github.com/jsphweid/smfnotes/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [summaries.dat]",
	Short: "Inspects a summaries file",
	Long:  `Prints every summary stored by the index command.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summaries, err := loadSummaries(args)
		if err != nil {
			return err
		}
		for _, s := range summaries {
			fmt.Fprintf(cmd.OutOrStdout(), "%v: format %d, %d tracks, %d notes, keys %d-%d, tempo %d, errors %d, names %v\n",
				s.Filename, s.Format, s.NumTracks, s.NumNotes, s.MinKey, s.MaxKey, s.Tempo, s.NumErrors, s.TrackNames)
		}
		return nil
	},
}

func loadSummaries(args []string) ([]model.Summary, error) {
	path := filepath.Join(constants.GetIndexDir(), constants.SummariesFilename)
	if len(args) == 1 {
		path = args[0]
	}
	return util.ReadBinary[[]model.Summary](path)
}
