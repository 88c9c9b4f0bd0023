package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/smfnotes/model"
	"github.com/jsphweid/smfnotes/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [summaries.dat]",
	Short: "Creates a report",
	Long:  `Aggregates the summaries stored by the index command.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summaries, err := loadSummaries(args)
		if err != nil {
			return err
		}
		report(cmd.OutOrStdout(), summaries)
		return nil
	},
}

type summariesReport struct {
	numFiles      int
	numNotes      uint64
	numTracks     uint64
	filesInError  int
	filesNoTempo  int
	notesPerFile  []uint32
	avgBPMOfFiles float64
}

func analyzeSummaries(summaries []model.Summary) summariesReport {
	var r summariesReport
	var bpmTotal float64
	var withTempo int
	for _, s := range summaries {
		r.numFiles += 1
		r.notesPerFile = append(r.notesPerFile, s.NumNotes)
		r.numTracks += uint64(s.NumTracks)
		if s.NumErrors > 0 {
			r.filesInError += 1
		}
		if s.Tempo == 0 {
			r.filesNoTempo += 1
			continue
		}
		bpmTotal += model.MicrosecondsPerMinute / float64(s.Tempo)
		withTempo += 1
	}
	r.numNotes = util.Sum(r.notesPerFile)
	if withTempo > 0 {
		r.avgBPMOfFiles = bpmTotal / float64(withTempo)
	}
	return r
}

func report(w io.Writer, summaries []model.Summary) {
	r := analyzeSummaries(summaries)
	fmt.Fprintf(w, "numFiles: %v\n", r.numFiles)
	fmt.Fprintf(w, "numTracks: %v\n", r.numTracks)
	fmt.Fprintf(w, "numNotes: %v\n", r.numNotes)
	fmt.Fprintf(w, "filesInError: %v\n", r.filesInError)
	fmt.Fprintf(w, "filesNoTempo: %v\n", r.filesNoTempo)
	fmt.Fprintf(w, "avgBPMOfFiles: %.2f\n", r.avgBPMOfFiles)
}
