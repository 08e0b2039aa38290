package cmd

import (
	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/skarsten/keywire/pkg/codec"
	"github.com/skarsten/keywire/pkg/journal"
)

// journalCmd groups the journal subcommands
var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Capture and replay journaled key events",
}

// journalAppendCmd represents the journal append command
var journalAppendCmd = &cobra.Command{
	Use:   "append",
	Short: "Encode a key event and append it to the journal",
	Long: `Encode a key event from flags and append the packet to the
journal. Prints the assigned event id.

Example:
  keywire journal append --type down --physical 0x70 --logical 0x61 --character a`,
	Run: func(cmd *cobra.Command, args []string) {
		event, err := eventFromFlags(cmd)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		withJournal(cmd, func(j *journal.Journal) {
			id, err := j.Append(event)
			if err != nil {
				cmd.Printf("Error appending event: %v\n", err)
				return
			}
			cmd.Printf("%s\n", id)
		})
	},
}

// journalGetCmd represents the journal get command
var journalGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch and decode a journaled event",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			cmd.Printf("Error: invalid event id %q\n", args[0])
			return
		}

		withJournal(cmd, func(j *journal.Journal) {
			event, err := j.Get(id)
			if err != nil {
				cmd.Printf("Error reading event: %v\n", err)
				return
			}
			printEvent(cmd, event)
		})
	},
}

// journalReplayCmd represents the journal replay command
var journalReplayCmd = &cobra.Command{
	Use:   "replay",
	Short: "List all journaled events in id order",
	Run: func(cmd *cobra.Command, args []string) {
		withJournal(cmd, func(j *journal.Journal) {
			err := j.Replay(func(id ksuid.KSUID, event *codec.KeyEvent) error {
				character := ""
				if event.Character != nil {
					character = *event.Character
				}
				cmd.Printf("%s  ts=%d %s %s physical=%#x logical=%#x character=%q\n",
					id, event.Timestamp, event.Type, event.DeviceType,
					event.PhysicalKey, event.LogicalKey, character)
				return nil
			})
			if err != nil {
				cmd.Printf("Error replaying journal: %v\n", err)
			}
		})
	},
}

// withJournal opens the journal from the global flag and closes it after fn
func withJournal(cmd *cobra.Command, fn func(*journal.Journal)) {
	dir, _ := cmd.Flags().GetString("journal-dir")

	j, err := journal.Open(dir)
	if err != nil {
		cmd.Printf("Error opening journal: %v\n", err)
		return
	}
	defer j.Close()

	fn(j)
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalAppendCmd)
	journalCmd.AddCommand(journalGetCmd)
	journalCmd.AddCommand(journalReplayCmd)
	addEventFlags(journalAppendCmd)
}
