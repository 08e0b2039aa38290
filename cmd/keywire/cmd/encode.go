package cmd

import (
	"encoding/hex"
	"os"

	"github.com/spf13/cobra"

	"github.com/skarsten/keywire/pkg/codec"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a key event into its binary packet",
	Long: `Encode a key event into the fixed-layout binary wire format and
print the packet as hex (or write the raw bytes to a file).

Example:
  keywire encode --timestamp 1000 --type down --physical 0x70 --logical 0x61 --character a`,
	Run: func(cmd *cobra.Command, args []string) {
		event, err := eventFromFlags(cmd)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		packet, err := codec.NewKeyEventCodec().Encode(event)
		if err != nil {
			cmd.Printf("Error encoding event: %v\n", err)
			return
		}

		output, _ := cmd.Flags().GetString("output")
		if output != "" {
			if err := os.WriteFile(output, packet, 0644); err != nil {
				cmd.Printf("Error writing packet: %v\n", err)
				return
			}
			cmd.Printf("Wrote %d bytes to %s\n", len(packet), output)
			return
		}

		cmd.Printf("%s\n", hex.EncodeToString(packet))
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	addEventFlags(encodeCmd)
	encodeCmd.Flags().StringP("output", "o", "", "Write the raw packet to a file instead of printing hex")
}
