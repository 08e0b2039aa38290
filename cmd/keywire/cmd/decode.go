package cmd

import (
	"encoding/hex"
	"os"

	"github.com/spf13/cobra"

	"github.com/skarsten/keywire/pkg/codec"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode [packet-hex]",
	Short: "Decode a binary packet into its key event fields",
	Long: `Decode a key-event packet and print its fields. The packet is
given as a hex string argument, or read raw from a file with --input.

Example:
  keywire decode 0000000000000000e803000000000000...
  keywire decode --input packet.bin`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input, _ := cmd.Flags().GetString("input")

		var packet []byte
		switch {
		case input != "":
			data, err := os.ReadFile(input)
			if err != nil {
				cmd.Printf("Error reading packet file: %v\n", err)
				return
			}
			packet = data
		case len(args) == 1:
			data, err := hex.DecodeString(args[0])
			if err != nil {
				cmd.Printf("Error: packet argument is not valid hex: %v\n", err)
				return
			}
			packet = data
		default:
			cmd.Println("Error: provide a hex packet argument or --input")
			return
		}

		event, err := codec.NewKeyEventCodec().Decode(packet)
		if err != nil {
			cmd.Printf("Error decoding packet: %v\n", err)
			return
		}

		printEvent(cmd, event)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringP("input", "i", "", "Read the raw packet from a file")
}
