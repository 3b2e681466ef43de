package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njclarkbmf/oraschemagen/config"
	"github.com/njclarkbmf/oraschemagen/generator"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List requestable object kinds and supported encodings",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Object kinds (--objects):")
		for _, t := range generator.Tokens {
			fmt.Println("  •", t)
		}
		fmt.Println("\nEmission order:")
		var order []string
		for _, k := range generator.Order {
			order = append(order, string(k))
		}
		fmt.Println("  " + strings.Join(order, " → "))
		fmt.Println("\nEncodings (--encoding):")
		for _, e := range config.SupportedEncodings {
			fmt.Println("  •", e)
		}
	},
}
