package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aitiwari/aisearch/internal/catalog"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List news categories and their source domains",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range catalog.Categories() {
			domains, _ := catalog.Domains(name)
			fmt.Printf("%s\n  %s\n", name, strings.Join(domains, ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
