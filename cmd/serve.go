package cmd

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/melodika/melodika-sync/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	Long:  "Start the MCP server on stdio, exposing sync and product lookup tools to the back-office.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	return mcpserver.Serve(mcpserver.Deps{
		Pipeline: buildPipeline(st),
		Store:    st,
	})
}
