package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(s *server.MCPServer, deps Deps) {
	// sync_catalog
	syncTool := mcp.NewTool("sync_catalog",
		mcp.WithDescription("Run one catalog synchronization from the supplier feed and return the run report"),
	)
	s.AddTool(syncTool, handleSyncCatalog(deps))

	// get_product
	getTool := mcp.NewTool("get_product",
		mcp.WithDescription("Get one canonical product record by id"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Product id"),
		),
	)
	s.AddTool(getTool, handleGetProduct(deps))

	// list_products
	listTool := mcp.NewTool("list_products",
		mcp.WithDescription("List canonical product records from the store"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of products (default: 50)"),
		),
	)
	s.AddTool(listTool, handleListProducts(deps))
}

func handleSyncCatalog(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		report := deps.Pipeline.Sync(ctx)

		data, _ := json.MarshalIndent(report, "", "  ")
		if !report.Success {
			return mcp.NewToolResultError(string(data)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleGetProduct(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := request.GetString("id", "")
		if id == "" {
			return mcp.NewToolResultError("id is required"), nil
		}

		product, err := deps.Store.FindUnique(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("lookup error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(product, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleListProducts(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 50)

		products, err := deps.Store.FindMany(ctx, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(products, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}
