package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/arborcode/semcore/pkg/semantic"
)

// Register wires every tool this server exposes onto s, one addXxxTool
// helper per tool in the mark3labs/mcp-go style (see DESIGN.md).
func Register(s *server.MCPServer, srv *Server) {
	addResolveSymbolTool(s, srv)
	addListClassMembersTool(s, srv)
	addExplainScopeTool(s, srv)
}

func addResolveSymbolTool(s *server.MCPServer, srv *Server) {
	tool := mcp.NewTool("resolve_symbol",
		mcp.WithDescription("Resolve a name against a tree fixture's symbol table and list every usage recorded against it"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to a JSON tree fixture"),
		),
		mcp.WithString("package",
			mcp.Description("Dotted package path the fixture is loaded under"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name to resolve"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		path, ok := args["path"].(string)
		if !ok {
			return mcp.NewToolResultError("path is required"), nil
		}
		name, ok := args["name"].(string)
		if !ok {
			return mcp.NewToolResultError("name is required"), nil
		}
		pkg, _ := args["package"].(string)

		result, err := srv.Build(path, pkg)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("error building %s: %v", path, err)), nil
		}

		content := fmt.Sprintf("Resolution of %q in %s\n", name, path)
		content += "==========================\n"
		found := 0
		for _, scope := range result.AllScopes {
			for _, sym := range scope.Locals() {
				if sym.Name() != name {
					continue
				}
				found++
				content += fmt.Sprintf("- %s scope, kind=%s", scope.Kind(), sym.Kind())
				if fqn, ok := sym.FullyQualifiedName(); ok {
					content += fmt.Sprintf(", fqn=%s", fqn)
				}
				content += fmt.Sprintf(", %d usage(s)\n", len(sym.Usages()))
				for _, u := range sym.Usages() {
					content += fmt.Sprintf("    %s\n", u.Kind)
				}
			}
		}
		if found == 0 {
			content += "No matching symbol found in any scope.\n"
		}
		return mcp.NewToolResultText(content), nil
	})
}

func addListClassMembersTool(s *server.MCPServer, srv *Server) {
	tool := mcp.NewTool("list_class_members",
		mcp.WithDescription("List a class symbol's own resolved members (class-body names and instance attributes); members inherited through its base classes are not listed"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to a JSON tree fixture"),
		),
		mcp.WithString("package",
			mcp.Description("Dotted package path the fixture is loaded under"),
		),
		mcp.WithString("class_name",
			mcp.Required(),
			mcp.Description("Name of the class symbol"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		path, ok := args["path"].(string)
		if !ok {
			return mcp.NewToolResultError("path is required"), nil
		}
		className, ok := args["class_name"].(string)
		if !ok {
			return mcp.NewToolResultError("class_name is required"), nil
		}
		pkg, _ := args["package"].(string)

		result, err := srv.Build(path, pkg)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("error building %s: %v", path, err)), nil
		}

		var class *semantic.Symbol
		for _, sym := range result.AllSymbols {
			if sym.Kind() == semantic.KindClass && sym.Name() == className {
				class = sym
				break
			}
		}
		if class == nil {
			return mcp.NewToolResultError(fmt.Sprintf("no class symbol named %q found", className)), nil
		}

		content := fmt.Sprintf("Members of class %s\n", className)
		content += "====================\n"
		if class.HasUnresolvedHierarchy() {
			content += "Warning: one or more base classes could not be resolved; member list may be incomplete.\n\n"
		}
		for _, m := range class.Members() {
			content += fmt.Sprintf("- %s (kind=%s)\n", m.Name(), m.Kind())
		}
		if len(class.Members()) == 0 {
			content += "(no members)\n"
		}
		return mcp.NewToolResultText(content), nil
	})
}

func addExplainScopeTool(s *server.MCPServer, srv *Server) {
	tool := mcp.NewTool("explain_scope",
		mcp.WithDescription("Dump the scope hierarchy and locals of a tree fixture's symbol table"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to a JSON tree fixture"),
		),
		mcp.WithString("package",
			mcp.Description("Dotted package path the fixture is loaded under"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		path, ok := args["path"].(string)
		if !ok {
			return mcp.NewToolResultError("path is required"), nil
		}
		pkg, _ := args["package"].(string)

		result, err := srv.Build(path, pkg)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("error building %s: %v", path, err)), nil
		}

		content := fmt.Sprintf("Scope tree for %s (%d scopes, %d symbols)\n", path, len(result.AllScopes), len(result.AllSymbols))
		content += "================================================\n"
		for i, scope := range result.AllScopes {
			content += fmt.Sprintf("[%d] %s scope, %d local symbol(s)\n", i, scope.Kind(), len(scope.Locals()))
			for _, sym := range scope.Locals() {
				content += fmt.Sprintf("      %s (%s)\n", sym.Name(), sym.Kind())
			}
		}
		if len(result.SoftErrors) > 0 {
			content += fmt.Sprintf("\n%d soft failure(s):\n", len(result.SoftErrors))
			for _, e := range result.SoftErrors {
				content += fmt.Sprintf("  %s: %s\n", e.Kind, e.Message)
			}
		}
		return mcp.NewToolResultText(content), nil
	})
}
