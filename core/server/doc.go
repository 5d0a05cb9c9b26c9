// Package server exposes the tools of a [tool.Catalog] to MCP hosts.
//
// Every catalog tool is registered with its generated input schema. Calls are
// validated against that schema, dispatched through [tool.GenericTool.Call]
// and answered with a single text content block. Each call runs inside an
// observability span tagged with a unique call id.
//
// The server speaks MCP over stdio or over the streamable HTTP transport:
//
//	srv, err := server.New(catalog, observer, &server.Options{Version: "1.0.0"})
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx, "stdio", "")
package server
