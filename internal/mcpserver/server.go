// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Chronicle tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/halstad/chronicle/internal/journal"
)

// Server wraps the MCP server with Chronicle tools.
type Server struct {
	mcp *server.MCPServer
	svc *journal.Service
}

// New creates a new MCP server with all Chronicle tools registered.
func New(svc *journal.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Chronicle",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("generate_task",
		mcp.WithDescription("Build the diary generation payload (system prompt, user prompt "+
			"with gathered context, token budget) for a date. Write the entry from this "+
			"payload, then store it with save_entry."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Entry date (YYYY-MM-DD)")),
	), s.generateTask)

	s.mcp.AddTool(mcp.NewTool("save_entry",
		mcp.WithDescription("Save a diary entry for a date (create or replace). "+
			"Content MUST follow the canonical entry format (dated heading, the twelve "+
			"sections). Read the contract first via the get_entry_contract tool or the "+
			"chronicle://entry-format resource."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Entry date (YYYY-MM-DD)")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Markdown content following the Chronicle entry format contract")),
	), s.saveEntry)

	s.mcp.AddTool(mcp.NewTool("read_entry",
		mcp.WithDescription("Read the full content of a diary entry."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Entry date (YYYY-MM-DD)")),
	), s.readEntry)

	s.mcp.AddTool(mcp.NewTool("list_entries",
		mcp.WithDescription("List all diary entry dates in ascending order."),
	), s.listEntries)

	s.mcp.AddTool(mcp.NewTool("search_entries",
		mcp.WithDescription("Full-text search through diary entries."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchEntries)

	s.mcp.AddTool(mcp.NewTool("archive_entry",
		mcp.WithDescription("Run the archiving pass for one entry: append its quote, "+
			"curiosity, decision and relationship fragments to the knowledge corpora and "+
			"annotate the daily memory log. Call at most once per date."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Entry date (YYYY-MM-DD)")),
	), s.archiveEntry)

	s.mcp.AddTool(mcp.NewTool("read_archive",
		mcp.WithDescription("Read one knowledge corpus (quotes, curiosity, decisions, relationship)."),
		mcp.WithString("topic", mcp.Required(), mcp.Description("Corpus topic name")),
	), s.readArchive)

	s.mcp.AddTool(mcp.NewTool("compile_journal",
		mcp.WithDescription("Compile every diary entry into the printable HTML document "+
			"(cover, table of contents, entries, colophon)."),
	), s.compileJournal)

	s.mcp.AddTool(mcp.NewTool("get_entry_contract",
		mcp.WithDescription("Returns the canonical Chronicle entry format contract. "+
			"Call this before writing or saving entries to ensure correct structure."),
	), s.getEntryContract)

	// Resource: entry format contract.
	s.mcp.AddResource(
		mcp.NewResource("chronicle://entry-format", "Entry Format Contract",
			mcp.WithResourceDescription("Canonical Markdown entry format that all diary entries must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readEntryFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) generateTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	task, err := s.svc.BuildTask(ctx, date)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(task, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) saveEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entry, err := s.svc.SaveEntry(ctx, date, []byte(content))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("saved: %s (%s)", date, entry.Title)), nil
}

func (s *Server) readEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entry, err := s.svc.Entry(ctx, date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", date)), nil
	}
	return mcp.NewToolResultText(entry.Raw), nil
}

func (s *Server) listEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dates, err := s.svc.ListDates(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(dates) == 0 {
		return mcp.NewToolResultText("no entries"), nil
	}
	return mcp.NewToolResultText(strings.Join(dates, "\n")), nil
}

func (s *Server) searchEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) archiveEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.Archive(ctx, date); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("archived: %s", date)), nil
}

func (s *Server) readArchive(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := req.RequireString("topic")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.svc.ReadArchive(ctx, topic)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s (topics: %s)",
			topic, strings.Join(s.svc.ArchiveTopics(ctx), ", "))), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) compileJournal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	html, err := s.svc.CompileHTML(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(html), nil
}

func (s *Server) getEntryContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(EntryFormatContract), nil
}

func (s *Server) readEntryFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "chronicle://entry-format",
			MIMEType: "text/markdown",
			Text:     EntryFormatContract,
		},
	}, nil
}
