package mcp

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	daysaypkg "github.com/daysay-app/daysay/pkg"
	"github.com/daysay-app/daysay/pkg/config"
	"github.com/daysay-app/daysay/pkg/journal"
	"github.com/daysay-app/daysay/pkg/parser"
	"github.com/daysay-app/daysay/pkg/storage"
)

// DaySayMCPServer exposes the journal over MCP stdio.
type DaySayMCPServer struct {
	mcpServer *server.MCPServer
	store     *journal.Store
	service   *journal.Service
	parser    *parser.Parser
	closer    func() error
	DataPath  string
}

// NewDaySayMCPServer builds a server with storage selected by cfg. An empty
// cfg.DataPath uses the per-OS default location.
func NewDaySayMCPServer(cfg config.Config, log *slog.Logger) (*DaySayMCPServer, error) {
	if log == nil {
		log = slog.Default()
	}

	dataPath, err := cfg.ResolveDataPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data path: %w", err)
	}

	var persist storage.Persistence
	var closer func() error
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		sq, err := storage.NewSQLiteStore(filepath.Join(dataPath, "daysay.db"))
		if err != nil {
			return nil, err
		}
		persist = sq
		closer = sq.Close
	case config.BackendMemory:
		persist = storage.NewMemoryStore()
	default:
		dk, err := storage.NewDiskvStore(filepath.Join(dataPath, "journal"))
		if err != nil {
			return nil, err
		}
		persist = dk
	}

	store := journal.NewStore(persist, journal.WithLogger(log))
	store.Initialize()

	s := server.NewMCPServer(
		"DaySay MCP Server",
		daysaypkg.Version,
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	srv := &DaySayMCPServer{
		mcpServer: s,
		store:     store,
		service:   journal.NewService(store, nil, log),
		parser:    parser.New(cfg.Lexicon),
		closer:    closer,
		DataPath:  dataPath,
	}
	srv.registerTools()
	return srv, nil
}

// Start runs the stdio event loop.
func (s *DaySayMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// Store returns the underlying journal store.
func (s *DaySayMCPServer) Store() *journal.Store {
	return s.store
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *DaySayMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}

// Close cleans up allocated resources.
func (s *DaySayMCPServer) Close() error {
	if s.closer != nil {
		return s.closer()
	}
	return nil
}
