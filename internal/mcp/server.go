// ABOUTME: MCP server setup for femfit plan generation.
// ABOUTME: Wraps the MCP server with storage, catalog, and engine access.
package mcp

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/scar96-claude/femtech-fitness-app/internal/catalog"
	"github.com/scar96-claude/femtech-fitness-app/internal/engine"
	"github.com/scar96-claude/femtech-fitness-app/internal/models"
	"github.com/scar96-claude/femtech-fitness-app/internal/storage"
)

// Options are the defaults applied when a tool call omits a field.
type Options struct {
	DefaultUser   string
	EquipmentTier models.EquipmentTier
	Frequency     int
	IncludeCardio bool
	Seed          *uint64
	Log           logrus.FieldLogger
	Clock         func() time.Time
}

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	catalog   *catalog.Store
	service   *engine.Service
	opts      Options
}

// NewServer creates a new MCP server.
func NewServer(repo storage.Repository, store *catalog.Store, eng *engine.Engine, opts Options) (*Server, error) {
	if repo == nil || store == nil || eng == nil {
		return nil, errors.New("mcp server needs storage, catalog, and engine")
	}
	if opts.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Log = l
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.EquipmentTier == "" {
		opts.EquipmentTier = models.TierBodyweight
	}
	if opts.Frequency == 0 {
		opts.Frequency = 3
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "femfit",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		catalog:   store,
		service:   engine.NewService(eng, store, repo),
		opts:      opts,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve runs the MCP server on stdio and reloads the catalog when overlay
// files change. It returns when the client disconnects or ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.catalog.Watch(ctx)
	})
	g.Go(func() error {
		defer cancel()
		return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
	})
	return g.Wait()
}
