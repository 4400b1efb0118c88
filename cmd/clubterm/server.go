package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/connectclub/clubterm/pkg/config"
	sshsrv "github.com/connectclub/clubterm/pkg/ssh"
	"github.com/connectclub/clubterm/pkg/stats"
	"golang.org/x/sync/errgroup"
)

// Server runs the SSH and stats servers.
type Server struct {
	SSHServer   *sshsrv.SSHServer
	StatsServer *stats.StatsServer
	Config      *config.Config

	logger *log.Logger
	ctx    context.Context
}

// NewServer returns a new *Server. The SSH server key-pair will be created
// if none exists.
// It expects a context with *log.Logger and *config.Config attached.
func NewServer(ctx context.Context) (*Server, error) {
	var err error
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}
	srv := &Server{
		Config: cfg,
		logger: log.FromContext(ctx).WithPrefix("server"),
		ctx:    ctx,
	}

	srv.SSHServer, err = sshsrv.NewSSHServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}

	srv.StatsServer, err = stats.NewStatsServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create stats server: %w", err)
	}

	return srv, nil
}

// Start starts the enabled servers and blocks until they stop.
func (s *Server) Start() error {
	errg, _ := errgroup.WithContext(s.ctx)

	if s.Config.SSH.Enabled {
		errg.Go(func() error {
			s.logger.Print("Starting SSH server", "addr", s.Config.SSH.ListenAddr)
			if err := s.SSHServer.ListenAndServe(); !errors.Is(err, ssh.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	if s.Config.Stats.Enabled {
		errg.Go(func() error {
			s.logger.Print("Starting Stats server", "addr", s.Config.Stats.ListenAddr)
			if err := s.StatsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	return errg.Wait()
}

// Shutdown lets the server gracefully shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		return s.SSHServer.Shutdown(ctx)
	})
	errg.Go(func() error {
		return s.StatsServer.Shutdown(ctx)
	})
	return errg.Wait()
}

// Close closes the servers.
func (s *Server) Close() error {
	var errg errgroup.Group
	errg.Go(s.SSHServer.Close)
	errg.Go(s.StatsServer.Close)
	return errg.Wait()
}
