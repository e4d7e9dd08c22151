// Package container provides dependency injection.
package container

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/oria-mc/oria/convert"
	"github.com/oria-mc/oria/internal/service"
	"github.com/oria-mc/oria/internal/storage"
)

// Config is what the container needs to build its dependencies.
type Config struct {
	Storage storage.Config
	Workers int
	Logger  *pterm.Logger

	// IDs overrides the attribute modifier ID generator.
	IDs convert.IDGenerator
}

// Container holds all application dependencies.
type Container struct {
	config *Config

	store          storage.Storage
	converter      *convert.Converter
	convertService *service.ConvertService
}

// NewContainer creates a new dependency injection container.
func NewContainer(cfg *Config) (*Container, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Logger == nil {
		cfg.Logger = pterm.DefaultLogger.WithWriter(io.Discard)
	}

	store, err := storage.New(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}

	c := &Container{
		config: cfg,
		store:  store,
		converter: convert.New(
			convert.WithWorkers(cfg.Workers),
			convert.WithLogger(cfg.Logger),
			convert.WithIDGenerator(cfg.IDs),
		),
	}
	c.convertService = service.NewConvertService(c.store, c.converter, cfg.Logger)

	return c, nil
}

// Storage returns the storage adapter.
func (c *Container) Storage() storage.Storage {
	return c.store
}

// Converter returns the conversion engine.
func (c *Container) Converter() *convert.Converter {
	return c.converter
}

// ConvertService returns the convert service.
func (c *Container) ConvertService() *service.ConvertService {
	return c.convertService
}
