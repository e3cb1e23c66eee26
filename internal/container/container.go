// Package container provides dependency injection for StageGate services.
package container

import (
	"context"
	"path/filepath"

	apprelease "github.com/stagegate/stagegate/internal/application/release"
	"github.com/stagegate/stagegate/internal/config"
	"github.com/stagegate/stagegate/internal/errors"
	"github.com/stagegate/stagegate/internal/infrastructure/manifest"
	"github.com/stagegate/stagegate/internal/infrastructure/persistence"
	gitsvc "github.com/stagegate/stagegate/internal/service/git"
)

// Container wires the infrastructure and application layers together.
// It is built once per command invocation and immutable afterwards.
type Container struct {
	config   *config.Config
	settings map[string]any

	// Infrastructure layer
	gitService gitsvc.Service
	snapshots  *persistence.FileSnapshotRepository
	manifests  *manifest.Reader
	checks     apprelease.CheckProvider

	// Application layer use cases
	planUC     *apprelease.PlanUseCase
	verifyUC   *apprelease.VerifyUseCase
	prepareUC  *apprelease.PrepareUseCase
	finalizeUC *apprelease.FinalizeUseCase
	hotfixUC   *apprelease.HotfixUseCase
	rollbackUC *apprelease.RollbackUseCase
	statusUC   *apprelease.StatusUseCase
}

// New builds a fully wired container for the repository containing the
// working directory. The settings map is the effective merged configuration,
// recorded verbatim in release snapshots.
func New(ctx context.Context, cfg *config.Config, settings map[string]any) (*Container, error) {
	const op = "container.New"

	c := &Container{config: cfg, settings: settings}

	if err := c.initInfrastructure(ctx); err != nil {
		return nil, errors.Wrap(err, errors.GetKind(err), op, "failed to initialize container")
	}

	c.initApplicationLayer()
	return c, nil
}

// initInfrastructure initializes the infrastructure layer components.
func (c *Container) initInfrastructure(ctx context.Context) error {
	const op = "container.initInfrastructure"

	gitService, err := gitsvc.NewService(
		gitsvc.WithDefaultRemote(c.config.Git.DefaultRemote),
	)
	if err != nil {
		return errors.GitWrap(err, op, "failed to initialize git service")
	}
	c.gitService = gitService

	root, err := gitService.GetRepositoryRoot(ctx)
	if err != nil {
		return err
	}

	c.snapshots, err = persistence.NewFileSnapshotRepository(
		filepath.Join(root, persistence.DefaultSnapshotDir),
	)
	if err != nil {
		return err
	}

	c.manifests = manifest.NewReader(root)
	c.checks = apprelease.StubCheckProvider{}

	return nil
}

// initApplicationLayer initializes the use cases on top of the infrastructure.
func (c *Container) initApplicationLayer() {
	c.planUC = apprelease.NewPlanUseCase(c.gitService, c.config)
	c.verifyUC = apprelease.NewVerifyUseCase(c.gitService, c.checks, c.planUC, c.config)
	c.prepareUC = apprelease.NewPrepareUseCase(c.gitService, c.planUC, c.config)
	c.finalizeUC = apprelease.NewFinalizeUseCase(
		c.gitService,
		c.verifyUC,
		c.planUC,
		c.snapshots,
		c.manifests,
		c.config,
		c.settings,
	)
	c.hotfixUC = apprelease.NewHotfixUseCase(c.gitService, c.config)
	c.rollbackUC = apprelease.NewRollbackUseCase(c.gitService, c.config)
	c.statusUC = apprelease.NewStatusUseCase(c.gitService, c.planUC, c.config)
}

// Plan returns the plan use case.
func (c *Container) Plan() *apprelease.PlanUseCase { return c.planUC }

// Verify returns the verify use case.
func (c *Container) Verify() *apprelease.VerifyUseCase { return c.verifyUC }

// Prepare returns the prepare use case.
func (c *Container) Prepare() *apprelease.PrepareUseCase { return c.prepareUC }

// Finalize returns the finalize use case.
func (c *Container) Finalize() *apprelease.FinalizeUseCase { return c.finalizeUC }

// Hotfix returns the hotfix use case.
func (c *Container) Hotfix() *apprelease.HotfixUseCase { return c.hotfixUC }

// Rollback returns the rollback use case.
func (c *Container) Rollback() *apprelease.RollbackUseCase { return c.rollbackUC }

// Status returns the status use case.
func (c *Container) Status() *apprelease.StatusUseCase { return c.statusUC }

// Git returns the git service.
func (c *Container) Git() gitsvc.Service { return c.gitService }

// Snapshots returns the snapshot repository.
func (c *Container) Snapshots() *persistence.FileSnapshotRepository { return c.snapshots }

// Config returns the configuration the container was built with.
func (c *Container) Config() *config.Config { return c.config }
