package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/avetisov/storefront-service/internal/config"
	"github.com/avetisov/storefront-service/internal/domain/catalog"
	domainErrors "github.com/avetisov/storefront-service/internal/domain/errors"
	"github.com/avetisov/storefront-service/internal/infrastructure/monitoring"
	"github.com/avetisov/storefront-service/internal/infrastructure/persistence/postgres"
	"github.com/avetisov/storefront-service/internal/pkg/clock"
	"github.com/avetisov/storefront-service/internal/pkg/countdown"
	"github.com/avetisov/storefront-service/internal/pkg/logger"
)

const tickInterval = 30 * time.Second

// CampaignScheduler keeps exactly one campaign aligned with the configured
// cutoff: it seeds the campaign on startup if the window is still open,
// closes campaigns whose cutoff has passed, and refreshes the countdown
// gauge on every tick.
type CampaignScheduler struct {
	catalogRepo *postgres.CatalogRepository
	product     *catalog.Product
	campaignCfg config.CampaignConfig
	clk         clock.Clock
	logger      *logger.Logger
	stopChan    chan struct{}
}

func NewCampaignScheduler(
	catalogRepo *postgres.CatalogRepository,
	product *catalog.Product,
	campaignCfg config.CampaignConfig,
	clk clock.Clock,
	logger *logger.Logger,
) *CampaignScheduler {
	return &CampaignScheduler{
		catalogRepo: catalogRepo,
		product:     product,
		campaignCfg: campaignCfg,
		clk:         clk,
		logger:      logger,
		stopChan:    make(chan struct{}),
	}
}

func (s *CampaignScheduler) Start(ctx context.Context) {
	s.logger.Info("Starting campaign scheduler")

	if err := s.tick(ctx); err != nil {
		s.logger.Error("Initial campaign pass failed", "error", err.Error())
	}

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Campaign scheduler stopped")
			return
		case <-s.stopChan:
			s.logger.Info("Campaign scheduler stopped")
			return
		case <-ticker.C:
			if err := s.tick(ctx); err != nil {
				s.logger.Error("Campaign pass failed", "error", err.Error())
			}
		}
	}
}

func (s *CampaignScheduler) Stop() {
	close(s.stopChan)
}

func (s *CampaignScheduler) tick(ctx context.Context) error {
	closed, err := s.catalogRepo.CloseExpiredCampaigns(ctx)
	if err != nil {
		return err
	}
	if closed > 0 {
		s.logger.Info("Closed expired campaigns", "count", closed)
	}

	if err := s.createCampaignIfNeeded(ctx); err != nil {
		return err
	}

	return s.updateCountdownGauge(ctx)
}

func (s *CampaignScheduler) createCampaignIfNeeded(ctx context.Context) error {
	active, err := s.catalogRepo.GetActiveCampaign(ctx)
	if err == nil && active != nil {
		return nil
	}
	if err != nil && !errors.Is(err, domainErrors.ErrCampaignNotFound) {
		return err
	}

	cutoff, err := s.campaignCfg.CutoffTime()
	if err != nil {
		// No configured cutoff means campaigns are managed by hand.
		return nil
	}

	now := s.clk.Now()
	if !now.Before(cutoff) {
		return nil
	}

	campaign, err := catalog.NewCampaign(uuid.New().String(), s.product.ID, now, cutoff)
	if err != nil {
		return err
	}

	if err := s.catalogRepo.CreateCampaign(ctx, campaign); err != nil {
		return err
	}

	s.logger.Info("Created campaign",
		"campaign_id", campaign.ID,
		"starts_at", campaign.StartsAt,
		"ends_at", campaign.EndsAt,
	)
	return nil
}

func (s *CampaignScheduler) updateCountdownGauge(ctx context.Context) error {
	active, err := s.catalogRepo.GetActiveCampaign(ctx)
	if err != nil {
		if errors.Is(err, domainErrors.ErrCampaignNotFound) {
			monitoring.CampaignCountdownSeconds.Set(0)
			return nil
		}
		return err
	}

	remaining := countdown.Remaining(active.EndsAt, s.clk.Now())
	monitoring.CampaignCountdownSeconds.Set(remaining.Seconds())
	return nil
}
