package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/omnireach/crm-backend/internal/models"
	"github.com/omnireach/crm-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SchedulerService persists scheduled sends as durable jobs and runs them
// with a polling worker. Jobs survive restarts; a pending job whose time
// passed while the process was down fires on the next poll.
type SchedulerService struct {
	jobRepo  repositories.ScheduledJobRepository
	sender   *CampaignService
	interval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewSchedulerService creates a new SchedulerService polling at interval
func NewSchedulerService(jobRepo repositories.ScheduledJobRepository, sender *CampaignService, interval time.Duration) *SchedulerService {
	if interval <= 0 {
		interval = time.Second
	}
	return &SchedulerService{
		jobRepo:  jobRepo,
		sender:   sender,
		interval: interval,
	}
}

// ScheduleCampaignSend registers a one-shot send of the campaign at or
// after firesAt. The campaign must exist at schedule time; deletion before
// fire time makes the job a silent no-op.
func (s *SchedulerService) ScheduleCampaignSend(ctx context.Context, campaignID primitive.ObjectID, firesAt time.Time) (*models.ScheduledJob, error) {
	if _, err := s.sender.GetCampaignByID(ctx, campaignID); err != nil {
		return nil, err
	}
	job := &models.ScheduledJob{
		CampaignID: campaignID,
		FiresAt:    firesAt,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Start launches the worker loop. Safe to call once; Stop cancels it.
func (s *SchedulerService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.drainDue(ctx)
			}
		}
	}()
}

// Stop cancels the worker loop and waits for it to exit
func (s *SchedulerService) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
		s.wg.Wait()
	}
}

// drainDue claims and runs every job due right now. Job failures are
// recorded on the job row and logged, never propagated.
func (s *SchedulerService) drainDue(ctx context.Context) {
	for {
		job, err := s.jobRepo.ClaimDue(ctx, time.Now())
		if err != nil {
			log.Printf("[WARN] scheduler: failed to claim due job: %v", err)
			return
		}
		if job == nil {
			return
		}
		s.runJob(ctx, job)
	}
}

func (s *SchedulerService) runJob(ctx context.Context, job *models.ScheduledJob) {
	result, err := s.sender.SendCampaign(ctx, job.CampaignID)
	if errors.Is(err, ErrCampaignNotFound) {
		// Campaign deleted between scheduling and fire time.
		log.Printf("[WARN] scheduler: campaign %s gone, job %s dropped", job.CampaignID.Hex(), job.ID.Hex())
		if markErr := s.jobRepo.MarkCompleted(ctx, job.ID); markErr != nil {
			log.Printf("[WARN] scheduler: failed to mark job %s completed: %v", job.ID.Hex(), markErr)
		}
		return
	}
	if err != nil {
		log.Printf("[ERROR] scheduler: job %s failed: %v", job.ID.Hex(), err)
		if markErr := s.jobRepo.MarkFailed(ctx, job.ID, err.Error()); markErr != nil {
			log.Printf("[WARN] scheduler: failed to mark job %s failed: %v", job.ID.Hex(), markErr)
		}
		return
	}

	log.Printf("[INFO] scheduler: job %s sent campaign %s (%d/%d delivered)",
		job.ID.Hex(), job.CampaignID.Hex(), result.Sent, result.Total)
	if err := s.jobRepo.MarkCompleted(ctx, job.ID); err != nil {
		log.Printf("[WARN] scheduler: failed to mark job %s completed: %v", job.ID.Hex(), err)
	}
}
