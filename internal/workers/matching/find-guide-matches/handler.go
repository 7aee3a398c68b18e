// internal/workers/matching/find-guide-matches/handler.go
package findguidematches

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"github.com/mridulmalani2/wandernest2-sub003/internal/common/errors"
	"github.com/mridulmalani2/wandernest2-sub003/internal/common/logger"
	"github.com/mridulmalani2/wandernest2-sub003/internal/common/metrics"
	"github.com/mridulmalani2/wandernest2-sub003/internal/matching/anonymize"
	"github.com/mridulmalani2/wandernest2-sub003/internal/models"
)

const (
	TaskType = "find-guide-matches"
)

// MatchFinder computes the ranked matches for a trip request. Implemented by
// matching.Matcher; tests substitute fakes.
type MatchFinder interface {
	FindMatches(ctx context.Context, request *models.TripRequest) ([]models.ScoredCandidate, error)
}

type Handler struct {
	config  *Config
	matcher MatchFinder
	schema  map[string]interface{}
	logger  logger.Logger
	errs    *errors.ErrorHandler
}

func NewHandler(config *Config, matcher MatchFinder, schema map[string]interface{}, log logger.Logger) *Handler {
	if schema == nil {
		schema = inputSchema
	}
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		matcher: matcher,
		schema:  schema,
		logger:  scoped,
		errs:    errors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	correlationID := uuid.NewString()

	log := h.logger.WithFields(map[string]interface{}{
		"jobKey":        job.Key,
		"workflowKey":   job.ProcessInstanceKey,
		"correlationId": correlationID,
	})
	log.Info("processing job", nil)

	payload := []byte(job.Variables)
	if err := validateInput(h.schema, payload); err != nil {
		h.fail(client, job, errors.NewMatchInputInvalidError(err.Error()))
		return
	}

	var input Input
	if err := json.Unmarshal(payload, &input); err != nil {
		h.fail(client, job, errors.NewInvalidTripRequestError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.fail(client, job, classifyMatchError(input.City, err))
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	log.Info("matches found", map[string]interface{}{
		"requestId":  input.RequestID,
		"city":       input.City,
		"matchCount": output.MatchCount,
	})

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	scored, err := h.matcher.FindMatches(ctx, input.ToTripRequest())
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(scored))
	for _, candidate := range scored {
		matches = append(matches, Match{
			GuideID:     candidate.ID,
			AnonymousID: anonymize.GenerateAnonymousID(candidate.ID),
			Score:       candidate.Score,
			City:        candidate.City,
			Nationality: candidate.Nationality,
			Languages:   candidate.Languages,
			Interests:   candidate.Interests,
			Institution: candidate.Institution,
		})
	}

	return &Output{
		Matches:    matches,
		MatchCount: len(matches),
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

// fail records the failure and lets the error handler decide between a
// retryable job failure and a BPMN error throw.
func (h *Handler) fail(client worker.JobClient, job entities.Job, stdErr *errors.StandardError) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.errs.HandleJobError(context.Background(), client, job, stdErr)
}

// classifyMatchError keeps typed store errors as-is and folds everything else
// into a generic retryable match failure.
func classifyMatchError(city string, err error) *errors.StandardError {
	if stdErr, ok := err.(*errors.StandardError); ok {
		return stdErr
	}
	if err == context.DeadlineExceeded {
		return errors.NewGuideQueryTimeoutError(city)
	}
	return errors.NewMatchFailedError(err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
