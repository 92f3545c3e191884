package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hiresight/internal/cache"
	hiresightErrors "hiresight/internal/errors"
	"hiresight/internal/generators"
	"hiresight/internal/observability"
	"hiresight/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// statusForError maps application errors to HTTP status codes.
func statusForError(err error) int {
	var appErr *hiresightErrors.AppError
	if stderrors.As(err, &appErr) {
		switch appErr.Type {
		case hiresightErrors.ErrorTypeValidation, hiresightErrors.ErrorTypeInsufficientData:
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// createAnalyzeHandler wraps the single-posting analyze handler with observability
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("hiresight.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		// Parse request
		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		posting, err := types.NewJobPosting(req.Posting.Title, req.Posting.Company,
			req.Posting.Location, req.Posting.SalaryRange, req.Posting.Description)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid posting", err.Error(), http.StatusBadRequest)
			return
		}

		// Size validation
		if len(posting.Description) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("description too large: %d chars", len(posting.Description))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Description too large",
				fmt.Sprintf("description exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.description_length", len(posting.Description)),
			attribute.String("operation", "analyze"),
		)

		metrics := om.GetMetrics()
		var insight *types.PerDocumentInsight
		err = metrics.TrackAnalysisOperation(ctx, "analyze", func(ctx context.Context) error {
			cacheKey := cache.Key("analyze", posting)
			if cached, ok := s.Cache.Get(cacheKey); ok {
				insight = cached.(*types.PerDocumentInsight)
				return nil
			}
			result, opErr := s.Analyzer.AnalyzeOne(ctx, posting)
			if opErr != nil {
				return opErr
			}
			s.Cache.Set(cacheKey, result)
			insight = result
			return nil
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "analysis"))
			metrics.RecordBusinessMetric(ctx, "document_analyzed", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to analyze posting", err.Error(), statusForError(err))
			return
		}

		metrics.RecordBusinessMetric(ctx, "document_analyzed", true, om,
			attribute.String("experience_level", insight.ExperienceLevel),
			attribute.Int("skills_count", len(insight.Skills)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("response.experience_level", insight.ExperienceLevel),
			attribute.Int("response.skills_count", len(insight.Skills)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(insight); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createBatchHandler wraps the batch analysis handler with observability
func (s *Server) createBatchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("hiresight.api")
		ctx, span := tracer.Start(ctx, "api.batch")
		defer span.End()

		var req BatchRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if len(req.Postings) == 0 {
			err := fmt.Errorf("missing postings")
			span.RecordError(err)
			writeErrorResponse(w, "Missing postings", "postings field is required", http.StatusBadRequest)
			return
		}

		batch := make([]*types.JobPosting, 0, len(req.Postings))
		for i, p := range req.Postings {
			posting, err := types.NewJobPosting(p.Title, p.Company, p.Location, p.SalaryRange, p.Description)
			if err != nil {
				span.RecordError(err)
				span.SetAttributes(attribute.String("error.type", "validation"))
				writeErrorResponse(w, fmt.Sprintf("Invalid posting at index %d", i), err.Error(), http.StatusBadRequest)
				return
			}
			batch = append(batch, posting)
		}

		span.SetAttributes(
			attribute.Int("request.postings_count", len(batch)),
			attribute.String("operation", "batch"),
		)

		start := time.Now()
		metrics := om.GetMetrics()
		var analysis *types.AggregatedAnalysis
		err := metrics.TrackAnalysisOperation(ctx, "batch", func(ctx context.Context) error {
			cacheKey := cache.Key("batch", req.Postings, s.AppConfig.Analysis.Enhanced.Enabled)
			if cached, ok := s.Cache.Get(cacheKey); ok {
				analysis = cached.(*types.AggregatedAnalysis)
				return nil
			}
			result, opErr := s.Analyzer.AnalyzeBatch(ctx, batch)
			if opErr != nil {
				return opErr
			}
			s.Cache.Set(cacheKey, result)
			analysis = result
			return nil
		}, om)

		s.trackUsage(types.UsageRecord{
			Operation:      "batch_analyze",
			ProcessingTime: time.Since(start).Seconds(),
			Success:        err == nil,
		}, err)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "analysis"))
			metrics.RecordBusinessMetric(ctx, "batch_analyzed", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to analyze batch", err.Error(), statusForError(err))
			return
		}

		metrics.RecordBusinessMetric(ctx, "batch_analyzed", true, om,
			attribute.Int("postings_count", analysis.TotalAnalyzed),
			attribute.Int("common_skills_count", len(analysis.CommonSkills)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.postings_count", analysis.TotalAnalyzed),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(analysis); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createGenerateHandler accepts a generation request and runs it as an
// asynchronous task. The response carries a task ID for polling.
func (s *Server) createGenerateHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := om.Tracer("hiresight.api").Start(r.Context(), "api.generate")
		defer span.End()

		var req GenerateRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Profile.CompanyName) == "" {
			err := fmt.Errorf("missing company name")
			span.RecordError(err)
			writeErrorResponse(w, "Missing company name", "profile.company_name field is required", http.StatusBadRequest)
			return
		}

		task := s.Tasks.Create()
		span.SetAttributes(
			attribute.String("task.id", task.ID),
			attribute.String("operation", "generate"),
		)

		// The task outlives the request; detach it from the request context.
		go s.runGenerateTask(context.Background(), task.ID, req, om)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(map[string]string{
			"task_id": task.ID,
			"status":  TaskStatusPending,
		}); err != nil {
			span.RecordError(err)
		}
	}
}

// runGenerateTask produces the hiring package, advancing task progress
// after each document.
func (s *Server) runGenerateTask(ctx context.Context, taskID string, req GenerateRequest, om *observability.ObservabilityManager) {
	ctx, span := om.Tracer("hiresight.api").Start(ctx, "task.generate")
	defer span.End()
	span.SetAttributes(attribute.String("task.id", taskID))

	metrics := om.GetMetrics()
	start := time.Now()

	startDate := req.StartDate
	if startDate == "" {
		startDate = time.Now().Format("2006-01-02")
	}

	s.Tasks.SetProgress(taskID, 10)
	jd := generators.NewJobDescription(req.Analysis, req.Profile)
	s.Tasks.SetProgress(taskID, 30)
	plan := generators.NewHiringPlan(jd, req.Goals)
	s.Tasks.SetProgress(taskID, 50)
	rubric := generators.NewInterviewRubric(jd, req.Process)
	s.Tasks.SetProgress(taskID, 70)
	timeline, err := generators.NewHiringTimeline(jd, plan, startDate)

	s.trackUsage(types.UsageRecord{
		RequestID:       taskID,
		Operation:       "generate",
		ExperienceLevel: jd.Metadata.ExperienceLevel,
		ProcessingTime:  time.Since(start).Seconds(),
		Success:         err == nil,
	}, err)

	if err != nil {
		span.RecordError(err)
		metrics.RecordBusinessMetric(ctx, "document_generated", false, om,
			attribute.String("error", err.Error()))
		s.Tasks.Fail(taskID, err.Error())
		return
	}

	s.Tasks.SetProgress(taskID, 95)
	pkg := &types.HiringPackage{
		Analysis:       req.Analysis,
		JobDescription: jd,
		HiringPlan:     plan,
		Rubric:         rubric,
		Timeline:       timeline,
	}
	s.Tasks.Complete(taskID, pkg)

	metrics.RecordBusinessMetric(ctx, "document_generated", true, om,
		attribute.String("experience_level", jd.Metadata.ExperienceLevel))
	span.SetAttributes(attribute.Bool("success", true))
}

// taskStatusHandler serves GET /tasks/{id} for polling async generation.
func (s *Server) taskStatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/tasks/")
	if id == "" || strings.Contains(id, "/") {
		writeErrorResponse(w, "Invalid task ID", "use /tasks/{id}", http.StatusBadRequest)
		return
	}

	task, ok := s.Tasks.Get(id)
	if !ok {
		writeErrorResponse(w, "Task not found", fmt.Sprintf("no task with ID %s", id), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(task); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// feedbackHandler records a hiring outcome.
func (s *Server) feedbackHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var rec types.FeedbackRecord
	if err := parseJSONRequest(r, &rec); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(rec.CandidateID) == "" {
		writeErrorResponse(w, "Missing candidate ID", "candidate_id field is required", http.StatusBadRequest)
		return
	}

	if s.Analytics == nil {
		writeErrorResponse(w, "Analytics disabled", "feedback recording requires analytics to be enabled", http.StatusServiceUnavailable)
		return
	}

	if err := s.Analytics.RecordFeedback(rec); err != nil {
		writeErrorResponse(w, "Failed to record feedback", err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "recorded"}); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// trackUsage records a usage entry, logging tracking failures instead of
// surfacing them to the client.
func (s *Server) trackUsage(rec types.UsageRecord, opErr error) {
	if opErr != nil {
		rec.ErrorMessage = opErr.Error()
	}
	if err := s.Analytics.TrackUsage(rec); err != nil {
		s.Logger.Warn("Failed to track usage", "error", err.Error())
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
