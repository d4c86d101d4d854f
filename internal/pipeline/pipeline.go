// Package pipeline sequences the six review stages over one transaction:
// intent, risk, policy, liquidity, decision, audit. Data flows strictly
// forward; each stage's output is complete before the next begins, and the
// evidence trail is owned by this package for the duration of a run.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"treasury/internal/audit"
	"treasury/internal/decision"
	"treasury/internal/domain"
	"treasury/internal/enrich"
	"treasury/internal/intent"
	"treasury/internal/liquidity"
	"treasury/internal/pipeline/metrics"
	"treasury/internal/policy"
	"treasury/internal/risk"
	"treasury/pkg/requestcontext"
)

// Result is the full outcome of one pipeline run.
type Result struct {
	Transaction  domain.TransactionRecord `json:"transaction"`
	StageResults []domain.StageResult     `json:"stage_results"`
	Outcome      decision.Outcome         `json:"outcome"`
	AuditRecord  audit.Record             `json:"audit_record"`
	Confirmation audit.Confirmation       `json:"audit_confirmation"`
	Warnings     []string                 `json:"warnings,omitempty"`
}

// Pipeline wires the stage components. Construct once, run per
// transaction; runs are independent and safe to execute concurrently.
type Pipeline struct {
	classifier *intent.Classifier
	scorer     *risk.Scorer
	validator  *policy.Validator
	checker    *liquidity.Checker
	engine     *decision.Engine
	recorder   *audit.Recorder
	auditor    *audit.Service

	enricher enrich.Enricher
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

// Option configures optional collaborators.
type Option func(*Pipeline)

// WithEnricher attaches a language-model enrichment collaborator.
func WithEnricher(e enrich.Enricher) Option {
	return func(p *Pipeline) { p.enricher = e }
}

// WithMetrics attaches prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// New constructs the pipeline with its required stage components.
func New(
	classifier *intent.Classifier,
	scorer *risk.Scorer,
	validator *policy.Validator,
	checker *liquidity.Checker,
	engine *decision.Engine,
	recorder *audit.Recorder,
	auditor *audit.Service,
	logger *slog.Logger,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		classifier: classifier,
		scorer:     scorer,
		validator:  validator,
		checker:    checker,
		engine:     engine,
		recorder:   recorder,
		auditor:    auditor,
		enricher:   enrich.Noop{},
		logger:     logger,
		tracer:     otel.Tracer("treasury/pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process validates the record and runs it through every stage. Stage
// logic never errors for well-typed input; the error paths are boundary
// validation and the ledger read.
func (p *Pipeline) Process(ctx context.Context, rec domain.TransactionRecord) (*Result, error) {
	start := time.Now()

	rec, err := rec.Normalize()
	if err != nil {
		return nil, err
	}

	ctx, span := p.tracer.Start(ctx, "pipeline.process")
	defer span.End()

	trail := &domain.EvidenceTrail{}

	classified := p.runIntent(ctx, trail, rec)
	assessment := p.runRisk(ctx, trail, rec, classified)
	validation := p.runPolicy(ctx, trail, rec, classified)
	report, err := p.runLiquidity(ctx, trail, rec, classified)
	if err != nil {
		return nil, err
	}

	outcome := p.runDecision(ctx, trail, decision.Input{
		Intent:    classified,
		Risk:      assessment,
		Policy:    validation,
		Liquidity: report,
	})

	record, confirmation := p.runAudit(ctx, rec, trail, outcome)

	result := &Result{
		Transaction:  rec,
		StageResults: trail.Results(),
		Outcome:      outcome,
		AuditRecord:  record,
		Confirmation: confirmation,
	}
	if confirmation.ComplianceStatus == audit.StatusUnverifiedStorage {
		result.Warnings = append(result.Warnings,
			"audit record could not be persisted; decision stands but storage is unverified")
	}

	p.metrics.IncrementOutcome(string(outcome.Decision), string(classified.Category))
	p.metrics.ObserveProcess(time.Since(start))

	p.logger.InfoContext(ctx, "transaction reviewed",
		"request_id", requestcontext.RequestID(ctx),
		"transaction_id", rec.TransactionID,
		"intent", classified.Category,
		"risk_level", assessment.Level,
		"policy_passed", validation.Passed,
		"viable", report.FinanciallyViable,
		"decision", outcome.Decision,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

func (p *Pipeline) runIntent(ctx context.Context, trail *domain.EvidenceTrail, rec domain.TransactionRecord) intent.Classification {
	ctx, span := p.tracer.Start(ctx, string(domain.StageIntent))
	defer span.End()
	start := time.Now()

	classified := p.classifier.Classify(rec)

	p.metrics.ObserveStage(string(domain.StageIntent), time.Since(start))
	p.record(ctx, trail, domain.StageIntent, classified)
	return classified
}

func (p *Pipeline) runRisk(ctx context.Context, trail *domain.EvidenceTrail, rec domain.TransactionRecord, classified intent.Classification) risk.Assessment {
	ctx, span := p.tracer.Start(ctx, string(domain.StageRisk))
	defer span.End()
	start := time.Now()

	assessment := p.scorer.Score(rec, classified)

	p.metrics.ObserveStage(string(domain.StageRisk), time.Since(start))
	p.record(ctx, trail, domain.StageRisk, assessment)
	return assessment
}

func (p *Pipeline) runPolicy(ctx context.Context, trail *domain.EvidenceTrail, rec domain.TransactionRecord, classified intent.Classification) policy.Validation {
	ctx, span := p.tracer.Start(ctx, string(domain.StagePolicy))
	defer span.End()
	start := time.Now()

	validation := p.validator.Validate(rec.Amount, classified.Category, rec.Sender, rec.Receiver, classified.Urgency)

	p.metrics.ObserveStage(string(domain.StagePolicy), time.Since(start))
	p.record(ctx, trail, domain.StagePolicy, validation)
	return validation
}

func (p *Pipeline) runLiquidity(ctx context.Context, trail *domain.EvidenceTrail, rec domain.TransactionRecord, classified intent.Classification) (liquidity.Report, error) {
	ctx, span := p.tracer.Start(ctx, string(domain.StageLiquidity))
	defer span.End()
	start := time.Now()

	report, err := p.checker.Check(ctx, rec.Amount, rec.AccountID, classified.Category)
	if err != nil {
		return liquidity.Report{}, err
	}

	p.metrics.ObserveStage(string(domain.StageLiquidity), time.Since(start))
	p.record(ctx, trail, domain.StageLiquidity, report)
	return report, nil
}

func (p *Pipeline) runDecision(ctx context.Context, trail *domain.EvidenceTrail, input decision.Input) decision.Outcome {
	ctx, span := p.tracer.Start(ctx, string(domain.StageDecision))
	defer span.End()
	start := time.Now()

	outcome := p.engine.Decide(input)

	p.metrics.ObserveStage(string(domain.StageDecision), time.Since(start))
	p.record(ctx, trail, domain.StageDecision, outcome)
	return outcome
}

func (p *Pipeline) runAudit(ctx context.Context, rec domain.TransactionRecord, trail *domain.EvidenceTrail, outcome decision.Outcome) (audit.Record, audit.Confirmation) {
	ctx, span := p.tracer.Start(ctx, "audit_logging")
	defer span.End()

	record := p.recorder.Assemble(
		rec.TransactionID, trail,
		string(outcome.Decision), outcome.Reasoning,
		requestcontext.Now(ctx),
	)
	return record, p.auditor.Log(ctx, record)
}

// record appends a stage result to the trail with best-effort enrichment
// commentary. Trail order violations cannot happen in this sequential
// flow; a failed append indicates a programming error and is logged loud.
func (p *Pipeline) record(ctx context.Context, trail *domain.EvidenceTrail, stage domain.Stage, payload any) {
	commentary, err := p.enricher.Commentary(ctx, stage, payload)
	if err != nil {
		p.logger.DebugContext(ctx, "enrichment unavailable",
			"stage", stage,
			"error", err,
		)
		commentary = ""
	}

	if err := trail.Append(domain.StageResult{
		Stage:      stage,
		Payload:    payload,
		Commentary: commentary,
		ProducedAt: time.Now(),
	}); err != nil {
		p.logger.ErrorContext(ctx, "evidence trail append failed",
			"stage", stage,
			"error", err,
		)
	}
}
