package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"treasury/internal/domain"
)

// Recorder assembles audit records. Assembly is pure except for the audit
// ID suffix and the created-at stamp, neither of which enters the hash.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Assemble builds the immutable record for one completed run. The
// integrity hash is computed here, once, over the record's stable fields;
// it is never recomputed against a fresh clock.
func (r *Recorder) Assemble(transactionID string, trail *domain.EvidenceTrail, decision, rationale string, createdAt time.Time) Record {
	results := trail.Results()

	trailNames := make([]string, 0, len(results))
	for _, result := range results {
		trailNames = append(trailNames, string(result.Stage))
	}

	checklist := make([]StageCheck, 0, len(domain.PipelineStages))
	for _, stage := range domain.PipelineStages {
		_, done := trail.Find(stage)
		checklist = append(checklist, StageCheck{Stage: stage, Completed: done})
	}

	record := Record{
		AuditID:        fmt.Sprintf("AUDIT-%s-%s", transactionID, uuid.NewString()[:8]),
		TransactionID:  transactionID,
		Decision:       decision,
		Rationale:      rationale,
		StageResults:   results,
		DecisionTrail:  trailNames,
		Checklist:      checklist,
		ComplianceTags: complianceTags(trail, rationale),
		CreatedAt:      createdAt,
	}
	record.IntegrityHash = ComputeHash(record)
	return record
}

func complianceTags(trail *domain.EvidenceTrail, rationale string) []string {
	tags := []string{}
	if trail.Complete() {
		tags = append(tags, "complete_audit_trail", "all_stages_consulted")
	}
	if rationale != "" {
		tags = append(tags, "decision_documented")
	}
	return tags
}

// hashPayload is the canonical content the integrity hash covers. Stage
// payloads are included verbatim so tampering with any verdict changes the
// hash; ProducedAt stamps and enrichment commentary are excluded so the
// hash is a pure function of the review content.
type hashPayload struct {
	TransactionID string        `json:"transaction_id"`
	Decision      string        `json:"decision"`
	Stages        []stageDigest `json:"stages"`
	Checklist     []StageCheck  `json:"checklist"`
}

type stageDigest struct {
	Stage   domain.Stage `json:"stage"`
	Payload any          `json:"payload"`
}

// ComputeHash derives the SHA-256 integrity hash from a record's stable
// fields. Recomputing over an unchanged record always reproduces the
// stored hash.
func ComputeHash(record Record) string {
	payload := hashPayload{
		TransactionID: record.TransactionID,
		Decision:      record.Decision,
		Checklist:     record.Checklist,
	}
	for _, result := range record.StageResults {
		payload.Stages = append(payload.Stages, stageDigest{
			Stage:   result.Stage,
			Payload: result.Payload,
		})
	}

	// Struct field order makes the JSON canonical; payloads are typed
	// structs, never maps.
	raw, err := json.Marshal(payload)
	if err != nil {
		// Stage payloads are plain data structs; marshal cannot fail for
		// well-typed input.
		panic(fmt.Sprintf("audit hash payload not serializable: %v", err))
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the hash over the record's stable fields and compares
// it to the stored hash. A mismatch means the record was mutated after
// creation.
func Verify(record Record) bool {
	return ComputeHash(record) == record.IntegrityHash
}
