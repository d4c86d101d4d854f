// Package audit assembles and persists the immutable record of one
// transaction review: every stage verdict, the final decision, and a
// content-derived integrity hash for tamper detection.
package audit

import (
	"time"

	"treasury/internal/domain"
)

// Compliance status values reported to callers.
const (
	StatusCompliant         = "compliant"
	StatusUnverifiedStorage = "unverified_storage"
)

// Record is the terminal artifact of a pipeline run. It is created once by
// the Recorder and never mutated afterwards; persistence is append-only.
type Record struct {
	AuditID        string               `json:"audit_id"`
	TransactionID  string               `json:"transaction_id"`
	Decision       string               `json:"decision"`
	Rationale      string               `json:"rationale"`
	StageResults   []domain.StageResult `json:"stage_results"`
	DecisionTrail  []string             `json:"decision_trail"`
	Checklist      []StageCheck         `json:"stage_checklist"`
	ComplianceTags []string             `json:"compliance_tags"`
	IntegrityHash  string               `json:"integrity_hash"`
	CreatedAt      time.Time            `json:"created_at"`
}

// StageCheck is one entry of the stage-completion checklist, kept in
// pipeline order so the hashed payload is canonical.
type StageCheck struct {
	Stage     domain.Stage `json:"stage"`
	Completed bool         `json:"completed"`
}

// Confirmation is returned to the caller after the record is handled.
type Confirmation struct {
	AuditLogged      bool   `json:"audit_logged"`
	AuditID          string `json:"audit_id"`
	IntegrityHash    string `json:"integrity_hash"`
	ComplianceStatus string `json:"compliance_status"`
}
